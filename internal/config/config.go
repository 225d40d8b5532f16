// Package config loads service settings from an optional YAML file and
// PINNED_* environment variables.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"
)

type (
	Server struct {
		Port            int
		RootRedirect    string        `mapstructure:"root_redirect"`
		ReadTimeout     time.Duration `mapstructure:"read_timeout"`
		WriteTimeout    time.Duration `mapstructure:"write_timeout"`
		IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	}

	Upstream struct {
		BaseURL     string        `mapstructure:"base_url"`
		Timeout     time.Duration `mapstructure:"timeout"`
		MaxBodySize int           `mapstructure:"max_body_size"`
		UserAgent   string        `mapstructure:"user_agent"`
		Headless    bool          `mapstructure:"headless"`
	}

	// Headers are the response headers added around every route.
	Headers struct {
		CacheMaxAge  time.Duration `mapstructure:"cache_max_age"`
		AllowOrigin  string        `mapstructure:"allow_origin"`
		AllowMethods []string      `mapstructure:"allow_methods"`
		HSTSMaxAge   time.Duration `mapstructure:"hsts_max_age"`
	}

	Log struct {
		Level  string
		Format string
	}
)

type Config struct {
	Server   Server
	Upstream Upstream
	Headers  Headers
	Log      Log
}

// Load reads path when it is set, otherwise pinned.yaml from the working
// directory if present. Environment variables override both, e.g.
// PINNED_UPSTREAM_TIMEOUT=5s. PORT is honored for the listen port.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("PINNED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.port", "PINNED_SERVER_PORT", "PORT"); err != nil {
		return nil, errors.Errorf("binding port: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Errorf("reading config file %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("pinned")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Errorf("reading config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.root_redirect", "")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("upstream.base_url", "https://github.com")
	v.SetDefault("upstream.timeout", 10*time.Second)
	v.SetDefault("upstream.max_body_size", 10*1024*1024)
	v.SetDefault("upstream.user_agent", "")
	v.SetDefault("upstream.headless", false)

	v.SetDefault("headers.cache_max_age", 300*time.Second)
	v.SetDefault("headers.allow_origin", "*")
	v.SetDefault("headers.allow_methods", []string{"GET"})
	v.SetDefault("headers.hsts_max_age", 180*24*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Upstream.Timeout <= 0 {
		return errors.Errorf("upstream timeout must be positive, got %s", c.Upstream.Timeout)
	}
	if c.Upstream.BaseURL == "" {
		return errors.New("upstream base url is empty")
	}
	if c.Headers.CacheMaxAge < 0 {
		return errors.Errorf("cache max age must not be negative, got %s", c.Headers.CacheMaxAge)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return errors.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}
