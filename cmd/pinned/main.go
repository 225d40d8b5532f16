package main

import (
	"context"
	"os"
	"time"

	"github.com/Cyclone1070/spyglass-pinned/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	rootCmd := &cobra.Command{
		Use:   "pinned",
		Short: "Serve and export the pinned projects of GitHub profiles",
		Long: `pinned reads the pinned projects shown on a GitHub profile page and
returns them as structured records, either over HTTP or from the command line.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default ./pinned.yaml when present)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	rootCmd.AddCommand(
		newServeCmd(),
		newGetCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// setup loads the configuration and returns a context carrying a logger built from it.
func setup(ctx context.Context) (context.Context, *config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, errors.Errorf("loading config: %w", err)
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return logger.WithContext(ctx), cfg, nil
}

func newLogger(cfg config.Log) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), errors.Errorf("parsing log level: %w", err)
	}
	if debug {
		level = zerolog.DebugLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "json" {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return logger.Level(level).With().Timestamp().Logger(), nil
}
