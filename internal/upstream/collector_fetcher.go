package upstream

import (
	"context"
	"time"

	"github.com/Cyclone1070/spyglass-pinned/internal/utils"
	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultBaseURL is the site profiles are fetched from.
const DefaultBaseURL = "https://github.com"

// Options configures a fetcher.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	MaxBodySize int
	UserAgent   string
}

func (o Options) baseURL() string {
	if o.BaseURL == "" {
		return DefaultBaseURL
	}
	return o.BaseURL
}

// CollectorFetcher fetches profiles with a plain HTTP request through colly.
// It is safe for concurrent use; every Fetch gets its own collector.
type CollectorFetcher struct {
	options Options
}

func NewCollectorFetcher(options Options) *CollectorFetcher {
	return &CollectorFetcher{options: options}
}

func (f *CollectorFetcher) Fetch(ctx context.Context, username string) (string, error) {
	profileURL, err := ProfileURL(f.options.baseURL(), username)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", Classify(0, err)
	}

	collector := utils.ConfiguredCollector(utils.CollectorOptions{
		Context:     ctx,
		Timeout:     f.options.Timeout,
		MaxBodySize: f.options.MaxBodySize,
		UserAgent:   f.options.UserAgent,
	})

	var body string
	var status int
	var scrapeErr error

	collector.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = string(r.Body)
	})
	collector.OnError(func(r *colly.Response, err error) {
		status = r.StatusCode
		scrapeErr = err
	})

	start := time.Now()
	if err := collector.Visit(profileURL); err != nil && scrapeErr == nil {
		scrapeErr = err
	}

	zerolog.Ctx(ctx).Debug().
		Str("url", profileURL).
		Int("status", status).
		Dur("elapsed", time.Since(start)).
		Msg("fetched profile")

	if err := Classify(status, scrapeErr); err != nil {
		return "", errors.WithDetails(err, "url", profileURL)
	}
	return body, nil
}
