package main

import (
	"context"

	"github.com/Cyclone1070/spyglass-pinned/internal/config"
	"github.com/Cyclone1070/spyglass-pinned/internal/upstream"
	"github.com/rs/zerolog"
)

// newFetcher builds the fetcher selected by cfg. The returned function
// releases whatever the fetcher holds, such as a browser.
func newFetcher(ctx context.Context, cfg config.Upstream) (upstream.Fetcher, func(), error) {
	options := upstream.Options{
		BaseURL:     cfg.BaseURL,
		Timeout:     cfg.Timeout,
		MaxBodySize: cfg.MaxBodySize,
		UserAgent:   cfg.UserAgent,
	}
	if !cfg.Headless {
		return upstream.NewCollectorFetcher(options), func() {}, nil
	}

	zerolog.Ctx(ctx).Info().Msg("starting headless browser")
	browserCtx, cancel, err := upstream.StartBrowser(context.WithoutCancel(ctx))
	if err != nil {
		return nil, nil, err
	}
	return upstream.NewHeadlessFetcher(browserCtx, options), cancel, nil
}
