// Package utils provide utilities functions
package utils

import (
	"context"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

// CollectorOptions tunes the collector returned by ConfiguredCollector.
// Zero values fall back to the defaults below.
type CollectorOptions struct {
	// Context, when set, cancels the collector's in-flight requests once it ends.
	Context     context.Context
	Timeout     time.Duration
	MaxBodySize int
	// UserAgent pins a single user agent. When empty a random browser one is used per request.
	UserAgent string
}

const (
	DefaultTimeout     = 10 * time.Second
	DefaultMaxBodySize = 10 * 1024 * 1024
)

// ConfiguredCollector returns a fresh collector that presents itself like a
// desktop browser. Collectors are cheap and hold per-visit state, so callers
// create one per fetch instead of sharing them.
func ConfiguredCollector(opts CollectorOptions) *colly.Collector {
	collector := colly.NewCollector(colly.AllowURLRevisit())
	if opts.Context != nil {
		collector.Context = opts.Context
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	collector.SetRequestTimeout(timeout)

	collector.MaxBodySize = opts.MaxBodySize
	if collector.MaxBodySize <= 0 {
		collector.MaxBodySize = DefaultMaxBodySize
	}

	if opts.UserAgent != "" {
		collector.UserAgent = opts.UserAgent
	} else {
		extensions.RandomUserAgent(collector)
	}
	extensions.Referer(collector)

	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")

		// NOTE: compression stays off, colly hands us the raw body as is.

		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
		r.Headers.Set("Sec-Fetch-Dest", "document")
		r.Headers.Set("Sec-Fetch-Mode", "navigate")
		r.Headers.Set("Sec-Fetch-Site", "none")
		r.Headers.Set("Upgrade-Insecure-Requests", "1")
	})

	return collector
}
