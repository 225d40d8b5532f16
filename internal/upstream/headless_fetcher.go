package upstream

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const defaultHeadlessTimeout = 20 * time.Second

// HeadlessFetcher renders profiles in a headless browser before reading the
// markup. Each Fetch opens a new tab in the browser owned by browserCtx.
type HeadlessFetcher struct {
	browserCtx context.Context
	options    Options
}

// StartBrowser launches a headless browser and returns its context. The
// cancel function shuts the browser down.
func StartBrowser(ctx context.Context, opts ...chromedp.ExecAllocatorOption) (context.Context, context.CancelFunc, error) {
	allocatorCtx, cancelAllocator := chromedp.NewExecAllocator(ctx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocatorCtx)
	cancel := func() {
		cancelBrowser()
		cancelAllocator()
	}
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		return nil, nil, errors.Errorf("starting browser: %w", err)
	}
	return browserCtx, cancel, nil
}

// NewHeadlessFetcher returns a fetcher bound to a running chromedp browser
// context. Cancelling browserCtx closes the browser.
func NewHeadlessFetcher(browserCtx context.Context, options Options) *HeadlessFetcher {
	return &HeadlessFetcher{browserCtx: browserCtx, options: options}
}

func (f *HeadlessFetcher) Fetch(ctx context.Context, username string) (string, error) {
	profileURL, err := ProfileURL(f.options.baseURL(), username)
	if err != nil {
		return "", err
	}

	newTab, cancel := chromedp.NewContext(f.browserCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	timeout := f.options.Timeout
	if timeout <= 0 {
		timeout = defaultHeadlessTimeout
	}
	tab, cancelTimeout := context.WithTimeout(newTab, timeout)
	defer cancelTimeout()

	// the first document response is the profile page itself
	var status atomic.Int64
	chromedp.ListenTarget(tab, func(ev interface{}) {
		if response, ok := ev.(*network.EventResponseReceived); ok && response.Type == network.ResourceTypeDocument {
			status.CompareAndSwap(0, response.Response.Status)
		}
	})

	var html string
	err = chromedp.Run(tab,
		network.Enable(),
		chromedp.Navigate(profileURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)

	code := int(status.Load())
	zerolog.Ctx(ctx).Debug().Str("url", profileURL).Int("status", code).Err(err).Msg("rendered profile")

	if err != nil && code == http.StatusOK {
		code = 0
	}
	if err := Classify(code, err); err != nil {
		return "", errors.WithDetails(err, "url", profileURL)
	}
	return html, nil
}
