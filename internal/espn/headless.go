package espn

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// HeadlessFetcher fetches pages through headless Chrome. ESPN's game pages
// are script shells on some CDN edges; the date node only exists after the
// page renders.
type HeadlessFetcher struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	log      *zap.Logger
}

// NewHeadlessFetcher starts a headless Chrome allocator. Call Close when done.
func NewHeadlessFetcher(log *zap.Logger) (*HeadlessFetcher, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &HeadlessFetcher{
		allocCtx: allocCtx,
		cancel:   cancel,
		log:      log,
	}, nil
}

// Close releases the browser allocator.
func (f *HeadlessFetcher) Close() {
	if f.cancel != nil {
		f.cancel()
	}
}

// FetchRendered navigates to the URL and returns the rendered DOM as HTML.
func (f *HeadlessFetcher) FetchRendered(ctx context.Context, url string) (string, error) {
	browserCtx, cancel := chromedp.NewContext(f.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, 30*time.Second)
	defer cancel()

	// Honor the caller's deadline when it is tighter than ours.
	if deadline, ok := ctx.Deadline(); ok {
		var dcancel context.CancelFunc
		browserCtx, dcancel = context.WithDeadline(browserCtx, deadline)
		defer dcancel()
	}

	f.log.Debug("rendering page", zap.String("url", url))

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.Sleep(1*time.Second), // let the game header hydrate
		chromedp.OuterHTML(`html`, &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp: %w", err)
	}
	if html == "" {
		return "", fmt.Errorf("empty HTML content returned")
	}

	return html, nil
}
