package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	// BaseURL is ESPN's site API root for men's college basketball.
	BaseURL = "https://site.api.espn.com/apis/site/v2/sports/basketball/mens-college-basketball"

	// GamePageURL is the public game page, used only for date scraping.
	GamePageURL = "https://www.espn.com/mens-college-basketball/game/_/gameId"

	// UserAgent mimics a desktop browser; ESPN serves Go's default agent an
	// error page.
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client fetches game summaries and game pages from ESPN.
type Client struct {
	apiBase  string
	pageBase string
	http     *resty.Client
	log      *zap.Logger

	// Headless, when set, re-fetches game pages through a rendering browser
	// if the static HTML turns out to be a script shell.
	Headless PageFetcher

	interval    time.Duration
	lastRequest time.Time
}

// PageFetcher fetches a fully rendered game page.
type PageFetcher interface {
	FetchRendered(ctx context.Context, url string) (string, error)
}

// Options configures a Client. Zero values fall back to production defaults.
type Options struct {
	APIBase  string
	PageBase string
	Timeout  time.Duration
	Interval time.Duration
}

// NewClient creates an ESPN client.
func NewClient(opts Options, log *zap.Logger) *Client {
	if opts.APIBase == "" {
		opts.APIBase = BaseURL
	}
	if opts.PageBase == "" {
		opts.PageBase = GamePageURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	http := resty.New()
	http.SetTimeout(opts.Timeout)
	http.SetHeader("user-agent", UserAgent)

	return &Client{
		apiBase:  opts.APIBase,
		pageBase: opts.PageBase,
		http:     http,
		log:      log,
		interval: opts.Interval,
	}
}

// FetchSummary fetches the game summary (plays, win probability, betting line)
// for an ESPN event id.
func (c *Client) FetchSummary(ctx context.Context, gameID string) (*Summary, error) {
	c.politeWait()

	url := fmt.Sprintf("%s/summary?event=%s", c.apiBase, gameID)
	c.log.Debug("fetching game summary", zap.String("game_id", gameID), zap.String("url", url))

	res, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch summary for game %s: %w", gameID, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch summary for game %s: status %d", gameID, res.StatusCode())
	}

	body := res.Body()
	if len(body) > 0 && body[0] == '<' {
		return nil, fmt.Errorf("fetch summary for game %s: got HTML error page", gameID)
	}

	var summary Summary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("decode summary for game %s: %w", gameID, err)
	}

	c.log.Debug("fetched game summary",
		zap.String("game_id", gameID),
		zap.Int("plays", len(summary.Plays)),
		zap.Int("win_prob_samples", len(summary.WinProbability)))
	return &summary, nil
}

// FetchGamePage fetches the raw HTML of the public game page. When the static
// response has no parseable date and a headless fetcher is configured, the
// page is fetched again through the browser.
func (c *Client) FetchGamePage(ctx context.Context, gameID string) (string, error) {
	c.politeWait()

	url := fmt.Sprintf("%s/%s", c.pageBase, gameID)
	c.log.Debug("fetching game page", zap.String("game_id", gameID), zap.String("url", url))

	res, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch game page for %s: %w", gameID, err)
	}
	if res.IsError() {
		return "", fmt.Errorf("fetch game page for %s: status %d", gameID, res.StatusCode())
	}

	html := string(res.Body())
	if _, err := ParseGameDate(gameID, html); err == nil || c.Headless == nil {
		return html, nil
	}

	c.log.Debug("static page has no date node, retrying rendered", zap.String("game_id", gameID))
	rendered, err := c.Headless.FetchRendered(ctx, url)
	if err != nil {
		return "", fmt.Errorf("rendered fetch for game %s: %w", gameID, err)
	}
	return rendered, nil
}

// FetchGameDate fetches and parses the calendar date for a game id.
func (c *Client) FetchGameDate(ctx context.Context, gameID string) (time.Time, error) {
	html, err := c.FetchGamePage(ctx, gameID)
	if err != nil {
		return time.Time{}, err
	}
	return ParseGameDate(gameID, html)
}

// politeWait spaces requests out by the configured interval.
func (c *Client) politeWait() {
	if c.interval <= 0 {
		return
	}
	if !c.lastRequest.IsZero() {
		if elapsed := time.Since(c.lastRequest); elapsed < c.interval {
			time.Sleep(c.interval - elapsed)
		}
	}
	c.lastRequest = time.Now()
}
