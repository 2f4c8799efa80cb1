package espn

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/summary", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("event") != "401082698" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, summaryFixture)
	})
	mux.HandleFunc("/page/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><span data-date="2019-01-19T17:00Z"></span></body></html>`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testClient(t *testing.T, base string) *Client {
	t.Helper()
	return NewClient(Options{
		APIBase:  base,
		PageBase: base + "/page",
		Timeout:  5 * time.Second,
	}, zap.NewNop())
}

func TestFetchSummary(t *testing.T) {
	server := fixtureServer(t)
	client := testClient(t, server.URL)

	summary, err := client.FetchSummary(context.Background(), "401082698")
	require.NoError(t, err)
	assert.Len(t, summary.Plays, 3)
	assert.Len(t, summary.WinProbability, 2)
	assert.Equal(t, -6.5, Spread(summary))
}

func TestFetchSummaryNotFound(t *testing.T) {
	server := fixtureServer(t)
	client := testClient(t, server.URL)

	_, err := client.FetchSummary(context.Background(), "999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "999")
}

func TestFetchSummaryHTMLErrorPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>Access Denied</body></html>`)
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	_, err := client.FetchSummary(context.Background(), "401082698")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTML error page")
}

func TestFetchGameDate(t *testing.T) {
	server := fixtureServer(t)
	client := testClient(t, server.URL)

	date, err := client.FetchGameDate(context.Background(), "401082698")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2019, time.January, 19, 0, 0, 0, 0, time.UTC), date)
}

type stubRenderer struct {
	html  string
	calls int
}

func (s *stubRenderer) FetchRendered(ctx context.Context, url string) (string, error) {
	s.calls++
	return s.html, nil
}

func TestFetchGamePageHeadlessFallback(t *testing.T) {
	// The static page is a script shell without a date.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><script>boot()</script></body></html>`)
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	stub := &stubRenderer{html: `<html><body><span data-date="2019-01-19T17:00Z"></span></body></html>`}
	client.Headless = stub

	date, err := client.FetchGameDate(context.Background(), "401082698")
	require.NoError(t, err)
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, time.Date(2019, time.January, 19, 0, 0, 0, 0, time.UTC), date)
}

func TestFetchGamePageNoFallbackConfigured(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><script>boot()</script></body></html>`)
	}))
	defer server.Close()

	client := testClient(t, server.URL)
	_, err := client.FetchGameDate(context.Background(), "401082698")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no date found")
}
