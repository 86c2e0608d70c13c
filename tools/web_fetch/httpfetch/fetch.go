package httpfetch

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/mohammad-safakhou/webchat/internal/helpers"
	"github.com/mohammad-safakhou/webchat/tools/web_fetch/models"
)

// browserHeaders makes the request look like an ordinary browser visit.
// Plenty of sites refuse the default Go client identity outright.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
	"Referer":         "https://www.google.com/",
}

type Fetch struct {
	Timeout  time.Duration
	MaxChars int
	MinDelay time.Duration // politeness delay window before each request
	MaxDelay time.Duration
	Client   *http.Client // defaults to a client with Timeout
}

func (f *Fetch) Exec(ctx context.Context, pageURL string) (models.Result, error) {
	if strings.TrimSpace(pageURL) == "" {
		return models.Result{}, errors.New("invalid url")
	}
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return models.Result{}, &models.FetchError{URL: pageURL, Err: err}
	}

	if err := f.politenessDelay(ctx); err != nil {
		return models.Result{}, err
	}

	t0 := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return models.Result{}, &models.FetchError{URL: pageURL, Err: err}
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: f.Timeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return models.Result{}, &models.FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Result{}, &models.FetchError{URL: pageURL, Status: resp.StatusCode}
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") && !strings.Contains(ct, "text") {
		return models.Result{}, &models.FetchError{URL: pageURL, Status: resp.StatusCode, Err: errors.New("unsupported content type " + ct)}
	}

	article, err := readability.FromReader(resp.Body, parsed)
	if err != nil {
		return models.Result{}, &models.FetchError{URL: pageURL, Status: resp.StatusCode, Err: err}
	}

	text := helpers.CollapseWhitespace(article.TextContent)
	text, truncated := helpers.Truncate(text, f.MaxChars)

	return models.Result{
		URL:       pageURL,
		Title:     strings.TrimSpace(article.Title),
		Text:      text,
		Truncated: truncated,
		Status:    resp.StatusCode,
		FetchMS:   int(time.Since(t0) / time.Millisecond),
	}, nil
}

// politenessDelay sleeps for a random duration inside the configured window.
// The delay lowers the chance of being rate-limited by the target site; it
// has no effect on what gets extracted.
func (f *Fetch) politenessDelay(ctx context.Context) error {
	return helpers.RandomDelay(ctx, f.MinDelay, f.MaxDelay)
}
