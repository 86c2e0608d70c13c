package chromedp

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	readability "github.com/go-shiori/go-readability"

	"github.com/mohammad-safakhou/webchat/internal/helpers"
	"github.com/mohammad-safakhou/webchat/tools/web_fetch/models"
)

// Fetch renders the page in headless Chrome before extraction. Slower than
// the plain HTTP fetcher but handles script-heavy pages.
type Fetch struct {
	Timeout  time.Duration
	MaxChars int
	MinDelay time.Duration // politeness delay window before each request
	MaxDelay time.Duration
}

func (f Fetch) Exec(ctx context.Context, pageURL string) (models.Result, error) {
	if strings.TrimSpace(pageURL) == "" {
		return models.Result{}, errors.New("invalid url")
	}
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return models.Result{}, &models.FetchError{URL: pageURL, Err: err}
	}

	if err := helpers.RandomDelay(ctx, f.MinDelay, f.MaxDelay); err != nil {
		return models.Result{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()
	t0 := time.Now()

	html, err := fetchHTML(ctx, pageURL)
	if err != nil {
		return models.Result{}, &models.FetchError{URL: pageURL, Err: err}
	}

	article, err := readability.FromReader(strings.NewReader(html), parsed)
	if err != nil {
		return models.Result{}, &models.FetchError{URL: pageURL, Err: err}
	}

	text := helpers.CollapseWhitespace(article.TextContent)
	text, truncated := helpers.Truncate(text, f.MaxChars)

	return models.Result{
		URL:       pageURL,
		Title:     strings.TrimSpace(article.Title),
		Text:      text,
		Truncated: truncated,
		Status:    200,
		FetchMS:   int(time.Since(t0) / time.Millisecond),
	}, nil
}

func fetchHTML(ctx context.Context, pageURL string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"),
	)
	actx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	bctx, cancelBrowser := chromedp.NewContext(actx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(bctx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	return html, err
}
