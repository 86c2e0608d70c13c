package web_fetch

import (
	"context"
	"time"

	"github.com/mohammad-safakhou/webchat/tools/web_fetch/chromedp"
	"github.com/mohammad-safakhou/webchat/tools/web_fetch/httpfetch"
	"github.com/mohammad-safakhou/webchat/tools/web_fetch/models"
)

const (
	DefaultTimeout  = 7 * time.Second
	MaxCharsDefault = 1500
)

type WebFetcher interface {
	Exec(ctx context.Context, url string) (models.Result, error)
}

type FetcherType string

const (
	HTTPFetcherType     FetcherType = "http"
	ChromedpFetcherType FetcherType = "chromedp"
)

type Error struct{ msg string }

func (e *Error) Error() string { return e.msg }

// Options bounds a fetcher's behaviour. MinDelay/MaxDelay are the politeness
// delay window applied before each request; zero disables the delay.
type Options struct {
	Timeout  time.Duration
	MaxChars int
	MinDelay time.Duration
	MaxDelay time.Duration
}

func NewWebFetcher(fetcherType FetcherType, opts Options) (WebFetcher, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxChars <= 0 {
		opts.MaxChars = MaxCharsDefault
	}

	switch fetcherType {
	case HTTPFetcherType:
		return &httpfetch.Fetch{
			Timeout:  opts.Timeout,
			MaxChars: opts.MaxChars,
			MinDelay: opts.MinDelay,
			MaxDelay: opts.MaxDelay,
		}, nil
	case ChromedpFetcherType:
		return chromedp.Fetch{
			Timeout:  opts.Timeout,
			MaxChars: opts.MaxChars,
			MinDelay: opts.MinDelay,
			MaxDelay: opts.MaxDelay,
		}, nil
	default:
		return nil, &Error{"unsupported fetcher type"}
	}
}
