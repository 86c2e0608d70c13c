package web_search

import (
	"context"

	"github.com/mohammad-safakhou/webchat/tools/web_search/brave"
	"github.com/mohammad-safakhou/webchat/tools/web_search/google"
	"github.com/mohammad-safakhou/webchat/tools/web_search/models"
	"github.com/mohammad-safakhou/webchat/tools/web_search/serper"
)

type WebSearcher interface {
	Discover(ctx context.Context, q string, k int) ([]models.Result, error)
}

type Provider string

const (
	GoogleProvider Provider = "google"
	BraveProvider  Provider = "brave"
	SerperProvider Provider = "serper"
)

type Error struct{ msg string }

func (e *Error) Error() string { return e.msg }

var ErrUnsupportedProvider = &Error{"unsupported provider"}

// NewWebSearcher builds a searcher for the given provider. engineID is the
// custom search engine identifier and is only meaningful for google.
func NewWebSearcher(provider Provider, apiKey, engineID string) (WebSearcher, error) {
	switch provider {
	case GoogleProvider:
		if engineID == "" {
			return nil, &Error{"google search requires an engine id"}
		}
		return google.Search{ApiKey: apiKey, EngineID: engineID}, nil
	case BraveProvider:
		return brave.Search{ApiKey: apiKey}, nil
	case SerperProvider:
		return serper.Search{ApiKey: apiKey}, nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
