package models

import "fmt"

// Result is the readable text extracted from one page. Text is capped by the
// fetcher's configured maximum; Truncated reports whether anything was cut.
type Result struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Truncated bool   `json:"truncated"`
	Status    int    `json:"status"`
	FetchMS   int    `json:"fetch_ms"`
}

// FetchError reports a candidate page that could not be scraped: access
// denied, transport failure, unusable content. Callers skip the candidate and
// move to the next one.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }
