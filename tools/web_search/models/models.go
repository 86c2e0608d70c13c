package models

// Result is a single ranked search hit. Order is significant: providers
// return results ranked, and callers must preserve that order.
type Result struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}
