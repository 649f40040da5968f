package domain

import "strings"

// SearchMode selects how the search service matches a query.
type SearchMode int

const (
	// ModeLexical is exact/keyword text search.
	ModeLexical SearchMode = iota

	// ModeTensor is similarity search over vector embeddings.
	ModeTensor
)

// String returns the wire value expected by the search service.
func (m SearchMode) String() string {
	if m == ModeTensor {
		return "TENSOR"
	}
	return "LEXICAL"
}

// Label returns a human-readable name for display.
func (m SearchMode) Label() string {
	if m == ModeTensor {
		return "Tensor"
	}
	return "Lexical"
}

// SelectMode picks the search mode for a query by word count: multi-word
// queries use tensor search, single words use lexical search. The query is
// split on single spaces, so an empty string counts as one (empty) token
// and selects lexical mode.
func SelectMode(query string) SearchMode {
	if len(strings.Split(query, " ")) > 1 {
		return ModeTensor
	}
	return ModeLexical
}

// SearchableAttributes are the document fields a query may match against.
var SearchableAttributes = []string{"title", "body", "scraped_from"}

// ResultSet holds the ordered hits of one search response. An empty set is
// a valid state, distinct from "no query issued yet" (which the paginator
// tracks via its cursor).
type ResultSet struct {
	Hits []Hit `json:"hits"`
}

// Hit is a single search result as surfaced to the UI.
type Hit struct {
	URL        string     `json:"url"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Score      float64    `json:"_score"`
	Highlights Highlights `json:"_highlights"`
}

// Highlight resolves the snippet to display for a hit under the given
// search mode. Tensor mode surfaces the first highlight entry the service
// produced; lexical highlight data is intentionally not surfaced. The
// empty string means no highlight.
func (h Hit) Highlight(mode SearchMode) string {
	if h.Highlights.Empty() || mode != ModeTensor {
		return ""
	}
	return h.Highlights.Entries[0].Snippet
}
