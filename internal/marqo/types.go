package marqo

import "github.com/vicilliar/marqo-overall-demo/internal/domain"

// IndexSettings configures a new index on the service.
type IndexSettings struct {
	// TreatURLsAndPointersAsImages enables image indexing for URL fields.
	// The demo indexes text only.
	TreatURLsAndPointersAsImages bool `json:"treat_urls_and_pointers_as_images"`

	// Model names the embedding model the index uses.
	Model string `json:"model"`
}

// Document is one record to index.
type Document struct {
	// ID is the service-side document identifier. Left empty, AddDocuments
	// assigns one.
	ID          string `json:"_id,omitempty"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	ScrapedFrom string `json:"scraped_from"`
}

// SearchRequest describes one search call.
type SearchRequest struct {
	Query                string
	Mode                 domain.SearchMode
	Filter               string
	SearchableAttributes []string
	Limit                int
}

// searchBody is the wire form of a search request.
type searchBody struct {
	Q                    string   `json:"q"`
	SearchMethod         string   `json:"searchMethod"`
	Filter               string   `json:"filter,omitempty"`
	SearchableAttributes []string `json:"searchableAttributes,omitempty"`
	Limit                int      `json:"limit,omitempty"`
}

// errorBody is the service's error payload.
type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}
