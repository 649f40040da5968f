package tui

import (
	"context"
	"errors"

	"github.com/vicilliar/marqo-overall-demo/internal/config"
	"github.com/vicilliar/marqo-overall-demo/internal/dataset"
	"github.com/vicilliar/marqo-overall-demo/internal/domain"
	"github.com/vicilliar/marqo-overall-demo/internal/history"
	"github.com/vicilliar/marqo-overall-demo/internal/marqo"
)

// SearchClient is the slice of the service client the TUI uses.
// *marqo.Client satisfies it.
type SearchClient interface {
	CreateIndex(ctx context.Context, name string, settings marqo.IndexSettings) error
	DeleteIndex(ctx context.Context, name string) error
	AddDocuments(ctx context.Context, index string, docs []marqo.Document, batchSize int) error
	Search(ctx context.Context, index string, req marqo.SearchRequest) (*domain.ResultSet, error)
}

// DatasetLoader reads articles from a CSV file, truncated to limit rows.
type DatasetLoader func(path string, limit int) ([]dataset.Article, error)

// HistoryStore records executed queries and lists recent ones.
// *history.Store satisfies it.
type HistoryStore interface {
	Record(ctx context.Context, query string, mode domain.SearchMode, hitCount int) error
	Recent(ctx context.Context, n int) ([]history.Entry, error)
}

// Ports bundles the collaborators the TUI drives.
type Ports struct {
	// Client talks to the search service. Required.
	Client SearchClient

	// LoadDataset reads the CSV dataset for index creation. Required.
	LoadDataset DatasetLoader

	// History is the recent-query store. Optional; nil disables history.
	History HistoryStore

	// Settings carries endpoint, index name, model, and dataset path.
	// Required.
	Settings *config.Settings
}

// Validate checks that required ports are wired.
func (p *Ports) Validate() error {
	if p == nil {
		return errors.New("nil ports")
	}
	if p.Client == nil {
		return errors.New("search client is required")
	}
	if p.LoadDataset == nil {
		return errors.New("dataset loader is required")
	}
	if p.Settings == nil {
		return errors.New("settings are required")
	}
	return nil
}
