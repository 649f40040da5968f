// Package dataset loads the CSV article dataset that gets indexed into
// the search service.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/vicilliar/marqo-overall-demo/internal/logger"
)

// Header is the required CSV column set, in order.
var Header = []string{"url", "title", "body", "scraped_from"}

// Article is one row of the dataset.
type Article struct {
	URL         string
	Title       string
	Body        string
	ScrapedFrom string
}

// Load reads articles from the CSV file at path, truncating to the first
// limit rows. A limit <= 0 loads every row.
func Load(path string, limit int) ([]Article, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(Header)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}
	for i, want := range Header {
		if header[i] != want {
			return nil, fmt.Errorf("dataset column %d is %q, want %q", i, header[i], want)
		}
	}

	var articles []Article
	for limit <= 0 || len(articles) < limit {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading dataset row %d: %w", len(articles)+2, err)
		}
		articles = append(articles, Article{
			URL:         record[0],
			Title:       record[1],
			Body:        record[2],
			ScrapedFrom: record[3],
		})
	}

	logger.Info("loaded %d articles from %s", len(articles), path)
	return articles, nil
}
