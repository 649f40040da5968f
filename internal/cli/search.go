package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vicilliar/marqo-overall-demo/internal/domain"
	"github.com/vicilliar/marqo-overall-demo/internal/logger"
	"github.com/vicilliar/marqo-overall-demo/internal/marqo"
)

var (
	searchFilters []string
	searchAttrs   []string
	searchLimit   int
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the index",
	Long: `Issues one query against the hosted index. Multi-word queries run as
tensor (embedding similarity) search, single words as lexical search.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringSliceVar(&searchFilters, "filter", nil,
		"category labels to pre-filter on (faq, blogs, landing, newsroom)")
	searchCmd.Flags().StringSliceVar(&searchAttrs, "attrs", domain.SearchableAttributes,
		"searchable attributes")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 30, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	mode := domain.SelectMode(query)
	cmd.Printf("Search mode: %s\n", mode.Label())

	rs, err := client.Search(cmd.Context(), settings.IndexName, marqo.SearchRequest{
		Query:                query,
		Mode:                 mode,
		Filter:               domain.FilterString(searchFilters),
		SearchableAttributes: searchAttrs,
		Limit:                searchLimit,
	})
	if err != nil {
		if errors.Is(err, domain.ErrIndexNotFound) {
			cmd.PrintErrln("Index does not exist.")
			return nil
		}
		return fmt.Errorf("search failed: %w", err)
	}

	if histStore != nil {
		if recErr := histStore.Record(cmd.Context(), query, mode, len(rs.Hits)); recErr != nil {
			logger.Warn("recording query history: %v", recErr)
		}
	}

	if searchJSON {
		return outputSearchJSON(cmd, rs)
	}
	return outputSearchTable(cmd, rs, mode)
}

func outputSearchJSON(cmd *cobra.Command, rs *domain.ResultSet) error {
	data, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, rs *domain.ResultSet, mode domain.SearchMode) error {
	if len(rs.Hits) == 0 {
		cmd.Println("No results")
		return nil
	}

	cmd.Printf("Results (Top %d):\n\n", len(rs.Hits))
	for i, hit := range rs.Hits {
		title := hit.Title
		if title == "" {
			title = hit.URL
		}

		cmd.Printf("  [%d] %s (%.4f)\n", i+1, title, hit.Score)
		if snippet := hit.Highlight(mode); snippet != "" {
			cmd.Printf("      %s\n", snippet)
		}
		cmd.Printf("      %s\n\n", hit.URL)
	}
	return nil
}
