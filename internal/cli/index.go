package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vicilliar/marqo-overall-demo/internal/dataset"
	"github.com/vicilliar/marqo-overall-demo/internal/domain"
	"github.com/vicilliar/marqo-overall-demo/internal/logger"
	"github.com/vicilliar/marqo-overall-demo/internal/marqo"
)

var indexDocs int

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the search index",
}

var indexCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the index and load documents from the dataset",
	RunE:  runIndexCreate,
}

var indexDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the index",
	RunE:  runIndexDelete,
}

func init() {
	indexCreateCmd.Flags().IntVar(&indexDocs, "docs", 1000, "number of dataset rows to load")
	indexCmd.AddCommand(indexCreateCmd)
	indexCmd.AddCommand(indexDeleteCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexCreate(cmd *cobra.Command, _ []string) error {
	logger.Section("Index creation")

	articles, err := dataset.Load(settings.DatasetPath, indexDocs)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	err = client.CreateIndex(cmd.Context(), settings.IndexName, marqo.IndexSettings{
		TreatURLsAndPointersAsImages: false,
		Model:                        settings.Model,
	})
	if err != nil {
		if errors.Is(err, domain.ErrIndexExists) {
			cmd.PrintErrln("Index already exists.")
			return nil
		}
		return fmt.Errorf("creating index: %w", err)
	}

	docs := make([]marqo.Document, 0, len(articles))
	for _, a := range articles {
		docs = append(docs, marqo.Document{
			URL:         a.URL,
			Title:       a.Title,
			Body:        a.Body,
			ScrapedFrom: a.ScrapedFrom,
		})
	}

	cmd.Printf("Creating Index... (%d documents)\n", len(docs))
	if err := client.AddDocuments(cmd.Context(), settings.IndexName, docs, 100); err != nil {
		return fmt.Errorf("adding documents: %w", err)
	}

	cmd.Println("Index successfully created.")
	return nil
}

func runIndexDelete(cmd *cobra.Command, _ []string) error {
	if err := client.DeleteIndex(cmd.Context(), settings.IndexName); err != nil {
		if errors.Is(err, domain.ErrIndexNotFound) {
			cmd.PrintErrln("Index does not exist.")
			return nil
		}
		return fmt.Errorf("deleting index: %w", err)
	}

	cmd.Println("Index successfully deleted.")
	return nil
}
