// Package cli wires the cobra command tree for the demo.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vicilliar/marqo-overall-demo/internal/config"
	"github.com/vicilliar/marqo-overall-demo/internal/history"
	"github.com/vicilliar/marqo-overall-demo/internal/logger"
	"github.com/vicilliar/marqo-overall-demo/internal/marqo"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verboseFlag  bool
	configDir    string
	endpointFlag string
	indexFlag    string
	datasetFlag  string
)

// Runtime state shared by subcommands, built in initRuntime.
var (
	settings  *config.Settings
	client    *marqo.Client
	histStore *history.Store
)

var rootCmd = &cobra.Command{
	Use:   "marqo-demo",
	Short: "Interactive search demo over a hosted Marqo index",
	Long: `marqo-demo drives a hosted Marqo-style search service over a CSV
article dataset: create and delete the index, load documents, and issue
tensor or lexical queries with paginated results.

Run without arguments to launch the interactive terminal UI.`,
	SilenceUsage:      true,
	PersistentPreRunE: initRuntime,
	RunE:              runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.marqo-demo)")
	rootCmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", "", "search service URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&indexFlag, "index", "", "index name (overrides config)")
	rootCmd.PersistentFlags().StringVar(&datasetFlag, "dataset", "", "CSV dataset path (overrides config)")
}

// initRuntime loads settings and builds the service client before any
// command runs.
func initRuntime(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	dir := configDir
	if dir == "" {
		var err error
		dir, err = config.DefaultDir()
		if err != nil {
			return fmt.Errorf("resolving config directory: %w", err)
		}
	}

	var err error
	settings, err = config.Load(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if endpointFlag != "" {
		settings.Endpoint = endpointFlag
	}
	if indexFlag != "" {
		settings.IndexName = indexFlag
	}
	if datasetFlag != "" {
		settings.DatasetPath = datasetFlag
	}

	client = marqo.New(settings.Endpoint)

	// History is best-effort; the demo works without it.
	histStore, err = history.Open(settings.HistoryPath)
	if err != nil {
		logger.Warn("query history unavailable: %v", err)
		histStore = nil
	}

	logger.Debug("endpoint=%s index=%s dataset=%s", settings.Endpoint, settings.IndexName, settings.DatasetPath)
	return nil
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if histStore != nil {
			histStore.Close() //nolint:errcheck
		}
	}()
	return rootCmd.Execute()
}
