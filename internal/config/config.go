// Package config loads and persists the demo's settings from a TOML file
// in the user's config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/vicilliar/marqo-overall-demo/internal/marqo"
)

// DefaultModel is the embedding model used for new indexes.
const DefaultModel = "flax-sentence-embeddings/all_datasets_v4_mpnet-base"

// DefaultIndexName is the index the demo creates and queries.
const DefaultIndexName = "airwallex-v4mpnetbase"

const fileName = "config.toml"

// Settings holds everything the demo needs to talk to the search service
// and load the dataset.
type Settings struct {
	// Endpoint is the search service base URL.
	Endpoint string `toml:"endpoint"`

	// IndexName is the index to create, load, and query.
	IndexName string `toml:"index_name"`

	// Model is the embedding model for index creation.
	Model string `toml:"model"`

	// DatasetPath is the CSV article dataset.
	DatasetPath string `toml:"dataset_path"`

	// HistoryPath is the sqlite database holding recent queries.
	HistoryPath string `toml:"history_path"`
}

// DefaultDir returns the demo's config directory, ~/.marqo-demo.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".marqo-demo"), nil
}

// Defaults returns settings for a local docker-hosted service, with state
// files rooted at configDir.
func Defaults(configDir string) *Settings {
	return &Settings{
		Endpoint:    marqo.DefaultEndpoint,
		IndexName:   DefaultIndexName,
		Model:       DefaultModel,
		DatasetPath: "airwallex.csv",
		HistoryPath: filepath.Join(configDir, "history.db"),
	}
}

// Load reads settings from configDir, filling any missing field with its
// default. A missing config file yields pure defaults.
func Load(configDir string) (*Settings, error) {
	s := Defaults(configDir)

	data, err := os.ReadFile(filepath.Join(configDir, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var loaded Settings
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if loaded.Endpoint != "" {
		s.Endpoint = loaded.Endpoint
	}
	if loaded.IndexName != "" {
		s.IndexName = loaded.IndexName
	}
	if loaded.Model != "" {
		s.Model = loaded.Model
	}
	if loaded.DatasetPath != "" {
		s.DatasetPath = loaded.DatasetPath
	}
	if loaded.HistoryPath != "" {
		s.HistoryPath = loaded.HistoryPath
	}
	return s, nil
}

// Save writes settings to configDir, creating the directory if needed.
func (s *Settings) Save(configDir string) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(filepath.Join(configDir, fileName), data, 0600)
}
