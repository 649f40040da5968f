package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NoFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8882", s.Endpoint)
	assert.Equal(t, DefaultIndexName, s.IndexName)
	assert.Equal(t, DefaultModel, s.Model)
	assert.Equal(t, "airwallex.csv", s.DatasetPath)
	assert.Equal(t, filepath.Join(dir, "history.db"), s.HistoryPath)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := "endpoint = \"http://search.internal:8882\"\nindex_name = \"articles\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://search.internal:8882", s.Endpoint)
	assert.Equal(t, "articles", s.IndexName)
	assert.Equal(t, DefaultModel, s.Model)
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [toml"), 0600))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	s := Defaults(dir)
	s.DatasetPath = "/data/articles.csv"
	require.NoError(t, s.Save(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}
