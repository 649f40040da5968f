package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vicilliar/marqo-overall-demo/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() }) //nolint:errcheck
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, "hello", domain.ModeLexical, 0))
	require.NoError(t, s.Record(ctx, "hello world", domain.ModeTensor, 25))

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "hello world", entries[0].Query)
	assert.Equal(t, domain.ModeTensor, entries[0].Mode)
	assert.Equal(t, 25, entries[0].HitCount)
	assert.Equal(t, "hello", entries[1].Query)
	assert.Equal(t, domain.ModeLexical, entries[1].Mode)
	assert.False(t, entries[0].At.IsZero())
}

func TestRecent_Limit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(ctx, "q", domain.ModeLexical, i))
	}

	entries, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, 4, entries[0].HitCount)
}

func TestRecent_Empty(t *testing.T) {
	s := openTestStore(t)

	entries, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "history.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close() //nolint:errcheck
	assert.Equal(t, path, s.Path())
}
