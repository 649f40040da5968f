package paginator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vicilliar/marqo-overall-demo/internal/domain"
)

// hits builds a result set of n sequentially titled hits.
func hits(n int) domain.ResultSet {
	rs := domain.ResultSet{Hits: make([]domain.Hit, 0, n)}
	for i := 0; i < n; i++ {
		rs.Hits = append(rs.Hits, domain.Hit{
			URL:   fmt.Sprintf("https://example.com/%d", i),
			Title: fmt.Sprintf("Hit %d", i),
		})
	}
	return rs
}

func TestNew(t *testing.T) {
	p := New()

	assert.Equal(t, -1, p.Page())
	assert.False(t, p.Active())
	assert.Empty(t, p.VisibleSlice())
	assert.Equal(t, "", p.PageLabel())
}

func TestInstall(t *testing.T) {
	p := New()

	p.Install(hits(25))
	assert.Equal(t, 0, p.Page())
	assert.True(t, p.Active())

	// An empty set is valid and returns to the no-query sentinel.
	p.Install(domain.ResultSet{})
	assert.Equal(t, -1, p.Page())
	assert.False(t, p.Active())
	assert.Empty(t, p.VisibleSlice())
}

func TestInstall_SingleHit(t *testing.T) {
	p := New()
	p.Install(hits(1))

	assert.Equal(t, 0, p.Page())
	assert.Len(t, p.VisibleSlice(), 1)
}

func TestNext_ClampedAtMaxPage(t *testing.T) {
	p := New()
	p.Install(hits(30))

	p.Next()
	p.Next()
	assert.Equal(t, 2, p.Page())

	p.Next()
	assert.Equal(t, 2, p.Page())
}

func TestNext_BeforeQueryIsNoop(t *testing.T) {
	p := New()
	p.Next()
	assert.Equal(t, -1, p.Page())
}

func TestPrevious_ClampedAtFirstPage(t *testing.T) {
	p := New()
	p.Install(hits(30))

	p.Previous()
	assert.Equal(t, 0, p.Page())

	p.Next()
	p.Previous()
	assert.Equal(t, 0, p.Page())
}

func TestPrevious_BeforeQueryIsNoop(t *testing.T) {
	p := New()
	p.Previous()
	assert.Equal(t, -1, p.Page())
}

func TestReset(t *testing.T) {
	p := New()
	p.Install(hits(12))
	p.Next()

	p.Reset()
	assert.Equal(t, -1, p.Page())
	assert.Equal(t, 0, p.Count())
	assert.Empty(t, p.VisibleSlice())
	assert.Equal(t, "", p.PageLabel())
}

func TestVisibleSlice_Windows(t *testing.T) {
	p := New()
	p.Install(hits(30))

	for page := 0; page <= MaxPage; page++ {
		slice := p.VisibleSlice()
		require.Len(t, slice, PageSize)
		assert.Equal(t, fmt.Sprintf("Hit %d", page*PageSize), slice[0].Title)
		assert.Equal(t, fmt.Sprintf("Hit %d", page*PageSize+9), slice[9].Title)
		p.Next()
	}
}

func TestVisibleSlice_TailPage(t *testing.T) {
	p := New()
	p.Install(hits(25))

	p.Next()
	p.Next()
	slice := p.VisibleSlice()
	require.Len(t, slice, 5)
	assert.Equal(t, "Hit 20", slice[0].Title)
}

func TestVisibleSlice_PastEndOfResults(t *testing.T) {
	// 15 hits only fill pages 0 and 1; the cursor can still reach page 2,
	// where the window is empty.
	p := New()
	p.Install(hits(15))

	p.Next()
	assert.Len(t, p.VisibleSlice(), 5)

	p.Next()
	assert.Equal(t, 2, p.Page())
	assert.Empty(t, p.VisibleSlice())
}

func TestPageLabel(t *testing.T) {
	p := New()
	assert.Equal(t, "", p.PageLabel())

	p.Install(hits(30))
	assert.Equal(t, "1", p.PageLabel())

	p.Next()
	assert.Equal(t, "2", p.PageLabel())

	p.Next()
	assert.Equal(t, "3", p.PageLabel())
}

func TestEndToEndScenario(t *testing.T) {
	p := New()

	p.Install(hits(25))
	assert.Equal(t, 0, p.Page())
	assert.Len(t, p.VisibleSlice(), 10)

	p.Next()
	p.Next()
	assert.Equal(t, 2, p.Page())
	assert.Len(t, p.VisibleSlice(), 5)

	p.Next()
	assert.Equal(t, 2, p.Page())
}

func TestInstall_DoesNotMutateResults(t *testing.T) {
	p := New()
	rs := hits(30)
	p.Install(rs)

	p.Next()
	p.Previous()
	p.Next()
	p.Next()

	got := p.Results()
	require.Len(t, got.Hits, 30)
	assert.Equal(t, "Hit 0", got.Hits[0].Title)
	assert.Equal(t, "Hit 29", got.Hits[29].Title)
}
