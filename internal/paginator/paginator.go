// Package paginator implements the page cursor over a search result set.
// It owns which window of hits is visible and handles prev/next
// navigation; it never mutates the hits themselves.
package paginator

import (
	"strconv"

	"github.com/vicilliar/marqo-overall-demo/internal/domain"
)

const (
	// PageSize is the number of hits shown per page.
	PageSize = 10

	// MaxPage is the highest page index, capping the display at
	// 3 pages x 10 hits = 30, matching the query limit.
	MaxPage = 2

	// noQuery is the cursor sentinel for "no query issued yet".
	noQuery = -1
)

// Paginator tracks the current result set and page cursor. The zero value
// is not ready for use; call New.
type Paginator struct {
	results domain.ResultSet
	page    int
}

// New returns a paginator in the "no query issued" state.
func New() *Paginator {
	return &Paginator{page: noQuery}
}

// Install replaces the stored result set. The cursor moves to the first
// page when the set has hits, and to the no-query sentinel otherwise.
func (p *Paginator) Install(results domain.ResultSet) {
	p.results = results
	if len(results.Hits) > 0 {
		p.page = 0
	} else {
		p.page = noQuery
	}
}

// Next advances to the following page. A no-op at the last page or before
// any query.
func (p *Paginator) Next() {
	if p.page >= 0 && p.page < MaxPage {
		p.page++
	}
}

// Previous moves back one page. A no-op at the first page or before any
// query.
func (p *Paginator) Previous() {
	if p.page > 0 {
		p.page--
	}
}

// Reset clears the result set and returns the cursor to the no-query
// sentinel. Used when switching top-level modes.
func (p *Paginator) Reset() {
	p.results = domain.ResultSet{}
	p.page = noQuery
}

// VisibleSlice returns the hits of the current page, fewer at the tail.
// Before any query it returns nil.
func (p *Paginator) VisibleSlice() []domain.Hit {
	if p.page < 0 {
		return nil
	}

	start := p.page * PageSize
	if start >= len(p.results.Hits) {
		return nil
	}
	end := start + PageSize
	if end > len(p.results.Hits) {
		end = len(p.results.Hits)
	}
	return p.results.Hits[start:end]
}

// PageLabel returns the 1-based page number for display, or the empty
// string before any query.
func (p *Paginator) PageLabel() string {
	if p.page < 0 {
		return ""
	}
	return strconv.Itoa(p.page + 1)
}

// Page returns the current page index; -1 means no query has been issued.
func (p *Paginator) Page() int {
	return p.page
}

// Active reports whether results are being shown.
func (p *Paginator) Active() bool {
	return p.page >= 0
}

// Results returns the installed result set.
func (p *Paginator) Results() domain.ResultSet {
	return p.results
}

// Count returns the total number of installed hits.
func (p *Paginator) Count() int {
	return len(p.results.Hits)
}
