// Package hitlist renders the visible page of search hits.
package hitlist

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vicilliar/marqo-overall-demo/internal/domain"
	"github.com/vicilliar/marqo-overall-demo/internal/paginator"
	"github.com/vicilliar/marqo-overall-demo/internal/tui/styles"
)

// HitList displays the current page of a paginated result set. The
// paginator is owned by the search view and shared by reference; the list
// only reads from it.
type HitList struct {
	pager  *paginator.Paginator
	mode   domain.SearchMode
	styles *styles.Styles
	width  int
	height int
}

// New creates a hit list over the given paginator.
func New(s *styles.Styles, pager *paginator.Paginator) *HitList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &HitList{
		pager:  pager,
		styles: s,
		width:  80,
		height: 20,
	}
}

// Init initialises the hit list.
func (l *HitList) Init() tea.Cmd {
	return nil
}

// Update handles messages. Navigation happens on the paginator via the
// search view, so the list itself is passive.
func (l *HitList) Update(msg tea.Msg) (*HitList, tea.Cmd) {
	return l, nil
}

// SetMode records the search mode of the installed results, which decides
// highlight resolution.
func (l *HitList) SetMode(mode domain.SearchMode) {
	l.mode = mode
}

// Mode returns the recorded search mode.
func (l *HitList) Mode() domain.SearchMode {
	return l.mode
}

// View renders the current page with a pagination footer.
func (l *HitList) View() string {
	// An empty set after a search leaves the cursor on the no-query
	// sentinel, so the count is the only signal here.
	if l.pager.Count() == 0 {
		return l.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, paginator.PageSize*4+4)

	header := l.styles.Subtitle.Render(fmt.Sprintf("Results (Top %d):", l.pager.Count()))
	lines = append(lines, header, "")

	offset := l.pager.Page() * paginator.PageSize
	for i, hit := range l.pager.VisibleSlice() {
		lines = append(lines, l.renderHit(offset+i, hit)...)
	}

	lines = append(lines, "", l.renderFooter())
	return strings.Join(lines, "\n")
}

// renderHit formats a single hit: numbered title with score, optional
// highlight snippet, and the url.
func (l *HitList) renderHit(index int, hit domain.Hit) []string {
	title := hit.Title
	if title == "" {
		title = "(Untitled)"
	}
	title = truncate(fmt.Sprintf("%d - %s", index+1, title), l.width-12)

	titleLine := l.styles.Normal.Render(title) +
		l.styles.Muted.Render(fmt.Sprintf("  %.4f", hit.Score))

	lines := []string{titleLine}
	if snippet := hit.Highlight(l.mode); snippet != "" {
		lines = append(lines, l.styles.Highlight.Render("    "+truncate(snippet, l.width-8)))
	}
	lines = append(lines, l.styles.Muted.Render("    "+truncate(hit.URL, l.width-8)))
	return lines
}

// renderFooter shows the 1-based page number between prev/next hints.
func (l *HitList) renderFooter() string {
	return l.styles.Muted.Render("← prev  ") +
		l.styles.Subtitle.Render("Page "+l.pager.PageLabel()) +
		l.styles.Muted.Render("  next →")
}

// SetDimensions sets the component dimensions.
func (l *HitList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the current width.
func (l *HitList) Width() int {
	return l.width
}

// Height returns the current height.
func (l *HitList) Height() int {
	return l.height
}

func truncate(s string, max int) string {
	if max < 10 {
		max = 10
	}
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
