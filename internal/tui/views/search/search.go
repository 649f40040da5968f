// Package search provides the query and paginated-results view for the
// TUI.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vicilliar/marqo-overall-demo/internal/config"
	"github.com/vicilliar/marqo-overall-demo/internal/domain"
	"github.com/vicilliar/marqo-overall-demo/internal/history"
	"github.com/vicilliar/marqo-overall-demo/internal/logger"
	"github.com/vicilliar/marqo-overall-demo/internal/marqo"
	"github.com/vicilliar/marqo-overall-demo/internal/paginator"
	"github.com/vicilliar/marqo-overall-demo/internal/tui/components/hitlist"
	"github.com/vicilliar/marqo-overall-demo/internal/tui/components/input"
	"github.com/vicilliar/marqo-overall-demo/internal/tui/components/status"
	"github.com/vicilliar/marqo-overall-demo/internal/tui/keymap"
	"github.com/vicilliar/marqo-overall-demo/internal/tui/messages"
	"github.com/vicilliar/marqo-overall-demo/internal/tui/styles"
)

// SearchLimit is the number of hits requested per query, matching the
// three display pages of ten.
const SearchLimit = 30

// recentShown is how many history entries the pre-query screen lists.
const recentShown = 5

// Client is the slice of the service client this view needs.
type Client interface {
	Search(ctx context.Context, index string, req marqo.SearchRequest) (*domain.ResultSet, error)
}

// History records queries and lists recent ones. May be nil.
type History interface {
	Record(ctx context.Context, query string, mode domain.SearchMode, hitCount int) error
	Recent(ctx context.Context, n int) ([]history.Entry, error)
}

// View is the search view: query input, searchable-attribute and
// pre-filter toggles, and the paginated result list. It owns the page
// cursor and passes it to the hit list by reference.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	pager     *paginator.Paginator
	list      *hitlist.HitList
	statusbar *status.Bar

	client   Client
	hist     History
	settings *config.Settings
	ctx      context.Context

	// attrs and filters track the multiselect toggles, indexed in step
	// with domain.SearchableAttributes and domain.FilterCategories. All
	// start selected, as in the defaults of the original UI.
	attrs   []bool
	filters []bool

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing in the query input, false = results navigation
	recent     []history.Entry
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, client Client, hist History, settings *config.Settings) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	pager := paginator.New()
	attrs := make([]bool, len(domain.SearchableAttributes))
	for i := range attrs {
		attrs[i] = true
	}
	filters := make([]bool, len(domain.FilterCategories))
	for i := range filters {
		filters[i] = true
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQueryInput(s),
		pager:      pager,
		list:       hitlist.New(s, pager),
		statusbar:  status.NewBar(s, km),
		client:     client,
		hist:       hist,
		settings:   settings,
		ctx:        context.Background(),
		attrs:      attrs,
		filters:    filters,
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.loadRecent())
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, v.loadRecent()

	case messages.RecentQueriesLoaded:
		if msg.Err == nil {
			v.recent = msg.Entries
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Esc always signals to go back to menu.
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	// Enter in input mode submits the query.
	if msg.Type == tea.KeyEnter && v.focusInput {
		query := v.input.Value()
		if query == "" {
			return v, nil
		}
		v.statusbar.SetState(status.StateSearching)
		v.statusbar.SetMessage("")
		v.focusInput = false
		v.input.Blur()
		return v, v.performSearch(query)
	}

	// Input mode: everything else goes to the input.
	if v.focusInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	// Results mode: pagination, toggles, new search.
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.PrevPage):
		v.pager.Previous()
		return v, nil
	case keymap.Matches(keyStr, v.keymap.NextPage):
		v.pager.Next()
		return v, nil
	case keymap.Matches(keyStr, v.keymap.NewSearch):
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	}

	// 1-3 toggle searchable attributes, 4-7 toggle filter categories.
	if idx := toggleIndex(keyStr, 1, len(v.attrs)); idx >= 0 {
		v.attrs[idx] = !v.attrs[idx]
		return v, nil
	}
	if idx := toggleIndex(keyStr, 1+len(v.attrs), len(v.filters)); idx >= 0 {
		v.filters[idx] = !v.filters[idx]
		return v, nil
	}

	return v, nil
}

// toggleIndex maps a digit key to an index in [0, count), where base is
// the digit bound to index 0. Returns -1 for non-matching keys.
func toggleIndex(keyStr string, base, count int) int {
	if len(keyStr) != 1 || keyStr[0] < '0' || keyStr[0] > '9' {
		return -1
	}
	idx := int(keyStr[0]-'0') - base
	if idx < 0 || idx >= count {
		return -1
	}
	return idx
}

// performSearch runs the query against the service. The mode is chosen
// per query by word count, the filter string from the selected categories.
func (v *View) performSearch(query string) tea.Cmd {
	mode := domain.SelectMode(query)
	req := marqo.SearchRequest{
		Query:                query,
		Mode:                 mode,
		Filter:               domain.FilterString(v.selectedFilters()),
		SearchableAttributes: v.selectedAttrs(),
		Limit:                SearchLimit,
	}
	client := v.client
	hist := v.hist
	index := v.settings.IndexName
	ctx := v.ctx

	return func() tea.Msg {
		rs, err := client.Search(ctx, index, req)
		if err != nil {
			return messages.SearchCompleted{Mode: mode, Err: err}
		}
		if hist != nil {
			if recErr := hist.Record(ctx, query, mode, len(rs.Hits)); recErr != nil {
				logger.Warn("recording query history: %v", recErr)
			}
		}
		return messages.SearchCompleted{Results: *rs, Mode: mode}
	}
}

// handleSearchCompleted installs results or surfaces the failure. A search
// against a missing index is a warning, not an error, and leaves the
// paginator untouched.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if msg.Err != nil {
		if errors.Is(msg.Err, domain.ErrIndexNotFound) {
			v.statusbar.SetState(status.StateWarning)
			v.statusbar.SetMessage("Index does not exist.")
			return
		}
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.pager.Install(msg.Results)
	v.list.SetMode(msg.Mode)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("")
	v.statusbar.SetResultCount(v.pager.Count())
}

// loadRecent fetches the latest history entries.
func (v *View) loadRecent() tea.Cmd {
	if v.hist == nil {
		return nil
	}
	hist := v.hist
	ctx := v.ctx
	return func() tea.Msg {
		entries, err := hist.Recent(ctx, recentShown)
		return messages.RecentQueriesLoaded{Entries: entries, Err: err}
	}
}

// selectedAttrs returns the enabled searchable attributes.
func (v *View) selectedAttrs() []string {
	out := make([]string, 0, len(v.attrs))
	for i, on := range v.attrs {
		if on {
			out = append(out, domain.SearchableAttributes[i])
		}
	}
	return out
}

// selectedFilters returns the enabled filter categories.
func (v *View) selectedFilters() []string {
	out := make([]string, 0, len(v.filters))
	for i, on := range v.filters {
		if on {
			out = append(out, domain.FilterCategories[i])
		}
	}
	return out
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)

	sections = append(sections, v.styles.Title.Render("Marqo Demo"), "")
	sections = append(sections, v.input.View(), "")

	// Live mode readout for the current query text.
	mode := domain.SelectMode(v.input.Value())
	sections = append(sections, v.styles.Muted.Render("Search mode: ")+
		v.styles.Subtitle.Render(mode.Label()), "")

	sections = append(sections, v.renderSettings(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.pager.Active() || v.statusbar.State() == status.StateResults {
		sections = append(sections, v.list.View())
	} else {
		sections = append(sections, v.renderRecent())
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderSettings renders the attribute and filter toggles with their
// binding digits.
func (v *View) renderSettings() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Search Settings"))
	b.WriteString("\n  ")
	b.WriteString(v.styles.Muted.Render("Searchable Attributes: "))
	for i, name := range domain.SearchableAttributes {
		b.WriteString(v.renderToggle(i+1, name, v.attrs[i]))
		b.WriteString(" ")
	}
	b.WriteString("\n  ")
	b.WriteString(v.styles.Muted.Render("Pre-filtering:         "))
	for i, name := range domain.FilterCategories {
		b.WriteString(v.renderToggle(i+1+len(v.attrs), name, v.filters[i]))
		b.WriteString(" ")
	}

	return b.String()
}

// renderToggle renders one multiselect entry like "[1:title]".
func (v *View) renderToggle(digit int, name string, on bool) string {
	label := fmt.Sprintf("[%d:%s]", digit, name)
	if on {
		return v.styles.Normal.Render(label)
	}
	return v.styles.Muted.Render(label)
}

// renderRecent renders the query history shown before any search.
func (v *View) renderRecent() string {
	if len(v.recent) == 0 {
		return v.styles.Muted.Render("Type a query and press enter to search.")
	}

	lines := make([]string, 0, len(v.recent)+1)
	lines = append(lines, v.styles.Subtitle.Render("Recent searches:"))
	for _, e := range v.recent {
		lines = append(lines, v.styles.Muted.Render(
			fmt.Sprintf("  %s (%s, %d hits)", e.Query, e.Mode.Label(), e.HitCount),
		))
	}
	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-14)
	v.statusbar.SetWidth(width)
}

// Reset returns the view to its initial empty state: no results, cursor
// on the no-query sentinel, input focused.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.pager.Reset()
	v.err = nil
	v.statusbar.Clear()
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current query text.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the query text.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Paginator exposes the page cursor, mainly for the app and tests.
func (v *View) Paginator() *paginator.Paginator {
	return v.pager
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the query input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// SelectedAttributes returns the enabled searchable attributes.
func (v *View) SelectedAttributes() []string {
	return v.selectedAttrs()
}

// SelectedFilters returns the enabled filter categories.
func (v *View) SelectedFilters() []string {
	return v.selectedFilters()
}
