// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and command results that flow through the Elm
// architecture.
package messages

import (
	"github.com/vicilliar/marqo-overall-demo/internal/domain"
	"github.com/vicilliar/marqo-overall-demo/internal/history"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the query input and paginated results view.
	ViewSearch
	// ViewIndex is the index settings view (create/delete/load).
	ViewIndex
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewIndex:
		return "index"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// SearchCompleted carries a search response back to the model. Mode is the
// search mode the query ran under, needed for highlight resolution.
type SearchCompleted struct {
	Results domain.ResultSet
	Mode    domain.SearchMode
	Err     error
}

// IndexCreated signals index creation and document loading finished.
type IndexCreated struct {
	Documents int
	Err       error
}

// IndexDeleted signals index deletion finished.
type IndexDeleted struct {
	Err error
}

// RecentQueriesLoaded carries the query history for display.
type RecentQueriesLoaded struct {
	Entries []history.Entry
	Err     error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
