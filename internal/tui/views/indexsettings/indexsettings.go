// Package indexsettings provides the index lifecycle view: pick how many
// documents to load, then create or delete the index on the service.
package indexsettings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vicilliar/marqo-overall-demo/internal/config"
	"github.com/vicilliar/marqo-overall-demo/internal/dataset"
	"github.com/vicilliar/marqo-overall-demo/internal/domain"
	"github.com/vicilliar/marqo-overall-demo/internal/marqo"
	"github.com/vicilliar/marqo-overall-demo/internal/tui/keymap"
	"github.com/vicilliar/marqo-overall-demo/internal/tui/messages"
	"github.com/vicilliar/marqo-overall-demo/internal/tui/styles"
)

// Document-count selector bounds, mirroring the original slider.
const (
	CountMin     = 10
	CountMax     = 5000
	CountStep    = 10
	CountDefault = 1000

	// coarseStep is the up/down adjustment.
	coarseStep = 100

	// batchSize is the document upload batch size.
	batchSize = 100
)

// Client is the slice of the service client this view needs.
type Client interface {
	CreateIndex(ctx context.Context, name string, settings marqo.IndexSettings) error
	DeleteIndex(ctx context.Context, name string) error
	AddDocuments(ctx context.Context, index string, docs []marqo.Document, batchSize int) error
}

// Loader reads the CSV dataset, truncated to limit rows.
type Loader func(path string, limit int) ([]dataset.Article, error)

// View is the index settings view.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	client   Client
	load     Loader
	settings *config.Settings
	ctx      context.Context

	count   int
	busy    bool
	message string
	isErr   bool
	width   int
	height  int
	ready   bool
}

// NewView creates a new index settings view.
func NewView(s *styles.Styles, km *keymap.KeyMap, client Client, load Loader, settings *config.Settings) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:   s,
		keymap:   km,
		client:   client,
		load:     load,
		settings: settings,
		ctx:      context.Background(),
		count:    CountDefault,
		width:    80,
		height:   24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the index settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.IndexCreated:
		v.busy = false
		if msg.Err != nil {
			if errors.Is(msg.Err, domain.ErrIndexExists) {
				v.setWarning("Index already exists.")
			} else {
				v.setError(msg.Err)
			}
			return v, nil
		}
		v.setSuccess(fmt.Sprintf("Index successfully created (%d documents).", msg.Documents))
		return v, nil

	case messages.IndexDeleted:
		v.busy = false
		if msg.Err != nil {
			if errors.Is(msg.Err, domain.ErrIndexNotFound) {
				v.setWarning("Index does not exist.")
			} else {
				v.setError(msg.Err)
			}
			return v, nil
		}
		v.setSuccess("Index successfully deleted.")
		return v, nil
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	if v.busy {
		return v, nil
	}

	keyStr := msg.String()
	switch {
	case keyStr == "left" || keyStr == "h":
		v.adjustCount(-CountStep)
	case keyStr == "right" || keyStr == "l":
		v.adjustCount(CountStep)
	case keyStr == "down" || keyStr == "j":
		v.adjustCount(-coarseStep)
	case keyStr == "up" || keyStr == "k":
		v.adjustCount(coarseStep)
	case keymap.Matches(keyStr, v.keymap.Create):
		v.busy = true
		v.message = ""
		return v, v.createIndex()
	case keymap.Matches(keyStr, v.keymap.Delete):
		v.busy = true
		v.message = ""
		return v, v.deleteIndex()
	}
	return v, nil
}

// adjustCount moves the document count selector, clamped to its bounds.
func (v *View) adjustCount(delta int) {
	v.count += delta
	if v.count < CountMin {
		v.count = CountMin
	}
	if v.count > CountMax {
		v.count = CountMax
	}
}

// createIndex loads the dataset and builds the index on the service.
func (v *View) createIndex() tea.Cmd {
	client := v.client
	load := v.load
	s := v.settings
	count := v.count
	ctx := v.ctx

	return func() tea.Msg {
		articles, err := load(s.DatasetPath, count)
		if err != nil {
			return messages.IndexCreated{Err: err}
		}

		err = client.CreateIndex(ctx, s.IndexName, marqo.IndexSettings{
			TreatURLsAndPointersAsImages: false,
			Model:                        s.Model,
		})
		if err != nil {
			return messages.IndexCreated{Err: err}
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
		if err := client.AddDocuments(ctx, s.IndexName, docs, batchSize); err != nil {
			return messages.IndexCreated{Err: err}
		}
		return messages.IndexCreated{Documents: len(docs)}
	}
}

// deleteIndex removes the index from the service.
func (v *View) deleteIndex() tea.Cmd {
	client := v.client
	name := v.settings.IndexName
	ctx := v.ctx

	return func() tea.Msg {
		return messages.IndexDeleted{Err: client.DeleteIndex(ctx, name)}
	}
}

func (v *View) setSuccess(msg string) {
	v.message = msg
	v.isErr = false
}

func (v *View) setWarning(msg string) {
	v.message = msg
	v.isErr = true
}

func (v *View) setError(err error) {
	v.message = err.Error()
	v.isErr = true
}

// View renders the index settings view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Index Settings"))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Normal.Render("Index: "))
	b.WriteString(v.styles.Subtitle.Render(v.settings.IndexName))
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render("Model: "))
	b.WriteString(v.styles.Muted.Render(v.settings.Model))
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render("Dataset: "))
	b.WriteString(v.styles.Muted.Render(v.settings.DatasetPath))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Normal.Render("Documents to load: "))
	b.WriteString(v.renderSlider())
	b.WriteString("\n\n")

	if v.busy {
		b.WriteString(v.styles.Muted.Render("Creating Index..."))
		b.WriteString("\n\n")
	} else if v.message != "" {
		style := v.styles.Success
		if v.isErr {
			style = v.styles.Warning
		}
		b.WriteString(style.Render(v.message))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Muted.Render(
		"←/→ ±10 · ↑/↓ ±100 · c create index · d delete index · esc back"))

	return b.String()
}

// renderSlider draws the document-count selector as a horizontal gauge.
func (v *View) renderSlider() string {
	const cells = 25
	filled := (v.count - CountMin) * cells / (CountMax - CountMin)
	if filled > cells {
		filled = cells
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", cells-filled)
	return v.styles.Subtitle.Render(fmt.Sprintf("%s %d", bar, v.count))
}

// Count returns the selected document count.
func (v *View) Count() int {
	return v.count
}

// SetCount sets the document count, clamped to the selector bounds.
func (v *View) SetCount(count int) {
	v.count = count
	v.adjustCount(0)
}

// Busy reports whether an index operation is in flight.
func (v *View) Busy() bool {
	return v.busy
}

// Message returns the currently displayed outcome message.
func (v *View) Message() string {
	return v.message
}

// Reset clears any outcome message.
func (v *View) Reset() {
	v.message = ""
	v.isErr = false
	v.busy = false
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
