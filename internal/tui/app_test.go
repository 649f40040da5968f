package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vicilliar/marqo-overall-demo/internal/config"
	"github.com/vicilliar/marqo-overall-demo/internal/dataset"
	"github.com/vicilliar/marqo-overall-demo/internal/domain"
	"github.com/vicilliar/marqo-overall-demo/internal/marqo"
	"github.com/vicilliar/marqo-overall-demo/internal/tui/messages"
)

// MockSearchClient implements SearchClient for testing.
type MockSearchClient struct {
	SearchFunc func(ctx context.Context, index string, req marqo.SearchRequest) (*domain.ResultSet, error)
}

func (m *MockSearchClient) CreateIndex(_ context.Context, _ string, _ marqo.IndexSettings) error {
	return nil
}

func (m *MockSearchClient) DeleteIndex(_ context.Context, _ string) error {
	return nil
}

func (m *MockSearchClient) AddDocuments(_ context.Context, _ string, _ []marqo.Document, _ int) error {
	return nil
}

func (m *MockSearchClient) Search(ctx context.Context, index string, req marqo.SearchRequest) (*domain.ResultSet, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, index, req)
	}
	return &domain.ResultSet{}, nil
}

func testPorts() *Ports {
	return &Ports{
		Client: &MockSearchClient{},
		LoadDataset: func(_ string, _ int) ([]dataset.Article, error) {
			return nil, nil
		},
		Settings: config.Defaults("/tmp/marqo-demo-test"),
	}
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(testPorts())

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.False(t, app.Ready())
}

func TestNewApp_MissingPorts(t *testing.T) {
	_, err := NewApp(nil)
	assert.Error(t, err)

	_, err = NewApp(&Ports{})
	assert.Error(t, err)

	ports := testPorts()
	ports.Settings = nil
	_, err = NewApp(ports)
	assert.Error(t, err)
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(testPorts())
	require.NoError(t, err)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = model.(*App)

	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "Marqo Demo")
}

func TestApp_ViewRouting(t *testing.T) {
	app, err := NewApp(testPorts())
	require.NoError(t, err)
	app.SetDimensions(100, 40)

	model, _ := app.Update(messages.ViewChanged{View: messages.ViewSearch})
	app = model.(*App)
	assert.Equal(t, messages.ViewSearch, app.CurrentView())
	assert.Contains(t, app.View(), "Search Settings")

	model, _ = app.Update(messages.ViewChanged{View: messages.ViewIndex})
	app = model.(*App)
	assert.Equal(t, messages.ViewIndex, app.CurrentView())
	assert.Contains(t, app.View(), "Index Settings")

	model, _ = app.Update(messages.ViewChanged{View: messages.ViewHelp})
	app = model.(*App)
	assert.Contains(t, app.View(), "Help")
}

func TestApp_CtrlCQuits(t *testing.T) {
	app, err := NewApp(testPorts())
	require.NoError(t, err)
	app.SetDimensions(100, 40)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_EnteringSearchResetsResults(t *testing.T) {
	app, err := NewApp(testPorts())
	require.NoError(t, err)
	app.SetDimensions(100, 40)

	// Install results, leave, and come back: the page cursor is back on
	// the no-query sentinel.
	rs := domain.ResultSet{Hits: []domain.Hit{{URL: "https://example.com", Title: "Hit"}}}
	model, _ := app.Update(messages.ViewChanged{View: messages.ViewSearch})
	app = model.(*App)
	model, _ = app.Update(messages.SearchCompleted{Results: rs, Mode: domain.ModeTensor})
	app = model.(*App)

	model, _ = app.Update(messages.ViewChanged{View: messages.ViewMenu})
	app = model.(*App)
	model, _ = app.Update(messages.ViewChanged{View: messages.ViewSearch})
	app = model.(*App)

	assert.NotContains(t, app.View(), "Results (Top")
}

func TestApp_SearchErrorSurfaced(t *testing.T) {
	app, err := NewApp(testPorts())
	require.NoError(t, err)
	app.SetDimensions(100, 40)

	model, _ := app.Update(messages.ViewChanged{View: messages.ViewSearch})
	app = model.(*App)
	model, _ = app.Update(messages.SearchCompleted{Mode: domain.ModeLexical, Err: assert.AnError})
	app = model.(*App)

	assert.Error(t, app.Err())
}
