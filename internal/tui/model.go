package tui

import (
	"context"
	"log/slog"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/coffeehub/internal/app"
	"github.com/thenoetrevino/coffeehub/internal/config"
	"github.com/thenoetrevino/coffeehub/internal/database"
	"github.com/thenoetrevino/coffeehub/internal/events"
	"github.com/thenoetrevino/coffeehub/internal/models"
	employeeservice "github.com/thenoetrevino/coffeehub/internal/services/employee"
	memberservice "github.com/thenoetrevino/coffeehub/internal/services/member"
	productservice "github.com/thenoetrevino/coffeehub/internal/services/product"
	"github.com/thenoetrevino/coffeehub/internal/tui/state"
)

// Backend is what the TUI needs from the application container.
type Backend interface {
	Config() *config.Config
	Events() events.EventPublisher
	Origin() string

	Connect(ctx context.Context) ([]database.Backend, error)
	Disconnect()
	Connected() bool
	SeedStatus(ctx context.Context) (map[database.Backend]bool, error)
	Seed(ctx context.Context, b database.Backend) (bool, error)

	Employees() (employeeservice.Service, error)
	Products() (productservice.Service, error)
	Members() (memberservice.Service, error)
}

var _ Backend = (*app.App)(nil)

// Model represents the application state for the TUI
type Model struct {
	ctx    context.Context
	app    Backend
	cfg    *config.Config
	keys   keyMap
	styles styles

	ui    *state.UIState
	notes *state.NotificationState

	eventChan <-chan events.Event

	// hub
	busy       bool
	seedStatus map[database.Backend]bool

	// tables
	employees    []*models.Employee
	products     []*models.Product
	productTypes []string
	typeFilter   string

	// member
	member  *models.Member
	editing *models.Member // profile being edited in the form

	// modal form, nil unless in FormMode
	form *form

	logView viewport.Model
}

// New creates the TUI model over a and starts listening for change events.
func New(ctx context.Context, a Backend) Model {
	cfg := a.Config()
	m := Model{
		ctx:     ctx,
		app:     a,
		cfg:     cfg,
		keys:    newKeyMap(cfg.KeyMappings),
		styles:  newStyles(cfg.Theme),
		ui:      state.NewUIState(),
		notes:   state.NewNotificationState(20),
		logView: viewport.New(),
	}

	if pub := a.Events(); pub != nil {
		ch, err := pub.Listen(ctx)
		if err != nil {
			slog.Warn("live updates unavailable", "error", err)
		} else {
			m.eventChan = ch
		}
	}
	return m
}

// Init initializes the Bubble Tea application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.listenForEvents()}
	if m.cfg.AutoConnect {
		cmds = append(cmds, m.connect())
	}
	return tea.Batch(cmds...)
}

// visibleProducts applies the type filter.
func (m Model) visibleProducts() []*models.Product {
	if m.typeFilter == "" {
		return m.products
	}
	out := make([]*models.Product, 0, len(m.products))
	for _, p := range m.products {
		if p.Type == m.typeFilter {
			out = append(out, p)
		}
	}
	return out
}

// selectedEmployee returns the highlighted employee, or nil.
func (m Model) selectedEmployee() *models.Employee {
	i := m.ui.Selected(state.HRTab)
	if i < 0 || i >= len(m.employees) {
		return nil
	}
	return m.employees[i]
}

// selectedProduct returns the highlighted product under the filter, or nil.
func (m Model) selectedProduct() *models.Product {
	visible := m.visibleProducts()
	i := m.ui.Selected(state.ProductsTab)
	if i < 0 || i >= len(visible) {
		return nil
	}
	return visible[i]
}

// rows returns the row count of the current table tab.
func (m Model) rows() int {
	switch m.ui.Tab() {
	case state.HRTab:
		return len(m.employees)
	case state.ProductsTab:
		return len(m.visibleProducts())
	}
	return 0
}
