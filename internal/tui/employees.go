package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/coffeehub/internal/cli"
	"github.com/thenoetrevino/coffeehub/internal/models"
	"github.com/thenoetrevino/coffeehub/internal/tui/state"
)

func (m Model) handleEmployeeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.handleTableNav(msg) {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Add):
		if !m.requireConnection() {
			return m, nil
		}
		return m, m.openEmployeeForm(nil)
	case key.Matches(msg, m.keys.Edit):
		if e := m.selectedEmployee(); e != nil {
			return m, m.openEmployeeForm(e)
		}
	case key.Matches(msg, m.keys.Delete):
		if m.selectedEmployee() != nil {
			m.ui.SetMode(state.DeleteConfirmMode)
		}
	case key.Matches(msg, m.keys.Refresh):
		if m.requireConnection() {
			return m, m.loadEmployees()
		}
	}
	return m, nil
}

// openEmployeeForm edits e, or a new employee when e is nil.
func (m *Model) openEmployeeForm(e *models.Employee) tea.Cmd {
	title := "New employee"
	if e == nil {
		e = &models.Employee{Male: true}
	} else {
		title = "Edit employee " + e.ID
	}
	birth := ""
	if !e.Birth.IsZero() {
		birth = e.Birth.Format(models.DateLayout)
	}

	f := newForm(employeeForm, title).
		addReadOnly("id", "ID", e.ID, "assigned on save").
		add("name", "Name", e.Name, "Full name").
		add("birth", "Birth", birth, models.DateLayout).
		add("gender", "Gender", cli.GenderLabel(e.Male), "male / female").
		add("job", "Job", e.Job, "Job title").
		add("department", "Department", e.Department, "").
		add("branch", "Branch", e.Branch, "")
	return m.openForm(f)
}

func employeeFromForm(f *form) (*models.Employee, error) {
	birth, err := cli.ParseDate("birth", f.value("birth"))
	if err != nil {
		return nil, err
	}
	male, err := cli.ParseGender(f.value("gender"))
	if err != nil {
		return nil, err
	}
	return &models.Employee{
		ID:         f.value("id"),
		Name:       f.value("name"),
		Birth:      birth,
		Male:       male,
		Job:        f.value("job"),
		Department: f.value("department"),
		Branch:     f.value("branch"),
	}, nil
}

func (m Model) viewEmployees() string {
	if !m.app.Connected() {
		return m.styles.subtle.Render("Connect on the Hub tab to see employees.")
	}
	rows := make([][]string, len(m.employees))
	for i, e := range m.employees {
		rows[i] = []string{
			e.ID,
			e.Name,
			e.Birth.Format(models.DateLayout),
			cli.GenderLabel(e.Male),
			e.Job,
			e.Department,
			e.Branch,
		}
	}
	var b strings.Builder
	b.WriteString(renderTable(m.styles,
		[]string{"ID", "Name", "Birth", "Gender", "Job", "Department", "Branch"},
		rows, m.ui.Selected(state.HRTab), m.ui.ContentHeight()-2))
	b.WriteString("\n")
	b.WriteString(m.tableHints())
	return b.String()
}

// tableHints lists the keys shared by the table tabs.
func (m Model) tableHints() string {
	hints := []string{
		m.keys.Add.Help().Key + " add",
		m.keys.Edit.Help().Key + " edit",
		m.keys.Delete.Help().Key + " delete",
		m.keys.Refresh.Help().Key + " refresh",
	}
	if m.ui.Tab() == state.ProductsTab {
		hints = append(hints, m.keys.Filter.Help().Key+" filter")
	}
	return m.styles.subtle.Render(strings.Join(hints, "  •  "))
}
