package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/coffeehub/internal/tui/state"
)

// View renders the tab bar, the active tab and the status line, with the
// open form floating on top.
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.ui.Width() == 0 {
		view.Content = "Loading..."
		return view
	}

	base := lipgloss.JoinVertical(lipgloss.Left,
		m.viewTabs(),
		lipgloss.NewStyle().Padding(1, 1, 0, 1).Height(m.ui.ContentHeight()).Render(m.viewContent()),
		m.viewStatus(),
	)

	if m.ui.Mode() != state.FormMode || m.form == nil {
		view.Content = base
		return view
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.cfg.Theme.Accent)).
		Padding(1, 2).
		Render(m.form.View(m.styles) + "\n" + m.styles.subtle.Render(
			"enter next  •  "+m.keys.SaveForm.Help().Key+" save  •  esc cancel"))
	x := max((m.ui.Width()-lipgloss.Width(modal))/2, 0)
	y := max((m.ui.Height()-lipgloss.Height(modal))/2, 0)

	canvas := lipgloss.NewCanvas(
		lipgloss.NewLayer(base),
		lipgloss.NewLayer(modal).X(x).Y(y),
	)
	view.Content = canvas.Render()
	return view
}

func (m Model) viewTabs() string {
	tabs := make([]string, len(state.Tabs))
	for i, t := range state.Tabs {
		if t == m.ui.Tab() {
			tabs[i] = m.styles.activeTab.Render(t.String())
		} else {
			tabs[i] = m.styles.inactiveTab.Render(t.String())
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (m Model) viewContent() string {
	switch m.ui.Tab() {
	case state.HubTab:
		return m.viewHub()
	case state.HRTab:
		return m.viewEmployees()
	case state.ProductsTab:
		return m.viewProducts()
	case state.MemberTab:
		return m.viewMember()
	case state.LogTab:
		return m.logView.View()
	case state.HelpTab:
		return m.viewHelp()
	}
	return ""
}

// viewStatus is the bottom line: a delete prompt or the latest notification.
func (m Model) viewStatus() string {
	st := m.styles
	if m.ui.Mode() == state.DeleteConfirmMode {
		return st.statusBar.Render(st.error.Render("Delete the selected row? ") + "y to confirm, any other key to cancel")
	}
	n, ok := m.notes.Latest()
	if !ok {
		return st.statusBar.Render(m.keys.ShowHelp.Help().Key + " help  •  " + m.keys.Quit.Help().Key + " quit")
	}
	msg := strings.ReplaceAll(n.Message, "\n", " ")
	if n.Level == state.LevelError {
		return st.statusBar.Render(st.error.Render(msg))
	}
	return st.statusBar.Render(st.success.Render(msg))
}
