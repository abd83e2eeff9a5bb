package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/coffeehub/internal/database"
)

func (m Model) handleHubKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Connect):
		if m.busy || m.app.Connected() {
			return m, nil
		}
		m.busy = true
		m.notes.Info("connecting...")
		return m, m.connect()

	case key.Matches(msg, m.keys.Disconnect):
		if !m.app.Connected() {
			return m, nil
		}
		m.app.Disconnect()
		m.employees, m.products, m.productTypes = nil, nil, nil
		m.member, m.seedStatus, m.typeFilter = nil, nil, ""
		m.notes.Info("disconnected")
		return m, nil

	case key.Matches(msg, m.keys.Seed):
		if m.busy || !m.requireConnection() {
			return m, nil
		}
		m.busy = true
		m.notes.Info("seeding missing samples...")
		return m, m.seedMissing()

	case key.Matches(msg, m.keys.Refresh):
		if !m.requireConnection() {
			return m, nil
		}
		return m, m.loadSeedStatus()
	}
	return m, nil
}

func (m Model) viewHub() string {
	st := m.styles
	var b strings.Builder

	b.WriteString(st.title.Render("Connection"))
	b.WriteString("\n\n")
	switch {
	case m.busy:
		b.WriteString(st.subtle.Render("working..."))
	case m.app.Connected():
		b.WriteString(st.success.Render("connected"))
	default:
		b.WriteString(st.error.Render("disconnected"))
	}
	b.WriteString("\n")

	b.WriteString(st.label.Render("Relational database  "))
	b.WriteString(st.value.Render(m.cfg.DatabaseName))
	b.WriteString("\n")
	b.WriteString(st.label.Render("Graph database       "))
	b.WriteString(st.value.Render(m.cfg.GraphDatabaseName))
	b.WriteString("\n")
	b.WriteString(st.label.Render("Credentials          "))
	b.WriteString(st.value.Render(m.cfg.CredentialsPath))
	b.WriteString("\n\n")

	b.WriteString(st.title.Render("Sample databases"))
	b.WriteString("\n\n")
	for _, backend := range database.AllBackends {
		name := backend.String()
		b.WriteString(st.label.Render(name + strings.Repeat(" ", 12-len(name))))
		present, known := m.seedStatus[backend]
		switch {
		case !known:
			b.WriteString(st.subtle.Render("unknown"))
		case present:
			b.WriteString(st.success.Render("present"))
		default:
			b.WriteString(st.error.Render("missing"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(st.subtle.Render(strings.Join([]string{
		m.keys.Connect.Help().Key + " connect",
		m.keys.Disconnect.Help().Key + " disconnect",
		m.keys.Seed.Help().Key + " seed",
		m.keys.Refresh.Help().Key + " refresh",
	}, "  •  ")))
	return b.String()
}

func backendList(bs []database.Backend) string {
	names := make([]string, len(bs))
	for i, b := range bs {
		names[i] = b.String()
	}
	return strings.Join(names, ", ")
}
