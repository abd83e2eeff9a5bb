package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/coffeehub/internal/events"
	"github.com/thenoetrevino/coffeehub/internal/logging"
	"github.com/thenoetrevino/coffeehub/internal/models"
	"github.com/thenoetrevino/coffeehub/internal/tui/state"
)

// Update handles all messages and updates the model accordingly
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui.SetWidth(msg.Width)
		m.ui.SetHeight(msg.Height)
		m.logView.SetWidth(max(msg.Width-2, 1))
		m.logView.SetHeight(m.ui.ContentHeight())
		return m, nil

	case eventMsg:
		slog.Debug("change event", "kind", msg.event.Kind, "id", msg.event.EntityID, "origin", msg.event.Origin)
		return m, tea.Batch(m.reloadFor(msg.event), m.listenForEvents())

	case connectedMsg:
		m.busy = false
		if msg.err != nil {
			m.fail("connect", msg.err)
			return m, nil
		}
		if len(msg.seeded) > 0 {
			m.notes.Info(fmt.Sprintf("connected, seeded %s", backendList(msg.seeded)))
		} else {
			m.notes.Info("connected")
		}
		return m, tea.Batch(m.loadSeedStatus(), m.loadEmployees(), m.loadProducts())

	case seedStatusMsg:
		if msg.err != nil {
			m.fail("check samples", msg.err)
			return m, nil
		}
		m.seedStatus = msg.status
		return m, nil

	case seededMsg:
		m.busy = false
		if msg.err != nil {
			m.fail("seed", msg.err)
		} else if len(msg.seeded) == 0 {
			m.notes.Info("all sample databases already present")
		} else {
			m.notes.Info("seeded " + backendList(msg.seeded))
		}
		return m, m.loadSeedStatus()

	case employeesLoadedMsg:
		if msg.err != nil {
			m.fail("load employees", msg.err)
			return m, nil
		}
		m.employees = msg.employees
		m.ui.ClampSelection(state.HRTab, m.ui.Selected(state.HRTab), len(m.employees))
		return m, nil

	case productsLoadedMsg:
		if msg.err != nil {
			m.fail("load products", msg.err)
			return m, nil
		}
		m.products = msg.products
		m.productTypes = msg.types
		if m.typeFilter != "" && indexOf(m.productTypes, m.typeFilter) < 0 {
			m.typeFilter = ""
		}
		m.ui.ClampSelection(state.ProductsTab, m.ui.Selected(state.ProductsTab), len(m.visibleProducts()))
		return m, nil

	case productDraftMsg:
		if msg.err != nil {
			m.fail("new product", msg.err)
			return m, nil
		}
		return m, m.openProductForm(msg.draft, "New product")

	case newAccountMsg:
		if msg.err != nil {
			m.fail("new account", msg.err)
			return m, nil
		}
		return m, m.openProfileForm(msg.member, "New member")

	case loginMsg:
		return m.handleLogin(msg)

	case memberLoadedMsg:
		if msg.err != nil {
			m.fail("load member", msg.err)
			return m, nil
		}
		m.member = msg.member
		return m, nil

	case savedMsg:
		return m.handleSaved(msg)

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	// cursor blink and friends
	if m.form != nil {
		return m, m.form.Update(msg)
	}
	return m, nil
}

func (m Model) handleLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.fail("login", msg.err)
		return m, nil
	}
	switch msg.result {
	case models.LoginSuccess:
		m.member = msg.member
		m.closeForm()
		m.notes.Info("welcome, " + msg.member.Username)
	case models.LoginNotFound:
		m.notes.Error("no member with that username")
	case models.LoginWrongPassword:
		m.notes.Error("wrong password")
	}
	return m, nil
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	var partial *models.PartialWriteError
	if msg.err != nil {
		m.fail(msg.what, msg.err)
		if !errors.As(msg.err, &partial) {
			return m, nil
		}
	} else {
		m.notes.Info(msg.what)
	}
	m.closeForm()

	switch msg.kind {
	case events.KindEmployee:
		return m, m.loadEmployees()
	case events.KindProduct:
		return m, m.loadProducts()
	case events.KindMember:
		if msg.member != nil {
			m.member = msg.member
			return m, m.loadMember(msg.member.ID)
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.ui.Mode() {
	case state.FormMode:
		return m.handleFormKey(msg)
	case state.DeleteConfirmMode:
		return m.handleDeleteConfirm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		m.ui.NextTab()
		m.enterTab()
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.ui.PrevTab()
		m.enterTab()
		return m, nil
	case key.Matches(msg, m.keys.ShowHelp):
		m.ui.SetTab(state.HelpTab)
		return m, nil
	}

	switch m.ui.Tab() {
	case state.HubTab:
		return m.handleHubKey(msg)
	case state.HRTab:
		return m.handleEmployeeKey(msg)
	case state.ProductsTab:
		return m.handleProductKey(msg)
	case state.MemberTab:
		return m.handleMemberKey(msg)
	case state.LogTab:
		if key.Matches(msg, m.keys.Refresh) {
			m.enterTab()
			return m, nil
		}
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleTableNav moves the row selection; reports whether msg was a
// navigation key.
func (m *Model) handleTableNav(msg tea.KeyPressMsg) bool {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.ui.MoveSelection(-1, m.rows())
	case key.Matches(msg, m.keys.Down):
		m.ui.MoveSelection(1, m.rows())
	default:
		return false
	}
	return true
}

func (m Model) handleFormKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeForm()
		return m, nil
	case key.Matches(msg, m.keys.SaveForm):
		return m.submitForm()
	case key.Matches(msg, m.keys.Submit):
		if m.form.onLast() {
			return m.submitForm()
		}
		return m, m.form.move(1)
	}
	switch msg.String() {
	case "tab", "down":
		return m, m.form.move(1)
	case "shift+tab", "up":
		return m, m.form.move(-1)
	}
	return m, m.form.Update(msg)
}

func (m Model) handleDeleteConfirm(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.ui.SetMode(state.NormalMode)
	if !key.Matches(msg, m.keys.Confirm) {
		return m, nil
	}
	switch m.ui.Tab() {
	case state.HRTab:
		if e := m.selectedEmployee(); e != nil {
			return m, m.deleteEmployee(e.ID)
		}
	case state.ProductsTab:
		if p := m.selectedProduct(); p != nil {
			return m, m.deleteProduct(p.ID)
		}
	}
	return m, nil
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.form.kind {
	case employeeForm:
		e, err := employeeFromForm(m.form)
		if err != nil {
			m.fail("employee", err)
			return m, nil
		}
		return m, m.saveEmployee(e)
	case productForm:
		p, err := productFromForm(m.form)
		if err != nil {
			m.fail("product", err)
			return m, nil
		}
		return m, m.saveProduct(p)
	case loginForm:
		return m, m.login(m.form.value("username"), m.form.rawValue("password"))
	case profileForm:
		req, err := profileFromForm(m.form, m.editing)
		if err != nil {
			m.fail("member", err)
			return m, nil
		}
		return m, m.saveMember(req)
	}
	return m, nil
}

// openForm shows f as the modal form.
func (m *Model) openForm(f *form) tea.Cmd {
	m.form = f
	m.ui.SetMode(state.FormMode)
	return f.start()
}

func (m *Model) closeForm() {
	m.form = nil
	m.editing = nil
	m.ui.SetMode(state.NormalMode)
}

// enterTab refreshes state that is only read when a tab is shown.
func (m *Model) enterTab() {
	if m.ui.Tab() == state.LogTab {
		m.logView.SetContent(strings.Join(logging.Recent.Lines(), "\n"))
		m.logView.GotoBottom()
	}
}

// requireConnection notes an error and reports false when offline.
func (m *Model) requireConnection() bool {
	if m.app.Connected() {
		return true
	}
	m.notes.Error(fmt.Sprintf("not connected, press %s on the Hub tab", m.cfg.KeyMappings.Connect))
	return false
}

// fail logs err and shows it in the status line.
func (m *Model) fail(action string, err error) {
	slog.Error("tui action failed", "action", action, "error", err)
	m.notes.Error(fmt.Sprintf("%s: %v", action, err))
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
