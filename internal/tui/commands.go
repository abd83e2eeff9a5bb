package tui

import (
	"slices"
	"sort"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/coffeehub/internal/database"
	"github.com/thenoetrevino/coffeehub/internal/events"
	"github.com/thenoetrevino/coffeehub/internal/models"
	memberservice "github.com/thenoetrevino/coffeehub/internal/services/member"
)

type connectedMsg struct {
	seeded []database.Backend
	err    error
}

type seedStatusMsg struct {
	status map[database.Backend]bool
	err    error
}

type seededMsg struct {
	seeded []database.Backend
	err    error
}

type employeesLoadedMsg struct {
	employees []*models.Employee
	err       error
}

type productsLoadedMsg struct {
	products []*models.Product
	types    []string
	err      error
}

type productDraftMsg struct {
	draft *models.Product
	err   error
}

type newAccountMsg struct {
	member *models.Member
	err    error
}

type loginMsg struct {
	result models.LoginResult
	member *models.Member
	err    error
}

type memberLoadedMsg struct {
	member *models.Member
	err    error
}

// savedMsg reports a finished write; the affected table is reloaded.
type savedMsg struct {
	kind   events.Kind
	what   string
	member *models.Member
	err    error
}

// eventMsg is a change event from another publisher.
type eventMsg struct {
	event events.Event
}

// listenForEvents waits for the next change event. Returns nil when live
// updates are unavailable or the channel has closed.
func (m Model) listenForEvents() tea.Cmd {
	ch := m.eventChan
	if ch == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			return eventMsg{event: event}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m Model) connect() tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		seeded, err := a.Connect(ctx)
		return connectedMsg{seeded: seeded, err: err}
	}
}

func (m Model) loadSeedStatus() tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		status, err := a.SeedStatus(ctx)
		return seedStatusMsg{status: status, err: err}
	}
}

func (m Model) seedMissing() tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		var seeded []database.Backend
		for _, b := range database.AllBackends {
			created, err := a.Seed(ctx, b)
			if err != nil {
				return seededMsg{seeded: seeded, err: err}
			}
			if created {
				seeded = append(seeded, b)
			}
		}
		return seededMsg{seeded: seeded}
	}
}

func (m Model) loadEmployees() tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		svc, err := a.Employees()
		if err != nil {
			return employeesLoadedMsg{err: err}
		}
		list, err := svc.ListEmployees(ctx)
		if err != nil {
			return employeesLoadedMsg{err: err}
		}
		slices.SortFunc(list, func(a, b *models.Employee) int { return models.CompareEmployeeIDs(a.ID, b.ID) })
		return employeesLoadedMsg{employees: list}
	}
}

func (m Model) loadProducts() tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		svc, err := a.Products()
		if err != nil {
			return productsLoadedMsg{err: err}
		}
		list, err := svc.ListProducts(ctx)
		if err != nil {
			return productsLoadedMsg{err: err}
		}
		types, err := svc.ListProductTypes(ctx)
		if err != nil {
			return productsLoadedMsg{err: err}
		}
		sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
		return productsLoadedMsg{products: list, types: types}
	}
}

func (m Model) loadMember(id string) tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		svc, err := a.Members()
		if err != nil {
			return memberLoadedMsg{err: err}
		}
		member, err := svc.Get(ctx, id)
		return memberLoadedMsg{member: member, err: err}
	}
}

func (m Model) saveEmployee(e *models.Employee) tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		svc, err := a.Employees()
		if err != nil {
			return savedMsg{kind: events.KindEmployee, err: err}
		}
		if e.ID == "" {
			id, err := svc.NewEmployeeID(ctx)
			if err != nil {
				return savedMsg{kind: events.KindEmployee, err: err}
			}
			e.ID = id
		}
		err = svc.Save(ctx, e)
		return savedMsg{kind: events.KindEmployee, what: "saved employee " + e.ID, err: err}
	}
}

func (m Model) deleteEmployee(id string) tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		svc, err := a.Employees()
		if err != nil {
			return savedMsg{kind: events.KindEmployee, err: err}
		}
		err = svc.Delete(ctx, id)
		return savedMsg{kind: events.KindEmployee, what: "deleted employee " + id, err: err}
	}
}

func (m Model) newProductDraft() tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		svc, err := a.Products()
		if err != nil {
			return productDraftMsg{err: err}
		}
		draft, err := svc.NewProductDraft(ctx)
		return productDraftMsg{draft: draft, err: err}
	}
}

func (m Model) saveProduct(p *models.Product) tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		svc, err := a.Products()
		if err != nil {
			return savedMsg{kind: events.KindProduct, err: err}
		}
		err = svc.Save(ctx, p)
		return savedMsg{kind: events.KindProduct, what: "saved product " + p.Name, err: err}
	}
}

func (m Model) deleteProduct(id int) tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		svc, err := a.Products()
		if err != nil {
			return savedMsg{kind: events.KindProduct, err: err}
		}
		err = svc.Delete(ctx, id)
		return savedMsg{kind: events.KindProduct, what: "deleted product", err: err}
	}
}

func (m Model) login(username, password string) tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		svc, err := a.Members()
		if err != nil {
			return loginMsg{err: err}
		}
		result, member, err := svc.Login(ctx, username, password)
		return loginMsg{result: result, member: member, err: err}
	}
}

func (m Model) newAccount() tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		svc, err := a.Members()
		if err != nil {
			return newAccountMsg{err: err}
		}
		member, err := svc.NewAccount(ctx)
		return newAccountMsg{member: member, err: err}
	}
}

func (m Model) saveMember(req memberservice.SaveRequest) tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		svc, err := a.Members()
		if err != nil {
			return savedMsg{kind: events.KindMember, err: err}
		}
		err = svc.Save(ctx, req)
		return savedMsg{kind: events.KindMember, what: "saved member " + req.Member.ID, member: req.Member, err: err}
	}
}

// reloadFor returns the reload for an event, or nil when it came from this
// process or concerns nothing on screen.
func (m Model) reloadFor(event events.Event) tea.Cmd {
	if event.Origin == m.app.Origin() || !m.app.Connected() {
		return nil
	}
	switch event.Kind {
	case events.KindEmployee:
		return m.loadEmployees()
	case events.KindProduct:
		return m.loadProducts()
	case events.KindMember:
		if m.member != nil && (event.EntityID == "" || event.EntityID == m.member.ID) {
			return m.loadMember(m.member.ID)
		}
		return nil
	case events.KindAll:
		cmds := []tea.Cmd{m.loadEmployees(), m.loadProducts()}
		if m.member != nil {
			cmds = append(cmds, m.loadMember(m.member.ID))
		}
		return tea.Batch(cmds...)
	}
	return nil
}
