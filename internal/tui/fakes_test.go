package tui

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/coffeehub/internal/config"
	"github.com/thenoetrevino/coffeehub/internal/database"
	"github.com/thenoetrevino/coffeehub/internal/events"
	"github.com/thenoetrevino/coffeehub/internal/models"
	employeeservice "github.com/thenoetrevino/coffeehub/internal/services/employee"
	memberservice "github.com/thenoetrevino/coffeehub/internal/services/member"
	productservice "github.com/thenoetrevino/coffeehub/internal/services/product"
)

// ============================================================================
// FAKE BACKEND
// ============================================================================

type fakeBackend struct {
	mu         sync.Mutex
	cfg        *config.Config
	bus        *events.Bus
	connected  bool
	connectErr error
	seeded     []database.Backend
	status     map[database.Backend]bool

	employees *fakeEmployees
	products  *fakeProducts
	members   *fakeMembers
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		cfg: config.DefaultConfig(),
		status: map[database.Backend]bool{
			database.Relational: true,
			database.Graph:      true,
			database.Document:   true,
			database.KeyValue:   false,
		},
		employees: &fakeEmployees{
			list: []*models.Employee{
				{ID: "EN0002", Name: "Shizuka", Birth: date(1999, 5, 5), Job: "Cashier", Department: "Sales", Branch: "D1"},
				{ID: "EN0001", Name: "Nobita", Birth: date(2000, 1, 2), Male: true, Job: "Barista", Department: "Kitchen", Branch: "D1"},
			},
			next: 101,
		},
		products: &fakeProducts{
			list: []*models.Product{
				{ID: 1, Name: "Espresso", Price: 30000, Type: "CF", OnSale: true, OnSaleFrom: date(2020, 1, 1)},
				{ID: 2, Name: "Green tea", Price: 25000, Type: "TEA", OnSale: true, OnSaleFrom: date(2020, 1, 1)},
				{ID: 3, Name: "Latte", Price: 40000, Type: "CF", OnSale: false, OnSaleFrom: date(2021, 6, 1)},
			},
			types: []string{"CF", "TEA"},
		},
		members: newFakeMembers(),
	}
}

func (f *fakeBackend) Config() *config.Config { return f.cfg }

func (f *fakeBackend) Events() events.EventPublisher {
	if f.bus == nil {
		return nil
	}
	return f.bus
}

func (f *fakeBackend) Origin() string { return "tui-test" }

func (f *fakeBackend) Connect(ctx context.Context) ([]database.Backend, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.connectErr != nil {
		return nil, f.connectErr
	}
	f.connected = true
	return f.seeded, nil
}

func (f *fakeBackend) Disconnect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = false
}

func (f *fakeBackend) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeBackend) SeedStatus(ctx context.Context) (map[database.Backend]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[database.Backend]bool, len(f.status))
	for k, v := range f.status {
		out[k] = v
	}
	return out, nil
}

func (f *fakeBackend) Seed(ctx context.Context, b database.Backend) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status[b] {
		return false, nil
	}
	f.status[b] = true
	return true, nil
}

func (f *fakeBackend) Employees() (employeeservice.Service, error) {
	if !f.Connected() {
		return nil, models.ErrNotConnected
	}
	return f.employees, nil
}

func (f *fakeBackend) Products() (productservice.Service, error) {
	if !f.Connected() {
		return nil, models.ErrNotConnected
	}
	return f.products, nil
}

func (f *fakeBackend) Members() (memberservice.Service, error) {
	if !f.Connected() {
		return nil, models.ErrNotConnected
	}
	return f.members, nil
}

// ============================================================================
// FAKE SERVICES
// ============================================================================

type fakeEmployees struct {
	mu      sync.Mutex
	list    []*models.Employee
	next    int
	saved   []*models.Employee
	deleted []string
}

func (f *fakeEmployees) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.Employee(nil), f.list...), nil
}

func (f *fakeEmployees) ListJobs(ctx context.Context) ([]string, error)        { return nil, nil }
func (f *fakeEmployees) ListDepartments(ctx context.Context) ([]string, error) { return nil, nil }
func (f *fakeEmployees) ListBranches(ctx context.Context) ([]string, error)    { return nil, nil }

func (f *fakeEmployees) NewEmployeeID(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := fmt.Sprintf("EN%04d", f.next)
	f.next++
	return id, nil
}

func (f *fakeEmployees) Save(ctx context.Context, e *models.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, e)
	for i, cur := range f.list {
		if cur.ID == e.ID {
			f.list[i] = e
			return nil
		}
	}
	f.list = append(f.list, e)
	return nil
}

func (f *fakeEmployees) Delete(ctx context.Context, ids ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		f.deleted = append(f.deleted, id)
		for i, cur := range f.list {
			if cur.ID == id {
				f.list = append(f.list[:i], f.list[i+1:]...)
				break
			}
		}
	}
	return nil
}

type fakeProducts struct {
	mu      sync.Mutex
	list    []*models.Product
	types   []string
	saved   []*models.Product
	deleted []int
}

func (f *fakeProducts) ListProducts(ctx context.Context) ([]*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.Product(nil), f.list...), nil
}

func (f *fakeProducts) ListProductTypes(ctx context.Context) ([]string, error) {
	return f.types, nil
}

func (f *fakeProducts) NextProductID(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	next := 1
	for _, p := range f.list {
		next = max(next, p.ID+1)
	}
	return next, nil
}

func (f *fakeProducts) NewProductDraft(ctx context.Context) (*models.Product, error) {
	id, _ := f.NextProductID(ctx)
	return &models.Product{ID: id, OnSale: true, OnSaleFrom: date(2026, 10, 19), Type: f.types[0]}, nil
}

func (f *fakeProducts) Save(ctx context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, p)
	for i, cur := range f.list {
		if cur.ID == p.ID {
			f.list[i] = p
			return nil
		}
	}
	f.list = append(f.list, p)
	return nil
}

func (f *fakeProducts) Delete(ctx context.Context, ids ...int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		f.deleted = append(f.deleted, id)
		for i, cur := range f.list {
			if cur.ID == id {
				f.list = append(f.list[:i], f.list[i+1:]...)
				break
			}
		}
	}
	return nil
}

type fakeMembers struct {
	mu    sync.Mutex
	byID  map[string]*models.Member
	saves []memberservice.SaveRequest
	next  int
}

func newFakeMembers() *fakeMembers {
	doraemon := &models.Member{
		ID:       "TCHMN00001S",
		Username: "Doraemon",
		Password: models.HashPassword("lltt"),
		Level:    "Gold",
		FullName: "Doraemon",
		Avatar:   "assets/avatars/doraemon.png",
	}
	return &fakeMembers{byID: map[string]*models.Member{doraemon.ID: doraemon}, next: 101}
}

func (f *fakeMembers) Login(ctx context.Context, username, password string) (models.LoginResult, *models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.byID {
		if m.Username != username {
			continue
		}
		if m.Password != models.HashPassword(password) {
			return models.LoginWrongPassword, nil, nil
		}
		cp := *m
		return models.LoginSuccess, &cp, nil
	}
	return models.LoginNotFound, nil, nil
}

func (f *fakeMembers) Get(ctx context.Context, id string) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.byID[id]
	if !ok {
		return nil, &models.NotFoundError{Entity: "member", Key: id}
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMembers) Avatar(ctx context.Context, id string) (string, error) {
	m, err := f.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return m.Avatar, nil
}

func (f *fakeMembers) NewAccount(ctx context.Context) (*models.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.next
	f.next++
	id := fmt.Sprintf(models.MemberIDFormat, n)
	return &models.Member{
		ID:       id,
		Username: id,
		Level:    models.DefaultMemberLevel,
		Birth:    date(2024, time.May, 17),
		Avatar:   models.DefaultAvatarPath,
	}, nil
}

func (f *fakeMembers) Save(ctx context.Context, req memberservice.SaveRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := req.Member
	switch {
	case m.Username == "":
		return memberservice.ErrEmptyUsername
	case req.NewPassword != req.Confirm:
		return memberservice.ErrPasswordMismatch
	case req.NewPassword == "" && !m.HasPassword():
		return memberservice.ErrPasswordRequired
	}
	f.saves = append(f.saves, req)
	cp := *m
	if req.NewPassword != "" {
		cp.Password = models.HashPassword(req.NewPassword)
	}
	f.byID[cp.ID] = &cp
	return nil
}

// ============================================================================
// HELPERS
// ============================================================================

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// newTestModel builds a sized model over a fresh fake backend.
func newTestModel(t *testing.T, configure ...func(*fakeBackend)) (Model, *fakeBackend) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	b := newFakeBackend()
	for _, fn := range configure {
		fn(b)
	}
	m := New(ctx, b)
	m, _ = update(m, tea.WindowSizeMsg{Width: 140, Height: 40})
	return m, b
}

// connected returns a model that has run the connect flow.
func connected(t *testing.T, configure ...func(*fakeBackend)) (Model, *fakeBackend) {
	t.Helper()
	m, b := newTestModel(t, configure...)
	m = drain(t, m, m.connect())
	if !b.Connected() {
		t.Fatal("fake backend did not connect")
	}
	return m, b
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// keyMsg builds a key press the way the terminal reports it.
func keyMsg(k string) tea.KeyPressMsg {
	switch k {
	case "enter":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter})
	case "esc":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape})
	case "tab":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyTab})
	case "shift+tab":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyTab, Mod: tea.ModShift})
	case "up":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyUp})
	case "down":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyDown})
	case "ctrl+s":
		return tea.KeyPressMsg(tea.Key{Code: 's', Mod: tea.ModCtrl})
	}
	r := []rune(k)[0]
	return tea.KeyPressMsg(tea.Key{Text: k, Code: r})
}

// press sends keys and runs whatever they trigger.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = update(m, keyMsg(k))
		m = drain(t, m, cmd)
	}
	return m
}

// typeText types s into the focused field.
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = update(m, tea.KeyPressMsg(tea.Key{Text: string(r), Code: r}))
	}
	return m
}

// drain runs cmd and feeds every resulting app message back into the
// model until nothing is left.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("drain did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		for _, msg := range collect(c) {
			var next tea.Cmd
			m, next = update(m, msg)
			queue = append(queue, next)
		}
	}
	return m
}

// collect runs cmd with a short timeout, flattening batches and dropping
// anything that is not one of the model's own messages. Cursor blinks and
// idle event listeners time out.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		switch msg.(type) {
		case connectedMsg, seedStatusMsg, seededMsg, employeesLoadedMsg,
			productsLoadedMsg, productDraftMsg, newAccountMsg, loginMsg,
			memberLoadedMsg, savedMsg, eventMsg:
			return []tea.Msg{msg}
		}
		return nil
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}
