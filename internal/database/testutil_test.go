package database

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/thenoetrevino/coffeehub/internal/models"
	_ "modernc.org/sqlite"
)

// ============================================================================
// RELATIONAL SETUP HELPERS
// ============================================================================

const sqliteSchema = `
CREATE TABLE ProductType (
	ID INTEGER PRIMARY KEY,
	BriefName TEXT NOT NULL UNIQUE,
	FullName TEXT NOT NULL
);
CREATE TABLE Product (
	ID INTEGER PRIMARY KEY,
	PName TEXT NOT NULL,
	OnSale BOOLEAN NOT NULL DEFAULT 0,
	OnSaleFrom DATE,
	Price INTEGER NOT NULL,
	PType INTEGER NOT NULL REFERENCES ProductType(ID)
);
INSERT INTO ProductType (ID, BriefName, FullName) VALUES
	(1, 'CF', 'Coffee'), (2, 'TEA', 'Tea'), (3, 'CK', 'Cake');
`

// setupTestDB creates an in-memory database holding the product tables.
// The pool is pinned to one connection so every query sees the same memory DB.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(sqliteSchema); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return db
}

// ============================================================================
// KEY-VALUE SETUP HELPERS
// ============================================================================

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

// ============================================================================
// FAKE GRAPH
// ============================================================================

type fakeEmployee struct {
	id    string
	name  string
	birth string
	male  bool
	rels  map[string][]string
}

// fakeGraph is an in-memory CypherRunner understanding the statements this
// package issues. Unknown statements are recorded and succeed.
type fakeGraph struct {
	mu          sync.Mutex
	jobs        map[string]bool
	departments map[string]bool
	branches    map[string]bool
	employees   map[string]*fakeEmployee
	databases   map[string]bool
	executed    []string
	failOn      string
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		jobs:        map[string]bool{"Barista": true, "Cashier": true, "Manager": true},
		departments: map[string]bool{"Service": true, "Finance": true},
		branches:    map[string]bool{"District 1": true, "Thu Duc": true},
		employees:   map[string]*fakeEmployee{},
		databases:   map[string]bool{"system": true, "neo4j": true},
	}
}

func (g *fakeGraph) Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.exec(query, params)
}

func (g *fakeGraph) Write(ctx context.Context, fn func(tx CypherTx) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	snapshot := g.cloneEmployees()
	if err := fn(fakeGraphTx{g}); err != nil {
		g.employees = snapshot
		return err
	}
	return nil
}

type fakeGraphTx struct{ g *fakeGraph }

func (t fakeGraphTx) Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	return t.g.exec(query, params)
}

func (g *fakeGraph) cloneEmployees() map[string]*fakeEmployee {
	out := make(map[string]*fakeEmployee, len(g.employees))
	for id, e := range g.employees {
		c := *e
		c.rels = map[string][]string{}
		for k, v := range e.rels {
			c.rels[k] = append([]string(nil), v...)
		}
		out[id] = &c
	}
	return out
}

func (g *fakeGraph) relCount(id, rel string) int {
	e, ok := g.employees[id]
	if !ok {
		return 0
	}
	return len(e.rels[rel])
}

func sortedNames(set map[string]bool) []map[string]any {
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	rows := make([]map[string]any, 0, len(names))
	for _, n := range names {
		rows = append(rows, map[string]any{"name": n})
	}
	return rows
}

func firstOrNil(names []string) any {
	if len(names) == 0 {
		return nil
	}
	return names[0]
}

func (g *fakeGraph) exec(query string, params map[string]any) ([]map[string]any, error) {
	if g.failOn != "" && query == g.failOn {
		return nil, errors.New("injected graph failure")
	}
	str := func(k string) string { s, _ := params[k].(string); return s }

	switch query {
	case cypherListEmployees:
		ids := make([]string, 0, len(g.employees))
		for id := range g.employees {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		rows := make([]map[string]any, 0, len(ids))
		for _, id := range ids {
			e := g.employees[id]
			rows = append(rows, map[string]any{
				"id": e.id, "name": e.name, "birth": e.birth, "male": e.male,
				"job":        firstOrNil(e.rels[models.RelIs]),
				"department": firstOrNil(e.rels[models.RelIn]),
				"branch":     firstOrNil(e.rels[models.RelWorksAt]),
			})
		}
		return rows, nil

	case cypherListJobs:
		return sortedNames(g.jobs), nil
	case cypherListDepartments:
		return sortedNames(g.departments), nil
	case cypherListBranches:
		return sortedNames(g.branches), nil

	case cypherCheckReferences:
		return []map[string]any{{
			"job":        g.jobs[str("job")],
			"department": g.departments[str("department")],
			"branch":     g.branches[str("branch")],
		}}, nil

	case cypherMergeEmployee:
		e, ok := g.employees[str("id")]
		if !ok {
			e = &fakeEmployee{id: str("id"), rels: map[string][]string{}}
			g.employees[e.id] = e
		}
		e.name = str("name")
		e.birth = str("birth")
		e.male, _ = params["male"].(bool)
		return nil, nil

	case cypherDropEmployeeRelationships:
		if e, ok := g.employees[str("id")]; ok {
			e.rels = map[string][]string{}
		}
		return nil, nil

	case cypherLinkEmployee:
		e, ok := g.employees[str("id")]
		if !ok || !g.jobs[str("job")] || !g.departments[str("department")] || !g.branches[str("branch")] {
			return nil, nil
		}
		e.rels[models.RelIs] = append(e.rels[models.RelIs], str("job"))
		e.rels[models.RelIn] = append(e.rels[models.RelIn], str("department"))
		e.rels[models.RelWorksAt] = append(e.rels[models.RelWorksAt], str("branch"))
		return nil, nil

	case cypherDeleteEmployee:
		delete(g.employees, str("id"))
		return nil, nil

	case cypherDatabaseExists:
		if g.databases[strings.ToLower(str("name"))] {
			return []map[string]any{{"name": strings.ToLower(str("name"))}}, nil
		}
		return nil, nil

	case cypherCreateDatabase:
		g.databases[strings.ToLower(str("name"))] = true
		return nil, nil
	}

	g.executed = append(g.executed, query)
	return nil, nil
}

// ============================================================================
// FAKE DOCUMENT STORE
// ============================================================================

// fakeProfiles is an in-memory ProfileStore.
type fakeProfiles struct {
	mu        sync.Mutex
	byID      map[string]models.Member
	upsertErr error
}

func newFakeProfiles(members ...*models.Member) *fakeProfiles {
	p := &fakeProfiles{byID: map[string]models.Member{}}
	for _, m := range members {
		p.byID[m.ID] = *m
	}
	return p
}

func (p *fakeProfiles) FindByUsername(ctx context.Context, username string) (*models.Member, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, m := range p.byID {
		if m.Username == username {
			c := m
			return &c, nil
		}
	}
	return nil, nil
}

func (p *fakeProfiles) FindByID(ctx context.Context, id string) (*models.Member, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.byID[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (p *fakeProfiles) Upsert(ctx context.Context, m *models.Member) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.upsertErr != nil {
		return p.upsertErr
	}
	c := *m
	c.Avatar = ""
	p.byID[m.ID] = c
	return nil
}

// fakeDocumentAdmin is an in-memory documentAdmin.
type fakeDocumentAdmin struct {
	databases map[string]map[string][]any
	replaced  int
}

func newFakeDocumentAdmin(names ...string) *fakeDocumentAdmin {
	a := &fakeDocumentAdmin{databases: map[string]map[string][]any{}}
	for _, n := range names {
		a.databases[n] = map[string][]any{}
	}
	return a
}

func (a *fakeDocumentAdmin) DatabaseExists(ctx context.Context, name string) (bool, error) {
	_, ok := a.databases[name]
	return ok, nil
}

func (a *fakeDocumentAdmin) Replace(ctx context.Context, name string, collections map[string][]any) error {
	a.replaced++
	a.databases[name] = collections
	return nil
}
