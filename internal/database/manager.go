package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/redis/go-redis/v9"
	"github.com/thenoetrevino/coffeehub/internal/config"
	"github.com/thenoetrevino/coffeehub/internal/models"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// managerConfig holds the Manager's settings.
type managerConfig struct {
	databaseName      string
	graphDatabaseName string
	timeout           time.Duration
	log               *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*managerConfig)

// WithDatabaseNames sets the relational/document/key-value database name and
// the graph database name.
func WithDatabaseNames(name, graphName string) ManagerOption {
	return func(c *managerConfig) {
		c.databaseName = name
		c.graphDatabaseName = graphName
	}
}

// WithConnectTimeout bounds each backend's connect step.
func WithConnectTimeout(d time.Duration) ManagerOption {
	return func(c *managerConfig) {
		c.timeout = d
	}
}

// WithManagerLogger sets the logger used for lifecycle messages.
func WithManagerLogger(l *slog.Logger) ManagerOption {
	return func(c *managerConfig) {
		c.log = l
	}
}

// Manager holds one session per backend for the life of the process.
type Manager struct {
	mu  sync.Mutex
	cfg managerConfig

	creds      *config.Credentials
	relational *sql.DB
	graph      neo4j.DriverWithContext
	document   *mongo.Client
	kv         *redis.Client

	connected bool
	selected  bool
}

// NewManager creates a disconnected Manager.
func NewManager(opts ...ManagerOption) *Manager {
	cfg := managerConfig{
		databaseName:      models.DefaultDatabaseName,
		graphDatabaseName: models.DefaultGraphDatabaseName,
		timeout:           10 * time.Second,
		log:               slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Manager{cfg: cfg}
}

// Connect opens a session on every backend without selecting a database.
// Any failure is returned as a ConnectionError and closes the sessions opened
// before it. Connecting while connected first disconnects.
func (m *Manager) Connect(ctx context.Context, creds *config.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	if err := validateDatabaseName("database_name", m.cfg.databaseName); err != nil {
		return err
	}
	if err := validateDatabaseName("graph_database_name", m.cfg.graphDatabaseName); err != nil {
		return err
	}

	m.Disconnect()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.creds = creds

	var err error
	step := func(backend string, open func(ctx context.Context) error) error {
		stepCtx, cancel := context.WithTimeout(ctx, m.cfg.timeout)
		defer cancel()
		if err := open(stepCtx); err != nil {
			m.cfg.log.Error("backend connect failed", "backend", backend, "error", err)
			// sessions opened by earlier steps are not kept
			m.closeLocked()
			return &models.ConnectionError{Backend: backend, Err: err}
		}
		m.cfg.log.Debug("backend connected", "backend", backend)
		return nil
	}

	if err = step("mysql", func(ctx context.Context) error {
		m.relational, err = openRelational(ctx, creds.MySQL, "")
		return err
	}); err != nil {
		return err
	}
	if err = step("neo4j", func(ctx context.Context) error {
		m.graph, err = openGraph(ctx, creds.Neo4j)
		return err
	}); err != nil {
		return err
	}
	if err = step("mongo", func(ctx context.Context) error {
		m.document, err = openDocument(ctx, creds.Mongo)
		return err
	}); err != nil {
		return err
	}
	if err = step("redis", func(ctx context.Context) error {
		m.kv, err = openKeyValue(ctx, creds.Redis)
		return err
	}); err != nil {
		return err
	}

	m.connected = true
	m.cfg.log.Info("connected to all backends")
	return nil
}

// SelectDatabases binds every session to the application's databases. The
// relational handle is reopened on the schema; graph sessions are opened
// per operation on the graph database name. Calling it again is harmless.
func (m *Manager) SelectDatabases(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return models.ErrNotConnected
	}
	if m.selected {
		return nil
	}

	db, err := openRelational(ctx, m.creds.MySQL, m.cfg.databaseName)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return &models.ConnectionError{Backend: "mysql", Err: err}
	}
	if err := m.relational.Close(); err != nil {
		m.cfg.log.Warn("failed to close unselected relational handle", "error", err)
	}
	m.relational = db

	m.selected = true
	m.cfg.log.Info("databases selected",
		"database", m.cfg.databaseName,
		"graph_database", m.cfg.graphDatabaseName)
	return nil
}

// Disconnect closes every open session. It is a no-op when nothing is
// open and never fails; close errors are only logged.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

// closeLocked closes and drops every session. m.mu must be held.
func (m *Manager) closeLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if m.relational != nil {
		if err := m.relational.Close(); err != nil {
			m.cfg.log.Warn("failed to close relational session", "error", err)
		}
		m.relational = nil
	}
	if m.graph != nil {
		if err := m.graph.Close(ctx); err != nil {
			m.cfg.log.Warn("failed to close graph driver", "error", err)
		}
		m.graph = nil
	}
	if m.document != nil {
		if err := m.document.Disconnect(ctx); err != nil {
			m.cfg.log.Warn("failed to close document client", "error", err)
		}
		m.document = nil
	}
	if m.kv != nil {
		if err := m.kv.Close(); err != nil {
			m.cfg.log.Warn("failed to close key-value client", "error", err)
		}
		m.kv = nil
	}

	if m.connected {
		m.cfg.log.Info("disconnected from all backends")
	}
	m.creds = nil
	m.connected = false
	m.selected = false
}

// Connected reports whether every backend session is open.
func (m *Manager) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// Selected reports whether the application databases are selected.
func (m *Manager) Selected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected
}

// DatabaseNames returns the configured database and graph database names.
func (m *Manager) DatabaseNames() (string, string) {
	return m.cfg.databaseName, m.cfg.graphDatabaseName
}

func (m *Manager) requireSelected() error {
	if !m.connected || !m.selected {
		return models.ErrNotConnected
	}
	return nil
}

// Employees returns the graph-backed employee accessor.
func (m *Manager) Employees() (*EmployeeRepo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireSelected(); err != nil {
		return nil, err
	}
	return NewEmployeeRepo(&neo4jRunner{driver: m.graph, database: m.cfg.graphDatabaseName}), nil
}

// Products returns the relational product accessor.
func (m *Manager) Products() (*ProductRepo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireSelected(); err != nil {
		return nil, err
	}
	return NewProductRepo(m.relational), nil
}

// Members returns the document/key-value member accessor.
func (m *Manager) Members() (*MemberRepo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireSelected(); err != nil {
		return nil, err
	}
	return NewMemberRepo(newMongoProfiles(m.document.Database(m.cfg.databaseName)), m.kv), nil
}

// Sequences returns the id sequence accessor.
func (m *Manager) Sequences() (*SequenceRepo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.requireSelected(); err != nil {
		return nil, err
	}
	return NewSequenceRepo(m.kv), nil
}

// Repository returns all accessors composed into one DataStore.
func (m *Manager) Repository() (*Repository, error) {
	employees, err := m.Employees()
	if err != nil {
		return nil, err
	}
	products, err := m.Products()
	if err != nil {
		return nil, err
	}
	members, err := m.Members()
	if err != nil {
		return nil, err
	}
	sequences, err := m.Sequences()
	if err != nil {
		return nil, err
	}
	return NewRepository(employees, products, members, sequences), nil
}

// Seeder returns a sample data seeder over the connected sessions. It works
// before SelectDatabases, which is how the connect flow uses it.
func (m *Manager) Seeder() (*Seeder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.connected {
		return nil, models.ErrNotConnected
	}

	sqlScript, err := loadScript(relationalScript, m.cfg.databaseName)
	if err != nil {
		return nil, err
	}
	cypherScript, err := loadScript(graphScript, m.cfg.graphDatabaseName)
	if err != nil {
		return nil, err
	}
	docs, err := fixtureFS.ReadFile(documentFixture)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", documentFixture, err)
	}
	kv, err := fixtureFS.ReadFile(keyValueFixture)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", keyValueFixture, err)
	}

	return newSeeder(map[Backend]catalog{
		Relational: &relationalCatalog{
			db:          m.relational,
			name:        m.cfg.databaseName,
			existsQuery: mysqlSchemaExistsQuery,
			script:      sqlScript,
		},
		Graph: &graphCatalog{
			system: &neo4jRunner{driver: m.graph, database: systemDatabase},
			data:   &neo4jRunner{driver: m.graph, database: m.cfg.graphDatabaseName},
			name:   m.cfg.graphDatabaseName,
			script: cypherScript,
		},
		Document: &documentCatalog{
			admin:   &mongoAdmin{client: m.document},
			name:    m.cfg.databaseName,
			fixture: docs,
		},
		KeyValue: &keyValueCatalog{
			kv:      m.kv,
			name:    m.cfg.databaseName,
			fixture: kv,
		},
	}, m.cfg.log), nil
}
