package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Backend identifies one of the four database systems.
type Backend int

const (
	Relational Backend = iota
	Graph
	Document
	KeyValue
)

// AllBackends lists every backend in seeding order.
var AllBackends = []Backend{Relational, Graph, Document, KeyValue}

func (b Backend) String() string {
	switch b {
	case Relational:
		return "relational"
	case Graph:
		return "graph"
	case Document:
		return "document"
	case KeyValue:
		return "key-value"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// ParseBackend accepts a backend name or the name of its system.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(s) {
	case "relational", "mysql":
		return Relational, nil
	case "graph", "neo4j":
		return Graph, nil
	case "document", "mongo", "mongodb":
		return Document, nil
	case "key-value", "kv", "redis":
		return KeyValue, nil
	}
	return 0, fmt.Errorf("unknown backend %q", s)
}

// catalog checks for and creates the sample database on one backend.
type catalog interface {
	isPresent(ctx context.Context) (bool, error)
	seed(ctx context.Context) error
}

// Seeder populates backends whose sample database does not exist yet.
type Seeder struct {
	catalogs map[Backend]catalog
	log      *slog.Logger
}

func newSeeder(catalogs map[Backend]catalog, log *slog.Logger) *Seeder {
	if log == nil {
		log = slog.Default()
	}
	return &Seeder{catalogs: catalogs, log: log}
}

func (s *Seeder) catalog(b Backend) (catalog, error) {
	c, ok := s.catalogs[b]
	if !ok {
		return nil, fmt.Errorf("%s backend: %w", b, errNoCatalog)
	}
	return c, nil
}

var errNoCatalog = errors.New("no catalog configured")

// IsPresent reports whether the backend already holds the sample database.
func (s *Seeder) IsPresent(ctx context.Context, b Backend) (bool, error) {
	c, err := s.catalog(b)
	if err != nil {
		return false, err
	}
	present, err := c.isPresent(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check %s backend: %w", b, err)
	}
	return present, nil
}

// Check reports presence for every backend.
func (s *Seeder) Check(ctx context.Context) (map[Backend]bool, error) {
	out := make(map[Backend]bool, len(AllBackends))
	for _, b := range AllBackends {
		present, err := s.IsPresent(ctx, b)
		if err != nil {
			return nil, err
		}
		out[b] = present
	}
	return out, nil
}

// Seed loads the fixtures into the backend unless its database is already
// present. It reports whether anything was written.
func (s *Seeder) Seed(ctx context.Context, b Backend) (bool, error) {
	present, err := s.IsPresent(ctx, b)
	if err != nil {
		return false, err
	}
	if present {
		s.log.Debug("sample data already present", "backend", b.String())
		return false, nil
	}

	c, err := s.catalog(b)
	if err != nil {
		return false, err
	}
	if err := c.seed(ctx); err != nil {
		return false, fmt.Errorf("failed to seed %s backend: %w", b, err)
	}
	s.log.Info("seeded sample data", "backend", b.String())
	return true, nil
}

// SeedMissing seeds every backend whose database is absent and returns the
// ones it seeded.
func (s *Seeder) SeedMissing(ctx context.Context) ([]Backend, error) {
	var seeded []Backend
	for _, b := range AllBackends {
		ok, err := s.Seed(ctx, b)
		if err != nil {
			return seeded, err
		}
		if ok {
			seeded = append(seeded, b)
		}
	}
	return seeded, nil
}

// ============================================================================
// RELATIONAL
// ============================================================================

const mysqlSchemaExistsQuery = `SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?`

type relationalCatalog struct {
	db          *sql.DB
	name        string
	existsQuery string
	script      string
}

func (c *relationalCatalog) isPresent(ctx context.Context) (bool, error) {
	var found string
	err := c.db.QueryRowContext(ctx, c.existsQuery, c.name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *relationalCatalog) seed(ctx context.Context) error {
	statements, err := SplitStatements(strings.NewReader(c.script), true)
	if err != nil {
		return err
	}
	for i, stmt := range statements {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("statement %d: %w", i+1, err)
		}
	}
	return nil
}

// ============================================================================
// GRAPH
// ============================================================================

const (
	cypherDatabaseExists = `SHOW DATABASES YIELD name WHERE name = toLower($name) RETURN name`
	cypherCreateDatabase = `CREATE DATABASE $name IF NOT EXISTS WAIT`
)

type graphCatalog struct {
	system CypherRunner
	data   CypherRunner
	name   string
	script string
}

func (c *graphCatalog) isPresent(ctx context.Context) (bool, error) {
	rows, err := c.system.Run(ctx, cypherDatabaseExists, map[string]any{"name": c.name})
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

func (c *graphCatalog) seed(ctx context.Context) error {
	if _, err := c.system.Run(ctx, cypherCreateDatabase, map[string]any{"name": c.name}); err != nil {
		return fmt.Errorf("failed to create graph database %s: %w", c.name, err)
	}

	statements, err := SplitStatements(strings.NewReader(c.script), false)
	if err != nil {
		return err
	}
	for i, stmt := range statements {
		if _, err := c.data.Run(ctx, stmt, nil); err != nil {
			return fmt.Errorf("statement %d: %w", i+1, err)
		}
	}
	return nil
}

// ============================================================================
// DOCUMENT
// ============================================================================

// documentAdmin manages whole document databases.
type documentAdmin interface {
	DatabaseExists(ctx context.Context, name string) (bool, error)
	// Replace drops the database and inserts the documents per collection.
	Replace(ctx context.Context, name string, collections map[string][]any) error
}

type mongoAdmin struct {
	client *mongo.Client
}

func (a *mongoAdmin) DatabaseExists(ctx context.Context, name string) (bool, error) {
	names, err := a.client.ListDatabaseNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

func (a *mongoAdmin) Replace(ctx context.Context, name string, collections map[string][]any) error {
	db := a.client.Database(name)
	if err := db.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop document database %s: %w", name, err)
	}

	keys := make([]string, 0, len(collections))
	for k := range collections {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, coll := range keys {
		docs := collections[coll]
		if len(docs) == 0 {
			continue
		}
		if _, err := db.Collection(coll).InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", coll, err)
		}
	}
	return nil
}

type documentCatalog struct {
	admin   documentAdmin
	name    string
	fixture []byte
}

func (c *documentCatalog) isPresent(ctx context.Context) (bool, error) {
	return c.admin.DatabaseExists(ctx, c.name)
}

func (c *documentCatalog) seed(ctx context.Context) error {
	collections, err := parseDocumentFixture(c.fixture)
	if err != nil {
		return err
	}
	return c.admin.Replace(ctx, c.name, collections)
}

// ============================================================================
// KEY-VALUE
// ============================================================================

// keyValueCatalog marks a seeded key-value store with a sentinel key, since
// Redis has no named databases to look for.
type keyValueCatalog struct {
	kv      *redis.Client
	name    string
	fixture []byte
}

func (c *keyValueCatalog) isPresent(ctx context.Context) (bool, error) {
	n, err := c.kv.Exists(ctx, seededKey(c.name)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *keyValueCatalog) seed(ctx context.Context) error {
	values, err := parseKeyValueFixture(c.fixture)
	if err != nil {
		return err
	}
	_, err = c.kv.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range values {
			pipe.Set(ctx, k, v, 0)
		}
		pipe.Set(ctx, seededKey(c.name), "1", 0)
		return nil
	})
	return err
}
