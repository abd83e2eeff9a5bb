package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/thenoetrevino/coffeehub/internal/config"
)

// systemDatabase is the Neo4j administration database used to create and
// list user databases.
const systemDatabase = "system"

// CypherTx runs statements inside one write transaction.
type CypherTx interface {
	Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}

// CypherRunner executes parameterized Cypher against one graph database.
type CypherRunner interface {
	// Run executes one auto-commit statement and collects its rows.
	Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
	// Write runs fn in a single transaction; a non-nil error rolls it back.
	Write(ctx context.Context, fn func(tx CypherTx) error) error
}

// openGraph creates the Neo4j driver and verifies it can reach the server.
func openGraph(ctx context.Context, creds *config.Neo4jCredentials) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(creds.URI, neo4j.BasicAuth(creds.Account, creds.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create graph driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return driver, fmt.Errorf("failed to verify graph connectivity: %w", err)
	}
	return driver, nil
}

// neo4jRunner binds a driver to a database name.
type neo4jRunner struct {
	driver   neo4j.DriverWithContext
	database string
}

func (r *neo4jRunner) Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: r.database,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer closeSession(ctx, session)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, err
	}
	return recordMaps(records), nil
}

func (r *neo4jRunner) Write(ctx context.Context, fn func(tx CypherTx) error) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: r.database,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer closeSession(ctx, session)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, fn(&neo4jTx{tx: tx})
	})
	return err
}

type neo4jTx struct {
	tx neo4j.ManagedTransaction
}

func (t *neo4jTx) Run(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	result, err := t.tx.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}
	records, err := result.Collect(ctx)
	if err != nil {
		return nil, err
	}
	return recordMaps(records), nil
}

func recordMaps(records []*neo4j.Record) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.AsMap())
	}
	return out
}

func closeSession(ctx context.Context, session neo4j.SessionWithContext) {
	if err := session.Close(ctx); err != nil {
		slog.Warn("failed to close graph session", "error", err)
	}
}
