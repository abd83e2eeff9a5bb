package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/thenoetrevino/coffeehub/internal/config"
)

// openRelational opens a single MySQL connection. An empty dbName connects
// without selecting a schema.
func openRelational(ctx context.Context, creds *config.MySQLCredentials, dbName string) (*sql.DB, error) {
	cfg := mysql.NewConfig()
	cfg.User = creds.Account
	cfg.Passwd = creds.Password
	cfg.Net = "tcp"
	cfg.Addr = creds.Addr()
	cfg.DBName = dbName
	cfg.ParseTime = true
	cfg.Loc = time.Local

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open relational database: %w", err)
	}

	// One session per backend; USE statements from the seed script must
	// stay on the same connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		return db, fmt.Errorf("relational ping failed: %w", err)
	}
	return db, nil
}
