// Package storage opens the store handles shared by every repository.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/auteur-engineer/website/internal/counters"
	"github.com/auteur-engineer/website/internal/posts"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

var ErrUnsupportedDriver = errors.New("storage: unsupported driver")

// OpenSQL opens a bun handle for the sqlite or postgres driver and pings it.
func OpenSQL(ctx context.Context, driver, dsn string) (*bun.DB, error) {
	var db *bun.DB
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSQLite:
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		// SQLite serialises writers; one connection avoids lock errors.
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	case DriverPostgres:
		sqldb, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		db = bun.NewDB(sqldb, pgdialect.New())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: ping %s: %w", driver, err)
	}
	return db, nil
}

// Migrate creates the posts and counters tables when missing.
func Migrate(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*posts.Record)(nil),
		(*counters.Record)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage: migrate %T: %w", model, err)
		}
	}
	return nil
}
