package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"
)

// Type identifies the backing relational store.
type Type string

const (
	TypePostgres Type = "postgres"
	TypeSQLite   Type = "sqlite"
)

// DetectType determines the database type from a DSN string. Anything that is
// not a postgres URL is treated as a SQLite path.
func DetectType(dsn string) Type {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return TypePostgres
	}
	return TypeSQLite
}

// Open connects to the database named by dsn and verifies the connection.
func Open(ctx context.Context, dsn string, development bool) (*bun.DB, error) {
	switch DetectType(dsn) {
	case TypePostgres:
		return openPostgres(ctx, withPostgresDefaults(dsn, development))
	default:
		return openSQLite(ctx, withSQLitePragmas(dsn))
	}
}

// withPostgresDefaults disables SSL for local development and forces the
// simple protocol elsewhere, since production sits behind a transaction
// pooler that cannot handle server-side prepared statements.
func withPostgresDefaults(dsn string, development bool) string {
	if development && !strings.Contains(dsn, "sslmode") {
		dsn += querySeparator(dsn) + "sslmode=disable"
	}
	if !development && !strings.Contains(dsn, "default_query_exec_mode") {
		dsn += querySeparator(dsn) + "default_query_exec_mode=simple_protocol"
	}
	return dsn
}

func querySeparator(dsn string) string {
	if strings.Contains(dsn, "?") {
		return "&"
	}
	return "?"
}

// sqlitePragmas are applied by the driver on every new connection. Foreign
// keys are off by default in SQLite.
var sqlitePragmas = []string{"foreign_keys(1)", "journal_mode(WAL)"}

// withSQLitePragmas appends the `_pragma` parameters the modernc driver runs
// when it opens a connection. Pragmas already named in dsn are kept as given.
func withSQLitePragmas(dsn string) string {
	for _, p := range sqlitePragmas {
		name := p[:strings.Index(p, "(")]
		if strings.Contains(dsn, "_pragma="+name) {
			continue
		}
		dsn += querySeparator(dsn) + "_pragma=" + p
	}
	return dsn
}

func openPostgres(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqldb.SetMaxOpenConns(25)
	sqldb.SetMaxIdleConns(25)
	sqldb.SetConnMaxIdleTime(5 * time.Minute)

	db := bun.NewDB(sqldb, pgdialect.New())
	if err := db.PingContext(ctx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func openSQLite(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Single writer connection. This also keeps :memory: databases alive.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if err := db.PingContext(ctx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}
