// Package source provides NameSources backed by a SQL table: the column names
// of the table, in declaration order, become the names a data-backed range
// can refer to.
package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/praetorian-inc/rangeexpr/pkg/types"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config selects a database table.
type Config struct {
	// Driver is one of "sqlite", "postgres" or "mysql". "sqlite3" and "pgx"
	// are accepted as aliases.
	Driver string
	// DSN is passed to the driver unchanged, e.g. "file:data.db" or
	// "postgres://user@host/db".
	DSN string
	// Table whose columns are listed. May be schema qualified ("public.t").
	Table string
}

// Columns is the column header of a table.
type Columns struct {
	Table string      `json:"table"`
	Names types.Names `json:"names"`
}

// Count returns the number of columns, 0 for a nil header.
func (c *Columns) Count() int {
	if c == nil {
		return 0
	}
	return c.Names.Count()
}

// NameAt returns the name of the column at 0-based position i.
func (c *Columns) NameAt(i int) string {
	if c == nil {
		return ""
	}
	return c.Names.NameAt(i)
}

// Load opens the database, lists the table's columns and closes it again.
func Load(ctx context.Context, cfg Config) (*Columns, error) {
	if cfg.Table == "" {
		return nil, fmt.Errorf("table is required")
	}

	driver, err := normalizeDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := Open(driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return LoadColumns(ctx, db, driver, cfg.Table)
}

// Open opens a database handle for one of the supported drivers.
func Open(driver, dsn string) (*sql.DB, error) {
	driver, err := normalizeDriver(driver)
	if err != nil {
		return nil, err
	}
	if dsn == "" {
		return nil, fmt.Errorf("dsn is required")
	}

	db, err := sql.Open(driverName(driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// LoadColumns lists the columns of table through an existing handle. The
// query selects no rows; only the result set header is read.
func LoadColumns(ctx context.Context, db *sql.DB, driver, table string) (*Columns, error) {
	driver, err := normalizeDriver(driver)
	if err != nil {
		return nil, err
	}

	ident, err := quoteTable(driver, table)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+ident+" WHERE 1 = 0")
	if err != nil {
		return nil, fmt.Errorf("querying table %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}

	return &Columns{Table: table, Names: types.Names(cols)}, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func normalizeDriver(driver string) (string, error) {
	switch strings.ToLower(driver) {
	case "", DriverSQLite, "sqlite3":
		return DriverSQLite, nil
	case DriverPostgres, "postgresql", "pgx":
		return DriverPostgres, nil
	case DriverMySQL:
		return DriverMySQL, nil
	}
	return "", fmt.Errorf("unsupported driver: %s", driver)
}

// driverName maps a driver to the name registered with database/sql.
func driverName(driver string) string {
	if driver == DriverPostgres {
		return "pgx"
	}
	return driver
}

// quoteTable quotes every dot-separated part of a table name.
func quoteTable(driver, table string) (string, error) {
	parts := strings.Split(table, ".")
	quoted := make([]string, len(parts))
	for i, p := range parts {
		if p == "" {
			return "", fmt.Errorf("invalid table name: %q", table)
		}
		quoted[i] = quoteIdent(driver, p)
	}
	return strings.Join(quoted, "."), nil
}

func quoteIdent(driver, name string) string {
	if driver == DriverMySQL {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
