package source

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/praetorian-inc/rangeexpr/pkg/ranges"
	"github.com/praetorian-inc/rangeexpr/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTable(t *testing.T, path string) {
	t.Helper()

	db, err := Open(DriverSQLite, path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE measurements (id INTEGER, "first_name" TEXT, height REAL, "col,1" TEXT)`)
	require.NoError(t, err)
}

func TestLoad_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	createTable(t, path)

	cols, err := Load(context.Background(), Config{Driver: "sqlite3", DSN: path, Table: "measurements"})
	require.NoError(t, err)

	assert.Equal(t, "measurements", cols.Table)
	assert.Equal(t, types.Names{"id", "first_name", "height", "col,1"}, cols.Names)
	assert.Equal(t, 4, cols.Count())
	assert.Equal(t, "height", cols.NameAt(2))
	assert.Equal(t, "", cols.NameAt(4))
}

func TestLoad_ColumnsDriveDataRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	createTable(t, path)

	cols, err := Load(context.Background(), Config{DSN: path, Table: "measurements"})
	require.NoError(t, err)

	r := ranges.NewDataRangeWithData(`"first_name"-height,"col,1"`, cols)
	assert.Equal(t, []int{1, 2, 3}, r.IntIndices())
}

func TestColumns_Nil(t *testing.T) {
	var cols *Columns
	assert.Equal(t, 0, cols.Count())
	assert.Equal(t, "", cols.NameAt(0))

	r := ranges.NewDataRangeWithData("1-2", cols)
	_, ok := r.Data()
	assert.False(t, ok)
	assert.Equal(t, -1, r.Max())
	assert.Empty(t, r.IntIndices())
}

func TestLoad_MissingTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	createTable(t, path)

	_, err := Load(context.Background(), Config{Driver: DriverSQLite, DSN: path, Table: "missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "querying table missing")
}

func TestLoad_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "no table", cfg: Config{DSN: "x.db"}, want: "table is required"},
		{name: "unknown driver", cfg: Config{Driver: "oracle", DSN: "x", Table: "t"}, want: "unsupported driver"},
		{name: "no dsn", cfg: Config{Driver: DriverSQLite, Table: "t"}, want: "dsn is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestQuoteTable(t *testing.T) {
	tests := []struct {
		driver   string
		table    string
		expected string
	}{
		{driver: DriverSQLite, table: "t", expected: `"t"`},
		{driver: DriverPostgres, table: "public.t", expected: `"public"."t"`},
		{driver: DriverPostgres, table: `we"ird`, expected: `"we""ird"`},
		{driver: DriverMySQL, table: "db.t", expected: "`db`.`t`"},
	}

	for _, tt := range tests {
		t.Run(tt.driver+" "+tt.table, func(t *testing.T) {
			got, err := quoteTable(tt.driver, tt.table)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := quoteTable(DriverSQLite, "a..b")
	assert.Error(t, err)
}

func TestNormalizeDriver(t *testing.T) {
	for in, want := range map[string]string{
		"":           DriverSQLite,
		"SQLite3":    DriverSQLite,
		"pgx":        DriverPostgres,
		"postgresql": DriverPostgres,
		"mysql":      DriverMySQL,
	} {
		got, err := normalizeDriver(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, "driver %q", in)
	}
	assert.Equal(t, "pgx", driverName(DriverPostgres))
	assert.Equal(t, DriverMySQL, driverName(DriverMySQL))
}
