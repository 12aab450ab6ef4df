package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/praetorian-inc/rangeexpr/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNameList(t *testing.T) {
	got := parseNameList(`id, "col,1" ,first_name`)
	assert.Equal(t, []string{"id", "col,1", "first_name"}, []string(got))
}

func TestNameFlags_Load(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "names.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("names:\n  - id\n  - score\n"), 0o600))

	csvPath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("id,score,\"col,1\"\n1,2,3\n"), 0o600))

	dbPath := filepath.Join(dir, "data.db")
	db, err := source.Open(source.DriverSQLite, dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE runs (id INTEGER, started_at TEXT)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	tests := []struct {
		name     string
		flags    nameFlags
		expected []string
	}{
		{name: "none", flags: nameFlags{}, expected: nil},
		{name: "list", flags: nameFlags{list: "a,b"}, expected: []string{"a", "b"}},
		{name: "yaml file", flags: nameFlags{file: yamlPath}, expected: []string{"id", "score"}},
		{name: "csv header", flags: nameFlags{csvHeader: csvPath}, expected: []string{"id", "score", "col,1"}},
		{name: "sqlite table", flags: nameFlags{dbDriver: source.DriverSQLite, dsn: dbPath, table: "runs"}, expected: []string{"id", "started_at"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.load(context.Background())
			require.NoError(t, err)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.expected, []string(got))
		})
	}
}

func TestNameFlags_LoadErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	for _, f := range []nameFlags{
		{file: missing},
		{csvHeader: missing},
		{dbDriver: "oracle", dsn: "x", table: "t"},
	} {
		_, err := f.load(context.Background())
		assert.Error(t, err)
	}
}

func TestRunNamesList(t *testing.T) {
	resetOptions(t)
	nameOpts.list = `id,"col,1"`
	namesFormat = "table"

	cmd, buf := newTestCommand()
	require.NoError(t, runNamesList(cmd, nil))

	output := buf.String()
	assert.Contains(t, output, "Name")
	assert.Contains(t, output, "id")
	assert.Contains(t, output, `"col,1"`)
}

func TestRunNamesList_JSON(t *testing.T) {
	resetOptions(t)
	nameOpts.list = "id,first_name"
	namesFormat = "json"
	t.Cleanup(func() { namesFormat = "table" })

	cmd, buf := newTestCommand()
	require.NoError(t, runNamesList(cmd, nil))

	var entries []nameEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	assert.Equal(t, []nameEntry{
		{Position: 1, Name: "id", Token: "id"},
		{Position: 2, Name: "first_name", Token: `"first_name"`},
	}, entries)
}

func TestRunNamesList_NoNames(t *testing.T) {
	resetOptions(t)

	cmd, _ := newTestCommand()
	err := runNamesList(cmd, nil)
	assert.ErrorIs(t, err, errNoNames)
}

func TestRunNamesSelect(t *testing.T) {
	resetOptions(t)
	nameOpts.list = "id,created_at,name,updated_at,deleted_at"
	namesFormat = "table"
	namesInclude, namesExclude = "_at$", "^deleted"
	t.Cleanup(func() { namesInclude, namesExclude = "", "" })

	cmd, buf := newTestCommand()
	require.NoError(t, runNamesSelect(cmd, nil))
	assert.Equal(t, "2,4\n", buf.String())
}

func TestRunNamesSelect_InvalidPattern(t *testing.T) {
	resetOptions(t)
	nameOpts.list = "id"
	namesInclude = "(unclosed"
	t.Cleanup(func() { namesInclude = "" })

	cmd, _ := newTestCommand()
	err := runNamesSelect(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid regex pattern")
}
