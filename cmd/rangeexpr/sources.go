package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/praetorian-inc/rangeexpr/pkg/names"
	"github.com/praetorian-inc/rangeexpr/pkg/source"
	"github.com/praetorian-inc/rangeexpr/pkg/types"
	"github.com/spf13/cobra"
)

// nameFlags selects where the names used in expressions come from.
type nameFlags struct {
	list      string
	file      string
	csvHeader string
	dbDriver  string
	dsn       string
	table     string
}

var nameOpts nameFlags

func addNameFlags(cmd *cobra.Command, f *nameFlags) {
	cmd.Flags().StringVar(&f.list, "names", "", `Comma-separated names; quote names containing ',' ("a,b")`)
	cmd.Flags().StringVar(&f.file, "names-file", "", "YAML file with a names: list")
	cmd.Flags().StringVar(&f.csvHeader, "csv-header", "", "CSV file whose header row provides the names")
	cmd.Flags().StringVar(&f.dbDriver, "db-driver", source.DriverSQLite, "Database driver for --table: sqlite, postgres, mysql")
	cmd.Flags().StringVar(&f.dsn, "dsn", "", "Database DSN for --table ($VAR references are expanded)")
	cmd.Flags().StringVar(&f.table, "table", "", "Database table whose columns provide the names")
	cmd.MarkFlagsMutuallyExclusive("names", "names-file", "csv-header", "table")
	cmd.MarkFlagsRequiredTogether("table", "dsn")
}

// load returns the selected names, nil when no source was given.
func (f *nameFlags) load(ctx context.Context) (types.Names, error) {
	loader := names.NewLoader()

	switch {
	case f.list != "":
		return parseNameList(f.list), nil
	case f.file != "":
		list, err := loader.LoadFile(f.file)
		if err != nil {
			return nil, fmt.Errorf("loading names from %s: %w", f.file, err)
		}
		return list, nil
	case f.csvHeader != "":
		list, err := loader.LoadCSVHeaderFile(f.csvHeader)
		if err != nil {
			return nil, fmt.Errorf("loading CSV header from %s: %w", f.csvHeader, err)
		}
		return list, nil
	case f.table != "":
		cols, err := source.Load(ctx, source.Config{
			Driver: f.dbDriver,
			DSN:    os.ExpandEnv(f.dsn),
			Table:  f.table,
		})
		if err != nil {
			return nil, fmt.Errorf("loading columns of %s: %w", f.table, err)
		}
		return cols.Names, nil
	}
	return nil, nil
}

func parseNameList(s string) types.Names {
	parts := names.Split(s, ',')
	list := make(types.Names, 0, len(parts))
	for _, p := range parts {
		list = append(list, names.Unescape(strings.TrimSpace(p)))
	}
	return list
}
