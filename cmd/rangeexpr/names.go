package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/praetorian-inc/rangeexpr/pkg/engine"
	"github.com/praetorian-inc/rangeexpr/pkg/names"
	"github.com/praetorian-inc/rangeexpr/pkg/types"
	"github.com/spf13/cobra"
)

var (
	namesFormat  string
	namesInclude string
	namesExclude string
)

var errNoNames = errors.New("no names given: use --names, --names-file, --csv-header or --table")

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "Inspect name lists",
	Long:  "Commands for listing names and selecting positions by name pattern",
}

var namesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List names with their positions",
	Long:  "Display every name with its 1-based position and the form to use in expressions",
	RunE:  runNamesList,
}

var namesSelectCmd = &cobra.Command{
	Use:   "select",
	Short: "Select positions by name pattern",
	Long: `Select the names matching --include and not matching --exclude and print
their positions as a range expression. Patterns are Perl-style regular
expressions, comma-separated.`,
	RunE: runNamesSelect,
}

func init() {
	namesCmd.AddCommand(namesListCmd)
	namesCmd.AddCommand(namesSelectCmd)

	for _, cmd := range []*cobra.Command{namesListCmd, namesSelectCmd} {
		addNameFlags(cmd, &nameOpts)
		cmd.Flags().StringVar(&namesFormat, "format", "table", "Output format: table, json")
	}
	namesSelectCmd.Flags().StringVar(&namesInclude, "include", "", "Comma-separated include patterns")
	namesSelectCmd.Flags().StringVar(&namesExclude, "exclude", "", "Comma-separated exclude patterns")
}

// nameEntry is one row of names list output.
type nameEntry struct {
	Position int    `json:"position"` // 1-based
	Name     string `json:"name"`
	Token    string `json:"token"` // form to use in expressions
}

func runNamesList(cmd *cobra.Command, args []string) error {
	list, err := requireNames(cmd)
	if err != nil {
		return err
	}

	entries := make([]nameEntry, 0, len(list))
	for i, name := range list {
		entries = append(entries, nameEntry{Position: i + 1, Name: name, Token: names.Escape(name)})
	}

	switch namesFormat {
	case "json":
		return outputJSON(cmd, entries)
	case "table":
		return outputNamesTable(cmd, entries)
	default:
		return fmt.Errorf("unknown output format: %s", namesFormat)
	}
}

func runNamesSelect(cmd *cobra.Command, args []string) error {
	list, err := requireNames(cmd)
	if err != nil {
		return err
	}

	core := engine.NewCoreWithNames(list, newLogger(cmd))
	defer core.Close()

	result, err := core.Select(names.FilterConfig{
		Include: names.ParsePatterns(namesInclude),
		Exclude: names.ParsePatterns(namesExclude),
	})
	if err != nil {
		return err
	}

	switch namesFormat {
	case "json":
		return outputJSON(cmd, result)
	case "table":
		fmt.Fprintln(cmd.OutOrStdout(), result.Range)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", namesFormat)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func requireNames(cmd *cobra.Command) (types.Names, error) {
	list, err := nameOpts.load(commandContext(cmd))
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, errNoNames
	}
	return list, nil
}

func outputNamesTable(cmd *cobra.Command, entries []nameEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "#\tName\tToken\n")
	fmt.Fprintf(w, "-\t----\t-----\n")

	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\n", e.Position, e.Name, e.Token)
	}

	return nil
}
