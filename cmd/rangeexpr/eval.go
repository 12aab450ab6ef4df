package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/praetorian-inc/rangeexpr/pkg/engine"
	"github.com/praetorian-inc/rangeexpr/pkg/index"
	"github.com/praetorian-inc/rangeexpr/pkg/names"
	"github.com/praetorian-inc/rangeexpr/pkg/ranges"
	"github.com/praetorian-inc/rangeexpr/pkg/types"
	"github.com/spf13/cobra"
)

// exprFlags are shared by commands that evaluate expressions.
type exprFlags struct {
	max    int
	kind   string
	format string
}

var exprOpts exprFlags

var evalCmd = &cobra.Command{
	Use:   "eval <expression>...",
	Short: "Evaluate range or index expressions",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEval,
}

func init() {
	evalCmd.Long = "Evaluate range or index expressions and print the positions they select.\n\n" +
		ranges.NewDataRange[types.Names]("").Example() + ".\n\n" +
		index.NewDataIndex[types.Names]("").Example() + "."

	addExprFlags(evalCmd, &exprOpts)
	addNameFlags(evalCmd, &nameOpts)
}

func addExprFlags(cmd *cobra.Command, f *exprFlags) {
	cmd.Flags().IntVar(&f.max, "max", 0, "Number of positions (default: number of names)")
	cmd.Flags().StringVar(&f.kind, "kind", engine.KindRange, "Expression kind: range, unordered, index")
	cmd.Flags().StringVar(&f.format, "format", "human", "Output format: human, json")
}

func runEval(cmd *cobra.Command, args []string) error {
	defaults, err := nameOpts.load(commandContext(cmd))
	if err != nil {
		return err
	}

	core := engine.NewCoreWithNames(defaults, newLogger(cmd))
	defer core.Close()

	results, err := evaluateAll(core, args, exprOpts)
	if err != nil {
		return err
	}

	switch exprOpts.format {
	case "json":
		return outputJSON(cmd, results)
	case "human":
		return outputEvalHuman(cmd, results, defaults)
	default:
		return fmt.Errorf("unknown output format: %s", exprOpts.format)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func evaluateAll(core *engine.Core, exprs []string, f exprFlags) ([]*engine.Result, error) {
	results := make([]*engine.Result, 0, len(exprs))
	for _, expr := range exprs {
		result, err := core.Evaluate(engine.Request{
			Expression: expr,
			Kind:       f.kind,
			Max:        f.max,
		})
		if err != nil {
			return nil, fmt.Errorf("evaluating %q: %w", expr, err)
		}
		results = append(results, result)
	}
	return results, nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func outputEvalHuman(cmd *cobra.Command, results []*engine.Result, defaults types.Names) error {
	out := cmd.OutOrStdout()
	s := configureColor()

	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s (%s)\n", s.expression.Sprint(r.Expression), s.verdict(r.Valid))
		if r.Clean != r.Expression {
			fmt.Fprintf(out, "  %s %s\n", s.label.Sprint("Clean:    "), r.Clean)
		}
		fmt.Fprintf(out, "  %s %d\n", s.label.Sprint("Max:      "), r.Max)
		fmt.Fprintf(out, "  %s %s\n", s.label.Sprint("Positions:"), s.positions.Sprint(orNone(r.Explicit)))
		if defaults != nil && len(r.Indices) > 0 {
			fmt.Fprintf(out, "  %s %s\n", s.label.Sprint("Names:    "), joinNames(defaults, r.Indices))
		}
		for _, msg := range r.Errors {
			fmt.Fprintf(out, "  %s %s\n", s.label.Sprint("Dropped:  "), s.problem.Sprint(msg))
		}
		if r.Max <= 0 && !quiet {
			fmt.Fprintf(out, "  %s\n", s.problem.Sprint("no maximum: use --max or a name source"))
		}
	}
	return nil
}

func joinNames(list types.Names, positions []int) string {
	parts := make([]string, 0, len(positions))
	for _, pos := range positions {
		parts = append(parts, names.Escape(list.NameAt(pos)))
	}
	return strings.Join(parts, ", ")
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
