package main

import (
	"fmt"

	"github.com/praetorian-inc/rangeexpr/pkg/engine"
	"github.com/spf13/cobra"
)

var validateOpts exprFlags

var validateCmd = &cobra.Command{
	Use:   "validate <expression>...",
	Short: "Check that expressions are canonical and resolvable",
	Long: `Check each expression: it is valid when cleaning leaves it unchanged and,
given a maximum, every segment resolves within it.

Exits with an error when at least one expression is invalid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	addExprFlags(validateCmd, &validateOpts)
	addNameFlags(validateCmd, &nameOpts)
}

func runValidate(cmd *cobra.Command, args []string) error {
	defaults, err := nameOpts.load(commandContext(cmd))
	if err != nil {
		return err
	}

	core := engine.NewCoreWithNames(defaults, newLogger(cmd))
	defer core.Close()

	results, err := evaluateAll(core, args, validateOpts)
	if err != nil {
		return err
	}

	switch validateOpts.format {
	case "json":
		if err := outputJSON(cmd, results); err != nil {
			return err
		}
	case "human":
		outputValidateHuman(cmd, results)
	default:
		return fmt.Errorf("unknown output format: %s", validateOpts.format)
	}

	invalid := 0
	for _, r := range results {
		if !r.Valid {
			invalid++
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d expressions invalid", invalid, len(results))
	}
	return nil
}

func outputValidateHuman(cmd *cobra.Command, results []*engine.Result) {
	out := cmd.OutOrStdout()
	s := configureColor()

	for _, r := range results {
		if quiet && r.Valid {
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", s.expression.Sprint(r.Expression), s.verdict(r.Valid))
		if !r.Valid && r.Clean != r.Expression {
			fmt.Fprintf(out, "  %s %s\n", s.label.Sprint("Clean:"), orNone(r.Clean))
		}
		for _, msg := range r.Errors {
			fmt.Fprintf(out, "  %s\n", s.problem.Sprint(msg))
		}
	}
}
