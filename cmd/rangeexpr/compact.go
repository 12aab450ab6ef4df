package main

import (
	"fmt"
	"strconv"

	"github.com/praetorian-inc/rangeexpr/pkg/engine"
	"github.com/spf13/cobra"
)

var (
	compactOrdered  bool
	compactOneBased bool
	compactFormat   string
)

var compactCmd = &cobra.Command{
	Use:   "compact <position>...",
	Short: "Encode positions as a range expression",
	Long: `Encode a list of positions as the shortest equivalent range expression.

Positions are 0-based unless --one-based is given. By default they are sorted,
deduplicated and runs are written as "from-to"; with --ordered they are listed
in the order given, as an unordered range.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompact,
}

func init() {
	compactCmd.Flags().BoolVar(&compactOrdered, "ordered", false, "Keep the given order and duplicates")
	compactCmd.Flags().BoolVar(&compactOneBased, "one-based", false, "Positions are 1-based")
	compactCmd.Flags().StringVar(&compactFormat, "format", "human", "Output format: human, json")
}

func runCompact(cmd *cobra.Command, args []string) error {
	positions, err := parsePositions(args, compactOneBased)
	if err != nil {
		return err
	}

	core := engine.NewCoreWithNames(nil, newLogger(cmd))
	result := core.Compact(positions, compactOrdered)

	switch compactFormat {
	case "json":
		return outputJSON(cmd, result)
	case "human":
		fmt.Fprintln(cmd.OutOrStdout(), result.Range)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", compactFormat)
	}
}

func parsePositions(args []string, oneBased bool) ([]int, error) {
	positions := make([]int, 0, len(args))
	for _, arg := range args {
		pos, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid position %q: %w", arg, err)
		}
		if oneBased {
			pos--
		}
		if pos < 0 {
			return nil, fmt.Errorf("invalid position %q: must not be negative", arg)
		}
		positions = append(positions, pos)
	}
	return positions, nil
}
