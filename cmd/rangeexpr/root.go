package main

import (
	"context"
	"fmt"
	"io"

	"github.com/praetorian-inc/rangeexpr/pkg/engine"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	quiet     bool
	colorMode string
	envFile   string
)

var rootCmd = &cobra.Command{
	Use:   "rangeexpr",
	Short: "rangeexpr - evaluate index and range expressions",
	Long: `rangeexpr evaluates compact index and range expressions such as "1-3,last"
or "inv(id-score)" against a bounded list of positions.

Positions can be addressed by number, by placeholder (first, last, last_1, ...)
or by name when a list of names is given, e.g. a CSV header row or the columns
of a database table.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadEnv,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "Color output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load defaults from a dotenv file (default: .env if present)")

	// Add subcommands
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(compactCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(namesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// stderrLogger writes engine diagnostics when --verbose is set.
type stderrLogger struct {
	w io.Writer
}

func (l stderrLogger) Log(format string, args ...interface{}) {
	fmt.Fprintf(l.w, "[rangeexpr] "+format+"\n", args...)
}

func newLogger(cmd *cobra.Command) engine.DebugLogger {
	if !verbose || quiet {
		return engine.NoopLogger{}
	}
	return stderrLogger{w: cmd.ErrOrStderr()}
}

// commandContext returns the command's context, Background when the command
// was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
