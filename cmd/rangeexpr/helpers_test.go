package main

import (
	"bytes"
	"testing"

	"github.com/praetorian-inc/rangeexpr/pkg/engine"
	"github.com/spf13/cobra"
)

// resetOptions restores the package level flag values after a test.
func resetOptions(t *testing.T) {
	t.Helper()
	saved := struct {
		expr, validate exprFlags
		names          nameFlags
		color          string
		quiet, verbose bool
	}{exprOpts, validateOpts, nameOpts, colorMode, quiet, verbose}

	exprOpts = exprFlags{kind: engine.KindRange, format: "human"}
	validateOpts = exprFlags{kind: engine.KindRange, format: "human"}
	nameOpts = nameFlags{}
	colorMode = "never"
	quiet, verbose = false, false

	t.Cleanup(func() {
		exprOpts, validateOpts, nameOpts = saved.expr, saved.validate, saved.names
		colorMode, quiet, verbose = saved.color, saved.quiet, saved.verbose
	})
}

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	return cmd, &buf
}
