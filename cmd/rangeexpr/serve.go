package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/praetorian-inc/rangeexpr/pkg/engine"
	"github.com/praetorian-inc/rangeexpr/pkg/serve"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as streaming evaluation server",
	Long: `Run rangeexpr as a long-lived server that accepts requests via stdin and
writes responses to stdout using NDJSON format.

Names given with --names, --names-file, --csv-header or --table are loaded
once at startup and used by every request that brings no names of its own.
The process runs until stdin closes, a close request arrives or SIGTERM is
received.`,
	RunE: runServe,
}

func init() {
	addNameFlags(serveCmd, &nameOpts)
}

func runServe(cmd *cobra.Command, args []string) error {
	defaults, err := nameOpts.load(commandContext(cmd))
	if err != nil {
		return err
	}

	core := engine.NewCoreWithNames(defaults, newLogger(cmd))
	defer core.Close()

	// Set up signal handling
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	srv := serve.NewServer(core, cmd.InOrStdin(), cmd.OutOrStdout())
	return srv.Run(ctx)
}
