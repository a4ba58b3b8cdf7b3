package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/kubev2v/sddcinfo/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	code := runMain(Execute, os.Stderr)
	if code != 0 {
		os.Exit(code)
	}
}

func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return classifyError(NewSDDCInfoCommand().ExecuteContext(ctx))
}

func NewSDDCInfoCommand() *cobra.Command {
	cmd := cli.NewCmdReport()
	cmd.SilenceErrors = true
	cmd.AddCommand(cli.NewCmdVersion())
	return cmd
}

func runMain(execute func() error, stderr io.Writer) int {
	if err := execute(); err != nil {
		return exitCodeForError(err, stderr)
	}
	return 0
}

func exitCodeForError(err error, stderr io.Writer) int {
	var ee *exitError
	if errors.As(err, &ee) {
		if !ee.silent {
			emitCommandError(resolveErrorForExitError(ee, err), ee.code, stderr)
		}
		return ee.code
	}

	if errors.Is(err, context.Canceled) {
		emitCommandError(err, exitCanceled, stderr)
		return exitCanceled
	}

	emitCommandError(err, exitGeneric, stderr)
	return exitGeneric
}

func emitCommandError(err error, exitCode int, stderr io.Writer) {
	if exitCode == exitCanceled {
		_, _ = fmt.Fprintln(stderr, "canceled")
		return
	}
	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
}

func resolveErrorForExitError(ee *exitError, fallback error) error {
	if ee != nil && ee.err != nil {
		return ee.err
	}
	return fallback
}
