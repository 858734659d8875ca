package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sift/internal/version"
)

// Exit codes.
const (
	exitOK      = 0
	exitProblem = 1
	exitFailure = 2
)

// exitCodeError ends the process with code without printing anything.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// traceCleanup flushes the tracer once the command has finished.
var traceCleanup = func(bool) {}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sift",
		Short:         "Cache-aware linter with multi-pass autofix",
		Long:          `sift checks script files against configurable rules and can fix what the rules know how to fix`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyColorMode(cmd); err != nil {
				return err
			}
			cleanup, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			traceCleanup = cleanup
			return nil
		},
	}

	root.AddCommand(newLintCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newVersionCmd())

	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().String("trace", "", "write trace events to a file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	root.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	root.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	root.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")
	return root
}

// main runs the CLI. Lint problems exit with 1, any other failure with 2.
func main() {
	os.Exit(run(newRootCmd(), os.Args[1:]))
}

func run(root *cobra.Command, args []string) int {
	traceCleanup = func(bool) {}
	root.SetArgs(args)
	err := root.Execute()
	traceCleanup(err != nil)
	if err == nil {
		return exitOK
	}
	var exitErr *exitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	fmt.Fprintf(root.ErrOrStderr(), "sift: %v\n", err)
	return exitFailure
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
