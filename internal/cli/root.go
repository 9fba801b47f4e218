// Package cli implements the vrptw command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"solomon-validator/internal/adapters/solomon"
	"solomon-validator/internal/config"
	"solomon-validator/internal/platform/obs"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Process exit codes.
const (
	ExitValid   = 0
	ExitInvalid = 1
	ExitMissing = 2
)

// ExitError carries a process exit code out of a command.
// A nil Err means the verdict was already reported.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// inputExit maps a failure to read or parse an input file to its exit code.
func inputExit(err error) *ExitError {
	if errors.Is(err, solomon.ErrFileNotFound) {
		return &ExitError{Code: ExitMissing, Err: err}
	}
	return &ExitError{Code: ExitInvalid, Err: err}
}

type session struct {
	cfg    config.Config
	logger zerolog.Logger
	stdout io.Writer
	stderr io.Writer
}

// NewRootCmd builds the command tree writing to the given streams.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &session{stdout: stdout, stderr: stderr, logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "vrptw",
		Short:         "Check VRPTW solutions against Solomon benchmark instances",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = obs.NewLogger(a.stderr, cfg.Environment, cfg.LogLevel)
			cmd.SetContext(a.logger.WithContext(cmd.Context()))
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(newValidateCmd(a), newBatchCmd(a), newServeCmd(a))
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitValid
	}

	var ee *ExitError
	if errors.As(err, &ee) {
		if ee.Err != nil {
			fmt.Fprintf(stderr, "error: %v\n", ee.Err)
		}
		return ee.Code
	}

	fmt.Fprintf(stderr, "error: %v\n", err)
	return ExitInvalid
}

// Main is the entry point used by cmd/vrptw.
func Main() {
	os.Exit(Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
