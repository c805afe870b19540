package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Sentinel errors for the CLI.
var (
	ErrUsage                = errors.New("invalid usage")
	ErrInvalidExtraMetadata = errors.New("extra metadata must be a JSON object")
	ErrNoOutFolder          = errors.New("no output folder given")
	ErrCheckFailed          = errors.New("check found problems")
)

func newRootCommand(env *Environment) *cobra.Command {
	root := &cobra.Command{
		Use:           "db2md",
		Short:         "Migrate wiki and blog database dumps to Markdown",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	root.AddCommand(newConvertCommand(env))
	root.AddCommand(newCheckCommand(env))
	root.AddCommand(newDoctorCommand(env))
	root.AddCommand(newVersionCommand(env))

	return root
}

// execute runs the CLI with args and returns the process exit code.
func execute(args []string, env *Environment) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand(env)
	cmd.SetArgs(args)
	cmd.SetOut(env.Stdout)
	cmd.SetErr(env.Stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(env.Stderr, "Error:", err)
	}
	return exitCodeFor(err)
}

// argsBetween accepts min to max positional arguments and reports others as
// usage errors.
func argsBetween(min, max int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.RangeArgs(min, max)(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return nil
	}
}
