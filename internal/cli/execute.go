package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/lisanmuaddib/twindle/pkg/logging"
	"github.com/lisanmuaddib/twindle/pkg/status"
	"github.com/lisanmuaddib/twindle/pkg/twindle"
)

// Exit statuses
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Options overrides the collaborators of a run. Zero values select the
// production ones.
type Options struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Env      *twindle.EnvConfig
	Logger   *logrus.Logger
	Reporter status.Reporter
	Factory  twindle.Factory
}

// Execute runs the command line with the process streams and environment
func Execute(ctx context.Context, args []string) int {
	return Run(ctx, args, Options{})
}

// Run resolves args, executes the run and prints its failure, if any, once.
// It returns the exit status.
func Run(ctx context.Context, args []string, opts Options) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	if opts.Env == nil {
		env, err := twindle.NewEnvConfig()
		if err != nil {
			present(opts.Stderr, err, twindle.IsDev())
			return ExitFailure
		}
		opts.Env = env
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewLogger(opts.Stderr, os.Getenv("LOG_LEVEL"), opts.Env.Dev)
	}
	if opts.Reporter == nil {
		opts.Reporter = status.NewTerminal(opts.Stdout)
	}
	if opts.Factory == nil {
		opts.Factory = NewFactory(*opts.Env, opts.Logger)
	}

	cmd := NewRootCmd(func(ctx context.Context, cfg twindle.RunConfig) error {
		runner, err := twindle.New(twindle.Config{
			Env:      *opts.Env,
			Factory:  opts.Factory,
			Reporter: opts.Reporter,
			Logger:   opts.Logger,
		})
		if err != nil {
			return err
		}
		_, err = runner.Run(ctx, cfg)
		return err
	})
	cmd.SetArgs(normalizeArgs(args))
	cmd.SetOut(opts.Stdout)
	cmd.SetErr(opts.Stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	if opts.Reporter.State() == status.StateRunning {
		opts.Reporter.Fail(twindle.Label(err))
	}
	present(opts.Stderr, err, opts.Env.Dev)

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(opts.Stderr, "Run '%s --help' for usage.\n", cmd.Name())
		return ExitUsage
	}
	return ExitFailure
}

// present writes err once: the label and message, or in verbose mode the
// label and every detail including captured stacks
func present(w io.Writer, err error, verbose bool) {
	label := color.RedString(twindle.Label(err))
	if verbose {
		fmt.Fprintf(w, "%s: %+v\n", label, err)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", label, twindle.Message(err))
}
