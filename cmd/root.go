// Copyright (C) 2025-2026 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/dataentry/internal/console"
	"github.com/cardinalhq/dataentry/internal/upload"
)

// Process exit codes.
const (
	ExitOK  = 0
	ExitBad = 0xbad
)

// version is set at build time with
// -ldflags "-X github.com/cardinalhq/dataentry/cmd.version=1.2.3".
var version = ""

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	quiet bool
	debug bool

	stdout io.Writer
	stderr io.Writer
}

func (g *globalOptions) logConfig() console.Config {
	return console.Config{
		Quiet: g.quiet,
		Debug: g.debug,
	}
}

func newRootCmd(g *globalOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "de",
		Short:         "Data entry toolbox",
		Long:          `Set of tools to automate routine data entry tasks.`,
		Version:       buildVersion(),
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(c *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &upload.ValidationError{Argument: c.CommandPath(), Reason: fmt.Sprintf("unknown command %q", args[0])}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().BoolVar(&g.quiet, "quiet", false, "Report errors only")
	rootCmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "Show debug output")
	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &upload.ValidationError{Argument: c.CommandPath(), Reason: err.Error()}
	})

	rootCmd.AddCommand(newSequenceUploadCmd(g))
	return rootCmd
}

// Execute runs the command line and exits with its status.
// This is called by main.main().
func Execute() {
	ctx, cancel := handleSignals(context.Background())
	code := Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// Run executes args as a command line and returns the exit code.
// Errors are reported on stderr before it returns.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	g := &globalOptions{stdout: stdout, stderr: stderr}
	rootCmd := newRootCmd(g)
	rootCmd.SetArgs(helpAliases(args))
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	defer func() {
		if r := recover(); r != nil {
			report(g, nil, &UnexpectedError{Err: fmt.Errorf("panic: %v", r)})
			code = ExitBad
		}
	}()

	failed, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		report(g, failed, err)
		return ExitBad
	}
	return ExitOK
}

// helpAliases rewrites -? to --help up to the end of the flags.
func helpAliases(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i, a := range out {
		if a == "--" {
			break
		}
		if a == "-?" {
			out[i] = "--help"
		}
	}
	return out
}

// report writes err to stderr. Usage errors are followed by the help
// of the command that rejected them.
func report(g *globalOptions, failed *cobra.Command, err error) {
	logger := console.NewLogger(g.stdout, g.stderr, g.logConfig())
	err = classify(err)
	logger.Error(err.Error())

	var ve *upload.ValidationError
	if failed != nil && errors.As(err, &ve) {
		_, _ = fmt.Fprintln(g.stdout)
		failed.SetOut(g.stdout)
		_ = failed.Help()
	}
}

// handleSignals returns a context that is cancelled on SIGINT or SIGTERM
// so that ^C abandons an upload in flight.
func handleSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

func buildVersion() string {
	if version != "" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return "dev"
}
