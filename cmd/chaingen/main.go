package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/sghaida/fluent/pkg/log"
)

// usageError marks errors caused by how the command was invoked (exit code 2).
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// options are the command-line knobs.
type options struct {
	specPath string
	outPath  string
	watch    bool
	verbose  bool
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "chaingen --spec <chain.{json,yaml,toml,hcl}> --out <file.gen.go>",
		Short: "Generate self-typed builder chains for immutable value hierarchies",
		Example: strings.TrimSpace(`
  chaingen --spec ./chain.yaml --out ./chain.gen.go
  chaingen -s ./chain.hcl -o ./chain.gen.go --watch`),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(opts.specPath) == "" || strings.TrimSpace(opts.outPath) == "" {
				return usageError{errors.New("both --spec and --out are required")}
			}

			level := zerolog.InfoLevel
			if opts.verbose {
				level = zerolog.DebugLevel
			}

			g := newGenerator(opts.specPath, opts.outPath, log.NewZerologAdapter(stderr).Level(level))

			if err := g.generate(); err != nil {
				return err
			}
			if !opts.watch {
				return nil
			}
			return g.watch(cmd.Context(), defaultDebounce)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.specPath, "spec", "s", "", "path to the chain spec (.json, .yaml, .yml, .toml, .hcl)")
	flags.StringVarP(&opts.outPath, "out", "o", "", "output .gen.go file path")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "regenerate whenever the spec file changes")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	return cmd
}

// run executes the command and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	cmd := newRootCmd(stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		_, _ = fmt.Fprintln(stderr, "chaingen:", err)

		var ue usageError
		if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
			_, _ = fmt.Fprintln(stderr, cmd.UsageString())
			return 2
		}
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}
