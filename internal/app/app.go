// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"bfgraph/internal/cli"
	"bfgraph/internal/cmdutil"
	"bfgraph/internal/version"
	"bfgraph/internal/writers"
)

// RunContext dispatches argv[0] to a subcommand and returns the exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	code := dispatch(parent, argv, outw, stderr)
	if e := outw.Flush(); e != nil && !writers.IsBrokenPipe(e) {
		_, _ = fmt.Fprintln(stderr, e)
		if code == cmdutil.ExitOK {
			code = cmdutil.ExitRuntime
		}
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func dispatch(ctx context.Context, argv []string, outw io.Writer, stderr io.Writer) int {
	if len(argv) == 0 {
		cli.TopUsage(outw)
		return cmdutil.ExitOK
	}
	switch argv[0] {
	case "-h", "--help", "help":
		cli.TopUsage(outw)
		return cmdutil.ExitOK
	case "version", "-v", "--version":
		_, _ = fmt.Fprintln(outw, version.Info())
		return cmdutil.ExitOK
	case "contigs":
		fs := cli.NewFlagSet("contigs")
		opts, err := cli.ParseContigs(fs, argv[1:])
		if code, done := parseOutcome(err, fs, cli.ContigsSynopsis, outw, stderr); done {
			return code
		}
		return finish(runContigs(ctx, opts, outw, stderr), stderr)
	case "filter":
		fs := cli.NewFlagSet("filter")
		opts, err := cli.ParseFilter(fs, argv[1:])
		if code, done := parseOutcome(err, fs, cli.FilterSynopsis, outw, stderr); done {
			return code
		}
		return finish(runFilter(ctx, opts, stderr), stderr)
	}
	_, _ = fmt.Fprintf(stderr, "error: unknown command %q\n", argv[0])
	cli.TopUsage(stderr)
	return cmdutil.ExitConfig
}

func parseOutcome(err error, fs *pflag.FlagSet, synopsis string, outw, stderr io.Writer) (int, bool) {
	switch {
	case err == nil:
		return 0, false
	case errors.Is(err, pflag.ErrHelp):
		cli.Usage(outw, fs, synopsis)
		return cmdutil.ExitOK, true
	}
	_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
	_, _ = fmt.Fprintf(stderr, "usage: %s\n", synopsis)
	return cmdutil.ExitConfig, true
}

func finish(err error, stderr io.Writer) int {
	code := cmdutil.ExitCode(err)
	if code != cmdutil.ExitOK && code != cmdutil.ExitInterrupt {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return code
}

// checkInputs reports unreadable read sources before any work starts.
func checkInputs(paths []string) error {
	for _, p := range paths {
		if p == "-" {
			continue
		}
		st, err := os.Stat(p)
		if err != nil {
			return cmdutil.AsConfig(fmt.Errorf("read input: %w", err))
		}
		if st.IsDir() {
			return cmdutil.Configf("read input %s is a directory", p)
		}
	}
	return nil
}

// createOutput opens path for writing; "" and "-" mean stdout.
func createOutput(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	bw := bufio.NewWriterSize(fh, 1<<16)
	return bw, func() error {
		if err := bw.Flush(); err != nil {
			fh.Close()
			return err
		}
		return fh.Close()
	}, nil
}
