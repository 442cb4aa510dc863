package app

import (
	"context"
	"fmt"
	"io"

	"bfgraph/core/oracle"
	"bfgraph/internal/cli"
	"bfgraph/internal/cmdutil"
	"bfgraph/internal/pipeline"
)

func runFilter(ctx context.Context, opts cli.FilterOptions, stderr io.Writer) error {
	log := cmdutil.NewLogger(stderr, opts.Verbose).With("command", "filter")

	if err := checkInputs(opts.Reads); err != nil {
		return err
	}
	b, err := oracle.NewBuilder(opts.K, opts.ExpectedKmers, opts.FPRate, opts.MinCount)
	if err != nil {
		return cmdutil.AsConfig(err)
	}

	windows := 0
	sum, err := pipeline.Run(ctx, pipeline.Config{
		Inputs:        opts.Reads,
		ProgressEvery: progressEvery,
		Logger:        log,
	}, pipeline.SinkFunc(func(_ string, seq []byte) error {
		windows += b.AddSequence(seq)
		return nil
	}))
	if err != nil {
		return err
	}

	f := b.Filter()
	if f.Count() > opts.ExpectedKmers {
		cmdutil.Warnf(stderr, false, "%d distinct k-mers exceed --expected-kmers %d; false-positive rate is %.3g, target was %g",
			f.Count(), opts.ExpectedKmers, f.FalsePositiveRate(), opts.FPRate)
	}
	if err := oracle.WriteFile(opts.Output, f); err != nil {
		return fmt.Errorf("writing filter: %w", err)
	}
	log.Info("filter written", "path", opts.Output,
		"files", sum.Files, "reads", sum.Reads, "windows", windows,
		"kmers", f.Count(), "bits", f.Bits(), "hashes", f.Hashes(),
		"fp_rate", f.FalsePositiveRate())
	return nil
}
