package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"bfgraph/core/contigs"
	"bfgraph/core/engine"
	"bfgraph/core/oracle"
	"bfgraph/internal/cli"
	"bfgraph/internal/cmdutil"
	"bfgraph/internal/graph"
	"bfgraph/internal/jsonutil"
	"bfgraph/internal/output"
	"bfgraph/internal/pipeline"
	"bfgraph/internal/version"
	"bfgraph/internal/writers"
	"bfgraph/pkg/api"
)

const progressEvery = 1_000_000

func runContigs(ctx context.Context, opts cli.ContigsOptions, stdout, stderr io.Writer) error {
	log := cmdutil.NewLogger(stderr, opts.Verbose).With("command", "contigs")

	if err := checkInputs(opts.Reads); err != nil {
		return err
	}
	bf, digest, err := oracle.LoadFile(opts.Filter)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cmdutil.AsConfig(err)
		}
		return err
	}
	if err := bf.CheckK(opts.K); err != nil {
		return cmdutil.AsConfig(err)
	}
	log.Debug("filter loaded", "path", opts.Filter, "blake3", digest.String(),
		"bits", bf.Bits(), "hashes", bf.Hashes(), "kmers", bf.Count(), "fp_rate", bf.FalsePositiveRate())

	m, err := contigs.NewMapper(opts.K)
	if err != nil {
		return cmdutil.AsConfig(err)
	}
	asm, err := engine.NewAssembler(engine.Config{K: opts.K, OnInvalid: opts.Policy()}, bf, m)
	if err != nil {
		return cmdutil.AsConfig(err)
	}

	w, closeOut, err := createOutput(opts.Output, stdout)
	if err != nil {
		return cmdutil.AsConfig(fmt.Errorf("contig output: %w", err))
	}

	sum, err := pipeline.Run(ctx, pipeline.Config{
		Inputs:        opts.Reads,
		ProgressEvery: progressEvery,
		Logger:        log,
	}, asm)
	if err != nil {
		_ = closeOut()
		return err
	}

	st := asm.Stats()
	log.Info("assembled",
		"files", sum.Files, "reads", st.Reads, "bases", sum.Bases,
		"contigs", m.Len(), "kmers", m.Kmers(), "contig_bases", m.TotalBases(),
		"oracle_misses", st.OracleMisses, "index_hits", st.IndexHits,
		"duplicate_probes", st.DuplicateProbes)
	if st.Windows > 0 && st.OracleMisses == st.Windows {
		cmdutil.Warnf(stderr, false, "none of the %d read k-mers is in the filter; was %s built from these reads?", st.Windows, opts.Filter)
	}
	if st.Reads > 0 && st.ShortReads == st.Reads {
		cmdutil.Warnf(stderr, false, "every read is shorter than k=%d", opts.K)
	}

	r := &output.Result{
		Run: api.RunV1{
			Version:      version.Version,
			K:            opts.K,
			Filter:       opts.Filter,
			FilterDigest: digest.String(),
			FPRate:       bf.FalsePositiveRate(),
			Inputs:       opts.Reads,
			Kmers:        m.Kmers(),
			Bases:        m.TotalBases(),
			Stats:        output.ToAPIStats(st),
		},
		Mapper: m,
	}
	if opts.Graph != "" {
		r.Graph = graph.Build(bf, m)
		log.Debug("graph built", "links", len(r.Graph.Links), "unindexed", r.Graph.Unindexed, "interior", r.Graph.Interior)
	}

	if err := writers.WriteContigs(opts.Format, w, r); err != nil {
		_ = closeOut()
		return fmt.Errorf("writing contigs: %w", err)
	}
	if err := closeOut(); err != nil {
		return fmt.Errorf("writing contigs: %w", err)
	}

	if r.Graph != nil {
		gw, closeGraph, err := createOutput(opts.Graph, stdout)
		if err != nil {
			return fmt.Errorf("graph output: %w", err)
		}
		if err := writers.WriteGraph(gw, r); err != nil {
			_ = closeGraph()
			return fmt.Errorf("writing graph: %w", err)
		}
		if err := closeGraph(); err != nil {
			return fmt.Errorf("writing graph: %w", err)
		}
	}

	if opts.Stats != "" {
		sw, closeStats, err := createOutput(opts.Stats, stdout)
		if err != nil {
			return fmt.Errorf("stats output: %w", err)
		}
		if err := jsonutil.EncodePretty(sw, r.Run); err != nil {
			_ = closeStats()
			return fmt.Errorf("writing stats: %w", err)
		}
		if err := closeStats(); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
	}
	return nil
}
