// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"io"
	"log/slog"

	"bfgraph/core/reads"
)

// Sink consumes reads in order. engine.Assembler satisfies it.
type Sink interface {
	AddRead(name string, seq []byte) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(name string, seq []byte) error

func (f SinkFunc) AddRead(name string, seq []byte) error { return f(name, seq) }

// Config controls the read pipeline.
type Config struct {
	Inputs        []string // read sources in order; "-" is stdin
	Buffer        int      // records in flight between parser and sink (>=1)
	ProgressEvery int      // log progress every N reads; 0 disables
	Logger        *slog.Logger
}

// Summary counts what was read. Files is set only on success.
type Summary struct {
	Files int
	Reads int
	Bases int64
}

type item struct {
	rec  reads.Record
	file string
}

// Run feeds every record of every input to sink. It returns the first
// error encountered, parse or sink, or ctx.Err() if ctx was canceled.
func Run(ctx context.Context, cfg Config, sink Sink) (Summary, error) {
	if cfg.Buffer < 1 {
		cfg.Buffer = 256
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	items := make(chan item, cfg.Buffer)
	perr := make(chan error, 1)

	// Parser
	go func() {
		defer close(items)
		for _, path := range cfg.Inputs {
			log.Debug("reading", "input", path)
			err := reads.Stream(ctx, path, func(r reads.Record) error {
				select {
				case items <- item{rec: r, file: path}:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			})
			if err != nil {
				perr <- err
				return
			}
		}
		perr <- nil
	}()

	// Sink, in order
	var (
		sum  Summary
		serr error
	)
	for it := range items {
		if serr != nil {
			continue
		}
		sum.Reads++
		sum.Bases += int64(len(it.rec.Seq))
		if err := sink.AddRead(it.rec.ID, it.rec.Seq); err != nil {
			serr = err
			cancel()
			continue
		}
		if cfg.ProgressEvery > 0 && sum.Reads%cfg.ProgressEvery == 0 {
			log.Info("progress", "reads", sum.Reads, "bases", sum.Bases, "input", it.file)
		}
	}
	err := <-perr

	if serr != nil {
		return sum, serr
	}
	if err != nil {
		return sum, err
	}
	sum.Files = len(cfg.Inputs)
	return sum, nil
}
