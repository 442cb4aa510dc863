// core/engine/assembler.go
package engine

import (
	"errors"
	"fmt"

	"bfgraph/core/contigs"
	"bfgraph/core/kmer"
	"bfgraph/core/oracle"
)

// ErrInvariant marks an internal-consistency fault. A run that hits one
// must stop; the store is no longer trustworthy.
var ErrInvariant = errors.New("assembly invariant violated")

// InvalidPolicy decides what happens to reads containing characters
// outside {A,C,G,T}.
type InvalidPolicy uint8

const (
	// InvalidSkipWindow treats each window overlapping a bad character as
	// an oracle miss and keeps the rest of the read.
	InvalidSkipWindow InvalidPolicy = iota
	// InvalidSkipRead drops the whole read.
	InvalidSkipRead
)

func (p InvalidPolicy) String() string {
	switch p {
	case InvalidSkipWindow:
		return "skip-window"
	case InvalidSkipRead:
		return "skip-read"
	}
	return fmt.Sprintf("InvalidPolicy(%d)", p)
}

// ParseInvalidPolicy accepts the names printed by String.
func ParseInvalidPolicy(s string) (InvalidPolicy, error) {
	switch s {
	case "", "skip-window":
		return InvalidSkipWindow, nil
	case "skip-read":
		return InvalidSkipRead, nil
	}
	return 0, fmt.Errorf("unknown invalid-base policy %q (want skip-window or skip-read)", s)
}

// Config holds assembly parameters.
type Config struct {
	K         int
	OnInvalid InvalidPolicy
}

// Stats are running counters over all reads seen by an Assembler.
type Stats struct {
	Reads           int `json:"reads"`
	ShortReads      int `json:"short_reads"`   // shorter than k, skipped
	SkippedReads    int `json:"skipped_reads"` // dropped by InvalidSkipRead
	Windows         int `json:"windows"`       // windows examined by the cursor
	OracleMisses    int `json:"oracle_misses"` // includes invalid windows
	IndexHits       int `json:"index_hits"`
	ContigsCreated  int `json:"contigs_created"`
	DuplicateProbes int `json:"duplicate_probes"` // forward probes ending on an indexed k-mer
}

// Assembler drives greedy extension over a stream of reads. It owns the
// mapper for the duration of the run and is not safe for concurrent use.
type Assembler struct {
	cfg     Config
	o       oracle.Oracle
	m       *contigs.Mapper
	stats   Stats
	windows []kmer.Window
}

// NewAssembler checks that cfg and m agree on k.
func NewAssembler(cfg Config, o oracle.Oracle, m *contigs.Mapper) (*Assembler, error) {
	if err := kmer.ValidK(cfg.K); err != nil {
		return nil, err
	}
	if o == nil || m == nil {
		return nil, errors.New("assembler needs an oracle and a mapper")
	}
	if m.K() != cfg.K {
		return nil, fmt.Errorf("mapper k=%d does not match k=%d", m.K(), cfg.K)
	}
	return &Assembler{cfg: cfg, o: o, m: m}, nil
}

func (a *Assembler) Stats() Stats            { return a.stats }
func (a *Assembler) Mapper() *contigs.Mapper { return a.m }
func (a *Assembler) Oracle() oracle.Oracle   { return a.o }
func (a *Assembler) Config() Config          { return a.cfg }

// AddRead scans one read left to right. Windows already covered by a
// contig are skipped by jump-ahead; trusted windows that are not yet
// indexed seed a new contig. Only an invariant fault is returned as an
// error; bad or short reads are counted and skipped.
func (a *Assembler) AddRead(name string, seq []byte) error {
	k := a.cfg.K
	a.stats.Reads++
	if len(seq) < k {
		a.stats.ShortReads++
		return nil
	}
	a.windows = kmer.AppendWindows(a.windows[:0], seq, k)
	if a.cfg.OnInvalid == InvalidSkipRead {
		for _, w := range a.windows {
			if !w.Valid {
				a.stats.SkippedReads++
				return nil
			}
		}
	}

	for i := 0; i < len(a.windows); {
		w := a.windows[i]
		a.stats.Windows++
		if !w.Valid || !a.o.Contains(w.Rep) {
			a.stats.OracleMisses++
			i++
			continue
		}
		if ref, ok := a.m.Find(w.Kmer); ok {
			a.stats.IndexHits++
			i += a.m.JumpAhead(ref)
			continue
		}

		fw := Extend(a.o, w.Kmer, true)
		if a.m.Claimed(fw.End) {
			a.stats.DuplicateProbes++
			i += fw.Dist
			continue
		}
		if err := a.buildContig(w.Kmer, fw); err != nil {
			return fmt.Errorf("read %s at window %d: %w", name, i, err)
		}
		i += fw.Dist
	}
	return nil
}

// buildContig completes the forward walk fw from seed with a backward walk,
// stitches both and stores the result.
func (a *Assembler) buildContig(seed kmer.Kmer, fw Walk) error {
	k := a.cfg.K
	seq := fw.Seq
	if !seed.IsPalindrome() && fw.Stop != StopCycle {
		bw := Extend(a.o, seed.Twin(), true)
		if a.m.Claimed(bw.End) {
			return fmt.Errorf("%w: backward walk from %s ends on indexed k-mer %s",
				ErrInvariant, seed, bw.End)
		}
		var err error
		if seq, err = Stitch(fw, bw, k); err != nil {
			return err
		}
	}
	if _, err := a.m.AddContig(seq); err != nil {
		if errors.Is(err, contigs.ErrKmerClaimed) {
			return fmt.Errorf("%w: %w", ErrInvariant, err)
		}
		return err
	}
	a.stats.ContigsCreated++
	return nil
}
