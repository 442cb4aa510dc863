// core/engine/extend.go
package engine

import (
	"fmt"

	"bfgraph/core/kmer"
	"bfgraph/core/oracle"
)

// Stop says why a walk ended.
type Stop uint8

const (
	StopDeadEnd Stop = iota // no forward extension passes the oracle
	StopBranch              // two or more forward extensions pass
	StopMerge               // the unique extension has several predecessors
	StopCycle               // the walk came back to its seed
	StopHairpin             // the walk turned onto its own reverse strand
)

var stopNames = [...]string{"dead-end", "branch", "merge", "cycle", "hairpin"}

func (s Stop) String() string {
	if int(s) < len(stopNames) {
		return stopNames[s]
	}
	return fmt.Sprintf("Stop(%d)", s)
}

// Walk is the result of one directional extension.
type Walk struct {
	End  kmer.Kmer // last accepted k-mer
	Dist int       // k-mers visited, seed included
	Seq  []byte    // seed bases followed by one base per step; nil unless requested
	Stop Stop

	// Oracle hits around End when the walk stopped. BwCount is only
	// meaningful when FwCount == 1.
	FwCount int
	BwCount int
}

// Extend walks forward from seed while the path is unambiguous: End has
// exactly one successor in the oracle and that successor has exactly one
// predecessor. The walk never revisits a canonical k-mer: returning to the
// seed stops with StopCycle, and stepping onto the reverse complement of the
// seed, End, or End's predecessor stops with StopHairpin.
func Extend(o oracle.Oracle, seed kmer.Kmer, withSeq bool) Walk {
	w := Walk{End: seed, Dist: 1}
	if withSeq {
		w.Seq = seed.AppendTo(make([]byte, 0, 2*seed.K()))
	}
	k := seed.K()
	seedTwin := seed.Twin()
	var prev kmer.Kmer
	hasPrev := false

	for {
		fw, n := successor(o, w.End)
		w.FwCount, w.BwCount = n, 0
		if n == 0 {
			w.Stop = StopDeadEnd
			return w
		}
		if n > 1 {
			w.Stop = StopBranch
			return w
		}
		w.BwCount = predecessors(o, fw)
		if w.BwCount != 1 {
			w.Stop = StopMerge
			return w
		}
		if fw == seed {
			w.Stop = StopCycle
			return w
		}
		if fw == seedTwin || fw == w.End.Twin() || (hasPrev && fw == prev.Twin()) {
			w.Stop = StopHairpin
			return w
		}
		prev, hasPrev = w.End, true
		w.End = fw
		w.Dist++
		if withSeq {
			w.Seq = append(w.Seq, fw.Base(k-1).Char())
		}
	}
}

// successor returns the number of forward extensions of km in o and, when
// there is exactly one, that extension.
func successor(o oracle.Oracle, km kmer.Kmer) (kmer.Kmer, int) {
	var next kmer.Kmer
	n := 0
	for _, b := range kmer.Bases {
		c := km.ForwardBase(b)
		if o.Contains(c.Rep()) {
			next = c
			n++
		}
	}
	return next, n
}

func predecessors(o oracle.Oracle, km kmer.Kmer) int {
	n := 0
	for _, b := range kmer.Bases {
		if o.Contains(km.BackwardBase(b).Rep()) {
			n++
		}
	}
	return n
}

// Stitch joins a forward walk and a backward walk (from the seed's twin)
// into one contig sequence. Both walks must carry sequence.
func Stitch(fw, bw Walk, k int) ([]byte, error) {
	if bw.Dist <= 1 {
		return fw.Seq, nil
	}
	if len(bw.Seq) < k || len(fw.Seq) < k {
		return nil, fmt.Errorf("%w: stitch lengths fw=%d bw=%d k=%d",
			ErrInvariant, len(fw.Seq), len(bw.Seq), k)
	}
	// the backward walk starts with the seed's twin; only its extension
	// bases are prepended
	out := kmer.ReverseComplement(bw.Seq[k:])
	return append(out, fw.Seq...), nil
}
