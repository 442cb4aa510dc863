// Package oracle answers "is this canonical k-mer trusted?".
//
// An Oracle never returns a false negative for a k-mer that was added to
// it. The Bloom implementation may return false positives at a rate fixed
// when the filter was built; Set is exact and exists for small inputs and
// tests. Both are read-only once assembly starts and may be shared by
// concurrent readers.
package oracle

import (
	"bfgraph/core/kmer"
)

// Oracle is the membership test consulted by the extension engine.
// Callers pass canonical k-mers (kmer.Kmer.Rep).
type Oracle interface {
	Contains(km kmer.Kmer) bool
}

// Set is an exact Oracle backed by a map.
type Set struct {
	k int
	m map[kmer.Kmer]struct{}
}

func NewSet(k int) *Set {
	return &Set{k: k, m: make(map[kmer.Kmer]struct{})}
}

// Add stores the canonical form of km.
func (s *Set) Add(km kmer.Kmer) { s.m[km.Rep()] = struct{}{} }

// AddSequence stores every valid window of seq and returns how many
// windows were added (including repeats).
func (s *Set) AddSequence(seq []byte) int {
	n := 0
	for _, w := range kmer.AppendWindows(nil, seq, s.k) {
		if w.Valid {
			s.m[w.Rep] = struct{}{}
			n++
		}
	}
	return n
}

func (s *Set) Contains(km kmer.Kmer) bool {
	_, ok := s.m[km]
	return ok
}

func (s *Set) K() int   { return s.k }
func (s *Set) Len() int { return len(s.m) }
