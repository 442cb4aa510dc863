package contigs

import (
	"errors"
	"fmt"

	"bfgraph/core/kmer"
)

var (
	ErrShortContig = errors.New("contig shorter than k")
	ErrKmerClaimed = errors.New("k-mer already belongs to a contig")
)

// Strand says which way a k-mer reads along its contig.
type Strand uint8

const (
	Forward Strand = iota
	Reverse
)

func (s Strand) String() string {
	if s == Reverse {
		return "-"
	}
	return "+"
}

// Flip returns the opposite strand.
func (s Strand) Flip() Strand { return s ^ 1 }

// Entry is the index value stored for a canonical k-mer: the contig that
// contains it, the offset of its window in the contig, and the strand on
// which the canonical form appears there.
type Entry struct {
	Contig ID
	Pos    int32
	Strand Strand
}

// Ref locates a queried k-mer: the contig, the window offset, and the
// strand on which the queried k-mer (not its canonical form) appears.
type Ref struct {
	Contig ID
	Pos    int
	Strand Strand
}

// Mapper owns the contig store and the canonical k-mer index over it.
type Mapper struct {
	k     int
	store Store
	index map[kmer.Kmer]Entry
}

func NewMapper(k int) (*Mapper, error) {
	if err := kmer.ValidK(k); err != nil {
		return nil, err
	}
	return &Mapper{k: k, index: make(map[kmer.Kmer]Entry)}, nil
}

func (m *Mapper) K() int { return m.k }

// Find maps km (either orientation) to its contig occurrence.
func (m *Mapper) Find(km kmer.Kmer) (Ref, bool) {
	rep := km.Rep()
	e, ok := m.index[rep]
	if !ok {
		return Ref{}, false
	}
	s := e.Strand
	if km != rep {
		s = s.Flip()
	}
	return Ref{Contig: e.Contig, Pos: int(e.Pos), Strand: s}, true
}

// Claimed reports whether km's canonical form is indexed.
func (m *Mapper) Claimed(km kmer.Kmer) bool {
	_, ok := m.index[km.Rep()]
	return ok
}

// AddContig stores seq under the next ID and indexes every window of it.
// The store and index are left untouched on error. A window whose
// canonical k-mer is already indexed, by another contig or earlier in seq,
// fails with ErrKmerClaimed.
func (m *Mapper) AddContig(seq []byte) (ID, error) {
	if len(seq) < m.k {
		return 0, fmt.Errorf("%w: length %d, k=%d", ErrShortContig, len(seq), m.k)
	}
	windows := kmer.AppendWindows(nil, seq, m.k)
	next := ID(m.store.Len())
	seen := make(map[kmer.Kmer]int, len(windows))
	for i, w := range windows {
		if !w.Valid {
			c, p := firstInvalid(seq[i : i+m.k])
			return 0, &kmer.InvalidBaseError{Char: c, Pos: i + p}
		}
		if e, ok := m.index[w.Rep]; ok {
			return 0, fmt.Errorf("%w: %s at offset %d is held by contig %d offset %d",
				ErrKmerClaimed, w.Kmer, i, e.Contig, e.Pos)
		}
		if j, ok := seen[w.Rep]; ok {
			return 0, fmt.Errorf("%w: %s occurs at offsets %d and %d of contig %d",
				ErrKmerClaimed, w.Kmer, j, i, next)
		}
		seen[w.Rep] = i
	}

	id := m.store.add(append([]byte(nil), seq...))
	for i, w := range windows {
		s := Forward
		if w.Kmer != w.Rep {
			s = Reverse
		}
		m.index[w.Rep] = Entry{Contig: id, Pos: int32(i), Strand: s}
	}
	return id, nil
}

func firstInvalid(b []byte) (byte, int) {
	for i, c := range b {
		if _, ok := kmer.ParseBase(c); !ok {
			return c, i
		}
	}
	return 0, 0
}

// Contig returns the contig with the given id, or nil.
func (m *Mapper) Contig(id ID) *Contig { return m.store.Get(id) }

// ContigOf returns the contig a Ref points into.
func (m *Mapper) ContigOf(r Ref) *Contig { return m.store.Get(r.Contig) }

// JumpAhead is the number of read windows covered by the contig starting
// at the window that produced r: a forward hit runs to the contig's end,
// a reverse hit runs back to its start.
func (m *Mapper) JumpAhead(r Ref) int {
	if r.Strand == Reverse {
		return r.Pos + 1
	}
	c := m.store.Get(r.Contig)
	return c.Len() - r.Pos - m.k + 1
}

// Len is the number of stored contigs.
func (m *Mapper) Len() int { return m.store.Len() }

// Kmers is the number of indexed canonical k-mers.
func (m *Mapper) Kmers() int { return len(m.index) }

// TotalBases is the summed length of all contigs.
func (m *Mapper) TotalBases() int { return m.store.Bases() }

// Each visits contigs in ID order until fn returns false.
func (m *Mapper) Each(fn func(*Contig) bool) { m.store.Each(fn) }

// Kmer returns the window of c at pos.
func (m *Mapper) Kmer(c *Contig, pos int) kmer.Kmer {
	km, err := kmer.New(c.Seq[pos : pos+m.k])
	if err != nil {
		// stored contigs are validated on insert
		panic(err)
	}
	return km
}
