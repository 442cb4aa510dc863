// Package contigs owns assembled sequences and the index that maps every
// canonical k-mer of a stored contig back to its contig, offset and strand.
//
// The Store is append-only and the sole owner of contig sequences; index
// entries refer to contigs by ID only.
package contigs

// ID identifies a contig; IDs are assigned densely from 0 in insertion order.
type ID uint32

// Contig is an immutable assembled sequence of at least k bases.
type Contig struct {
	ID  ID
	Seq []byte
}

// Len is the number of bases.
func (c *Contig) Len() int { return len(c.Seq) }

// Store is an append-only, ID-addressed list of contigs.
type Store struct {
	contigs []Contig
	bases   int
}

// add takes ownership of seq.
func (s *Store) add(seq []byte) ID {
	id := ID(len(s.contigs))
	s.contigs = append(s.contigs, Contig{ID: id, Seq: seq})
	s.bases += len(seq)
	return id
}

// Get returns the contig with the given id, or nil.
func (s *Store) Get(id ID) *Contig {
	if int(id) >= len(s.contigs) {
		return nil
	}
	return &s.contigs[id]
}

func (s *Store) Len() int { return len(s.contigs) }

// Bases is the total number of stored bases.
func (s *Store) Bases() int { return s.bases }

// Each calls fn for every contig in ID order until fn returns false.
func (s *Store) Each(fn func(*Contig) bool) {
	for i := range s.contigs {
		if !fn(&s.contigs[i]) {
			return
		}
	}
}
