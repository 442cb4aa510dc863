// Package graph derives the adjacency between finished contigs. Two contig
// ends are linked when the oracle holds a k-mer that steps from the last
// k-mer of one oriented contig onto the first k-mer of another.
package graph

import (
	"sort"

	"bfgraph/core/contigs"
	"bfgraph/core/kmer"
	"bfgraph/core/oracle"
)

// Side is one orientation of a contig. Reverse means the contig is read as
// its reverse complement.
type Side struct {
	Contig contigs.ID
	Strand contigs.Strand
}

func (s Side) flip() Side { return Side{s.Contig, s.Strand.Flip()} }

func (s Side) less(o Side) bool {
	if s.Contig != o.Contig {
		return s.Contig < o.Contig
	}
	return s.Strand < o.Strand
}

// Link says From is followed by To with a k-1 overlap. The same adjacency
// read on the other strand, To.flip() -> From.flip(), is not stored twice.
type Link struct {
	From, To Side
}

func (l Link) mirror() Link { return Link{From: l.To.flip(), To: l.From.flip()} }

func (l Link) less(o Link) bool {
	if l.From != o.From {
		return l.From.less(o.From)
	}
	return l.To.less(o.To)
}

// Graph is the link set plus counters for successors that did not land on
// a contig end.
type Graph struct {
	Links []Link

	// Unindexed counts trusted successors that belong to no contig, usually
	// k-mers never seen in a read or filter false positives.
	Unindexed int
	// Interior counts successors that hit a contig away from its first
	// k-mer on the relevant strand.
	Interior int
}

// Build scans both ends of every contig in m.
func Build(o oracle.Oracle, m *contigs.Mapper) *Graph {
	g := &Graph{}
	seen := make(map[Link]struct{})
	k := m.K()
	m.Each(func(c *contigs.Contig) bool {
		last := m.Kmer(c, c.Len()-k)
		first := m.Kmer(c, 0)
		g.scan(o, m, Side{c.ID, contigs.Forward}, last, seen)
		g.scan(o, m, Side{c.ID, contigs.Reverse}, first.Twin(), seen)
		return true
	})
	sort.Slice(g.Links, func(i, j int) bool { return g.Links[i].less(g.Links[j]) })
	return g
}

// scan follows every trusted successor of tail, the last k-mer of from.
func (g *Graph) scan(o oracle.Oracle, m *contigs.Mapper, from Side, tail kmer.Kmer, seen map[Link]struct{}) {
	for _, b := range kmer.Bases {
		next := tail.ForwardBase(b)
		if !o.Contains(next.Rep()) {
			continue
		}
		ref, ok := m.Find(next)
		if !ok {
			g.Unindexed++
			continue
		}
		// next must be the first k-mer of the target read on ref.Strand
		c := m.ContigOf(ref)
		head := 0
		if ref.Strand == contigs.Reverse {
			head = c.Len() - m.K()
		}
		if ref.Pos != head {
			g.Interior++
			continue
		}
		l := Link{From: from, To: Side{ref.Contig, ref.Strand}}
		if mr := l.mirror(); mr.less(l) {
			l = mr
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		g.Links = append(g.Links, l)
	}
}
