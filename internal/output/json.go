// internal/output/json.go
package output

import (
	"bfgraph/core/contigs"
	"bfgraph/core/engine"
	"bfgraph/internal/graph"
	"bfgraph/pkg/api"
)

// Result is everything a renderer may need after a run.
type Result struct {
	Run    api.RunV1
	Mapper *contigs.Mapper
	Graph  *graph.Graph // nil unless links were computed
}

// ToAPIContig converts a stored contig to the stable wire schema (v1).
func ToAPIContig(c *contigs.Contig, k int) api.ContigV1 {
	return api.ContigV1{
		ID:     uint32(c.ID),
		Length: c.Len(),
		Kmers:  c.Len() - k + 1,
		Seq:    string(c.Seq),
	}
}

func ToAPIStats(s engine.Stats) api.StatsV1 {
	return api.StatsV1{
		Reads:           s.Reads,
		ShortReads:      s.ShortReads,
		SkippedReads:    s.SkippedReads,
		Windows:         s.Windows,
		OracleMisses:    s.OracleMisses,
		IndexHits:       s.IndexHits,
		ContigsCreated:  s.ContigsCreated,
		DuplicateProbes: s.DuplicateProbes,
	}
}

func ToAPILinks(g *graph.Graph) []api.LinkV1 {
	if g == nil {
		return nil
	}
	out := make([]api.LinkV1, 0, len(g.Links))
	for _, l := range g.Links {
		out = append(out, api.LinkV1{
			From:       uint32(l.From.Contig),
			FromStrand: l.From.Strand.String(),
			To:         uint32(l.To.Contig),
			ToStrand:   l.To.Strand.String(),
		})
	}
	return out
}

// ToAPISnapshot builds the single-document form of r.
func ToAPISnapshot(r *Result) api.SnapshotV1 {
	k := r.Mapper.K()
	snap := api.SnapshotV1{
		Run:     r.Run,
		Contigs: make([]api.ContigV1, 0, r.Mapper.Len()),
		Links:   ToAPILinks(r.Graph),
	}
	r.Mapper.Each(func(c *contigs.Contig) bool {
		snap.Contigs = append(snap.Contigs, ToAPIContig(c, k))
		return true
	})
	return snap
}
