package output

import (
	"fmt"
	"io"

	"github.com/awalterschulze/gographviz"

	"bfgraph/core/contigs"
	"bfgraph/internal/graph"
)

const dotGraphName = "contigs"

func dotNode(id contigs.ID) string { return fmt.Sprintf("c%d", id) }

// WriteDOT renders contigs as nodes and links as directed edges. Edge tail
// and head labels carry the strand of each side.
func WriteDOT(w io.Writer, m *contigs.Mapper, g *graph.Graph) error {
	dg := gographviz.NewGraph()
	if err := dg.SetName(dotGraphName); err != nil {
		return err
	}
	if err := dg.SetDir(true); err != nil {
		return err
	}
	k := m.K()
	var err error
	m.Each(func(c *contigs.Contig) bool {
		err = dg.AddNode(dotGraphName, dotNode(c.ID), map[string]string{
			"label": fmt.Sprintf(`"%s\nlen=%d kmers=%d"`, ContigName(c.ID), c.Len(), c.Len()-k+1),
			"shape": "box",
		})
		return err == nil
	})
	if err != nil {
		return err
	}
	for _, l := range g.Links {
		err := dg.AddEdge(dotNode(l.From.Contig), dotNode(l.To.Contig), true, map[string]string{
			"taillabel": fmt.Sprintf(`"%s"`, l.From.Strand),
			"headlabel": fmt.Sprintf(`"%s"`, l.To.Strand),
		})
		if err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, dg.String())
	return err
}
