package output

import (
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"bfgraph/core/contigs"
)

// FASTAWidth is the line width for wrapped sequence output.
const FASTAWidth = 80

// ContigName is the FASTA ID of a contig.
func ContigName(id contigs.ID) string { return fmt.Sprintf("contig_%d", id) }

// WriteFASTA writes one record per contig in ID order:
//
//	>contig_<id> len=<L> kmers=<L-k+1>
func WriteFASTA(w io.Writer, r *Result) error {
	fw := fasta.NewWriter(w, FASTAWidth)
	k := r.Mapper.K()
	var err error
	r.Mapper.Each(func(c *contigs.Contig) bool {
		s := linear.NewSeq(ContigName(c.ID), alphabet.BytesToLetters(c.Seq), alphabet.DNA)
		s.Annotation.SetDescription(fmt.Sprintf("len=%d kmers=%d", c.Len(), c.Len()-k+1))
		_, err = fw.Write(s)
		return err == nil
	})
	return err
}
