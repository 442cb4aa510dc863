package output

import (
	"encoding/json"
	"io"

	"bfgraph/core/contigs"
	"bfgraph/internal/jsonlutil"
)

// WriteJSONL streams one api.ContigV1 per line. isBroken lets the caller
// treat a closed downstream pipe as success.
func WriteJSONL(w io.Writer, r *Result, isBroken func(error) bool) error {
	k := r.Mapper.K()
	in, done := jsonlutil.Start[*contigs.Contig](w, 256,
		func(enc *json.Encoder, c *contigs.Contig) error {
			return enc.Encode(ToAPIContig(c, k))
		},
		isBroken,
	)
	r.Mapper.Each(func(c *contigs.Contig) bool {
		in <- c
		return true
	})
	close(in)
	return <-done
}
