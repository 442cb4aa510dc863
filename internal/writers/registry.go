// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"bfgraph/internal/output"
)

// ContigWriters maps a --format name to its renderer. Register in init()
// blocks; last registration wins.
var ContigWriters = map[string]func(w io.Writer, r *output.Result) error{}

func RegisterContigs(format string, fn func(io.Writer, *output.Result) error) {
	ContigWriters[format] = fn
}

func init() {
	RegisterContigs(output.FormatFASTA, output.WriteFASTA)
	RegisterContigs(output.FormatCBOR, output.WriteCBOR)
	RegisterContigs(output.FormatJSONL, func(w io.Writer, r *output.Result) error {
		return output.WriteJSONL(w, r, IsBrokenPipe)
	})
}

// Formats lists the registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(ContigWriters))
	for f := range ContigWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Known reports whether format has a registered writer.
func Known(format string) bool {
	_, ok := ContigWriters[format]
	return ok
}

// WriteContigs dispatches to the writer registered for format. A broken
// pipe on w is not an error.
func WriteContigs(format string, w io.Writer, r *output.Result) error {
	fn, ok := ContigWriters[format]
	if !ok {
		return fmt.Errorf("unknown contig format %q (no writer registered)", format)
	}
	if err := fn(w, r); err != nil && !IsBrokenPipe(err) {
		return err
	}
	return nil
}

// WriteGraph renders the contig graph as DOT.
func WriteGraph(w io.Writer, r *output.Result) error {
	if r.Graph == nil {
		return fmt.Errorf("no contig graph computed")
	}
	if err := output.WriteDOT(w, r.Mapper, r.Graph); err != nil && !IsBrokenPipe(err) {
		return err
	}
	return nil
}
