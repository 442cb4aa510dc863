package kmer

// Window is the k-mer starting at one offset of a sequence. Valid is
// false when the window overlaps a character outside {A,C,G,T}; Kmer and
// Rep are meaningless in that case.
type Window struct {
	Kmer  Kmer
	Rep   Kmer
	Valid bool
}

// AppendWindows appends the len(seq)-k+1 windows of seq to dst. Both
// strands are rolled forward in O(1) per base, so the canonical form of
// every window costs no Twin call. Sequences shorter than k yield nothing.
func AppendWindows(dst []Window, seq []byte, k int) []Window {
	if k < 1 || k >= MaxK || len(seq) < k {
		return dst
	}
	fw, rc := zero(k), zero(k)
	run := 0
	for j, c := range seq {
		b, ok := ParseBase(c)
		if !ok {
			run = 0
		} else {
			fw = fw.ForwardBase(b)
			rc = rc.BackwardBase(b.Complement())
			run++
		}
		if j < k-1 {
			continue
		}
		if run < k {
			dst = append(dst, Window{})
			continue
		}
		rep := fw
		if rc.Less(fw) {
			rep = rc
		}
		dst = append(dst, Window{Kmer: fw, Rep: rep, Valid: true})
	}
	return dst
}
