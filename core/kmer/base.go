package kmer

// Base is a 2-bit nucleotide code. The numeric order A<C<G<T matches
// the character order, which keeps packed comparison lexicographic.
type Base uint8

const (
	A Base = iota
	C
	G
	T
)

// Bases lists every base in ascending order.
var Bases = [4]Base{A, C, G, T}

var charOf = [4]byte{'A', 'C', 'G', 'T'}

var baseOf = func() (m [256]int8) {
	for i := range m {
		m[i] = -1
	}
	m['A'], m['C'], m['G'], m['T'] = 0, 1, 2, 3
	return m
}()

// ParseBase maps an upper-case nucleotide to its code.
func ParseBase(c byte) (Base, bool) {
	b := baseOf[c]
	if b < 0 {
		return 0, false
	}
	return Base(b), true
}

func (b Base) Char() byte { return charOf[b&3] }

// Complement maps A<->T and C<->G.
func (b Base) Complement() Base { return 3 - b&3 }

func (b Base) String() string { return string(b.Char()) }

// ReverseComplement returns the reverse complement of an ACGT sequence.
// Characters outside the alphabet become 'N'.
func ReverseComplement(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, c := range seq {
		j := len(seq) - 1 - i
		if b, ok := ParseBase(c); ok {
			out[j] = b.Complement().Char()
		} else {
			out[j] = 'N'
		}
	}
	return out
}
