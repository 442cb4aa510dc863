// core/kmer/kmer.go
package kmer

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// MaxK is the exclusive upper bound on k-mer length.
const MaxK = 64

var (
	ErrInvalidBase = errors.New("invalid base")
	ErrInvalidK    = errors.New("invalid k-mer size")
)

// InvalidBaseError reports the first character outside {A,C,G,T}.
type InvalidBaseError struct {
	Char byte
	Pos  int
}

func (e *InvalidBaseError) Error() string {
	return fmt.Sprintf("invalid base %q at %d; allowed: A C G T", e.Char, e.Pos)
}

func (e *InvalidBaseError) Is(target error) bool { return target == ErrInvalidBase }

// ValidK checks 1 <= k < MaxK.
func ValidK(k int) error {
	if k < 1 || k >= MaxK {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidK, k, MaxK-1)
	}
	return nil
}

// Kmer is a packed DNA string of length k, 2 bits per base, left-aligned
// across hi:lo so that comparing (hi, lo, k) orders k-mers exactly like
// their decoded strings. Bits past the last base are always zero.
//
// Kmer is comparable and safe to use as a map key.
type Kmer struct {
	hi, lo uint64
	k      uint8
}

// zero returns the all-A k-mer of length k.
func zero(k int) Kmer { return Kmer{k: uint8(k)} }

// New packs seq into a Kmer of length len(seq).
func New(seq []byte) (Kmer, error) {
	if err := ValidK(len(seq)); err != nil {
		return Kmer{}, err
	}
	km := zero(len(seq))
	for i, c := range seq {
		b, ok := ParseBase(c)
		if !ok {
			return Kmer{}, &InvalidBaseError{Char: c, Pos: i}
		}
		km.set(i, b)
	}
	return km, nil
}

// Parse is New for strings.
func Parse(s string) (Kmer, error) { return New([]byte(s)) }

// MustParse panics on error. Intended for tests and constants.
func MustParse(s string) Kmer {
	km, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return km
}

// K returns the k-mer length.
func (km Kmer) K() int { return int(km.k) }

// Base returns the base at position i (0 = leftmost).
func (km Kmer) Base(i int) Base {
	if i < 32 {
		return Base(km.hi>>(62-2*uint(i))) & 3
	}
	return Base(km.lo>>(62-2*uint(i-32))) & 3
}

func (km *Kmer) set(i int, b Base) {
	if i < 32 {
		s := 62 - 2*uint(i)
		km.hi = km.hi&^(3<<s) | uint64(b)<<s
		return
	}
	s := 62 - 2*uint(i-32)
	km.lo = km.lo&^(3<<s) | uint64(b)<<s
}

// ForwardBase drops the first base and appends b.
func (km Kmer) ForwardBase(b Base) Kmer {
	km.hi = km.hi<<2 | km.lo>>62
	km.lo <<= 2
	km.set(int(km.k)-1, b)
	return km
}

// BackwardBase drops the last base and prepends b.
func (km Kmer) BackwardBase(b Base) Kmer {
	km.lo = km.lo>>2 | km.hi<<62
	km.hi >>= 2
	km.set(0, b)
	km.set(int(km.k), A)
	return km
}

// Twin returns the reverse complement.
func (km Kmer) Twin() Kmer {
	k := int(km.k)
	tw := zero(k)
	for i := 0; i < k; i++ {
		tw.set(k-1-i, km.Base(i).Complement())
	}
	return tw
}

// Rep returns the canonical form, min(km, km.Twin()).
func (km Kmer) Rep() Kmer {
	tw := km.Twin()
	if tw.Less(km) {
		return tw
	}
	return km
}

// IsCanonical reports km == km.Rep().
func (km Kmer) IsCanonical() bool { return !km.Twin().Less(km) }

// IsPalindrome reports km == km.Twin(); only possible for even k.
func (km Kmer) IsPalindrome() bool { return km == km.Twin() }

// Compare orders k-mers lexicographically by decoded string.
func (km Kmer) Compare(o Kmer) int {
	switch {
	case km.hi != o.hi:
		if km.hi < o.hi {
			return -1
		}
		return 1
	case km.lo != o.lo:
		if km.lo < o.lo {
			return -1
		}
		return 1
	case km.k != o.k:
		if km.k < o.k {
			return -1
		}
		return 1
	}
	return 0
}

func (km Kmer) Less(o Kmer) bool { return km.Compare(o) < 0 }

// AppendTo appends the decoded bases to dst.
func (km Kmer) AppendTo(dst []byte) []byte {
	for i := 0; i < int(km.k); i++ {
		dst = append(dst, km.Base(i).Char())
	}
	return dst
}

func (km Kmer) String() string {
	return string(km.AppendTo(make([]byte, 0, km.k)))
}

// PutBytes writes the packed bases big-endian into dst (at least 16 bytes)
// and returns the number of meaningful bytes, ceil(k/4).
func (km Kmer) PutBytes(dst []byte) int {
	binary.BigEndian.PutUint64(dst[0:8], km.hi)
	binary.BigEndian.PutUint64(dst[8:16], km.lo)
	return (int(km.k) + 3) / 4
}

// Bytes is the packed key used for hashing into probabilistic filters.
func (km Kmer) Bytes() []byte {
	var buf [16]byte
	n := km.PutBytes(buf[:])
	return append([]byte(nil), buf[:n]...)
}
