package kmer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendWindows(t *testing.T) {
	seq := []byte("AAACGT")
	ws := AppendWindows(nil, seq, 3)
	require.Len(t, ws, 4)
	for i, w := range ws {
		require.True(t, w.Valid)
		assert.Equal(t, string(seq[i:i+3]), w.Kmer.String())
		assert.Equal(t, w.Kmer.Rep(), w.Rep)
	}
}

func TestAppendWindowsShortSequence(t *testing.T) {
	assert.Empty(t, AppendWindows(nil, []byte("AC"), 3))
	assert.Empty(t, AppendWindows(nil, []byte("ACGT"), 0))
}

// A non-ACGT character invalidates exactly the k windows that cover it.
func TestAppendWindowsInvalidBase(t *testing.T) {
	seq := []byte("ACGTNACGTA")
	k := 3
	ws := AppendWindows(nil, seq, k)
	require.Len(t, ws, len(seq)-k+1)
	for i, w := range ws {
		covers := i <= 4 && 4 < i+k
		assert.Equal(t, !covers, w.Valid, "window %d", i)
		if w.Valid {
			assert.Equal(t, string(seq[i:i+k]), w.Kmer.String())
		}
	}
}

func TestAppendWindowsRandom(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	for _, k := range []int{1, 17, 31, 32, 33, 63} {
		s := randomDNA(r, 200)
		ws := AppendWindows(nil, []byte(s), k)
		require.Len(t, ws, 200-k+1)
		for i, w := range ws {
			km := MustParse(s[i : i+k])
			require.Equal(t, km, w.Kmer)
			require.Equal(t, km.Rep(), w.Rep)
		}
	}
}
