package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bfgraph/core/kmer"
	"bfgraph/core/oracle"
)

func setOf(k int, seqs ...string) *oracle.Set {
	s := oracle.NewSet(k)
	for _, q := range seqs {
		s.AddSequence([]byte(q))
	}
	return s
}

func randomSeq(r *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = "ACGT"[r.Intn(4)]
	}
	return string(b)
}

// With an oracle holding exactly one linear sequence, walking from any
// k-mer in both directions rebuilds the whole sequence.
func TestExtendMaximality(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	const k = 15
	seq := randomSeq(r, 120)
	o := setOf(k, seq)
	n := len(seq) - k + 1
	require.Equal(t, n, o.Len(), "test sequence must not repeat a k-mer")

	for p := 0; p < n; p++ {
		seed := kmer.MustParse(seq[p : p+k])
		fw := Extend(o, seed, true)
		bw := Extend(o, seed.Twin(), true)
		assert.Equal(t, n-p, fw.Dist)
		assert.Equal(t, p+1, bw.Dist)
		assert.Equal(t, StopDeadEnd, fw.Stop)
		assert.Equal(t, seq[p:], string(fw.Seq))

		got, err := Stitch(fw, bw, k)
		require.NoError(t, err)
		require.Equal(t, seq, string(got), "seed at %d", p)
	}

	fw := Extend(o, kmer.MustParse(seq[:k]), false)
	assert.Equal(t, n, fw.Dist)
	assert.Nil(t, fw.Seq)
	assert.Equal(t, seq[len(seq)-k:], fw.End.String())
}

func TestExtendStopsAtBranch(t *testing.T) {
	// ACAG continues as CAGT and CAGC
	o := setOf(4, "GATTACAGT", "TACAGC")
	w := Extend(o, kmer.MustParse("GATT"), true)
	assert.Equal(t, StopBranch, w.Stop)
	assert.Equal(t, 2, w.FwCount)
	assert.Equal(t, "ACAG", w.End.String())
	assert.Equal(t, 5, w.Dist)
	assert.Equal(t, "GATTACAG", string(w.Seq))
}

func TestExtendStopsBeforeMerge(t *testing.T) {
	// TACA is reached from TTAC and CTAC
	o := setOf(4, "GATTACAG", "CCTACAG")
	w := Extend(o, kmer.MustParse("GATT"), true)
	assert.Equal(t, StopMerge, w.Stop)
	assert.Equal(t, 1, w.FwCount)
	assert.Equal(t, 2, w.BwCount)
	assert.Equal(t, "TTAC", w.End.String())
	assert.Equal(t, "GATTAC", string(w.Seq))
}

func TestExtendDeadEnd(t *testing.T) {
	w := Extend(setOf(5, "ACGTT"), kmer.MustParse("ACGTT"), true)
	assert.Equal(t, StopDeadEnd, w.Stop)
	assert.Equal(t, 0, w.FwCount)
	assert.Equal(t, 1, w.Dist)
	assert.Equal(t, "ACGTT", string(w.Seq))
}

func TestExtendCycle(t *testing.T) {
	const k = 4
	circ := "ACGGTCA"
	o := setOf(k, circ+circ[:k-1])
	require.Equal(t, len(circ), o.Len())

	w := Extend(o, kmer.MustParse("ACGG"), true)
	assert.Equal(t, StopCycle, w.Stop)
	assert.Equal(t, len(circ), w.Dist)
	assert.Equal(t, "ACGGTCAACG", string(w.Seq))
}

func TestExtendSelfLoop(t *testing.T) {
	w := Extend(setOf(3, "AAA"), kmer.MustParse("AAA"), true)
	assert.Equal(t, StopCycle, w.Stop)
	assert.Equal(t, 1, w.Dist)
}

func TestExtendHairpin(t *testing.T) {
	// AACCGGTT is its own reverse complement; CCGG is a palindrome.
	o := setOf(4, "AACCGGTT")
	w := Extend(o, kmer.MustParse("AACC"), true)
	assert.Equal(t, StopHairpin, w.Stop)
	assert.Equal(t, 3, w.Dist)
	assert.Equal(t, "AACCGG", string(w.Seq))

	// ACG followed by its own twin
	w = Extend(setOf(3, "AACGT"), kmer.MustParse("AAC"), true)
	assert.Equal(t, StopHairpin, w.Stop)
	assert.Equal(t, "AACG", string(w.Seq))
}

func TestStitchNoBackwardExtension(t *testing.T) {
	fw := Walk{Dist: 3, Seq: []byte("ACGTA")}
	bw := Walk{Dist: 1, Seq: []byte("CGT")}
	got, err := Stitch(fw, bw, 3)
	require.NoError(t, err)
	assert.Equal(t, "ACGTA", string(got))
}

func TestStitchRejectsShortWalks(t *testing.T) {
	_, err := Stitch(Walk{Dist: 1, Seq: []byte("ACG")}, Walk{Dist: 2, Seq: []byte("AC")}, 3)
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestStopString(t *testing.T) {
	assert.Equal(t, "branch", StopBranch.String())
	assert.Equal(t, "hairpin", StopHairpin.String())
	assert.Equal(t, "Stop(9)", Stop(9).String())
}
