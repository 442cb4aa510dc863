package contigs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bfgraph/core/kmer"
)

func newMapper(t *testing.T, k int) *Mapper {
	t.Helper()
	m, err := NewMapper(k)
	require.NoError(t, err)
	return m
}

func TestAddContigIndexesEveryWindow(t *testing.T) {
	m := newMapper(t, 3)
	seq := "AACTGGTC"
	id, err := m.AddContig([]byte(seq))
	require.NoError(t, err)
	assert.Equal(t, ID(0), id)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, len(seq)-3+1, m.Kmers())
	assert.Equal(t, len(seq), m.TotalBases())

	for i := 0; i+3 <= len(seq); i++ {
		km := kmer.MustParse(seq[i : i+3])
		ref, ok := m.Find(km)
		require.True(t, ok, km.String())
		assert.Equal(t, Ref{Contig: id, Pos: i, Strand: Forward}, ref)

		ref, ok = m.Find(km.Twin())
		require.True(t, ok)
		assert.Equal(t, Ref{Contig: id, Pos: i, Strand: Reverse}, ref)
	}
	_, ok := m.Find(kmer.MustParse("GGG"))
	assert.False(t, ok)
}

func TestAddContigCopiesInput(t *testing.T) {
	m := newMapper(t, 3)
	seq := []byte("ACGGA")
	id, err := m.AddContig(seq)
	require.NoError(t, err)
	seq[0] = 'T'
	assert.Equal(t, "ACGGA", string(m.Contig(id).Seq))
}

func TestAddContigRejectsShortAndInvalid(t *testing.T) {
	m := newMapper(t, 4)
	_, err := m.AddContig([]byte("ACG"))
	assert.ErrorIs(t, err, ErrShortContig)

	_, err = m.AddContig([]byte("ACGNTT"))
	assert.ErrorIs(t, err, kmer.ErrInvalidBase)
	var ibe *kmer.InvalidBaseError
	require.ErrorAs(t, err, &ibe)
	assert.Equal(t, 3, ibe.Pos)

	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.Kmers())
}

func TestAddContigClaimedLeavesStateUntouched(t *testing.T) {
	m := newMapper(t, 3)
	_, err := m.AddContig([]byte("AACTG"))
	require.NoError(t, err)

	// GTT is the twin of AAC.
	_, err = m.AddContig([]byte("CCGTT"))
	require.ErrorIs(t, err, ErrKmerClaimed)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 3, m.Kmers())
	_, ok := m.Find(kmer.MustParse("CCG"))
	assert.False(t, ok)

	// repeated k-mer inside one contig
	_, err = m.AddContig([]byte("GAGAG"))
	assert.ErrorIs(t, err, ErrKmerClaimed)
	assert.Equal(t, 1, m.Len())
}

func TestJumpAhead(t *testing.T) {
	const k = 3
	m := newMapper(t, k)
	contig := "AACTGGCTTA"
	id, err := m.AddContig([]byte(contig))
	require.NoError(t, err)
	L := len(contig)

	for pos := 0; pos+k <= L; pos++ {
		km := kmer.MustParse(contig[pos : pos+k])
		ref, ok := m.Find(km)
		require.True(t, ok)
		assert.Equal(t, id, ref.Contig)
		assert.Equal(t, L-pos-k+1, m.JumpAhead(ref), "forward at %d", pos)

		ref, ok = m.Find(km.Twin())
		require.True(t, ok)
		assert.Equal(t, pos+1, m.JumpAhead(ref), "reverse at %d", pos)
	}
}

// A read that traverses a contig on the reverse strand covers exactly the
// number of windows JumpAhead reports.
func TestJumpAheadMatchesReverseTraversal(t *testing.T) {
	const k = 4
	m := newMapper(t, k)
	contig := []byte("ACCTGAGTTCA")
	_, err := m.AddContig(contig)
	require.NoError(t, err)

	read := kmer.ReverseComplement(contig)
	ws := kmer.AppendWindows(nil, read, k)
	ref, ok := m.Find(ws[0].Kmer)
	require.True(t, ok)
	assert.Equal(t, Reverse, ref.Strand)
	assert.Equal(t, len(ws), m.JumpAhead(ref))
}

func TestPalindromeIsForward(t *testing.T) {
	m := newMapper(t, 4)
	_, err := m.AddContig([]byte("ACGT"))
	require.NoError(t, err)
	ref, ok := m.Find(kmer.MustParse("ACGT"))
	require.True(t, ok)
	assert.Equal(t, Forward, ref.Strand)
	assert.Equal(t, 1, m.JumpAhead(ref))
}

func TestEachAndKmer(t *testing.T) {
	m := newMapper(t, 3)
	for _, s := range []string{"AAC", "CCGA", "GGTAT"} {
		_, err := m.AddContig([]byte(s))
		require.NoError(t, err)
	}
	var got []string
	m.Each(func(c *Contig) bool {
		got = append(got, string(c.Seq))
		return c.ID < 1
	})
	assert.Equal(t, []string{"AAC", "CCGA"}, got)

	c := m.Contig(2)
	require.NotNil(t, c)
	assert.Equal(t, "TAT", m.Kmer(c, 2).String())
	assert.Nil(t, m.Contig(3))
	assert.True(t, m.Claimed(kmer.MustParse("ATA")))
}

func TestStrandString(t *testing.T) {
	assert.Equal(t, "+", Forward.String())
	assert.Equal(t, "-", Reverse.String())
	assert.Equal(t, Reverse, Forward.Flip())
}
