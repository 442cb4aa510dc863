package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bfgraph/core/contigs"
	"bfgraph/core/engine"
	"bfgraph/core/oracle"
)

func assemble(t *testing.T, k int, oracleSeqs, reads []string) (*oracle.Set, *contigs.Mapper) {
	t.Helper()
	o := oracle.NewSet(k)
	for _, s := range oracleSeqs {
		o.AddSequence([]byte(s))
	}
	m, err := contigs.NewMapper(k)
	require.NoError(t, err)
	a, err := engine.NewAssembler(engine.Config{K: k}, o, m)
	require.NoError(t, err)
	for _, r := range reads {
		require.NoError(t, a.AddRead("r", []byte(r)))
	}
	return o, m
}

func fwd(id contigs.ID) Side { return Side{id, contigs.Forward} }
func rev(id contigs.ID) Side { return Side{id, contigs.Reverse} }

func TestBuildBranch(t *testing.T) {
	seqs := []string{"GATTACAGT", "TACAGC"}
	o, m := assemble(t, 4, seqs, seqs)
	require.Equal(t, 3, m.Len()) // GATTACAG, CAGT, CAGC

	g := Build(o, m)
	assert.Equal(t, []Link{
		{From: fwd(0), To: fwd(1)},
		{From: fwd(0), To: fwd(2)},
	}, g.Links)
	assert.Zero(t, g.Unindexed)
	assert.Zero(t, g.Interior)
}

func TestBuildMergeUsesCanonicalLinkOrientation(t *testing.T) {
	seqs := []string{"GATTACAG", "CCTACAG"}
	o, m := assemble(t, 4, seqs, seqs)
	require.Equal(t, 3, m.Len()) // GATTAC, TACAG, CCTAC

	g := Build(o, m)
	assert.Equal(t, []Link{
		{From: fwd(0), To: fwd(1)},
		{From: rev(1), To: rev(2)},
	}, g.Links)
}

func TestBuildSelfLoopAndHairpin(t *testing.T) {
	o, m := assemble(t, 3, []string{"AAACGT"}, []string{"AAACGT"})
	g := Build(o, m)
	assert.Equal(t, []Link{
		{From: fwd(0), To: fwd(0)}, // AAA -> AAA
		{From: fwd(0), To: fwd(1)}, // AAA -> AAC
		{From: fwd(1), To: rev(1)}, // ACG -> CGT
	}, g.Links)
}

func TestBuildCountsUnindexedSuccessors(t *testing.T) {
	o, m := assemble(t, 4, []string{"GATTACAGT", "TACAGC"}, []string{"GATTACAGT"})
	g := Build(o, m)
	assert.Equal(t, []Link{{From: fwd(0), To: fwd(1)}}, g.Links)
	assert.Equal(t, 1, g.Unindexed)
}
