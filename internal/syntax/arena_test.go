package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/tsgroundwork/internal/atom"
	"github.com/oxhq/tsgroundwork/internal/syntax"
)

func newArena() *syntax.Arena {
	return syntax.NewArena(atom.New())
}

func TestNewArenaReservesSentinelNode(t *testing.T) {
	a := newArena()
	assert.Equal(t, int32(1), a.Len())
	assert.Equal(t, syntax.KindInvalid, a.Header(syntax.NoNode).Kind)
}

func TestAddNodeAssignsSequentialIDs(t *testing.T) {
	a := newArena()
	n1 := a.AddNode(syntax.Header{Kind: syntax.KindIdentifier, Pos: 0, End: 1})
	n2 := a.AddNode(syntax.Header{Kind: syntax.KindNumericLiteral, Pos: 1, End: 2})
	assert.NotEqual(t, n1, n2)
	assert.Equal(t, syntax.KindIdentifier, a.Header(n1).Kind)
	assert.Equal(t, syntax.KindNumericLiteral, a.Header(n2).Kind)
}

func TestSetHeaderOverwritesInPlace(t *testing.T) {
	a := newArena()
	n := a.AddNode(syntax.Header{Kind: syntax.KindIdentifier, Pos: 0, End: 1})
	h := a.Header(n)
	h.Flags |= syntax.FlagHasError
	a.SetHeader(n, h)
	assert.True(t, a.Header(n).Flags&syntax.FlagHasError != 0)
}

func TestAddNodeListRoundTrips(t *testing.T) {
	a := newArena()
	n1 := a.AddNode(syntax.Header{Kind: syntax.KindIdentifier})
	n2 := a.AddNode(syntax.Header{Kind: syntax.KindIdentifier})
	n3 := a.AddNode(syntax.Header{Kind: syntax.KindIdentifier})
	list := a.AddNodeList([]syntax.NodeID{n1, n2, n3})
	assert.Equal(t, []syntax.NodeID{n1, n2, n3}, a.Nodes(list))
}

func TestAddNodeListEmptySliceProducesEmptyRange(t *testing.T) {
	a := newArena()
	list := a.AddNodeList(nil)
	assert.Empty(t, a.Nodes(list))
}

func TestArenaSaveRestoreRollsBackHeadersAndIndices(t *testing.T) {
	a := newArena()
	a.AddNode(syntax.Header{Kind: syntax.KindIdentifier})
	snap := a.Save()

	n2 := a.AddNode(syntax.Header{Kind: syntax.KindNumericLiteral})
	a.AddNodeList([]syntax.NodeID{n2})
	require.Greater(t, a.Len(), snap.Headers)

	a.Restore(snap)
	assert.Equal(t, snap.Headers, a.Len())
}

func TestPoolAddGetSet(t *testing.T) {
	var p syntax.Pool[syntax.IdentData]
	i0 := p.Add(syntax.IdentData{Name: atom.NoAtom})
	assert.Equal(t, int32(0), i0)
	assert.Equal(t, int32(1), p.Len())

	p.Set(i0, syntax.IdentData{Name: atom.Atom(7)})
	assert.Equal(t, atom.Atom(7), p.Get(i0).Name)
}

func TestPoolTruncateDropsTrailingEntries(t *testing.T) {
	var p syntax.Pool[syntax.IdentData]
	p.Add(syntax.IdentData{Name: atom.Atom(1)})
	p.Add(syntax.IdentData{Name: atom.Atom(2)})
	p.Add(syntax.IdentData{Name: atom.Atom(3)})
	p.Truncate(1)
	assert.Equal(t, int32(1), p.Len())
	assert.Equal(t, atom.Atom(1), p.Get(0).Name)
}

func TestArenaSavePoolsRestorePoolsRollsBackSidePools(t *testing.T) {
	a := newArena()
	a.Ident.Add(syntax.IdentData{Name: atom.Atom(1)})
	snap := a.SavePools()

	idx := a.Ident.Add(syntax.IdentData{Name: atom.Atom(2)})
	a.AddNode(syntax.Header{Kind: syntax.KindIdentifier, DataIndex: idx})
	require.Equal(t, int32(2), a.Ident.Len())

	a.RestorePools(snap)
	assert.Equal(t, int32(1), a.Ident.Len())
	assert.Equal(t, int32(1), a.Len(), "RestorePools also truncates headers/indices back to the snapshot")
}
