package bpe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestTable(src []byte) (*table, int) {
	e := new(encoder)
	n := e.plan(src)
	return &e.t, n
}

func TestTableAddLookup(t *testing.T) {
	var tbl table
	tbl.addPair(qpair{idx: Pair{'a', 'b'}.Index(), count: 9}, 3)

	slot, ok := tbl.lookup([]byte("xab"), 1)
	require.True(t, ok)
	require.Equal(t, byte(3), slot)

	_, ok = tbl.lookup([]byte("xab"), 0)
	require.False(t, ok)
	// No pair starts at the last byte
	_, ok = tbl.lookup([]byte("xab"), 2)
	require.False(t, ok)

	tbl.clearPairs()
	_, ok = tbl.lookup([]byte("ab"), 0)
	require.False(t, ok)
	require.Empty(t, tbl.order)
}

func TestTableParseMatchesEmit(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"abababab",
		"ababababcdcdcdcd",
		"the cat sat on the mat with the hat that the rat ate",
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaab",
	}
	for _, in := range inputs {
		src := []byte(in)
		tbl, n := newTestTable(src)
		dst := make([]byte, len(src))
		require.Equal(t, n, tbl.emit(dst, src), "input %q", in)
	}
}

func TestTableSettleRetractsExpandingPairs(t *testing.T) {
	// "aa" occurs 4 times overlapping, but the greedy parse emits it twice:
	// declaration + reference would be 5 bytes for 4 input bytes.
	src := []byte("aaaaa")
	tbl, n := newTestTable(src)
	require.Empty(t, tbl.order)
	require.Equal(t, len(src), n)

	_, ok := tbl.lookup(src, 0)
	require.False(t, ok)
}

func TestTableSettleKeepsBreakEvenPairs(t *testing.T) {
	// Three uses cost exactly the six bytes they replace
	src := []byte("aaaaaa")
	tbl, n := newTestTable(src)
	require.Equal(t, []byte{0}, tbl.order)
	require.Equal(t, uint32(3), tbl.uses[0])
	require.Equal(t, len(src), n)
}

func TestTableUnusedPairsKeepSlot(t *testing.T) {
	// "bc" qualifies but "ab" always claims the 'b' first
	src := []byte("abcabcabcabc")
	tbl, n := newTestTable(src)

	require.Len(t, tbl.order, 2) // ab, bc in index order; ca occurs only 3 times
	require.Equal(t, Pair{'a', 'b'}, tbl.pairs[tbl.order[0]])
	require.Equal(t, uint32(4), tbl.uses[tbl.order[0]])
	require.Equal(t, Pair{'b', 'c'}, tbl.pairs[tbl.order[1]])
	require.Zero(t, tbl.uses[tbl.order[1]])
	// 'ab' decl + 3 refs + 4 literal 'c'
	require.Equal(t, 4+3+4, n)
}
