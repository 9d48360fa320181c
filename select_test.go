package bpe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func countPair(c *counters, idx uint16, n int) {
	for range n {
		c.incPair(idx)
	}
}

func TestSelectPairsOrder(t *testing.T) {
	var c counters
	countPair(&c, 0x0102, 5)
	countPair(&c, 0x0101, 5)
	countPair(&c, 0x0203, 7)
	countPair(&c, 0x0304, 3) // at threshold, never selected
	countPair(&c, 0x0405, 4)

	got := selectPairs(&c, 10)
	require.Equal(t, []qpair{
		{idx: 0x0203, count: 7},
		{idx: 0x0101, count: 5},
		{idx: 0x0102, count: 5},
		{idx: 0x0405, count: 4},
	}, got)
}

func TestSelectPairsBounded(t *testing.T) {
	var c counters
	countPair(&c, 0x0102, 5)
	countPair(&c, 0x0101, 5)
	countPair(&c, 0x0203, 7)
	countPair(&c, 0x0405, 4)

	// Ties at the cut are resolved by pair index, not insertion order
	got := selectPairs(&c, 2)
	require.Equal(t, []qpair{
		{idx: 0x0203, count: 7},
		{idx: 0x0101, count: 5},
	}, got)

	require.Nil(t, selectPairs(&c, 0))
}

func TestSelectPairsManyTies(t *testing.T) {
	var c counters
	// Insert in descending index order so the heap has to reorder everything
	for idx := 599; idx >= 0; idx-- {
		countPair(&c, uint16(idx), 4)
	}

	got := selectPairs(&c, bpeMaxSlots)
	require.Len(t, got, bpeMaxSlots)
	for i, q := range got {
		require.Equal(t, uint16(i), q.idx)
	}
}
