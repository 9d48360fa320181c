package bpe

// counters tracks byte usage and adjacent-pair frequencies for one input.
//
// Memory layout:
//   - used: one flag per byte value, plus the number of distinct values seen
//   - pairs: one 32-bit count per ordered pair, indexed by first*256+second
//   - pairList: sparse list of pairs with non-zero counts for fast iteration
//     and cheap reset
//
// Total size: ~256KB. Instances are pooled; reset only clears touched entries.
type counters struct {
	used     [256]bool
	nUsed    int
	pairs    [bpePairTabSize]uint32
	pairList []uint16
}

// incUsed marks a byte value as present in the input.
func (c *counters) incUsed(b byte) {
	if !c.used[b] {
		c.used[b] = true
		c.nUsed++
	}
}

// incPair increments the frequency count for the pair at idx.
func (c *counters) incPair(idx uint16) {
	if c.pairs[idx] == 0 {
		c.pairList = append(c.pairList, idx)
	}
	c.pairs[idx]++
}

// count runs the statistics pass over src. src must not contain the sentinel.
func (c *counters) count(src []byte) {
	if len(src) == 0 {
		return
	}
	c.incUsed(src[0])
	for i := 1; i < len(src); i++ {
		c.incUsed(src[i])
		c.incPair(uint16(src[i-1])<<8 | uint16(src[i]))
	}
}

// freeSlots returns the byte values 0-254 absent from the input, in ascending order.
func (c *counters) freeSlots() []byte {
	slots := make([]byte, 0, bpeMaxSlots-c.nUsed)
	for v := 0; v < bpeMaxSlots; v++ {
		if !c.used[v] {
			slots = append(slots, byte(v))
		}
	}
	return slots
}

// reset zeroes every touched entry so the counters can be reused.
func (c *counters) reset() {
	for _, idx := range c.pairList {
		c.pairs[idx] = 0
	}
	c.pairList = c.pairList[:0]
	c.used = [256]bool{}
	c.nUsed = 0
}
