package bpe

// table holds the pair assignments for a single encode call.
type table struct {
	// Lookup structures
	codes [bpePairTabSize]uint16 // pair index -> slot+1, 0 when unassigned
	pairs [bpeMaxSlots]Pair      // slot -> pair

	// Per-slot metadata, valid for slots listed in order
	counts   [bpeMaxSlots]uint32 // frequency that earned the slot
	uses     [bpeMaxSlots]uint32 // emissions counted by the last parse
	declared [bpeMaxSlots]bool   // emission state: declaration already written

	order []byte // assigned slots in selection order
}

// addPair assigns slot to the selected pair.
func (t *table) addPair(q qpair, slot byte) {
	t.codes[q.idx] = uint16(slot) + 1
	t.pairs[slot] = pairFromIndex(q.idx)
	t.counts[slot] = q.count
	t.order = append(t.order, slot)
}

// clearPairs removes all assignments and restores the pair index to its empty state.
// Only entries set by addPair are touched.
func (t *table) clearPairs() {
	for _, slot := range t.order {
		t.codes[t.pairs[slot].Index()] = 0
	}
	t.order = t.order[:0]
}

// lookup returns the slot assigned to the pair starting at src[i], if any.
func (t *table) lookup(src []byte, i int) (byte, bool) {
	if i+1 >= len(src) {
		return 0, false
	}
	code := t.codes[uint16(src[i])<<8|uint16(src[i+1])]
	return byte(code - 1), code != 0
}

// parse walks src the way emit does, recording uses per slot, and returns
// the encoded length.
func (t *table) parse(src []byte) int {
	for _, slot := range t.order {
		t.uses[slot] = 0
	}
	n := 0
	for i := 0; i < len(src); {
		if slot, ok := t.lookup(src, i); ok {
			if t.uses[slot] == 0 {
				n += bpeDeclLen
			} else {
				n++
			}
			t.uses[slot]++
			i += 2
			continue
		}
		n++
		i++
	}
	return n
}

// settle retracts assignments that the greedy parse would emit only once or
// twice, since those expand the output, and repeats until every remaining
// assignment is either unused or pays for its declaration. Returns the
// encoded length under the settled table.
func (t *table) settle(src []byte) int {
	for {
		n := t.parse(src)
		retracted := false
		kept := t.order[:0]
		for _, slot := range t.order {
			if u := t.uses[slot]; u > 0 && u < bpeMinPairUses {
				t.codes[t.pairs[slot].Index()] = 0
				retracted = true
				continue
			}
			kept = append(kept, slot)
		}
		t.order = kept
		if !retracted {
			return n
		}
	}
}

// emit writes the encoding of src into dst and returns the number of bytes written.
// dst must hold at least the length returned by settle.
func (t *table) emit(dst, src []byte) int {
	for _, slot := range t.order {
		t.declared[slot] = false
	}
	n := 0
	for i := 0; i < len(src); {
		if slot, ok := t.lookup(src, i); ok {
			if !t.declared[slot] {
				dst[n] = Sentinel
				dst[n+1] = slot
				dst[n+2] = src[i]
				dst[n+3] = src[i+1]
				n += bpeDeclLen
				t.declared[slot] = true
			} else {
				dst[n] = slot
				n++
			}
			i += 2
			continue
		}
		dst[n] = src[i]
		n++
		i++
	}
	return n
}
