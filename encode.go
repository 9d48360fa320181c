package bpe

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"unsafe"
)

// encoder is the working state of one encode call.
type encoder struct {
	c counters
	t table
}

var encoderPool = sync.Pool{
	New: func() any { return new(encoder) },
}

// acquireEncoder returns a clean encoder. Callers must release it.
func acquireEncoder() *encoder {
	return encoderPool.Get().(*encoder)
}

func (e *encoder) release() {
	e.c.reset()
	e.t.clearPairs()
	encoderPool.Put(e)
}

// plan gathers statistics for src, assigns free slots to the best pairs and
// settles the table. Returns the encoded length.
func (e *encoder) plan(src []byte) int {
	e.c.count(src)
	slots := e.c.freeSlots()
	for i, q := range selectPairs(&e.c, len(slots)) {
		e.t.addPair(q, slots[i])
	}
	return e.t.settle(src)
}

func checkInput(src []byte) error {
	if i := bytes.IndexByte(src, Sentinel); i >= 0 {
		return fmt.Errorf("%w: at offset %d", ErrInvalidInput, i)
	}
	return nil
}

// Encode compresses src into dst and returns dst truncated to the written length.
// A nil dst is allocated; otherwise len(dst) must be at least len(src).
// Nothing is written to dst when an error is returned.
func Encode(dst, src []byte) ([]byte, error) {
	if err := checkInput(src); err != nil {
		return nil, err
	}
	if dst == nil {
		dst = make([]byte, MaxEncodedLen(len(src)))
	} else if len(dst) < MaxEncodedLen(len(src)) {
		return nil, fmt.Errorf("%w: (%d) < (%d)", ErrBufferTooSmall, len(dst), len(src))
	}

	e := acquireEncoder()
	defer e.release()

	e.plan(src)
	n := e.t.emit(dst, src)
	return dst[:n], nil
}

// EncodeString compresses s and returns a newly allocated byte slice.
func EncodeString(s string) ([]byte, error) {
	return Encode(nil, unsafe.Slice(unsafe.StringData(s), len(s)))
}

// Assignment describes one pair substituted by the encoder.
type Assignment struct {
	Pair  Pair
	Slot  byte
	Count int // adjacent occurrences in the input, overlapping
	Uses  int // times the pair is emitted, 0 if always pre-empted by another pair
}

// Plan describes how Encode would compress a given input.
type Plan struct {
	InputLen   int
	EncodedLen int
	UsedBytes  int // distinct byte values in the input
	FreeSlots  int // byte values available as substitution codes

	// Assignments in selection order: descending count, then ascending pair index.
	Assignments []Assignment
}

// Analyze returns the plan Encode would follow for src without encoding it.
func Analyze(src []byte) (*Plan, error) {
	if err := checkInput(src); err != nil {
		return nil, err
	}

	e := acquireEncoder()
	defer e.release()

	n := e.plan(src)
	p := &Plan{
		InputLen:   len(src),
		EncodedLen: n,
		UsedBytes:  e.c.nUsed,
		FreeSlots:  bpeMaxSlots - e.c.nUsed,
	}
	p.Assignments = make([]Assignment, 0, len(e.t.order))
	for _, slot := range e.t.order {
		p.Assignments = append(p.Assignments, Assignment{
			Pair:  e.t.pairs[slot],
			Slot:  slot,
			Count: int(e.t.counts[slot]),
			Uses:  int(e.t.uses[slot]),
		})
	}
	return p, nil
}

// Ratio returns EncodedLen/InputLen, or 1 for empty input.
func (p *Plan) Ratio() float64 {
	if p.InputLen == 0 {
		return 1
	}
	return float64(p.EncodedLen) / float64(p.InputLen)
}

func (p *Plan) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "input=%d encoded=%d ratio=%.3f used=%d free=%d pairs=%d\n",
		p.InputLen, p.EncodedLen, p.Ratio(), p.UsedBytes, p.FreeSlots, len(p.Assignments))
	for _, a := range p.Assignments {
		fmt.Fprintf(&sb, "  slot %3d <- %-8s count=%d uses=%d\n", a.Slot, a.Pair, a.Count, a.Uses)
	}
	return sb.String()
}
