package bpe

import "fmt"

// Core constants for the BPE wire format
const (
	// Sentinel introduces a declaration: [Sentinel, slot, first, second].
	// It never appears in uncompressed data.
	Sentinel = 255

	bpeMaxSlots     = 255     // Slot values 0-254; 255 is the sentinel
	bpePairTabSize  = 1 << 16 // One entry per ordered pair first*256+second
	bpeMinPairCount = 3       // A pair must occur more than this to earn a slot

	// Declaration layout: sentinel, slot, first byte, second byte
	bpeDeclLen    = 4
	bpeDeclPayLen = bpeDeclLen - 1

	// A pair emitted fewer times than this would cost more output bytes than it saves:
	// n uses cost bpeDeclLen+(n-1) bytes against 2n input bytes.
	bpeMinPairUses = bpeDeclLen - 1
)

// Pair is an ordered pair of adjacent byte values.
type Pair struct {
	First  byte
	Second byte
}

func pairFromIndex(idx uint16) Pair { return Pair{First: byte(idx >> 8), Second: byte(idx)} }

// Index returns the pair's position in a pair-indexed table: First*256+Second.
func (p Pair) Index() uint16 { return uint16(p.First)<<8 | uint16(p.Second) }

func (p Pair) String() string { return fmt.Sprintf("%q", []byte{p.First, p.Second}) }

// MaxEncodedLen returns the maximum length of an encoding of n source bytes.
// The codec never expands its input.
func MaxEncodedLen(n int) int { return n }

// MaxDecodedLen returns the maximum length of a decoding of n compressed bytes.
// Every reference byte expands to two bytes.
func MaxDecodedLen(n int) int { return 2 * n }
