// Package bpe provides reversible byte-pair encoding of byte slices.
//
// # Overview
//
// The encoder counts every adjacent byte pair in its input, then repurposes
// byte values that never occur in the input as single-byte codes for the most
// frequent pairs. Code tables are not stored separately: the first use of a
// pair carries its definition inline, so a compressed slice is
// self-describing and the decoder needs nothing but the slice itself.
//
// # Wire Format
//
// A compressed slice is a sequence of tokens:
//
//	LITERAL      1 byte, any value except 255, copied verbatim
//	DECLARATION  255, slot, first, second; decodes to first, second and
//	             binds slot to that pair for the rest of the slice
//	REFERENCE    1 byte equal to a bound slot; decodes to its pair
//
// Byte 255 is the declaration sentinel. Input containing it is rejected by
// the encoder with ErrInvalidInput; there is no escape mechanism.
//
// # Encoding Policy
//
//   - Only pairs occurring more than 3 times are considered.
//   - Pairs are ranked by descending count, ties by ascending First*256+Second.
//   - Free byte values are handed out in ascending order.
//   - Pairs are substituted greedily, left to right, without overlap.
//   - An assignment the greedy parse would emit fewer than 3 times is
//     retracted, so the output is never longer than the input.
//
// # When to Use
//
// BPE suits short, repetitive text with a small alphabet, where unused byte
// values are plentiful: identifiers, logs, protocol chatter. It is a single
// pass of substitution with no entropy coding, so ratios are modest (typically
// 0.6x-0.9x) and binary data with a full alphabet will not compress at all.
//
// # Basic Usage
//
//	compressed, err := bpe.Encode(nil, []byte("abababab"))
//	// compressed == []byte{255, 0, 'a', 'b', 0, 0, 0}
//
//	original, err := bpe.Decode(nil, compressed)
//
//	// Or encode into a caller-owned buffer at least as long as the input
//	dst := make([]byte, len(src))
//	out, err := bpe.Encode(dst, src)
//
// # Concurrency
//
// Encode, Decode and the helpers keep all working state per call and are safe
// for concurrent use. Encoder scratch tables (~400KB) are pooled.
package bpe
