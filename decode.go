package bpe

import (
	"fmt"
	"unsafe"
)

// declaration reads the declaration starting at src[pos], which holds the sentinel.
func declaration(src []byte, pos int) (byte, Pair, error) {
	if remaining := len(src) - pos - 1; remaining < bpeDeclPayLen {
		return 0, Pair{}, fmt.Errorf("%w: at offset %d, need %d bytes, have %d",
			ErrTruncatedInput, pos, bpeDeclPayLen, remaining)
	}
	slot := src[pos+1]
	if slot == Sentinel {
		return 0, Pair{}, fmt.Errorf("%w: at offset %d", ErrInvalidSlot, pos)
	}
	return slot, Pair{First: src[pos+2], Second: src[pos+3]}, nil
}

// Decode decompresses src, optionally reusing dst for output.
// dst can be nil or undersized; it will be grown as needed.
// Returns the decompressed data (may have different backing array than dst).
func Decode(dst, src []byte) ([]byte, error) {
	if dst == nil {
		dst = make([]byte, 0, MaxDecodedLen(len(src)))
	} else {
		dst = dst[:0]
	}

	var (
		pairs [bpeMaxSlots]Pair
		known [bpeMaxSlots]bool
	)
	for srcPos := 0; srcPos < len(src); {
		code := src[srcPos]
		switch {
		case code == Sentinel:
			slot, p, err := declaration(src, srcPos)
			if err != nil {
				return nil, err
			}
			pairs[slot] = p
			known[slot] = true
			dst = append(dst, p.First, p.Second)
			srcPos += bpeDeclLen
		case known[code]:
			dst = append(dst, pairs[code].First, pairs[code].Second)
			srcPos++
		default:
			dst = append(dst, code)
			srcPos++
		}
	}
	return dst, nil
}

// DecodeString decompresses data held in a string and returns a newly allocated byte slice.
func DecodeString(s string) ([]byte, error) {
	return Decode(nil, unsafe.Slice(unsafe.StringData(s), len(s)))
}

// DecodedLen validates src and returns the exact length of its decoding.
func DecodedLen(src []byte) (int, error) {
	var known [bpeMaxSlots]bool
	n := 0
	for srcPos := 0; srcPos < len(src); {
		code := src[srcPos]
		switch {
		case code == Sentinel:
			slot, _, err := declaration(src, srcPos)
			if err != nil {
				return 0, err
			}
			known[slot] = true
			n += 2
			srcPos += bpeDeclLen
		case known[code]:
			n += 2
			srcPos++
		default:
			n++
			srcPos++
		}
	}
	return n, nil
}
