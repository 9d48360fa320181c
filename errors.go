package bpe

import "errors"

var (
	// ErrInvalidInput indicates the encoder input contains the sentinel byte and cannot be compressed.
	ErrInvalidInput = errors.New("bpe: input contains sentinel byte 255")
	// ErrTruncatedInput indicates a declaration runs past the end of the compressed data.
	ErrTruncatedInput = errors.New("bpe: truncated declaration")
	// ErrBufferTooSmall indicates a caller-supplied output buffer is shorter than the input.
	ErrBufferTooSmall = errors.New("bpe: output buffer too small")
	// ErrInvalidSlot indicates a declaration assigns a pair to the sentinel value itself.
	ErrInvalidSlot = errors.New("bpe: declaration uses sentinel as slot")
)
