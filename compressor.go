package bpe

import (
	"errors"
	"fmt"
)

var (
	_ Compressor = (*bpeCompressor)(nil)

	ErrInvalidMaxSize          = errors.New("bpe: invalid compressor max size")
	ErrMsgTooLarge             = errors.New("bpe: msg too large to be compressed")
	ErrDecompressedMsgTooLarge = errors.New("bpe: decompressed msg too large")
)

// Compressor compresses and decompresses messages.
// Decompress is the inverse of Compress.
// Decompress(Compress(msg)) == msg
type Compressor interface {
	Compress([]byte) ([]byte, error)
	Decompress([]byte) ([]byte, error)
}

type bpeCompressor struct {
	maxSize int64
}

// NewCompressor returns a Compressor that rejects messages larger than maxSize
// in either direction.
func NewCompressor(maxSize int64) (Compressor, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxSize, maxSize)
	}
	return &bpeCompressor{maxSize: maxSize}, nil
}

// Compress [msg] and returns the compressed bytes.
func (c *bpeCompressor) Compress(msg []byte) ([]byte, error) {
	if int64(len(msg)) > c.maxSize {
		return nil, fmt.Errorf("%w: (%d) > (%d)", ErrMsgTooLarge, len(msg), c.maxSize)
	}
	return Encode(nil, msg)
}

// Decompress decompresses [msg]. The decoded size is checked before any
// output is allocated.
func (c *bpeCompressor) Decompress(msg []byte) ([]byte, error) {
	n, err := DecodedLen(msg)
	if err != nil {
		return nil, err
	}
	if int64(n) > c.maxSize {
		return nil, fmt.Errorf("%w: (%d) > (%d)", ErrDecompressedMsgTooLarge, n, c.maxSize)
	}
	return Decode(make([]byte, 0, n), msg)
}
