// Package metercompressor wraps a bpe.Compressor with Prometheus metrics.
package metercompressor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/axiomhq/bpe"
)

var _ bpe.Compressor = (*Compressor)(nil)

type Compressor struct {
	metrics
	compressor bpe.Compressor
}

// New registers the compressor's metrics under namespace and returns the
// wrapped compressor.
func New(
	namespace string,
	registerer prometheus.Registerer,
	compressor bpe.Compressor,
) (*Compressor, error) {
	c := &Compressor{compressor: compressor}
	return c, c.metrics.Initialize(namespace, registerer)
}

func (c *Compressor) Compress(msg []byte) ([]byte, error) {
	start := time.Now()
	out, err := c.compressor.Compress(msg)
	c.compress.Observe(float64(time.Since(start)))
	if err != nil {
		c.compressFailed.Inc()
		return nil, err
	}

	c.compressedIn.Add(float64(len(msg)))
	c.compressedOut.Add(float64(len(out)))
	if len(msg) > 0 {
		c.ratio.Observe(float64(len(out)) / float64(len(msg)))
	}
	return out, nil
}

func (c *Compressor) Decompress(msg []byte) ([]byte, error) {
	start := time.Now()
	out, err := c.compressor.Decompress(msg)
	c.decompress.Observe(float64(time.Since(start)))
	if err != nil {
		c.decompressFailed.Inc()
		return nil, err
	}

	c.decompressedIn.Add(float64(len(msg)))
	c.decompressedOut.Add(float64(len(out)))
	return out, nil
}
