package metercompressor

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	nanosecondsBuckets = []float64{
		float64(100 * time.Nanosecond),
		float64(time.Microsecond),
		float64(10 * time.Microsecond),
		float64(100 * time.Microsecond),
		float64(time.Millisecond),
		float64(10 * time.Millisecond),
		float64(100 * time.Millisecond),
		float64(time.Second),
		// anything larger than a second will be bucketed together
	}

	ratioBuckets = []float64{.25, .5, .6, .7, .8, .9, .95, 1}
)

func newCounterMetric(namespace, name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	})
}

func newLatencyMetric(namespace, name string) prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      name,
		Help:      fmt.Sprintf("Latency of a %s in nanoseconds", name),
		Buckets:   nanosecondsBuckets,
	})
}

type metrics struct {
	compress,
	decompress prometheus.Histogram

	compressFailed,
	decompressFailed prometheus.Counter

	compressedIn,
	compressedOut,
	decompressedIn,
	decompressedOut prometheus.Counter

	ratio prometheus.Histogram
}

func (m *metrics) Initialize(
	namespace string,
	registerer prometheus.Registerer,
) error {
	m.compress = newLatencyMetric(namespace, "compress")
	m.decompress = newLatencyMetric(namespace, "decompress")
	m.compressFailed = newCounterMetric(namespace, "compress_failed", "# of failed compress calls")
	m.decompressFailed = newCounterMetric(namespace, "decompress_failed", "# of failed decompress calls")
	m.compressedIn = newCounterMetric(namespace, "compress_in_bytes", "# of bytes passed to compress")
	m.compressedOut = newCounterMetric(namespace, "compress_out_bytes", "# of bytes returned by compress")
	m.decompressedIn = newCounterMetric(namespace, "decompress_in_bytes", "# of bytes passed to decompress")
	m.decompressedOut = newCounterMetric(namespace, "decompress_out_bytes", "# of bytes returned by decompress")
	m.ratio = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "compress_ratio",
		Help:      "Compressed size over input size of non-empty messages",
		Buckets:   ratioBuckets,
	})

	return errors.Join(
		registerer.Register(m.compress),
		registerer.Register(m.decompress),
		registerer.Register(m.compressFailed),
		registerer.Register(m.decompressFailed),
		registerer.Register(m.compressedIn),
		registerer.Register(m.compressedOut),
		registerer.Register(m.decompressedIn),
		registerer.Register(m.decompressedOut),
		registerer.Register(m.ratio),
	)
}
