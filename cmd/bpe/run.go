package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/axiomhq/bpe"
	"github.com/axiomhq/bpe/metercompressor"
)

const metricsNamespace = "bpe"

var (
	errUnknownSuffix = errors.New("unknown suffix")
	errFileTooLarge  = errors.New("file too large")
)

type app struct {
	config     Config
	log        *zap.Logger
	registry   *prometheus.Registry
	compressor bpe.Compressor
	stdout     io.Writer
}

func newApp(config Config, stdout, stderr io.Writer) (*app, error) {
	base, err := bpe.NewCompressor(config.MaxSize)
	if err != nil {
		return nil, err
	}
	registry := prometheus.NewRegistry()
	compressor, err := metercompressor.New(metricsNamespace, registry, base)
	if err != nil {
		return nil, err
	}
	return &app{
		config:     config,
		log:        newLogger(config.LogLevel, stderr),
		registry:   registry,
		compressor: compressor,
		stdout:     stdout,
	}, nil
}

func (a *app) close() {
	if a.config.Metrics {
		if err := logMetrics(a.log, a.registry); err != nil {
			a.log.Warn("couldn't gather metrics", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}

// forEach runs fn for every path, at most config.Concurrency at a time, and
// returns the first error.
func (a *app) forEach(ctx context.Context, paths []string, fn func(i int, path string) error) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(a.config.Concurrency)
	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(i, path)
		})
	}
	return eg.Wait()
}

func (a *app) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > a.config.MaxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", errFileTooLarge, path, info.Size(), a.config.MaxSize)
	}
	return os.ReadFile(path)
}

func (a *app) writeFile(path string, data []byte) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !a.config.Force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// flush writes collected outputs to stdout in argument order.
func (a *app) flush(outputs [][]byte) error {
	for _, out := range outputs {
		if _, err := a.stdout.Write(out); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) compress(ctx context.Context, paths []string) error {
	outputs := make([][]byte, len(paths))
	err := a.forEach(ctx, paths, func(i int, path string) error {
		data, err := a.readFile(path)
		if err != nil {
			return err
		}
		comp, err := a.compressor.Compress(data)
		if err != nil {
			return fmt.Errorf("couldn't compress %s: %w", path, err)
		}
		a.log.Info("compressed",
			zap.String("path", path),
			zap.Int("in", len(data)),
			zap.Int("out", len(comp)),
		)
		if a.config.Stdout {
			outputs[i] = comp
			return nil
		}
		return a.writeFile(path+a.config.Suffix, comp)
	})
	if err != nil {
		return err
	}
	return a.flush(outputs)
}

func (a *app) decompress(ctx context.Context, paths []string) error {
	outputs := make([][]byte, len(paths))
	err := a.forEach(ctx, paths, func(i int, path string) error {
		target, ok := strings.CutSuffix(path, a.config.Suffix)
		if (!ok || target == "") && !a.config.Stdout {
			return fmt.Errorf("%w: %s does not end in %q", errUnknownSuffix, path, a.config.Suffix)
		}
		data, err := a.readFile(path)
		if err != nil {
			return err
		}
		orig, err := a.compressor.Decompress(data)
		if err != nil {
			return fmt.Errorf("couldn't decompress %s: %w", path, err)
		}
		a.log.Info("decompressed",
			zap.String("path", path),
			zap.Int("in", len(data)),
			zap.Int("out", len(orig)),
		)
		if a.config.Stdout {
			outputs[i] = orig
			return nil
		}
		return a.writeFile(target, orig)
	})
	if err != nil {
		return err
	}
	return a.flush(outputs)
}

func (a *app) inspect(ctx context.Context, paths []string) error {
	outputs := make([][]byte, len(paths))
	err := a.forEach(ctx, paths, func(i int, path string) error {
		data, err := a.readFile(path)
		if err != nil {
			return err
		}
		plan, err := bpe.Analyze(data)
		if err != nil {
			return fmt.Errorf("couldn't analyze %s: %w", path, err)
		}
		outputs[i] = []byte(fmt.Sprintf("%s: %s", path, plan))
		return nil
	})
	if err != nil {
		return err
	}
	return a.flush(outputs)
}

// bench reports, per file, the BPE ratio and throughput next to zstd alone
// and zstd applied on top of BPE output.
func (a *app) bench(ctx context.Context, paths []string) error {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return err
	}
	defer enc.Close()

	outputs := make([][]byte, len(paths))
	err = a.forEach(ctx, paths, func(i int, path string) error {
		data, err := a.readFile(path)
		if err != nil {
			return err
		}
		zstdLen := len(enc.EncodeAll(data, nil))

		start := time.Now()
		comp, err := a.compressor.Compress(data)
		elapsed := time.Since(start)
		if errors.Is(err, bpe.ErrInvalidInput) {
			a.log.Warn("skipping bpe for file with sentinel bytes", zap.String("path", path))
			outputs[i] = []byte(fmt.Sprintf("%s\tsize=%d\tbpe=n/a\tzstd=%.3f\n",
				path, len(data), ratio(zstdLen, len(data))))
			return nil
		}
		if err != nil {
			return fmt.Errorf("couldn't compress %s: %w", path, err)
		}
		bothLen := len(enc.EncodeAll(comp, nil))

		outputs[i] = []byte(fmt.Sprintf("%s\tsize=%d\tbpe=%.3f (%.1f MB/s)\tzstd=%.3f\tbpe+zstd=%.3f\n",
			path, len(data),
			ratio(len(comp), len(data)), throughput(len(data), elapsed),
			ratio(zstdLen, len(data)),
			ratio(bothLen, len(data)),
		))
		return nil
	})
	if err != nil {
		return err
	}
	return a.flush(outputs)
}

func ratio(n, of int) float64 {
	if of == 0 {
		return 1
	}
	return float64(n) / float64(of)
}

func throughput(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds() / 1e6
}
