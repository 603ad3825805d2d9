package predgo

import (
	"log/slog"

	"github.com/hupe1980/predgo/bucket"
)

// Compression selects the snapshot compression algorithm.
type Compression uint8

const (
	// CompressionNone stores snapshots uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio, default).
	CompressionZSTD Compression = 2
)

type options struct {
	logger        *Logger
	metrics       MetricsCollector
	bucketBuilder bucket.Builder
	compression   Compression
}

// Option configures construction and load behavior.
type Option func(*options)

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithBucketBuilder configures the search structure built per bucket of
// consecutive values. The default is a binary search over the sorted group;
// any structure satisfying the bucket.Search contract can be plugged in.
func WithBucketBuilder(b bucket.Builder) Option {
	return func(o *options) {
		if b == nil {
			b = bucket.NewSortedSlice
		}
		o.bucketBuilder = b
	}
}

// WithCompression configures the compression used for newly written
// snapshots. Existing snapshots are self-describing and load regardless of
// this setting.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:        NoopLogger(),
		metrics:       NoopMetricsCollector{},
		bucketBuilder: bucket.NewSortedSlice,
		compression:   CompressionZSTD,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
