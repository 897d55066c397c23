package modelstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/clustergo"
	"github.com/hupe1980/clustergo/blobstore"
	"github.com/hupe1980/clustergo/codec"
)

// ErrModelNotFound is returned by Load when no artifact exists under the
// given name. It satisfies errors.Is against blobstore.ErrNotFound.
var ErrModelNotFound = blobstore.ErrNotFound

// Options configures how Save encodes a model artifact and how both
// Save and Load are observed. Load follows the artifact's own header
// for codec and compression.
type Options struct {
	// Codec encodes the model payload. Defaults to codec.Default.
	Codec codec.Codec
	// Compression wraps the encoded payload. Defaults to CompressionNone.
	Compression Compression
	// Logger receives structured save/load logs. Defaults to no logging.
	Logger *clustergo.Logger
	// Metrics records save/load operations. Defaults to no metrics.
	Metrics clustergo.MetricsCollector
}

// WithCodec sets the payload codec for newly saved artifacts.
func WithCodec(c codec.Codec) func(*Options) {
	return func(o *Options) {
		if c != nil {
			o.Codec = c
		}
	}
}

// WithCompression sets the payload compression for newly saved artifacts.
func WithCompression(c Compression) func(*Options) {
	return func(o *Options) {
		o.Compression = c
	}
}

// WithLogger configures structured logging for save/load operations.
func WithLogger(logger *clustergo.Logger) func(*Options) {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithMetrics configures a metrics collector for save/load operations.
func WithMetrics(collector clustergo.MetricsCollector) func(*Options) {
	return func(o *Options) {
		if collector != nil {
			o.Metrics = collector
		}
	}
}

func defaultOptions() Options {
	return Options{
		Codec:       codec.Default,
		Compression: CompressionNone,
		Logger:      clustergo.NoopLogger(),
		Metrics:     clustergo.NoopMetricsCollector{},
	}
}

// Save encodes the fitted model and writes it to the store under name.
func Save(ctx context.Context, store blobstore.BlobStore, name string, model *clustergo.Model, optFns ...func(*Options)) error {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	start := time.Now()
	size, err := save(ctx, store, name, model, opts)
	duration := time.Since(start)

	opts.Metrics.RecordSave(size, duration, err)
	opts.Logger.LogSave(ctx, name, size, duration, err)

	return err
}

func save(ctx context.Context, store blobstore.BlobStore, name string, model *clustergo.Model, opts Options) (int, error) {
	payload, err := opts.Codec.Marshal(model)
	if err != nil {
		return 0, fmt.Errorf("encode model: %w", err)
	}
	compressed, err := compress(opts.Compression, payload)
	if err != nil {
		return 0, fmt.Errorf("compress model: %w", err)
	}

	data, err := encodeEnvelope(envelope{
		codecName:       opts.Codec.Name(),
		compressionName: string(opts.Compression),
		payload:         compressed,
	})
	if err != nil {
		return 0, fmt.Errorf("encode envelope: %w", err)
	}

	return len(data), store.Put(ctx, name, data)
}

// Load reads, verifies and decodes a model artifact. The codec and
// compression are selected from the artifact's own header. Returns
// ErrModelNotFound when no artifact exists under name.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...func(*Options)) (*clustergo.Model, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	start := time.Now()
	model, err := load(ctx, store, name)
	duration := time.Since(start)

	opts.Metrics.RecordLoad(duration, err)
	opts.Logger.LogLoad(ctx, name, duration, err)

	return model, err
}

func load(ctx context.Context, store blobstore.BlobStore, name string) (*clustergo.Model, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, fmt.Errorf("model %q: %w", name, ErrModelNotFound)
		}
		return nil, err
	}
	defer func() { _ = b.Close() }()

	data, err := blobstore.ReadAll(ctx, b)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}

	c, ok := codec.ByName(env.codecName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, env.codecName)
	}
	compression, ok := compressionByName(env.compressionName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, env.compressionName)
	}

	payload, err := decompress(compression, env.payload)
	if err != nil {
		return nil, fmt.Errorf("decompress model: %w", err)
	}

	var model clustergo.Model
	if err := c.Unmarshal(payload, &model); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return &model, nil
}
