package clustergo

import (
	"math/rand"
	"time"
)

// Method names a centroid initialization strategy.
type Method string

const (
	// MethodRandom samples K distinct seed indices uniformly without
	// replacement. This is the default.
	MethodRandom Method = "random"
	// MethodGreedySpread seeds centroids far apart (kmeans++-style),
	// weighting candidates by per-partition min-max normalized distance
	// to the nearest already-chosen centroid.
	MethodGreedySpread Method = "greedy-spread"
)

type options struct {
	method           Method
	tolerance        float64
	maxIterations    int
	seed             *int64
	rand             *rand.Rand
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures fit/predict behavior.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		method:           MethodRandom,
		tolerance:        0,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// WithMethod selects the centroid initialization method.
//
// An unrecognized name falls back to MethodRandom and logs a warning.
func WithMethod(method Method) Option {
	return func(o *options) {
		o.method = method
	}
}

// WithTolerance sets the convergence tolerance: the maximum per-coordinate
// centroid movement between iterations that still counts as converged.
//
// The default is 0, which demands exact equality.
func WithTolerance(eps float64) Option {
	return func(o *options) {
		o.tolerance = eps
	}
}

// WithMaxIterations caps the assign/update loop. When the cap is hit
// the model as of the last completed iteration is returned with
// Converged=false.
//
// The default is 0: no cap. Set a cap when the input may be
// pathological.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithRandomSeed makes initialization deterministic by seeding the
// random source consumed during centroid seeding.
func WithRandomSeed(seed int64) Option {
	return func(o *options) {
		o.seed = &seed
	}
}

// WithRand injects an explicit random source. Takes precedence over
// WithRandomSeed. The generator is consumed only during initialization.
func WithRand(rnd *rand.Rand) Option {
	return func(o *options) {
		o.rand = rnd
	}
}

// WithLogger configures structured logging.
//
// If nil is passed, logging stays disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics configures a metrics collector.
//
// If nil is passed, metrics stay disabled.
func WithMetrics(collector MetricsCollector) Option {
	return func(o *options) {
		if collector != nil {
			o.metricsCollector = collector
		}
	}
}

// source returns the generator to use for this call: the injected one,
// a seeded one, or a time-seeded fallback. Each call owns its source.
func (o *options) source() *rand.Rand {
	if o.rand != nil {
		return o.rand
	}
	if o.seed != nil {
		return rand.New(rand.NewSource(*o.seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
