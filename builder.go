// Package clustergo builder: a fluent API for configuring and running a fit.
// The builder is immutable - each method returns a new builder with the
// updated configuration.
package clustergo

import (
	"context"
	"math/rand"
)

// KMeans creates a new fit builder for k clusters.
//
// The builder is immutable - each method returns a new builder with the
// updated configuration. This ensures thread-safety and prevents
// accidental state sharing.
//
// Example:
//
//	model, err := clustergo.KMeans(3).
//	    GreedySpread().
//	    Tolerance(0.001).
//	    MaxIterations(500).
//	    Seed(42).
//	    Fit(ctx, data)
func KMeans(k int) Builder {
	return Builder{
		k:      k,
		method: MethodRandom,
	}
}

// Builder is an immutable fluent builder for configuring a fit.
// Each method returns a new builder with the updated configuration.
type Builder struct {
	k       int
	method  Method
	eps     float64
	maxIter int
	seed    *int64
	rand    *rand.Rand
	logger  *Logger
	metrics MetricsCollector
}

// Random selects uniform-random centroid initialization (the default).
func (b Builder) Random() Builder {
	b.method = MethodRandom
	return b
}

// GreedySpread selects greedy-spread (kmeans++-style) centroid
// initialization.
func (b Builder) GreedySpread() Builder {
	b.method = MethodGreedySpread
	return b
}

// Method selects the initialization method by name. Unrecognized names
// fall back to random at fit time, with a warning.
func (b Builder) Method(method Method) Builder {
	b.method = method
	return b
}

// Tolerance sets the convergence tolerance.
// Default: 0 (exact equality).
func (b Builder) Tolerance(eps float64) Builder {
	b.eps = eps
	return b
}

// MaxIterations caps the assign/update loop.
// Default: 0 (unbounded).
func (b Builder) MaxIterations(n int) Builder {
	b.maxIter = n
	return b
}

// Seed fixes the random seed consumed during initialization.
func (b Builder) Seed(seed int64) Builder {
	b.seed = &seed
	return b
}

// Rand injects an explicit random source. Takes precedence over Seed.
func (b Builder) Rand(rnd *rand.Rand) Builder {
	b.rand = rnd
	return b
}

// Logger configures structured logging.
func (b Builder) Logger(logger *Logger) Builder {
	b.logger = logger
	return b
}

// Metrics configures a metrics collector.
func (b Builder) Metrics(collector MetricsCollector) Builder {
	b.metrics = collector
	return b
}

// Fit runs the configured fit over data.
func (b Builder) Fit(ctx context.Context, data [][]float64) (*Model, error) {
	return Fit(ctx, data, b.k, b.optFns()...)
}

// FitTable canonicalizes raw tabular input through the preprocessing
// collaborator, then runs the configured fit.
func (b Builder) FitTable(ctx context.Context, pre Preprocessor, rows [][]string) (*Model, error) {
	return FitTable(ctx, pre, rows, b.k, b.optFns()...)
}

func (b Builder) optFns() []Option {
	optFns := []Option{
		WithMethod(b.method),
		WithTolerance(b.eps),
		WithMaxIterations(b.maxIter),
	}
	if b.seed != nil {
		optFns = append(optFns, WithRandomSeed(*b.seed))
	}
	if b.rand != nil {
		optFns = append(optFns, WithRand(b.rand))
	}
	if b.logger != nil {
		optFns = append(optFns, WithLogger(b.logger))
	}
	if b.metrics != nil {
		optFns = append(optFns, WithMetrics(b.metrics))
	}
	return optFns
}
