package clustergo

import (
	"context"
	"time"

	"github.com/hupe1980/clustergo/internal/kmeans"
)

// Dimensions is the coordinate count of every point. The engine itself
// is dimension-agnostic, but the public shape contract is fixed at 2-D.
const Dimensions = 2

// Fit clusters data into k groups and returns the fitted model.
//
// data must satisfy the shape contract: at least one row, every row
// exactly two numeric coordinates. k must satisfy 1 <= k <= len(data).
// Randomness is drawn only during initialization; inject a seed via
// WithRandomSeed for reproducible results.
//
// Fit is synchronous and owns its working state exclusively; it is safe
// to call concurrently from multiple goroutines on shared data.
func Fit(ctx context.Context, data [][]float64, k int, optFns ...Option) (*Model, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(o)
	}

	start := time.Now()
	model, iterations, err := fit(ctx, data, k, o)
	duration := time.Since(start)

	o.metricsCollector.RecordFit(k, iterations, duration, err)
	o.logger.LogFit(ctx, k, len(data), iterations, model != nil && model.Converged, duration, err)

	if err != nil {
		return nil, translateError(err)
	}
	return model, nil
}

func fit(ctx context.Context, data [][]float64, k int, o *options) (*Model, int, error) {
	if err := checkShape(data); err != nil {
		return nil, 0, err
	}
	if k < 1 || k > len(data) {
		return nil, 0, &ErrInvalidK{K: k, N: len(data)}
	}

	seeding := kmeans.SeedingRandom
	switch o.method {
	case MethodRandom:
	case MethodGreedySpread:
		seeding = kmeans.SeedingGreedySpread
	default:
		o.logger.LogMethodFallback(ctx, o.method)
	}

	res, err := kmeans.Run(ctx, data, kmeans.Config{
		K:             k,
		Seeding:       seeding,
		Tolerance:     o.tolerance,
		MaxIterations: o.maxIterations,
		Rand:          o.source(),
	})
	if err != nil {
		return nil, 0, err
	}

	return &Model{
		Centroids:  res.Centroids,
		Labels:     res.Labels,
		Score:      res.Score,
		Iterations: res.Iterations,
		Converged:  res.Converged,
	}, res.Iterations, nil
}

// Predict assigns each point in data the 1-based label of its nearest
// centroid, breaking ties toward the lowest-indexed centroid — the same
// rule Fit uses. The centroid table is never mutated and the result is
// deterministic given the same inputs.
func Predict(ctx context.Context, data [][]float64, centroids [][]float64, optFns ...Option) ([]int, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(o)
	}

	start := time.Now()
	labels, err := predict(ctx, data, centroids)
	duration := time.Since(start)

	o.metricsCollector.RecordPredict(len(data), duration, err)
	o.logger.LogPredict(ctx, len(centroids), len(data), duration, err)

	if err != nil {
		return nil, translateError(err)
	}
	return labels, nil
}

func predict(ctx context.Context, data [][]float64, centroids [][]float64) ([]int, error) {
	if err := checkShape(data); err != nil {
		return nil, err
	}
	if len(centroids) == 0 {
		return nil, &ErrValidation{Reason: "empty centroid table"}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return kmeans.Assign(data, centroids)
}

// checkShape re-checks the canonical shape contract at the package
// boundary: at least one row, every row exactly Dimensions coordinates.
// Coercing raw tabular input into this shape is the preprocessing
// collaborator's job, never this package's.
func checkShape(data [][]float64) error {
	if len(data) == 0 {
		return &ErrValidation{Reason: "empty input"}
	}
	for _, row := range data {
		if len(row) != Dimensions {
			return &ErrValidation{
				Reason: "wrong column count",
				Rows:   len(data),
				Cols:   len(row),
			}
		}
	}
	return nil
}
