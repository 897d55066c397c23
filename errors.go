package clustergo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/clustergo/distance"
	"github.com/hupe1980/clustergo/internal/kmeans"
)

var (
	// ErrComputationAnomaly is returned when the within-cluster
	// dispersion comes out negative, which cannot happen with
	// non-negative distances.
	ErrComputationAnomaly = errors.New("computation anomaly")
)

// ErrInvalidK indicates that K is outside the closed interval [1, N].
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidK struct {
	K     int
	N     int
	cause error
}

func (e *ErrInvalidK) Error() string {
	return fmt.Sprintf("invalid k: %d (dataset has %d points, want 1 <= k <= %d)", e.K, e.N, e.N)
}

func (e *ErrInvalidK) Unwrap() error { return e.cause }

// ErrDimensionMismatch indicates a point/centroid dimensionality mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrValidation indicates raw input that violates the shape contract:
// empty input, wrong column count, or a non-numeric column.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrValidation struct {
	Reason string
	Rows   int
	Cols   int
	cause  error
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation failed: %s (rows=%d, cols=%d)", e.Reason, e.Rows, e.Cols)
}

func (e *ErrValidation) Unwrap() error { return e.cause }

// translateError normalizes errors from subpackages into the public
// error kinds of this package. Collaborator validation errors pass
// through unmodified.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var dm *distance.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	if errors.Is(err, kmeans.ErrNegativeScore) {
		return fmt.Errorf("%w: %w", ErrComputationAnomaly, err)
	}

	return err
}
