package clustergo

import (
	"context"
)

// Stage tags which pipeline stage raw tabular input is being prepared
// for, so the preprocessing collaborator knows which shape to enforce.
type Stage string

const (
	// StageFit requires exactly 2 numeric columns and at least 1 row.
	StageFit Stage = "fit"
	// StageLabeled requires 3 columns, the 3rd coerced to a categorical
	// cluster label. Used by stages that consume labeled output.
	StageLabeled Stage = "labeled"
)

// Preprocessor coerces raw tabular input into canonical numeric points.
// It is an external collaborator: clustergo calls it through this
// interface and propagates its errors unmodified. Implementations fail
// with an error for empty input, a wrong column count, or a column that
// cannot be coerced to a number.
type Preprocessor interface {
	Canonicalize(rows [][]string, stage Stage) ([][]float64, error)
}

// Visualizer renders a labeled dataset (2 numeric coordinates plus a
// categorical cluster column) as a 2-D scatter colored by cluster. It
// is an external collaborator; clustergo only produces its input.
type Visualizer interface {
	Scatter(points [][]float64, labels []int) error
}

// FitTable canonicalizes raw tabular input through the preprocessing
// collaborator and fits k clusters over the result. Errors from the
// collaborator surface unmodified.
func FitTable(ctx context.Context, pre Preprocessor, rows [][]string, k int, optFns ...Option) (*Model, error) {
	data, err := pre.Canonicalize(rows, StageFit)
	if err != nil {
		return nil, err
	}
	return Fit(ctx, data, k, optFns...)
}

// PredictTable canonicalizes raw tabular input through the preprocessing
// collaborator and labels the result against the given centroid table.
func PredictTable(ctx context.Context, pre Preprocessor, rows [][]string, centroids [][]float64, optFns ...Option) ([]int, error) {
	data, err := pre.Canonicalize(rows, StageFit)
	if err != nil {
		return nil, err
	}
	return Predict(ctx, data, centroids, optFns...)
}
