package clustergo

import "context"

// Model is a fitted clustering: the final centroid table, one 1-based
// label per input point, the within-cluster dispersion score and the
// loop outcome. It is read-only; Predict never mutates it.
type Model struct {
	// Centroids is the K x 2 centroid table. Row i holds the centroid
	// of cluster i+1. This is the sole artifact needed to predict later.
	Centroids [][]float64 `json:"centroids"`
	// Labels assigns every input point (by index) a cluster in 1..K.
	Labels []int `json:"labels"`
	// Score is the total within-cluster dispersion: the sum over all
	// points of the Euclidean distance to their assigned centroid.
	Score float64 `json:"score"`
	// Iterations is the number of assign/update passes performed.
	Iterations int `json:"iterations"`
	// Converged is false only when an iteration cap stopped the loop
	// before the centroids settled.
	Converged bool `json:"converged"`
}

// K returns the number of clusters.
func (m *Model) K() int {
	return len(m.Centroids)
}

// Predict assigns cluster labels to new points against the fitted
// centroid table. See the package-level Predict.
func (m *Model) Predict(ctx context.Context, data [][]float64, optFns ...Option) ([]int, error) {
	return Predict(ctx, data, m.Centroids, optFns...)
}
