package kmeans

import (
	"errors"

	"github.com/hupe1980/clustergo/distance"
)

// ErrNegativeScore is returned when the within-cluster dispersion comes
// out negative, which cannot happen with non-negative distances.
var ErrNegativeScore = errors.New("negative within-cluster dispersion")

// dispersion sums, per cluster, the Euclidean distance from every member
// point to the cluster centroid, and totals the per-cluster sums.
// Labels are 1-based.
func dispersion(points [][]float64, labels []int, centroids [][]float64) (float64, error) {
	perCluster := make([]float64, len(centroids))
	for i, p := range points {
		cluster := labels[i] - 1
		perCluster[cluster] += distance.Euclidean(p, centroids[cluster])
	}

	var total float64
	for _, s := range perCluster {
		total += s
	}
	if total < 0 {
		return 0, ErrNegativeScore
	}
	return total, nil
}
