package kmeans

import "math"

// converged reports whether no centroid coordinate moved by more than
// eps between two successive centroid tables. With eps = 0 this demands
// exact equality, which is reachable because the mean of a fixed
// partition is deterministic once the assignment stops changing.
func converged(prev, next [][]float64, eps float64) bool {
	for i := range prev {
		for j := range prev[i] {
			if math.Abs(prev[i][j]-next[i][j]) > eps {
				return false
			}
		}
	}
	return true
}
