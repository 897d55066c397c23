package kmeans

import (
	"context"
	"math"
	"math/rand"
	"slices"

	"github.com/hupe1980/clustergo/distance"
)

// Config controls one fit run. The caller is responsible for validating
// K against the dataset size and for supplying a seeded generator.
type Config struct {
	K             int
	Seeding       Seeding
	Tolerance     float64
	MaxIterations int // 0 means unbounded
	Rand          *rand.Rand
}

// Result is the outcome of one fit run.
type Result struct {
	Centroids  [][]float64
	Labels     []int // 1-based cluster labels, one per input point
	Score      float64
	Iterations int
	Converged  bool
}

// Run fits K clusters over points using Lloyd's algorithm: seed
// centroids, then repeat assign/update until no centroid coordinate
// moves by more than Tolerance. Ties in the assignment step go to the
// lowest-indexed centroid. A cluster left without members keeps its
// previous centroid for that iteration.
//
// The context is checked once per iteration; cancellation aborts with
// ctx.Err(). When MaxIterations > 0 and the cap is reached, the result
// as of the last completed iteration is returned with Converged=false.
func Run(ctx context.Context, points [][]float64, cfg Config) (*Result, error) {
	n := len(points)
	k := cfg.K

	centroids := make([][]float64, k)
	for i, idx := range seedIndices(cfg.Rand, points, k, cfg.Seeding) {
		centroids[i] = slices.Clone(points[idx])
	}

	labels := make([]int, n)
	part := newPartition(k)
	dim := len(points[0])

	iterations := 0
	done := false

	for !done {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Assignment step: nearest centroid, lowest index wins ties.
		part.reset()
		for i, p := range points {
			best, bd := 0, distance.Euclidean(p, centroids[0])
			for j := 1; j < k; j++ {
				if d := distance.Euclidean(p, centroids[j]); d < bd {
					best, bd = j, d
				}
			}
			labels[i] = best + 1
			part.add(best, i)
		}

		// Update step: coordinate-wise mean per occupied cluster.
		prev := centroids
		centroids = make([][]float64, k)
		for j := 0; j < k; j++ {
			if part.empty(j) {
				centroids[j] = slices.Clone(prev[j])
				continue
			}
			mean := make([]float64, dim)
			part.each(j, func(i int) {
				for d := 0; d < dim; d++ {
					mean[d] += points[i][d]
				}
			})
			inv := 1 / float64(part.size(j))
			for d := 0; d < dim; d++ {
				mean[d] *= inv
			}
			centroids[j] = mean
		}

		iterations++
		done = converged(prev, centroids, cfg.Tolerance)
		if !done && cfg.MaxIterations > 0 && iterations >= cfg.MaxIterations {
			break
		}
	}

	score, err := dispersion(points, labels, centroids)
	if err != nil {
		return nil, err
	}

	return &Result{
		Centroids:  centroids,
		Labels:     labels,
		Score:      score,
		Iterations: iterations,
		Converged:  done,
	}, nil
}

// Assign labels every point with the 1-based index of its nearest
// centroid in the frozen centroid table, using the same lowest-index
// tie-break as Run. Centroids are never mutated.
func Assign(points, centroids [][]float64) ([]int, error) {
	labels := make([]int, len(points))
	for i, p := range points {
		best, bd := -1, math.MaxFloat64
		for j, c := range centroids {
			d, err := distance.EuclideanChecked(p, c)
			if err != nil {
				return nil, err
			}
			if d < bd {
				best, bd = j, d
			}
		}
		labels[i] = best + 1
	}
	return labels, nil
}
