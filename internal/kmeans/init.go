package kmeans

import (
	"math"
	"math/rand"

	"github.com/hupe1980/clustergo/distance"
)

// Seeding selects the centroid initialization strategy.
type Seeding int

const (
	// SeedingRandom samples K distinct indices uniformly without replacement.
	SeedingRandom Seeding = iota
	// SeedingGreedySpread favors seeds far from already-chosen centroids
	// (kmeans++-style), using per-partition min-max normalized distances
	// as selection weights.
	SeedingGreedySpread
)

// seedIndices returns K distinct indices into points to use as the
// initial centroids.
func seedIndices(rnd *rand.Rand, points [][]float64, k int, seeding Seeding) []int {
	if seeding == SeedingGreedySpread {
		return seedGreedySpread(rnd, points, k)
	}
	return seedRandom(rnd, len(points), k)
}

func seedRandom(rnd *rand.Rand, n, k int) []int {
	return rnd.Perm(n)[:k]
}

// seedGreedySpread picks the first seed uniformly, then repeatedly draws
// one more index with probability proportional to spreadWeights over the
// current seed set. Already-chosen indices always carry zero weight (their
// distance is the minimum of their partition), so the result is distinct.
func seedGreedySpread(rnd *rand.Rand, points [][]float64, k int) []int {
	chosen := make([]int, 1, k)
	chosen[0] = rnd.Intn(len(points))

	for len(chosen) < k {
		weights := spreadWeights(points, chosen)
		idx := weightedPick(rnd, weights)
		if idx < 0 {
			// All weights are zero (e.g. every point coincides with a
			// seed). Fall back to a uniform draw over unchosen indices.
			idx = uniformUnchosen(rnd, len(points), chosen)
		}
		chosen = append(chosen, idx)
	}
	return chosen
}

// spreadWeights computes the greedy-spread selection weight of every
// point against the chosen seed set: each point's distance to its nearest
// seed, min-max normalized to [0,1] within the partition of points
// sharing that nearest seed. A partition whose max equals its min
// contributes zero weight for all of its points.
//
// Note this deliberately differs from the classical kmeans++ global
// D(x)^2 weighting.
func spreadWeights(points [][]float64, chosen []int) []float64 {
	n := len(points)
	weights := make([]float64, n)
	dmin := make([]float64, n)

	part := newPartition(len(chosen))
	for i, p := range points {
		best, bd := 0, distance.Euclidean(p, points[chosen[0]])
		for c := 1; c < len(chosen); c++ {
			if d := distance.Euclidean(p, points[chosen[c]]); d < bd {
				best, bd = c, d
			}
		}
		dmin[i] = bd
		part.add(best, i)
	}

	for c := range chosen {
		lo, hi := math.Inf(1), math.Inf(-1)
		part.each(c, func(i int) {
			lo = math.Min(lo, dmin[i])
			hi = math.Max(hi, dmin[i])
		})
		if hi <= lo {
			continue // degenerate partition, all weights stay zero
		}
		span := hi - lo
		part.each(c, func(i int) {
			weights[i] = (dmin[i] - lo) / span
		})
	}
	return weights
}

// weightedPick samples one index with probability proportional to its
// weight. Returns -1 when the total weight is zero. A zero-weight index
// is never returned.
func weightedPick(rnd *rand.Rand, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return -1
	}

	target := rnd.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if target < cum && w > 0 {
			return i
		}
	}
	// Floating-point slack: return the last positive-weight index.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return -1
}

func uniformUnchosen(rnd *rand.Rand, n int, chosen []int) int {
	taken := make(map[int]struct{}, len(chosen))
	for _, c := range chosen {
		taken[c] = struct{}{}
	}
	free := make([]int, 0, n-len(chosen))
	for i := 0; i < n; i++ {
		if _, ok := taken[i]; !ok {
			free = append(free, i)
		}
	}
	return free[rnd.Intn(len(free))]
}
