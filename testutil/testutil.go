package testutil

import (
	"math"
	"math/rand"
	"sync"
)

// RNG wraps a seeded random source for reproducible data generation.
// It is safe for concurrent use.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformPoints generates num points with coordinates in [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformPoints(num, dimensions int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	points := make([][]float64, num)

	for i := range num {
		p := data[i*dimensions : (i+1)*dimensions]
		for j := range p {
			p[j] = r.rand.Float64()
		}
		points[i] = p
	}

	return points
}

// Blobs generates num points drawn from clusters Gaussian blobs, along
// with the ground-truth assignment of each point (1-based, matching the
// labels a fitted model reports). Centroids are spaced on a circle of
// radius spacing around the origin so neighboring blobs do not overlap
// when spread is small relative to spacing.
func (r *RNG) Blobs(num, clusters int, spacing, spread float64) (points [][]float64, truth []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	centers := make([][2]float64, clusters)
	for c := range clusters {
		angle := 2 * math.Pi * float64(c) / float64(clusters)
		centers[c] = [2]float64{spacing * math.Cos(angle), spacing * math.Sin(angle)}
	}

	data := make([]float64, num*2)
	points = make([][]float64, num)
	truth = make([]int, num)

	for i := range num {
		c := i % clusters
		p := data[i*2 : (i+1)*2]
		p[0] = centers[c][0] + r.rand.NormFloat64()*spread
		p[1] = centers[c][1] + r.rand.NormFloat64()*spread
		points[i] = p
		truth[i] = c + 1
	}

	return points, truth
}

// Purity measures how well predicted cluster labels recover a
// ground-truth assignment, ignoring label permutation. Each predicted
// cluster is credited with its most common ground-truth class; the
// result is the credited fraction of points, in [0, 1].
func Purity(truth, predicted []int) float64 {
	if len(truth) == 0 || len(truth) != len(predicted) {
		return 0
	}

	counts := make(map[int]map[int]int)
	for i, p := range predicted {
		if counts[p] == nil {
			counts[p] = make(map[int]int)
		}
		counts[p][truth[i]]++
	}

	credited := 0
	for _, byClass := range counts {
		best := 0
		for _, n := range byClass {
			if n > best {
				best = n
			}
		}
		credited += best
	}

	return float64(credited) / float64(len(truth))
}
