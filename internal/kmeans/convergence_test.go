package kmeans

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConverged(t *testing.T) {
	tests := []struct {
		name     string
		prev     [][]float64
		next     [][]float64
		eps      float64
		expected bool
	}{
		{
			"ExactEqual",
			[][]float64{{1, 2}, {3, 4}},
			[][]float64{{1, 2}, {3, 4}},
			0,
			true,
		},
		{
			"TinyMoveZeroEps",
			[][]float64{{1, 2}, {3, 4}},
			[][]float64{{1, 2}, {3, 4.0000001}},
			0,
			false,
		},
		{
			"MoveWithinEps",
			[][]float64{{1, 2}, {3, 4}},
			[][]float64{{1.05, 2}, {3, 3.95}},
			0.05,
			true,
		},
		{
			"MoveBeyondEps",
			[][]float64{{1, 2}, {3, 4}},
			[][]float64{{1.06, 2}, {3, 4}},
			0.05,
			false,
		},
		{
			"MaxEntryDecides",
			[][]float64{{0, 0}, {0, 0}},
			[][]float64{{0.01, 0.01}, {0.01, 0.2}},
			0.1,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, converged(tt.prev, tt.next, tt.eps))
		})
	}
}
