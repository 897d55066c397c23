package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{0, 0}, []float64{3, 4}, 5},
		{"Zero", []float64{0, 0}, []float64{0, 0}, 0},
		{"Identical", []float64{1.5, -2.5}, []float64{1.5, -2.5}, 0},
		{"NegativeCoords", []float64{-1, -1}, []float64{1, 1}, 2 * math.Sqrt2},
		{"OneAxis", []float64{10, 0.5}, []float64{10, 1}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Euclidean(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-12)
			assert.GreaterOrEqual(t, got, 0.0)
			// Symmetry
			assert.InDelta(t, got, Euclidean(tt.b, tt.a), 1e-12)
		})
	}
}

func TestSquaredEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{0, 0}, []float64{3, 4}, 25},
		{"Zero", []float64{0, 0}, []float64{0, 0}, 0},
		{"Mixed", []float64{1, -1}, []float64{-1, 1}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SquaredEuclidean(tt.a, tt.b), 1e-12)
		})
	}
}

func TestEuclideanChecked(t *testing.T) {
	got, err := EuclideanChecked([]float64{0, 0}, []float64{3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, got, 1e-12)

	_, err = EuclideanChecked([]float64{0, 0}, []float64{1, 2, 3})
	var dm *ErrDimensionMismatch
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, 2, dm.Expected)
	assert.Equal(t, 3, dm.Actual)
}

func TestProvider(t *testing.T) {
	fn, err := Provider(MetricEuclidean)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, fn([]float64{0, 0}, []float64{3, 4}), 1e-12)

	fn, err = Provider(MetricSquaredEuclidean)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, fn([]float64{0, 0}, []float64{3, 4}), 1e-12)

	_, err = Provider(Metric(999))
	assert.Error(t, err)
}

func TestMetricString(t *testing.T) {
	assert.Equal(t, "Euclidean", MetricEuclidean.String())
	assert.Equal(t, "SquaredEuclidean", MetricSquaredEuclidean.String())
	assert.Equal(t, "Unknown(999)", Metric(999).String())
}
