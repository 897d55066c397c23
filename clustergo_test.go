package clustergo

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var twoGroups = [][]float64{
	{0, 0},
	{0, 1},
	{10, 0},
	{10, 1},
}

// splitSeed finds a seed whose random initialization draws one index
// from each visual group, making the fit outcome deterministic.
func splitSeed(t *testing.T) int64 {
	t.Helper()
	for s := int64(0); s < 1000; s++ {
		perm := rand.New(rand.NewSource(s)).Perm(len(twoGroups))[:2]
		if (perm[0] < 2) != (perm[1] < 2) {
			return s
		}
	}
	t.Fatal("no splitting seed found")
	return 0
}

func TestFit(t *testing.T) {
	ctx := context.Background()

	model, err := Fit(ctx, twoGroups, 2, WithRandomSeed(splitSeed(t)))
	require.NoError(t, err)

	assert.Equal(t, 2, model.K())
	assert.True(t, model.Converged)
	assert.InDelta(t, 2.0, model.Score, 1e-12)
	assert.Len(t, model.Labels, 4)
	for _, l := range model.Labels {
		assert.GreaterOrEqual(t, l, 1)
		assert.LessOrEqual(t, l, 2)
	}
}

func TestFitInvalidK(t *testing.T) {
	ctx := context.Background()

	for _, k := range []int{0, -1, 5} {
		_, err := Fit(ctx, twoGroups, k)
		var ik *ErrInvalidK
		require.ErrorAs(t, err, &ik, "k=%d", k)
		assert.Equal(t, k, ik.K)
		assert.Equal(t, 4, ik.N)
	}

	// The interval is closed: both boundaries are accepted.
	_, err := Fit(ctx, twoGroups, 1, WithRandomSeed(1))
	assert.NoError(t, err)
	_, err = Fit(ctx, twoGroups, 4, WithRandomSeed(1))
	assert.NoError(t, err)
}

func TestFitShapeContract(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		data [][]float64
	}{
		{"Empty", nil},
		{"TooManyColumns", [][]float64{{1, 2, 3}}},
		{"TooFewColumns", [][]float64{{1}}},
		{"RaggedRows", [][]float64{{1, 2}, {3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fit(ctx, tt.data, 1)
			var ve *ErrValidation
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestFitMethodFallback(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	model, err := Fit(ctx, twoGroups, 2,
		WithMethod("does-not-exist"),
		WithRandomSeed(splitSeed(t)),
		WithLogger(logger),
	)
	require.NoError(t, err)
	assert.True(t, model.Converged)
	assert.Contains(t, buf.String(), "falling back to random")
}

func TestFitGreedySpread(t *testing.T) {
	ctx := context.Background()

	model, err := Fit(ctx, twoGroups, 2,
		WithMethod(MethodGreedySpread),
		WithRandomSeed(7),
	)
	require.NoError(t, err)
	assert.True(t, model.Converged)
	assert.Equal(t, 2, model.K())
}

func TestFitDeterministicWithSeed(t *testing.T) {
	ctx := context.Background()

	a, err := Fit(ctx, twoGroups, 2, WithRandomSeed(42))
	require.NoError(t, err)
	b, err := Fit(ctx, twoGroups, 2, WithRandomSeed(42))
	require.NoError(t, err)

	assert.Equal(t, a.Labels, b.Labels)
	assert.Equal(t, a.Centroids, b.Centroids)
	assert.Equal(t, a.Score, b.Score)
}

func TestPredict(t *testing.T) {
	ctx := context.Background()
	centroids := [][]float64{{0, 0.5}, {10, 0.5}}

	labels, err := Predict(ctx, twoGroups, centroids)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 2, 2}, labels)

	// Idempotent on identical inputs.
	again, err := Predict(ctx, twoGroups, centroids)
	require.NoError(t, err)
	assert.Equal(t, labels, again)
}

func TestPredictReproducesFitLabels(t *testing.T) {
	ctx := context.Background()

	model, err := Fit(ctx, twoGroups, 2, WithRandomSeed(splitSeed(t)))
	require.NoError(t, err)

	labels, err := model.Predict(ctx, twoGroups)
	require.NoError(t, err)
	assert.Equal(t, model.Labels, labels)
}

func TestPredictDimensionMismatch(t *testing.T) {
	ctx := context.Background()

	_, err := Predict(ctx, twoGroups, [][]float64{{1, 2, 3}})
	var dm *ErrDimensionMismatch
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, 2, dm.Expected)
	assert.Equal(t, 3, dm.Actual)
}

func TestPredictEmptyCentroids(t *testing.T) {
	ctx := context.Background()

	_, err := Predict(ctx, twoGroups, nil)
	var ve *ErrValidation
	assert.ErrorAs(t, err, &ve)
}

func TestFitRecordsMetrics(t *testing.T) {
	ctx := context.Background()
	collector := &BasicMetricsCollector{}

	_, err := Fit(ctx, twoGroups, 2, WithRandomSeed(1), WithMetrics(collector))
	require.NoError(t, err)
	_, err = Fit(ctx, twoGroups, 0, WithMetrics(collector))
	require.Error(t, err)

	assert.Equal(t, int64(2), collector.FitCount.Load())
	assert.Equal(t, int64(1), collector.FitErrors.Load())

	_, err = Predict(ctx, twoGroups, [][]float64{{0, 0}}, WithMetrics(collector))
	require.NoError(t, err)
	assert.Equal(t, int64(1), collector.PredictCount.Load())
	assert.Equal(t, int64(4), collector.PredictPoints.Load())
}

type fakePreprocessor struct {
	data [][]float64
	err  error
}

func (f *fakePreprocessor) Canonicalize(_ [][]string, _ Stage) ([][]float64, error) {
	return f.data, f.err
}

func TestFitTable(t *testing.T) {
	ctx := context.Background()
	pre := &fakePreprocessor{data: twoGroups}

	model, err := FitTable(ctx, pre, nil, 2, WithRandomSeed(splitSeed(t)))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, model.Score, 1e-12)
}

func TestFitTablePropagatesCollaboratorError(t *testing.T) {
	ctx := context.Background()
	wantErr := errors.New("non-numeric column")
	pre := &fakePreprocessor{err: wantErr}

	_, err := FitTable(ctx, pre, [][]string{{"a", "b"}}, 2)
	// Collaborator errors surface unmodified.
	assert.ErrorIs(t, err, wantErr)
}

func TestPredictTable(t *testing.T) {
	ctx := context.Background()
	pre := &fakePreprocessor{data: twoGroups}

	labels, err := PredictTable(ctx, pre, nil, [][]float64{{0, 0.5}, {10, 0.5}})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 2, 2}, labels)
}
