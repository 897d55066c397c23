// Package clustergo provides embeddable k-means clustering for Go.
//
// Clustergo implements the classic fit/predict workflow over
// two-dimensional numeric data: seed centroids (uniform random or
// greedy-spread), run Lloyd's assign/update loop until the centroids
// stop moving, score the result, and label new points against the
// frozen centroid table.
//
// # Quick Start
//
// Functional options:
//
//	ctx := context.Background()
//	model, _ := clustergo.Fit(ctx, data, 3, clustergo.WithRandomSeed(42))
//	labels, _ := model.Predict(ctx, newData)
//
// Fluent builder:
//
//	model, _ := clustergo.KMeans(3).
//	    GreedySpread().
//	    Tolerance(0.001).
//	    MaxIterations(500).
//	    Seed(42).
//	    Fit(ctx, data)
//
// # Determinism
//
// Fit draws randomness only during centroid initialization, from a
// generator you inject via WithRandomSeed or WithRand. With a fixed
// seed the whole fit is deterministic. Predict is always deterministic.
//
// # Persisting Models
//
// The centroid table is the only artifact needed to predict later.
// The modelstore package persists fitted models through a pluggable
// blobstore (memory, local files, S3, DynamoDB, MinIO, plus a
// DynamoDB-backed version registry)
// with a self-describing envelope (codec + optional zstd/lz4
// compression + CRC32):
//
//	store := blobstore.NewLocalStore("./models")
//	_ = modelstore.Save(ctx, store, "iris.model", model)
//	model, _ = modelstore.Load(ctx, store, "iris.model")
//
// # Key Features
//
//   - Lloyd's algorithm with exact (tolerance 0) or relaxed convergence
//   - Uniform-random and greedy-spread (kmeans++-style) seeding
//   - Within-cluster dispersion scoring
//   - Opt-in iteration cap for pathological inputs
//   - Cloud-native model storage (S3/MinIO/DynamoDB via BlobStore)
package clustergo
