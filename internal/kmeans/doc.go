// Package kmeans implements the k-means clustering engine.
//
// It contains Lloyd's assign/update loop, the centroid initializers
// (uniform random and greedy-spread), the convergence check and the
// within-cluster dispersion scorer. The public fit/predict API in the
// root package is a thin orchestration layer over this package.
package kmeans
