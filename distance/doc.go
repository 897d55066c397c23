// Package distance provides the distance metrics used by clustergo.
//
// The clustering engine and the predictor both measure point-to-centroid
// proximity through this package, so fit and predict always agree on
// what "nearest" means.
package distance
