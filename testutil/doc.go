// Package testutil provides deterministic data generators and quality
// metrics used by clustergo's tests and benchmarks.
//
// It is exported so downstream users can reproduce the same synthetic
// workloads when evaluating their own pipelines.
package testutil
