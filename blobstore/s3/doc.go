// Package s3 provides AWS backed blob stores for model artifacts: an
// Amazon S3 object store, a DynamoDB item store for artifacts small
// enough to live in a table, and a DynamoDB-coordinated registry that
// tracks the latest published version of each model with atomic
// conditional writes.
package s3
