// Package modelstore persists fitted clustering models.
//
// A saved model is a self-describing binary envelope: a magic number and
// format version, the codec and compression names, a CRC32 checksum and
// the encoded payload. Files are decoded by selecting the codec and
// compression recorded in their own header, so the options used at save
// time do not need to be remembered at load time.
//
// Artifacts travel through any blobstore.BlobStore: in-memory, local
// files, S3, MinIO, or the DynamoDB-backed model registry.
package modelstore
