// Package s3 implements blobstore.BlobStore for Amazon S3.
//
// Snapshots are immutable and written once, so the store relies on plain
// GetObject/PutObject semantics; uploads go through the s3 transfer
// manager for multipart handling on larger events.
package s3
