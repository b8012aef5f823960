// Package storage provides a read-only abstraction over object storage.
//
// It wraps the MinIO Go client so the bucket app can serve objects from AWS S3
// or a self-hosted MinIO instance during development.
//
// # Client Interface
//
// The Client interface abstracts the underlying provider, making it easy to
// mock storage interactions in unit tests (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - StatObject: Reads object metadata (size, content type).
//   - GetObject: Retrieves content as a stream.
//   - ListObjects: Lists objects in a bucket (supports prefix).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, "assets")
package storage
