// Package bucket serves objects from S3/MinIO ("bucket:<name>", default
// STORAGE_BUCKET).
//
// Unlike the static package which reads from disk, this package streams
// objects through core/storage, so a bucket can be previewed exactly as a CDN
// would serve it.
//
// # HTTP Endpoints
//
//   - GET /<key> : streams the object, 404 when the key does not exist.
//   - GET /<prefix>/ : JSON listing of the keys under prefix (development only).
package bucket
