// Package static serves a directory from disk ("static:<dir>", default ".").
//
// In development mode directory listings are enabled and file caching is off,
// so edits show up on the next request.
package static
