// Package health exposes a liveness endpoint.
//
// It is selectable as the "health" entry point and is also mounted at /healthz
// by the builtin server for every application.
//
// # HTTP Endpoints
//
//   - GET / : {"status":"ok","mode":...,"entry_point":...}
package health
