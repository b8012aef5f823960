// Package loader resolves entry points to the applications the builtin dev
// server can serve.
//
// An entry point is written "name" or "name:target", mirroring the
// module:object convention. The name selects a registered Feature; the target
// is handed to it as its argument (a directory, a bucket).
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    Load(ctx context.Context, router fiber.Router, mount Mount) error
//	}
//
// # Manager
//
// The Manager struct holds the registry of available features. It handles:
//   - Registration of features via Register()
//   - Resolution and loading of the entry point via Load()
package loader
