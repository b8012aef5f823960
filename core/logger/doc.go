// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different verbosity
// levels and integrates with the Fiber-based builtin dev server.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID assigned by the rayid middleware from
// a Fiber context and attaches it to the log entry, so that every line logged
// while handling a request can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//   - File: optional file that receives a copy of every entry
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Launcher started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
