// Package devserver provides the delegated servers the launcher hands off to.
//
// # Drivers
//
//   - Builtin: serves the application registered under the entry point with
//     Fiber, in process. Development mode adds per-request logging and verbose
//     error bodies. GET /healthz is always available.
//   - Exec: runs APP_COMMAND (with $APP_* expanded) as a child process in the
//     activated execution context, with the launch configuration exported.
//
// Both drivers bind or probe host:port before reporting ready, so a busy port
// is reported as a start failure rather than a crash.
package devserver
