// Package launcher implements the launch contract of the dev server: resolve
// configuration, activate the execution context, export the configuration and
// hand off to a delegated server that blocks until shutdown.
//
// # Configuration
//
// ResolveConfig reads APP_ENTRY_POINT (required), APP_MODE (development),
// APP_HOST (0.0.0.0) and APP_PORT (8000), plus the optional APP_DRIVER,
// APP_COMMAND, APP_CONTEXT_DIR and APP_ALLOW_FROM, into an immutable Config.
//
// # Errors
//
// Every failure is fatal and surfaces as one of three kinds, each with its own
// exit code:
//   - ConfigurationError (2): missing or invalid configuration
//   - ContextActivationError (3): the execution context could not be activated
//   - ServerStartError (4): the delegated server failed to bind or start
//
// # Lifecycle
//
// A Launcher moves from Unstarted to Running once the server reports its
// listener is bound, or to Failed on any error. It is single use.
package launcher
