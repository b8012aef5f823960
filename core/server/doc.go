// Package server holds the launch configuration and its valid values.
//
// The Config struct carries the APP_* settings: entry point, runtime mode,
// bind host and port, the delegated server driver and the execution context
// directory. Values are kept as raw strings here; core/launcher validates and
// converts them into the immutable launch record.
package server
