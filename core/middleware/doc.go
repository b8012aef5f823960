// Package middleware contains HTTP middleware for the builtin dev server.
//
// # Components
//
//   - RayID: gives every request a unique id (X-Ray-ID), stored in the Fiber
//     context and echoed in the response for log correlation.
//   - AllowList: restricts access to the clients listed in APP_ALLOW_FROM.
package middleware
