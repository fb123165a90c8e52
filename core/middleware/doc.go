// Package middleware groups the Fiber middleware mounted in front of every feature.
//
// Subpackage auth checks the configured API key; rayid tags each request with a
// RayID that is echoed in the response headers and in request logs.
package middleware
