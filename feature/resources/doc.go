// Package resources redirects path-based resource loads for a curated set of
// keys through asynchronous load operations, counting owners so that each
// operation is released when its last owner unloads.
//
// Paths missing from the key table, and redirected loads that fail, are
// served by the fallback loader exactly as if no redirection were installed.
//
// # HTTP Endpoints
//
//   - GET /resources/keys : Lists the key table.
//   - POST /resources/load : Loads a path and returns a lease.
//   - DELETE /resources/leases/:lease : Releases a lease.
//   - GET /resources/stats : Loader counters.
package resources
