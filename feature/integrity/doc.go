// Package integrity checks the key table against the systems it depends on.
//
// # Checks Provided
//
//   - Structure: The bucket exists and holds at least one marker folder.
//   - References: Every reference in the key table resolves to an object in the bucket.
//   - Schema: The persisted key table has every column the service reads and writes.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/references : Runs reference check.
//   - GET /integrity/schema : Runs schema check.
package integrity
