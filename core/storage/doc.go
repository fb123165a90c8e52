// Package storage wraps the MinIO client behind the small Client interface the
// resource service needs.
//
// Asset payloads are read with GetObject, discovery walks the tree with
// ListObjects, integrity checks call StatObject and the discover command
// publishes manifests with PutObject. IsNotFound distinguishes a missing object
// from a transport failure. A testify mock of Client lives in core/storage/mocks.
package storage
