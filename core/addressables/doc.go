// Package addressables is the asynchronous, handle-based asset loading subsystem.
//
// An Engine starts at most one live Operation per asset reference. Each
// operation fetches the payload from a Source (object storage or a directory
// tree), decodes it through the assets registry and completes once; any number
// of goroutines may Wait on it. Operations stay alive until they are released
// explicitly; there is no finalizer-driven cleanup.
//
// # Operations
//
//   - LoadAsync: start a load; fails with ErrOperationExists when the reference
//     already has a valid operation.
//   - Operation: query the valid operation for a reference.
//   - Release: return the operation's slot and unload its result. Releasing
//     twice fails with ErrAlreadyReleased.
//
// Failed operations remove themselves so a later load can retry.
//
// # Sources
//
//   - StorageSource: S3/MinIO through core/storage, with concurrent downloads of
//     one object collapsed via singleflight.
//   - DirSource: any fs.FS, typically the local content root.
//
// # Modes
//
// ModeLive serves redirected loads through operations. ModeAuthoring serves
// them through EditorAssets, which decodes straight from the source and never
// counts references.
package addressables
