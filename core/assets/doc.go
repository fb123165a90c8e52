// Package assets defines the asset model shared by every loading path.
//
// # References
//
// A Reference is the opaque, addressable pointer to an asset that has not been
// materialized yet. Its address is the asset's path relative to the content
// root (on disk) or the bucket prefix (in object storage).
//
// # Kinds and objects
//
// A Kind names the result type a caller asks for. Decoded assets implement
// Object; every implementation is a pointer type, so maps keyed by Object
// compare by identity and two value-equal assets never share an entry.
//
// # Registry
//
// Registry is the type-indexed dispatch table built at startup. NewRegistry
// registers the well-known kinds:
//
//	prefab     YAML node tree (alias: gameobject)
//	texture    png, jpeg, bmp, tiff, webp (alias: texture2d)
//	sprite     texture plus rect and pivot
//	material   TOML material definition
//	audioclip  wav, ogg, flac, mp3 payload
//	font       OpenType / TrueType
//	text       UTF-8 text
//	binary     raw bytes
//
// Custom kinds are added with Register. KindOf maps a Go result type to its
// kind at compile time, which is how typed helpers pick a decoder without
// runtime type inspection.
package assets
