// Package discovery builds key tables by scanning content trees for marker
// folders. Every file under a folder named after the marker becomes a key
// equal to its path below the marker, without extension:
//
//	Assets/Art/AddressableResources/Textures/Hero.png -> Textures/Hero
//
// Scans run over a storage bucket (ScanStorage) or a directory tree (ScanDir).
// In authoring mode a Watcher rescans the content root whenever it changes.
package discovery
