// Package bundle is the bundled-resource loader used when a path is not
// redirected. It resolves extensionless paths against an fs.FS tree.
package bundle
