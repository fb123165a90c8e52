package assets

import "strings"

// handle gives each reference its own identity. It is not zero-sized so that
// every allocation has a distinct address.
type handle struct{ _ byte }

// Reference identifies a loadable asset. Every NewReference call yields a
// distinct handle; copies of a Reference share it. Two references to the same
// address are therefore different map keys and load independently.
type Reference struct {
	// Address is the asset path relative to the content root or bucket prefix.
	Address string `json:"address" toml:"address"`

	id *handle
}

// NewReference creates a reference for the given address, normalizing path separators.
func NewReference(address string) Reference {
	return Reference{Address: strings.ReplaceAll(address, "\\", "/"), id: new(handle)}
}

// IsValid reports whether the reference points at something.
func (r Reference) IsValid() bool {
	return r.Address != ""
}

// String returns the address.
func (r Reference) String() string {
	return r.Address
}
