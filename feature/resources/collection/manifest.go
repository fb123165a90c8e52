package collection

import (
	"errors"
	"fmt"
	"io"
	"os"

	"addressable-resources/core/assets"

	"github.com/pelletier/go-toml/v2"
)

// ErrManifestMismatch is returned when the key and reference sequences differ in length.
var ErrManifestMismatch = errors.New("manifest keys and references differ in length")

// manifest is the persisted form: two sequences with positional correspondence.
type manifest struct {
	Keys       []string `toml:"keys"`
	References []string `toml:"references"`
}

// WriteManifest encodes c as TOML.
func WriteManifest(w io.Writer, c *Collection) error {
	m := manifest{
		Keys:       make([]string, len(c.keys)),
		References: make([]string, len(c.references)),
	}
	copy(m.Keys, c.keys)
	for i, ref := range c.references {
		m.References[i] = ref.Address
	}
	return toml.NewEncoder(w).Encode(m)
}

// ReadManifest decodes a TOML manifest. Keys are normalized and duplicates dropped.
func ReadManifest(r io.Reader) (*Collection, error) {
	var m manifest
	if err := toml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if len(m.Keys) != len(m.References) {
		return nil, fmt.Errorf("%w: %d keys, %d references", ErrManifestMismatch, len(m.Keys), len(m.References))
	}
	c := New()
	for i, k := range m.Keys {
		c.AddUnique(k, assets.NewReference(m.References[i]))
	}
	return c, nil
}

// LoadManifestFile reads a manifest from disk.
func LoadManifestFile(path string) (*Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadManifest(f)
}

// SaveManifestFile writes a manifest to disk.
func SaveManifestFile(path string, c *Collection) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteManifest(f, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
