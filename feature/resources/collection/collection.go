package collection

import (
	"strings"

	"addressable-resources/core/assets"
)

// NormalizeKey canonicalizes a caller path into a lookup key.
// It must be applied both when populating a Collection and when querying one.
func NormalizeKey(key string) string {
	return strings.ToLower(key)
}

// Entry is one key/reference pair.
type Entry struct {
	Key       string           `json:"key"`
	Reference assets.Reference `json:"reference"`
}

// Collection is the ordered key table. Keys are unique; the first insertion wins.
// It is not safe for concurrent mutation.
type Collection struct {
	keys       []string
	references []assets.Reference
	index      map[string]int
}

// New creates an empty collection.
func New() *Collection {
	return &Collection{index: make(map[string]int)}
}

// AddUnique inserts key unless it is already present. It reports whether the entry was added.
func (c *Collection) AddUnique(key string, ref assets.Reference) bool {
	normalized := NormalizeKey(key)
	if c.indexOf(normalized) >= 0 {
		return false
	}
	c.append(normalized, ref)
	return true
}

// Set inserts key or replaces its reference in place.
func (c *Collection) Set(key string, ref assets.Reference) {
	normalized := NormalizeKey(key)
	if i := c.indexOf(normalized); i >= 0 {
		c.references[i] = ref
		return
	}
	c.append(normalized, ref)
}

// RemoveWithKey removes the entry for key, if any.
func (c *Collection) RemoveWithKey(key string) {
	i := c.indexOf(NormalizeKey(key))
	if i < 0 {
		return
	}
	delete(c.index, c.keys[i])
	c.keys = append(c.keys[:i], c.keys[i+1:]...)
	c.references = append(c.references[:i], c.references[i+1:]...)
	for j := i; j < len(c.keys); j++ {
		c.index[c.keys[j]] = j
	}
}

// Lookup returns the reference registered for path.
func (c *Collection) Lookup(path string) (assets.Reference, bool) {
	i := c.indexOf(NormalizeKey(path))
	if i < 0 {
		return assets.Reference{}, false
	}
	return c.references[i], true
}

// AsMap returns a snapshot of the table.
func (c *Collection) AsMap() map[string]assets.Reference {
	m := make(map[string]assets.Reference, len(c.keys))
	for i, k := range c.keys {
		m[k] = c.references[i]
	}
	return m
}

// Entries returns the pairs in insertion order.
func (c *Collection) Entries() []Entry {
	out := make([]Entry, len(c.keys))
	for i, k := range c.keys {
		out[i] = Entry{Key: k, Reference: c.references[i]}
	}
	return out
}

// Keys returns the normalized keys in insertion order.
func (c *Collection) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.keys)
}

// Clear empties the table.
func (c *Collection) Clear() {
	c.keys = nil
	c.references = nil
	c.index = make(map[string]int)
}

func (c *Collection) append(normalized string, ref assets.Reference) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	c.index[normalized] = len(c.keys)
	c.keys = append(c.keys, normalized)
	c.references = append(c.references, ref)
}

func (c *Collection) indexOf(normalized string) int {
	if i, ok := c.index[normalized]; ok {
		return i
	}
	return -1
}
