package assets

import (
	"fmt"
	"sort"
	"sync"
)

// Decoder turns a raw payload into an Object of one kind.
type Decoder func(name string, data []byte) (Object, error)

// Registry maps kinds to decoders.
type Registry struct {
	mu       sync.RWMutex
	decoders map[Kind]Decoder
}

// NewRegistry creates a registry with every well-known kind registered.
func NewRegistry() *Registry {
	r := &Registry{decoders: make(map[Kind]Decoder)}
	r.Register(KindPrefab, DecodePrefab)
	r.Register(KindTexture, DecodeTexture)
	r.Register(KindSprite, DecodeSprite)
	r.Register(KindMaterial, DecodeMaterial)
	r.Register(KindAudioClip, DecodeAudioClip)
	r.Register(KindFont, DecodeFont)
	r.Register(KindText, DecodeText)
	r.Register(KindBinary, DecodeBlob)
	return r
}

// Register adds or replaces the decoder for a kind.
func (r *Registry) Register(kind Kind, dec Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders[kind] = dec
}

// Supports reports whether a decoder is registered for kind.
func (r *Registry) Supports(kind Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.decoders[kind]
	return ok
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]Kind, 0, len(r.decoders))
	for k := range r.decoders {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Decode decodes data as kind.
func (r *Registry) Decode(kind Kind, name string, data []byte) (Object, error) {
	r.mu.RLock()
	dec, ok := r.decoders[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
	obj, err := dec(name, data)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: %s decoder returned no object for %s", ErrDecode, kind, name)
	}
	return obj, nil
}
