package reconcile

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrNoSources is returned when a Spec has nothing to compare.
	ErrNoSources = errors.New("reconcile: no sources")
	// ErrDuplicateSource is returned when two sources share a name.
	ErrDuplicateSource = errors.New("reconcile: duplicate source name")
	// ErrUnknownSource is returned when options name a source the Spec does not have.
	ErrUnknownSource = errors.New("reconcile: unknown source")
	// ErrNotMutable is returned when the plan target cannot be written.
	ErrNotMutable = errors.New("reconcile: target source is read-only")
)

// Index maps normalized resource keys to addresses.
type Index map[string]string

// Result is the reconciliation output for a single key.
type Result struct {
	// Key is the normalized resource key.
	Key string `json:"key"`

	// Addresses holds the address per source name. Sources without the key have no entry.
	Addresses map[string]string `json:"addresses"`

	// Missing lists the sources that do not have the key, in spec order.
	Missing []string `json:"missing"`

	// Mismatch describes address disagreements, e.g. "address: manifest=a.png database=b.png".
	Mismatch []string `json:"mismatch"`
}

// Present reports whether source has the key.
func (r Result) Present(source string) bool {
	_, ok := r.Addresses[source]
	return ok
}

// Complete reports whether every source has the key at the same address.
func (r Result) Complete() bool {
	return len(r.Missing) == 0 && len(r.Mismatch) == 0
}

// Spec defines the sources to compare and how long their indices are cached.
type Spec struct {
	// Name distinguishes cache entries of otherwise identical source sets.
	Name string

	// Sources are compared in order; the first source present for a key is
	// the reference for mismatch detection.
	Sources []Source

	// CacheTTL is the time-to-live for cached indices. Zero disables caching.
	CacheTTL time.Duration
}

// CacheKey returns the key under which this spec's indices are cached.
func (s *Spec) CacheKey() string {
	parts := make([]string, 0, len(s.Sources)+1)
	parts = append(parts, s.Name)
	for _, src := range s.Sources {
		parts = append(parts, src.Name())
	}
	return strings.Join(parts, "|")
}

func (s *Spec) validate() error {
	if len(s.Sources) == 0 {
		return ErrNoSources
	}
	seen := make(map[string]struct{}, len(s.Sources))
	for _, src := range s.Sources {
		if _, dup := seen[src.Name()]; dup {
			return ErrDuplicateSource
		}
		seen[src.Name()] = struct{}{}
	}
	return nil
}

func (s *Spec) source(name string) (Source, bool) {
	for _, src := range s.Sources {
		if src.Name() == name {
			return src, true
		}
	}
	return nil, false
}

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionAdd adds a key the target is missing.
	ActionAdd ActionType = "add"
	// ActionUpdate rewrites the address of a key the target already has.
	ActionUpdate ActionType = "update"
	// ActionRemove removes a key the authority does not have.
	ActionRemove ActionType = "remove"
)

// Action represents a planned mutation of the target source.
type Action struct {
	Type ActionType `json:"type"`
	Key  string     `json:"key"`

	// Address is the authority's address. Empty for ActionRemove.
	Address string `json:"address,omitempty"`

	Reason string `json:"reason"`
}
