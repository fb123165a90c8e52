package reconcile

import "context"

// Source is one copy of the key table.
type Source interface {
	// Name identifies the source in results and plans (e.g. "manifest", "database").
	Name() string

	// LoadIndex loads the full table as normalized key to address.
	LoadIndex(ctx context.Context) (Index, error)
}

// Mutator is a Source that can be brought in line with a plan.
type Mutator interface {
	Source

	// Apply executes the actions against the source in one batch.
	Apply(ctx context.Context, actions []Action) error
}

type funcSource struct {
	name string
	load func(ctx context.Context) (Index, error)
}

// NewSource wraps a load function as a read-only Source.
func NewSource(name string, load func(ctx context.Context) (Index, error)) Source {
	return &funcSource{name: name, load: load}
}

func (s *funcSource) Name() string { return s.name }

func (s *funcSource) LoadIndex(ctx context.Context) (Index, error) {
	return s.load(ctx)
}
