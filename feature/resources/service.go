package resources

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"addressable-resources/core/assets"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrLeaseNotFound is returned for unknown lease ids.
var ErrLeaseNotFound = errors.New("lease not found")

// KindSupport reports which kinds can be decoded.
type KindSupport interface {
	Supports(kind assets.Kind) bool
}

// Lease is an object held on behalf of an HTTP client until it is released.
type Lease struct {
	ID      string `json:"lease"`
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Tracked bool   `json:"tracked"`
	Refs    int    `json:"refs"`
}

// Service exposes the loader to remote callers.
type Service struct {
	loader *Loader
	kinds  KindSupport
	logger *zap.Logger

	mu     sync.Mutex
	leases map[string]assets.Object
}

// NewService creates a new resources service.
func NewService(loader *Loader, kinds KindSupport, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		loader: loader,
		kinds:  kinds,
		logger: logger,
		leases: make(map[string]assets.Object),
	}
}

// Keys returns the key table as key to address.
func (s *Service) Keys() map[string]string {
	entries := s.loader.Table().Entries()
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		out[e.Key] = e.Reference.Address
	}
	return out
}

// Load loads path and holds the object under a new lease.
func (s *Service) Load(ctx context.Context, path, kindName string) (*Lease, error) {
	kind, err := assets.ParseKind(kindName)
	if err != nil {
		return nil, err
	}
	if s.kinds != nil && !s.kinds.Supports(kind) {
		return nil, fmt.Errorf("%w: %s", assets.ErrUnsupportedKind, kind)
	}

	obj, err := s.loader.Load(ctx, path, kind)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.leases[id] = obj
	s.mu.Unlock()

	return &Lease{
		ID:      id,
		Path:    path,
		Kind:    obj.Kind().String(),
		Name:    obj.Name(),
		Tracked: s.loader.Tracked(obj),
		Refs:    s.loader.RefCount(obj),
	}, nil
}

// Release unloads the object held by lease id.
func (s *Service) Release(id string) error {
	s.mu.Lock()
	obj, ok := s.leases[id]
	delete(s.leases, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrLeaseNotFound, id)
	}
	return s.loader.Unload(obj)
}

// Leases returns the number of outstanding leases.
func (s *Service) Leases() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.leases)
}

// Stats returns loader statistics.
func (s *Service) Stats() Stats {
	return s.loader.Stats()
}
