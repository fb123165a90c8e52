package bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"addressable-resources/core/addressables"
	"addressable-resources/core/assets"

	"go.uber.org/zap"
)

var (
	// ErrLoadFailed wraps every reason a load produced no usable object.
	ErrLoadFailed = errors.New("asset load failed")
	// ErrKindMismatch is returned when a reused operation produced another kind.
	ErrKindMismatch = errors.New("loaded asset has a different kind")
	// ErrReleased is returned when the operation was released before its result was registered.
	ErrReleased = errors.New("operation released before registration")
	// ErrIdentityCollision is returned when two operations produce the same object.
	ErrIdentityCollision = errors.New("object already registered for another operation")
	// ErrNotLoaded is returned by Release for objects the bridge does not hold.
	ErrNotLoaded = errors.New("object was not loaded through the bridge")
)

// System is the asynchronous asset subsystem consumed by the bridge.
type System interface {
	LoadAsync(ctx context.Context, ref assets.Reference, kind assets.Kind) (*addressables.Operation, error)
	Operation(ref assets.Reference) (*addressables.Operation, bool)
	Release(op *addressables.Operation) error
}

// Bridge turns asynchronous operations into blocking loads and remembers
// which operation produced each object so it can be released later.
type Bridge struct {
	system System
	logger *zap.Logger

	mu      sync.Mutex
	handles map[assets.Object]*addressables.Operation
}

// New creates a bridge over system.
func New(system System, logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{
		system:  system,
		logger:  logger,
		handles: make(map[assets.Object]*addressables.Operation),
	}
}

// LoadAs loads ref as kind, reusing the operation already running or
// completed for ref. It blocks until that operation finishes.
func (b *Bridge) LoadAs(ctx context.Context, ref assets.Reference, kind assets.Kind) (assets.Object, error) {
	op, err := b.operationFor(ctx, ref, kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	obj, err := op.Wait()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: %s produced no object", ErrLoadFailed, ref)
	}
	if obj.Kind() != kind {
		return nil, fmt.Errorf("%w: %w: want %s, got %s", ErrLoadFailed, ErrKindMismatch, kind, obj.Kind())
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if op.Released() {
		return nil, ErrReleased
	}
	if existing, ok := b.handles[obj]; ok {
		if existing != op {
			b.logger.Error("Object identity shared by two operations",
				zap.String("address", ref.Address),
				zap.String("registered", existing.Reference().Address))
			return nil, fmt.Errorf("%w: %s", ErrIdentityCollision, ref)
		}
		return obj, nil
	}
	b.handles[obj] = op
	return obj, nil
}

func (b *Bridge) operationFor(ctx context.Context, ref assets.Reference, kind assets.Kind) (*addressables.Operation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if op, ok := b.system.Operation(ref); ok {
		return op, nil
	}
	op, err := b.system.LoadAsync(ctx, ref, kind)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("Operation started",
		zap.String("address", ref.Address),
		zap.String("kind", kind.String()))
	return op, nil
}

// Release forgets obj and releases the operation that produced it.
func (b *Bridge) Release(obj assets.Object) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	op, ok := b.handles[obj]
	if !ok {
		return ErrNotLoaded
	}
	delete(b.handles, obj)
	return b.system.Release(op)
}

// Holds reports whether obj is registered with a live operation.
func (b *Bridge) Holds(obj assets.Object) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.handles[obj]
	return ok
}

// Reference returns the reference whose operation produced obj.
func (b *Bridge) Reference(obj assets.Object) (assets.Reference, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	op, ok := b.handles[obj]
	if !ok {
		return assets.Reference{}, false
	}
	return op.Reference(), true
}

// Len returns the number of registered objects.
func (b *Bridge) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handles)
}
