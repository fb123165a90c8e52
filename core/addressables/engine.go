package addressables

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"addressable-resources/core/assets"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Engine runs asynchronous loads, one live operation per reference.
type Engine struct {
	source   Source
	registry *assets.Registry
	sem      *semaphore.Weighted
	logger   *zap.Logger

	mu  sync.Mutex
	ops map[assets.Reference]*Operation

	started  atomic.Int64
	released atomic.Int64
}

// NewEngine creates an engine that fetches from source and decodes through registry.
// maxConcurrent bounds simultaneous fetch+decode work; values below 1 mean 1.
func NewEngine(source Source, registry *assets.Registry, maxConcurrent int, logger *zap.Logger) *Engine {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		source:   source,
		registry: registry,
		sem:      semaphore.NewWeighted(int64(maxConcurrent)),
		logger:   logger,
		ops:      make(map[assets.Reference]*Operation),
	}
}

// LoadAsync starts loading ref as kind and returns immediately.
// The load runs detached from ctx cancellation; it inherits ctx values only.
func (e *Engine) LoadAsync(ctx context.Context, ref assets.Reference, kind assets.Kind) (*Operation, error) {
	if !ref.IsValid() {
		return nil, ErrInvalidReference
	}
	if !e.registry.Supports(kind) {
		return nil, fmt.Errorf("%w: %s", assets.ErrUnsupportedKind, kind)
	}

	e.mu.Lock()
	if existing, ok := e.ops[ref]; ok && existing.IsValid() {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrOperationExists, ref)
	}
	op := NewOperation(ref, kind)
	e.ops[ref] = op
	e.mu.Unlock()

	e.started.Add(1)
	go e.run(context.WithoutCancel(ctx), op)
	return op, nil
}

func (e *Engine) run(ctx context.Context, op *Operation) {
	obj, err := e.load(ctx, op)
	if err != nil {
		e.mu.Lock()
		if e.ops[op.ref] == op {
			delete(e.ops, op.ref)
		}
		e.mu.Unlock()
		e.logger.Warn("Asset load failed",
			zap.String("address", op.ref.Address),
			zap.String("kind", op.kind.String()),
			zap.Error(err))
	}
	op.Complete(obj, err)

	// Released while in flight: nobody will ever receive this result.
	if op.Released() {
		op.dropResult()
	}
}

func (e *Engine) load(ctx context.Context, op *Operation) (assets.Object, error) {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer e.sem.Release(1)

	data, err := e.source.Fetch(ctx, op.ref.Address)
	if err != nil {
		return nil, err
	}
	return e.registry.Decode(op.kind, AssetName(op.ref.Address), data)
}

// Operation returns the valid operation for ref, if any.
func (e *Engine) Operation(ref assets.Reference) (*Operation, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	op, ok := e.ops[ref]
	if !ok || !op.IsValid() {
		return nil, false
	}
	return op, true
}

// Release returns an operation's slot to the engine and unloads its result.
func (e *Engine) Release(op *Operation) error {
	if op == nil {
		return ErrInvalidReference
	}
	if !op.MarkReleased() {
		return fmt.Errorf("%w: %s", ErrAlreadyReleased, op.ref)
	}

	e.mu.Lock()
	if e.ops[op.ref] == op {
		delete(e.ops, op.ref)
	}
	e.mu.Unlock()
	e.released.Add(1)

	if op.IsDone() {
		op.dropResult()
	}
	e.logger.Debug("Operation released", zap.String("address", op.ref.Address))
	return nil
}

// Active returns the number of live operations.
func (e *Engine) Active() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.ops)
}

// Started returns how many operations were started.
func (e *Engine) Started() int64 {
	return e.started.Load()
}

// Released returns how many operations were released.
func (e *Engine) Released() int64 {
	return e.released.Load()
}
