package resources

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"addressable-resources/core/addressables"
	"addressable-resources/core/assets"
	"addressable-resources/feature/resources/bridge"
	"addressable-resources/feature/resources/collection"
	"addressable-resources/feature/resources/ledger"

	"go.uber.org/zap"
)

// maxAttempts bounds retries when a concurrent unload drains the object
// between the bridge returning it and the ledger counting it.
const maxAttempts = 3

var (
	// ErrNoFallback is returned when a path must fall back but no fallback loader is configured.
	ErrNoFallback = errors.New("no fallback loader configured")
	// ErrUnexpectedType is returned by LoadAs when the loaded object is not of the requested Go type.
	ErrUnexpectedType = errors.New("loaded object has an unexpected type")
)

// Fallback is the pre-existing path-based loader used for everything not redirected.
type Fallback interface {
	Load(ctx context.Context, path string, kind assets.Kind) (assets.Object, error)
	Unload(obj assets.Object) error
}

// EditorSource serves direct asset views in authoring mode.
type EditorSource interface {
	EditorAsset(ctx context.Context, ref assets.Reference, kind assets.Kind) (assets.Object, error)
}

// Options configures a Loader.
type Options struct {
	Mode     addressables.Mode
	Bridge   *bridge.Bridge
	Fallback Fallback
	Editor   EditorSource
	Logger   *zap.Logger
}

// Stats summarizes loader state.
type Stats struct {
	Mode          string `json:"mode"`
	Keys          int    `json:"keys"`
	Tracked       int    `json:"tracked"`
	Held          int    `json:"held"`
	Redirected    int64  `json:"redirected"`
	FallbackLoads int64  `json:"fallback_loads"`
}

// Loader redirects loads for known paths through the bridge and counts owners
// of every object it hands out. Everything else goes to the fallback loader.
type Loader struct {
	mode     addressables.Mode
	bridge   *bridge.Bridge
	fallback Fallback
	editor   EditorSource
	logger   *zap.Logger

	table atomic.Pointer[collection.Collection]

	// mu makes verify-then-increase and decrease-then-release atomic.
	mu     sync.Mutex
	ledger *ledger.Ledger[assets.Object]

	// editorObjects are redirected objects handed out in authoring mode. They
	// are not counted but must not reach the fallback unloader either.
	editorObjects map[assets.Object]struct{}

	redirected atomic.Int64
	fallbacks  atomic.Int64
}

// NewLoader creates a loader over table. The table must not be mutated afterwards;
// use ReplaceTable to swap in a new one.
func NewLoader(table *collection.Collection, opts Options) *Loader {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if table == nil {
		table = collection.New()
	}
	l := &Loader{
		mode:     opts.Mode,
		bridge:   opts.Bridge,
		fallback: opts.Fallback,
		editor:   opts.Editor,
		logger:   opts.Logger,
		ledger:   ledger.New[assets.Object](),

		editorObjects: make(map[assets.Object]struct{}),
	}
	l.table.Store(table)
	return l
}

// Load returns the object for path. Redirected paths that fail to load fall
// back too, and the fallback's result is returned unchanged.
func (l *Loader) Load(ctx context.Context, path string, kind assets.Kind) (assets.Object, error) {
	ref, ok := l.table.Load().Lookup(path)
	if !ok {
		return l.fallbackLoad(ctx, path, kind)
	}

	var (
		obj assets.Object
		err error
	)
	if l.mode == addressables.ModeAuthoring {
		obj, err = l.editorLoad(ctx, ref, kind)
	} else {
		obj, err = l.loadCounted(ctx, ref, kind)
	}
	if err != nil {
		l.logger.Debug("Redirected load failed, using fallback",
			zap.String("path", path),
			zap.String("address", ref.Address),
			zap.String("kind", kind.String()),
			zap.Error(err))
		return l.fallbackLoad(ctx, path, kind)
	}
	l.redirected.Add(1)
	return obj, nil
}

func (l *Loader) editorLoad(ctx context.Context, ref assets.Reference, kind assets.Kind) (assets.Object, error) {
	if l.editor == nil {
		return nil, errors.New("no editor source configured")
	}
	obj, err := l.editor.EditorAsset(ctx, ref, kind)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.editorObjects[obj] = struct{}{}
	l.mu.Unlock()
	return obj, nil
}

func (l *Loader) loadCounted(ctx context.Context, ref assets.Reference, kind assets.Kind) (assets.Object, error) {
	if l.bridge == nil {
		return nil, errors.New("no bridge configured")
	}

	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		var obj assets.Object
		obj, err = l.bridge.LoadAs(ctx, ref, kind)
		if errors.Is(err, bridge.ErrReleased) {
			continue
		}
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		if l.bridge.Holds(obj) {
			l.ledger.Increase(obj)
			l.mu.Unlock()
			return obj, nil
		}
		l.mu.Unlock()
		err = bridge.ErrReleased
	}
	return nil, err
}

func (l *Loader) fallbackLoad(ctx context.Context, path string, kind assets.Kind) (assets.Object, error) {
	if l.fallback == nil {
		return nil, ErrNoFallback
	}
	l.fallbacks.Add(1)
	return l.fallback.Load(ctx, path, kind)
}

// Unload gives up one ownership of obj. The last owner of a redirected object
// releases its load operation. Objects loaded in authoring mode are forgotten;
// everything else goes to the fallback unloader.
func (l *Loader) Unload(obj assets.Object) error {
	if obj == nil {
		return nil
	}

	l.mu.Lock()
	if _, ok := l.editorObjects[obj]; ok {
		delete(l.editorObjects, obj)
		l.mu.Unlock()
		return nil
	}
	if !l.ledger.IsTracked(obj) {
		l.mu.Unlock()
		if l.fallback == nil {
			return ErrNoFallback
		}
		return l.fallback.Unload(obj)
	}
	defer l.mu.Unlock()

	release, err := l.ledger.Decrease(obj)
	if err != nil {
		l.logger.DPanic("Reference ledger out of balance",
			zap.String("asset", obj.Name()),
			zap.Error(err))
		return err
	}
	if !release {
		return nil
	}
	if err := l.bridge.Release(obj); err != nil {
		l.logger.DPanic("Drained object has no load operation",
			zap.String("asset", obj.Name()),
			zap.Error(err))
		return err
	}
	return nil
}

// ReplaceTable swaps the key table. In-flight loads keep the table they started with.
func (l *Loader) ReplaceTable(table *collection.Collection) {
	if table == nil {
		table = collection.New()
	}
	l.table.Store(table)
	l.logger.Info("Key table replaced", zap.Int("keys", table.Len()))
}

// Table returns the current key table. Callers must not mutate it.
func (l *Loader) Table() *collection.Collection {
	return l.table.Load()
}

// Mode returns the loading mode.
func (l *Loader) Mode() addressables.Mode {
	return l.mode
}

// RefCount returns the number of owners of obj.
func (l *Loader) RefCount(obj assets.Object) int {
	return l.ledger.Count(obj)
}

// Tracked reports whether obj is a counted redirected object.
func (l *Loader) Tracked(obj assets.Object) bool {
	return l.ledger.IsTracked(obj)
}

// Stats returns a snapshot of loader counters.
func (l *Loader) Stats() Stats {
	s := Stats{
		Mode:          l.mode.String(),
		Keys:          l.table.Load().Len(),
		Tracked:       l.ledger.Len(),
		Redirected:    l.redirected.Load(),
		FallbackLoads: l.fallbacks.Load(),
	}
	if l.bridge != nil {
		s.Held = l.bridge.Len()
	}
	return s
}

// LoadAs loads path as the kind produced by T.
func LoadAs[T assets.Object](ctx context.Context, l *Loader, path string) (T, error) {
	var zero T
	obj, err := l.Load(ctx, path, assets.KindOf[T]())
	if err != nil {
		return zero, err
	}
	t, ok := obj.(T)
	if !ok {
		if uerr := l.Unload(obj); uerr != nil {
			l.logger.Warn("Failed to unload mistyped object", zap.Error(uerr))
		}
		return zero, fmt.Errorf("%w: %T", ErrUnexpectedType, obj)
	}
	return t, nil
}
