package resources

import (
	"sync"
	"sync/atomic"

	"addressable-resources/feature/resources/collection"

	"go.uber.org/zap"
)

// Bootstrap installs a Loader at most once for the lifetime of a process.
type Bootstrap struct {
	once   sync.Once
	loader atomic.Pointer[Loader]
}

// Initialize builds and installs the loader on the first call. Later calls
// ignore their arguments and return the installed loader.
func (b *Bootstrap) Initialize(table *collection.Collection, opts Options) *Loader {
	b.once.Do(func() {
		l := NewLoader(table, opts)
		b.loader.Store(l)
		l.logger.Info("Resource loader installed",
			zap.String("mode", l.mode.String()),
			zap.Int("keys", l.Table().Len()))
	})
	return b.loader.Load()
}

// IsInitialized reports whether a loader is installed.
func (b *Bootstrap) IsInitialized() bool {
	return b.loader.Load() != nil
}

// Loader returns the installed loader, or nil.
func (b *Bootstrap) Loader() *Loader {
	return b.loader.Load()
}
