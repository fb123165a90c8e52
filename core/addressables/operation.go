package addressables

import (
	"sync"
	"sync/atomic"

	"addressable-resources/core/assets"
)

// Operation is one asynchronous load of one reference.
type Operation struct {
	ref  assets.Reference
	kind assets.Kind

	done     chan struct{}
	once     sync.Once
	result   assets.Object
	err      error
	released atomic.Bool
	dropped  sync.Once
}

// NewOperation creates a pending operation. Engines complete it with Complete.
func NewOperation(ref assets.Reference, kind assets.Kind) *Operation {
	return &Operation{ref: ref, kind: kind, done: make(chan struct{})}
}

// Complete records the outcome and wakes every waiter. Only the first call counts.
func (op *Operation) Complete(result assets.Object, err error) {
	op.once.Do(func() {
		op.result = result
		op.err = err
		close(op.done)
	})
}

// Wait blocks until the operation completes.
func (op *Operation) Wait() (assets.Object, error) {
	<-op.done
	return op.result, op.err
}

// Done is closed once the operation completes.
func (op *Operation) Done() <-chan struct{} {
	return op.done
}

// IsDone reports whether the operation has completed.
func (op *Operation) IsDone() bool {
	select {
	case <-op.done:
		return true
	default:
		return false
	}
}

// IsValid reports whether the operation can still be awaited for a result:
// it has not been released and has not failed.
func (op *Operation) IsValid() bool {
	if op.released.Load() {
		return false
	}
	if op.IsDone() && op.err != nil {
		return false
	}
	return true
}

// Released reports whether the operation was released.
func (op *Operation) Released() bool {
	return op.released.Load()
}

// MarkReleased flags the operation as released. It returns false if it already was.
func (op *Operation) MarkReleased() bool {
	return op.released.CompareAndSwap(false, true)
}

// dropResult unloads a completed result at most once.
func (op *Operation) dropResult() {
	op.dropped.Do(func() {
		if op.err != nil {
			return
		}
		if u, ok := op.result.(assets.Unloader); ok {
			u.Unload()
		}
	})
}

// Reference returns the reference being loaded.
func (op *Operation) Reference() assets.Reference { return op.ref }

// Kind returns the kind the reference is decoded as.
func (op *Operation) Kind() assets.Kind { return op.kind }
