package ledger

import (
	"errors"
	"sync"
)

// ErrNotTracked is returned by Decrease for a key with no outstanding owners.
var ErrNotTracked = errors.New("object is not tracked")

// Ledger counts outstanding owners per key. An entry exists only while its count is positive.
// Keys are compared with ==, so pointer keys are tracked by identity.
type Ledger[K comparable] struct {
	mu     sync.Mutex
	counts map[K]int
}

// New creates an empty ledger.
func New[K comparable]() *Ledger[K] {
	return &Ledger[K]{counts: make(map[K]int)}
}

// Increase adds one owner for k.
func (l *Ledger[K]) Increase(k K) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[k]++
}

// Decrease removes one owner for k and reports whether that was the last one.
func (l *Ledger[K]) Decrease(k K) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n, ok := l.counts[k]
	if !ok {
		return false, ErrNotTracked
	}
	if n == 1 {
		delete(l.counts, k)
		return true, nil
	}
	l.counts[k] = n - 1
	return false, nil
}

// IsTracked reports whether k has at least one owner.
func (l *Ledger[K]) IsTracked(k K) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.counts[k]
	return ok
}

// Count returns the number of owners for k.
func (l *Ledger[K]) Count(k K) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[k]
}

// Len returns the number of tracked keys.
func (l *Ledger[K]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.counts)
}

// Snapshot copies the current counts.
func (l *Ledger[K]) Snapshot() map[K]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[K]int, len(l.counts))
	for k, n := range l.counts {
		out[k] = n
	}
	return out
}
