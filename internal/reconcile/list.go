// Package reconcile keeps an in-memory collection consistent with backend
// state under optimistic UI updates.
//
// Each mutation follows a three-phase protocol: mark the item in-flight,
// await the backend, then commit the authoritative result or roll back to the
// pre-request state. The in-flight marker doubles as the double-submit guard:
// at most one outstanding request per item at a time from this client.
package reconcile

import (
	"slices"
	"sync"
)

// Keyed is any item addressable by a stable string key.
type Keyed interface {
	Key() string
}

// List is a reconciled collection of items. All methods are safe for
// interleaved callback completion.
type List[T Keyed] struct {
	mu       sync.Mutex
	items    []T
	inFlight map[string]bool
}

// NewList creates an empty reconciled list.
func NewList[T Keyed]() *List[T] {
	return &List[T]{inFlight: make(map[string]bool)}
}

// Replace swaps in a freshly fetched collection and clears every in-flight
// marker: the fetch is authoritative for all items.
func (l *List[T]) Replace(items []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = slices.Clone(items)
	l.inFlight = make(map[string]bool)
}

// Items returns an order-preserving copy of the collection.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.items)
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Get returns the item with the given key.
func (l *List[T]) Get(key string) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := l.indexLocked(key); i >= 0 {
		return l.items[i], true
	}
	var zero T
	return zero, false
}

// Begin marks the item in-flight ahead of a backend request. It returns false
// without side effects when the item is unknown or already in-flight; the
// caller must then skip the backend call entirely.
func (l *List[T]) Begin(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.indexLocked(key) < 0 || l.inFlight[key] {
		return false
	}
	l.inFlight[key] = true
	return true
}

// InFlight reports whether the item has an outstanding request.
func (l *List[T]) InFlight(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight[key]
}

// Commit replaces the item with the authoritative backend response and clears
// its marker. Completions for items that have since left the collection are
// ignored.
func (l *List[T]) Commit(key string, item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.inFlight, key)
	if i := l.indexLocked(key); i >= 0 {
		l.items[i] = item
	}
}

// CommitRemove drops the item after a successful delete and clears its marker.
func (l *List[T]) CommitRemove(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.inFlight, key)
	if i := l.indexLocked(key); i >= 0 {
		l.items = slices.Delete(l.items, i, i+1)
	}
}

// Rollback clears the marker and leaves the item exactly as it was before the
// request. An item is never left permanently in-flight.
func (l *List[T]) Rollback(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.inFlight, key)
}

// Filter returns the items satisfying pred, in collection order. It is a
// stateless projection: the underlying collection is never mutated or
// reordered.
func (l *List[T]) Filter(pred func(T) bool) []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []T
	for _, item := range l.items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

func (l *List[T]) indexLocked(key string) int {
	return slices.IndexFunc(l.items, func(item T) bool { return item.Key() == key })
}
