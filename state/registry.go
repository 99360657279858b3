package state

import (
	"fmt"
	"sort"
	"sync"
)

// Slot is a named mutable cell. Every holder of a *Slot observes the same
// value; it is safe for concurrent access.
type Slot[T any] struct {
	key   string
	once  sync.Once
	mu    sync.RWMutex
	value T
}

// Key returns the registry key of the slot.
func (s *Slot[T]) Key() string { return s.key }

// Get returns the current value.
func (s *Slot[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the current value.
func (s *Slot[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
}

// Update mutates the value in place while holding the slot lock.
func (s *Slot[T]) Update(fn func(v *T)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.value)
}

// Registry maps string keys to slots. Slots are created lazily on first
// lookup and live as long as the registry.
type Registry struct {
	mu    sync.Mutex
	slots map[string]any
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{slots: make(map[string]any)}
}

// Use returns the slot registered under key. On the first lookup of key the
// slot is created and initFn is called to produce its default value; later
// lookups return the same slot without calling initFn. Concurrent first
// lookups wait until initFn has returned.
//
// initFn runs without the registry lock held, so it may itself call Use for
// other keys. Calling Use for the same key from its own initFn deadlocks.
//
// Looking up an existing key with a different type parameter panics.
func Use[T any](r *Registry, key string, initFn func() T) *Slot[T] {
	r.mu.Lock()
	var slot *Slot[T]
	if existing, ok := r.slots[key]; ok {
		s, ok := existing.(*Slot[T])
		if !ok {
			r.mu.Unlock()
			panic(fmt.Sprintf("state: slot %q registered as %T, requested as %T", key, existing, (*Slot[T])(nil)))
		}
		slot = s
	} else {
		slot = &Slot[T]{key: key}
		r.slots[key] = slot
	}
	r.mu.Unlock()

	slot.once.Do(func() {
		if initFn == nil {
			return
		}
		v := initFn()
		slot.mu.Lock()
		slot.value = v
		slot.mu.Unlock()
	})
	return slot
}

// Has reports whether a slot is registered under key.
func (r *Registry) Has(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.slots[key]
	return ok
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.slots))
	for k := range r.slots {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
