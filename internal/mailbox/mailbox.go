// Package mailbox provides a single-slot buffer where the latest item
// always wins. It is NOT a queue: it holds at most one pending item.
// The daemon uses it to hand each run's summary to the notifier — if
// runs outpace delivery, only the freshest summary is worth sending.
package mailbox

import "sync"

type Mailbox[T any] struct {
	mu   sync.Mutex
	cond *sync.Cond
	item *T
}

// New creates an empty mailbox.
func New[T any]() *Mailbox[T] {
	m := &Mailbox[T]{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Put stores an item, replacing any existing one. It never blocks.
func (m *Mailbox[T]) Put(v T) {
	m.mu.Lock()
	m.item = &v
	m.mu.Unlock()
	m.cond.Signal()
}

// Take blocks until an item is available, then returns it and clears the slot.
func (m *Mailbox[T]) Take() T {
	m.mu.Lock()
	defer m.mu.Unlock()

	for m.item == nil {
		m.cond.Wait()
	}

	v := *m.item
	m.item = nil
	return v
}

// TryTake returns the item if present, or nil. It never blocks.
func (m *Mailbox[T]) TryTake() *T {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.item == nil {
		return nil
	}

	v := m.item
	m.item = nil
	return v
}

// Pending reports whether an item is currently waiting.
func (m *Mailbox[T]) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.item != nil
}
