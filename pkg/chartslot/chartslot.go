// Package chartslot owns the presentation layer's live chart instances. Each
// canvas slot holds at most one chart at a time; installing a new chart into
// a slot destroys whatever was there first. This replaces an earlier design
// that kept a process-wide "last rendered chart" in module-level variables.
package chartslot

import (
	"sync"
)

// Chart is a rendered chart instance that must be torn down before its slot
// can be reused.
type Chart interface {
	Close() error
}

// Registry maps canvas slot ids to their single live chart.
type Registry struct {
	mu    sync.Mutex
	slots map[string]Chart
}

func NewRegistry() *Registry {
	return &Registry{
		slots: make(map[string]Chart),
	}
}

// Replace installs c into the slot, destroying any prior occupant first. The
// destroy-then-create order is the invariant: a slot never holds two live
// charts.
func (r *Registry) Replace(slot string, c Chart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if old, ok := r.slots[slot]; ok {
		err = old.Close()
	}
	r.slots[slot] = c
	return err
}

// Get returns the live chart for a slot, if any.
func (r *Registry) Get(slot string) (Chart, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.slots[slot]
	return c, ok
}

// Remove tears down and forgets the slot's chart, if any.
func (r *Registry) Remove(slot string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.slots[slot]
	if !ok {
		return nil
	}
	delete(r.slots, slot)
	return old.Close()
}
