// Package viewmodel keeps client-side copies of the CRM collections in sync
// with the API. Local state is a cache: every successful write is followed
// by a full reload.
package viewmodel

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crm-manager/internal/realtime"
)

// Collection is the shared state machine behind every entity view-model.
type Collection[T any] struct {
	table string
	fetch func(ctx context.Context) ([]T, error)
	id    func(T) uuid.UUID
	text  func(T) []string

	mu      sync.RWMutex
	items   []T
	err     string
	loading int
	started uint64
	applied uint64
}

func newCollection[T any](
	table string,
	fetch func(ctx context.Context) ([]T, error),
	id func(T) uuid.UUID,
	text func(T) []string,
) *Collection[T] {
	return &Collection[T]{table: table, fetch: fetch, id: id, text: text}
}

// Reload fetches the whole collection. On failure the message is recorded
// and the previous items are kept. A load that finishes after a newer one
// has been applied is dropped.
func (c *Collection[T]) Reload(ctx context.Context) error {
	c.mu.Lock()
	c.started++
	gen := c.started
	c.loading++
	c.mu.Unlock()

	items, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading--

	if gen < c.applied {
		return err
	}
	c.applied = gen

	if err != nil {
		c.err = message(err)
		return err
	}
	c.items = items
	c.err = ""
	return nil
}

// Mutate runs a remote write. On success the collection is reloaded; on
// failure the error is recorded and items are left untouched.
func (c *Collection[T]) Mutate(ctx context.Context, op func(ctx context.Context) error) bool {
	c.mu.Lock()
	c.err = ""
	c.mu.Unlock()

	if err := op(ctx); err != nil {
		c.setErr(err)
		return false
	}

	_ = c.Reload(ctx)
	return true
}

// call runs a remote read that does not touch the items, recording its
// error like a mutation would.
func call[T, R any](c *Collection[T], ctx context.Context, op func(ctx context.Context) (R, error)) (R, bool) {
	c.mu.Lock()
	c.err = ""
	c.mu.Unlock()

	out, err := op(ctx)
	if err != nil {
		c.setErr(err)
		return out, false
	}
	return out, true
}

func (c *Collection[T]) setErr(err error) {
	c.mu.Lock()
	c.err = message(err)
	c.mu.Unlock()
}

// Items returns a copy of the current items.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.items...)
}

func (c *Collection[T]) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading > 0
}

func (c *Collection[T]) ByID(id uuid.UUID) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, it := range c.items {
		if c.id(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Where returns the items matching keep, in order.
func (c *Collection[T]) Where(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []T
	for _, it := range c.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Filter is the local search: a case-insensitive substring match over the
// entity's searchable fields. An empty term returns everything.
func (c *Collection[T]) Filter(term string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return c.Items()
	}
	return c.Where(func(it T) bool {
		for _, field := range c.text(it) {
			if strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return false
	})
}

// Watch reloads on every change event for this collection's table until
// ctx ends or events is closed. onReload, when set, runs after each reload.
func (c *Collection[T]) Watch(ctx context.Context, events <-chan realtime.Event, onReload func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Table != c.table {
				continue
			}
			_ = c.Reload(ctx)
			if onReload != nil {
				onReload()
			}
		}
	}
}

// message is what the user sees: API errors already carry the server's
// text.
func message(err error) string {
	return err.Error()
}
