package realtime

import (
	"context"
	"log"
	"sync"
)

const subscriberBuffer = 32

type memorySub struct {
	tables map[string]bool
	ch     chan Event
}

// MemoryBroker fans events out inside one process. Slow subscribers lose
// events instead of blocking publishers.
type MemoryBroker struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]*memorySub
	closed bool
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[int]*memorySub)}
}

func (b *MemoryBroker) Publish(_ context.Context, ev Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, s := range b.subs {
		if !s.tables[ev.Table] {
			continue
		}
		select {
		case s.ch <- ev:
		default:
			log.Printf("realtime: subscriber buffer full, dropping %s event", ev.Table)
		}
	}
	return nil
}

func (b *MemoryBroker) Subscribe(ctx context.Context, tables ...string) (<-chan Event, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &memorySub{tables: tableSet(tables), ch: make(chan Event, subscriberBuffer)}
	if b.closed {
		close(sub.ch)
		return sub.ch, nil
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = sub

	go func() {
		<-ctx.Done()
		b.remove(id)
	}()

	return sub.ch, nil
}

func (b *MemoryBroker) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(s.ch)
	}
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, s := range b.subs {
		delete(b.subs, id)
		close(s.ch)
	}
	b.closed = true
	return nil
}
