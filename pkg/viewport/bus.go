package viewport

import (
	"sync"

	"github.com/google/uuid"
)

// Handler receives events and reports whether it consumed them.
type Handler func(Event) bool

// Registration is a live subscription.
type Registration interface {
	Cancel()
}

// Source delivers input events to subscribers.
type Source interface {
	Subscribe(h Handler) Registration
}

// Bus is an in-memory Source. Publishing is synchronous; subscribe and
// cancel may be called from any goroutine.
type Bus struct {
	mu    sync.RWMutex
	order []uuid.UUID
	subs  map[uuid.UUID]Handler
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[uuid.UUID]Handler)}
}

// Subscribe adds h. Handlers run in subscription order.
func (b *Bus) Subscribe(h Handler) Registration {
	id := uuid.New()
	b.mu.Lock()
	b.subs[id] = h
	b.order = append(b.order, id)
	b.mu.Unlock()
	return &busRegistration{id: id, bus: b}
}

// Publish delivers ev to every subscriber and reports whether any consumed it.
func (b *Bus) Publish(ev Event) bool {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		handlers = append(handlers, b.subs[id])
	}
	b.mu.RUnlock()

	consumed := false
	for _, h := range handlers {
		if h(ev) {
			consumed = true
		}
	}
	return consumed
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Bus) remove(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[id]; !ok {
		return
	}
	delete(b.subs, id)
	for i, o := range b.order {
		if o == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

type busRegistration struct {
	id  uuid.UUID
	bus *Bus
}

// ID identifies the subscription.
func (r *busRegistration) ID() uuid.UUID { return r.id }

func (r *busRegistration) Cancel() { r.bus.remove(r.id) }
