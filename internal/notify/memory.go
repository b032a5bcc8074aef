package notify

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrClosed is returned when subscribing to or publishing on a closed bus.
var ErrClosed = errors.New("notify: channel closed")

// MemoryBus is an in-process Channel and Publisher. It is used when the
// store cannot push changes itself and in tests.
type MemoryBus struct {
	mu     sync.RWMutex
	subs   map[string]*memorySubscription
	closed bool
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[string]*memorySubscription)}
}

type memorySubscription struct {
	id   string
	kind Kind
	typ  EventType
	ch   chan Event
	bus  *MemoryBus
	once sync.Once
}

func (s *memorySubscription) Events() <-chan Event { return s.ch }

func (s *memorySubscription) Unsubscribe() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs, s.id)
		s.bus.mu.Unlock()
		close(s.ch)
	})
}

func (b *MemoryBus) Subscribe(ctx context.Context, kind Kind, typ EventType) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}
	s := &memorySubscription{
		id:   uuid.NewString(),
		kind: kind,
		typ:  typ,
		ch:   make(chan Event, bufferSize),
		bus:  b,
	}
	b.subs[s.id] = s
	return s, nil
}

// Publish delivers e to every matching subscription without blocking.
func (b *MemoryBus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrClosed
	}
	for _, s := range b.subs {
		if s.kind != e.Kind || s.typ != e.Type {
			continue
		}
		select {
		case s.ch <- e:
		default:
		}
	}
	return nil
}

// Subscribers reports the number of live subscriptions.
func (b *MemoryBus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close releases every subscription. Further calls are no-ops.
func (b *MemoryBus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	subs := make([]*memorySubscription, 0, len(b.subs))
	for _, s := range b.subs {
		subs = append(subs, s)
	}
	b.mu.Unlock()

	for _, s := range subs {
		s.Unsubscribe()
	}
	return nil
}
