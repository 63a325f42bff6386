// Package events provides the in-process auth change notification bus.
package events

import (
	"sync"
	"time"

	"seyone-academy-go/internal/model"
)

// Kind names an auth state change.
type Kind string

const (
	KindRegistered Kind = "registered"
	KindLoggedIn   Kind = "logged_in"
	KindLoggedOut  Kind = "logged_out"
)

// Event describes a change of one client's session marker.
// User is nil for KindLoggedOut.
type Event struct {
	Kind     Kind                 `json:"kind"`
	ClientID string               `json:"clientId"`
	User     *model.SessionMarker `json:"user"`
	At       time.Time            `json:"at"`
}

// Handler receives published events.
type Handler func(Event)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus delivers events synchronously to every subscriber in subscription order.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h and returns a function that removes it.
// The returned function is safe to call more than once.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, handler: h})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.subs {
				if s.id == id {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish calls every current subscriber before returning. Handlers may
// subscribe or unsubscribe without deadlocking; such changes apply to the
// next Publish.
func (b *Bus) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	b.mu.RLock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(e)
	}
}
