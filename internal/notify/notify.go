// Package notify is the push side of the store: a subscription emits an
// Event whenever records of a kind change. Events carry no payload guarantee
// beyond "something of this kind changed"; Key is a hint only.
package notify

import (
	"context"
	"encoding/json"
	"time"
)

// Kind names a record kind of the store.
type Kind string

const (
	KindUsers      Kind = "users"
	KindDiscussion Kind = "discussion"
)

// EventType names what happened to a record.
type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
)

// Event is a single change notification.
type Event struct {
	Kind Kind      `json:"kind"`
	Type EventType `json:"type"`
	Key  string    `json:"key,omitempty"`
	At   time.Time `json:"at"`
}

// NewEvent creates an event stamped with the current time.
func NewEvent(kind Kind, typ EventType, key string) Event {
	return Event{Kind: kind, Type: typ, Key: key, At: time.Now().UTC()}
}

// DecodeEvent parses a JSON encoded event.
func DecodeEvent(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}

// Subscription delivers matching events until it is released.
type Subscription interface {
	// Events is closed once the subscription is released or its transport fails.
	Events() <-chan Event
	// Unsubscribe releases the subscription. Safe to call more than once.
	Unsubscribe()
}

// Channel creates subscriptions filtered by record kind and event type.
type Channel interface {
	Subscribe(ctx context.Context, kind Kind, typ EventType) (Subscription, error)
	Close() error
}

// Publisher announces a change for transports that do not observe the store
// by themselves.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// bufferSize bounds per-subscription buffering; a full buffer drops events,
// which is harmless because consumers re-fetch the whole view anyway.
const bufferSize = 64
