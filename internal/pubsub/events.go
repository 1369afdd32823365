// Package pubsub provides a generic publish/subscribe event system.
package pubsub

import (
	"context"
	"time"
)

// EventType classifies what happened to the stream a broker carries.
type EventType string

const (
	// EntryEvent marks a new item appended to the stream.
	EntryEvent EventType = "entry"
	// ClearedEvent marks the stream history being discarded.
	ClearedEvent EventType = "cleared"
	// ShutdownEvent marks the publishing side going away.
	ShutdownEvent EventType = "shutdown"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
