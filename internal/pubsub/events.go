// Package pubsub fans typed events out to any number of subscribers. The log
// pane and the file watcher publish through it and the bubbletea host listens.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened.
type EventType string

const (
	// Logged carries a new log entry.
	Logged EventType = "logged"
	// Changed reports that a watched file was written.
	Changed EventType = "changed"
	// Removed reports that a watched file was deleted or renamed away.
	Removed EventType = "removed"
	// Failed reports an error from the publisher itself.
	Failed EventType = "failed"
)

// Event is one published payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out event channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher accepts events.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
