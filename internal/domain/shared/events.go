// Package shared contains common domain types, errors, and events that are
// used across all domain packages.
package shared

import (
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Each event represents something significant that
// happened in the domain and is relayed to subscribers (metrics, the
// realtime notification layer).
const (
	// Profile lifecycle events
	EventProfileRegistered  EventType = "profile.registered"
	EventProfileUpdated     EventType = "profile.updated"
	EventProfileDeactivated EventType = "profile.deactivated"

	// Preference events
	EventPreferencesUpdated EventType = "profile.preferences_updated"
	EventRoomDetailsUpdated EventType = "profile.room_details_updated"

	// Interaction events
	EventProfileViewed  EventType = "profile.viewed"
	EventProfileSaved   EventType = "profile.saved"
	EventProfileUnsaved EventType = "profile.unsaved"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		AggregateId: aggregateID,
	}
}

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventBus dispatches domain events to subscribed handlers.
type EventBus interface {
	// Subscribe registers a handler for a specific event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all event types.
	SubscribeAll(handler EventHandler) error

	// Publish dispatches an event to all matching handlers.
	Publish(event Event) error

	// Close shuts the bus down and waits for in-flight handlers.
	Close() error
}
