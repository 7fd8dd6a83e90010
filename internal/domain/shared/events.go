package shared

import (
	"context"
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. The agenda cache invalidator subscribes to the
// *.changed events: any mutation of a source collection must force a
// temporal-index rebuild on the next read.
const (
	// Source collection mutations
	EventScheduleChanged EventType = "schedule.changed"
	EventDeadlineChanged EventType = "deadline.changed"
	EventTaskChanged     EventType = "task.changed"
	EventSyllabusChanged EventType = "syllabus.changed"

	// Syllabus lifecycle
	EventModuleAdvanced EventType = "syllabus.module_advanced"

	// Notification delivery
	EventNotificationSent   EventType = "notification.sent"
	EventNotificationFailed EventType = "notification.failed"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced the event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// EventHandler processes published events.
type EventHandler interface {
	// Name returns a stable handler name, used for logging.
	Name() string

	// Handle processes the event.
	Handle(ctx context.Context, event Event) error
}

// EventPublisher publishes domain events after successful persistence.
type EventPublisher interface {
	Publish(event Event) error
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
}

// EventType implements Event.
func (e BaseEvent) EventType() EventType { return e.Type }

// OccurredAt implements Event.
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// AggregateID implements Event.
func (e BaseEvent) AggregateID() string { return e.AggregateId }

// NewBaseEvent creates a new base event stamped with the current time.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		AggregateId: aggregateID,
	}
}

// CollectionChangedEvent is emitted after any create/update/delete on one of
// the four source collections.
type CollectionChangedEvent struct {
	BaseEvent
	UserID     string `json:"user_id"`
	Collection string `json:"collection"` // "schedule", "assignments", "exams", "todos"
	Action     string `json:"action"`     // "created", "updated", "deleted"
}

// Payload implements Event.
func (e CollectionChangedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user_id":    e.UserID,
		"collection": e.Collection,
		"action":     e.Action,
	}
}

// NewCollectionChangedEvent creates a CollectionChangedEvent of the given type.
func NewCollectionChangedEvent(eventType EventType, aggregateID, userID, collection, action string) CollectionChangedEvent {
	return CollectionChangedEvent{
		BaseEvent:  NewBaseEvent(eventType, aggregateID),
		UserID:     userID,
		Collection: collection,
		Action:     action,
	}
}

// ModuleAdvancedEvent is emitted when a syllabus module moves to its next
// lifecycle status.
type ModuleAdvancedEvent struct {
	BaseEvent
	UserID     string `json:"user_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
}

// Payload implements Event.
func (e ModuleAdvancedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user_id":     e.UserID,
		"from_status": e.FromStatus,
		"to_status":   e.ToStatus,
	}
}

// NewModuleAdvancedEvent creates a ModuleAdvancedEvent.
func NewModuleAdvancedEvent(moduleID, userID, from, to string) ModuleAdvancedEvent {
	return ModuleAdvancedEvent{
		BaseEvent:  NewBaseEvent(EventModuleAdvanced, moduleID),
		UserID:     userID,
		FromStatus: from,
		ToStatus:   to,
	}
}
