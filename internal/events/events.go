package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventTaskCompleted is emitted when a task transitions to done.
const EventTaskCompleted = "task_completed"

// Event is a lifecycle notification. The payload is serialized JSON so
// emitters and handlers share no concrete types beyond this package.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type names the lifecycle moment, e.g. EventTaskCompleted
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload.
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// TaskCompletedPayload is the payload carried by EventTaskCompleted.
type TaskCompletedPayload struct {
	// TaskID identifies the completed task
	TaskID uuid.UUID `json:"task_id"`

	// Title is the task's title at completion time
	Title string `json:"title"`

	// CompletedAt is when the transition to done happened
	CompletedAt time.Time `json:"completed_at"`
}

// NewTaskCompleted builds the event emitted when a task is completed.
func NewTaskCompleted(taskID uuid.UUID, title string, completedAt time.Time) (*Event, error) {
	return NewEvent(EventTaskCompleted, TaskCompletedPayload{
		TaskID:      taskID,
		Title:       title,
		CompletedAt: completedAt,
	})
}

// EventHandler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate actions.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *Event) error
}
