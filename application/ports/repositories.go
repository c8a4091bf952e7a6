package ports

import (
	"context"
	"errors"
	"time"

	"todos-backend/domain/core/entities"
	"todos-backend/domain/core/valueobjects"
	"todos-backend/domain/events"
)

// Repository errors. Implementations wrap them with %w.
var (
	ErrTodoNotFound    = errors.New("todo not found")
	ErrConditionFailed = errors.New("condition failed")
	ErrMalformedItem   = errors.New("malformed todo item")
)

// TodoRepository defines the interface for todo persistence.
// Every operation is scoped to one user; a todo owned by another user is invisible.
type TodoRepository interface {
	// ListByUser retrieves every todo of a user, reading all pages
	ListByUser(ctx context.Context, userID string) ([]*entities.Todo, error)

	// Get retrieves one todo or returns ErrTodoNotFound
	Get(ctx context.Context, userID string, id valueobjects.TodoID) (*entities.Todo, error)

	// Create stores a new todo, returning ErrConditionFailed if the key is taken
	Create(ctx context.Context, todo *entities.Todo) error

	// Delete removes a todo. Deleting a missing todo succeeds.
	Delete(ctx context.Context, userID string, id valueobjects.TodoID) error

	// SetCompleted writes completed = !expected only while the stored value still
	// equals expected, and returns the stored todo after the write.
	// A missing todo or a changed value yields ErrConditionFailed.
	SetCompleted(ctx context.Context, userID string, id valueobjects.TodoID, expected bool, updatedAt time.Time) (*entities.Todo, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
