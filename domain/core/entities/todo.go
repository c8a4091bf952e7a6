package entities

import (
	"time"

	"todos-backend/domain/core/valueobjects"
	"todos-backend/domain/events"
	pkgerrors "todos-backend/pkg/errors"
	"todos-backend/pkg/utils"
)

// Todo is a single item on a user's todo list
type Todo struct {
	id        valueobjects.TodoID
	userID    string
	name      string
	completed bool
	updatedAt time.Time

	// Domain events that occurred during this aggregate's lifetime
	events []events.DomainEvent
}

// TodoModel is the shape every stored todo must satisfy
type TodoModel struct {
	ID        string `validate:"required,uuid4_rfc4122"`
	UserID    string `validate:"required"`
	Name      string `validate:"required,min=1"`
	Completed bool
}

// NewTodo creates a todo from an accepted draft.
// The id is assigned by the caller so that retries of the same command stay idempotent.
func NewTodo(id valueobjects.TodoID, userID string, draft DraftTodo) (*Todo, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewInvalidIDError()
	}
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if draft.Name == "" {
		return nil, pkgerrors.NewValidationError(MsgInvalidDraft).WithCode(pkgerrors.CodeInvalidBody)
	}

	now := utils.NowUTC()
	todo := &Todo{
		id:        id,
		userID:    userID,
		name:      draft.Name,
		completed: draft.IsCompleted(),
		updatedAt: now,
		events:    []events.DomainEvent{},
	}

	todo.addEvent(events.NewTodoCreated(id.String(), userID, todo.name, todo.completed, now))

	return todo, nil
}

// ReconstructTodo rebuilds a todo from persisted state without raising events
func ReconstructTodo(
	id valueobjects.TodoID,
	userID string,
	name string,
	completed bool,
	updatedAt time.Time,
) (*Todo, error) {
	todo := &Todo{
		id:        id,
		userID:    userID,
		name:      name,
		completed: completed,
		updatedAt: updatedAt,
		events:    []events.DomainEvent{},
	}

	if err := todo.Validate(); err != nil {
		return nil, err
	}

	return todo, nil
}

// ID returns the todo's unique identifier
func (t *Todo) ID() valueobjects.TodoID {
	return t.id
}

// UserID returns the owner's ID
func (t *Todo) UserID() string {
	return t.userID
}

// Name returns the todo's text
func (t *Todo) Name() string {
	return t.name
}

// Completed reports whether the todo is done
func (t *Todo) Completed() bool {
	return t.completed
}

// UpdatedAt returns the time of the last write
func (t *Todo) UpdatedAt() time.Time {
	return t.updatedAt
}

// Toggle flips the completion flag and returns the value it had before
func (t *Todo) Toggle(at time.Time) bool {
	previous := t.completed
	t.completed = !previous
	t.updatedAt = at

	t.addEvent(events.NewTodoToggled(t.id.String(), t.userID, t.completed, at))

	return previous
}

// Validate checks that the todo has the stored TodoModel shape
func (t *Todo) Validate() error {
	model := TodoModel{
		ID:        t.id.String(),
		UserID:    t.userID,
		Name:      t.name,
		Completed: t.completed,
	}
	if err := utils.ValidateStruct(model); err != nil {
		return pkgerrors.NewValidationError(MsgInvalidItem).
			WithCode(pkgerrors.CodeBadItem).
			WithCause(err)
	}
	return nil
}

// GetUncommittedEvents returns events that haven't been persisted
func (t *Todo) GetUncommittedEvents() []events.DomainEvent {
	return t.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (t *Todo) MarkEventsAsCommitted() {
	t.events = []events.DomainEvent{}
}

// RecordDeleted raises the deletion event for a todo id
func RecordDeleted(id valueobjects.TodoID, userID string) events.DomainEvent {
	return events.NewTodoDeleted(id.String(), userID, utils.NowUTC())
}

func (t *Todo) addEvent(event events.DomainEvent) {
	t.events = append(t.events, event)
}
