package events

import "time"

// Event types published for todos
const (
	TypeTodoCreated = "todo.created"
	TypeTodoToggled = "todo.toggled"
	TypeTodoDeleted = "todo.deleted"
)

// TodoCreated is raised when a todo is created
type TodoCreated struct {
	BaseEvent
	TodoID    string `json:"todo_id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// NewTodoCreated creates a TodoCreated event
func NewTodoCreated(todoID, userID, name string, completed bool, timestamp time.Time) TodoCreated {
	return TodoCreated{
		BaseEvent: BaseEvent{
			AggregateID: todoID,
			EventType:   TypeTodoCreated,
			Timestamp:   timestamp,
			Version:     1,
		},
		TodoID:    todoID,
		UserID:    userID,
		Name:      name,
		Completed: completed,
	}
}

// TodoToggled is raised when the completion flag of a todo flips
type TodoToggled struct {
	BaseEvent
	TodoID    string `json:"todo_id"`
	UserID    string `json:"user_id"`
	Completed bool   `json:"completed"`
}

// NewTodoToggled creates a TodoToggled event
func NewTodoToggled(todoID, userID string, completed bool, timestamp time.Time) TodoToggled {
	return TodoToggled{
		BaseEvent: BaseEvent{
			AggregateID: todoID,
			EventType:   TypeTodoToggled,
			Timestamp:   timestamp,
			Version:     1,
		},
		TodoID:    todoID,
		UserID:    userID,
		Completed: completed,
	}
}

// TodoDeleted is raised when a todo is deleted.
// Deleting a missing todo still raises it.
type TodoDeleted struct {
	BaseEvent
	TodoID string `json:"todo_id"`
	UserID string `json:"user_id"`
}

// NewTodoDeleted creates a TodoDeleted event
func NewTodoDeleted(todoID, userID string, timestamp time.Time) TodoDeleted {
	return TodoDeleted{
		BaseEvent: BaseEvent{
			AggregateID: todoID,
			EventType:   TypeTodoDeleted,
			Timestamp:   timestamp,
			Version:     1,
		},
		TodoID: todoID,
		UserID: userID,
	}
}
