package queries

import (
	"todos-backend/domain/core/entities"
	"todos-backend/domain/core/valueobjects"
	pkgerrors "todos-backend/pkg/errors"
	"todos-backend/pkg/utils"
)

// ListTodosQuery represents a query for every todo of a user
type ListTodosQuery struct {
	UserID string
}

// Validate validates the ListTodosQuery
func (q ListTodosQuery) Validate() error {
	if q.UserID == "" {
		return pkgerrors.NewValidationError("user ID is required")
	}
	return nil
}

// GetTodoQuery represents a query to get a single todo
type GetTodoQuery struct {
	UserID string
	TodoID valueobjects.TodoID
}

// Validate validates the GetTodoQuery
func (q GetTodoQuery) Validate() error {
	if q.UserID == "" {
		return pkgerrors.NewValidationError("user ID is required")
	}
	if q.TodoID.IsZero() {
		return pkgerrors.NewInvalidIDError()
	}
	return nil
}

// TodoView is the client-facing representation of a todo. The owner is never exposed.
type TodoView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// NewTodoView maps a todo onto its view
func NewTodoView(todo *entities.Todo) TodoView {
	view := TodoView{
		ID:        todo.ID().String(),
		Name:      todo.Name(),
		Completed: todo.Completed(),
	}
	if updatedAt := todo.UpdatedAt(); !updatedAt.IsZero() {
		view.UpdatedAt = utils.FormatTimestamp(updatedAt)
	}
	return view
}

// NewTodoViews maps a list of todos, never returning nil
func NewTodoViews(todos []*entities.Todo) []TodoView {
	views := make([]TodoView, 0, len(todos))
	for _, todo := range todos {
		views = append(views, NewTodoView(todo))
	}
	return views
}
