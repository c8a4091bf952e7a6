package commands

import (
	"todos-backend/domain/core/valueobjects"
	pkgerrors "todos-backend/pkg/errors"
)

// CreateTodoCommand represents the command to create a new todo
type CreateTodoCommand struct {
	UserID    string
	TodoID    valueobjects.TodoID
	Name      string
	Completed bool
}

// Validate validates the CreateTodoCommand
func (c CreateTodoCommand) Validate() error {
	if err := validateTarget(c.UserID, c.TodoID); err != nil {
		return err
	}
	if c.Name == "" {
		return pkgerrors.NewValidationError("name is required").WithCode(pkgerrors.CodeInvalidBody)
	}
	return nil
}

// DeleteTodoCommand represents the command to delete a todo
type DeleteTodoCommand struct {
	UserID string
	TodoID valueobjects.TodoID
}

// Validate validates the DeleteTodoCommand
func (c DeleteTodoCommand) Validate() error {
	return validateTarget(c.UserID, c.TodoID)
}

// ToggleTodoCommand represents the command to flip a todo's completed flag
type ToggleTodoCommand struct {
	UserID string
	TodoID valueobjects.TodoID
}

// Validate validates the ToggleTodoCommand
func (c ToggleTodoCommand) Validate() error {
	return validateTarget(c.UserID, c.TodoID)
}

func validateTarget(userID string, id valueobjects.TodoID) error {
	if userID == "" {
		return pkgerrors.NewValidationError("user ID is required")
	}
	if id.IsZero() {
		return pkgerrors.NewInvalidIDError()
	}
	return nil
}
