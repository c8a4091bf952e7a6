package handlers

import (
	"context"
	"errors"

	"todos-backend/application/commands"
	"todos-backend/application/ports"
	"todos-backend/domain/core/entities"
	pkgerrors "todos-backend/pkg/errors"

	"go.uber.org/zap"
)

// CreateTodoHandler handles the CreateTodoCommand
type CreateTodoHandler struct {
	todoRepo  ports.TodoRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewCreateTodoHandler creates a new handler instance
func NewCreateTodoHandler(todoRepo ports.TodoRepository, publisher ports.EventPublisher, logger *zap.Logger) *CreateTodoHandler {
	return &CreateTodoHandler{
		todoRepo:  todoRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the create todo command
func (h *CreateTodoHandler) Handle(ctx context.Context, cmd commands.CreateTodoCommand) (*entities.Todo, error) {
	completed := cmd.Completed
	todo, err := entities.NewTodo(cmd.TodoID, cmd.UserID, entities.DraftTodo{
		Name:      cmd.Name,
		Completed: &completed,
	})
	if err != nil {
		return nil, err
	}

	if err := h.todoRepo.Create(ctx, todo); err != nil {
		if errors.Is(err, ports.ErrConditionFailed) {
			return nil, pkgerrors.NewConflictError("Todo already exists").WithCause(err)
		}
		return nil, pkgerrors.Wrap(err, "failed to create todo")
	}

	publishEvents(ctx, h.publisher, h.logger, todo)

	h.logger.Info("Todo created",
		zap.String("userID", cmd.UserID),
		zap.String("todoID", todo.ID().String()),
	)

	return todo, nil
}
