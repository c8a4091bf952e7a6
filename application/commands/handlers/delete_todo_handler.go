package handlers

import (
	"context"

	"todos-backend/application/commands"
	"todos-backend/application/ports"
	"todos-backend/domain/core/entities"
	pkgerrors "todos-backend/pkg/errors"

	"go.uber.org/zap"
)

// DeleteTodoHandler handles todo deletion commands
type DeleteTodoHandler struct {
	todoRepo  ports.TodoRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewDeleteTodoHandler creates a new delete todo handler
func NewDeleteTodoHandler(todoRepo ports.TodoRepository, publisher ports.EventPublisher, logger *zap.Logger) *DeleteTodoHandler {
	return &DeleteTodoHandler{
		todoRepo:  todoRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the delete todo command. Deleting a missing todo succeeds.
func (h *DeleteTodoHandler) Handle(ctx context.Context, cmd commands.DeleteTodoCommand) (bool, error) {
	if err := h.todoRepo.Delete(ctx, cmd.UserID, cmd.TodoID); err != nil {
		return false, pkgerrors.Wrap(err, "failed to delete todo")
	}

	if err := h.publisher.Publish(ctx, entities.RecordDeleted(cmd.TodoID, cmd.UserID)); err != nil {
		h.logger.Warn("Failed to publish deletion event",
			zap.String("todoID", cmd.TodoID.String()),
			zap.Error(err),
		)
	}

	h.logger.Info("Todo deleted",
		zap.String("userID", cmd.UserID),
		zap.String("todoID", cmd.TodoID.String()),
	)

	return true, nil
}
