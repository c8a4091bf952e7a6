package handlers

import (
	"context"
	"errors"

	"todos-backend/application/commands"
	"todos-backend/application/ports"
	"todos-backend/domain/core/entities"
	pkgerrors "todos-backend/pkg/errors"
	"todos-backend/pkg/utils"

	"go.uber.org/zap"
)

// MsgNoMatchingTodo is returned when a toggle lost its race
const MsgNoMatchingTodo = "No matching todo"

// ToggleTodoHandler flips the completed flag with a read followed by a conditional write
type ToggleTodoHandler struct {
	todoRepo   ports.TodoRepository
	publisher  ports.EventPublisher
	maxRetries int
	logger     *zap.Logger
}

// NewToggleTodoHandler creates a new toggle handler.
// maxRetries is the number of extra read-write rounds after a lost race; 0 reports the conflict.
func NewToggleTodoHandler(todoRepo ports.TodoRepository, publisher ports.EventPublisher, maxRetries int, logger *zap.Logger) *ToggleTodoHandler {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &ToggleTodoHandler{
		todoRepo:   todoRepo,
		publisher:  publisher,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// Handle executes the toggle command
func (h *ToggleTodoHandler) Handle(ctx context.Context, cmd commands.ToggleTodoCommand) (*entities.Todo, error) {
	for attempt := 0; ; attempt++ {
		current, err := h.todoRepo.Get(ctx, cmd.UserID, cmd.TodoID)
		if err != nil {
			return nil, translateReadError(err)
		}

		previous := current.Toggle(utils.NowUTC())

		updated, err := h.todoRepo.SetCompleted(ctx, cmd.UserID, cmd.TodoID, previous, current.UpdatedAt())
		if err == nil {
			publishEvents(ctx, h.publisher, h.logger, current)
			return updated, nil
		}

		if !errors.Is(err, ports.ErrConditionFailed) {
			return nil, translateReadError(err)
		}

		if attempt >= h.maxRetries {
			h.logger.Info("Toggle lost a concurrent update",
				zap.String("userID", cmd.UserID),
				zap.String("todoID", cmd.TodoID.String()),
				zap.Int("attempts", attempt+1),
			)
			return nil, pkgerrors.NewConflictError(MsgNoMatchingTodo).WithCause(err)
		}

		h.logger.Debug("Retrying toggle",
			zap.String("todoID", cmd.TodoID.String()),
			zap.Int("attempt", attempt+1),
		)
	}
}
