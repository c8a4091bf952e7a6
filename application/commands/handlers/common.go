package handlers

import (
	"context"
	"errors"

	"todos-backend/application/ports"
	"todos-backend/domain/core/entities"
	pkgerrors "todos-backend/pkg/errors"

	"go.uber.org/zap"
)

// translateReadError maps repository errors of a single-item read to client errors
func translateReadError(err error) error {
	switch {
	case errors.Is(err, ports.ErrTodoNotFound):
		return pkgerrors.NewNotFoundError(entities.MsgInvalidItem).WithCause(err)
	case errors.Is(err, ports.ErrMalformedItem):
		return pkgerrors.NewValidationError(entities.MsgInvalidItem).
			WithCode(pkgerrors.CodeBadItem).
			WithCause(err)
	default:
		return pkgerrors.Wrap(err, "failed to load todo")
	}
}

// publishEvents sends the todo's uncommitted events; failures are logged only
func publishEvents(ctx context.Context, publisher ports.EventPublisher, logger *zap.Logger, todo *entities.Todo) {
	pending := todo.GetUncommittedEvents()
	if len(pending) == 0 {
		return
	}

	if err := publisher.PublishBatch(ctx, pending); err != nil {
		logger.Warn("Failed to publish domain events",
			zap.String("todoID", todo.ID().String()),
			zap.Int("count", len(pending)),
			zap.Error(err),
		)
		return
	}
	todo.MarkEventsAsCommitted()
}
