package handlers

import (
	"context"
	"errors"

	"todos-backend/application/ports"
	"todos-backend/application/queries"
	"todos-backend/application/queries/bus"
	"todos-backend/domain/core/entities"
	pkgerrors "todos-backend/pkg/errors"

	"go.uber.org/zap"
)

// MsgCouldNotLoad is returned when a listing contains an unreadable item
const MsgCouldNotLoad = "Could not load items"

// ListTodosHandler handles ListTodosQuery
type ListTodosHandler struct {
	todoRepo ports.TodoRepository
	logger   *zap.Logger
}

// NewListTodosHandler creates a new list handler
func NewListTodosHandler(todoRepo ports.TodoRepository, logger *zap.Logger) *ListTodosHandler {
	return &ListTodosHandler{todoRepo: todoRepo, logger: logger}
}

// Handle returns every todo of the user. One malformed item fails the whole listing.
func (h *ListTodosHandler) Handle(ctx context.Context, query queries.ListTodosQuery) ([]queries.TodoView, error) {
	todos, err := h.todoRepo.ListByUser(ctx, query.UserID)
	if err != nil {
		if errors.Is(err, ports.ErrMalformedItem) {
			h.logger.Error("Listing contains a malformed todo",
				zap.String("userID", query.UserID),
				zap.Error(err),
			)
			return nil, pkgerrors.NewInternalError(MsgCouldNotLoad).
				WithCode(pkgerrors.CodeBadItem).
				WithCause(err)
		}
		return nil, pkgerrors.Wrap(err, "failed to list todos")
	}

	return queries.NewTodoViews(todos), nil
}

// GetTodoHandler handles GetTodoQuery
type GetTodoHandler struct {
	todoRepo ports.TodoRepository
	logger   *zap.Logger
}

// NewGetTodoHandler creates a new get handler
func NewGetTodoHandler(todoRepo ports.TodoRepository, logger *zap.Logger) *GetTodoHandler {
	return &GetTodoHandler{todoRepo: todoRepo, logger: logger}
}

// Handle returns a single todo
func (h *GetTodoHandler) Handle(ctx context.Context, query queries.GetTodoQuery) (*queries.TodoView, error) {
	todo, err := h.todoRepo.Get(ctx, query.UserID, query.TodoID)
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrTodoNotFound):
			return nil, pkgerrors.NewNotFoundError(entities.MsgInvalidItem).WithCause(err)
		case errors.Is(err, ports.ErrMalformedItem):
			h.logger.Error("Stored todo is malformed",
				zap.String("userID", query.UserID),
				zap.String("todoID", query.TodoID.String()),
				zap.Error(err),
			)
			return nil, pkgerrors.NewValidationError(entities.MsgInvalidItem).
				WithCode(pkgerrors.CodeBadItem).
				WithCause(err)
		default:
			return nil, pkgerrors.Wrap(err, "failed to get todo")
		}
	}

	view := queries.NewTodoView(todo)
	return &view, nil
}

// Register wires the todo query handlers into the bus
func Register(queryBus *bus.QueryBus, list *ListTodosHandler, get *GetTodoHandler) error {
	if err := queryBus.Register(queries.ListTodosQuery{}, bus.QueryHandlerFunc(func(ctx context.Context, q bus.Query) (interface{}, error) {
		return list.Handle(ctx, q.(queries.ListTodosQuery))
	})); err != nil {
		return err
	}

	return queryBus.Register(queries.GetTodoQuery{}, bus.QueryHandlerFunc(func(ctx context.Context, q bus.Query) (interface{}, error) {
		return get.Handle(ctx, q.(queries.GetTodoQuery))
	}))
}
