package handlers

import (
	"io"
	"net/http"

	"todos-backend/application/commands"
	"todos-backend/application/commands/bus"
	"todos-backend/application/queries"
	querybus "todos-backend/application/queries/bus"
	"todos-backend/domain/core/entities"
	"todos-backend/domain/core/valueobjects"
	"todos-backend/pkg/common"
	pkgerrors "todos-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxBodyBytes bounds the create request body
const maxBodyBytes = 64 << 10

// TodoHandler handles todo-related HTTP requests
type TodoHandler struct {
	commandBus   *bus.CommandBus
	queryBus     *querybus.QueryBus
	errorHandler *pkgerrors.ErrorHandler
	logger       *zap.Logger
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *TodoHandler {
	return &TodoHandler{
		commandBus:   commandBus,
		queryBus:     queryBus,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// ListTodos handles GET /todos
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	userID := common.UserIDOrAnonymous(r.Context())

	result, err := h.queryBus.Ask(r.Context(), queries.ListTodosQuery{UserID: userID})
	if err != nil {
		h.fail(w, r, err, userID, "")
		return
	}

	h.respond(w, result)
}

// GetTodo handles GET /todos/{id}
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	userID := common.UserIDOrAnonymous(r.Context())
	id, ok := h.todoID(w, r)
	if !ok {
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetTodoQuery{UserID: userID, TodoID: id})
	if err != nil {
		h.fail(w, r, err, userID, id.String())
		return
	}

	h.respond(w, result)
}

// CreateTodo handles POST /todos
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	userID := common.UserIDOrAnonymous(r.Context())

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(entities.MsgInvalidDraft).
			WithCode(pkgerrors.CodeInvalidBody).
			WithCause(err))
		return
	}

	draft, err := entities.ParseDraftTodo(body)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.CreateTodoCommand{
		UserID:    userID,
		TodoID:    valueobjects.NewTodoID(),
		Name:      draft.Name,
		Completed: draft.IsCompleted(),
	})
	if err != nil {
		h.fail(w, r, err, userID, "")
		return
	}

	h.respond(w, queries.NewTodoView(result.(*entities.Todo)))
}

// DeleteTodo handles DELETE /todos/{id}
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	userID := common.UserIDOrAnonymous(r.Context())
	id, ok := h.todoID(w, r)
	if !ok {
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.DeleteTodoCommand{UserID: userID, TodoID: id})
	if err != nil {
		h.fail(w, r, err, userID, id.String())
		return
	}

	h.respond(w, result)
}

// ToggleTodo handles PUT /todos/{id}
func (h *TodoHandler) ToggleTodo(w http.ResponseWriter, r *http.Request) {
	userID := common.UserIDOrAnonymous(r.Context())
	id, ok := h.todoID(w, r)
	if !ok {
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.ToggleTodoCommand{UserID: userID, TodoID: id})
	if err != nil {
		h.fail(w, r, err, userID, id.String())
		return
	}

	h.respond(w, queries.NewTodoView(result.(*entities.Todo)))
}

// todoID parses the path id, answering the request itself when it is malformed
func (h *TodoHandler) todoID(w http.ResponseWriter, r *http.Request) (valueobjects.TodoID, bool) {
	id, err := valueobjects.ParseTodoID(chi.URLParam(r, "id"))
	if err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewInvalidIDError().WithCause(err))
		return valueobjects.TodoID{}, false
	}
	return id, true
}

func (h *TodoHandler) fail(w http.ResponseWriter, r *http.Request, err error, userID, todoID string) {
	h.logger.Debug("Todo request failed",
		zap.String("userID", userID),
		zap.String("todoID", todoID),
		zap.Error(err),
	)
	h.errorHandler.Handle(w, r, err)
}

func (h *TodoHandler) respond(w http.ResponseWriter, data interface{}) {
	if err := common.RespondData(w, data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
