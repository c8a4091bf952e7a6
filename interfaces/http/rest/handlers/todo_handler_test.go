package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"todos-backend/application/commands/bus"
	commandhandlers "todos-backend/application/commands/handlers"
	"todos-backend/application/ports"
	"todos-backend/application/ports/mocks"
	querybus "todos-backend/application/queries/bus"
	queryhandlers "todos-backend/application/queries/handlers"
	"todos-backend/infrastructure/messaging/eventbridge"
	"todos-backend/infrastructure/persistence/memory"
	"todos-backend/pkg/common"
	pkgerrors "todos-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type todoBody struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	UpdatedAt string `json:"updatedAt"`
	UserID    string `json:"userId"`
}

func newTestRouter(t *testing.T, repo ports.TodoRepository, mode pkgerrors.StatusMode) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	publisher := eventbridge.NewNopPublisher(logger)

	commandBus := bus.NewCommandBus()
	require.NoError(t, commandhandlers.Register(
		commandBus,
		commandhandlers.NewCreateTodoHandler(repo, publisher, logger),
		commandhandlers.NewDeleteTodoHandler(repo, publisher, logger),
		commandhandlers.NewToggleTodoHandler(repo, publisher, 0, logger),
	))

	queryBus := querybus.NewQueryBus()
	require.NoError(t, queryhandlers.Register(
		queryBus,
		queryhandlers.NewListTodosHandler(repo, logger),
		queryhandlers.NewGetTodoHandler(repo, logger),
	))

	handler := NewTodoHandler(commandBus, queryBus, pkgerrors.NewErrorHandler(logger, mode, false), logger)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()
			if user := req.Header.Get("X-User-ID"); user != "" {
				ctx = common.WithUserID(ctx, user)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Get("/todos", handler.ListTodos)
	r.Post("/todos", handler.CreateTodo)
	r.Get("/todos/{id}", handler.GetTodo)
	r.Delete("/todos/{id}", handler.DeleteTodo)
	r.Put("/todos/{id}", handler.ToggleTodo)
	return r
}

func do(router http.Handler, method, path, user, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	return envelope.Data
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body pkgerrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.Error
}

func TestTodoHandler_RoundTrip(t *testing.T) {
	router := newTestRouter(t, memory.NewTodoRepository(), pkgerrors.StatusModeCompat)

	rec := do(router, http.MethodPost, "/todos", "alice", `{"name":"buy milk","completed":false}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decodeData[todoBody](t, rec)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "buy milk", created.Name)
	assert.False(t, created.Completed)
	assert.NotEmpty(t, created.UpdatedAt)
	assert.Empty(t, created.UserID)

	t.Run("Should return the created todo", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/todos/"+created.ID, "alice", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, created, decodeData[todoBody](t, rec))
	})

	t.Run("Should toggle back and forth", func(t *testing.T) {
		rec := do(router, http.MethodPut, "/todos/"+created.ID, "alice", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.True(t, decodeData[todoBody](t, rec).Completed)

		rec = do(router, http.MethodPut, "/todos/"+created.ID, "alice", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.False(t, decodeData[todoBody](t, rec).Completed)
	})

	t.Run("Should delete idempotently", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			rec := do(router, http.MethodDelete, "/todos/"+created.ID, "alice", "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, decodeData[bool](t, rec))
		}

		rec := do(router, http.MethodGet, "/todos/"+created.ID, "alice", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Item is not a todo", decodeError(t, rec))
	})
}

func TestTodoHandler_ListTodos(t *testing.T) {
	router := newTestRouter(t, memory.NewTodoRepository(), pkgerrors.StatusModeCompat)

	t.Run("Should return an empty array for a new user", func(t *testing.T) {
		rec := do(router, http.MethodGet, "/todos", "nobody", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
	})

	t.Run("Should only return the caller's todos", func(t *testing.T) {
		do(router, http.MethodPost, "/todos", "alice", `{"name":"a1","completed":false}`)
		do(router, http.MethodPost, "/todos", "alice", `{"name":"a2","completed":true}`)
		do(router, http.MethodPost, "/todos", "bob", `{"name":"b1","completed":false}`)

		rec := do(router, http.MethodGet, "/todos", "alice", "")
		require.Equal(t, http.StatusOK, rec.Code)
		todos := decodeData[[]todoBody](t, rec)
		require.Len(t, todos, 2)
		for _, todo := range todos {
			assert.Contains(t, []string{"a1", "a2"}, todo.Name)
		}

		rec = do(router, http.MethodGet, "/todos", "bob", "")
		assert.Len(t, decodeData[[]todoBody](t, rec), 1)
	})

	t.Run("Should scope anonymous callers to their own partition", func(t *testing.T) {
		do(router, http.MethodPost, "/todos", "", `{"name":"anon","completed":false}`)

		rec := do(router, http.MethodGet, "/todos", common.AnonymousUserID, "")
		todos := decodeData[[]todoBody](t, rec)
		require.Len(t, todos, 1)
		assert.Equal(t, "anon", todos[0].Name)
	})
}

func TestTodoHandler_RejectsBeforeStore(t *testing.T) {
	// The mock has no expectations: any store call fails the test.
	repo := new(mocks.MockTodoRepository)
	router := newTestRouter(t, repo, pkgerrors.StatusModeTyped)

	bodies := map[string]string{
		"Should reject a client supplied id":  `{"id":"7d0f1c4e-3b4a-4f5e-9a6b-0c1d2e3f4a5b","name":"x","completed":false}`,
		"Should reject a null id":             `{"id":null,"name":"x","completed":false}`,
		"Should reject a missing name":        `{"completed":false}`,
		"Should reject an empty name":         `{"name":"","completed":false}`,
		"Should reject a missing completed":   `{"name":"x"}`,
		"Should reject a non-boolean flag":    `{"name":"x","completed":"yes"}`,
		"Should reject a non-string name":     `{"name":42,"completed":false}`,
		"Should reject a non-object body":     `[1,2,3]`,
		"Should reject malformed json":        `{"name":`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			rec := do(router, http.MethodPost, "/todos", "alice", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Request body is not a valid todo", decodeError(t, rec))
		})
	}

	for _, method := range []string{http.MethodGet, http.MethodDelete, http.MethodPut} {
		t.Run("Should reject a non-UUID id for "+method, func(t *testing.T) {
			rec := do(router, method, "/todos/not-a-uuid", "alice", "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "id is not a valid UUID", decodeError(t, rec))
		})
	}

	repo.AssertNotCalled(t, "Create")
	repo.AssertNotCalled(t, "Get")
	repo.AssertNotCalled(t, "Delete")
	repo.AssertNotCalled(t, "SetCompleted")
}

func TestTodoHandler_CompatStatus(t *testing.T) {
	router := newTestRouter(t, memory.NewTodoRepository(), pkgerrors.StatusModeCompat)

	t.Run("Should answer validation failures with 500", func(t *testing.T) {
		rec := do(router, http.MethodPost, "/todos", "alice", `{"name":"x"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Request body is not a valid todo", decodeError(t, rec))
	})

	t.Run("Should answer toggling a missing todo with 500", func(t *testing.T) {
		rec := do(router, http.MethodPut, "/todos/7d0f1c4e-3b4a-4f5e-9a6b-0c1d2e3f4a5b", "alice", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestTodoHandler_TypedNotFound(t *testing.T) {
	router := newTestRouter(t, memory.NewTodoRepository(), pkgerrors.StatusModeTyped)

	rec := do(router, http.MethodGet, "/todos/7d0f1c4e-3b4a-4f5e-9a6b-0c1d2e3f4a5b", "alice", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Item is not a todo", decodeError(t, rec))
}
