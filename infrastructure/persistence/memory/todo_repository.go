package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"todos-backend/application/ports"
	"todos-backend/domain/core/entities"
	"todos-backend/domain/core/valueobjects"
	"todos-backend/infrastructure/persistence/singletable"
	"todos-backend/pkg/utils"
)

// TodoRepository is an in-memory implementation of ports.TodoRepository.
// Items are kept in their stored form under the same keys the table uses,
// so reads go through the same decoding as the DynamoDB repository.
type TodoRepository struct {
	mu    sync.RWMutex
	items map[string]singletable.TodoItem
}

// NewTodoRepository creates an empty in-memory repository
func NewTodoRepository() *TodoRepository {
	return &TodoRepository{
		items: make(map[string]singletable.TodoItem),
	}
}

var _ ports.TodoRepository = (*TodoRepository)(nil)

func itemKey(pk, sk string) string {
	return pk + "|" + sk
}

// ListByUser returns the user's todos ordered by sort key
func (r *TodoRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pk := singletable.UserPK(userID)

	r.mu.RLock()
	matched := make([]singletable.TodoItem, 0)
	for _, item := range r.items {
		if item.PK == pk && strings.HasPrefix(item.SK, singletable.TodoPrefix) {
			matched = append(matched, item)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].SK < matched[j].SK })

	todos := make([]*entities.Todo, 0, len(matched))
	for _, item := range matched {
		todo, err := item.ToTodo()
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, nil
}

// Get retrieves one todo by its composite key
func (r *TodoRepository) Get(ctx context.Context, userID string, id valueobjects.TodoID) (*entities.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pk, sk := singletable.TodoKey(userID, id)

	r.mu.RLock()
	item, ok := r.items[itemKey(pk, sk)]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrTodoNotFound, id)
	}
	return item.ToTodo()
}

// Create stores a todo unless its key is already taken
func (r *TodoRepository) Create(ctx context.Context, todo *entities.Todo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	item := singletable.NewTodoItem(todo)
	key := itemKey(item.PK, item.SK)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[key]; exists {
		return fmt.Errorf("%w: %s already exists", ports.ErrConditionFailed, todo.ID())
	}
	r.items[key] = item
	return nil
}

// Delete removes a todo; a missing key is not an error
func (r *TodoRepository) Delete(ctx context.Context, userID string, id valueobjects.TodoID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pk, sk := singletable.TodoKey(userID, id)

	r.mu.Lock()
	delete(r.items, itemKey(pk, sk))
	r.mu.Unlock()
	return nil
}

// SetCompleted applies the conditional toggle write atomically
func (r *TodoRepository) SetCompleted(ctx context.Context, userID string, id valueobjects.TodoID, expected bool, updatedAt time.Time) (*entities.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pk, sk := singletable.TodoKey(userID, id)
	key := itemKey(pk, sk)

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[key]
	if !ok || item.Completed == nil || *item.Completed != expected {
		return nil, fmt.Errorf("%w: %s no longer has completed=%t", ports.ErrConditionFailed, id, expected)
	}

	next := !expected
	item.Completed = &next
	item.UpdatedAt = utils.FormatTimestamp(updatedAt)
	r.items[key] = item

	return item.ToTodo()
}

// Seed stores a raw item as-is, bypassing every check
func (r *TodoRepository) Seed(item singletable.TodoItem) {
	r.mu.Lock()
	r.items[itemKey(item.PK, item.SK)] = item
	r.mu.Unlock()
}
