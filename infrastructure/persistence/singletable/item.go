package singletable

import (
	"fmt"
	"time"

	"todos-backend/application/ports"
	"todos-backend/domain/core/entities"
	"todos-backend/domain/core/valueobjects"
	"todos-backend/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TodoItem is the stored form of a todo.
// Name and Completed are pointers so that absent attributes are detectable.
type TodoItem struct {
	PK         string  `dynamodbav:"PK"`
	SK         string  `dynamodbav:"SK"`
	ID         string  `dynamodbav:"id"`
	UserID     string  `dynamodbav:"userId"`
	Name       *string `dynamodbav:"name"`
	Completed  *bool   `dynamodbav:"completed"`
	UpdatedAt  string  `dynamodbav:"updatedAt,omitempty"`
	EntityType string  `dynamodbav:"entityType,omitempty"`
}

// NewTodoItem maps a todo onto its stored form
func NewTodoItem(todo *entities.Todo) TodoItem {
	pk, sk := TodoKey(todo.UserID(), todo.ID())
	name := todo.Name()
	completed := todo.Completed()

	return TodoItem{
		PK:         pk,
		SK:         sk,
		ID:         todo.ID().String(),
		UserID:     todo.UserID(),
		Name:       &name,
		Completed:  &completed,
		UpdatedAt:  utils.FormatTimestamp(todo.UpdatedAt()),
		EntityType: EntityTypeTodo,
	}
}

// ToTodo maps a stored item back onto a todo.
// The id comes from SK and the owner from PK; the id and userId attributes are not trusted.
func (i TodoItem) ToTodo() (*entities.Todo, error) {
	userID, ok := userIDFromPK(i.PK)
	if !ok {
		return nil, fmt.Errorf("%w: PK %q lacks %s prefix", ports.ErrMalformedItem, i.PK, UserPrefix)
	}

	rawID, ok := todoIDFromSK(i.SK)
	if !ok {
		return nil, fmt.Errorf("%w: SK %q lacks %s prefix", ports.ErrMalformedItem, i.SK, TodoPrefix)
	}

	id, err := valueobjects.ParseTodoID(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: SK %q: %v", ports.ErrMalformedItem, i.SK, err)
	}

	if i.Name == nil {
		return nil, fmt.Errorf("%w: %s has no name", ports.ErrMalformedItem, i.SK)
	}
	if i.Completed == nil {
		return nil, fmt.Errorf("%w: %s has no completed flag", ports.ErrMalformedItem, i.SK)
	}

	var updatedAt time.Time
	if i.UpdatedAt != "" {
		updatedAt, err = utils.ParseTimestamp(i.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %s has bad updatedAt: %v", ports.ErrMalformedItem, i.SK, err)
		}
	}

	todo, err := entities.ReconstructTodo(id, userID, *i.Name, *i.Completed, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ports.ErrMalformedItem, i.SK, err)
	}
	return todo, nil
}

// MarshalTodo returns the attribute map written by PutItem
func MarshalTodo(todo *entities.Todo) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMap(NewTodoItem(todo))
}

// DecodeTodoItem unmarshals a raw item and checks its shape
func DecodeTodoItem(av map[string]types.AttributeValue) (*entities.Todo, error) {
	var item TodoItem
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrMalformedItem, err)
	}
	return item.ToTodo()
}
