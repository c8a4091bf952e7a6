package singletable

import (
	"testing"
	"time"

	"todos-backend/application/ports"
	"todos-backend/domain/core/entities"
	"todos-backend/domain/core/valueobjects"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTodo(t *testing.T, userID, name string, completed bool) *entities.Todo {
	t.Helper()
	todo, err := entities.NewTodo(valueobjects.NewTodoID(), userID, entities.DraftTodo{Name: name, Completed: aws.Bool(completed)})
	require.NoError(t, err)
	return todo
}

func TestKeys(t *testing.T) {
	id := valueobjects.MustParseTodoID("4a5e0f6e-1c9b-4b7e-9d2a-0b6f1f7f2a11")

	pk, sk := TodoKey("user-1", id)
	assert.Equal(t, "USER#user-1", pk)
	assert.Equal(t, "TODO#4a5e0f6e-1c9b-4b7e-9d2a-0b6f1f7f2a11", sk)

	key := KeyAttributes(pk, sk)
	assert.Equal(t, &types.AttributeValueMemberS{Value: pk}, key["PK"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: sk}, key["SK"])
}

func TestTodoItem_Inverse(t *testing.T) {
	for _, userID := range []string{"user-1", "UNAUTH", "us-east-1:abc#def", "user#with#hashes"} {
		t.Run(userID, func(t *testing.T) {
			original := newTodo(t, userID, "buy milk", true)

			back, err := NewTodoItem(original).ToTodo()
			require.NoError(t, err)

			assert.Equal(t, original.ID(), back.ID())
			assert.Equal(t, original.UserID(), back.UserID())
			assert.Equal(t, original.Name(), back.Name())
			assert.Equal(t, original.Completed(), back.Completed())
			assert.True(t, original.UpdatedAt().Equal(back.UpdatedAt()))
		})
	}
}

func TestDecodeTodoItem(t *testing.T) {
	original := newTodo(t, "user-1", "eggs", false)

	av, err := MarshalTodo(original)
	require.NoError(t, err)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "todo"}, av["entityType"])

	back, err := DecodeTodoItem(av)
	require.NoError(t, err)
	assert.Equal(t, original.ID(), back.ID())
	assert.Equal(t, "eggs", back.Name())

	t.Run("Should reject wrongly typed attribute", func(t *testing.T) {
		bad, err := MarshalTodo(original)
		require.NoError(t, err)
		bad["completed"] = &types.AttributeValueMemberS{Value: "yes"}

		_, err = DecodeTodoItem(bad)
		assert.ErrorIs(t, err, ports.ErrMalformedItem)
	})

	t.Run("Should accept items without updatedAt", func(t *testing.T) {
		legacy, err := MarshalTodo(original)
		require.NoError(t, err)
		delete(legacy, "updatedAt")

		todo, err := DecodeTodoItem(legacy)
		require.NoError(t, err)
		assert.True(t, todo.UpdatedAt().IsZero())
	})
}

func TestTodoItem_ShapeErrors(t *testing.T) {
	valid := NewTodoItem(newTodo(t, "user-1", "milk", false))

	tests := []struct {
		name   string
		mutate func(i *TodoItem)
	}{
		{"wrong PK prefix", func(i *TodoItem) { i.PK = "ORG#user-1" }},
		{"empty user", func(i *TodoItem) { i.PK = "USER#" }},
		{"wrong SK prefix", func(i *TodoItem) { i.SK = "NOTE#" + i.ID }},
		{"SK id not a uuid", func(i *TodoItem) { i.SK = "TODO#abc" }},
		{"name missing", func(i *TodoItem) { i.Name = nil }},
		{"name empty", func(i *TodoItem) { i.Name = aws.String("") }},
		{"completed missing", func(i *TodoItem) { i.Completed = nil }},
		{"bad timestamp", func(i *TodoItem) { i.UpdatedAt = "soon" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := valid
			tt.mutate(&item)

			_, err := item.ToTodo()
			assert.ErrorIs(t, err, ports.ErrMalformedItem)
		})
	}
}

func TestListCondition(t *testing.T) {
	expr, err := ListCondition("user-1")
	require.NoError(t, err)

	require.NotNil(t, expr.KeyCondition())
	cond := *expr.KeyCondition()
	assert.Contains(t, cond, "begins_with")

	var values []string
	for _, v := range expr.Values() {
		if s, ok := v.(*types.AttributeValueMemberS); ok {
			values = append(values, s.Value)
		}
	}
	assert.ElementsMatch(t, []string{"USER#user-1", "TODO#"}, values)

	var names []string
	for _, n := range expr.Names() {
		names = append(names, n)
	}
	assert.ElementsMatch(t, []string{"PK", "SK"}, names)
}

func TestTimestampLayout(t *testing.T) {
	todo, err := entities.ReconstructTodo(valueobjects.NewTodoID(), "u", "n", false,
		time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "2024-01-02T03:04:05.006Z", NewTodoItem(todo).UpdatedAt)
}
