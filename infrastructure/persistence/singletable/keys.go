// Package singletable maps todos onto the user-scoped keys of the shared table.
package singletable

import (
	"strings"

	"todos-backend/domain/core/valueobjects"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Key attribute names and prefixes
const (
	AttrPK = "PK"
	AttrSK = "SK"

	UserPrefix = "USER#"
	TodoPrefix = "TODO#"

	EntityTypeTodo = "todo"
)

// UserPK returns the partition key holding every item of a user
func UserPK(userID string) string {
	return UserPrefix + userID
}

// TodoSK returns the sort key of a todo
func TodoSK(id valueobjects.TodoID) string {
	return TodoPrefix + id.String()
}

// TodoKey returns the composite key of a user's todo
func TodoKey(userID string, id valueobjects.TodoID) (string, string) {
	return UserPK(userID), TodoSK(id)
}

// KeyAttributes builds the key map used by GetItem, DeleteItem and UpdateItem
func KeyAttributes(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		AttrPK: &types.AttributeValueMemberS{Value: pk},
		AttrSK: &types.AttributeValueMemberS{Value: sk},
	}
}

// ListCondition selects exactly the todos of a user
func ListCondition(userID string) (expression.Expression, error) {
	keyCond := expression.Key(AttrPK).Equal(expression.Value(UserPK(userID))).
		And(expression.Key(AttrSK).BeginsWith(TodoPrefix))

	return expression.NewBuilder().WithKeyCondition(keyCond).Build()
}

// userIDFromPK strips the user prefix, reporting whether it was present
func userIDFromPK(pk string) (string, bool) {
	if !strings.HasPrefix(pk, UserPrefix) || len(pk) == len(UserPrefix) {
		return "", false
	}
	return strings.TrimPrefix(pk, UserPrefix), true
}

// todoIDFromSK returns the suffix after the last '#'
func todoIDFromSK(sk string) (string, bool) {
	if !strings.HasPrefix(sk, TodoPrefix) {
		return "", false
	}
	return sk[strings.LastIndex(sk, "#")+1:], true
}
