package dynamodb

import (
	"context"
	"fmt"
	"time"

	"todos-backend/application/ports"
	"todos-backend/domain/core/entities"
	"todos-backend/domain/core/valueobjects"
	"todos-backend/infrastructure/persistence/singletable"
	pkgerrors "todos-backend/pkg/errors"
	"todos-backend/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Attribute names written besides the keys
const (
	attrCompleted = "completed"
	attrUpdatedAt = "updatedAt"
)

// TodoRepository implements ports.TodoRepository on the single table
type TodoRepository struct {
	client    API
	tableName string
	breaker   *gobreaker.CircuitBreaker
	logger    *zap.Logger
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(client API, tableName string, breaker *gobreaker.CircuitBreaker, logger *zap.Logger) *TodoRepository {
	return &TodoRepository{
		client:    client,
		tableName: tableName,
		breaker:   breaker,
		logger:    logger,
	}
}

var _ ports.TodoRepository = (*TodoRepository)(nil)

// ListByUser queries the user's partition for TODO# items, following every page.
// One malformed item fails the whole listing.
func (r *TodoRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Todo, error) {
	expr, err := singletable.ListCondition(userID)
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to build list condition").WithCause(err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	paginator := dynamodb.NewQueryPaginator(r.client, input)
	todos := make([]*entities.Todo, 0)
	pages := 0

	for paginator.HasMorePages() {
		var page *dynamodb.QueryOutput
		err := r.execute("query", func() error {
			var err error
			page, err = paginator.NextPage(ctx)
			return err
		})
		if err != nil {
			return nil, err
		}
		pages++

		for _, av := range page.Items {
			todo, err := singletable.DecodeTodoItem(av)
			if err != nil {
				r.logger.Error("Malformed todo item",
					zap.String("user_id", userID),
					zap.Error(err),
				)
				return nil, err
			}
			todos = append(todos, todo)
		}
	}

	r.logger.Debug("Listed todos",
		zap.String("user_id", userID),
		zap.Int("count", len(todos)),
		zap.Int("pages", pages),
	)

	return todos, nil
}

// Get reads one todo by its composite key
func (r *TodoRepository) Get(ctx context.Context, userID string, id valueobjects.TodoID) (*entities.Todo, error) {
	pk, sk := singletable.TodoKey(userID, id)

	var out *dynamodb.GetItemOutput
	err := r.execute("get_item", func() error {
		var err error
		out, err = r.client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(r.tableName),
			Key:       singletable.KeyAttributes(pk, sk),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	if len(out.Item) == 0 {
		return nil, fmt.Errorf("%w: %s", ports.ErrTodoNotFound, sk)
	}

	return singletable.DecodeTodoItem(out.Item)
}

// Create puts the todo guarded by attribute_not_exists(PK)
func (r *TodoRepository) Create(ctx context.Context, todo *entities.Todo) error {
	item, err := singletable.MarshalTodo(todo)
	if err != nil {
		return pkgerrors.NewInternalError("failed to marshal todo").WithCause(err)
	}

	cond := expression.AttributeNotExists(expression.Name(singletable.AttrPK))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return pkgerrors.NewInternalError("failed to build create condition").WithCause(err)
	}

	err = r.execute("put_item", func() error {
		_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:                aws.String(r.tableName),
			Item:                     item,
			ConditionExpression:      expr.Condition(),
			ExpressionAttributeNames: expr.Names(),
		})
		return err
	})
	if err != nil {
		return err
	}

	r.logger.Debug("Created todo",
		zap.String("user_id", todo.UserID()),
		zap.String("todo_id", todo.ID().String()),
	)
	return nil
}

// Delete removes the todo unconditionally
func (r *TodoRepository) Delete(ctx context.Context, userID string, id valueobjects.TodoID) error {
	pk, sk := singletable.TodoKey(userID, id)

	return r.execute("delete_item", func() error {
		_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(r.tableName),
			Key:       singletable.KeyAttributes(pk, sk),
		})
		return err
	})
}

// SetCompleted flips completed only while the stored value still equals expected
func (r *TodoRepository) SetCompleted(ctx context.Context, userID string, id valueobjects.TodoID, expected bool, updatedAt time.Time) (*entities.Todo, error) {
	pk, sk := singletable.TodoKey(userID, id)

	update := expression.Set(expression.Name(attrCompleted), expression.Value(!expected)).
		Set(expression.Name(attrUpdatedAt), expression.Value(utils.FormatTimestamp(updatedAt)))
	cond := expression.AttributeExists(expression.Name(singletable.AttrPK)).
		And(expression.Name(attrCompleted).Equal(expression.Value(expected)))

	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to build toggle expression").WithCause(err)
	}

	var out *dynamodb.UpdateItemOutput
	err = r.execute("update_item", func() error {
		var err error
		out, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:                 aws.String(r.tableName),
			Key:                       singletable.KeyAttributes(pk, sk),
			UpdateExpression:          expr.Update(),
			ConditionExpression:       expr.Condition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ReturnValues:              types.ReturnValueAllNew,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return singletable.DecodeTodoItem(out.Attributes)
}

// execute runs one table call through the circuit breaker and classifies its error
func (r *TodoRepository) execute(operation string, call func() error) error {
	_, err := r.breaker.Execute(func() (interface{}, error) {
		return nil, call()
	})
	if err == nil {
		return nil
	}

	if isConditionalCheckFailed(err) {
		r.logger.Debug("Conditional check failed", zap.String("operation", operation))
		return fmt.Errorf("%w: %s", ports.ErrConditionFailed, operation)
	}

	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		r.logger.Warn("Circuit breaker rejected call",
			zap.String("operation", operation),
			zap.Error(err),
		)
		return pkgerrors.NewDatabaseError(operation, err)
	}

	r.logger.Error("DynamoDB call failed",
		zap.String("operation", operation),
		zap.String("table", r.tableName),
		zap.String("aws_error_code", errorCode(err)),
		zap.Error(err),
	)
	return pkgerrors.NewDatabaseError(operation, err)
}
