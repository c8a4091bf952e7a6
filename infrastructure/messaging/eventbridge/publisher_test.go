package eventbridge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"todos-backend/domain/events"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockEventBridge struct {
	mock.Mock
}

func (m *mockEventBridge) PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*eventbridge.PutEventsOutput)
	return out, args.Error(1)
}

func makeEvents(n int) []events.DomainEvent {
	out := make([]events.DomainEvent, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, events.NewTodoToggled("id", "user-1", i%2 == 0, time.Now()))
	}
	return out
}

func TestPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	client := new(mockEventBridge)
	client.On("PutEvents", ctx, mock.MatchedBy(func(in *eventbridge.PutEventsInput) bool {
		if len(in.Entries) != 1 {
			return false
		}
		entry := in.Entries[0]
		var detail map[string]interface{}
		if err := json.Unmarshal([]byte(aws.ToString(entry.Detail)), &detail); err != nil {
			return false
		}
		return aws.ToString(entry.Source) == SourceTodos &&
			aws.ToString(entry.DetailType) == events.TypeTodoCreated &&
			aws.ToString(entry.EventBusName) == "todos-bus" &&
			detail["name"] == "milk"
	})).Return(&eventbridge.PutEventsOutput{}, nil)

	publisher := NewPublisher(client, "todos-bus", zap.NewNop())
	err := publisher.Publish(ctx, events.NewTodoCreated("id", "user-1", "milk", false, time.Now()))

	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestPublisher_BatchesOfTen(t *testing.T) {
	ctx := context.Background()
	client := new(mockEventBridge)
	client.On("PutEvents", ctx, mock.MatchedBy(func(in *eventbridge.PutEventsInput) bool {
		return len(in.Entries) == 10
	})).Return(&eventbridge.PutEventsOutput{}, nil).Twice()
	client.On("PutEvents", ctx, mock.MatchedBy(func(in *eventbridge.PutEventsInput) bool {
		return len(in.Entries) == 3
	})).Return(&eventbridge.PutEventsOutput{}, nil).Once()

	err := NewPublisher(client, "todos-bus", zap.NewNop()).PublishBatch(ctx, makeEvents(23))

	require.NoError(t, err)
	client.AssertExpectations(t)
	client.AssertNumberOfCalls(t, "PutEvents", 3)
}

func TestPublisher_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("Should surface partial failures", func(t *testing.T) {
		client := new(mockEventBridge)
		client.On("PutEvents", ctx, mock.Anything).Return(&eventbridge.PutEventsOutput{
			FailedEntryCount: 1,
			Entries: []types.PutEventsResultEntry{
				{EventId: aws.String("1")},
				{ErrorCode: aws.String("InternalFailure"), ErrorMessage: aws.String("boom")},
			},
		}, nil)

		err := NewPublisher(client, "todos-bus", zap.NewNop()).PublishBatch(ctx, makeEvents(2))
		assert.EqualError(t, err, "1 events failed to publish")
	})

	t.Run("Should wrap client errors", func(t *testing.T) {
		cause := errors.New("network")
		client := new(mockEventBridge)
		client.On("PutEvents", ctx, mock.Anything).Return(nil, cause)

		err := NewPublisher(client, "todos-bus", zap.NewNop()).PublishBatch(ctx, makeEvents(1))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("Should skip empty batches", func(t *testing.T) {
		client := new(mockEventBridge)

		require.NoError(t, NewPublisher(client, "todos-bus", zap.NewNop()).PublishBatch(ctx, nil))
		client.AssertNotCalled(t, "PutEvents", mock.Anything, mock.Anything)
	})
}

func TestNopPublisher(t *testing.T) {
	p := NewNopPublisher(zap.NewNop())
	assert.NoError(t, p.PublishBatch(context.Background(), makeEvents(3)))
}
