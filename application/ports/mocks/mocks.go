// Package mocks provides testify mocks for the application ports.
package mocks

import (
	"context"
	"time"

	"todos-backend/domain/core/entities"
	"todos-backend/domain/core/valueobjects"
	"todos-backend/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockTodoRepository is a mock implementation of ports.TodoRepository
type MockTodoRepository struct {
	mock.Mock
}

func (m *MockTodoRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Todo, error) {
	args := m.Called(ctx, userID)
	todos, _ := args.Get(0).([]*entities.Todo)
	return todos, args.Error(1)
}

func (m *MockTodoRepository) Get(ctx context.Context, userID string, id valueobjects.TodoID) (*entities.Todo, error) {
	args := m.Called(ctx, userID, id)
	todo, _ := args.Get(0).(*entities.Todo)
	return todo, args.Error(1)
}

func (m *MockTodoRepository) Create(ctx context.Context, todo *entities.Todo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

func (m *MockTodoRepository) Delete(ctx context.Context, userID string, id valueobjects.TodoID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockTodoRepository) SetCompleted(ctx context.Context, userID string, id valueobjects.TodoID, expected bool, updatedAt time.Time) (*entities.Todo, error) {
	args := m.Called(ctx, userID, id, expected, updatedAt)
	todo, _ := args.Get(0).(*entities.Todo)
	return todo, args.Error(1)
}

// MockEventPublisher is a mock implementation of ports.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	args := m.Called(ctx, evts)
	return args.Error(0)
}
