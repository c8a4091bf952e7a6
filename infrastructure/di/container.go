package di

import (
	"todos-backend/application/commands/bus"
	"todos-backend/application/ports"
	querybus "todos-backend/application/queries/bus"
	"todos-backend/infrastructure/config"
	"todos-backend/interfaces/http/rest"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	TodoRepo   ports.TodoRepository
	Publisher  ports.EventPublisher
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
	Router     *rest.Router
}
