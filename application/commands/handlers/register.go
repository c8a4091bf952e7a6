package handlers

import (
	"context"

	"todos-backend/application/commands"
	"todos-backend/application/commands/bus"
)

// Register wires the todo command handlers into the bus
func Register(
	commandBus *bus.CommandBus,
	create *CreateTodoHandler,
	del *DeleteTodoHandler,
	toggle *ToggleTodoHandler,
) error {
	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.CreateTodoCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			return create.Handle(ctx, cmd.(commands.CreateTodoCommand))
		})},
		{commands.DeleteTodoCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			return del.Handle(ctx, cmd.(commands.DeleteTodoCommand))
		})},
		{commands.ToggleTodoCommand{}, bus.CommandHandlerFunc(func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			return toggle.Handle(ctx, cmd.(commands.ToggleTodoCommand))
		})},
	}

	for _, r := range registrations {
		if err := commandBus.Register(r.cmd, r.handler); err != nil {
			return err
		}
	}
	return nil
}
