package countercmd

import (
	"context"

	command "github.com/goliatone/go-command"

	"github.com/auteur-engineer/website/internal/commands"
	"github.com/auteur-engineer/website/internal/counters"
	"github.com/auteur-engineer/website/internal/logging"
	"github.com/auteur-engineer/website/pkg/interfaces"
)

const (
	incrementOperation = "counters.increment"
	decrementOperation = "counters.decrement"
)

var (
	_ command.Commander[IncrementCounterCommand] = (*IncrementHandler)(nil)
	_ command.Commander[DecrementCounterCommand] = (*DecrementHandler)(nil)
)

// IncrementHandler executes IncrementCounterCommand.
type IncrementHandler struct {
	inner *commands.Handler[IncrementCounterCommand]
}

// NewIncrementHandler adds one through service. A nil logger discards output.
func NewIncrementHandler(service counters.Service, logger interfaces.Logger, opts ...commands.HandlerOption[IncrementCounterCommand]) *IncrementHandler {
	exec := func(ctx context.Context, msg IncrementCounterCommand) error {
		_, err := service.Adjust(ctx, msg.ID, 1)
		return err
	}
	return &IncrementHandler{inner: commands.NewHandler(exec, handlerOptions(logger, incrementOperation, opts)...)}
}

func (h *IncrementHandler) Execute(ctx context.Context, msg IncrementCounterCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DecrementHandler executes DecrementCounterCommand.
type DecrementHandler struct {
	inner *commands.Handler[DecrementCounterCommand]
}

// NewDecrementHandler subtracts one through service. A nil logger discards output.
func NewDecrementHandler(service counters.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DecrementCounterCommand]) *DecrementHandler {
	exec := func(ctx context.Context, msg DecrementCounterCommand) error {
		_, err := service.Adjust(ctx, msg.ID, -1)
		return err
	}
	return &DecrementHandler{inner: commands.NewHandler(exec, handlerOptions(logger, decrementOperation, opts)...)}
}

func (h *DecrementHandler) Execute(ctx context.Context, msg DecrementCounterCommand) error {
	return h.inner.Execute(ctx, msg)
}

func handlerOptions[T command.Message](logger interfaces.Logger, operation string, extra []commands.HandlerOption[T]) []commands.HandlerOption[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	opts := []commands.HandlerOption[T]{
		commands.WithLogger[T](logger),
		commands.WithOperation[T](operation),
		commands.WithTelemetry(commands.DefaultTelemetry[T](logger)),
	}
	return append(opts, extra...)
}
