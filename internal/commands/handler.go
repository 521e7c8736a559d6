package commands

import (
	"context"
	"errors"
	"time"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	"github.com/auteur-engineer/website/internal/logging"
	"github.com/auteur-engineer/website/pkg/interfaces"
)

const defaultHandlerTimeout = 15 * time.Second

// Text codes attached to command failures.
const (
	TextCodeInvalid  = "SITE_COMMAND_INVALID"
	TextCodeCanceled = "SITE_COMMAND_CANCELED"
	TextCodeTimeout  = "SITE_COMMAND_TIMEOUT"
	TextCodeFailed   = "SITE_COMMAND_FAILED"
)

// HandlerOption configures a Handler.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler runs a command function with message validation, a deadline,
// structured logging and categorised errors. It satisfies
// command.Commander[T], so it can be subscribed to a go-command dispatcher or
// called directly.
type Handler[T command.Message] struct {
	exec      command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
	telemetry Telemetry[T]
}

// NewHandler wraps fn. It panics when fn is nil.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: defaultHandlerTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute validates msg, runs the command under the handler deadline and
// reports the outcome.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return rejectMessage(err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return commandFailure(err)
	}

	fields := map[string]any{"command": command.GetMessageType(msg)}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	if requestID := logging.RequestID(ctx); requestID != "" {
		fields[logging.RequestIDField] = requestID
	}
	logger := logging.WithFields(h.logger, fields)
	logger.Debug("command.execute.start")

	started := time.Now()
	err := h.exec(ctx, msg)
	status := TelemetryStatusSuccess
	switch {
	case err != nil:
		status = TelemetryStatusFailed
		err = commandFailure(err)
	case ctx.Err() != nil:
		status = TelemetryStatusContextError
		err = commandFailure(ctx.Err())
	}

	if h.telemetry != nil {
		h.telemetry(ctx, msg, TelemetryInfo{
			Command:   command.GetMessageType(msg),
			Operation: h.operation,
			Fields:    fields,
			Duration:  time.Since(started),
			Error:     err,
			Status:    status,
			Logger:    logger,
		})
		return err
	}

	if err != nil {
		logger.Error("command.execute.failed", "error", err)
		return err
	}
	logger.Debug("command.execute.success")
	return nil
}

// WithTimeout overrides the execution deadline. Zero or less disables it.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.timeout = max(timeout, 0)
	}
}

// WithLogger sets the handler logger. A nil logger discards output.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		if logger == nil {
			logger = logging.NoOp()
		}
		h.logger = logger
	}
}

// WithOperation names the operation in every log entry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithTelemetry replaces the default outcome logging with fn.
func WithTelemetry[T command.Message](fn Telemetry[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.telemetry = fn
	}
}

func rejectMessage(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command message rejected").
		WithTextCode(TextCodeInvalid)
}

// commandFailure tags err with the command category. Context errors keep
// their own code so a timeout can be told apart from a store failure.
func commandFailure(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	message, code := "command failed", TextCodeFailed
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		message, code = "command timed out", TextCodeTimeout
	case errors.Is(err, context.Canceled):
		message, code = "command canceled", TextCodeCanceled
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(code)
}
