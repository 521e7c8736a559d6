package markdowncmd

import (
	"errors"

	"github.com/auteur-engineer/website/internal/commands"
	"github.com/auteur-engineer/website/internal/markdown"
	"github.com/auteur-engineer/website/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// RegisterImportCommand builds the import handler with the markdown command
// logger and registers it when reg is not nil. The handler is returned so
// callers can subscribe it to a dispatcher or run it directly.
func RegisterImportCommand(reg CommandRegistry, target markdown.PostImporter, provider interfaces.LoggerProvider, onResult ResultFunc, opts ...commands.HandlerOption[ImportDirectoryCommand]) (*ImportDirectoryHandler, error) {
	if target == nil {
		return nil, errors.New("markdown command registration: post importer is nil")
	}

	logger := commands.CommandLogger(provider, "markdown")
	handler := NewImportDirectoryHandler(target, logger, onResult, opts...)

	if reg != nil {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}
	return handler, nil
}
