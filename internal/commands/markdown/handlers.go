package markdowncmd

import (
	"context"
	"os"

	command "github.com/goliatone/go-command"

	"github.com/auteur-engineer/website/internal/commands"
	"github.com/auteur-engineer/website/internal/logging"
	"github.com/auteur-engineer/website/internal/markdown"
	"github.com/auteur-engineer/website/pkg/interfaces"
)

const importOperation = "markdown.import_directory"

var _ command.Commander[ImportDirectoryCommand] = (*ImportDirectoryHandler)(nil)

// ResultFunc receives the outcome of each import run.
type ResultFunc func(ImportDirectoryCommand, *markdown.ImportResult)

// ImportDirectoryHandler runs ImportDirectoryCommand through the markdown importer.
type ImportDirectoryHandler struct {
	inner *commands.Handler[ImportDirectoryCommand]
}

// NewImportDirectoryHandler imports into target. onResult may be nil.
func NewImportDirectoryHandler(target markdown.PostImporter, logger interfaces.Logger, onResult ResultFunc, opts ...commands.HandlerOption[ImportDirectoryCommand]) *ImportDirectoryHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ImportDirectoryCommand) error {
		loader := markdown.NewLoader(os.DirFS(msg.Directory), markdown.WithRecursive(msg.Recursive))
		importer := markdown.NewImporter(loader, target, markdown.WithLogger(logger))

		result, err := importer.ImportDirectory(ctx, ".", markdown.ImportOptions{DryRun: msg.DryRun})
		if err != nil {
			return err
		}
		logging.WithFields(logger, map[string]any{
			"planned_count": len(result.Planned),
			"created_count": len(result.Created),
			"error_count":   len(result.Errors),
			"dry_run":       msg.DryRun,
		}).Info("markdown.command.import_directory.completed")
		if onResult != nil {
			onResult(msg, result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportDirectoryCommand]{
		commands.WithLogger[ImportDirectoryCommand](logger),
		commands.WithOperation[ImportDirectoryCommand](importOperation),
		// Imports of large trees outlive the default deadline.
		commands.WithTimeout[ImportDirectoryCommand](0),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportDirectoryHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

func (h *ImportDirectoryHandler) Execute(ctx context.Context, msg ImportDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
