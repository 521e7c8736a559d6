package commands

import (
	"strings"

	"github.com/auteur-engineer/website/internal/logging"
	"github.com/auteur-engineer/website/pkg/interfaces"
)

const commandModuleRoot = "site.commands"

// CommandLogger returns a logger scoped to site.commands.<module>.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
