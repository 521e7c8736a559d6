package markdowncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const importDirectoryMessageType = "site.markdown.import_directory"

// ImportDirectoryCommand imports every markdown file in Directory as a post.
type ImportDirectoryCommand struct {
	Directory string `json:"directory"`
	Recursive bool   `json:"recursive,omitempty"`
	// DryRun builds the posts without storing them.
	DryRun bool `json:"dry_run,omitempty"`
}

func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("site.markdown.import_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
