package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-command/dispatcher"

	"github.com/auteur-engineer/website"
	markdowncmd "github.com/auteur-engineer/website/internal/commands/markdown"
	"github.com/auteur-engineer/website/internal/di"
	"github.com/auteur-engineer/website/internal/markdown"
)

func main() {
	if err := runImport(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("markdown import: %v", err)
	}
}

func runImport(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML config file (defaults plus SITE_* env when empty)")
	dir := fs.String("dir", "content", "Directory holding the markdown files")
	recursive := fs.Bool("recursive", false, "Descend into sub directories")
	dryRun := fs.Bool("dry-run", false, "Print the planned posts without storing them")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := website.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// The importer renders nothing; skip the template directory.
	module, err := website.New(cfg, di.WithTemplateRenderer(discardRenderer{}))
	if err != nil {
		return fmt.Errorf("build module: %w", err)
	}
	defer module.Close(context.Background())

	handler, err := markdowncmd.RegisterImportCommand(nil, module.Posts(), module.LoggerProvider(),
		func(cmd markdowncmd.ImportDirectoryCommand, result *markdown.ImportResult) {
			printResult(out, cmd, result)
		},
	)
	if err != nil {
		return err
	}
	sub := dispatcher.SubscribeCommand(handler)
	defer sub.Unsubscribe()

	cmd := markdowncmd.ImportDirectoryCommand{
		Directory: *dir,
		Recursive: *recursive,
		DryRun:    *dryRun,
	}
	if err := dispatcher.Dispatch(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute import command: %w", err)
	}
	return nil
}

func printResult(out io.Writer, cmd markdowncmd.ImportDirectoryCommand, result *markdown.ImportResult) {
	if cmd.DryRun {
		for _, post := range result.Planned {
			fmt.Fprintf(out, "plan\t%s\t%d blocks\n", post.Title.Label, len(post.Blocks))
		}
	}
	for _, post := range result.Created {
		fmt.Fprintf(out, "created\t%s\t%s\t%d blocks\n", post.ID, post.Title.Label, len(post.Blocks))
	}
	for _, failure := range result.Errors {
		fmt.Fprintf(out, "failed\t%s\t%v\n", failure.Path, failure.Err)
	}
	fmt.Fprintf(out, "%d planned, %d created, %d failed\n", len(result.Planned), len(result.Created), len(result.Errors))
}

type discardRenderer struct{}

func (discardRenderer) Render(string, any, ...io.Writer) (string, error)       { return "", nil }
func (discardRenderer) RenderString(string, any, ...io.Writer) (string, error) { return "", nil }
func (discardRenderer) GlobalContext(any) error                                { return nil }
