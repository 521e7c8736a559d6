// Package markdown turns markdown files into posts: frontmatter supplies the
// title and footer, headings become header blocks.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// FrontMatter holds the keys the importer understands. Anything else is kept
// in Custom.
type FrontMatter struct {
	Title     string
	Hint      string
	Copyright string
	Custom    map[string]any
}

type frontMatterEnvelope struct {
	Title     string         `yaml:"title"`
	Hint      string         `yaml:"hint"`
	Copyright string         `yaml:"copyright"`
	Custom    map[string]any `yaml:",inline"`
}

// ParseFrontMatter splits source into metadata and markdown body. A file
// without a frontmatter block yields empty metadata and the whole source.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta frontMatterEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	custom := meta.Custom
	if custom == nil {
		custom = map[string]any{}
	}
	return FrontMatter{
		Title:     strings.TrimSpace(meta.Title),
		Hint:      strings.TrimSpace(meta.Hint),
		Copyright: strings.TrimSpace(meta.Copyright),
		Custom:    custom,
	}, body, nil
}
