package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Heading is one markdown heading in document order.
type Heading struct {
	Level int
	Text  string
}

var engine = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Headings parses body and returns its headings. Inline markup is reduced to
// its text.
func Headings(body []byte) []Heading {
	doc := engine.Parser().Parse(text.NewReader(body))

	var out []Heading
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := node.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		label := strings.TrimSpace(inlineText(heading, body))
		if label != "" {
			out = append(out, Heading{Level: heading.Level, Text: label})
		}
		return ast.WalkSkipChildren, nil
	})
	return out
}

func inlineText(node ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
