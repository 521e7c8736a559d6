package interfaces

import (
	"io"
)

// TemplateRenderer renders named page templates. When out is supplied the
// result is streamed to every writer and the returned string is empty.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
