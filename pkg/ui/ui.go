// Package ui routes command output to one of three renderers: styled
// terminal output, plain text, or JSON.
package ui

import (
	"io"
	"os"

	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/ui/json"
	"github.com/lodestone-mc/lodestone/pkg/ui/terminal"
	"github.com/lodestone-mc/lodestone/pkg/ui/text"
)

// Renderer is implemented by each output format. Results are the view
// models in pkg/ui/display and operation reports.
type Renderer interface {
	RenderResult(result interface{}) error
	RenderError(err error) error
	RenderMessage(msg string) error
}

// resolve turns FormatAuto into a concrete format. Anything that is not a
// file, such as a test buffer, gets plain text.
func resolve(format Format, w io.Writer) Format {
	if format != FormatAuto {
		return format
	}
	if f, ok := w.(*os.File); ok {
		return DetectFormat(f)
	}
	return FormatText
}

// NewRenderer builds the renderer for format writing to w.
func NewRenderer(format Format, w io.Writer) (Renderer, error) {
	switch resolve(format, w) {
	case FormatTerminal:
		return terminal.New(w)
	case FormatText:
		return text.New(w)
	case FormatJSON:
		return json.New(w)
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "no renderer for format %d", int(format))
}
