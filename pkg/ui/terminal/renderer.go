// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"io"

	"github.com/lodestone-mc/lodestone/pkg/ui/display"
)

// Renderer paints view models with the lipgloss theme
type Renderer struct {
	display *display.Renderer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{display: display.NewRenderer(w, display.Styled)}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	return r.display.Render(result)
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	return r.display.RenderError(err)
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.display.RenderMessage(msg)
}
