// Package text renders results as plain, unstyled lines for pipes and
// NO_COLOR terminals.
package text

import (
	"fmt"
	"io"

	"github.com/lodestone-mc/lodestone/pkg/ui/display"
)

// Renderer is the display renderer with the Plain painter. Errors keep a
// greppable "Error:" prefix.
type Renderer struct {
	*display.Renderer
	w io.Writer
}

func New(w io.Writer) (*Renderer, error) {
	return &Renderer{Renderer: display.NewTextRenderer(w), w: w}, nil
}

func (r *Renderer) RenderResult(result interface{}) error {
	return r.Render(result)
}

func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.w, "Error: %v\n", err)
	return werr
}
