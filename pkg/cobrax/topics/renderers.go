package topics

import (
	"github.com/charmbracelet/glamour"
)

// Renderer turns raw topic content into what the help command prints.
// format is the topic file extension, including the dot.
type Renderer interface {
	Render(content string, format string) string
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(content, format string) string

// Render calls f.
func (f RendererFunc) Render(content, format string) string { return f(content, format) }

// PlainRenderer prints topics verbatim.
type PlainRenderer struct{}

func (PlainRenderer) Render(content string, _ string) string { return content }

// glamourStandardStyles are the style names glamour ships with.
var glamourStandardStyles = map[string]bool{
	"dark": true, "light": true, "notty": true, "dracula": true, "pink": true, "ascii": true,
}

// GlamourRenderer renders markdown topics for the terminal. Style is
// "auto", a glamour standard style name or a path to a JSON style file.
type GlamourRenderer struct {
	Style string
	Width int
}

// NewGlamourRenderer picks the style from the terminal background.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: "auto"}
}

func (r *GlamourRenderer) options() []glamour.TermRendererOption {
	var opts []glamour.TermRendererOption
	switch {
	case r.Style == "" || r.Style == "auto":
		opts = append(opts, glamour.WithAutoStyle())
	case glamourStandardStyles[r.Style]:
		opts = append(opts, glamour.WithStandardStyle(r.Style))
	default:
		opts = append(opts, glamour.WithStylePath(r.Style))
	}
	if r.Width > 0 {
		opts = append(opts, glamour.WithWordWrap(r.Width))
	}
	return opts
}

// Render converts markdown. Anything else, and markdown glamour cannot
// handle, is printed verbatim.
func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}
	tr, err := glamour.NewTermRenderer(r.options()...)
	if err != nil {
		return content
	}
	out, err := tr.Render(content)
	if err != nil {
		return content
	}
	return out
}
