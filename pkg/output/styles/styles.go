// Package styles defines the visual styling for lodestone's terminal output.
//
// Styles have semantic names ("Success", "TagClient", "FilePath") and use
// adaptive colors that follow the terminal's light or dark background. The
// theme ships embedded in the binary; LoadStyles replaces it at runtime.
package styles

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/types"
)

// ColorDef is an adaptive color: one value per terminal background.
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is one named style in the theme. Foreground and Background
// name entries of the theme's colors table.
type StyleDef struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Underline    bool   `yaml:"underline,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	Background   string `yaml:"background,omitempty"`
	Width        int    `yaml:"width,omitempty"`
	Align        string `yaml:"align,omitempty"`
	MarginLeft   int    `yaml:"marginLeft,omitempty"`
	MarginBottom int    `yaml:"marginBottom,omitempty"`
	MarginTop    int    `yaml:"marginTop,omitempty"`
	PaddingLeft  int    `yaml:"paddingLeft,omitempty"`
	PaddingRight int    `yaml:"paddingRight,omitempty"`
}

// Config is the YAML theme document.
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// StyleRegistry holds the active theme by style name.
var StyleRegistry map[string]lipgloss.Style

//go:embed styles.yaml
var embeddedStyles []byte

func init() {
	if err := LoadStylesFromData(embeddedStyles); err != nil {
		panic(fmt.Sprintf("embedded theme: %v", err))
	}
}

var alignments = map[string]lipgloss.Position{
	"left":   lipgloss.Left,
	"center": lipgloss.Center,
	"right":  lipgloss.Right,
}

// LoadStylesFromData parses a YAML theme and replaces StyleRegistry. A
// style that names an undefined color or alignment rejects the theme.
func LoadStylesFromData(data []byte) error {
	var theme Config
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return errors.Wrap(err, errors.ErrConfigParse, "cannot parse theme")
	}

	palette := make(map[string]lipgloss.AdaptiveColor, len(theme.Colors))
	for name, c := range theme.Colors {
		palette[name] = lipgloss.AdaptiveColor{Light: c.Light, Dark: c.Dark}
	}

	built := make(map[string]lipgloss.Style, len(theme.Styles))
	for name, def := range theme.Styles {
		style, err := def.build(palette)
		if err != nil {
			return errors.Wrapf(err, errors.ErrConfigValid, "style %s", name).WithDetail("style", name)
		}
		built[name] = style
	}
	StyleRegistry = built
	return nil
}

func (d StyleDef) build(palette map[string]lipgloss.AdaptiveColor) (lipgloss.Style, error) {
	// Only set what the theme names, so MergeStyles can layer styles.
	st := lipgloss.NewStyle()
	if d.Bold {
		st = st.Bold(true)
	}
	if d.Italic {
		st = st.Italic(true)
	}
	if d.Underline {
		st = st.Underline(true)
	}
	if d.MarginLeft > 0 || d.MarginTop > 0 || d.MarginBottom > 0 {
		st = st.Margin(d.MarginTop, 0, d.MarginBottom, d.MarginLeft)
	}
	if d.PaddingLeft > 0 || d.PaddingRight > 0 {
		st = st.Padding(0, d.PaddingRight, 0, d.PaddingLeft)
	}

	color := func(ref string) (lipgloss.AdaptiveColor, error) {
		c, ok := palette[ref]
		if !ok {
			return c, errors.Newf(errors.ErrConfigValid, "undefined color %q", ref)
		}
		return c, nil
	}
	if d.Foreground != "" {
		c, err := color(d.Foreground)
		if err != nil {
			return st, err
		}
		st = st.Foreground(c)
	}
	if d.Background != "" {
		c, err := color(d.Background)
		if err != nil {
			return st, err
		}
		st = st.Background(c)
	}
	if d.Width > 0 {
		st = st.Width(d.Width)
	}
	if d.Align != "" {
		pos, ok := alignments[d.Align]
		if !ok {
			return st, errors.Newf(errors.ErrConfigValid, "unknown alignment %q", d.Align)
		}
		st = st.Align(pos)
	}
	return st, nil
}

// GetStyle returns the named style, or an empty style for unknown names.
func GetStyle(name string) lipgloss.Style {
	if st, ok := StyleRegistry[name]; ok {
		return st
	}
	return lipgloss.NewStyle()
}

// MergeStyles layers the named styles; earlier names win on conflicts.
func MergeStyles(names ...string) lipgloss.Style {
	merged := lipgloss.NewStyle()
	for _, name := range names {
		merged = merged.Inherit(GetStyle(name))
	}
	return merged
}

var tagStyles = map[types.Tag]string{
	types.TagClient:  "TagClient",
	types.TagServer:  "TagServer",
	types.TagBoth:    "TagBoth",
	types.TagUnknown: "TagUnknown",
}

// TagStyleName returns the style for a tag. Custom tags share TagCustom.
func TagStyleName(t types.Tag) string {
	if name, ok := tagStyles[t]; ok {
		return name
	}
	return "TagCustom"
}
