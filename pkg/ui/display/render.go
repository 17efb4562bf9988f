package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lodestone-mc/lodestone/pkg/classify"
	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/operations"
	"github.com/lodestone-mc/lodestone/pkg/output/styles"
	"github.com/lodestone-mc/lodestone/pkg/types"
)

// Painter applies a named style to text.
type Painter func(style, text string) string

// Plain is the Painter of the text format.
func Plain(_ string, text string) string { return text }

// Styled paints with the lipgloss styles of pkg/output/styles.
func Styled(style, text string) string {
	return styles.GetStyle(style).Render(text)
}

// Renderer writes view models as aligned, optionally styled lines.
type Renderer struct {
	w     io.Writer
	paint Painter
}

// NewRenderer returns a renderer writing to w.
func NewRenderer(w io.Writer, paint Painter) *Renderer {
	if paint == nil {
		paint = Plain
	}
	return &Renderer{w: w, paint: paint}
}

// NewTextRenderer returns an unstyled renderer.
func NewTextRenderer(w io.Writer) *Renderer {
	return NewRenderer(w, Plain)
}

// Render writes any known view model. Unknown values are printed with %+v.
func (r *Renderer) Render(result interface{}) error {
	switch v := result.(type) {
	case *ScanResult:
		return r.renderScan(v)
	case *ModuleList:
		return r.renderModuleList(v)
	case *ModuleDetail:
		return r.renderModuleDetail(v)
	case *ValidationResult:
		return r.renderValidation(v)
	case *UnknownResult:
		return r.renderUnknown(v)
	case *operations.Report:
		return r.renderReport(v)
	case *ContributionResult:
		return r.renderContribution(v)
	default:
		return r.printf("%+v\n", result)
	}
}

// RenderError writes err with its code.
func (r *Renderer) RenderError(err error) error {
	code := errors.GetErrorCode(err)
	return r.printf("%s %s\n", r.paint("ErrorBadge", string(code)), r.paint("Error", err.Error()))
}

// RenderMessage writes a single line.
func (r *Renderer) RenderMessage(msg string) error {
	return r.printf("%s\n", msg)
}

func (r *Renderer) printf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(r.w, format, args...)
	return err
}

// cell is one table value and the style it is painted with.
type cell struct {
	text  string
	style string
}

// table writes rows with columns padded to the widest plain value.
func (r *Renderer) table(header []string, rows [][]cell) error {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, c := range row {
			if w := lipgloss.Width(c.text); w > widths[i] {
				widths[i] = w
			}
		}
	}

	line := func(cells []cell) error {
		var b strings.Builder
		for i, c := range cells {
			b.WriteString(r.paint(c.style, c.text))
			if i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(c.text)+2))
			}
		}
		b.WriteByte('\n')
		_, err := io.WriteString(r.w, b.String())
		return err
	}

	headerCells := make([]cell, len(header))
	for i, h := range header {
		headerCells[i] = cell{h, "TableHeader"}
	}
	if err := line(headerCells); err != nil {
		return err
	}
	for _, row := range rows {
		if err := line(row); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) tags(tags types.TagSet) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = r.paint(styles.TagStyleName(t), t.Display())
	}
	return strings.Join(parts, ",")
}

func (r *Renderer) renderScan(v *ScanResult) error {
	if err := r.printf("%s %s\n", r.paint("Header", "Mods in"), r.paint("FilePath", v.ModsDir)); err != nil {
		return err
	}
	if len(v.Classifications) == 0 {
		return r.printf("%s\n", r.paint("Muted", "No packages found"))
	}

	rows := make([][]cell, 0, len(v.Classifications))
	for _, c := range v.Classifications {
		tagText, tagStyle := c.Tags.Join(","), "TagCustom"
		switch {
		case c.Status == classify.StatusUnknown:
			tagText, tagStyle = types.TagUnknown.Display(), "TagUnknown"
		case c.Status == classify.StatusAmbiguous:
			tagStyle = "StatusAmbiguous"
		case len(c.Tags) == 1:
			tagStyle = styles.TagStyleName(c.Tags[0])
		}
		row := []cell{
			{c.Package.ID, "PackageID"},
			{c.Package.Version, "Version"},
			{tagText, tagStyle},
			{c.Status.String(), statusStyle(c.Status)},
			{c.Winner(), "Module"},
			{c.Package.FileName, "FilePath"},
		}
		rows = append(rows, row)
	}
	if err := r.table([]string{"ID", "VERSION", "TAGS", "STATUS", "MODULE", "FILE"}, rows); err != nil {
		return err
	}

	if v.Verbose {
		for _, c := range v.Classifications {
			if len(c.Provenance) < 2 {
				continue
			}
			if err := r.printf("\n%s\n", r.paint("SubHeader", c.Package.FileName)); err != nil {
				return err
			}
			for _, p := range c.Provenance {
				style := "Module"
				if p.Disposition == classify.DispositionOverridden {
					style = "Overridden"
				}
				line := fmt.Sprintf("  %s #%d %s -> %s (%s)", p.Module, p.Entry, p.Constraint, p.Tag.Display(), p.Disposition)
				if err := r.printf("%s\n", r.paint(style, line)); err != nil {
					return err
				}
			}
		}
	}

	return r.printf("\n%s\n", r.countsLine(v.Counts))
}

func statusStyle(s classify.Status) string {
	switch s {
	case classify.StatusResolved:
		return "Success"
	case classify.StatusAmbiguous:
		return "StatusAmbiguous"
	default:
		return "TagUnknown"
	}
}

func (r *Renderer) countsLine(c classify.Counts) string {
	parts := []string{fmt.Sprintf("%d packages", c.Total)}
	for _, t := range []types.Tag{types.TagClient, types.TagServer, types.TagBoth} {
		if n := c.ByTag[t]; n > 0 {
			parts = append(parts, r.paint(styles.TagStyleName(t), fmt.Sprintf("%d %s", n, t.Display())))
		}
	}
	custom := 0
	for t, n := range c.ByTag {
		if !t.IsWellKnown() && t != types.TagUnknown {
			custom += n
		}
	}
	if custom > 0 {
		parts = append(parts, r.paint("TagCustom", fmt.Sprintf("%d custom", custom)))
	}
	if n := c.ByStatus[classify.StatusAmbiguous.String()]; n > 0 {
		parts = append(parts, r.paint("StatusAmbiguous", fmt.Sprintf("%d ambiguous", n)))
	}
	if n := c.ByTag[types.TagUnknown]; n > 0 {
		parts = append(parts, r.paint("TagUnknown", fmt.Sprintf("%d unknown", n)))
	}
	return strings.Join(parts, ", ")
}

func (r *Renderer) renderModuleList(v *ModuleList) error {
	if len(v.Modules) == 0 {
		return r.printf("%s\n", r.paint("Muted", "No modules loaded"))
	}
	rows := make([][]cell, 0, len(v.Modules))
	for _, m := range v.Modules {
		rows = append(rows, []cell{
			{fmt.Sprintf("%d", m.Position), "Muted"},
			{m.Name, "Module"},
			{fmt.Sprintf("%d", m.Version), "Version"},
			{m.Author, ""},
			{fmt.Sprintf("%d", m.Entries), ""},
			{m.Source, "FilePath"},
		})
	}
	return r.table([]string{"#", "MODULE", "VERSION", "AUTHOR", "RULES", "SOURCE"}, rows)
}

func (r *Renderer) renderModuleDetail(v *ModuleDetail) error {
	header := fmt.Sprintf("%s v%d by %s", v.Name, v.Version, v.Author)
	if err := r.printf("%s\n", r.paint("Header", header)); err != nil {
		return err
	}
	if err := r.printf("%s %s\n", r.paint("Muted", "source:"), r.paint("FilePath", v.Source)); err != nil {
		return err
	}
	rows := make([][]cell, 0, len(v.Rules))
	for _, e := range v.Rules {
		rows = append(rows, []cell{
			{e.PackageID, "PackageID"},
			{e.Constraint, "Version"},
			{e.Tag.Display(), styles.TagStyleName(e.Tag)},
			{fmt.Sprintf("%d", e.Index), "Muted"},
		})
	}
	return r.table([]string{"ID", "VERSION", "TAG", "ENTRY"}, rows)
}

func (r *Renderer) renderValidation(v *ValidationResult) error {
	for _, f := range v.Files {
		if f.Valid {
			line := fmt.Sprintf("ok    %s (%s, %d rules)", f.Path, f.Module, f.Entries)
			if err := r.printf("%s\n", r.paint("Success", line)); err != nil {
				return err
			}
			continue
		}
		if err := r.printf("%s %s\n", r.paint("Error", "fail "), r.paint("FilePath", f.Path)); err != nil {
			return err
		}
		if err := r.printf("      %s\n", f.Error); err != nil {
			return err
		}
		for _, c := range f.Collisions {
			if err := r.printf("      %s\n", r.paint("Warning", c.String())); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) renderUnknown(v *UnknownResult) error {
	if len(v.Unknown) == 0 {
		return r.printf("%s\n", r.paint("Success", "Every package is classified"))
	}
	for _, p := range v.Unknown {
		if err := r.printf("%s %s  %s\n", r.paint("PackageID", p.ID), r.paint("Version", p.Version), r.paint("FilePath", p.FileName)); err != nil {
			return err
		}
		for _, c := range v.SuggestionsFor(p.Path) {
			hint := "similar to"
			if c.SameID {
				hint = "other versions in modules"
			}
			line := fmt.Sprintf("    %s %s (%s)", hint, c.ID, c.Tags.Join(","))
			if err := r.printf("%s\n", r.paint("Muted", line)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) renderReport(v *operations.Report) error {
	title := v.Verb.String()
	if v.DryRun {
		if err := r.printf("%s\n", r.paint("DryRunBanner", "DRY RUN: nothing was changed")); err != nil {
			return err
		}
	}
	if err := r.printf("%s %s\n", r.paint("Header", title), r.paint("Muted", fmt.Sprintf("(%d selected)", len(v.Selected)))); err != nil {
		return err
	}

	groups := []struct {
		label string
		style string
		paths []string
	}{
		{"planned", "Info", v.Planned},
		{"done", "Success", v.Succeeded},
		{"skipped", "Muted", v.Skipped},
		{"not attempted", "Warning", v.NotAttempted},
	}
	for _, g := range groups {
		for _, p := range g.paths {
			if err := r.printf("  %s %s\n", r.paint(g.style, fmt.Sprintf("%-13s", g.label)), r.paint("FilePath", p)); err != nil {
				return err
			}
		}
	}
	for _, list := range []struct {
		label string
		errs  []operations.FileError
	}{
		{"preflight", v.Preflight},
		{"conflict", v.Conflicts},
		{"failed", v.Failed},
	} {
		for _, fe := range list.errs {
			if err := r.printf("  %s %s: %s\n", r.paint("Error", fmt.Sprintf("%-13s", list.label)), r.paint("FilePath", fe.Path), fe.Err.Error()); err != nil {
				return err
			}
		}
	}

	if v.Output != "" {
		if err := r.printf("%s %s\n", r.paint("Muted", "output:"), r.paint("FilePath", v.Output)); err != nil {
			return err
		}
	}
	if v.Cancelled {
		return r.printf("%s\n", r.paint("Warning", "Cancelled"))
	}
	return nil
}

func (r *Renderer) renderContribution(v *ContributionResult) error {
	if _, err := r.w.Write(v.Payload); err != nil {
		return err
	}
	if len(v.Payload) > 0 && v.Payload[len(v.Payload)-1] != '\n' {
		if err := r.printf("\n"); err != nil {
			return err
		}
	}
	if v.SubmittedTo != "" {
		return r.printf("%s %s\n", r.paint("Success", "Written to outbox:"), r.paint("FilePath", v.SubmittedTo))
	}
	return nil
}
