package operations

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/lodestone-mc/lodestone/pkg/classify"
	"github.com/lodestone-mc/lodestone/pkg/errors"
)

// FormatExportLine renders one export line, without the line break:
// id, version and the display form of the tags joined by commas, separated
// by tabs. Unknown packages have an empty tag column.
func FormatExportLine(c classify.Classification) string {
	return strings.Join([]string{c.Package.ID, c.Package.Version, c.Tags.Join(",")}, "\t")
}

// WriteExport writes the listing for classifications to w.
func WriteExport(w io.Writer, classifications []classify.Classification) error {
	for _, c := range classifications {
		if _, err := fmt.Fprintln(w, FormatExportLine(c)); err != nil {
			return err
		}
	}
	return nil
}

// runExport never touches mod files.
func (e *Executor) runExport(ctx context.Context, plan Plan, selected []classify.Classification, report *Report) {
	if err := ctx.Err(); err != nil {
		report.Cancelled = true
		report.NotAttempted = append(report.NotAttempted, report.Selected...)
		return
	}

	var buf bytes.Buffer
	if err := WriteExport(&buf, selected); err != nil {
		report.Failed = append(report.Failed, FileError{Path: plan.Destination, Err: err})
		return
	}

	if plan.DryRun {
		report.Planned = append(report.Planned, report.Selected...)
		report.Output = plan.Destination
		return
	}

	if plan.Writer != nil {
		if _, err := plan.Writer.Write(buf.Bytes()); err != nil {
			report.Failed = append(report.Failed, FileError{
				Path: plan.Destination,
				Err:  errors.Wrap(err, errors.ErrFileWrite, "cannot write export"),
			})
			report.NotAttempted = append(report.NotAttempted, report.Selected...)
			return
		}
	} else {
		report.Output = plan.Destination
		if err := e.fs.WriteFile(plan.Destination, buf.Bytes(), 0644); err != nil {
			report.Failed = append(report.Failed, FileError{
				Path: plan.Destination,
				Err:  errors.Wrap(err, errors.ErrFileWrite, "cannot write export file").WithDetail("path", plan.Destination),
			})
			report.NotAttempted = append(report.NotAttempted, report.Selected...)
			return
		}
	}

	total := len(report.Selected)
	for i, path := range report.Selected {
		report.Succeeded = append(report.Succeeded, path)
		e.emit(Event{Verb: plan.Verb, Path: path, Index: i + 1, Total: total, Outcome: OutcomeSucceeded})
	}
}
