package operations

import (
	"context"
	"os"
	"path/filepath"

	"github.com/lodestone-mc/lodestone/pkg/errors"
)

// runArchive adds the selected files to one archive. The archive is written
// as a unit: either every new file lands in it or none does.
func (e *Executor) runArchive(ctx context.Context, plan Plan, report *Report) {
	out := plan.Destination
	report.Output = out

	for _, path := range report.Selected {
		if err := e.checkSource(path); err != nil {
			report.Preflight = append(report.Preflight, FileError{Path: path, Err: err})
		}
	}

	present := make(map[string]bool)
	if info, err := e.fs.Stat(out); err == nil {
		if !info.Mode().IsRegular() {
			report.Preflight = append(report.Preflight, FileError{
				Path: out,
				Err:  errors.New(errors.ErrPreflight, "archive path is not a regular file").WithDetail("path", out),
			})
		} else if names, err := e.archiver.List(out); err != nil {
			report.Preflight = append(report.Preflight, FileError{Path: out, Err: err})
		} else {
			for _, n := range names {
				present[n] = true
			}
		}
	} else if !os.IsNotExist(err) {
		report.Preflight = append(report.Preflight, FileError{
			Path: out,
			Err:  errors.Wrap(err, errors.ErrFileAccess, "cannot access archive path").WithDetail("path", out),
		})
	} else if dirInfo, err := e.fs.Stat(filepath.Dir(out)); err != nil || !dirInfo.IsDir() {
		report.Preflight = append(report.Preflight, FileError{
			Path: out,
			Err:  errors.New(errors.ErrPreflight, "archive directory does not exist").WithDetail("path", filepath.Dir(out)),
		})
	}

	if len(report.Preflight) > 0 {
		report.NotAttempted = append(report.NotAttempted, report.Selected...)
		return
	}

	total := len(report.Selected)
	var toAdd []string
	for i, path := range report.Selected {
		name := filepath.Base(path)
		if present[name] {
			report.Skipped = append(report.Skipped, path)
			e.emit(Event{Verb: plan.Verb, Path: path, Index: i + 1, Total: total, Outcome: OutcomeSkipped})
			continue
		}
		present[name] = true
		toAdd = append(toAdd, path)
	}

	if plan.DryRun {
		for i, path := range toAdd {
			report.Planned = append(report.Planned, path)
			e.emit(Event{Verb: plan.Verb, Path: path, Index: i + 1, Total: len(toAdd), Outcome: OutcomePlanned})
		}
		return
	}
	if len(toAdd) == 0 {
		return
	}
	if err := ctx.Err(); err != nil {
		report.Cancelled = true
		report.NotAttempted = append(report.NotAttempted, toAdd...)
		return
	}

	if err := e.archiver.Create(ctx, out, toAdd); err != nil {
		if errors.IsErrorCode(err, errors.ErrCancelled) || ctx.Err() != nil {
			report.Cancelled = true
			report.NotAttempted = append(report.NotAttempted, toAdd...)
			return
		}
		failed := out
		if p, ok := errors.GetErrorDetails(err)["path"].(string); ok && p != "" {
			failed = p
		}
		report.Failed = append(report.Failed, FileError{Path: failed, Err: err})
		for _, path := range toAdd {
			if path != failed {
				report.NotAttempted = append(report.NotAttempted, path)
			}
		}
		e.logger.Error().Err(err).Str("archive", out).Msg("Archive failed")
		return
	}

	for i, path := range toAdd {
		report.Succeeded = append(report.Succeeded, path)
		e.emit(Event{Verb: plan.Verb, Path: path, Index: i + 1, Total: len(toAdd), Outcome: OutcomeSucceeded})
	}
}
