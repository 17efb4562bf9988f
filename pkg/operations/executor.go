package operations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lodestone-mc/lodestone/pkg/archive"
	"github.com/lodestone-mc/lodestone/pkg/classify"
	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/logging"
	"github.com/lodestone-mc/lodestone/pkg/types"
	"github.com/rs/zerolog"
)

// Executor runs plans. Files are handled sequentially so the report always
// shows an unambiguous failure point.
type Executor struct {
	fs       types.FS
	archiver archive.Archiver
	progress ProgressFunc
	logger   zerolog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithProgress sets the per-file progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(e *Executor) { e.progress = fn }
}

// WithArchiver replaces the zip archiver used by Archive.
func WithArchiver(a archive.Archiver) Option {
	return func(e *Executor) { e.archiver = a }
}

// NewExecutor creates an executor working through fs.
func NewExecutor(fs types.FS, opts ...Option) *Executor {
	e := &Executor{
		fs:     fs,
		logger: logging.GetLogger("operations.executor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.archiver == nil {
		e.archiver = archive.NewZip(fs)
	}
	return e
}

// Execute selects packages from snapshot with the plan filter and applies
// the verb. The error return is reserved for plans that cannot run at all;
// everything that happens to individual files is in the report.
func (e *Executor) Execute(ctx context.Context, plan Plan, snapshot *classify.Snapshot) (*Report, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, errors.New(errors.ErrInvalidInput, "no classification available, scan first").
			WithDetail("verb", plan.Verb.String())
	}

	selected := Select(plan.Filter, snapshot)
	report := &Report{
		Verb:     plan.Verb,
		DryRun:   plan.DryRun,
		Selected: make([]string, len(selected)),
	}
	for i, c := range selected {
		report.Selected[i] = c.Package.Path
	}

	logger := e.logger.With().
		Str("verb", plan.Verb.String()).
		Str("filter", plan.Filter.Join(",")).
		Int("selected", len(selected)).
		Bool("dry_run", plan.DryRun).
		Logger()
	logger.Info().Msg("Executing plan")

	switch plan.Verb {
	case VerbRemove:
		e.runFiles(ctx, plan, report, e.removeOne)
	case VerbMove:
		e.runFiles(ctx, plan, report, e.moveOne)
	case VerbArchive:
		e.runArchive(ctx, plan, report)
	case VerbExport:
		e.runExport(ctx, plan, selected, report)
	}

	logger.Info().
		Int("succeeded", len(report.Succeeded)).
		Int("failed", len(report.Failed)).
		Int("conflicts", len(report.Conflicts)).
		Int("skipped", len(report.Skipped)).
		Int("not_attempted", len(report.NotAttempted)).
		Int("preflight_errors", len(report.Preflight)).
		Bool("cancelled", report.Cancelled).
		Msg("Plan finished")
	return report, nil
}

// fileStep applies the verb to one file. An ErrMoveConflict error is
// reported without stopping the run; any other error stops it.
type fileStep func(plan Plan, path string) error

func (e *Executor) runFiles(ctx context.Context, plan Plan, report *Report, step fileStep) {
	report.Preflight = e.preflight(plan, report.Selected)
	if len(report.Preflight) > 0 {
		report.NotAttempted = append(report.NotAttempted, report.Selected...)
		return
	}
	if plan.Verb == VerbMove {
		report.Output = plan.Destination
	}

	total := len(report.Selected)
	for i, path := range report.Selected {
		if err := ctx.Err(); err != nil {
			report.Cancelled = true
			report.NotAttempted = append(report.NotAttempted, report.Selected[i:]...)
			e.logger.Warn().Int("remaining", total-i).Msg("Plan cancelled")
			return
		}

		if plan.DryRun {
			if conflict := e.moveConflict(plan, path); conflict != nil {
				report.Conflicts = append(report.Conflicts, FileError{Path: path, Err: conflict})
				e.emit(Event{Verb: plan.Verb, Path: path, Index: i + 1, Total: total, Outcome: OutcomeConflict, Err: conflict})
				continue
			}
			report.Planned = append(report.Planned, path)
			e.emit(Event{Verb: plan.Verb, Path: path, Index: i + 1, Total: total, Outcome: OutcomePlanned})
			continue
		}

		err := step(plan, path)
		switch {
		case errors.IsErrorCode(err, errors.ErrMoveConflict):
			report.Conflicts = append(report.Conflicts, FileError{Path: path, Err: err})
			e.emit(Event{Verb: plan.Verb, Path: path, Index: i + 1, Total: total, Outcome: OutcomeConflict, Err: err})
		case err != nil:
			report.Failed = append(report.Failed, FileError{Path: path, Err: err})
			report.NotAttempted = append(report.NotAttempted, report.Selected[i+1:]...)
			e.emit(Event{Verb: plan.Verb, Path: path, Index: i + 1, Total: total, Outcome: OutcomeFailed, Err: err})
			e.logger.Error().Err(err).Str("path", path).Msg("File operation failed, stopping")
			return
		default:
			report.Succeeded = append(report.Succeeded, path)
			e.emit(Event{Verb: plan.Verb, Path: path, Index: i + 1, Total: total, Outcome: OutcomeSucceeded})
		}
	}
}

func (e *Executor) emit(ev Event) {
	if e.progress != nil {
		e.progress(ev)
	}
}

// preflight checks everything Remove and Move need before any change.
func (e *Executor) preflight(plan Plan, paths []string) []FileError {
	var problems []FileError
	for _, path := range paths {
		if err := e.checkSource(path); err != nil {
			problems = append(problems, FileError{Path: path, Err: err})
		}
	}
	if plan.Verb == VerbMove {
		if err := e.checkWritableDir(plan.Destination); err != nil {
			problems = append(problems, FileError{Path: plan.Destination, Err: err})
		}
	}
	return problems
}

func (e *Executor) checkSource(path string) error {
	info, err := e.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(err, errors.ErrFileNotFound, "file no longer exists").WithDetail("path", path)
		}
		return errors.Wrap(err, errors.ErrFileAccess, "cannot access file").WithDetail("path", path)
	}
	if !info.Mode().IsRegular() {
		return errors.New(errors.ErrPreflight, "not a regular file").WithDetail("path", path)
	}
	return nil
}

// checkWritableDir verifies dir is a directory and that a file can be
// created in it, using a scratch file that is removed right away.
func (e *Executor) checkWritableDir(dir string) error {
	info, err := e.fs.Stat(dir)
	if err != nil {
		return errors.Wrap(err, errors.ErrPreflight, "destination does not exist").WithDetail("path", dir)
	}
	if !info.IsDir() {
		return errors.New(errors.ErrPreflight, "destination is not a directory").WithDetail("path", dir)
	}
	scratch := filepath.Join(dir, fmt.Sprintf(".lodestone-writecheck-%d", os.Getpid()))
	if err := e.fs.WriteFile(scratch, nil, 0600); err != nil {
		return errors.Wrap(err, errors.ErrPreflight, "destination is not writable").WithDetail("path", dir)
	}
	if err := e.fs.Remove(scratch); err != nil {
		return errors.Wrap(err, errors.ErrPreflight, "cannot remove scratch file from destination").
			WithDetail("path", scratch)
	}
	return nil
}

func (e *Executor) removeOne(_ Plan, path string) error {
	if err := e.fs.Remove(path); err != nil {
		return errors.Wrap(err, errors.ErrFileRemove, "cannot remove file").WithDetail("path", path)
	}
	e.logger.Debug().Str("path", path).Msg("Removed")
	return nil
}
