package operations

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"syscall"

	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/types"
)

// moveConflict returns an ErrMoveConflict error when the destination
// already holds a file with the name of path. It is nil for other verbs.
func (e *Executor) moveConflict(plan Plan, path string) error {
	if plan.Verb != VerbMove {
		return nil
	}
	target := filepath.Join(plan.Destination, filepath.Base(path))
	if _, err := e.fs.Lstat(target); err != nil {
		return nil
	}
	return errors.New(errors.ErrMoveConflict, "a file with the same name exists at the destination").
		WithDetail("path", path).
		WithDetail("target", target)
}

func (e *Executor) moveOne(plan Plan, path string) error {
	if conflict := e.moveConflict(plan, path); conflict != nil {
		e.logger.Warn().Str("path", path).Msg("Destination name taken, leaving file in place")
		return conflict
	}

	target := filepath.Join(plan.Destination, filepath.Base(path))
	err := e.rename(path, target)
	if err == nil {
		e.logger.Debug().Str("path", path).Str("target", target).Msg("Moved")
		return nil
	}
	if stderrors.Is(err, fs.ErrExist) {
		return errors.Wrap(err, errors.ErrMoveConflict, "a file with the same name appeared at the destination").
			WithDetail("path", path).
			WithDetail("target", target)
	}
	if !stderrors.Is(err, syscall.EXDEV) {
		return errors.Wrap(err, errors.ErrFileMove, "cannot move file").
			WithDetail("path", path).
			WithDetail("target", target)
	}
	return e.copyAndRemove(path, target)
}

// rename never overwrites target when the filesystem supports it.
func (e *Executor) rename(path, target string) error {
	if nr, ok := e.fs.(types.NoReplaceRenamer); ok {
		return nr.RenameNoReplace(path, target)
	}
	return e.fs.Rename(path, target)
}

// copyAndRemove moves across filesystems. If the source cannot be removed
// the copy is deleted again so the file exists exactly once.
func (e *Executor) copyAndRemove(path, target string) error {
	info, err := e.fs.Stat(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot stat file").WithDetail("path", path)
	}
	data, err := e.fs.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot read file").WithDetail("path", path)
	}
	if _, err := e.fs.Lstat(target); err == nil {
		return errors.New(errors.ErrMoveConflict, "a file with the same name appeared at the destination").
			WithDetail("path", path).
			WithDetail("target", target)
	}
	if err := e.fs.WriteFile(target, data, info.Mode().Perm()); err != nil {
		_ = e.fs.Remove(target)
		return errors.Wrap(err, errors.ErrFileWrite, "cannot copy file to destination").
			WithDetail("path", path).
			WithDetail("target", target)
	}
	if err := e.fs.Remove(path); err != nil {
		_ = e.fs.Remove(target)
		return errors.Wrap(err, errors.ErrFileRemove, "copied file but cannot remove the original").
			WithDetail("path", path).
			WithDetail("target", target)
	}
	e.logger.Debug().Str("path", path).Str("target", target).Msg("Moved across devices")
	return nil
}
