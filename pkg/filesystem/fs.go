package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"syscall"

	"github.com/spf13/afero"

	"github.com/lodestone-mc/lodestone/pkg/types"
)

// aferoFS adapts any afero.Fs to types.FS. The OS and in-memory
// filesystems differ only in the afero.Fs they wrap. It also implements
// types.NoReplaceRenamer.
type aferoFS struct {
	base afero.Fs
}

// NewOS returns the real filesystem.
func NewOS() types.FS {
	return &aferoFS{base: afero.NewOsFs()}
}

// NewMemory returns an empty in-memory filesystem.
func NewMemory() types.FS {
	return &aferoFS{base: afero.NewMemMapFs()}
}

// NewAferoFS wraps an existing afero filesystem, e.g. a BasePathFs.
func NewAferoFS(base afero.Fs) types.FS {
	return &aferoFS{base: base}
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) { return a.base.Stat(name) }

// Lstat falls back to Stat on filesystems without symlinks.
func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	if l, ok := a.base.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(name)
		return info, err
	}
	return a.base.Stat(name)
}

// ReadFile refuses directories on every backend; MemMapFs would
// otherwise return an empty slice.
func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.base.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.base, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.base, name, data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error { return a.base.MkdirAll(path, perm) }

func (a *aferoFS) Remove(name string) error { return a.base.Remove(name) }

func (a *aferoFS) Rename(oldpath, newpath string) error { return a.base.Rename(oldpath, newpath) }

// RenameNoReplace moves oldpath to newpath and fails with fs.ErrExist when
// newpath is taken. On the OS filesystem the check and the move are one
// step: a hard link to newpath, then removal of oldpath. Moves between
// devices return syscall.EXDEV unchanged for the caller to handle.
func (a *aferoFS) RenameNoReplace(oldpath, newpath string) error {
	if _, isOS := a.base.(*afero.OsFs); isOS {
		err := os.Link(oldpath, newpath)
		switch {
		case err == nil:
			if rmErr := os.Remove(oldpath); rmErr != nil {
				_ = os.Remove(newpath)
				return rmErr
			}
			return nil
		case errors.Is(err, fs.ErrExist), errors.Is(err, syscall.EXDEV), errors.Is(err, fs.ErrNotExist):
			return err
		}
		// no hard links here (e.g. FAT); fall back to check then rename
	}
	if _, err := a.base.Stat(newpath); err == nil {
		return &fs.PathError{Op: "rename", Path: newpath, Err: fs.ErrExist}
	}
	return a.base.Rename(oldpath, newpath)
}

func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(a.base, name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	return entries, nil
}
