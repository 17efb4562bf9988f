package types

import (
	"io/fs"
)

// FS is the filesystem interface required for lodestone operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
	Rename(oldpath, newpath string) error

	// Optional operations - implementations should check for support
	// For testing, Lstat can fall back to Stat
	Lstat(name string) (fs.FileInfo, error)
}

// NoReplaceRenamer is implemented by filesystems that can move a file
// without overwriting an existing destination. It returns an error
// matching fs.ErrExist when the destination is taken.
type NoReplaceRenamer interface {
	RenameNoReplace(oldpath, newpath string) error
}
