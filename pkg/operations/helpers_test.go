package operations

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/lodestone-mc/lodestone/pkg/classify"
	"github.com/lodestone-mc/lodestone/pkg/filesystem"
	"github.com/lodestone-mc/lodestone/pkg/modules"
	"github.com/lodestone-mc/lodestone/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// installed describes one mod file for a test fixture.
type installed struct {
	id, version, tag string
}

// fixture writes one file per mod into /mods and resolves a snapshot in
// which every mod with a tag is covered by a single "test" module.
func fixture(t *testing.T, mods ...installed) (types.FS, *classify.Snapshot) {
	t.Helper()
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/mods", 0755))

	var entries []string
	var packages []types.InstalledPackage
	for _, m := range mods {
		name := m.id + ".jar"
		path := filepath.Join("/mods", name)
		require.NoError(t, fs.WriteFile(path, []byte("jar:"+m.id), 0644))
		packages = append(packages, types.InstalledPackage{ID: m.id, Version: m.version, Path: path, FileName: name})
		if m.tag != "" {
			entries = append(entries, fmt.Sprintf(`{"modID":%q,"modVersion":"*","modType":%q}`, m.id, m.tag))
		}
	}

	data := fmt.Sprintf(`{"header":{"moduleName":"test","moduleVersion":1,"moduleAuthor":"t"},"mods":[%s]}`,
		strings.Join(entries, ","))
	module, err := modules.Parse("test.json", []byte(data))
	require.NoError(t, err)

	return fs, classify.Resolve([]*modules.Module{module}, packages, classify.Options{Generation: 1, ScanID: "test"})
}

func exists(t *testing.T, fs types.FS, path string) bool {
	t.Helper()
	_, err := fs.Stat(path)
	return err == nil
}

func content(t *testing.T, fs types.FS, path string) string {
	t.Helper()
	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// failingFS fails Remove and Rename for one path.
type failingFS struct {
	types.FS
	failPath string
}

func (f *failingFS) Remove(name string) error {
	if name == f.failPath {
		return fmt.Errorf("permission denied")
	}
	return f.FS.Remove(name)
}

func (f *failingFS) Rename(oldpath, newpath string) error {
	if oldpath == f.failPath {
		return fmt.Errorf("permission denied")
	}
	return f.FS.Rename(oldpath, newpath)
}

// crossDeviceFs is an afero filesystem whose renames always fail with
// EXDEV, as they do between two mounts. Remove fails for failRemove.
type crossDeviceFs struct {
	afero.Fs
	failRemove string
}

func (c *crossDeviceFs) Rename(oldname, newname string) error {
	return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: syscall.EXDEV}
}

func (c *crossDeviceFs) Remove(name string) error {
	if name == c.failRemove {
		return &iofs.PathError{Op: "remove", Path: name, Err: iofs.ErrPermission}
	}
	return c.Fs.Remove(name)
}

// lateArrivalFS hides hidden from Lstat, so the conflict check passes and
// the name is only found taken at rename time.
type lateArrivalFS struct {
	types.FS
	hidden string
}

func (l *lateArrivalFS) Lstat(name string) (iofs.FileInfo, error) {
	if name == l.hidden {
		return nil, &iofs.PathError{Op: "lstat", Path: name, Err: iofs.ErrNotExist}
	}
	return l.FS.Lstat(name)
}

func (l *lateArrivalFS) RenameNoReplace(oldpath, newpath string) error {
	return l.FS.(types.NoReplaceRenamer).RenameNoReplace(oldpath, newpath)
}
