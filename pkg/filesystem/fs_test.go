package filesystem

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/lodestone-mc/lodestone/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS_RoundTrip(t *testing.T) {
	fs := NewOS()
	dir := t.TempDir()
	jar := filepath.Join(dir, "create-0.5.1.jar")

	require.NoError(t, fs.WriteFile(jar, []byte("PK"), 0644))
	require.NoError(t, fs.MkdirAll(filepath.Join(dir, "disabled", "old"), 0755))

	info, err := fs.Stat(jar)
	require.NoError(t, err)
	assert.Equal(t, int64(2), info.Size())

	linfo, err := fs.Lstat(jar)
	require.NoError(t, err)
	assert.False(t, linfo.IsDir())

	entries, err := fs.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "create-0.5.1.jar", entries[0].Name())
	assert.True(t, entries[1].IsDir())

	_, err = fs.ReadFile(filepath.Join(dir, "disabled"))
	assert.Error(t, err)

	require.NoError(t, fs.Remove(jar))
	_, err = fs.Stat(jar)
	assert.True(t, os.IsNotExist(err))
}

func TestNewOS_Rename(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "sodium.jar")
	dst := filepath.Join(tmpDir, "moved.jar")

	require.NoError(t, fs.WriteFile(src, []byte("jar"), 0644))
	require.NoError(t, fs.Rename(src, dst))

	_, err := fs.Stat(src)
	assert.True(t, os.IsNotExist(err))
	content, err := fs.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("jar"), content)
}

func TestNewMemory(t *testing.T) {
	fs := NewMemory()

	require.NoError(t, fs.MkdirAll("/mods", 0755))
	require.NoError(t, fs.WriteFile("/mods/create.jar", []byte("x"), 0644))

	entries, err := fs.ReadDir("/mods")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "create.jar", entries[0].Name())

	_, err = fs.ReadFile("/mods")
	assert.Error(t, err, "reading a directory should fail")
}

func TestRenameNoReplace(t *testing.T) {
	dir := t.TempDir()
	backends := map[string]struct {
		fs         types.FS
		src, taken string
	}{
		"os":     {NewOS(), filepath.Join(dir, "a.jar"), filepath.Join(dir, "b.jar")},
		"memory": {NewMemory(), "/mods/a.jar", "/mods/b.jar"},
	}
	for name, b := range backends {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, b.fs.MkdirAll(filepath.Dir(b.src), 0755))
			require.NoError(t, b.fs.WriteFile(b.src, []byte("a"), 0644))
			require.NoError(t, b.fs.WriteFile(b.taken, []byte("b"), 0644))

			nr, ok := b.fs.(types.NoReplaceRenamer)
			require.True(t, ok)

			err := nr.RenameNoReplace(b.src, b.taken)
			assert.True(t, errors.Is(err, iofs.ErrExist))
			data, err := b.fs.ReadFile(b.taken)
			require.NoError(t, err)
			assert.Equal(t, "b", string(data))

			free := filepath.Join(filepath.Dir(b.src), "c.jar")
			require.NoError(t, nr.RenameNoReplace(b.src, free))
			_, err = b.fs.Stat(b.src)
			assert.True(t, errors.Is(err, iofs.ErrNotExist))
			data, err = b.fs.ReadFile(free)
			require.NoError(t, err)
			assert.Equal(t, "a", string(data))
		})
	}
}
