package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EnvOverrides(t *testing.T) {
	root := t.TempDir()
	t.Setenv(EnvConfigDir, filepath.Join(root, "cfg"))
	t.Setenv(EnvDataDir, filepath.Join(root, "data"))
	t.Setenv(EnvStateDir, filepath.Join(root, "state"))

	p, err := New(filepath.Join(root, "server", "mods"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "cfg"), p.ConfigDir())
	assert.Equal(t, filepath.Join(root, "cfg", "config.toml"), p.ConfigFile())
	assert.Equal(t, filepath.Join(root, "data", "modules"), p.ModulesDir())
	assert.Equal(t, filepath.Join(root, "data", "outbox"), p.OutboxDir())
	assert.Equal(t, filepath.Join(root, "state", "lodestone.log"), p.LogFilePath())
	assert.Equal(t, filepath.Join(root, "server", "mods"), p.ModsDir())
	assert.False(t, p.UsedFallback())
}

func TestNew_ModsDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvModsDir, dir)

	p, err := New("")
	require.NoError(t, err)
	assert.Equal(t, dir, p.ModsDir())
	assert.False(t, p.UsedFallback())
}

func TestNew_LocalModsDir(t *testing.T) {
	t.Setenv(EnvModsDir, "")
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "mods"), 0755))
	t.Chdir(dir)

	p, err := New("")
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(filepath.Join(dir, "mods"))
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(p.ModsDir())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.False(t, p.UsedFallback())
}

func TestNew_LauncherFallback(t *testing.T) {
	t.Setenv(EnvModsDir, "")
	t.Chdir(t.TempDir())

	p, err := New("")
	require.NoError(t, err)
	assert.True(t, p.UsedFallback())
	assert.Equal(t, filepath.Join(LauncherDir(), "mods"), p.ModsDir())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/mods", filepath.Join(home, "mods")},
		{"~steve/mods", "~steve/mods"},
		{"/srv/mods", "/srv/mods"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}

func TestDefaultLogFile(t *testing.T) {
	root := t.TempDir()

	t.Setenv(EnvStateDir, filepath.Join(root, "state"))
	assert.Equal(t, filepath.Join(root, "state", "lodestone.log"), DefaultLogFile())

	t.Setenv(EnvStateDir, "")
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "xdg"))
	assert.Equal(t, filepath.Join(root, "xdg", "lodestone", "lodestone.log"), DefaultLogFile())
}
