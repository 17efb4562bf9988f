package testutil

import (
	"path/filepath"
	"testing"
)

// Environment is a set of isolated lodestone directories under one root.
type Environment struct {
	Root      string
	ConfigDir string
	DataDir   string
	StateDir  string
}

// Isolate creates a temp dir and points the lodestone and XDG state
// variables at it for the rest of the test. Colors are disabled.
func Isolate(t *testing.T) Environment {
	t.Helper()
	root := t.TempDir()
	env := Environment{
		Root:      root,
		ConfigDir: filepath.Join(root, "config"),
		DataDir:   filepath.Join(root, "data"),
		StateDir:  filepath.Join(root, "state"),
	}

	t.Setenv("LODESTONE_CONFIG_DIR", env.ConfigDir)
	t.Setenv("LODESTONE_DATA_DIR", env.DataDir)
	t.Setenv("LODESTONE_STATE_DIR", env.StateDir)
	t.Setenv("XDG_STATE_HOME", env.StateDir)
	t.Setenv("LODESTONE_MODS_DIR", "")
	t.Setenv("NO_COLOR", "1")
	return env
}
