package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, []string{".jar"}, cfg.Scanner.Extensions)
	assert.Equal(t, 0, cfg.Scanner.Workers)
	assert.Equal(t, ".lodestoneignore", cfg.Scanner.IgnoreFile)
	assert.Equal(t, "lodestone-archive.zip", cfg.Archive.DefaultName)
	assert.Equal(t, "lodestone-export.txt", cfg.Export.DefaultName)
	assert.Equal(t, "contribution", cfg.Contribution.ModuleName)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)
	assert.Empty(t, cfg.Paths.ModsDir)
}

func TestLoad_UserFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[paths]
mods_dir = "/srv/minecraft/mods"

[scanner]
extensions = ["jar", ".litemod"]
workers = 4

[contribution]
author = "steve"

[watch]
debounce = "2s"
`)

	cfg, err := Load(LoadOptions{File: path, SkipEnv: true})
	require.NoError(t, err)

	assert.Equal(t, "/srv/minecraft/mods", cfg.Paths.ModsDir)
	assert.Equal(t, []string{".jar", ".litemod"}, cfg.Scanner.Extensions)
	assert.Equal(t, 4, cfg.Scanner.Workers)
	assert.Equal(t, "steve", cfg.Contribution.Author)
	assert.Equal(t, "contribution", cfg.Contribution.ModuleName)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)
}

func TestLoad_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	cfg, err := Load(LoadOptions{File: missing, SkipEnv: true})
	require.NoError(t, err)
	assert.Equal(t, ".lodestoneignore", cfg.Scanner.IgnoreFile)

	_, err = Load(LoadOptions{File: missing, Required: true, SkipEnv: true})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeConfig(t, "[scanner\nworkers = ")

	_, err := Load(LoadOptions{File: path, SkipEnv: true})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	assert.Equal(t, path, errors.GetErrorDetails(err)["path"])
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("LODESTONE_PATHS_MODS_DIR", "/env/mods")
	t.Setenv("LODESTONE_SCANNER_IGNORE_FILE", ".modignore")
	t.Setenv("LODESTONE_SCANNER_EXTENSIONS", ".jar,.zip")
	t.Setenv("LODESTONE_WATCH_DEBOUNCE", "1s")

	path := writeConfig(t, "[paths]\nmods_dir = \"/file/mods\"\n")
	cfg, err := Load(LoadOptions{File: path})
	require.NoError(t, err)

	assert.Equal(t, "/env/mods", cfg.Paths.ModsDir)
	assert.Equal(t, ".modignore", cfg.Scanner.IgnoreFile)
	assert.Equal(t, []string{".jar", ".zip"}, cfg.Scanner.Extensions)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LODESTONE_PATHS_MODS_DIR", "/env/mods")

	cfg, err := Load(LoadOptions{Overrides: map[string]interface{}{"paths.mods_dir": "/flag/mods"}})
	require.NoError(t, err)
	assert.Equal(t, "/flag/mods", cfg.Paths.ModsDir)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
	}{
		{"negative workers", "[scanner]\nworkers = -1\n", "scanner.workers"},
		{"empty extension", "[scanner]\nextensions = [\"\"]\n", "scanner.extensions"},
		{"negative debounce", "[watch]\ndebounce = \"-1s\"\n", "watch.debounce"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(LoadOptions{File: writeConfig(t, tt.content), SkipEnv: true})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
			assert.Equal(t, tt.key, errors.GetErrorDetails(err)["key"])
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "scanner.ignore_file", envKey("LODESTONE_SCANNER_IGNORE_FILE"))
	assert.Equal(t, "contribution.module_name", envKey("LODESTONE_CONTRIBUTION_MODULE_NAME"))
	assert.Equal(t, "debug", envKey("LODESTONE_DEBUG"))
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	assert.Contains(t, content, "[scanner]")
	assert.Contains(t, content, "# extensions = [\".jar\"]")
	assert.NotContains(t, content, "\nworkers = 0")
	assert.Contains(t, content, "# Parallel readers.")
	assert.Contains(t, content, `lodestone export --save`)
	assert.NotContains(t, content, "--output", "comments must name flags the CLI has")
}
