package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type instance struct {
	root       string
	modsDir    string
	modulesDir string
	outboxDir  string
}

// setupInstance creates a mods directory with create (Both), sodium
// (Client) and mystery (no module entry), and isolates every lodestone
// directory inside a temp dir.
func setupInstance(t *testing.T) instance {
	t.Helper()
	env := testutil.Isolate(t)
	inst := instance{
		root:       env.Root,
		modsDir:    filepath.Join(env.Root, "mods"),
		modulesDir: filepath.Join(env.DataDir, "modules"),
		outboxDir:  filepath.Join(env.DataDir, "outbox"),
	}

	require.NoError(t, os.MkdirAll(inst.modsDir, 0755))
	require.NoError(t, os.MkdirAll(inst.modulesDir, 0755))
	jars := map[string][]byte{
		"create-0.5.1.jar":  testutil.FabricJar(t, "create", "0.5.1"),
		"sodium-0.5.8.jar":  testutil.FabricJar(t, "sodium", "0.5.8"),
		"mystery-1.0.0.jar": testutil.FabricJar(t, "mystery", "1.0.0"),
	}
	for name, data := range jars {
		require.NoError(t, os.WriteFile(filepath.Join(inst.modsDir, name), data, 0644))
	}

	module := testutil.ModuleJSONBy("community", "tester",
		testutil.EntryJSON("create", "*", "Both"),
		testutil.EntryJSON("sodium", "[0.5,0.6)", "Client"))
	require.NoError(t, os.WriteFile(filepath.Join(inst.modulesDir, "community.json"), []byte(module), 0644))
	return inst
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd := NewRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestScanCommand_JSON(t *testing.T) {
	inst := setupInstance(t)

	out, err := run(t, "scan", "--mods-dir", inst.modsDir, "--format", "json")
	require.NoError(t, err)

	var result struct {
		ModsDir         string `json:"modsDir"`
		Classifications []struct {
			Package struct {
				ID string `json:"id"`
			} `json:"package"`
			Status string   `json:"status"`
			Tags   []string `json:"tags"`
		} `json:"classifications"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Classifications, 3)

	statuses := map[string]string{}
	tags := map[string][]string{}
	for _, c := range result.Classifications {
		statuses[c.Package.ID] = c.Status
		tags[c.Package.ID] = c.Tags
	}
	assert.Equal(t, "Resolved", statuses["create"])
	assert.Equal(t, []string{"both"}, tags["create"])
	assert.Equal(t, []string{"client"}, tags["sodium"])
	assert.Equal(t, "Unknown", statuses["mystery"])
	assert.Empty(t, tags["mystery"])
}

func TestScanCommand_TagFilter(t *testing.T) {
	inst := setupInstance(t)

	out, err := run(t, "scan", "--mods-dir", inst.modsDir, "--format", "text", "--tag", "client")
	require.NoError(t, err)
	assert.Contains(t, out, "sodium")
	assert.NotContains(t, out, "mystery-1.0.0.jar")
	assert.NotContains(t, out, "create-0.5.1.jar")
}

func TestScanCommand_ExtraModuleOverrides(t *testing.T) {
	inst := setupInstance(t)
	extra := filepath.Join(inst.root, "override.json")
	require.NoError(t, os.WriteFile(extra, []byte(`{
  "header": {"moduleName": "local", "moduleVersion": 1, "moduleAuthor": "me"},
  "mods": [{"modID": "create", "modVersion": "0.5.1", "modType": "Server"}]
}`), 0644))

	out, err := run(t, "scan", "--mods-dir", inst.modsDir, "--module", extra, "--format", "json", "--tag", "server")
	require.NoError(t, err)
	assert.Contains(t, out, `"create"`)
	assert.NotContains(t, out, `"sodium"`)
}

func TestScanCommand_MissingModsDir(t *testing.T) {
	inst := setupInstance(t)

	_, err := run(t, "scan", "--mods-dir", filepath.Join(inst.root, "nope"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrDirectoryUnreadable, errors.GetErrorCode(err))
}

func TestModulesCommands(t *testing.T) {
	inst := setupInstance(t)

	t.Run("list", func(t *testing.T) {
		out, err := run(t, "modules", "list", "--mods-dir", inst.modsDir, "--format", "text")
		require.NoError(t, err)
		assert.Contains(t, out, "community")
		assert.Contains(t, out, "tester")
	})

	t.Run("show", func(t *testing.T) {
		out, err := run(t, "modules", "show", "community", "--mods-dir", inst.modsDir, "--format", "text")
		require.NoError(t, err)
		assert.Contains(t, out, "sodium")
		assert.Contains(t, out, "[0.5,0.6)")
	})

	t.Run("show missing", func(t *testing.T) {
		_, err := run(t, "modules", "show", "nope", "--mods-dir", inst.modsDir)
		require.Error(t, err)
		assert.Equal(t, errors.ErrModuleNotFound, errors.GetErrorCode(err))
	})

	t.Run("validate", func(t *testing.T) {
		bad := filepath.Join(inst.root, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{
  "header": {"moduleName": "bad", "moduleVersion": 1, "moduleAuthor": "me"},
  "mods": [
    {"modID": "create", "modVersion": "[1.0,2.0)", "modType": "Client"},
    {"modID": "create", "modVersion": "[1.5,3.0)", "modType": "Server"}
  ]
}`), 0644))

		out, err := run(t, "modules", "validate", filepath.Join(inst.modulesDir, "community.json"), bad,
			"--mods-dir", inst.modsDir, "--format", "json")
		require.Error(t, err)
		assert.Equal(t, errors.ErrModuleInvalid, errors.GetErrorCode(err))

		var result struct {
			Files []struct {
				Valid bool   `json:"valid"`
				Code  string `json:"code"`
			} `json:"files"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		require.Len(t, result.Files, 2)
		assert.True(t, result.Files[0].Valid)
		assert.False(t, result.Files[1].Valid)
		assert.Equal(t, string(errors.ErrOverlappingRule), result.Files[1].Code)
	})
}

func TestUnknownCommand(t *testing.T) {
	inst := setupInstance(t)

	out, err := run(t, "unknown", "--mods-dir", inst.modsDir, "--format", "json")
	require.NoError(t, err)

	var result struct {
		Unknown []struct {
			ID string `json:"id"`
		} `json:"unknown"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Unknown, 1)
	assert.Equal(t, "mystery", result.Unknown[0].ID)
}

func TestExportCommand_Stdout(t *testing.T) {
	inst := setupInstance(t)

	out, err := run(t, "export", "--mods-dir", inst.modsDir, "--tag", "client", "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "sodium\t0.5.8\tClient\n", out)
}

func TestRemoveCommand(t *testing.T) {
	inst := setupInstance(t)
	sodium := filepath.Join(inst.modsDir, "sodium-0.5.8.jar")

	t.Run("dry run changes nothing", func(t *testing.T) {
		out, err := run(t, "remove", "--mods-dir", inst.modsDir, "--tag", "client", "--dry-run", "--format", "text")
		require.NoError(t, err)
		assert.Contains(t, out, sodium)
		assert.FileExists(t, sodium)
	})

	t.Run("removes client mods", func(t *testing.T) {
		_, err := run(t, "remove", "--mods-dir", inst.modsDir, "--tag", "client", "--format", "text")
		require.NoError(t, err)
		assert.NoFileExists(t, sodium)
		assert.FileExists(t, filepath.Join(inst.modsDir, "create-0.5.1.jar"))
	})
}

func TestMoveCommand_Conflict(t *testing.T) {
	inst := setupInstance(t)
	dest := filepath.Join(inst.root, "client-only")
	require.NoError(t, os.MkdirAll(dest, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dest, "sodium-0.5.8.jar"), []byte("taken"), 0644))

	_, err := run(t, "move", "--mods-dir", inst.modsDir, "--tag", "client", "--to", dest, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, errors.ErrMoveConflict, errors.GetErrorCode(err))
	assert.FileExists(t, filepath.Join(inst.modsDir, "sodium-0.5.8.jar"))
}

func TestMoveCommand_RequiresDestination(t *testing.T) {
	inst := setupInstance(t)

	_, err := run(t, "move", "--mods-dir", inst.modsDir, "--tag", "client")
	require.Error(t, err)
}

func TestArchiveCommand(t *testing.T) {
	inst := setupInstance(t)
	out := filepath.Join(inst.root, "unknown.zip")

	_, err := run(t, "archive", "--mods-dir", inst.modsDir, "--tag", "unknown", "--to", out, "--format", "text")
	require.NoError(t, err)

	zr, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer func() { _ = zr.Close() }()
	require.Len(t, zr.File, 1)
	assert.Equal(t, "mystery-1.0.0.jar", zr.File[0].Name)
	assert.FileExists(t, filepath.Join(inst.modsDir, "mystery-1.0.0.jar"))
}

func TestContributeCommand(t *testing.T) {
	inst := setupInstance(t)

	t.Run("submits to the outbox", func(t *testing.T) {
		out, err := run(t, "contribute", "--mods-dir", inst.modsDir, "--set", "mystery=client",
			"--name", "mine", "--author", "steve", "--submit", "--format", "json")
		require.NoError(t, err)

		var result struct {
			Module      string `json:"module"`
			Entries     int    `json:"entries"`
			SubmittedTo string `json:"submittedTo"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, "mine", result.Module)
		assert.Equal(t, 1, result.Entries)
		assert.Equal(t, inst.outboxDir, filepath.Dir(result.SubmittedTo))
		assert.FileExists(t, result.SubmittedTo)
	})

	t.Run("conflicting assignments", func(t *testing.T) {
		_, err := run(t, "contribute", "--mods-dir", inst.modsDir, "--set", "mystery=client", "--set", "mystery=server")
		require.Error(t, err)
		assert.Equal(t, errors.ErrInvalidInput, errors.GetErrorCode(err))
	})

	t.Run("nothing tagged", func(t *testing.T) {
		_, err := run(t, "contribute", "--mods-dir", inst.modsDir)
		require.Error(t, err)
		assert.Equal(t, errors.ErrNoManualTags, errors.GetErrorCode(err))
	})
}

func TestParseAssignments(t *testing.T) {
	manual, err := parseAssignments([]string{"a=client,b=server", "a=Client"})
	require.NoError(t, err)
	assert.Len(t, manual, 2)

	_, err = parseAssignments([]string{"broken"})
	require.Error(t, err)
}

func TestGenConfigCommand(t *testing.T) {
	inst := setupInstance(t)

	out, err := run(t, "genconfig")
	require.NoError(t, err)
	assert.Contains(t, out, "[scanner]")

	_, err = run(t, "genconfig", "--write", "--mods-dir", inst.modsDir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(inst.root, "config", "config.toml"))

	_, err = run(t, "genconfig", "--write", "--mods-dir", inst.modsDir)
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "lodestone version")
}

func TestHelpTopics(t *testing.T) {
	out, err := run(t, "topics")
	require.NoError(t, err)
	for _, topic := range []string{"modules", "filters", "operations", "config"} {
		assert.Contains(t, out, topic)
	}
}

func TestRootCommand_Structure(t *testing.T) {
	rootCmd := NewRootCmd()
	names := map[string]*cobra.Command{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = c
	}
	for _, want := range []string{"scan", "modules", "unknown", "remove", "move", "archive", "export", "contribute", "watch", "version", "completion", "man"} {
		assert.Contains(t, names, want)
	}
	assert.Equal(t, "core", names["scan"].GroupID)
	assert.Equal(t, "misc", names["version"].GroupID)

	for _, flag := range []string{"verbose", "config", "mods-dir", "module", "format"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
	assert.Nil(t, names["remove"].Flags().Lookup("to"))
}

func TestExportCommand_SaveUsesConfiguredName(t *testing.T) {
	inst := setupInstance(t)
	t.Chdir(inst.root)

	_, err := run(t, "export", "--mods-dir", inst.modsDir, "--tag", "both", "--save", "--format", "text")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(inst.root, "lodestone-export.txt"))
	require.NoError(t, err)
	assert.Equal(t, "create\t0.5.1\tBoth\n", string(data))
}
