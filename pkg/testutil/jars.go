package testutil

import (
	"bytes"
	"fmt"
	"sort"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// BuildJar returns a zip archive holding files, written in name order.
func BuildJar(t *testing.T, files map[string]string) []byte {
	t.Helper()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// FabricJar returns a jar carrying a fabric.mod.json for id and version.
func FabricJar(t *testing.T, id, version string) []byte {
	t.Helper()
	return BuildJar(t, map[string]string{
		"fabric.mod.json": fmt.Sprintf(`{"schemaVersion": 1, "id": %q, "version": %q}`, id, version),
	})
}
