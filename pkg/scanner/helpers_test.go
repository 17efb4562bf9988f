package scanner

import (
	"testing"

	"github.com/lodestone-mc/lodestone/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func buildJar(t *testing.T, files map[string]string) []byte {
	return testutil.BuildJar(t, files)
}

func openJar(t *testing.T, name string, files map[string]string) *Jar {
	t.Helper()
	jar, err := OpenJar(name, buildJar(t, files))
	require.NoError(t, err)
	return jar
}

func fabricJar(t *testing.T, id, version string) []byte {
	return testutil.FabricJar(t, id, version)
}
