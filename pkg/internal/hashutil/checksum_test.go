package hashutil

import (
	"testing"

	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	// sha256("abc")
	const abc = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	assert.Equal(t, abc, Sum([]byte("abc")))
	assert.Equal(t, "sha256:"+abc, Checksum([]byte("abc")))
	assert.Len(t, Checksum(nil), 71) // "sha256:" + 64 hex chars
}

func TestFileChecksum(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/data.txt", []byte("abc"), 0644))

	sum, err := FileChecksum(fs, "/data.txt")
	require.NoError(t, err)
	assert.Equal(t, Checksum([]byte("abc")), sum)

	_, err = FileChecksum(fs, "/missing.txt")
	require.Error(t, err)
	assert.Equal(t, errors.ErrFileAccess, errors.GetErrorCode(err))
}
