package hashutil

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/types"
)

// Prefix marks checksums written to metadata files.
const Prefix = "sha256:"

// Sum returns the hex encoded SHA256 of data.
func Sum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Checksum returns the SHA256 of data with the algorithm prefix.
func Checksum(data []byte) string {
	return Prefix + Sum(data)
}

// FileChecksum calculates the prefixed SHA256 checksum of a file
func FileChecksum(fs types.FS, path string) (string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "cannot read file to checksum").
			WithDetail("path", path)
	}
	return Checksum(data), nil
}
