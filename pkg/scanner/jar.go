package scanner

import (
	"bytes"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/zip"
)

// maxMetadataSize caps how much of a single metadata entry is read.
const maxMetadataSize = 4 << 20

// Jar is an opened mod archive handed to extractors.
type Jar struct {
	// Name is the file name of the archive, without directory.
	Name   string
	reader *zip.Reader
}

// OpenJar reads data as a zip archive.
func OpenJar(name string, data []byte) (*Jar, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return &Jar{Name: name, reader: zr}, nil
}

// ReadEntry returns the content of the named entry. ok is false when the
// archive has no such entry.
func (j *Jar) ReadEntry(name string) (data []byte, ok bool, err error) {
	for _, f := range j.reader.File {
		if f.Name != name {
			continue
		}
		data, err := readZipFile(f)
		return data, true, err
	}
	return nil, false, nil
}

// Glob returns the names of entries matching pattern, in archive order.
// A "**" path segment matches any number of directories.
func (j *Jar) Glob(pattern string) []string {
	var out []string
	for _, f := range j.reader.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		if matchPath(pattern, f.Name) {
			out = append(out, f.Name)
		}
	}
	return out
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(io.LimitReader(rc, maxMetadataSize))
}

func matchPath(pattern, name string) bool {
	return matchSegments(strings.Split(pattern, "/"), strings.Split(name, "/"))
}

func matchSegments(pattern, name []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(name); i++ {
				if matchSegments(rest, name[i:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 {
			return false
		}
		if ok, _ := path.Match(pattern[0], name[0]); !ok {
			return false
		}
		pattern, name = pattern[1:], name[1:]
	}
	return len(name) == 0
}
