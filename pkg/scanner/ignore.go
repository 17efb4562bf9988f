package scanner

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"
)

// DefaultIgnoreFile is the name of the per-directory ignore file.
const DefaultIgnoreFile = ".lodestoneignore"

// ignoreList holds file names or globs, matched case-insensitively against
// the base name of candidate files.
type ignoreList []string

func parseIgnore(data []byte) ignoreList {
	var list ignoreList
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		list = append(list, strings.ToLower(line))
	}
	return list
}

func (l ignoreList) matches(name string) bool {
	name = strings.ToLower(name)
	for _, pattern := range l {
		if pattern == name {
			return true
		}
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
