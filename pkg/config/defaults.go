package config

import (
	_ "embed"
	"strings"

	"github.com/lodestone-mc/lodestone/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultsContent returns the embedded defaults.toml.
func DefaultsContent() string {
	return string(defaultConfig)
}

// defaultsProvider feeds the embedded defaults to koanf as the first layer.
type defaultsProvider struct{}

func (defaultsProvider) ReadBytes() ([]byte, error) { return defaultConfig, nil }

func (defaultsProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "defaults are only available as bytes")
}

// GenerateConfigContent returns a starter config.toml: the defaults with
// every assignment commented out, so the file documents the keys without
// pinning their values.
func GenerateConfigContent() string {
	var b strings.Builder
	for i, line := range strings.Split(DefaultsContent(), "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		if isAssignment(line) {
			b.WriteString("# ")
		}
		b.WriteString(line)
	}
	return b.String()
}

func isAssignment(line string) bool {
	s := strings.TrimSpace(line)
	switch {
	case s == "", strings.HasPrefix(s, "#"):
		return false
	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		return false
	}
	return true
}
