package version_test

import (
	"testing"

	"github.com/lodestone-mc/lodestone/pkg/version"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "1.2.3", version.Normalize("  v1.2.3 "))
	assert.Equal(t, "1.2.3", version.Normalize("V1.2.3"))
	assert.Equal(t, "vanilla", version.Normalize("vanilla"))
	assert.Equal(t, "", version.Normalize("   "))
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.2", "1.2.0", 0},
		{"1.2", "1.2.1", -1},
		{"1.10", "1.9", 1},
		{"v2.0", "2", 0},
		{"1.2.0", "1.2.0-beta", -1},
		{"1.2.0-alpha", "1.2.0-beta", -1},
		{"0.5.3+mc1.20.1", "0.5.3+mc1.19.2", 1},
		{"01.2", "1.2", 0},
		{"99999999999999999999.1", "99999999999999999998.9", 1},
		{"garbage", "1.0", -1},
		{"1.0", "garbage", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, version.Compare(tt.a, tt.b))
		})
	}
}

func TestParseVersion(t *testing.T) {
	v, ok := version.ParseVersion("v1.20.1-beta.2")
	assert.True(t, ok)
	assert.Equal(t, "1.20.1-beta.2", v.String())

	_, ok = version.ParseVersion("unparsable")
	assert.False(t, ok)

	_, ok = version.ParseVersion("")
	assert.False(t, ok)
}
