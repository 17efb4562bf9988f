package scanner

import (
	"testing"

	"github.com/lodestone-mc/lodestone/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractors(t *testing.T) {
	tests := []struct {
		name      string
		extractor ExtractorFunc
		files     map[string]string
		want      Identity
		found     bool
		wantErr   bool
	}{
		{
			name:      "fabric",
			extractor: extractFabric,
			files:     map[string]string{"fabric.mod.json": `{"id": "Sodium", "version": "0.5.8+mc1.20.1"}`},
			want:      Identity{ID: "sodium", Version: "0.5.8+mc1.20.1"},
			found:     true,
		},
		{
			name:      "fabric with raw newline and bom",
			extractor: extractFabric,
			files:     map[string]string{"fabric.mod.json": "\xef\xbb\xbf{\"id\": \"jei\", \"description\": \"line one\nline two\", \"version\": \"15.2\"}"},
			want:      Identity{ID: "jei", Version: "15.2"},
			found:     true,
		},
		{
			name:      "fabric placeholder version",
			extractor: extractFabric,
			files:     map[string]string{"fabric.mod.json": `{"id": "dev", "version": "${version}"}`},
			want:      Identity{ID: "dev", Version: types.UnparsableVersion},
			found:     true,
		},
		{
			name:      "fabric broken json",
			extractor: extractFabric,
			files:     map[string]string{"fabric.mod.json": `{"id": `},
			wantErr:   true,
		},
		{
			name:      "fabric absent",
			extractor: extractFabric,
			files:     map[string]string{"readme.txt": "hi"},
		},
		{
			name:      "quilt",
			extractor: extractQuilt,
			files:     map[string]string{"quilt.mod.json": `{"schema_version": 1, "quilt_loader": {"id": "qsl", "version": "7.0.0"}}`},
			want:      Identity{ID: "qsl", Version: "7.0.0"},
			found:     true,
		},
		{
			name:      "neoforge",
			extractor: extractNeoForge,
			files: map[string]string{"META-INF/neoforge.mods.toml": `
modLoader = "javafml"
[[mods]]
modId = "create"
version = "0.5.1.f"
`},
			want:  Identity{ID: "create", Version: "0.5.1.f"},
			found: true,
		},
		{
			name:      "forge resolves jar version from manifest",
			extractor: extractForge,
			files: map[string]string{
				"META-INF/mods.toml": `
[[mods]]
modId = "create"
version = "${file.jarVersion}"
`,
				"META-INF/MANIFEST.MF": "Manifest-Version: 1.0\r\nImplementation-Version: 0.5.1.f\r\n\r\n",
			},
			want:  Identity{ID: "create", Version: "0.5.1.f"},
			found: true,
		},
		{
			name:      "forge jar version without manifest",
			extractor: extractForge,
			files: map[string]string{"META-INF/mods.toml": `
[[mods]]
modId = "create"
version = "${file.jarVersion}"
`},
			want:  Identity{ID: "create", Version: types.UnparsableVersion},
			found: true,
		},
		{
			name:      "forge without mods",
			extractor: extractForge,
			files:     map[string]string{"META-INF/mods.toml": `modLoader = "javafml"`},
		},
		{
			name:      "mcmod array",
			extractor: extractMcmod,
			files:     map[string]string{"mcmod.info": `[{"modid": "journeymap", "version": "5.7.1"}]`},
			want:      Identity{ID: "journeymap", Version: "5.7.1"},
			found:     true,
		},
		{
			name:      "mcmod modList",
			extractor: extractMcmod,
			files:     map[string]string{"mcmod.info": `{"modListVersion": 2, "modList": [{"modid": "ic2", "version": "2.8"}]}`},
			want:      Identity{ID: "ic2", Version: "2.8"},
			found:     true,
		},
		{
			name:      "maven",
			extractor: extractMaven,
			files: map[string]string{"META-INF/maven/com.example/coolmod/pom.xml": `<?xml version="1.0"?>
<project>
  <groupId>com.example</groupId>
  <artifactId>coolmod</artifactId>
  <version>1.4</version>
</project>`},
			want:  Identity{ID: "coolmod", Version: "1.4"},
			found: true,
		},
		{
			name:      "maven parent version",
			extractor: extractMaven,
			files: map[string]string{"META-INF/maven/com.example/coolmod/pom.xml": `<project>
  <parent><version>2.0</version></parent>
  <artifactId>coolmod</artifactId>
</project>`},
			want:  Identity{ID: "coolmod", Version: "2.0"},
			found: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jar := openJar(t, "coolmod-1.4.jar", tt.files)
			got, found, err := tt.extractor.Extract(jar)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractMaven_PrefersArtifactMatchingFileName(t *testing.T) {
	jar := openJar(t, "coolmod-1.4.jar", map[string]string{
		"META-INF/maven/com.google/gson/pom.xml":     `<project><artifactId>gson</artifactId><version>2.10</version></project>`,
		"META-INF/maven/com.example/coolmod/pom.xml": `<project><artifactId>coolmod</artifactId><version>1.4</version></project>`,
	})
	got, found, err := extractMaven(jar)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "coolmod", got.ID)

	jar = openJar(t, "other.jar", map[string]string{
		"META-INF/maven/com.google/gson/pom.xml": `<project><artifactId>gson</artifactId><version>2.10</version></project>`,
	})
	got, found, err = extractMaven(jar)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "gson", got.ID)
}

func TestDefaultExtractors_Order(t *testing.T) {
	reg := DefaultExtractors()
	assert.Equal(t, []string{
		SourceFabric, SourceQuilt, SourceNeoForge, SourceForge, SourceMcmod, SourceMaven,
	}, reg.List())
}

func TestParseManifest(t *testing.T) {
	attrs := parseManifest([]byte("Manifest-Version: 1.0\r\nImplementation-Title: very long\r\n  title\r\nImplementation-Version: 3\r\n\r\nName: other\r\nImplementation-Version: 9\r\n"))
	assert.Equal(t, "1.0", attrs["Manifest-Version"])
	assert.Equal(t, "very long title", attrs["Implementation-Title"])
	assert.Equal(t, "3", attrs["Implementation-Version"])
}

func TestMatchPath(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"META-INF/maven/**/pom.xml", "META-INF/maven/g/a/pom.xml", true},
		{"META-INF/maven/**/pom.xml", "META-INF/maven/pom.xml", true},
		{"META-INF/maven/**/pom.xml", "META-INF/maven/g/a/pom.properties", false},
		{"META-INF/maven/**/pom.xml", "other/maven/g/a/pom.xml", false},
		{"*.json", "fabric.mod.json", true},
		{"*.json", "dir/fabric.mod.json", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchPath(tt.pattern, tt.name))
		})
	}
}
