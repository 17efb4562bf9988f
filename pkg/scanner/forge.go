package scanner

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	neoForgeMetadata = "META-INF/neoforge.mods.toml"
	forgeMetadata    = "META-INF/mods.toml"
	manifestPath     = "META-INF/MANIFEST.MF"

	jarVersionPlaceholder = "${file.jarVersion}"
)

type modsToml struct {
	Mods []struct {
		ModID   string `toml:"modId"`
		Version string `toml:"version"`
	} `toml:"mods"`
}

func extractNeoForge(jar *Jar) (Identity, bool, error) {
	return extractModsToml(jar, neoForgeMetadata)
}

func extractForge(jar *Jar) (Identity, bool, error) {
	return extractModsToml(jar, forgeMetadata)
}

func extractModsToml(jar *Jar, entry string) (Identity, bool, error) {
	data, ok, err := jar.ReadEntry(entry)
	if !ok || err != nil {
		return Identity{}, false, err
	}
	var doc modsToml
	if err := toml.Unmarshal(data, &doc); err != nil {
		return Identity{}, false, err
	}
	if len(doc.Mods) == 0 {
		return Identity{}, false, nil
	}

	mod := doc.Mods[0]
	ver := strings.TrimSpace(mod.Version)
	if ver == "" || ver == jarVersionPlaceholder {
		ver, err = manifestVersion(jar)
		if err != nil {
			return Identity{}, false, err
		}
	}
	id, found := identity(mod.ModID, ver)
	return id, found, nil
}

// manifestVersion reads Implementation-Version from the jar manifest, the
// value Forge substitutes for ${file.jarVersion}.
func manifestVersion(jar *Jar) (string, error) {
	data, ok, err := jar.ReadEntry(manifestPath)
	if !ok || err != nil {
		return "", err
	}
	return parseManifest(data)["Implementation-Version"], nil
}

// parseManifest reads the main section of a jar manifest. Lines starting
// with a space continue the previous value.
func parseManifest(data []byte) map[string]string {
	attrs := make(map[string]string)
	var last string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			break
		}
		if strings.HasPrefix(line, " ") && last != "" {
			attrs[last] += line[1:]
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		last = strings.TrimSpace(key)
		attrs[last] = strings.TrimSpace(value)
	}
	return attrs
}
