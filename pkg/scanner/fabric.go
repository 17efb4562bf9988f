package scanner

import (
	"bytes"
	"encoding/json"
	"strings"
)

const (
	fabricMetadata = "fabric.mod.json"
	quiltMetadata  = "quilt.mod.json"
)

type fabricMod struct {
	ID      string `json:"id"`
	Version string `json:"version"`
}

type quiltMod struct {
	Loader struct {
		ID      string `json:"id"`
		Version string `json:"version"`
	} `json:"quilt_loader"`
}

func extractFabric(jar *Jar) (Identity, bool, error) {
	data, ok, err := jar.ReadEntry(fabricMetadata)
	if !ok || err != nil {
		return Identity{}, false, err
	}
	var mod fabricMod
	if err := json.Unmarshal(sanitizeJSON(data), &mod); err != nil {
		return Identity{}, false, err
	}
	id, found := identity(mod.ID, strings.TrimSpace(mod.Version))
	return id, found, nil
}

func extractQuilt(jar *Jar) (Identity, bool, error) {
	data, ok, err := jar.ReadEntry(quiltMetadata)
	if !ok || err != nil {
		return Identity{}, false, err
	}
	var mod quiltMod
	if err := json.Unmarshal(sanitizeJSON(data), &mod); err != nil {
		return Identity{}, false, err
	}
	id, found := identity(mod.Loader.ID, strings.TrimSpace(mod.Loader.Version))
	return id, found, nil
}

// sanitizeJSON drops a UTF-8 byte order mark and replaces raw line breaks
// inside string literals, both of which appear in published metadata.
func sanitizeJSON(data []byte) []byte {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	out := make([]byte, 0, len(data))
	inString, escaped := false, false
	for _, b := range data {
		switch {
		case escaped:
			escaped = false
		case b == '\\' && inString:
			escaped = true
		case b == '"':
			inString = !inString
		case inString && (b == '\n' || b == '\r' || b == '\t'):
			out = append(out, ' ')
			continue
		}
		out = append(out, b)
	}
	return out
}
