package scanner

import (
	"encoding/json"
	"strings"
)

const mcmodMetadata = "mcmod.info"

type mcmodEntry struct {
	ModID   string `json:"modid"`
	Version string `json:"version"`
}

// extractMcmod reads the legacy Forge mcmod.info, which is either a bare
// array of entries or an object with a "modList" array.
func extractMcmod(jar *Jar) (Identity, bool, error) {
	data, ok, err := jar.ReadEntry(mcmodMetadata)
	if !ok || err != nil {
		return Identity{}, false, err
	}
	data = sanitizeJSON(data)

	var entries []mcmodEntry
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		var wrapped struct {
			ModList []mcmodEntry `json:"modList"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return Identity{}, false, err
		}
		entries = wrapped.ModList
	} else if err := json.Unmarshal(data, &entries); err != nil {
		return Identity{}, false, err
	}

	for _, e := range entries {
		if id, found := identity(e.ModID, strings.TrimSpace(e.Version)); found {
			return id, true, nil
		}
	}
	return Identity{}, false, nil
}
