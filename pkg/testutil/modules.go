package testutil

import (
	"fmt"
	"strings"
)

// ModuleJSON renders a module document with the given entries, as produced
// by EntryJSON.
func ModuleJSON(name string, entries ...string) string {
	return ModuleJSONBy(name, "test", entries...)
}

// ModuleJSONBy is ModuleJSON with an explicit author.
func ModuleJSONBy(name, author string, entries ...string) string {
	return fmt.Sprintf(`{"header":{"moduleName":%q,"moduleVersion":1,"moduleAuthor":%q},"mods":[%s]}`,
		name, author, strings.Join(entries, ","))
}

// EntryJSON renders one module entry.
func EntryJSON(id, constraint, tag string) string {
	return fmt.Sprintf(`{"modID":%q,"modVersion":%q,"modType":%q}`, id, constraint, tag)
}
