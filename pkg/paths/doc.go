// Package paths provides centralized path handling for lodestone.
//
// It follows the XDG Base Directory specification through adrg/xdg and
// resolves the directories every other component is configured with:
//
//   - Config: $XDG_CONFIG_HOME/lodestone (config.toml)
//   - Data: $XDG_DATA_HOME/lodestone (modules/, outbox/)
//   - State: $XDG_STATE_HOME/lodestone (lodestone.log)
//
// # Environment Variables
//
//   - LODESTONE_CONFIG_DIR, LODESTONE_DATA_DIR, LODESTONE_STATE_DIR override
//     the XDG locations.
//   - LODESTONE_MODS_DIR names the mods directory to classify.
//
// # Mods directory discovery
//
// When no mods directory is configured, a "mods" directory under the
// current working directory is used if it exists (the layout of a server
// install), otherwise the default launcher location for the platform.
package paths
