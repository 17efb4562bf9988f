// Package config handles configuration management for lodestone.
// Configuration is layered with koanf: embedded defaults, then the user's
// TOML file, then LODESTONE_ environment variables.
package config
