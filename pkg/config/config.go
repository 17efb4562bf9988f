package config

import (
	"time"
)

// Paths holds user-configurable directories. Empty values are resolved by
// pkg/paths.
type Paths struct {
	ModsDir    string `koanf:"mods_dir"`
	ModulesDir string `koanf:"modules_dir"`
	OutboxDir  string `koanf:"outbox_dir"`
}

// Scanner configures package discovery.
type Scanner struct {
	Extensions []string `koanf:"extensions"`
	Workers    int      `koanf:"workers"`
	IgnoreFile string   `koanf:"ignore_file"`
}

// Archive configures the archive operation.
type Archive struct {
	DefaultName string `koanf:"default_name"`
}

// Export configures the export operation.
type Export struct {
	DefaultName string `koanf:"default_name"`
}

// Contribution holds defaults for contribution headers.
type Contribution struct {
	Author     string `koanf:"author"`
	ModuleName string `koanf:"module_name"`
}

// Watch configures the directory watcher.
type Watch struct {
	Debounce time.Duration `koanf:"debounce"`
}

// Config is the complete lodestone configuration.
type Config struct {
	Paths        Paths        `koanf:"paths"`
	Scanner      Scanner      `koanf:"scanner"`
	Archive      Archive      `koanf:"archive"`
	Export       Export       `koanf:"export"`
	Contribution Contribution `koanf:"contribution"`
	Watch        Watch        `koanf:"watch"`
}

// Default returns the configuration built from the embedded defaults only.
func Default() *Config {
	cfg, err := Load(LoadOptions{SkipEnv: true})
	if err != nil {
		// the embedded file is part of the binary; failing to read it is a
		// build defect
		panic(err)
	}
	return cfg
}
