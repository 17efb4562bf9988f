package config

import (
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/logging"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LODESTONE_"

// sections lists the top-level tables, used to split environment keys.
var sections = []string{"paths", "scanner", "archive", "export", "contribution", "watch"}

// LoadOptions selects the layers to load.
type LoadOptions struct {
	// File is the user configuration file. A missing file is not an error
	// unless Required is set.
	File     string
	Required bool

	// SkipEnv ignores LODESTONE_ environment variables.
	SkipEnv bool

	// Overrides are applied last, keyed by dotted path ("paths.mods_dir").
	Overrides map[string]interface{}
}

// Load builds the configuration from the embedded defaults, the user file,
// the environment and explicit overrides, in that order.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(defaultsProvider{}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User file
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err == nil {
			if err := k.Load(file.Provider(opts.File), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", opts.File).
					WithDetail("path", opts.File)
			}
			logger.Debug().Str("path", opts.File).Msg("Loaded user config")
		} else if opts.Required || !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", opts.File).
				WithDetail("path", opts.File)
		}
	}

	// 3. Environment
	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps LODESTONE_SCANNER_IGNORE_FILE to scanner.ignore_file. Only
// the first underscore after the prefix separates the section, since keys
// contain underscores themselves.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range sections {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if c.Scanner.Workers < 0 {
		return errors.Newf(errors.ErrConfigValid, "scanner.workers must not be negative, got %d", c.Scanner.Workers).
			WithDetail("key", "scanner.workers")
	}
	if c.Watch.Debounce < 0 {
		return errors.New(errors.ErrConfigValid, "watch.debounce must not be negative").
			WithDetail("key", "watch.debounce")
	}
	for i, ext := range c.Scanner.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			return errors.New(errors.ErrConfigValid, "scanner.extensions contains an empty entry").
				WithDetail("key", "scanner.extensions")
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Scanner.Extensions[i] = ext
	}
	return nil
}
