package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/lodestone-mc/lodestone/pkg/errors"
)

// Environment variable names
const (
	EnvConfigDir = "LODESTONE_CONFIG_DIR"
	EnvDataDir   = "LODESTONE_DATA_DIR"
	EnvStateDir  = "LODESTONE_STATE_DIR"
	EnvModsDir   = "LODESTONE_MODS_DIR"
	EnvHome      = "HOME"
)

// Fixed names inside the lodestone directories.
const (
	AppDirName     = "lodestone"
	ConfigFileName = "config.toml"
	ModulesDirName = "modules"
	OutboxDirName  = "outbox"
	ModsDirName    = "mods"
	LogFileName    = "lodestone.log"
)

// Paths resolves the directories lodestone reads and writes.
type Paths interface {
	ConfigDir() string
	ConfigFile() string
	DataDir() string
	StateDir() string
	ModulesDir() string
	OutboxDir() string
	LogFilePath() string
	ModsDir() string
	UsedFallback() bool
}

type paths struct {
	configDir    string
	dataDir      string
	stateDir     string
	modsDir      string
	usedFallback bool
}

// New resolves all paths. modsDir may be empty, in which case it is
// discovered.
func New(modsDir string) (Paths, error) {
	p := &paths{
		configDir: dirFromEnv(EnvConfigDir, xdg.ConfigHome),
		dataDir:   dirFromEnv(EnvDataDir, xdg.DataHome),
		stateDir:  dirFromEnv(EnvStateDir, xdg.StateHome),
	}

	if modsDir == "" {
		dir, fallback, err := findModsDir()
		if err != nil {
			return nil, err
		}
		p.modsDir = dir
		p.usedFallback = fallback
	} else {
		p.modsDir = ExpandHome(modsDir)
	}

	abs, err := filepath.Abs(p.modsDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for mods directory").
			WithDetail("path", p.modsDir)
	}
	p.modsDir = abs
	return p, nil
}

// DefaultLogFile is where the log goes before any configuration is read:
// LODESTONE_STATE_DIR, then XDG_STATE_HOME, then the platform state dir.
func DefaultLogFile() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return filepath.Join(ExpandHome(dir), LogFileName)
	}
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		base = xdg.StateHome
	}
	return filepath.Join(base, AppDirName, LogFileName)
}

func dirFromEnv(env, xdgBase string) string {
	if dir := os.Getenv(env); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdgBase, AppDirName)
}

// findModsDir picks the mods directory in this order:
// 1. LODESTONE_MODS_DIR
// 2. ./mods when it exists
// 3. the platform's launcher directory (reported as a fallback)
func findModsDir() (string, bool, error) {
	if dir := os.Getenv(EnvModsDir); dir != "" {
		return ExpandHome(dir), false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}
	local := filepath.Join(cwd, ModsDirName)
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return local, false, nil
	}

	return filepath.Join(LauncherDir(), ModsDirName), true, nil
}

// LauncherDir returns the default game directory of the vanilla launcher.
func LauncherDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv(EnvHome)
	}
	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, ".minecraft")
		}
		return filepath.Join(home, "AppData", "Roaming", ".minecraft")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "minecraft")
	default:
		return filepath.Join(home, ".minecraft")
	}
}

// ExpandHome expands a leading ~ to the home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}
	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	// ~user is left alone
	return path
}

func (p *paths) ConfigDir() string { return p.configDir }

// ConfigFile returns the user configuration file path.
func (p *paths) ConfigFile() string { return filepath.Join(p.configDir, ConfigFileName) }

func (p *paths) DataDir() string  { return p.dataDir }
func (p *paths) StateDir() string { return p.stateDir }

// ModulesDir holds the module files loaded at startup.
func (p *paths) ModulesDir() string { return filepath.Join(p.dataDir, ModulesDirName) }

// OutboxDir is where contributions are written for later submission.
func (p *paths) OutboxDir() string { return filepath.Join(p.dataDir, OutboxDirName) }

func (p *paths) LogFilePath() string { return filepath.Join(p.stateDir, LogFileName) }

func (p *paths) ModsDir() string { return p.modsDir }

// UsedFallback reports whether the mods directory is the launcher default
// rather than a configured or local one.
func (p *paths) UsedFallback() bool { return p.usedFallback }
