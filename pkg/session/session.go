// Package session holds the process-wide state: the module store, the
// latest scan and the classification snapshot derived from both.
//
// Writers (module loads and unloads, rescans) are serialized. The snapshot
// is published through an atomic pointer, so readers never block and never
// see a half-built result.
package session

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/lodestone-mc/lodestone/pkg/classify"
	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/logging"
	"github.com/lodestone-mc/lodestone/pkg/modules"
	"github.com/lodestone-mc/lodestone/pkg/scanner"
	"github.com/lodestone-mc/lodestone/pkg/types"
	"github.com/rs/zerolog"
)

// Config says where mods and modules live.
type Config struct {
	ModsDir string

	// ModulesDir is loaded first, in lexical order. It may be missing.
	ModulesDir string

	// ModuleFiles are loaded after ModulesDir, in the given order.
	ModuleFiles []string

	Scanner scanner.Options
}

// Listener is told about every published snapshot.
type Listener func(*classify.Snapshot)

// Session is safe for concurrent use.
type Session struct {
	fs      types.FS
	cfg     Config
	store   *modules.Store
	scanner *scanner.Scanner

	mu       sync.Mutex
	packages []types.InstalledPackage
	scanID   string
	scans    int

	snapshot  atomic.Pointer[classify.Snapshot]
	listeners []Listener
	logger    zerolog.Logger
}

// New creates a session. Nothing is loaded or scanned yet.
func New(fs types.FS, cfg Config) *Session {
	return &Session{
		fs:      fs,
		cfg:     cfg,
		store:   modules.NewStore(),
		scanner: scanner.New(fs, cfg.Scanner),
		logger:  logging.GetLogger("session"),
	}
}

// OnSnapshot registers a listener. Listeners run while the writer lock is
// held and must not call back into the session's writers.
func (s *Session) OnSnapshot(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Store returns the module store.
func (s *Session) Store() *modules.Store { return s.store }

// ModsDir returns the scanned directory.
func (s *Session) ModsDir() string { return s.cfg.ModsDir }

// ModulesDir returns the directory modules are loaded from.
func (s *Session) ModulesDir() string { return s.cfg.ModulesDir }

// Snapshot returns the latest snapshot, nil before the first scan.
func (s *Session) Snapshot() *classify.Snapshot { return s.snapshot.Load() }

// Packages returns the packages of the latest scan.
func (s *Session) Packages() []types.InstalledPackage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.InstalledPackage(nil), s.packages...)
}

// LoadModules (re)loads the modules directory and the extra module files.
// Everything is parsed before the store is touched: on error the store and
// the snapshot are unchanged.
func (s *Session) LoadModules() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staging := modules.NewStore()
	if s.cfg.ModulesDir != "" {
		if _, err := s.fs.Stat(s.cfg.ModulesDir); err == nil {
			if _, err := staging.LoadDir(s.fs, s.cfg.ModulesDir); err != nil {
				return err
			}
		} else if os.IsNotExist(err) {
			s.logger.Debug().Str("dir", s.cfg.ModulesDir).Msg("Modules directory does not exist")
		} else {
			return errors.Wrap(err, errors.ErrFileAccess, "cannot access modules directory").
				WithDetail("path", s.cfg.ModulesDir)
		}
	}
	for _, path := range s.cfg.ModuleFiles {
		if _, err := staging.LoadFile(s.fs, path); err != nil {
			return err
		}
	}

	if err := s.store.Replace(staging.Loaded()); err != nil {
		return err
	}
	s.reclassifyLocked()
	return nil
}

// LoadModule loads one more module file, after the loaded ones.
func (s *Session) LoadModule(path string) (*modules.Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.store.LoadFile(s.fs, path)
	if err != nil {
		return nil, err
	}
	s.reclassifyLocked()
	return m, nil
}

// UnloadModule removes a module by name.
func (s *Session) UnloadModule(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Unload(name); err != nil {
		return err
	}
	s.reclassifyLocked()
	return nil
}

// Rescan scans the mods directory and publishes a new snapshot. A failed
// scan keeps the previous snapshot.
func (s *Session) Rescan(ctx context.Context) (*classify.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	packages, err := s.scanner.Scan(ctx, s.cfg.ModsDir)
	if err != nil {
		return nil, err
	}
	s.scans++
	s.packages = packages
	s.scanID = fmt.Sprintf("scan-%d", s.scans)
	return s.reclassifyLocked(), nil
}

// reclassifyLocked resolves the current scan against the current store.
// Without a scan there is nothing to classify.
func (s *Session) reclassifyLocked() *classify.Snapshot {
	if s.scanID == "" {
		return nil
	}
	mods, generation := s.store.State()
	snap := classify.Resolve(mods, s.packages, classify.Options{
		Generation: generation,
		ScanID:     s.scanID,
	})
	s.snapshot.Store(snap)

	counts := snap.Counts()
	s.logger.Info().
		Str("scan", snap.ScanID()).
		Uint64("generation", snap.Generation()).
		Int("packages", counts.Total).
		Int("unknown", counts.ByStatus[classify.StatusUnknown.String()]).
		Int("ambiguous", counts.ByStatus[classify.StatusAmbiguous.String()]).
		Str("fingerprint", snap.Fingerprint()).
		Msg("Snapshot published")

	for _, l := range s.listeners {
		l(snap)
	}
	return snap
}
