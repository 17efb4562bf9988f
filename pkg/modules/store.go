package modules

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/logging"
	"github.com/lodestone-mc/lodestone/pkg/types"
	"github.com/rs/zerolog"
)

// ModuleFileExt is the extension LoadDir picks up.
const ModuleFileExt = ".json"

// Store holds the loaded modules in load order. It is safe for concurrent
// use. Every successful load or unload bumps the generation.
type Store struct {
	mu         sync.RWMutex
	modules    []*Module
	generation uint64
	logger     zerolog.Logger
}

// NewStore returns an empty store at generation 0.
func NewStore() *Store {
	return &Store{logger: logging.GetLogger("modules.store")}
}

// Load parses data and appends the module.
func (s *Store) Load(source string, data []byte) (*Module, error) {
	m, err := Parse(source, data)
	if err != nil {
		return nil, err
	}
	if err := s.add([]*Module{m}); err != nil {
		return nil, err
	}
	return m, nil
}

// Add validates a module built in memory and appends a copy of it.
func (s *Store) Add(m *Module) (*Module, error) {
	if err := Validate(m); err != nil {
		return nil, err
	}
	c := m.clone()
	if err := s.add([]*Module{c}); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads and loads a single module file.
func (s *Store) LoadFile(fs types.FS, path string) (*Module, error) {
	m, err := readModule(fs, path)
	if err != nil {
		return nil, err
	}
	if err := s.add([]*Module{m}); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadDir loads every module file of dir in lexical order. The first
// failure aborts and the store is left unchanged.
func (s *Store) LoadDir(fs types.FS, dir string) ([]*Module, error) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read modules directory").
			WithDetail("path", dir)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ModuleFileExt) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	batch := make([]*Module, 0, len(names))
	for _, name := range names {
		m, err := readModule(fs, filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		batch = append(batch, m)
	}
	if err := s.add(batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// Loaded returns the modules in load order.
func (s *Store) Loaded() []*Module {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Module, len(s.modules))
	copy(out, s.modules)
	return out
}

// State returns the modules in load order together with the generation they
// belong to.
func (s *Store) State() ([]*Module, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Module, len(s.modules))
	copy(out, s.modules)
	return out, s.generation
}

// Get returns the loaded module with the given name.
func (s *Store) Get(name string) (*Module, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.modules {
		if m.Header.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Unload removes a module by name.
func (s *Store) Unload(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.modules {
		if m.Header.Name != name {
			continue
		}
		s.modules = append(s.modules[:i:i], s.modules[i+1:]...)
		s.generation++
		s.logger.Info().
			Str("module", name).
			Uint64("generation", s.generation).
			Msg("Module unloaded")
		return nil
	}
	return errors.Newf(errors.ErrModuleNotFound, "module %q is not loaded", name).
		WithDetail("module", name)
}

// Replace swaps the whole content of the store for mods, in the given order.
// Names must be unique; on error the store is unchanged.
func (s *Store) Replace(mods []*Module) error {
	names := make(map[string]bool, len(mods))
	for _, m := range mods {
		if names[m.Header.Name] {
			return errors.Newf(errors.ErrModuleExists, "module %q is listed twice", m.Header.Name).
				WithDetail("module", m.Header.Name).
				WithDetail("source", m.Source)
		}
		names[m.Header.Name] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.modules = append([]*Module(nil), mods...)
	s.generation++
	s.logger.Info().
		Int("modules", len(mods)).
		Uint64("generation", s.generation).
		Msg("Modules replaced")
	return nil
}

// UnloadAll empties the store. The generation is bumped even when the store
// was already empty.
func (s *Store) UnloadAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modules = nil
	s.generation++
}

// Generation returns the current store generation.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Len returns the number of loaded modules.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.modules)
}

// add appends a batch atomically: names must be unique among the loaded
// modules and within the batch.
func (s *Store) add(batch []*Module) error {
	if len(batch) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make(map[string]string, len(s.modules)+len(batch))
	for _, m := range s.modules {
		names[m.Header.Name] = m.Source
	}
	for _, m := range batch {
		if prev, ok := names[m.Header.Name]; ok {
			return errors.Newf(errors.ErrModuleExists, "module %q is already loaded", m.Header.Name).
				WithDetail("module", m.Header.Name).
				WithDetail("source", m.Source).
				WithDetail("loadedFrom", prev)
		}
		names[m.Header.Name] = m.Source
	}

	s.modules = append(s.modules, batch...)
	s.generation++
	for _, m := range batch {
		s.logger.Info().
			Str("module", m.Header.Name).
			Int("version", m.Header.Version).
			Int("entries", len(m.Entries)).
			Str("source", m.Source).
			Uint64("generation", s.generation).
			Msg("Module loaded")
	}
	return nil
}

func readModule(fs types.FS, path string) (*Module, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read module file").
			WithDetail("module", path).
			WithDetail("path", path)
	}
	return Parse(path, data)
}
