package scanner

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/logging"
	"github.com/lodestone-mc/lodestone/pkg/registry"
	"github.com/lodestone-mc/lodestone/pkg/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultExtensions are the candidate file extensions when none are
// configured.
var DefaultExtensions = []string{".jar"}

// Options configures a Scanner. Zero values select the defaults.
type Options struct {
	Extensions []string
	Workers    int
	IgnoreFile string
	Extractors registry.Registry[Extractor]
}

// Scanner enumerates mod files of a directory and extracts their identity.
type Scanner struct {
	fs         types.FS
	extensions []string
	workers    int
	ignoreFile string
	extractors registry.Registry[Extractor]
	logger     zerolog.Logger
}

// New creates a scanner reading through fs.
func New(fs types.FS, opts Options) *Scanner {
	s := &Scanner{
		fs:         fs,
		workers:    opts.Workers,
		ignoreFile: opts.IgnoreFile,
		extractors: opts.Extractors,
		logger:     logging.GetLogger("scanner"),
	}
	for _, ext := range opts.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.extensions = append(s.extensions, ext)
	}
	if len(s.extensions) == 0 {
		s.extensions = DefaultExtensions
	}
	if s.workers <= 0 {
		s.workers = runtime.NumCPU()
	}
	if s.ignoreFile == "" {
		s.ignoreFile = DefaultIgnoreFile
	}
	if s.extractors == nil {
		s.extractors = DefaultExtractors()
	}
	return s
}

// Scan returns one package per candidate file of dir, sorted by path. Only
// the top level is read. Files whose metadata cannot be read are still
// reported, with the unparsable version sentinel.
func (s *Scanner) Scan(ctx context.Context, dir string) ([]types.InstalledPackage, error) {
	done := logging.LogOperationStart(s.logger, "scan")
	defer done()

	files, err := s.candidates(dir)
	if err != nil {
		return nil, err
	}

	results := make([]types.InstalledPackage, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.inspect(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCancelled, "scan cancelled").
			WithDetail("path", dir)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCancelled, "scan cancelled").
			WithDetail("path", dir)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Path != results[j].Path {
			return results[i].Path < results[j].Path
		}
		return results[i].ID < results[j].ID
	})

	unparsable := 0
	for _, p := range results {
		if p.Unparsable() {
			unparsable++
		}
	}
	s.logger.Info().
		Str("dir", dir).
		Int("packages", len(results)).
		Int("unparsable", unparsable).
		Msg("Scan complete")
	return results, nil
}

// candidates lists the files of dir that should be inspected.
func (s *Scanner) candidates(dir string) ([]string, error) {
	info, err := s.fs.Stat(dir)
	if err != nil {
		return nil, unreadable(dir, err, "mods directory cannot be accessed")
	}
	if !info.IsDir() {
		return nil, unreadable(dir, nil, "mods path is not a directory")
	}
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return nil, unreadable(dir, err, "mods directory cannot be read")
	}

	ignore := s.loadIgnore(dir)

	var files []string
	for _, e := range entries {
		name := e.Name()
		if strings.EqualFold(name, s.ignoreFile) || !s.hasExtension(name) {
			continue
		}
		if ignore.matches(name) {
			s.logger.Debug().Str("file", name).Msg("Ignored by ignore file")
			continue
		}
		path := filepath.Join(dir, name)
		if !s.isFile(e, path) {
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

func (s *Scanner) isFile(e fs.DirEntry, path string) bool {
	if e.IsDir() {
		return false
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return true
	}
	info, err := s.fs.Stat(path)
	return err == nil && !info.IsDir()
}

func (s *Scanner) hasExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range s.extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func (s *Scanner) loadIgnore(dir string) ignoreList {
	data, err := s.fs.ReadFile(filepath.Join(dir, s.ignoreFile))
	if err != nil {
		return nil
	}
	return parseIgnore(data)
}

// inspect never fails: problems turn into an unparsable package.
func (s *Scanner) inspect(path string) types.InstalledPackage {
	name := filepath.Base(path)
	pkg := types.InstalledPackage{
		ID:       types.IDFromFileName(name),
		Version:  types.UnparsableVersion,
		Path:     path,
		FileName: name,
	}
	logger := s.logger.With().Str("file", name).Logger()

	data, err := s.fs.ReadFile(path)
	if err != nil {
		logger.Warn().Err(err).Msg("Cannot read mod file")
		return pkg
	}
	jar, err := OpenJar(name, data)
	if err != nil {
		logger.Warn().Err(err).Msg("Mod file is not a readable archive")
		return pkg
	}

	for _, source := range s.extractors.List() {
		extractor, err := s.extractors.Get(source)
		if err != nil {
			continue
		}
		id, found, err := extractor.Extract(jar)
		if err != nil {
			logger.Debug().Err(err).Str("extractor", source).Msg("Metadata unreadable")
			continue
		}
		if !found {
			continue
		}
		pkg.ID = id.ID
		pkg.Version = id.Version
		pkg.Source = source
		logger.Trace().
			Str("id", pkg.ID).
			Str("version", pkg.Version).
			Str("extractor", source).
			Msg("Identified mod")
		return pkg
	}

	logger.Warn().Msg("No recognizable mod metadata")
	return pkg
}

func unreadable(dir string, err error, msg string) error {
	if err == nil {
		return errors.New(errors.ErrDirectoryUnreadable, msg).WithDetail("path", dir)
	}
	return errors.Wrap(err, errors.ErrDirectoryUnreadable, msg).WithDetail("path", dir)
}
