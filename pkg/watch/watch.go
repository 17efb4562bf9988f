// Package watch keeps a session current while the operator edits the mods
// or modules directory by hand. Bursts of filesystem events are debounced
// into one module reload and/or one rescan.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/lodestone-mc/lodestone/pkg/classify"
	"github.com/lodestone-mc/lodestone/pkg/logging"
	"github.com/lodestone-mc/lodestone/pkg/modules"
	"github.com/rs/zerolog"
)

// DefaultDebounce is used when no debounce interval is configured.
const DefaultDebounce = 500 * time.Millisecond

// Refresher is what the watcher drives; *session.Session implements it.
type Refresher interface {
	LoadModules() error
	Rescan(ctx context.Context) (*classify.Snapshot, error)
}

// Target tells which directory an event belongs to.
type Target int

const (
	TargetNone Target = iota
	TargetMods
	TargetModules
)

// Options configures a Watcher.
type Options struct {
	ModsDir    string
	ModulesDir string
	Debounce   time.Duration

	// OnError receives refresh failures. They are logged either way.
	OnError func(error)
}

// Watcher reacts to changes in the mods and modules directories.
type Watcher struct {
	fsw    *fsnotify.Watcher
	target Refresher
	opts   Options
	logger zerolog.Logger
}

// New creates a watcher. Run starts it.
func New(target Refresher, opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.ModsDir != "" {
		opts.ModsDir = filepath.Clean(opts.ModsDir)
	}
	if opts.ModulesDir != "" {
		opts.ModulesDir = filepath.Clean(opts.ModulesDir)
	}
	return &Watcher{
		fsw:    fsw,
		target: target,
		opts:   opts,
		logger: logging.GetLogger("watch"),
	}, nil
}

// Run watches until ctx is done. A directory that cannot be watched is an
// error; failing refreshes are reported and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fsw.Close() }()

	for _, dir := range []string{w.opts.ModsDir, w.opts.ModulesDir} {
		if dir == "" {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
		w.logger.Info().Str("dir", dir).Msg("Watching")
	}

	timer := time.NewTimer(w.opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := map[Target]bool{}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			target := w.Classify(event)
			if target == TargetNone {
				continue
			}
			w.logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("Change detected")
			pending[target] = true
			timer.Reset(w.opts.Debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.report(err)

		case <-timer.C:
			w.flush(ctx, pending)
			pending = map[Target]bool{}
		}
	}
}

// flush applies pending work. Modules go first so a rescan in the same
// batch is resolved against them; a module reload alone reuses the last
// scan.
func (w *Watcher) flush(ctx context.Context, pending map[Target]bool) {
	if pending[TargetModules] {
		if err := w.target.LoadModules(); err != nil {
			w.report(err)
		} else {
			w.logger.Info().Msg("Modules reloaded")
		}
	}
	if pending[TargetMods] {
		if _, err := w.target.Rescan(ctx); err != nil {
			w.report(err)
		} else {
			w.logger.Info().Msg("Mods rescanned")
		}
	}
}

func (w *Watcher) report(err error) {
	w.logger.Error().Err(err).Msg("Refresh failed")
	if w.opts.OnError != nil {
		w.opts.OnError(err)
	}
}

// Classify maps an event to the directory it concerns. Chmod events and
// the temporary files lodestone writes itself are ignored.
func (w *Watcher) Classify(event fsnotify.Event) Target {
	if event.Op == fsnotify.Chmod {
		return TargetNone
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".lodestone-writecheck-") || strings.Contains(name, ".tmp-") {
		return TargetNone
	}

	dir := filepath.Dir(filepath.Clean(event.Name))
	switch {
	case w.opts.ModulesDir != "" && dir == w.opts.ModulesDir:
		if strings.EqualFold(filepath.Ext(name), modules.ModuleFileExt) {
			return TargetModules
		}
	case w.opts.ModsDir != "" && dir == w.opts.ModsDir:
		return TargetMods
	}
	return TargetNone
}
