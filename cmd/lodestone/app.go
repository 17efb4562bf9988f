package main

import (
	"fmt"

	"github.com/lodestone-mc/lodestone/pkg/config"
	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/filesystem"
	"github.com/lodestone-mc/lodestone/pkg/paths"
	"github.com/lodestone-mc/lodestone/pkg/scanner"
	"github.com/lodestone-mc/lodestone/pkg/session"
	"github.com/lodestone-mc/lodestone/pkg/types"
	"github.com/lodestone-mc/lodestone/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app bundles what a command needs: resolved configuration and paths, the
// session and a renderer bound to the command's output.
type app struct {
	cfg      *config.Config
	paths    paths.Paths
	fs       types.FS
	session  *session.Session
	renderer ui.Renderer

	modulesDir string
	outboxDir  string
}

// newApp loads the configuration and prepares a session. Nothing is loaded
// or scanned yet.
func newApp(cmd *cobra.Command, opts *globalOptions) (*app, error) {
	p, err := paths.New(opts.modsDir)
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	loadOpts := config.LoadOptions{File: p.ConfigFile()}
	if opts.configFile != "" {
		loadOpts.File = paths.ExpandHome(opts.configFile)
		loadOpts.Required = true
	}
	cfg, err := config.Load(loadOpts)
	if err != nil {
		return nil, err
	}

	// The flag beats the config file, which beats discovery.
	if opts.modsDir == "" && cfg.Paths.ModsDir != "" {
		if p, err = paths.New(cfg.Paths.ModsDir); err != nil {
			return nil, fmt.Errorf(MsgErrInitPaths, err)
		}
	}
	if p.UsedFallback() {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackWarning+"\n", p.ModsDir())
	}

	format, err := ui.ParseFormat(opts.format)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid --format").
			WithDetail("format", opts.format)
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:        cfg,
		paths:      p,
		fs:         filesystem.NewOS(),
		renderer:   renderer,
		modulesDir: paths.ExpandHome(firstNonEmpty(cfg.Paths.ModulesDir, p.ModulesDir())),
		outboxDir:  paths.ExpandHome(firstNonEmpty(cfg.Paths.OutboxDir, p.OutboxDir())),
	}

	moduleFiles := make([]string, 0, len(opts.moduleFiles))
	for _, f := range opts.moduleFiles {
		moduleFiles = append(moduleFiles, paths.ExpandHome(f))
	}

	a.session = session.New(a.fs, session.Config{
		ModsDir:     p.ModsDir(),
		ModulesDir:  a.modulesDir,
		ModuleFiles: moduleFiles,
		Scanner: scanner.Options{
			Extensions: cfg.Scanner.Extensions,
			Workers:    cfg.Scanner.Workers,
			IgnoreFile: cfg.Scanner.IgnoreFile,
		},
	})

	log.Debug().
		Str("modsDir", a.session.ModsDir()).
		Str("modulesDir", a.session.ModulesDir()).
		Int("moduleFiles", len(moduleFiles)).
		Msg("Session configured")
	return a, nil
}

// load reads the modules and scans the mods directory.
func (a *app) load(cmd *cobra.Command) error {
	if err := a.session.LoadModules(); err != nil {
		return err
	}
	_, err := a.session.Rescan(cmd.Context())
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
