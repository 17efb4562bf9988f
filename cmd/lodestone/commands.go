package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lodestone-mc/lodestone/pkg/classify"
	"github.com/lodestone-mc/lodestone/pkg/contribution"
	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/modules"
	"github.com/lodestone-mc/lodestone/pkg/types"
	"github.com/lodestone-mc/lodestone/pkg/ui/display"
	"github.com/lodestone-mc/lodestone/pkg/watch"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newScanCmd(opts *globalOptions) *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:     "scan",
		Short:   MsgScanShort,
		Long:    MsgScanLong,
		Example: MsgScanExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			if err := a.load(cmd); err != nil {
				return err
			}
			snap := a.session.Snapshot()
			if snap == nil {
				return errors.New(errors.ErrInternal, MsgNoClassification)
			}

			result := display.NewScanResult(a.session.ModsDir(), snap, types.ParseTags(tags...))
			result.Verbose = opts.verbosity > 0
			return a.renderer.RenderResult(result)
		},
	}

	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, MsgFlagTag)
	_ = cmd.RegisterFlagCompletionFunc("tag", tagCompletion)
	return cmd
}

func newModulesCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "modules",
		Aliases: []string{"mod"},
		Short:   MsgModulesShort,
		Long:    MsgModulesLong,
		GroupID: "core",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: MsgModListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			if err := a.session.LoadModules(); err != nil {
				return err
			}
			mods, generation := a.session.Store().State()
			return a.renderer.RenderResult(display.NewModuleList(generation, mods))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: MsgModShowShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			if err := a.session.LoadModules(); err != nil {
				return err
			}
			mods, _ := a.session.Store().State()
			for i, m := range mods {
				if m.Name() == args[0] {
					return a.renderer.RenderResult(display.NewModuleDetail(i, m))
				}
			}
			return errors.Newf(errors.ErrModuleNotFound, MsgErrModuleMissing, args[0]).
				WithDetail("module", args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate [file...]",
		Short: MsgModCheckShort,
		Long:  MsgValidateLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			files := args
			if len(files) == 0 {
				if files, err = a.moduleFiles(opts); err != nil {
					return err
				}
			}

			result := &display.ValidationResult{Files: make([]display.FileValidation, 0, len(files))}
			invalid := 0
			for _, path := range files {
				m, err := validateModuleFile(a, path)
				if err != nil {
					invalid++
				}
				result.Files = append(result.Files, display.NewFileValidation(path, m, err))
			}
			if err := a.renderer.RenderResult(result); err != nil {
				return err
			}
			if !result.OK() {
				return errors.Newf(errors.ErrModuleInvalid, "%d of %d module files are invalid", invalid, len(files))
			}
			return nil
		},
	})

	return cmd
}

func validateModuleFile(a *app, path string) (*modules.Module, error) {
	data, err := a.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrFileNotFound, "module file not found").WithDetail("path", path)
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read module file").WithDetail("path", path)
	}
	return modules.Parse(path, data)
}

// moduleFiles lists the files a load would read, in load order.
func (a *app) moduleFiles(opts *globalOptions) ([]string, error) {
	var files []string
	entries, err := a.fs.ReadDir(a.modulesDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read modules directory").
			WithDetail("path", a.modulesDir)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			files = append(files, filepath.Join(a.modulesDir, e.Name()))
		}
	}
	sort.Strings(files)
	return append(files, opts.moduleFiles...), nil
}

func newUnknownCmd(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "unknown",
		Short:   MsgUnknownShort,
		Long:    MsgUnknownLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			if err := a.load(cmd); err != nil {
				return err
			}
			snap := a.session.Snapshot()
			if snap == nil {
				return errors.New(errors.ErrInternal, MsgNoClassification)
			}
			suggestions := classify.Suggest(snap, a.session.Store().Loaded(), limit)
			return a.renderer.RenderResult(display.NewUnknownResult(snap, suggestions))
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 3, MsgFlagLimit)
	return cmd
}

func newContributeCmd(opts *globalOptions) *cobra.Command {
	var (
		assignments   []string
		name          string
		author        string
		moduleVersion int
		output        string
		submit        bool
		destination   string
	)

	cmd := &cobra.Command{
		Use:     "contribute",
		Short:   MsgContributeShort,
		Long:    MsgContributeLong,
		Example: MsgContributeExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manual, err := parseAssignments(assignments)
			if err != nil {
				return err
			}

			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			if err := a.load(cmd); err != nil {
				return err
			}

			header := modules.Header{
				Name:    firstNonEmpty(name, a.cfg.Contribution.ModuleName),
				Version: moduleVersion,
				Author:  firstNonEmpty(author, a.cfg.Contribution.Author),
			}
			snap := a.session.Snapshot()
			m, err := contribution.Build(snap, manual, header)
			if err != nil {
				return err
			}
			sub, err := contribution.NewSubmission(m, snap, destination, time.Now())
			if err != nil {
				return err
			}

			result := &display.ContributionResult{
				Module:  m.Header.Name,
				Entries: len(m.Entries),
				Payload: sub.Payload,
			}
			if output != "" {
				if err := a.fs.WriteFile(output, sub.Payload, 0644); err != nil {
					return errors.Wrap(err, errors.ErrFileWrite, "cannot write module file").
						WithDetail("path", output)
				}
				log.Info().Str("path", output).Msgf(MsgModuleWritten, output)
			}
			if submit {
				outbox := contribution.NewOutboxSubmitter(a.fs, a.outboxDir)
				if err := outbox.Submit(cmd.Context(), sub); err != nil {
					return err
				}
				result.SubmittedTo = outbox.PathFor(sub)
			}
			return a.renderer.RenderResult(result)
		},
	}

	cmd.Flags().StringArrayVar(&assignments, "set", nil, MsgFlagSet)
	cmd.Flags().StringVar(&name, "name", "", MsgFlagName)
	cmd.Flags().StringVar(&author, "author", "", MsgFlagAuthor)
	cmd.Flags().IntVar(&moduleVersion, "module-version", 1, MsgFlagModVersion)
	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	cmd.Flags().BoolVar(&submit, "submit", false, MsgFlagSubmit)
	cmd.Flags().StringVar(&destination, "destination", "", MsgFlagDestination)
	return cmd
}

// parseAssignments reads --set values. Repeating an id is fine as long as
// the tag agrees.
func parseAssignments(values []string) (contribution.ManualTags, error) {
	manual := contribution.ManualTags{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			id, tag, err := contribution.ParseAssignment(part)
			if err != nil {
				return nil, err
			}
			if prev, ok := manual[id]; ok && prev != tag {
				return nil, errors.Newf(errors.ErrInvalidInput, MsgErrDuplicateSet, id, prev, tag).
					WithDetail("package", id)
			}
			manual[id] = tag
		}
	}
	return manual, nil
}

func newWatchCmd(opts *globalOptions) *cobra.Command {
	var (
		tags     []string
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:     "watch",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("debounce") {
				debounce = a.cfg.Watch.Debounce
			}
			if err := a.fs.MkdirAll(a.modulesDir, 0755); err != nil {
				return errors.Wrap(err, errors.ErrDirCreate, "cannot create modules directory").
					WithDetail("path", a.modulesDir)
			}

			filter := types.ParseTags(tags...)
			a.session.OnSnapshot(func(snap *classify.Snapshot) {
				result := display.NewScanResult(a.session.ModsDir(), snap, filter)
				result.Verbose = opts.verbosity > 0
				if err := a.renderer.RenderResult(result); err != nil {
					log.Warn().Err(err).Msg("Failed to render snapshot")
				}
			})

			w, err := watch.New(a.session, watch.Options{
				ModsDir:    a.session.ModsDir(),
				ModulesDir: a.modulesDir,
				Debounce:   debounce,
				OnError: func(err error) {
					_ = a.renderer.RenderError(err)
				},
			})
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "cannot start watching")
			}

			if err := a.load(cmd); err != nil {
				_ = a.renderer.RenderError(err)
			}
			log.Info().Msgf(MsgWatching, a.session.ModsDir(), a.modulesDir)
			return w.Run(cmd.Context())
		},
	}

	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, MsgFlagTag)
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, MsgFlagDebounce)
	_ = cmd.RegisterFlagCompletionFunc("tag", tagCompletion)
	return cmd
}

// tagCompletion offers the well-known tags.
func tagCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, t := range []types.Tag{types.TagClient, types.TagServer, types.TagBoth, types.TagUnknown} {
		if strings.HasPrefix(string(t), toComplete) {
			out = append(out, string(t))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
