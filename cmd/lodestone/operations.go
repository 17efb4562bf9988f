package main

import (
	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/operations"
	"github.com/lodestone-mc/lodestone/pkg/paths"
	"github.com/lodestone-mc/lodestone/pkg/types"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRemoveCmd(opts *globalOptions) *cobra.Command {
	return newOperationCmd(opts, operations.VerbRemove, "remove", MsgRemoveShort)
}

func newMoveCmd(opts *globalOptions) *cobra.Command {
	return newOperationCmd(opts, operations.VerbMove, "move", MsgMoveShort)
}

func newArchiveCmd(opts *globalOptions) *cobra.Command {
	return newOperationCmd(opts, operations.VerbArchive, "archive", MsgArchiveShort)
}

func newExportCmd(opts *globalOptions) *cobra.Command {
	return newOperationCmd(opts, operations.VerbExport, "export", MsgExportShort)
}

// newOperationCmd builds one of the bulk operation commands. They share
// flags and differ only in the verb and the meaning of --to.
func newOperationCmd(opts *globalOptions, verb operations.Verb, use, short string) *cobra.Command {
	var (
		tags   []string
		dryRun bool
		to     string
		save   bool
	)

	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Long:    MsgOperationLong,
		Example: MsgOperationExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}

			plan := operations.Plan{
				Verb:        verb,
				Filter:      types.ParseTags(tags...),
				Destination: paths.ExpandHome(to),
				DryRun:      dryRun,
			}
			toStdout := false
			switch verb {
			case operations.VerbArchive:
				if plan.Destination == "" {
					plan.Destination = a.cfg.Archive.DefaultName
				}
			case operations.VerbExport:
				if plan.Destination == "" && save {
					plan.Destination = a.cfg.Export.DefaultName
				}
				if plan.Destination == "" {
					plan.Writer = cmd.OutOrStdout()
					toStdout = true
				}
			}
			// Reject a bad plan before scanning anything.
			if err := plan.Validate(); err != nil {
				return err
			}

			if err := a.load(cmd); err != nil {
				return err
			}

			progress := newProgress(verb)
			defer progress.stop()
			executor := operations.NewExecutor(a.fs, operations.WithProgress(progress.event))
			report, err := executor.Execute(cmd.Context(), plan, a.session.Snapshot())
			if err != nil {
				return err
			}
			progress.stop()

			if !toStdout || dryRun || !report.OK() {
				if err := a.renderer.RenderResult(report); err != nil {
					return err
				}
			}
			return reportError(report)
		},
	}

	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, MsgFlagTag)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	if verb != operations.VerbRemove {
		cmd.Flags().StringVar(&to, "to", "", MsgFlagTo)
	}
	if verb == operations.VerbExport {
		cmd.Flags().BoolVar(&save, "save", false, MsgFlagSave)
	}
	if verb == operations.VerbMove {
		_ = cmd.MarkFlagRequired("to")
		_ = cmd.MarkFlagDirname("to")
	}
	_ = cmd.MarkFlagRequired("tag")
	_ = cmd.RegisterFlagCompletionFunc("tag", tagCompletion)
	return cmd
}

// reportError turns an unsuccessful report into the error the command
// exits with. The report itself has already been rendered.
func reportError(r *operations.Report) error {
	switch {
	case r.OK():
		return nil
	case r.Cancelled:
		return errors.Newf(errors.ErrCancelled, MsgErrCancelled, r.Verb, len(r.NotAttempted))
	case len(r.Preflight) > 0:
		return errors.Newf(errors.ErrPreflight, MsgErrPreflight, r.Verb, len(r.Preflight)).
			WithDetail("files", len(r.Preflight))
	}

	code := errors.ErrMoveConflict
	if len(r.Failed) > 0 {
		code = errors.GetErrorCode(r.Failed[0].Err)
	}
	return errors.Newf(code, MsgErrReportFailed, r.Verb, len(r.Failed), len(r.Conflicts), len(r.NotAttempted))
}

// progress shows a bar on a terminal and logs events otherwise.
type progress struct {
	verb    operations.Verb
	enabled bool
	bar     *pterm.ProgressbarPrinter
}

func newProgress(verb operations.Verb) *progress {
	return &progress{
		verb:    verb,
		enabled: stdoutIsTerminal() && verb != operations.VerbExport,
	}
}

func (p *progress) event(ev operations.Event) {
	log.Debug().
		Str("verb", ev.Verb.String()).
		Str("path", ev.Path).
		Str("outcome", string(ev.Outcome)).
		Int("index", ev.Index).
		Int("total", ev.Total).
		Msg("Progress")

	if !p.enabled || ev.Outcome == operations.OutcomePlanned {
		return
	}
	if p.bar == nil {
		bar, err := pterm.DefaultProgressbar.
			WithTotal(ev.Total).
			WithTitle(p.verb.String()).
			WithRemoveWhenDone(true).
			Start()
		if err != nil {
			p.enabled = false
			return
		}
		p.bar = bar
	}
	p.bar.UpdateTitle(p.verb.String() + " " + ev.Path)
	p.bar.Increment()
}

func (p *progress) stop() {
	if p.bar != nil {
		_, _ = p.bar.Stop()
		p.bar = nil
	}
}
