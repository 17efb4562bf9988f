package main

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Sort Minecraft mods into client and server side"
	MsgScanShort       = "Classify the mods directory"
	MsgModulesShort    = "Inspect and validate modules"
	MsgModListShort    = "List loaded modules in load order"
	MsgModShowShort    = "Show the rules of a module"
	MsgModCheckShort   = "Check module files without loading them"
	MsgUnknownShort    = "List unclassified mods with suggestions"
	MsgRemoveShort     = "Delete every mod carrying a tag"
	MsgMoveShort       = "Move every mod carrying a tag into a directory"
	MsgArchiveShort    = "Add every mod carrying a tag to a zip archive"
	MsgExportShort     = "List every mod carrying a tag with its version"
	MsgContributeShort = "Build a module from your own tags"
	MsgWatchShort      = "Reclassify whenever mods or modules change"
	MsgGenConfigShort  = "Print a starter configuration file"
	MsgVersionShort    = "Print version information"
	MsgManShort        = "Generate man pages"
	MsgTopicsShort     = "Display available documentation topics"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgWatching         = "Watching %s and %s (Ctrl-C to stop)"
	MsgConfigWritten    = "Configuration written to %s\n"
	MsgConfigExists     = "%s already exists, not overwriting"
	MsgManWritten       = "Man pages written to %s\n"
	MsgModuleWritten    = "Module written to %s"
	MsgNoClassification = "no classification available, the scan failed"

	// Error messages
	MsgErrInitPaths     = "failed to initialize paths: %w"
	MsgErrNoCommand     = "no command specified"
	MsgErrDuplicateSet  = "%q is tagged twice (%s and %s)"
	MsgErrReportFailed  = "%s finished with %d failed, %d conflicts, %d not attempted"
	MsgErrPreflight     = "%s aborted: %d files failed the preflight check"
	MsgErrCancelled     = "%s cancelled, %d files not attempted"
	MsgErrModuleMissing = "no loaded module named %q"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Configuration file (default $XDG_CONFIG_HOME/lodestone/config.toml)"
	MsgFlagModsDir     = "Mods directory to classify"
	MsgFlagModule      = "Extra module file, loaded after the modules directory (repeatable)"
	MsgFlagFormat      = "Output format: auto, term, text or json"
	MsgFlagTag         = "Select packages carrying this tag (repeatable, comma separated)"
	MsgFlagDryRun      = "Check and list what would happen without changing anything"
	MsgFlagTo          = "Destination directory (move), archive (archive) or file (export)"
	MsgFlagSet         = "Tag an unknown package: id=tag (repeatable)"
	MsgFlagName        = "Module name of the contribution"
	MsgFlagAuthor      = "Author of the contribution"
	MsgFlagModVersion  = "Module version of the contribution"
	MsgFlagSave        = "Write the export to the configured default file instead of stdout"
	MsgFlagSubmit      = "Write the contribution to the outbox directory"
	MsgFlagOutput      = "Also write the module to this file"
	MsgFlagDestination = "Community repository the contribution is meant for"
	MsgFlagLimit       = "Suggestions per package"
	MsgFlagWrite       = "Write the file to the configuration directory"
	MsgFlagManDir      = "Directory to write man pages to"
	MsgFlagDebounce    = "Quiet period before reacting to changes"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/scan-long.txt
	msgScanLongRaw string
	MsgScanLong    = strings.TrimSpace(msgScanLongRaw)

	//go:embed msgs/scan-example.txt
	msgScanExampleRaw string
	MsgScanExample    = strings.TrimRight(msgScanExampleRaw, "\n")

	//go:embed msgs/modules-long.txt
	msgModulesLongRaw string
	MsgModulesLong    = strings.TrimSpace(msgModulesLongRaw)

	//go:embed msgs/validate-long.txt
	msgValidateLongRaw string
	MsgValidateLong    = strings.TrimSpace(msgValidateLongRaw)

	//go:embed msgs/unknown-long.txt
	msgUnknownLongRaw string
	MsgUnknownLong    = strings.TrimSpace(msgUnknownLongRaw)

	//go:embed msgs/operation-long.txt
	msgOperationLongRaw string
	MsgOperationLong    = strings.TrimSpace(msgOperationLongRaw)

	//go:embed msgs/operation-example.txt
	msgOperationExampleRaw string
	MsgOperationExample    = strings.TrimRight(msgOperationExampleRaw, "\n")

	//go:embed msgs/contribute-long.txt
	msgContributeLongRaw string
	MsgContributeLong    = strings.TrimSpace(msgContributeLongRaw)

	//go:embed msgs/contribute-example.txt
	msgContributeExampleRaw string
	MsgContributeExample    = strings.TrimRight(msgContributeExampleRaw, "\n")

	//go:embed msgs/watch-long.txt
	msgWatchLongRaw string
	MsgWatchLong    = strings.TrimSpace(msgWatchLongRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
