// Package operations executes bulk actions over the packages of a
// classification snapshot selected by tag.
//
// Four verbs are supported:
//
//   - Remove deletes the selected mod files.
//   - Move relocates them into a destination directory.
//   - Archive adds them to a single zip archive and keeps the originals.
//   - Export writes one "<id>\t<version>\t<tags>" line per package.
//
// Remove and Move run in two phases. The preflight phase checks every
// selected file and the destination without touching anything; a single
// problem stops the operation with zero side effects. The apply phase then
// handles files one at a time. A failure stops the run and the remaining
// files are reported as not attempted. Nothing is rolled back and nothing is
// retried: the Report says exactly which files changed.
//
// Cancellation is checked between files and leaves already applied changes
// in place.
package operations
