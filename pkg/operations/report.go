package operations

import (
	"encoding/json"

	"github.com/lodestone-mc/lodestone/pkg/errors"
)

// FileError is a problem with one file.
type FileError struct {
	Path string
	Err  error
}

func (f FileError) Error() string { return f.Path + ": " + f.Err.Error() }

// Unwrap returns the underlying error.
func (f FileError) Unwrap() error { return f.Err }

// MarshalJSON encodes the error with its code.
func (f FileError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Path  string           `json:"path"`
		Code  errors.ErrorCode `json:"code"`
		Error string           `json:"error"`
	}{f.Path, errors.GetErrorCode(f.Err), f.Err.Error()})
}

// Report is the itemized outcome of a plan. Every selected path ends up in
// exactly one of Succeeded, Failed, Conflicts, Skipped, NotAttempted or
// Planned.
type Report struct {
	Verb      Verb        `json:"verb"`
	DryRun    bool        `json:"dryRun"`
	Selected  []string    `json:"selected"`
	Succeeded []string    `json:"succeeded"`
	Failed    []FileError `json:"failed"`

	// NotAttempted lists files left alone after a failure, a preflight
	// error or a cancellation.
	NotAttempted []string `json:"notAttempted"`

	// Conflicts lists Move sources whose destination name was taken.
	Conflicts []FileError `json:"conflicts"`

	// Skipped lists Archive sources already present in the archive.
	Skipped []string `json:"skipped"`

	// Planned lists what a dry run would have done.
	Planned []string `json:"planned"`

	Preflight []FileError `json:"preflight"`
	Cancelled bool        `json:"cancelled"`
	Output    string      `json:"output,omitempty"`
}

// OK reports whether the plan completed without failures, conflicts,
// preflight errors or cancellation.
func (r *Report) OK() bool {
	return len(r.Failed) == 0 && len(r.Conflicts) == 0 && len(r.Preflight) == 0 && !r.Cancelled
}

// Outcome classifies one progress event.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeConflict  Outcome = "conflict"
	OutcomeSkipped   Outcome = "skipped"
	OutcomePlanned   Outcome = "planned"
)

// Event reports the outcome for one file. Index counts from 1.
type Event struct {
	Verb    Verb
	Path    string
	Index   int
	Total   int
	Outcome Outcome
	Err     error
}

// ProgressFunc receives one event per file handled. It is called on the
// executing goroutine.
type ProgressFunc func(Event)
