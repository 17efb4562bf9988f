package contribution

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lodestone-mc/lodestone/pkg/classify"
	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/internal/hashutil"
	"github.com/lodestone-mc/lodestone/pkg/logging"
	"github.com/lodestone-mc/lodestone/pkg/modules"
	"github.com/lodestone-mc/lodestone/pkg/types"
	"github.com/rs/zerolog"
)

// Submission is a built module together with where it is meant to go.
type Submission struct {
	Module *modules.Module

	// Payload is the module in wire format.
	Payload []byte

	// Destination names the community repository the module targets.
	Destination string

	// Fingerprint is the fingerprint of the snapshot the module was built
	// from.
	Fingerprint string

	CreatedAt time.Time
}

// NewSubmission encodes m for delivery.
func NewSubmission(m *modules.Module, snapshot *classify.Snapshot, destination string, now time.Time) (Submission, error) {
	payload, err := modules.Encode(m)
	if err != nil {
		return Submission{}, err
	}
	s := Submission{
		Module:      m,
		Payload:     payload,
		Destination: destination,
		CreatedAt:   now.UTC(),
	}
	if snapshot != nil {
		s.Fingerprint = snapshot.Fingerprint()
	}
	return s, nil
}

// Submitter delivers a submission. Failures are returned as is; nothing is
// retried.
type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// OutboxSubmitter writes submissions to a directory: the module file and a
// metadata file next to it.
type OutboxSubmitter struct {
	fs     types.FS
	dir    string
	logger zerolog.Logger
}

// NewOutboxSubmitter returns a Submitter writing into dir.
func NewOutboxSubmitter(fs types.FS, dir string) *OutboxSubmitter {
	return &OutboxSubmitter{fs: fs, dir: dir, logger: logging.GetLogger("contribution.outbox")}
}

// PathFor returns the module file a submission is written to. The module
// name is reduced to a single safe path element, so the file always lands
// directly in the outbox.
func (o *OutboxSubmitter) PathFor(s Submission) string {
	name := ""
	if s.Module != nil {
		name = fileSafeName(s.Module.Header.Name)
	}
	if name == "" {
		name = "submission"
	}
	base := fmt.Sprintf("%s-%s", name, s.CreatedAt.UTC().Format("20060102T150405Z"))
	return filepath.Join(o.dir, base+".json")
}

// fileSafeName keeps letters, digits, dots, dashes and underscores, turns
// everything else into '_' and drops leading dots.
func fileSafeName(name string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	return strings.TrimLeft(safe, ".")
}

type outboxMetadata struct {
	Module        string    `json:"module"`
	ModuleVersion int       `json:"moduleVersion"`
	Author        string    `json:"author"`
	Entries       int       `json:"entries"`
	Destination   string    `json:"destination,omitempty"`
	Fingerprint   string    `json:"snapshotFingerprint,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	ModuleFile    string    `json:"moduleFile"`
	Checksum      string    `json:"checksum"`
}

// Submit implements Submitter. It returns the error of the first file that
// cannot be written.
func (o *OutboxSubmitter) Submit(ctx context.Context, s Submission) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrCancelled, "submission cancelled")
	}
	if s.Module == nil || len(s.Payload) == 0 {
		return errors.New(errors.ErrInvalidInput, "submission has no module")
	}

	if err := o.fs.MkdirAll(o.dir, 0755); err != nil {
		return errors.Wrap(err, errors.ErrSubmit, "cannot create outbox directory").
			WithDetail("path", o.dir)
	}

	modulePath := o.PathFor(s)
	metaPath := strings.TrimSuffix(modulePath, ".json") + ".meta.json"

	if err := o.fs.WriteFile(modulePath, s.Payload, 0644); err != nil {
		return errors.Wrap(err, errors.ErrSubmit, "cannot write module to outbox").
			WithDetail("module", s.Module.Header.Name).
			WithDetail("path", modulePath)
	}

	meta, err := json.MarshalIndent(outboxMetadata{
		Module:        s.Module.Header.Name,
		ModuleVersion: s.Module.Header.Version,
		Author:        s.Module.Header.Author,
		Entries:       len(s.Module.Entries),
		Destination:   s.Destination,
		Fingerprint:   s.Fingerprint,
		CreatedAt:     s.CreatedAt.UTC(),
		ModuleFile:    filepath.Base(modulePath),
		Checksum:      hashutil.Checksum(s.Payload),
	}, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot encode submission metadata")
	}
	if err := o.fs.WriteFile(metaPath, append(meta, '\n'), 0644); err != nil {
		return errors.Wrap(err, errors.ErrSubmit, "cannot write submission metadata").
			WithDetail("module", s.Module.Header.Name).
			WithDetail("path", metaPath)
	}

	o.logger.Info().
		Str("module", s.Module.Header.Name).
		Int("entries", len(s.Module.Entries)).
		Str("path", modulePath).
		Msg("Contribution written to outbox")
	return nil
}
