// Package archive writes and reads the zip archives produced by the Archive
// operation.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/logging"
	"github.com/lodestone-mc/lodestone/pkg/types"
	"github.com/rs/zerolog"
)

// Archiver creates archives from source files.
type Archiver interface {
	// Create writes sources into the archive at out, each under its base
	// name. An existing archive keeps its entries and sources whose name
	// is already present are not added again.
	Create(ctx context.Context, out string, sources []string) error

	// List returns the entry names of the archive at path.
	List(path string) ([]string, error)
}

// Zip is an Archiver writing zip files through a types.FS. The archive is
// assembled in memory and written next to out before being renamed over
// it, so a failed Create never leaves a truncated archive behind.
type Zip struct {
	fs     types.FS
	logger zerolog.Logger
}

// NewZip returns a zip Archiver.
func NewZip(fs types.FS) *Zip {
	return &Zip{fs: fs, logger: logging.GetLogger("archive")}
}

// List returns the entry names of the archive at path in archive order.
func (z *Zip) List(path string) ([]string, error) {
	zr, err := z.open(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names, nil
}

// Create implements Archiver.
func (z *Zip) Create(ctx context.Context, out string, sources []string) error {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	present := make(map[string]bool)

	if _, err := z.fs.Stat(out); err == nil {
		existing, err := z.open(out)
		if err != nil {
			return err
		}
		for _, f := range existing.File {
			if err := zw.Copy(f); err != nil {
				return errors.Wrap(err, errors.ErrArchive, "cannot copy existing archive entry").
					WithDetail("path", out).
					WithDetail("entry", f.Name)
			}
			present[f.Name] = true
		}
	}

	added := 0
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.ErrCancelled, "archive cancelled").WithDetail("path", out)
		}
		name := filepath.Base(src)
		if present[name] {
			z.logger.Debug().Str("entry", name).Msg("Already archived, skipping")
			continue
		}
		if err := z.addFile(zw, src, name); err != nil {
			return err
		}
		present[name] = true
		added++
	}

	if err := zw.Close(); err != nil {
		return errors.Wrap(err, errors.ErrArchive, "cannot finish archive").WithDetail("path", out)
	}

	tmp := fmt.Sprintf("%s.tmp-%d", out, os.Getpid())
	if err := z.fs.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write archive").WithDetail("path", out)
	}
	if err := z.fs.Rename(tmp, out); err != nil {
		_ = z.fs.Remove(tmp)
		return errors.Wrap(err, errors.ErrFileMove, "cannot move archive into place").WithDetail("path", out)
	}

	z.logger.Info().
		Str("archive", out).
		Int("added", added).
		Int("entries", len(present)).
		Msg("Archive written")
	return nil
}

func (z *Zip) open(path string) (*zip.Reader, error) {
	data, err := z.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read archive").WithDetail("path", path)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrArchive, "not a zip archive").WithDetail("path", path)
	}
	return zr, nil
}

func (z *Zip) addFile(zw *zip.Writer, src, name string) error {
	info, err := z.fs.Stat(src)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileNotFound, "cannot stat archive source").WithDetail("path", src)
	}
	data, err := z.fs.ReadFile(src)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot read archive source").WithDetail("path", src)
	}

	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: info.ModTime(),
	}
	header.SetMode(info.Mode())
	w, err := zw.CreateHeader(header)
	if err != nil {
		return errors.Wrap(err, errors.ErrArchive, "cannot add archive entry").WithDetail("path", src)
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, errors.ErrArchive, "cannot write archive entry").WithDetail("path", src)
	}
	return nil
}
