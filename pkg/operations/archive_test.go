package operations

import (
	"context"
	"testing"

	"github.com/lodestone-mc/lodestone/pkg/archive"
	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) Create(ctx context.Context, out string, sources []string) error {
	args := m.Called(ctx, out, sources)
	return args.Error(0)
}

func (m *MockArchiver) List(path string) ([]string, error) {
	args := m.Called(path)
	if names := args.Get(0); names != nil {
		return names.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestExecute_Archive(t *testing.T) {
	fs, snap := fixture(t,
		installed{"sodium", "0.5.8", "Client"},
		installed{"journeymap", "5.9", "Client"},
		installed{"create", "0.5.1", "Both"},
	)
	require.NoError(t, fs.MkdirAll("/backup", 0755))
	e := NewExecutor(fs)
	plan := Plan{Verb: VerbArchive, Filter: clientOnly, Destination: "/backup/client.zip"}

	report, err := e.Execute(context.Background(), plan, snap)
	require.NoError(t, err)
	assert.Equal(t, []string{"/mods/journeymap.jar", "/mods/sodium.jar"}, report.Succeeded)
	assert.Equal(t, "/backup/client.zip", report.Output)
	assert.True(t, exists(t, fs, "/mods/sodium.jar"), "originals are kept")

	// a second run skips what is already archived and appends the rest
	report, err = e.Execute(context.Background(), Plan{
		Verb: VerbArchive, Filter: types.ParseTags("client", "both"), Destination: "/backup/client.zip",
	}, snap)
	require.NoError(t, err)
	assert.Equal(t, []string{"/mods/create.jar"}, report.Succeeded)
	assert.Equal(t, []string{"/mods/journeymap.jar", "/mods/sodium.jar"}, report.Skipped)

	names, err := archive.NewZip(fs).List("/backup/client.zip")
	require.NoError(t, err)
	assert.Equal(t, []string{"journeymap.jar", "sodium.jar", "create.jar"}, names)
}

func TestExecute_ArchivePreflight(t *testing.T) {
	fs, snap := fixture(t, installed{"a", "1", "Client"})

	report, err := NewExecutor(fs).Execute(context.Background(), Plan{
		Verb: VerbArchive, Filter: clientOnly, Destination: "/nowhere/out.zip",
	}, snap)
	require.NoError(t, err)
	require.Len(t, report.Preflight, 1)
	assert.Equal(t, []string{"/mods/a.jar"}, report.NotAttempted)

	require.NoError(t, fs.WriteFile("/mods/corrupt.zip", []byte("nope"), 0644))
	report, err = NewExecutor(fs).Execute(context.Background(), Plan{
		Verb: VerbArchive, Filter: clientOnly, Destination: "/mods/corrupt.zip",
	}, snap)
	require.NoError(t, err)
	require.Len(t, report.Preflight, 1)
	assert.True(t, errors.IsErrorCode(report.Preflight[0].Err, errors.ErrArchive))
}

func TestExecute_ArchiveFailureIsReported(t *testing.T) {
	fs, snap := fixture(t,
		installed{"a", "1", "Client"},
		installed{"b", "1", "Client"},
	)
	archiver := new(MockArchiver)
	archiver.On("Create", mock.Anything, "/mods/out.zip", []string{"/mods/a.jar", "/mods/b.jar"}).
		Return(errors.New(errors.ErrArchive, "disk full").WithDetail("path", "/mods/b.jar"))

	report, err := NewExecutor(fs, WithArchiver(archiver)).Execute(context.Background(), Plan{
		Verb: VerbArchive, Filter: clientOnly, Destination: "/mods/out.zip",
	}, snap)
	require.NoError(t, err)
	archiver.AssertExpectations(t)

	require.Len(t, report.Failed, 1)
	assert.Equal(t, "/mods/b.jar", report.Failed[0].Path)
	assert.Equal(t, []string{"/mods/a.jar"}, report.NotAttempted)
	assert.Empty(t, report.Succeeded)
}

func TestExecute_ArchiveCancelled(t *testing.T) {
	fs, snap := fixture(t, installed{"a", "1", "Client"})
	archiver := new(MockArchiver)
	archiver.On("Create", mock.Anything, "/mods/out.zip", []string{"/mods/a.jar"}).
		Return(errors.New(errors.ErrCancelled, "archive cancelled"))

	report, err := NewExecutor(fs, WithArchiver(archiver)).Execute(context.Background(), Plan{
		Verb: VerbArchive, Filter: clientOnly, Destination: "/mods/out.zip",
	}, snap)
	require.NoError(t, err)
	assert.True(t, report.Cancelled)
	assert.Equal(t, []string{"/mods/a.jar"}, report.NotAttempted)
}
