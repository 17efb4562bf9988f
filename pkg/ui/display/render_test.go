package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lodestone-mc/lodestone/pkg/classify"
	"github.com/lodestone-mc/lodestone/pkg/errors"
	"github.com/lodestone-mc/lodestone/pkg/modules"
	"github.com/lodestone-mc/lodestone/pkg/operations"
	"github.com/lodestone-mc/lodestone/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseModule(t *testing.T, name, mods string) *modules.Module {
	t.Helper()
	data := `{"header":{"moduleName":"` + name + `","moduleVersion":1,"moduleAuthor":"tester"},"mods":[` + mods + `]}`
	m, err := modules.Parse(name+".json", []byte(data))
	require.NoError(t, err)
	return m
}

func fixtureSnapshot(t *testing.T) (*classify.Snapshot, []*modules.Module) {
	t.Helper()
	base := parseModule(t, "default", `
		{"modID":"sodium","modVersion":"*","modType":"Client"},
		{"modID":"lithium","modVersion":"*","modType":"Both"},
		{"modID":"create","modVersion":"[0.5,0.6)","modType":"Both"}`)
	local := parseModule(t, "local", `{"modID":"lithium","modVersion":"*","modType":"Server"}`)
	mods := []*modules.Module{base, local}

	packages := []types.InstalledPackage{
		{ID: "sodium", Version: "0.5.8", Path: "/mods/sodium.jar", FileName: "sodium.jar"},
		{ID: "lithium", Version: "0.12.1", Path: "/mods/lithium.jar", FileName: "lithium.jar"},
		{ID: "create", Version: "0.4.1", Path: "/mods/create.jar", FileName: "create.jar"},
	}
	return classify.Resolve(mods, packages, classify.Options{Generation: 1, ScanID: "scan-1"}), mods
}

func TestRender_Scan(t *testing.T) {
	snap, _ := fixtureSnapshot(t)
	var buf bytes.Buffer

	require.NoError(t, NewTextRenderer(&buf).Render(NewScanResult("/mods", snap, nil)))
	out := buf.String()

	assert.Contains(t, out, "Mods in /mods")
	assert.Contains(t, out, "ID")
	assert.Regexp(t, `sodium\s+0\.5\.8\s+Client\s+resolved\s+default\s+sodium\.jar`, out)
	assert.Regexp(t, `lithium\s+0\.12\.1\s+Server\s+resolved\s+local`, out)
	assert.Regexp(t, `create\s+0\.4\.1\s+Unknown\s+unknown`, out)
	assert.Contains(t, out, "3 packages")
	assert.Contains(t, out, "1 unknown")
}

func TestRender_ScanVerboseShowsOverridden(t *testing.T) {
	snap, _ := fixtureSnapshot(t)
	view := NewScanResult("/mods", snap, nil)
	view.Verbose = true

	var buf bytes.Buffer
	require.NoError(t, NewTextRenderer(&buf).Render(view))
	assert.Contains(t, buf.String(), "(overridden)")
	assert.Contains(t, buf.String(), "(winning)")
}

func TestNewScanResult_Filter(t *testing.T) {
	snap, _ := fixtureSnapshot(t)

	view := NewScanResult("/mods", snap, types.NewTagSet(types.TagUnknown))
	require.Len(t, view.Classifications, 1)
	assert.Equal(t, "create", view.Classifications[0].Package.ID)

	view = NewScanResult("/mods", snap, types.NewTagSet(types.TagClient, types.TagServer))
	assert.Len(t, view.Classifications, 2)

	view = NewScanResult("/mods", snap, types.NewTagSet("performance"))
	assert.NotNil(t, view.Classifications)
	assert.Empty(t, view.Classifications)
}

func TestRender_Modules(t *testing.T) {
	_, mods := fixtureSnapshot(t)
	var buf bytes.Buffer
	r := NewTextRenderer(&buf)

	require.NoError(t, r.Render(NewModuleList(2, mods)))
	assert.Regexp(t, `0\s+default\s+1\s+tester\s+3\s+default\.json`, buf.String())
	assert.Regexp(t, `1\s+local\s+1\s+tester\s+1\s+local\.json`, buf.String())

	buf.Reset()
	detail := NewModuleDetail(0, mods[0])
	require.Len(t, detail.Rules, 3)
	assert.Equal(t, "create", detail.Rules[0].PackageID)
	require.NoError(t, r.Render(detail))
	assert.Contains(t, buf.String(), "default v1 by tester")
	assert.Regexp(t, `create\s+\[0\.5,0\.6\)\s+Both\s+2`, buf.String())
}

func TestRender_Validation(t *testing.T) {
	_, mods := fixtureSnapshot(t)
	overlap := errors.New(errors.ErrOverlappingRule, "module bad has overlapping rules").
		WithDetail("collisions", []modules.Collision{{PackageID: "x", First: 0, Second: 1, FirstRange: "*", SecondRange: "1.0"}})

	result := &ValidationResult{Files: []FileValidation{
		NewFileValidation("default.json", mods[0], nil),
		NewFileValidation("bad.json", nil, overlap),
	}}
	assert.False(t, result.OK())
	assert.Equal(t, errors.ErrOverlappingRule, result.Files[1].Code)
	require.Len(t, result.Files[1].Collisions, 1)

	var buf bytes.Buffer
	require.NoError(t, NewTextRenderer(&buf).Render(result))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, lines[0], "ok    default.json (default, 3 rules)")
	assert.Contains(t, lines[1], "bad.json")
	assert.Contains(t, lines[2], "OVERLAPPING_RULE")
}

func TestRender_Unknown(t *testing.T) {
	snap, mods := fixtureSnapshot(t)
	view := NewUnknownResult(snap, classify.Suggest(snap, mods, 0))

	require.Len(t, view.Unknown, 1)
	var buf bytes.Buffer
	require.NoError(t, NewTextRenderer(&buf).Render(view))
	assert.Contains(t, buf.String(), "create 0.4.1  create.jar")
	assert.Contains(t, buf.String(), "other versions in modules create (Both)")
}

func TestRender_Report(t *testing.T) {
	report := &operations.Report{
		Verb:         operations.VerbMove,
		Selected:     []string{"/mods/a.jar", "/mods/b.jar", "/mods/c.jar"},
		Succeeded:    []string{"/mods/a.jar"},
		Conflicts:    []operations.FileError{{Path: "/mods/b.jar", Err: errors.New(errors.ErrMoveConflict, "destination exists")}},
		NotAttempted: []string{"/mods/c.jar"},
		Cancelled:    true,
	}

	var buf bytes.Buffer
	require.NoError(t, NewTextRenderer(&buf).Render(report))
	out := buf.String()
	assert.Contains(t, out, "move (3 selected)")
	assert.Contains(t, out, "done          /mods/a.jar")
	assert.Contains(t, out, "not attempted /mods/c.jar")
	assert.Contains(t, out, "conflict      /mods/b.jar: [MOVE_CONFLICT] destination exists")
	assert.Contains(t, out, "Cancelled")
	assert.NotContains(t, out, "DRY RUN")
}

func TestRender_Contribution(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextRenderer(&buf).Render(&ContributionResult{
		Module:      "contribution",
		Payload:     []byte(`{"header":{}}`),
		SubmittedTo: "/outbox/contribution.json",
	}))
	assert.Equal(t, "{\"header\":{}}\nWritten to outbox: /outbox/contribution.json\n", buf.String())
}

func TestStyledPainterKeepsText(t *testing.T) {
	assert.Contains(t, Styled("Success", "done"), "done")
	assert.Equal(t, "done", Plain("Success", "done"))
}
