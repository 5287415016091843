package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"world-merger/core/database"
	"world-merger/core/reconcile"
	"world-merger/core/region"
	"world-merger/feature/journal"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	targetWorld = "/worlds/target"
	sourceWorld = "/worlds/source"
)

func record(ts uint32, fill byte) region.Record {
	return region.Record{Timestamp: ts, Sectors: 1, Payload: bytes.Repeat([]byte{fill}, 64)}
}

func writeRegion(t *testing.T, fsys afero.Fs, world, name string, c region.Collection) {
	data, err := region.Encode(c)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(world, "region", name), data, 0o644))
}

func readRegion(t *testing.T, fsys afero.Fs, world, name string) region.Collection {
	data, err := afero.ReadFile(fsys, filepath.Join(world, "region", name))
	require.NoError(t, err)
	c, err := region.Decode(data)
	require.NoError(t, err)
	return c
}

func setupWorlds(t *testing.T) afero.Fs {
	fsys := afero.NewMemMapFs()
	writeRegion(t, fsys, targetWorld, "r.0.0.mca", region.Collection{
		5: record(100, 0x11),
		9: record(300, 0x22),
	})
	writeRegion(t, fsys, sourceWorld, "r.0.0.mca", region.Collection{
		5: record(200, 0x33),
		9: record(250, 0x44),
		7: record(50, 0x55),
	})
	writeRegion(t, fsys, sourceWorld, "r.1.0.mca", region.Collection{
		0: record(10, 0x66),
	})
	return fsys
}

func newMerger(fsys afero.Fs, input string) (*merger, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return &merger{
		fs:     fsys,
		in:     strings.NewReader(input),
		out:    out,
		errOut: errOut,
		logger: zap.NewNop(),
	}, out, errOut
}

func newSpec() *reconcile.Spec {
	return &reconcile.Spec{TargetDir: targetWorld, SourceDir: sourceWorld}
}

func TestMerger_Confirmed(t *testing.T) {
	fsys := setupWorlds(t)
	m, out, _ := newMerger(fsys, "yes\n")

	err := m.run(context.Background(), newSpec(), mergeFlags{rule: "last-modified", workers: 2})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Files to copy (1")
	assert.Contains(t, out.String(), "  r.1.0.mca")
	assert.Contains(t, out.String(), "Files to merge (1")
	assert.Contains(t, out.String(), "Copied 1, merged 1, failed 0.")
	assert.Contains(t, out.String(), "Chunks: 1 inserted, 1 replaced, 1 kept, 0 identical.")

	merged := readRegion(t, fsys, targetWorld, "r.0.0.mca")
	assert.Equal(t, uint32(200), merged[5].Timestamp)
	assert.Equal(t, uint32(300), merged[9].Timestamp)
	assert.Equal(t, uint32(50), merged[7].Timestamp)

	copied := readRegion(t, fsys, targetWorld, "r.1.0.mca")
	assert.Len(t, copied, 1)
}

func TestMerger_Declined(t *testing.T) {
	fsys := setupWorlds(t)
	before, err := afero.ReadFile(fsys, filepath.Join(targetWorld, "region", "r.0.0.mca"))
	require.NoError(t, err)

	m, _, errOut := newMerger(fsys, "no\n")
	require.NoError(t, m.run(context.Background(), newSpec(), mergeFlags{rule: "always"}))

	assert.Contains(t, errOut.String(), "WARNING: 1 files")
	assert.Contains(t, errOut.String(), "Merge cancelled")

	after, err := afero.ReadFile(fsys, filepath.Join(targetWorld, "region", "r.0.0.mca"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
	exists, _ := afero.Exists(fsys, filepath.Join(targetWorld, "region", "r.1.0.mca"))
	assert.False(t, exists)
}

func TestMerger_DryRun(t *testing.T) {
	fsys := setupWorlds(t)
	m, out, _ := newMerger(fsys, "")

	require.NoError(t, m.run(context.Background(), newSpec(), mergeFlags{rule: "never", dryRun: true, yes: true}))
	assert.Contains(t, out.String(), "Dry-run mode")

	exists, _ := afero.Exists(fsys, filepath.Join(targetWorld, "region", "r.1.0.mca"))
	assert.False(t, exists)
}

func TestMerger_NothingToMerge(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(filepath.Join(sourceWorld, "region"), 0o755))

	m, out, _ := newMerger(fsys, "")
	require.NoError(t, m.run(context.Background(), newSpec(), mergeFlags{rule: "never"}))
	assert.Contains(t, out.String(), "Nothing to merge.")
}

func TestMerger_UnknownRule(t *testing.T) {
	m, _, _ := newMerger(setupWorlds(t), "")
	err := m.run(context.Background(), newSpec(), mergeFlags{rule: "oldest"})
	assert.ErrorContains(t, err, `unknown merge rule "oldest"`)
}

func TestMerger_FailuresReturnError(t *testing.T) {
	fsys := setupWorlds(t)
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(sourceWorld, "region", "r.2.0.mca"), []byte{1}, 0o644))
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(targetWorld, "region", "r.2.0.mca"), make([]byte, 8192), 0o644))

	m, out, _ := newMerger(fsys, "")
	err := m.run(context.Background(), newSpec(), mergeFlags{rule: "last-modified", yes: true})
	assert.ErrorContains(t, err, "1 of 3 files failed")
	assert.Contains(t, out.String(), "FAILED merge r.2.0.mca")

	merged := readRegion(t, fsys, targetWorld, "r.0.0.mca")
	assert.Len(t, merged, 3)
}

func TestMerger_JSONAndJournal(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	store := journal.NewStore(db)
	require.NoError(t, store.Migrate())

	m, out, _ := newMerger(setupWorlds(t), "")
	m.journal = store
	require.NoError(t, m.run(context.Background(), newSpec(), mergeFlags{rule: "always", yes: true, jsonOut: true}))

	var got mergeOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.NotNil(t, got.Report)
	assert.Equal(t, 1, got.Report.Summary.Copied)
	assert.Equal(t, 2, got.Report.Summary.Slots.Replaced)

	run, err := store.GetRun(context.Background(), got.RunID)
	require.NoError(t, err)
	assert.Equal(t, "always", run.Rule)
	assert.Len(t, run.Files, 2)
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, confirm(strings.NewReader("yes\n"), &out, "Go?", false))
	assert.True(t, confirm(strings.NewReader("  yes  "), &out, "Go?", false))
	assert.False(t, confirm(strings.NewReader("y\n"), &out, "Go?", false))
	assert.False(t, confirm(strings.NewReader(""), &out, "Go?", false))
	assert.True(t, confirm(strings.NewReader(""), &out, "Go?", true))
	assert.Contains(t, out.String(), "Type 'yes' to continue")
}

func TestMerger_JSONReportsFailureReason(t *testing.T) {
	fsys := setupWorlds(t)
	require.NoError(t, afero.WriteFile(fsys, filepath.Join(sourceWorld, "region", "r.0.0.mca"), []byte{1, 2, 3}, 0o644))

	m, out, _ := newMerger(fsys, "")
	err := m.run(context.Background(), newSpec(), mergeFlags{rule: "last-modified", yes: true, jsonOut: true})
	assert.ErrorContains(t, err, "1 of 2 files failed")

	var got struct {
		Report struct {
			Results []struct {
				Action struct {
					Name string `json:"name"`
				} `json:"action"`
				Error string `json:"error"`
			} `json:"results"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))

	errs := map[string]string{}
	for _, res := range got.Report.Results {
		errs[res.Action.Name] = res.Error
	}
	require.Len(t, errs, 2)
	assert.Empty(t, errs["r.1.0.mca"])
	assert.Contains(t, errs["r.0.0.mca"], "decode source")
	assert.Contains(t, errs["r.0.0.mca"], "shorter than the 8192 byte header")
}
