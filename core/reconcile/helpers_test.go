package reconcile

import (
	"bytes"
	"path/filepath"
	"testing"

	"world-merger/core/region"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const (
	targetWorld = "/worlds/target"
	sourceWorld = "/worlds/source"
)

func newSpec(fsys afero.Fs) *Spec {
	return &Spec{Fs: fsys, TargetDir: targetWorld, SourceDir: sourceWorld}
}

func record(ts uint32, fill byte, sectors int) region.Record {
	return region.Record{
		Timestamp: ts,
		Sectors:   sectors,
		Payload:   bytes.Repeat([]byte{fill}, sectors*region.SectorSize),
	}
}

func writeRegion(t *testing.T, fsys afero.Fs, world, name string, c region.Collection) string {
	t.Helper()
	data, err := region.Encode(c)
	require.NoError(t, err)
	path := filepath.Join(world, DefaultRegionDir, name)
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fsys, path, data, 0o644))
	return path
}

func writeRaw(t *testing.T, fsys afero.Fs, world, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(world, DefaultRegionDir, name)
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fsys, path, data, 0o644))
	return path
}

func readRegion(t *testing.T, fsys afero.Fs, path string) region.Collection {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	c, err := region.Decode(data)
	require.NoError(t, err)
	return c
}
