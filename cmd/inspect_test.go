package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"world-merger/core/region"
	"world-merger/feature/regions"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectFile(t *testing.T) {
	fsys := setupWorlds(t)
	path := filepath.Join(sourceWorld, "region", "r.0.0.mca")

	t.Run("Text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, inspectFile(fsys, &out, path, false))

		s := out.String()
		assert.Contains(t, s, "File:    r.0.0.mca")
		assert.Contains(t, s, "Region:  x=0 z=0")
		assert.Contains(t, s, "Chunks:  3 in 3 sectors")
		assert.Regexp(t, `SLOT\s+TIMESTAMP\s+OFFSET\s+SECTORS\s+DIGEST\n`, s)
		assert.Regexp(t, `\n7\s+50\s+3\s+1\s+[0-9a-f]{16}\n`, s)
		assert.Contains(t, s, "1970-01-01T00:00:50Z")
	})

	t.Run("JSON", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, inspectFile(fsys, &out, path, true))

		var report regions.Report
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		require.Len(t, report.Slots, 3)
		assert.Equal(t, 7, report.Slots[1].Slot)
		assert.Equal(t, uint32(50), report.Slots[1].Timestamp)
	})

	t.Run("Empty", func(t *testing.T) {
		writeRegion(t, fsys, targetWorld, "r.5.5.mca", region.Collection{})
		var out bytes.Buffer
		require.NoError(t, inspectFile(fsys, &out, filepath.Join(targetWorld, "region", "r.5.5.mca"), false))
		assert.Contains(t, out.String(), "Chunks:  0 in 0 sectors")
		assert.NotContains(t, out.String(), "SLOT")
	})

	t.Run("Invalid", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fsys, "/bad.mca", []byte("short"), 0o644))
		err := inspectFile(fsys, &bytes.Buffer{}, "/bad.mca", false)
		assert.ErrorIs(t, err, region.ErrFormat)
	})

	t.Run("Missing", func(t *testing.T) {
		err := inspectFile(fsys, &bytes.Buffer{}, "/nope.mca", false)
		assert.ErrorContains(t, err, "failed to read /nope.mca")
	})
}
