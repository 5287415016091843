package cmd

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"world-merger/core/config"
	"world-merger/core/middleware"
	"world-merger/core/reconcile"
	"world-merger/core/region"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewServer(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "target")
	source := filepath.Join(root, "source")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "region"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(source, "region"), 0o755))

	data, err := region.Encode(region.Collection{3: record(42, 0x01)})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(source, "region", "r.0.0.mca"), data, 0o644))

	cfg := &config.Config{}
	cfg.Server.ApiKey = "secret"
	cfg.Merge.TargetWorld = target
	cfg.Merge.SourceWorld = source
	cfg.Merge.Rule = "last-modified"

	app := newServer(cfg, zap.NewNop(), nil)

	t.Run("Unauthorized", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/regions/plan", nil))
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Plan", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/regions/plan", nil)
		req.Header.Set(middleware.APIKeyHeader, "secret")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

		var plan reconcile.Plan
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&plan))
		require.Len(t, plan.Copies, 1)
		assert.Equal(t, "r.0.0.mca", plan.Copies[0].Name)
	})
}
