package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	minLatency, maxLatency := cfg.LatencyBounds()
	assert.Equal(t, 200*time.Millisecond, minLatency)
	assert.Equal(t, 300*time.Millisecond, maxLatency)
	assert.Empty(t, cfg.DefaultTenant)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "church-admin.yaml")
	contents := `
default_tenant: tenant-grace
latency:
  min_millis: 10
  max_millis: 20
permissions:
  attendance: [create, update]
  reports: [export]
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "tenant-grace", cfg.DefaultTenant)
	minLatency, maxLatency := cfg.LatencyBounds()
	assert.Equal(t, 10*time.Millisecond, minLatency)
	assert.Equal(t, 20*time.Millisecond, maxLatency)
	assert.Equal(t, []string{"create", "update"}, cfg.Permissions["attendance"])
	assert.Equal(t, []string{"export"}, cfg.Permissions["reports"])
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
