package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, 15, cfg.MinuteDeviationTrainInfo)
	assert.Equal(t, 10800, cfg.CacheTimeToLiveSeconds)
	assert.NotEmpty(t, cfg.Endpoints.PortalURL)
	assert.NotEmpty(t, cfg.Endpoints.TransportationsURL)
	require.NoError(t, cfg.Validate())
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
auth_token: file-token
minute_deviation_train_info: -1
endpoints:
  portal_url: https://example.test/journey
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.AuthToken)
	assert.Equal(t, -1, cfg.MinuteDeviationTrainInfo)
	assert.Equal(t, "https://example.test/journey", cfg.Endpoints.PortalURL)
	// Untouched values keep their defaults.
	assert.Equal(t, Defaults().Endpoints.TrainStatusURL, cfg.Endpoints.TrainStatusURL)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("HZPP_AUTH_TOKEN", "env-token")
	t.Setenv("HZPP_MINUTE_DEVIATION", "30")
	t.Setenv("HZPP_CACHE_TTL_SECONDS", "0")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.AuthToken)
	assert.Equal(t, 30, cfg.MinuteDeviationTrainInfo)
	assert.Equal(t, 0, cfg.CacheTimeToLiveSeconds)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.MinuteDeviationTrainInfo = -2
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.Endpoints.PortalURL = ""
	assert.Error(t, cfg.Validate())
}
