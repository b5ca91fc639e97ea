package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hapkiduki/loadplan-go/internal/domain/loadplan"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "loadplan", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.InDelta(t, 9.81, cfg.Engine.Gravity, 1e-12)
	assert.InDelta(t, 0.8, cfg.Engine.ForwardAccelerationG, 1e-12)
	assert.InDelta(t, 0.5, cfg.Engine.RearwardAccelerationG, 1e-12)
	assert.InDelta(t, 0.5, cfg.Engine.LateralAccelerationG, 1e-12)
	assert.InDelta(t, 1.0, cfg.Engine.SafetyFactor, 1e-12)
	assert.Equal(t, HistoryDriverMemory, cfg.History.Driver)
	assert.Equal(t, 1000, cfg.History.MaxEntries)

	d := cfg.Engine.ServiceDefaults()
	assert.InDelta(t, 9.81, d.Gravity, 1e-12)
	assert.InDelta(t, 0.8, d.Accelerations[loadplan.DirectionForward], 1e-12)
	assert.InDelta(t, 0.5, d.Accelerations[loadplan.DirectionLateral], 1e-12)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LPS_SERVER_PORT", "9090")
	t.Setenv("LPS_ENGINE_GRAVITY", "10")
	t.Setenv("LPS_HISTORY_DRIVER", "sqlite")
	t.Setenv("LPS_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.InDelta(t, 10.0, cfg.Engine.Gravity, 1e-12)
	assert.Equal(t, HistoryDriverSQLite, cfg.History.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFrom_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loadplan.yaml")
	content := `
server:
  port: 7070
engine:
  forward_acceleration_g: 1.0
history:
  enabled: false
  max_entries: 25
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.InDelta(t, 1.0, cfg.Engine.ForwardAccelerationG, 1e-12)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, 25, cfg.History.MaxEntries)
	// untouched keys keep defaults
	assert.InDelta(t, 0.5, cfg.Engine.LateralAccelerationG, 1e-12)
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 8080},
			Engine:  EngineConfig{Gravity: 9.81},
			History: HistoryConfig{Enabled: true, Driver: HistoryDriverMemory},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"valid", func(c *Config) {}, nil},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, ErrInvalidPort},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, ErrInvalidPort},
		{"zero gravity", func(c *Config) { c.Engine.Gravity = 0 }, ErrInvalidGravity},
		{"unknown driver", func(c *Config) { c.History.Driver = "mongo" }, ErrInvalidHistoryDriver},
		{"postgres without dsn", func(c *Config) { c.History.Driver = HistoryDriverPostgres }, ErrMissingDSN},
		{"postgres disabled without dsn", func(c *Config) {
			c.History.Driver = HistoryDriverPostgres
			c.History.Enabled = false
		}, nil},
		{"rate limit without burst", func(c *Config) {
			c.RateLimit = RateLimitConfig{Enabled: true, RequestsPerSecond: 5}
		}, ErrInvalidRateLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
