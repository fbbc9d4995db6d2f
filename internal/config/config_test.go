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
	assert.Equal(t, 10, cfg.Run.PollSeconds)
	assert.Equal(t, 0, cfg.Run.TimeoutMinutes)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.HistoryEnabled())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	require.NoError(t, err)
	// Should return defaults
	assert.Equal(t, 10, cfg.Run.PollSeconds)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := `
workspace:
  id: 11111111-2222-3333-4444-555555555555
  tenantId: aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee
auth:
  tenantId: aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee
  clientId: my-client
  clientSecret: topsecret
lakehouse:
  id: 99999999-8888-7777-6666-555555555555
  name: SalesLH
run:
  pollSeconds: 5
  timeoutMinutes: 30
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "11111111-2222-3333-4444-555555555555", cfg.Workspace.ID)
	assert.Equal(t, "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", cfg.Workspace.TenantID)
	assert.Equal(t, "my-client", cfg.Auth.ClientID)
	assert.Equal(t, "topsecret", cfg.Auth.ClientSecret)
	assert.Equal(t, "SalesLH", cfg.Lakehouse.Name)
	assert.Equal(t, 5, cfg.Run.PollSeconds)
	assert.Equal(t, 30, cfg.Run.TimeoutMinutes)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workspace: [not a map"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("DAD_TEST_SECRET", "resolved-secret")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
auth:
  tenantId: tenant
  clientId: client
  clientSecret: ${DAD_TEST_SECRET}
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "resolved-secret", cfg.Auth.ClientSecret)
}

func TestExpandEnvVarsUnsetLeftAlone(t *testing.T) {
	assert.Equal(t, "${DAD_DEFINITELY_UNSET_VAR}", expandEnvVars("${DAD_DEFINITELY_UNSET_VAR}"))
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DAD_WORKSPACE_ID", "override-ws")
	t.Setenv("DAD_LOG_LEVEL", "ERROR")
	t.Setenv("DAD_POLL_SECONDS", "3")
	t.Setenv("FABRIC_CLIENT_SECRET", "env-secret")

	cfg, err := Load("/nonexistent/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "override-ws", cfg.Workspace.ID)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, 3, cfg.Run.PollSeconds)
	assert.Equal(t, "env-secret", cfg.Auth.ClientSecret)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := Defaults()
	cfg.Workspace.ID = "11111111-2222-3333-4444-555555555555"
	cfg.Lakehouse.Name = "LH"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Workspace.ID, loaded.Workspace.ID)
	assert.Equal(t, "LH", loaded.Lakehouse.Name)
}

func TestHistoryEnabled(t *testing.T) {
	cfg := Defaults()
	assert.True(t, cfg.HistoryEnabled())

	off := false
	cfg.History.Enabled = &off
	assert.False(t, cfg.HistoryEnabled())
}
