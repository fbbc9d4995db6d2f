package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Nil(t, Validate(&cfg))
}

func TestValidateWorkspaceID(t *testing.T) {
	cfg := Defaults()
	cfg.Workspace.ID = "not-a-uuid"

	issues := Validate(&cfg)
	assert.Len(t, issues, 1)
	assert.Equal(t, "workspace.id", issues[0].Path)

	cfg.Workspace.ID = "11111111-2222-3333-4444-555555555555"
	assert.Nil(t, Validate(&cfg))
}

func TestValidateLakehouseID(t *testing.T) {
	cfg := Defaults()
	cfg.Lakehouse.ID = "nope"

	issues := Validate(&cfg)
	assert.Len(t, issues, 1)
	assert.Equal(t, "lakehouse.id", issues[0].Path)
}

func TestValidatePolling(t *testing.T) {
	cfg := Defaults()
	cfg.Run.PollSeconds = 0
	cfg.Run.TimeoutMinutes = -1

	issues := Validate(&cfg)
	assert.Len(t, issues, 2)
}

func TestValidateLogLevel(t *testing.T) {
	cfg := Defaults()
	cfg.Logging.Level = "loud"

	issues := Validate(&cfg)
	assert.Len(t, issues, 1)
	assert.Equal(t, "logging.level", issues[0].Path)
}

func TestValidatePartialCredentials(t *testing.T) {
	cfg := Defaults()
	cfg.Auth.ClientID = "client"

	issues := Validate(&cfg)
	assert.Len(t, issues, 1)
	assert.Equal(t, "auth", issues[0].Path)

	cfg.Auth.TenantID = "tenant"
	cfg.Auth.ClientSecret = "secret"
	assert.Nil(t, Validate(&cfg))
}

func TestValidationIssueString(t *testing.T) {
	issue := ValidationIssue{Path: "run.pollSeconds", Message: "must be at least 1, got 0"}
	assert.Equal(t, "run.pollSeconds: must be at least 1, got 0", issue.String())
}
