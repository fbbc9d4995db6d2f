package config

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	if cfg.Workspace.ID != "" {
		if err := uuid.Validate(cfg.Workspace.ID); err != nil {
			issues = append(issues, ValidationIssue{
				Path:    "workspace.id",
				Message: fmt.Sprintf("must be a UUID, got %q", cfg.Workspace.ID),
			})
		}
	}

	if cfg.Lakehouse.ID != "" {
		if err := uuid.Validate(cfg.Lakehouse.ID); err != nil {
			issues = append(issues, ValidationIssue{
				Path:    "lakehouse.id",
				Message: fmt.Sprintf("must be a UUID, got %q", cfg.Lakehouse.ID),
			})
		}
	}

	if cfg.Run.PollSeconds < 1 {
		issues = append(issues, ValidationIssue{
			Path:    "run.pollSeconds",
			Message: fmt.Sprintf("must be at least 1, got %d", cfg.Run.PollSeconds),
		})
	}
	if cfg.Run.TimeoutMinutes < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "run.timeoutMinutes",
			Message: fmt.Sprintf("must not be negative, got %d", cfg.Run.TimeoutMinutes),
		})
	}

	validLogLevels := []string{"silent", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	// Service principal credentials are all-or-nothing: a partial set means
	// either a typo or a secret that failed to resolve.
	creds := []string{cfg.Auth.TenantID, cfg.Auth.ClientID, cfg.Auth.ClientSecret}
	set := 0
	for _, c := range creds {
		if c != "" {
			set++
		}
	}
	if set > 0 && set < len(creds) {
		issues = append(issues, ValidationIssue{
			Path:    "auth",
			Message: "tenantId, clientId, and clientSecret must all be set together",
		})
	}

	return issues
}
