package config

// Config is the root configuration for the dad toolkit.
// It supplies defaults that individual agent records can override.
type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace,omitempty"`
	Auth      AuthConfig      `yaml:"auth,omitempty"`
	Lakehouse LakehouseConfig `yaml:"lakehouse,omitempty"`
	Run       RunConfig       `yaml:"run,omitempty"`
	History   HistoryConfig   `yaml:"history,omitempty"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
}

// WorkspaceConfig identifies the default Fabric workspace agents are
// uploaded to and run in when an agent record carries no workspace of its own.
type WorkspaceConfig struct {
	ID       string `yaml:"id,omitempty"`
	TenantID string `yaml:"tenantId,omitempty"`
}

// AuthConfig holds service principal credentials for the Fabric API.
// Secret fields may reference environment variables as ${VAR}.
type AuthConfig struct {
	TenantID     string `yaml:"tenantId,omitempty"`
	ClientID     string `yaml:"clientId,omitempty"`
	ClientSecret string `yaml:"clientSecret,omitempty"`
}

// LakehouseConfig names the default lakehouse embedded into compiled
// notebook headers. The dependency block is emitted only when the lakehouse
// id, lakehouse name, and workspace id are all set.
type LakehouseConfig struct {
	ID   string `yaml:"id,omitempty"`
	Name string `yaml:"name,omitempty"`
}

// RunConfig controls the job polling loop.
type RunConfig struct {
	PollSeconds    int `yaml:"pollSeconds,omitempty"`
	TimeoutMinutes int `yaml:"timeoutMinutes,omitempty"` // 0 disables the timeout
}

// HistoryConfig controls the local run-history database.
type HistoryConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
}

// HistoryEnabled reports whether run history should be recorded (default on).
func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}
