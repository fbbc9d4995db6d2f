package store

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of all schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create runs",
		SQL: `
			CREATE TABLE runs (
				id            TEXT PRIMARY KEY,
				agent_name    TEXT NOT NULL,
				folder_name   TEXT NOT NULL,
				workspace_id  TEXT NOT NULL DEFAULT '',
				notebook_id   TEXT NOT NULL DEFAULT '',
				job_id        TEXT NOT NULL DEFAULT '',
				status        TEXT NOT NULL,
				success       INTEGER NOT NULL DEFAULT 0,
				runtime       TEXT NOT NULL DEFAULT '',
				agent_id      TEXT NOT NULL DEFAULT '',
				agent_url     TEXT NOT NULL DEFAULT '',
				started_at    TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE INDEX idx_runs_agent ON runs (folder_name, started_at);
			CREATE INDEX idx_runs_started ON runs (started_at);
		`,
	},
}
