package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded notebook execution.
type Run struct {
	ID          string
	AgentName   string
	FolderName  string
	WorkspaceID string
	NotebookID  string
	JobID       string
	Status      string
	Success     bool
	Runtime     string
	AgentID     string
	AgentURL    string
	StartedAt   time.Time
}

// HistoryStore persists run outcomes for later inspection.
type HistoryStore struct {
	db *DB
}

// NewHistoryStore creates a history store using the given database.
func NewHistoryStore(db *DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Record inserts a run. A missing ID is filled in; the returned run carries
// the final values.
func (s *HistoryStore) Record(run Run) (*Run, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	_, err := s.db.sql.Exec(
		`INSERT INTO runs (id, agent_name, folder_name, workspace_id, notebook_id, job_id, status, success, runtime, agent_id, agent_url, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.AgentName, run.FolderName, run.WorkspaceID, run.NotebookID,
		run.JobID, run.Status, boolToInt(run.Success), run.Runtime,
		run.AgentID, run.AgentURL, run.StartedAt.UTC().Format(time.DateTime),
	)
	if err != nil {
		return nil, fmt.Errorf("recording run: %w", err)
	}
	return &run, nil
}

// ByAgent returns runs for one agent folder, newest first.
func (s *HistoryStore) ByAgent(folderName string, limit int) ([]Run, error) {
	return s.query(
		`SELECT id, agent_name, folder_name, workspace_id, notebook_id, job_id, status, success, runtime, agent_id, agent_url, started_at
		 FROM runs WHERE folder_name = ? ORDER BY started_at DESC, id LIMIT ?`,
		folderName, queryLimit(limit),
	)
}

// Recent returns the most recent runs across all agents, newest first.
func (s *HistoryStore) Recent(limit int) ([]Run, error) {
	return s.query(
		`SELECT id, agent_name, folder_name, workspace_id, notebook_id, job_id, status, success, runtime, agent_id, agent_url, started_at
		 FROM runs ORDER BY started_at DESC, id LIMIT ?`,
		queryLimit(limit),
	)
}

func (s *HistoryStore) query(q string, args ...any) ([]Run, error) {
	rows, err := s.db.sql.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var success int
		var startedAt string
		if err := rows.Scan(
			&r.ID, &r.AgentName, &r.FolderName, &r.WorkspaceID, &r.NotebookID,
			&r.JobID, &r.Status, &success, &r.Runtime, &r.AgentID, &r.AgentURL,
			&startedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Success = success != 0
		r.StartedAt, _ = time.Parse(time.DateTime, startedAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func queryLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	return limit
}
