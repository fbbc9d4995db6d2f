package agent

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Status is the agent's lifecycle stage. The progression is linear:
// scaffolded → uploaded → executed_successfully | execution_failed.
type Status string

const (
	StatusScaffolded      Status = "scaffolded"
	StatusUploaded        Status = "uploaded"
	StatusExecuted        Status = "executed_successfully"
	StatusExecutionFailed Status = "execution_failed"
)

// ExecutionSummary captures the outcome of the most recent run.
type ExecutionSummary struct {
	JobID     string    `json:"job_id"`
	Status    string    `json:"status"`
	Success   bool      `json:"success"`
	Runtime   string    `json:"runtime"`
	Timestamp time.Time `json:"timestamp"`
}

// Record is the persisted per-agent state, stored as config.json inside the
// agent folder. The lifecycle manager is its only writer.
//
// The shape is a versioned contract: unknown keys are ignored on read and
// missing keys default to their zero values, so records written by newer or
// older tool versions still load.
type Record struct {
	AgentName    string            `json:"agent_name"`
	FolderName   string            `json:"folder_name"`
	CreatedDate  time.Time         `json:"created_date"`
	WorkspaceID  string            `json:"workspace_id"`
	TenantID     string            `json:"tenant_id"`
	Status       Status            `json:"status"`
	NotebookID   string            `json:"notebook_id"`
	NotebookName string            `json:"notebook_name"`
	AgentID      string            `json:"agent_id"`
	AgentURL     string            `json:"agent_url"`
	CompiledPath string            `json:"compiled_path,omitempty"`
	LastUpload   *time.Time        `json:"last_upload,omitempty"`
	LastExecution *ExecutionSummary `json:"last_execution,omitempty"`
}

func defaultRecord(a *Agent, now time.Time) *Record {
	return &Record{
		AgentName:   a.Name,
		FolderName:  a.FolderName,
		CreatedDate: now,
		Status:      StatusScaffolded,
	}
}

// LoadRecord reads the agent's record from disk.
func (a *Agent) LoadRecord() (*Record, error) {
	data, err := os.ReadFile(a.RecordPath())
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing agent record %s: %w", a.RecordPath(), err)
	}
	return &rec, nil
}

// SaveRecord writes the agent's record to disk.
func (a *Agent) SaveRecord(rec *Record) error {
	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(a.RecordPath(), append(data, '\n'), 0o644)
}
