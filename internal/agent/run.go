package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dadfw/dad/internal/fabric"
	"github.com/dadfw/dad/internal/store"
)

// agentURLTemplate is the OpenAI-compatible endpoint a published data agent
// exposes.
const agentURLTemplate = "https://api.fabric.microsoft.com/v1/workspaces/%s/aiskills/%s/aiassistant/openai"

// RunResult reports a notebook execution and, when the run published a data
// agent, where to find it. Discovery is best effort: a failure there lands
// in DiscoveryError and never fails the run.
type RunResult struct {
	JobID   string
	Status  fabric.JobStatus
	Success bool
	Runtime string

	AgentFound       bool
	AgentID          string
	AgentURL         string
	AgentDisplayName string
	DiscoveryError   error
}

// Run executes the agent's notebook as a Fabric job, waits for a terminal
// status, and looks for the data agent the notebook published. The record
// must carry a notebook reference from a prior upload.
func (m *Manager) Run(ctx context.Context, a *Agent, workspaceID string) (*RunResult, error) {
	rec, err := a.LoadRecord()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, a.FolderName)
	}

	workspace := workspaceID
	if workspace == "" {
		workspace = rec.WorkspaceID
	}
	if workspace == "" {
		return nil, ErrNoWorkspace
	}
	if rec.NotebookID == "" && rec.NotebookName == "" {
		return nil, ErrNoNotebookRef
	}

	item, err := m.resolveNotebook(ctx, workspace, rec)
	if err != nil {
		return nil, err
	}

	start := m.now()
	job, err := m.api.RunNotebookJob(ctx, workspace, item.ID)
	if err != nil {
		return nil, fmt.Errorf("submitting notebook job: %w", err)
	}
	m.log.Info().
		Str("agent", a.FolderName).
		Str("job_id", job.ID).
		Msg("notebook job submitted")

	final, err := m.waiter.Wait(ctx, func(ctx context.Context) (*fabric.JobInstance, error) {
		return m.api.GetJobInstance(ctx, workspace, item.ID, job.ID)
	})
	if err != nil {
		if errors.Is(err, fabric.ErrPollTimeout) && final != nil {
			m.finishRun(a, rec, workspace, item, start, &RunResult{
				JobID:  job.ID,
				Status: final.Status,
			})
		}
		return nil, err
	}

	result := &RunResult{
		JobID:   job.ID,
		Status:  final.Status,
		Success: final.Status == fabric.JobCompleted,
		Runtime: m.now().Sub(start).Round(time.Second).String(),
	}

	if result.Success {
		m.discoverAgent(ctx, workspace, a.Name, result)
	} else if final.FailureReason != nil {
		m.log.Warn().
			Str("agent", a.FolderName).
			Str("reason", final.FailureReason.Message).
			Msg("notebook job failed")
	}

	m.finishRun(a, rec, workspace, item, start, result)
	return result, nil
}

// resolveNotebook picks the remote notebook to run: the recorded display
// name wins so a recreated notebook is still found, the recorded id covers
// renamed ones.
func (m *Manager) resolveNotebook(ctx context.Context, workspace string, rec *Record) (*fabric.Item, error) {
	if rec.NotebookName != "" {
		item, err := m.api.FindNotebookByName(ctx, workspace, rec.NotebookName)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, fabric.ErrItemNotFound) {
			return nil, fmt.Errorf("searching for notebook %q: %w", rec.NotebookName, err)
		}
	}
	if rec.NotebookID == "" {
		return nil, ErrNoNotebookRef
	}
	item, err := m.api.GetItem(ctx, workspace, rec.NotebookID)
	if err != nil {
		return nil, fmt.Errorf("looking up notebook %s: %w", rec.NotebookID, err)
	}
	return item, nil
}

// discoverAgent searches the workspace for the data agent the notebook
// published and fills the result in place.
func (m *Manager) discoverAgent(ctx context.Context, workspace, agentName string, result *RunResult) {
	items, err := m.api.ListItems(ctx, workspace, fabric.ItemTypeDataAgent)
	if err != nil || len(items) == 0 {
		if aiSkills, skillErr := m.api.ListItems(ctx, workspace, fabric.ItemTypeAISkill); skillErr == nil {
			items = aiSkills
			err = nil
		}
	}
	if err != nil {
		result.DiscoveryError = err
		m.log.Warn().Err(err).Msg("agent discovery failed")
		return
	}

	for _, item := range items {
		if matchesAgentName(agentName, item.DisplayName) {
			result.AgentFound = true
			result.AgentID = item.ID
			result.AgentDisplayName = item.DisplayName
			result.AgentURL = fmt.Sprintf(agentURLTemplate, workspace, item.ID)
			return
		}
	}
	result.DiscoveryError = fmt.Errorf("no data agent matching %q found in workspace", agentName)
}

// matchesAgentName compares an agent name against a workspace item display
// name, ignoring case and treating spaces, hyphens, and underscores alike.
func matchesAgentName(agentName, displayName string) bool {
	want := Slug(agentName)
	got := Slug(displayName)
	return want == got || strings.Contains(got, want)
}

// finishRun persists the execution outcome to the record and, when enabled,
// the run history. Persistence problems are logged, not returned: the run
// itself already happened.
func (m *Manager) finishRun(a *Agent, rec *Record, workspace string, item *fabric.Item, start time.Time, result *RunResult) {
	summary := &ExecutionSummary{
		JobID:     result.JobID,
		Status:    string(result.Status),
		Success:   result.Success,
		Runtime:   m.now().Sub(start).Round(time.Second).String(),
		Timestamp: m.now(),
	}
	if result.Runtime == "" {
		result.Runtime = summary.Runtime
	}

	rec.WorkspaceID = workspace
	rec.LastExecution = summary
	if result.Success {
		rec.Status = StatusExecuted
	} else {
		rec.Status = StatusExecutionFailed
	}
	if result.AgentFound {
		rec.AgentID = result.AgentID
		rec.AgentURL = result.AgentURL
	}
	if err := a.SaveRecord(rec); err != nil {
		m.log.Error().Err(err).Str("agent", a.FolderName).Msg("failed to update agent record")
	}

	if m.history == nil {
		return
	}
	_, err := m.history.Record(store.Run{
		AgentName:   a.Name,
		FolderName:  a.FolderName,
		WorkspaceID: workspace,
		NotebookID:  item.ID,
		JobID:       result.JobID,
		Status:      string(result.Status),
		Success:     result.Success,
		Runtime:     summary.Runtime,
		AgentID:     result.AgentID,
		AgentURL:    result.AgentURL,
		StartedAt:   start,
	})
	if err != nil {
		m.log.Error().Err(err).Str("agent", a.FolderName).Msg("failed to record run history")
	}
}
