package agent

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadfw/dad/internal/fabric"
)

// uploadedAgent scaffolds an agent and seeds its record and the fake API as
// if an upload already happened.
func uploadedAgent(t *testing.T, m *Manager, api *fakeAPI) *Agent {
	t.Helper()
	a, err := m.Scaffold("Sales Agent", false)
	require.NoError(t, err)

	item := &fabric.Item{ID: "nb-1", DisplayName: "Sales Agent", Type: fabric.ItemTypeNotebook}
	api.itemsByID[item.ID] = item
	api.itemsByName[item.DisplayName] = item

	rec, err := a.LoadRecord()
	require.NoError(t, err)
	rec.NotebookID = item.ID
	rec.NotebookName = item.DisplayName
	rec.Status = StatusUploaded
	require.NoError(t, a.SaveRecord(rec))
	return a
}

func TestRunSuccess(t *testing.T) {
	api := newFakeAPI()
	api.jobStatuses = []fabric.JobStatus{fabric.JobNotStarted, fabric.JobInProgress, fabric.JobCompleted}
	api.listed = []fabric.Item{
		{ID: "skill-1", DisplayName: "Unrelated Agent", Type: fabric.ItemTypeDataAgent},
		{ID: "skill-2", DisplayName: "Sales Agent", Type: fabric.ItemTypeDataAgent},
	}
	m, _ := testManager(t, api)
	a := uploadedAgent(t, m, api)

	res, err := m.Run(context.Background(), a, "")
	require.NoError(t, err)
	assert.Equal(t, "job-1", res.JobID)
	assert.Equal(t, fabric.JobCompleted, res.Status)
	assert.True(t, res.Success)
	assert.True(t, res.AgentFound)
	assert.Equal(t, "skill-2", res.AgentID)
	assert.Equal(t,
		fmt.Sprintf("https://api.fabric.microsoft.com/v1/workspaces/%s/aiskills/skill-2/aiassistant/openai", testWorkspace),
		res.AgentURL)
	assert.NoError(t, res.DiscoveryError)
	assert.Equal(t, 3, api.polls)

	rec, err := a.LoadRecord()
	require.NoError(t, err)
	assert.Equal(t, StatusExecuted, rec.Status)
	assert.Equal(t, "skill-2", rec.AgentID)
	require.NotNil(t, rec.LastExecution)
	assert.Equal(t, "job-1", rec.LastExecution.JobID)
	assert.True(t, rec.LastExecution.Success)
}

func TestRunFailure(t *testing.T) {
	api := newFakeAPI()
	api.jobStatuses = []fabric.JobStatus{fabric.JobInProgress, fabric.JobFailed}
	m, _ := testManager(t, api)
	a := uploadedAgent(t, m, api)

	res, err := m.Run(context.Background(), a, "")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, fabric.JobFailed, res.Status)
	assert.False(t, res.AgentFound)

	rec, err := a.LoadRecord()
	require.NoError(t, err)
	assert.Equal(t, StatusExecutionFailed, rec.Status)
	require.NotNil(t, rec.LastExecution)
	assert.False(t, rec.LastExecution.Success)
}

func TestRunMissingNotebookRef(t *testing.T) {
	m, _ := testManager(t, newFakeAPI())
	a, err := m.Scaffold("Sales Agent", false)
	require.NoError(t, err)

	_, err = m.Run(context.Background(), a, "")
	assert.ErrorIs(t, err, ErrNoNotebookRef)
}

func TestRunNoWorkspace(t *testing.T) {
	m, _ := testManager(t, newFakeAPI())
	m.cfg.Workspace.ID = ""
	a, err := m.Scaffold("Sales Agent", false)
	require.NoError(t, err)

	rec, err := a.LoadRecord()
	require.NoError(t, err)
	rec.NotebookID = "nb-1"
	rec.WorkspaceID = ""
	require.NoError(t, a.SaveRecord(rec))

	_, err = m.Run(context.Background(), a, "")
	assert.ErrorIs(t, err, ErrNoWorkspace)
}

func TestRunPrefersNotebookName(t *testing.T) {
	api := newFakeAPI()
	api.jobStatuses = []fabric.JobStatus{fabric.JobCompleted}
	m, _ := testManager(t, api)
	a := uploadedAgent(t, m, api)

	// The recorded id is stale; the name resolves to a new notebook.
	rec, err := a.LoadRecord()
	require.NoError(t, err)
	rec.NotebookID = "nb-deleted"
	require.NoError(t, a.SaveRecord(rec))

	res, err := m.Run(context.Background(), a, "")
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestRunFallsBackToRecordedID(t *testing.T) {
	api := newFakeAPI()
	api.jobStatuses = []fabric.JobStatus{fabric.JobCompleted}
	m, _ := testManager(t, api)
	a := uploadedAgent(t, m, api)

	// No notebook matches the recorded name, but the id still resolves.
	rec, err := a.LoadRecord()
	require.NoError(t, err)
	rec.NotebookName = "Renamed Elsewhere"
	require.NoError(t, a.SaveRecord(rec))

	res, err := m.Run(context.Background(), a, "")
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestRunDiscoveryFailureIsSoft(t *testing.T) {
	api := newFakeAPI()
	api.jobStatuses = []fabric.JobStatus{fabric.JobCompleted}
	api.listErr = errors.New("listing forbidden")
	m, _ := testManager(t, api)
	a := uploadedAgent(t, m, api)

	res, err := m.Run(context.Background(), a, "")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.False(t, res.AgentFound)
	assert.Error(t, res.DiscoveryError)

	// The run itself still counts as executed.
	rec, err := a.LoadRecord()
	require.NoError(t, err)
	assert.Equal(t, StatusExecuted, rec.Status)
}

func TestRunDiscoveryNoMatch(t *testing.T) {
	api := newFakeAPI()
	api.jobStatuses = []fabric.JobStatus{fabric.JobCompleted}
	api.listed = []fabric.Item{
		{ID: "skill-1", DisplayName: "Finance Agent", Type: fabric.ItemTypeDataAgent},
	}
	m, _ := testManager(t, api)
	a := uploadedAgent(t, m, api)

	res, err := m.Run(context.Background(), a, "")
	require.NoError(t, err)
	assert.False(t, res.AgentFound)
	assert.Error(t, res.DiscoveryError)
}

func TestRunSubmitError(t *testing.T) {
	api := newFakeAPI()
	api.runJobErr = errors.New("quota exceeded")
	m, _ := testManager(t, api)
	a := uploadedAgent(t, m, api)

	_, err := m.Run(context.Background(), a, "")
	require.Error(t, err)

	// Submission failed before any execution, so the status is untouched.
	rec, err := a.LoadRecord()
	require.NoError(t, err)
	assert.Equal(t, StatusUploaded, rec.Status)
}

func TestMatchesAgentName(t *testing.T) {
	tests := []struct {
		agent   string
		display string
		want    bool
	}{
		{"Sales Agent", "Sales Agent", true},
		{"Sales Agent", "sales_agent", true},
		{"sales-agent", "SALES AGENT", true},
		{"Sales Agent", "Contoso Sales Agent v2", true},
		{"Sales Agent", "Finance Agent", false},
		{"Sales Agent", "Sales", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchesAgentName(tt.agent, tt.display),
			"matchesAgentName(%q, %q)", tt.agent, tt.display)
	}
}
