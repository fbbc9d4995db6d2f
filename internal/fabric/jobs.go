package fabric

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// JobStatus is a Fabric job instance status.
type JobStatus string

// Job statuses reported by the Fabric job scheduler.
const (
	JobNotStarted JobStatus = "NotStarted"
	JobInProgress JobStatus = "InProgress"
	JobCompleted  JobStatus = "Completed"
	JobFailed     JobStatus = "Failed"
	JobCancelled  JobStatus = "Cancelled"
	JobDeduped    JobStatus = "Deduped"
)

// IsTerminal reports whether no further status transition can occur.
func (s JobStatus) IsTerminal() bool {
	return s != JobNotStarted && s != JobInProgress && s != ""
}

// JobInstance is one execution of an item job.
type JobInstance struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"itemId"`
	Status        JobStatus `json:"status"`
	FailureReason *struct {
		Message string `json:"message"`
	} `json:"failureReason,omitempty"`
}

// RunNotebookJob submits an on-demand RunNotebook job for the item and
// returns the new job instance. Inline package installation is enabled so
// %pip cells work.
func (c *Client) RunNotebookJob(ctx context.Context, workspaceID, itemID string) (*JobInstance, error) {
	body := struct {
		ExecutionData map[string]any `json:"executionData"`
	}{
		ExecutionData: map[string]any{"_inlineInstallationEnabled": true},
	}

	path := fmt.Sprintf("/workspaces/%s/items/%s/jobs/instances?jobType=RunNotebook", workspaceID, itemID)
	resp, err := c.do(ctx, http.MethodPost, path, body, nil)
	if err != nil {
		return nil, err
	}

	// The job id only appears in the Location header of the 202 response.
	jobID := pathTail(resp.Header.Get("Location"))
	if jobID == "" {
		return nil, errors.New("job accepted but no instance id in Location header")
	}

	c.log.Info().Str("workspace", workspaceID).Str("item", itemID).Str("job", jobID).Msg("notebook job submitted")
	return &JobInstance{ID: jobID, ItemID: itemID, Status: JobNotStarted}, nil
}

// GetJobInstance fetches the current state of a job instance.
func (c *Client) GetJobInstance(ctx context.Context, workspaceID, itemID, jobID string) (*JobInstance, error) {
	var job JobInstance
	path := fmt.Sprintf("/workspaces/%s/items/%s/jobs/instances/%s", workspaceID, itemID, jobID)
	if _, err := c.do(ctx, http.MethodGet, path, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func pathTail(location string) string {
	location = strings.TrimSuffix(location, "/")
	if idx := strings.LastIndex(location, "/"); idx >= 0 {
		return location[idx+1:]
	}
	return location
}
