package agent

import "errors"

// Local precondition errors. These fail fast, are never retried, and always
// produce a non-zero exit for the affected agent.
var (
	ErrAgentExists          = errors.New("agent already exists")
	ErrAgentNotFound        = errors.New("agent not found")
	ErrNotebookMissing      = errors.New("notebook file not found")
	ErrNoWorkspace          = errors.New("no workspace id provided: pass one explicitly or set it in the agent record")
	ErrNoNotebookRef        = errors.New("agent record has no notebook id or name: upload the agent first")
	ErrUpdateDeclined       = errors.New("notebook exists and update was declined")
	ErrRawUpdateUnsupported = errors.New("updating an existing notebook from raw ipynb is not supported: use the compiled format")
)
