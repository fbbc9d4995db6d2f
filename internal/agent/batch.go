package agent

import "context"

// BatchResult is the per-agent outcome of a batch operation. Agents are
// processed sequentially; one failure does not stop the rest.
type BatchResult struct {
	Agent  *Agent
	Err    error
	Upload *UploadResult
	Run    *RunResult
	Output string
}

// CompileAll compiles every agent under the base directory.
func (m *Manager) CompileAll() ([]BatchResult, error) {
	agents, err := List(m.baseDir)
	if err != nil {
		return nil, err
	}
	results := make([]BatchResult, 0, len(agents))
	for _, a := range agents {
		out, err := m.Compile(a, "")
		results = append(results, BatchResult{Agent: a, Err: err, Output: out})
	}
	return results, nil
}

// UploadAll uploads every agent under the base directory with shared options.
func (m *Manager) UploadAll(ctx context.Context, opts UploadOptions) ([]BatchResult, error) {
	agents, err := List(m.baseDir)
	if err != nil {
		return nil, err
	}
	results := make([]BatchResult, 0, len(agents))
	for _, a := range agents {
		res, err := m.Upload(ctx, a, opts)
		results = append(results, BatchResult{Agent: a, Err: err, Upload: res})
	}
	return results, nil
}

// RunAll executes every agent under the base directory.
func (m *Manager) RunAll(ctx context.Context, workspaceID string) ([]BatchResult, error) {
	agents, err := List(m.baseDir)
	if err != nil {
		return nil, err
	}
	results := make([]BatchResult, 0, len(agents))
	for _, a := range agents {
		res, err := m.Run(ctx, a, workspaceID)
		results = append(results, BatchResult{Agent: a, Err: err, Run: res})
	}
	return results, nil
}
