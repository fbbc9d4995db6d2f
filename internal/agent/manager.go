package agent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dadfw/dad/internal/config"
	"github.com/dadfw/dad/internal/fabric"
	"github.com/dadfw/dad/internal/logging"
	"github.com/dadfw/dad/internal/notebook"
	"github.com/dadfw/dad/internal/store"
)

// WorkspaceAPI is the slice of the Fabric API the lifecycle manager needs.
// *fabric.Client satisfies it; tests substitute fakes.
type WorkspaceAPI interface {
	GetItem(ctx context.Context, workspaceID, itemID string) (*fabric.Item, error)
	FindNotebookByName(ctx context.Context, workspaceID, displayName string) (*fabric.Item, error)
	CreateNotebook(ctx context.Context, workspaceID, displayName, description string, content []byte) (*fabric.Item, error)
	UpdateNotebookDefinition(ctx context.Context, workspaceID, notebookID string, content []byte) error
	RunNotebookJob(ctx context.Context, workspaceID, itemID string) (*fabric.JobInstance, error)
	GetJobInstance(ctx context.Context, workspaceID, itemID, jobID string) (*fabric.JobInstance, error)
	ListItems(ctx context.Context, workspaceID, itemType string) ([]fabric.Item, error)
}

// Manager drives the agent lifecycle against a base directory and a Fabric
// workspace. Remote operations go through the injected WorkspaceAPI; local
// ones (scaffold, compile) work without it.
type Manager struct {
	baseDir string
	cfg     *config.Config
	api     WorkspaceAPI
	waiter  *fabric.JobWaiter
	history *store.HistoryStore
	confirm func(prompt string) bool
	log     *logging.Logger
	now     func() time.Time
}

// ManagerOptions carries the manager's collaborators. Zero fields get safe
// defaults: no API (remote operations fail), no history, confirmations
// declined.
type ManagerOptions struct {
	API     WorkspaceAPI
	Waiter  *fabric.JobWaiter
	History *store.HistoryStore
	Confirm func(prompt string) bool
	Log     *logging.Logger
}

// NewManager creates a lifecycle manager rooted at baseDir.
func NewManager(baseDir string, cfg *config.Config, opts ManagerOptions) *Manager {
	if cfg == nil {
		def := config.Defaults()
		cfg = &def
	}
	log := opts.Log
	if log == nil {
		log = logging.New(nil, cfg.Logging.Level)
	}
	confirm := opts.Confirm
	if confirm == nil {
		confirm = func(string) bool { return false }
	}
	waiter := opts.Waiter
	if waiter == nil {
		waiter = &fabric.JobWaiter{
			Interval: time.Duration(cfg.Run.PollSeconds) * time.Second,
			Timeout:  time.Duration(cfg.Run.TimeoutMinutes) * time.Minute,
			Log:      log,
		}
	}
	return &Manager{
		baseDir: baseDir,
		cfg:     cfg,
		api:     opts.API,
		waiter:  waiter,
		history: opts.History,
		confirm: confirm,
		log:     log.Sub("agent"),
		now:     time.Now,
	}
}

// Resolve finds an existing agent by display name or folder name.
func (m *Manager) Resolve(name string) (*Agent, error) {
	a := New(name, m.baseDir)
	if !a.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, a.FolderName)
	}
	if rec, err := a.LoadRecord(); err == nil && rec.AgentName != "" {
		a.Name = rec.AgentName
	}
	return a, nil
}

// Scaffold creates the agent folder with a starter notebook, README, and
// record. With force, existing files are overwritten.
func (m *Manager) Scaffold(name string, force bool) (*Agent, error) {
	a := New(name, m.baseDir)
	if a.Exists() && !force {
		return nil, fmt.Errorf("%w: %s", ErrAgentExists, a.FolderName)
	}

	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating agent folder: %w", err)
	}

	now := m.now()
	nb := strings.ReplaceAll(notebookTemplate, namePlaceholder, name)
	if err := os.WriteFile(a.NotebookPath(), []byte(nb), 0o644); err != nil {
		return nil, fmt.Errorf("writing notebook: %w", err)
	}

	readme := strings.ReplaceAll(readmeTemplate, namePlaceholder, name)
	readme = strings.ReplaceAll(readme, folderPlaceholder, a.FolderName)
	readme = strings.ReplaceAll(readme, createdPlaceholder, now.Format("2006-01-02"))
	if err := os.WriteFile(a.ReadmePath(), []byte(readme), 0o644); err != nil {
		return nil, fmt.Errorf("writing readme: %w", err)
	}

	rec := defaultRecord(a, now)
	rec.WorkspaceID = m.cfg.Workspace.ID
	rec.TenantID = m.tenantID()
	if err := a.SaveRecord(rec); err != nil {
		return nil, fmt.Errorf("writing agent record: %w", err)
	}

	m.log.Info().Str("agent", a.FolderName).Msg("agent scaffolded")
	return a, nil
}

func (m *Manager) tenantID() string {
	if m.cfg.Auth.TenantID != "" {
		return m.cfg.Auth.TenantID
	}
	return m.cfg.Workspace.TenantID
}

// Compile transcodes the agent notebook into Fabric source format and
// returns the output path. Output path precedence: the explicit argument,
// then the path remembered in the record, then the default next to the
// notebook. An explicit non-default path is remembered for later compiles.
func (m *Manager) Compile(a *Agent, outputPath string) (string, error) {
	rec, err := a.LoadRecord()
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrAgentNotFound, a.FolderName)
	}
	if _, err := os.Stat(a.NotebookPath()); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotebookMissing, a.NotebookPath())
	}

	out := outputPath
	if out == "" {
		out = rec.CompiledPath
	}
	if out == "" {
		out = a.DefaultCompiledPath()
	}

	if _, err := notebook.ConvertFile(a.NotebookPath(), out, m.convertOptions(rec)); err != nil {
		return "", err
	}

	if outputPath != "" && outputPath != a.DefaultCompiledPath() && rec.CompiledPath != outputPath {
		rec.CompiledPath = outputPath
		if err := a.SaveRecord(rec); err != nil {
			return "", fmt.Errorf("updating agent record: %w", err)
		}
	}

	m.log.Info().Str("agent", a.FolderName).Str("output", out).Msg("notebook compiled")
	return out, nil
}

// convertOptions builds the lakehouse binding for compiled output. The
// workspace comes from the record when set, the tool default otherwise.
func (m *Manager) convertOptions(rec *Record) notebook.Options {
	ws := rec.WorkspaceID
	if ws == "" {
		ws = m.cfg.Workspace.ID
	}
	return notebook.Options{
		WorkspaceID:   ws,
		LakehouseID:   m.cfg.Lakehouse.ID,
		LakehouseName: m.cfg.Lakehouse.Name,
	}
}

// UploadOptions tunes a single upload.
type UploadOptions struct {
	WorkspaceID string // overrides the record's workspace
	DisplayName string // overrides the agent name as the remote display name
	UseRaw      bool   // upload the raw ipynb instead of compiled source
	ForceUpdate bool   // update an existing notebook without asking
}

// UploadResult reports what an upload did.
type UploadResult struct {
	NotebookID  string
	DisplayName string
	WorkspaceID string
	Updated     bool
}

// Upload creates or updates the agent's notebook in the workspace and
// records the outcome. An existing notebook is found by the recorded id
// first, then by display name; updating one requires force or an interactive
// confirmation.
func (m *Manager) Upload(ctx context.Context, a *Agent, opts UploadOptions) (*UploadResult, error) {
	rec, err := a.LoadRecord()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAgentNotFound, a.FolderName)
	}

	workspace := opts.WorkspaceID
	if workspace == "" {
		workspace = rec.WorkspaceID
	}
	if workspace == "" {
		return nil, ErrNoWorkspace
	}
	if !fabric.ValidateWorkspaceID(workspace) {
		return nil, fmt.Errorf("invalid workspace id %q", workspace)
	}

	displayName := opts.DisplayName
	if displayName == "" {
		displayName = a.Name
	}

	content, err := m.uploadContent(a, rec, opts.UseRaw)
	if err != nil {
		return nil, err
	}

	existing, err := m.findExisting(ctx, workspace, rec, displayName)
	if err != nil {
		return nil, err
	}

	result := &UploadResult{DisplayName: displayName, WorkspaceID: workspace}
	if existing != nil {
		if opts.UseRaw {
			return nil, ErrRawUpdateUnsupported
		}
		if !opts.ForceUpdate {
			prompt := fmt.Sprintf("Notebook %q already exists in the workspace. Update it?", existing.DisplayName)
			if !m.confirm(prompt) {
				return nil, ErrUpdateDeclined
			}
		}
		if err := m.api.UpdateNotebookDefinition(ctx, workspace, existing.ID, content); err != nil {
			return nil, fmt.Errorf("updating notebook: %w", err)
		}
		result.NotebookID = existing.ID
		result.Updated = true
	} else {
		desc := fmt.Sprintf("Data agent notebook for %s", a.Name)
		item, err := m.api.CreateNotebook(ctx, workspace, displayName, desc, content)
		if err != nil {
			return nil, fmt.Errorf("creating notebook: %w", err)
		}
		result.NotebookID = item.ID
	}

	now := m.now()
	rec.WorkspaceID = workspace
	rec.NotebookID = result.NotebookID
	rec.NotebookName = displayName
	rec.Status = StatusUploaded
	rec.LastUpload = &now
	if err := a.SaveRecord(rec); err != nil {
		return nil, fmt.Errorf("updating agent record: %w", err)
	}

	m.log.Info().
		Str("agent", a.FolderName).
		Str("notebook_id", result.NotebookID).
		Bool("updated", result.Updated).
		Msg("notebook uploaded")
	return result, nil
}

// uploadContent produces the bytes to upload: the raw ipynb, or compiled
// Fabric source (compiling first so the upload always reflects the current
// notebook).
func (m *Manager) uploadContent(a *Agent, rec *Record, useRaw bool) ([]byte, error) {
	if useRaw {
		data, err := os.ReadFile(a.NotebookPath())
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNotebookMissing, a.NotebookPath())
		}
		return data, nil
	}

	if _, err := os.Stat(a.NotebookPath()); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotebookMissing, a.NotebookPath())
	}
	src, err := notebook.ConvertFile(a.NotebookPath(), m.compiledPath(a, rec), m.convertOptions(rec))
	if err != nil {
		return nil, err
	}
	return []byte(src), nil
}

func (m *Manager) compiledPath(a *Agent, rec *Record) string {
	if rec.CompiledPath != "" {
		return rec.CompiledPath
	}
	return a.DefaultCompiledPath()
}

// findExisting locates the remote notebook, trying the recorded id before
// the display name. A stale recorded id is ignored rather than treated as an
// error.
func (m *Manager) findExisting(ctx context.Context, workspace string, rec *Record, displayName string) (*fabric.Item, error) {
	if rec.NotebookID != "" {
		item, err := m.api.GetItem(ctx, workspace, rec.NotebookID)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, fabric.ErrItemNotFound) {
			return nil, fmt.Errorf("looking up notebook %s: %w", rec.NotebookID, err)
		}
	}

	item, err := m.api.FindNotebookByName(ctx, workspace, displayName)
	if err != nil {
		if errors.Is(err, fabric.ErrItemNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("searching for notebook %q: %w", displayName, err)
	}
	return item, nil
}
