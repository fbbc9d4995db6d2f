// Package agent owns the data agent lifecycle: scaffolding on disk,
// compiling notebooks into Fabric source, and tracking remote state across
// upload and run.
package agent

import (
	"os"
	"path/filepath"
	"strings"
)

// Agent is the on-disk identity of a data agent: a display name plus the
// normalized folder it lives in. Identity is fixed at scaffold time;
// renaming is not supported.
type Agent struct {
	Name       string
	FolderName string
	Dir        string
}

// New builds an agent identity rooted under baseDir. It does not touch the
// filesystem.
func New(name, baseDir string) *Agent {
	folder := Slug(name)
	return &Agent{
		Name:       name,
		FolderName: folder,
		Dir:        filepath.Join(baseDir, folder),
	}
}

// Slug normalizes a display name into a folder name: lowercase with spaces
// and hyphens replaced by underscores.
func Slug(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// RecordPath is the agent's persisted record file.
func (a *Agent) RecordPath() string {
	return filepath.Join(a.Dir, "config.json")
}

// NotebookPath is the agent's source notebook.
func (a *Agent) NotebookPath() string {
	return filepath.Join(a.Dir, a.FolderName+".ipynb")
}

// ReadmePath is the agent's companion documentation.
func (a *Agent) ReadmePath() string {
	return filepath.Join(a.Dir, "README.md")
}

// DefaultCompiledPath is where compiled Fabric source lands unless a custom
// output path was chosen.
func (a *Agent) DefaultCompiledPath() string {
	return filepath.Join(a.Dir, a.FolderName+"_fabric.py")
}

// Exists reports whether the agent folder is present on disk.
func (a *Agent) Exists() bool {
	info, err := os.Stat(a.Dir)
	return err == nil && info.IsDir()
}

// List returns all agents under baseDir, identified by folders carrying a
// record file. Display names come from the records themselves.
func List(baseDir string) ([]*Agent, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var agents []*Agent
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		a := &Agent{
			FolderName: entry.Name(),
			Dir:        filepath.Join(baseDir, entry.Name()),
		}
		rec, err := a.LoadRecord()
		if err != nil {
			continue
		}
		a.Name = rec.AgentName
		if a.Name == "" {
			a.Name = entry.Name()
		}
		agents = append(agents, a)
	}
	return agents, nil
}
