package config

import (
	"os"
	"path/filepath"
)

const defaultBaseDir = ".dad"

// Paths holds resolved filesystem paths for dad data.
type Paths struct {
	Base   string // ~/.dad
	Config string // ~/.dad/config.yaml
	Data   string // ~/.dad/data
	Logs   string // ~/.dad/logs
}

// ResolvePaths computes all standard paths from the home directory.
// If DAD_HOME is set, it overrides the default base directory.
func ResolvePaths() (Paths, error) {
	base := os.Getenv("DAD_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, err
		}
		base = filepath.Join(home, defaultBaseDir)
	}

	return Paths{
		Base:   base,
		Config: filepath.Join(base, "config.yaml"),
		Data:   filepath.Join(base, "data"),
		Logs:   filepath.Join(base, "logs"),
	}, nil
}

// EnsureDirs creates all standard directories if they don't exist.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.Base, p.Data, p.Logs}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o700); err != nil {
			return err
		}
	}
	return nil
}

// HistoryDB returns the path of the run-history database.
func (p Paths) HistoryDB() string {
	return filepath.Join(p.Data, "history.db")
}
