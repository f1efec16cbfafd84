// Package runlog manages per-run artifact directories under .basil/runs.
// Each run gets its own directory holding the persisted event stream, so
// a past run can be inspected after the terminal output is gone.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const runsDir = ".basil/runs"

// RunContext holds information about the current run's artifact directory.
type RunContext struct {
	ID        string    // short unique identifier (8 chars)
	Timestamp time.Time // when the run started
	Dir       string    // full path to the run directory
}

// New creates a run context and its directory,
// .basil/runs/2025-01-15_143052_a1b2c3d4 style.
func New() (*RunContext, error) {
	now := time.Now()
	shortID := uuid.New().String()[:8]

	dirName := fmt.Sprintf("%s_%s", now.Format("2006-01-02_150405"), shortID)
	dir := filepath.Join(runsDir, dirName)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating run directory: %w", err)
	}

	return &RunContext{
		ID:        shortID,
		Timestamp: now,
		Dir:       dir,
	}, nil
}

// LogPath returns the full path for a named log file.
func (r *RunContext) LogPath(name string) string {
	return filepath.Join(r.Dir, name+".log")
}

// CreateLogFile creates a log file in the run directory.
func (r *RunContext) CreateLogFile(name string) (*os.File, error) {
	return os.Create(r.LogPath(name))
}

// RunInfo describes a stored run.
type RunInfo struct {
	Name      string    `json:"name"`
	Dir       string    `json:"dir"`
	Timestamp time.Time `json:"timestamp"`
}

// ListRuns returns all stored runs, newest first. A missing runs
// directory means no runs yet, not an error.
func ListRuns() ([]RunInfo, error) {
	entries, err := os.ReadDir(runsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunInfo{}, nil
		}
		return nil, err
	}

	var runs []RunInfo
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		runs = append(runs, RunInfo{
			Name:      entry.Name(),
			Dir:       filepath.Join(runsDir, entry.Name()),
			Timestamp: info.ModTime(),
		})
	}

	return runs, nil
}
