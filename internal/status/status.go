// Package status records build-artifact health as a small JSON document,
// so CI and the production site can verify a run produced what it should.
package status

import (
	"crypto/md5"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/910cpr/ew2landers/internal/logger"
)

// Artifact is the health record for one build output file.
type Artifact struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	Bytes  int64  `json:"bytes"`
	MD5    string `json:"md5,omitempty"`
}

// Report is the full status.json document.
type Report struct {
	RunID       string   `json:"run_id"`
	GeneratedAt string   `json:"generated_at"`
	Snapshot    Artifact `json:"snapshot"`
	Feed        Artifact `json:"feed"`
	Commit      string   `json:"commit,omitempty"`
	CIRun       string   `json:"ci_run,omitempty"`
}

// Complete reports whether both tracked artifacts exist and are non-empty.
func (r *Report) Complete() bool {
	return r.Snapshot.Exists && r.Snapshot.Bytes > 0 &&
		r.Feed.Exists && r.Feed.Bytes > 0
}

// Collect inspects the snapshot and feed artifacts and assembles a report.
// Missing files are recorded, not errors: an incomplete report is the whole
// point of the status check.
func Collect(snapshotPath, feedPath string, now time.Time) *Report {
	return &Report{
		RunID:       ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Snapshot:    inspect(snapshotPath),
		Feed:        inspect(feedPath),
		Commit:      os.Getenv("GITHUB_SHA"),
		CIRun:       os.Getenv("GITHUB_RUN_ID"),
	}
}

// Write saves the report as indented JSON.
func Write(path string, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling status: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating status directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing status: %w", err)
	}

	logger.Info("wrote status report", logger.Fields{
		"path":     path,
		"run_id":   r.RunID,
		"complete": r.Complete(),
	})
	return nil
}

func inspect(path string) Artifact {
	art := Artifact{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return art
	}

	art.Exists = true
	art.Bytes = int64(len(data))
	art.MD5 = fmt.Sprintf("%x", md5.Sum(data))
	return art
}
