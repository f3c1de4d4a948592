package status

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	snapPath := filepath.Join(dir, "snapshot.html")
	feedPath := filepath.Join(dir, "schedule.json")

	snapData := []byte("<html>schedule</html>")
	if err := os.WriteFile(snapPath, snapData, 0644); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}
	if err := os.WriteFile(feedPath, []byte(`{"sessions":[]}`), 0644); err != nil {
		t.Fatalf("writing feed: %v", err)
	}

	now := time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC)
	report := Collect(snapPath, feedPath, now)

	if report.RunID == "" {
		t.Errorf("RunID is empty")
	}
	if report.GeneratedAt != "2026-01-05T12:00:00Z" {
		t.Errorf("GeneratedAt = %q", report.GeneratedAt)
	}
	if !report.Snapshot.Exists || report.Snapshot.Bytes != int64(len(snapData)) {
		t.Errorf("snapshot artifact = %+v", report.Snapshot)
	}
	if want := fmt.Sprintf("%x", md5.Sum(snapData)); report.Snapshot.MD5 != want {
		t.Errorf("snapshot md5 = %q, want %q", report.Snapshot.MD5, want)
	}
	if !report.Complete() {
		t.Errorf("report with both artifacts should be complete")
	}
}

func TestCollectMissingArtifacts(t *testing.T) {
	dir := t.TempDir()
	report := Collect(filepath.Join(dir, "missing.html"), filepath.Join(dir, "missing.json"), time.Now())

	if report.Snapshot.Exists || report.Feed.Exists {
		t.Errorf("missing artifacts marked as existing: %+v", report)
	}
	if report.Complete() {
		t.Errorf("report with missing artifacts must not be complete")
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "status.json")

	report := Collect(filepath.Join(dir, "none"), filepath.Join(dir, "none"), time.Now())
	if err := Write(path, report); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading status: %v", err)
	}

	var loaded Report
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("parsing status: %v", err)
	}
	if loaded.RunID != report.RunID {
		t.Errorf("RunID = %q, want %q", loaded.RunID, report.RunID)
	}
}
