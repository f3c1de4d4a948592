package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Origin != "https://www.910cpr.com" {
		t.Errorf("Origin = %q", cfg.Origin)
	}
	if cfg.Rules.PanelSelector != ".enrpanel" {
		t.Errorf("PanelSelector = %q", cfg.Rules.PanelSelector)
	}
	if cfg.MaxUpcoming != 5 {
		t.Errorf("MaxUpcoming = %d, want 5", cfg.MaxUpcoming)
	}
	if cfg.Location().String() != "America/New_York" {
		t.Errorf("Location = %q", cfg.Location())
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.config.json")
	partial := `{"origin": "https://staging.910cpr.com", "max_upcoming": 3}`
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Origin != "https://staging.910cpr.com" {
		t.Errorf("Origin = %q, want override", cfg.Origin)
	}
	if cfg.MaxUpcoming != 3 {
		t.Errorf("MaxUpcoming = %d, want 3", cfg.MaxUpcoming)
	}
	// Untouched fields keep their defaults.
	if cfg.Rules.PanelSelector != ".enrpanel" {
		t.Errorf("PanelSelector = %q, want default", cfg.Rules.PanelSelector)
	}
}

func TestLoadRejectsEmptyOrigin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.config.json")
	if err := os.WriteFile(path, []byte(`{"origin": ""}`), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Errorf("Load accepted empty origin")
	}
}

func TestValidateNormalizesEnrollBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.config.json")
	if err := os.WriteFile(path, []byte(`{"enroll_base": "https://example.enrollware.com"}`), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.EnrollBase != "https://example.enrollware.com/" {
		t.Errorf("EnrollBase = %q, want trailing slash", cfg.EnrollBase)
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	dir := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })

	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Origin != Default().Origin {
		t.Errorf("missing default file should yield defaults")
	}
}
