package prices

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/910cpr/ew2landers/internal/schedule"
)

func TestCacheExpiry(t *testing.T) {
	cache := NewCache()
	cache.Set(999, "$65.00")

	if price, ok := cache.Get(999); !ok || price != "$65.00" {
		t.Errorf("Get = (%q, %v), want fresh entry", price, ok)
	}

	cache.CachedAt["999"] = time.Now().Add(-8 * 24 * time.Hour)
	if _, ok := cache.Get(999); ok {
		t.Errorf("expired entry should not be returned")
	}
	if cache.Size() != 0 {
		t.Errorf("expired entry should be evicted, size = %d", cache.Size())
	}
}

func TestCleanExpired(t *testing.T) {
	cache := NewCache()
	cache.Set(1, "$65.00")
	cache.Set(2, "$75.00")
	cache.CachedAt["1"] = time.Now().Add(-8 * 24 * time.Hour)

	if removed := cache.CleanExpired(); removed != 1 {
		t.Errorf("CleanExpired = %d, want 1", removed)
	}
	if cache.Size() != 1 {
		t.Errorf("size = %d, want 1", cache.Size())
	}
}

func TestSaveLoadCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "prices-cache.json")

	cache := NewCache()
	cache.Set(999, "$65.00")
	if err := SaveCache(path, cache); err != nil {
		t.Fatalf("SaveCache: %v", err)
	}

	loaded, err := LoadCache(path)
	if err != nil {
		t.Fatalf("LoadCache: %v", err)
	}
	if price, ok := loaded.Get(999); !ok || price != "$65.00" {
		t.Errorf("loaded Get = (%q, %v)", price, ok)
	}
}

func TestLoadCacheMissingFile(t *testing.T) {
	cache, err := LoadCache(filepath.Join(t.TempDir(), "none.json"))
	if err != nil {
		t.Fatalf("LoadCache: %v", err)
	}
	if cache.Size() != 0 {
		t.Errorf("missing file should yield empty cache")
	}
}

func TestEnrich(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("id") {
		case "999":
			w.Write([]byte(`<html><body>Course fee: $65.00 per student</body></html>`))
		case "1000":
			w.Write([]byte(`<html><body>Contact us for pricing.</body></html>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	sessions := []*schedule.Session{
		{EnrollmentID: 999, RegistrationURL: srv.URL + "/enroll?id=999"},
		{EnrollmentID: 1000, RegistrationURL: srv.URL + "/enroll?id=1000"},
		{EnrollmentID: 1001, RegistrationURL: srv.URL + "/enroll?id=1001"},
	}

	cache := NewCache()
	enricher := NewEnricher(cache)
	enricher.sleep = func(time.Duration) {}

	priced, fetched := enricher.Enrich(context.Background(), sessions)
	if priced != 1 || fetched != 3 {
		t.Errorf("Enrich = (%d priced, %d fetched), want (1, 3)", priced, fetched)
	}
	if sessions[0].Price != "$65.00" {
		t.Errorf("Price = %q, want $65.00", sessions[0].Price)
	}
	if sessions[1].Price != "" {
		t.Errorf("unpriced page set Price = %q", sessions[1].Price)
	}

	// Second pass hits only the cache; the failed lookup is retried.
	priced, fetched = enricher.Enrich(context.Background(), sessions)
	if fetched != 1 {
		t.Errorf("second pass fetched = %d, want 1 (only the failed lookup)", fetched)
	}
	if priced != 1 {
		t.Errorf("second pass priced = %d, want 1", priced)
	}
}

func TestApplyCached(t *testing.T) {
	cache := NewCache()
	cache.Set(999, "$65.00")
	cache.Set(1000, "")

	sessions := []*schedule.Session{
		{EnrollmentID: 999},
		{EnrollmentID: 1000},
		{EnrollmentID: 1001},
	}

	if priced := ApplyCached(cache, sessions); priced != 1 {
		t.Errorf("ApplyCached = %d, want 1", priced)
	}
	if sessions[0].Price != "$65.00" {
		t.Errorf("Price = %q", sessions[0].Price)
	}
	if sessions[1].Price != "" || sessions[2].Price != "" {
		t.Errorf("sessions without cached prices must stay unpriced")
	}
}
