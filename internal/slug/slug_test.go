package slug

import (
	"testing"
	"time"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple title", "Heartsaver CPR", "heartsaver-cpr"},
		{"punctuation runs collapse", "BLS Provider -- (Renewal)", "bls-provider-renewal"},
		{"leading and trailing junk", "  ACLS! ", "acls"},
		{"city state", "Wilmington, NC", "wilmington-nc"},
		{"digits kept", "CPR 2024", "cpr-2024"},
		{"empty", "", ""},
		{"only punctuation", "?!&", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Make(tt.in)
			if got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.in, got, tt.want)
			}

			// Slugs must be stable under re-slugging.
			if again := Make(got); again != got {
				t.Errorf("Make not idempotent: Make(%q) = %q", got, again)
			}
		})
	}
}

func TestForSession(t *testing.T) {
	got := ForSession("Heartsaver CPR", "NC - Wilmington", "Jan 5, 2026 6:00 PM", 999)
	want := "heartsaver-cpr-nc-wilmington-jan-5-2026-6-00-pm-999"
	if got != want {
		t.Errorf("ForSession = %q, want %q", got, want)
	}
}

func TestForSessionEmptyParts(t *testing.T) {
	if got := ForSession("", "", "", 42); got != "42" {
		t.Errorf("ForSession with empty parts = %q, want %q", got, "42")
	}
}

func TestSessionPath(t *testing.T) {
	start := time.Date(2026, time.January, 5, 18, 0, 0, 0, time.UTC)
	got := SessionPath(start, "heartsaver-cpr-999")
	want := "sessions/2026/01/05/heartsaver-cpr-999.html"
	if got != want {
		t.Errorf("SessionPath = %q, want %q", got, want)
	}
}

func TestCoursePath(t *testing.T) {
	if got := CoursePath("Heartsaver CPR"); got != "courses/heartsaver-cpr/index.html" {
		t.Errorf("CoursePath = %q", got)
	}
}

func TestLocationPath(t *testing.T) {
	if got := LocationPath("Wilmington, NC"); got != "locations/wilmington-nc/index.html" {
		t.Errorf("LocationPath = %q", got)
	}
}
