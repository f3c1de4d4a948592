package feed

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/910cpr/ew2landers/internal/schedule"
)

func TestBuild(t *testing.T) {
	sessions := []*schedule.Session{
		{
			CourseID:        "ct123456",
			CourseTitle:     "Heartsaver CPR AED (AHA)",
			EnrollmentID:    999,
			Start:           time.Date(2026, time.January, 5, 18, 0, 0, 0, time.UTC),
			LocationText:    "NC - Wilmington",
			RegistrationURL: "https://coastalcprtraining.enrollware.com/enroll?id=999",
			Price:           "$65.00",
		},
	}

	now := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	f := Build(sessions, "https://coastalcprtraining.enrollware.com/schedule", 3, now)

	assert.Equal(t, 3, f.Meta.PanelCount)
	assert.Equal(t, 1, f.Meta.SessionCount)
	assert.Equal(t, "2026-01-01T12:00:00Z", f.Meta.FetchedAt)

	require.Len(t, f.Sessions, 1)
	rec := f.Sessions[0]
	assert.Equal(t, 999, rec.SessionID)
	assert.Equal(t, "ct123456", rec.CourseID)
	assert.Equal(t, "Heartsaver CPR AED", rec.CleanTitle)
	assert.Equal(t, FamilyHeartsaver, rec.Family)
	assert.Equal(t, CertAHA, rec.CertBody)
	assert.Equal(t, DeliveryInPerson, rec.DeliveryMode)
	assert.Equal(t, "2026-01-05T18:00:00Z", rec.Start)
	assert.Equal(t, "$65.00", rec.Price)
	assert.Nil(t, rec.Seats)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "schedule.json")
	f := &Feed{
		Meta:     Meta{Source: "test", SessionCount: 1},
		Sessions: []Session{{SessionID: 1, CourseID: "ct1", Start: "2026-01-05T18:00:00Z"}},
	}

	require.NoError(t, Save(path, f))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, f.Meta.Source, loaded.Meta.Source)
	require.Len(t, loaded.Sessions, 1)
	assert.Equal(t, 1, loaded.Sessions[0].SessionID)
}

func TestDecodeSessions(t *testing.T) {
	flat := []byte(`{"meta":{"source":"x"},"sessions":[{"session_id":1,"course_id":"ct1"}]}`)
	wrapped := []byte(`{"sessions":{"count":1,"items":[{"session_id":2,"course_id":"ct2"}]}}`)
	nested := []byte(`{"sessions":{"count":1,"sessions":[{"session_id":3,"course_id":"ct3"}]}}`)

	got, err := DecodeSessions(flat)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].SessionID)

	got, err = DecodeSessions(wrapped)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].SessionID)

	got, err = DecodeSessions(nested)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].SessionID)
}

func TestDecodeSessionsRejectsUnknownShapes(t *testing.T) {
	for _, data := range []string{
		`{"courses":[]}`,
		`{"sessions":42}`,
		`{"sessions":{"count":1}}`,
		`not json`,
	} {
		_, err := DecodeSessions([]byte(data))
		assert.Error(t, err, "input %s", data)
	}
}
