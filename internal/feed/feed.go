// Package feed builds and persists the schedule.json feed consumed by the
// schedule widget. The feed is a flattened view of the build-time sessions
// with the coarse classification fields (family, certifying body, delivery
// mode) the widget filters on.
package feed

import (
	"time"

	"github.com/910cpr/ew2landers/internal/schedule"
)

// Session is the wire shape of one feed record. It is distinct from the
// build-time schedule.Session: same real-world concept, different field set.
// Seats is a pointer because absence means "unknown", not zero.
type Session struct {
	SessionID    int    `json:"session_id"`
	CourseID     string `json:"course_id"`
	Title        string `json:"title"`
	CleanTitle   string `json:"cleanTitle,omitempty"`
	Family       string `json:"family"`
	CertBody     string `json:"certBody"`
	DeliveryMode string `json:"deliveryMode"`
	Start        string `json:"start"`
	Location     string `json:"location"`
	URL          string `json:"url"`
	Price        string `json:"price,omitempty"`
	Seats        *int   `json:"seats,omitempty"`
}

// Meta describes the provenance of one feed build.
type Meta struct {
	Source       string `json:"source"`
	FetchedAt    string `json:"fetched_at"`
	PanelCount   int    `json:"panel_count"`
	SessionCount int    `json:"session_count"`
}

// Feed is the full schedule.json document.
type Feed struct {
	Meta     Meta      `json:"meta"`
	Sessions []Session `json:"sessions"`
}

// Build flattens build-time sessions into feed records, in discovery order.
// source names the snapshot the sessions came from; panelCount is the number
// of panels the parser retained.
func Build(sessions []*schedule.Session, source string, panelCount int, now time.Time) *Feed {
	records := make([]Session, 0, len(sessions))
	for _, sess := range sessions {
		records = append(records, fromSchedule(sess))
	}

	return &Feed{
		Meta: Meta{
			Source:       source,
			FetchedAt:    now.UTC().Format(time.RFC3339),
			PanelCount:   panelCount,
			SessionCount: len(records),
		},
		Sessions: records,
	}
}

func fromSchedule(sess *schedule.Session) Session {
	return Session{
		SessionID:    sess.EnrollmentID,
		CourseID:     sess.CourseID,
		Title:        sess.CourseTitle,
		CleanTitle:   CleanTitle(sess.CourseTitle),
		Family:       Family(sess.CourseTitle),
		CertBody:     CertBody(sess.CourseTitle),
		DeliveryMode: DeliveryMode(sess.CourseTitle),
		Start:        sess.Start.Format(time.RFC3339),
		Location:     sess.LocationText,
		URL:          sess.RegistrationURL,
		Price:        sess.Price,
	}
}
