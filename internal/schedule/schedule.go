// Package schedule turns raw course panels into structured Course and
// Session records and groups sessions by location for page assembly.
package schedule

import (
	"time"

	"github.com/910cpr/ew2landers/internal/slug"
)

// Course is one bookable program from the schedule snapshot. Courses are
// created once per parser pass and never mutated; only their derived pages
// persist between runs.
type Course struct {
	// ID is the upstream course token when the panel carried one, or the
	// slug of the title as a stable fallback.
	ID string
	// Title is the display name. A panel without a title never becomes a
	// Course; the parser drops it first.
	Title string
	// DescriptionHTML is free-form marketing copy from the panel body.
	DescriptionHTML string
	// SessionListMarkup is the raw fragment the sessions were cut from.
	SessionListMarkup string
}

// Session is one scheduled, bookable instance of a course.
type Session struct {
	CourseID    string
	CourseTitle string
	// EnrollmentID is the booking system's id for this instance, parsed
	// from the registration link.
	EnrollmentID int
	// Start is the parsed start time in the site's timezone.
	Start time.Time
	// DateText is the original date portion of the line item.
	DateText string
	// LocationText is the raw location portion; may be empty.
	LocationText string
	// CityState is the grouping key: "City, ST" when LocationText matched
	// the expected "ST - City" shape, LocationText verbatim otherwise.
	CityState string
	// RegistrationURL is the absolute booking deep link.
	RegistrationURL string
	// Price is the display price when enrichment found one ("$65.00").
	Price string
}

// Slug returns the unique page slug for this session.
func (s *Session) Slug() string {
	return slug.ForSession(s.CourseTitle, s.LocationText, s.DateText, s.EnrollmentID)
}

// PagePath returns the site-relative output path for this session's page.
func (s *Session) PagePath() string {
	return slug.SessionPath(s.Start, s.Slug())
}

// IsUpcoming reports whether the session starts at or after now.
func (s *Session) IsUpcoming(now time.Time) bool {
	return !s.Start.Before(now)
}

// Location groups sessions sharing a CityState key, in discovery order.
// The group holds references only; it exists for page assembly.
type Location struct {
	CityState string
	Sessions  []*Session
}

// GroupByLocation rolls sessions up into location groups, preserving the
// order keys were first seen. Sessions with a blank key are left out: a
// location page is only emitted for a non-blank CityState.
func GroupByLocation(sessions []*Session) []*Location {
	byKey := make(map[string]*Location)
	var ordered []*Location

	for _, sess := range sessions {
		if sess.CityState == "" {
			continue
		}
		loc, ok := byKey[sess.CityState]
		if !ok {
			loc = &Location{CityState: sess.CityState}
			byKey[sess.CityState] = loc
			ordered = append(ordered, loc)
		}
		loc.Sessions = append(loc.Sessions, sess)
	}

	return ordered
}
