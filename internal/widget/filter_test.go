package widget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/910cpr/ew2landers/internal/feed"
)

var filterNow = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

func feedSessions() []feed.Session {
	return []feed.Session{
		{SessionID: 1, CourseID: "12", Family: "BLS", CertBody: "AHA", DeliveryMode: "in-person", Location: "NC - Wilmington", Start: "2026-01-05T18:00:00Z"},
		{SessionID: 2, CourseID: "34", Family: "Heartsaver", CertBody: "AHA", DeliveryMode: "blended", Location: "NC - Leland", Start: "2026-01-03T18:00:00Z"},
		{SessionID: 3, CourseID: "56", Family: "ACLS", CertBody: "AHA", DeliveryMode: "in-person", Location: "NC - Wilmington", Start: "2025-12-01T18:00:00Z"},
		{SessionID: 4, CourseID: "78", Family: "PALS", CertBody: "AHA", DeliveryMode: "in-person", Location: "NC - Jacksonville", Start: "2026-02-01T09:00:00Z"},
	}
}

func sessionIDs(sessions []feed.Session) []int {
	ids := make([]int, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.SessionID)
	}
	return ids
}

func TestApplyDropsPastSessions(t *testing.T) {
	got := Apply(feedSessions(), Options{Now: filterNow})
	assert.NotContains(t, sessionIDs(got), 3, "session before now must be dropped")
}

func TestApplyDropsMissingOrUnparseableStart(t *testing.T) {
	sessions := []feed.Session{
		{SessionID: 1, CourseID: "12", Start: "2026-01-05T18:00:00Z"},
		{SessionID: 2, CourseID: "34", Start: "call for dates"},
		{SessionID: 3, CourseID: "56", Start: ""},
	}

	got := Apply(sessions, Options{Now: filterNow})
	assert.Equal(t, []int{1}, sessionIDs(got),
		"sessions without a real start must never become cards")
}

func TestApplySortsByStart(t *testing.T) {
	got := Apply(feedSessions(), Options{Now: filterNow})
	assert.Equal(t, []int{2, 1, 4}, sessionIDs(got))
}

func TestApplyCourseIDList(t *testing.T) {
	got := Apply(feedSessions(), Options{
		Now:     filterNow,
		Filters: []Filter{{Type: "course_id", Value: "12, 34"}},
	})
	assert.ElementsMatch(t, []int{1, 2}, sessionIDs(got))

	got = Apply(feedSessions(), Options{
		Now:     filterNow,
		Filters: []Filter{{Type: "course_id", Value: "56"}},
	})
	// Session 3 matches the id but is in the past.
	assert.Empty(t, got)
}

func TestApplyTypedFilters(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{"family", Filter{Type: "family", Value: "heartsaver"}, []int{2}},
		{"certBody", Filter{Type: "certBody", Value: "AHA"}, []int{2, 1, 4}},
		{"deliveryMode", Filter{Type: "deliveryMode", Value: "blended"}, []int{2}},
		{"delivery alias", Filter{Type: "delivery", Value: "blended"}, []int{2}},
		{"location_contains", Filter{Type: "location_contains", Value: "Wilmington"}, []int{1}},
		{"location_contains is case-sensitive", Filter{Type: "location_contains", Value: "wilmington"}, []int{}},
		{"unknown type fails open", Filter{Type: "instructor", Value: "nobody"}, []int{2, 1, 4}},
		{"empty type passes everything", Filter{Type: "", Value: "x"}, []int{2, 1, 4}},
		{"empty value passes everything", Filter{Type: "family", Value: ""}, []int{2, 1, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(feedSessions(), Options{Now: filterNow, Filters: []Filter{tt.filter}})
			assert.Equal(t, tt.want, sessionIDs(got))
		})
	}
}

func TestApplyFiltersAreANDed(t *testing.T) {
	got := Apply(feedSessions(), Options{
		Now: filterNow,
		Filters: []Filter{
			{Type: "certBody", Value: "AHA"},
			{Type: "location_contains", Value: "Leland"},
		},
	})
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].SessionID)
}

func TestApplyTruncates(t *testing.T) {
	got := Apply(feedSessions(), Options{Now: filterNow, Max: 2})
	assert.Equal(t, []int{2, 1}, sessionIDs(got))
}
