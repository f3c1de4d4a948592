package widget

import (
	"sort"
	"strings"
	"time"

	"github.com/910cpr/ew2landers/internal/feed"
)

// Filter is one declarative constraint from the widget's embed config.
type Filter struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Options controls one Apply pass.
type Options struct {
	// Now is the past/future cutoff. Zero means time.Now.
	Now time.Time
	// Max truncates the result when positive.
	Max int
	// Filters are ANDed together.
	Filters []Filter
}

// Apply drops sessions whose start is missing, unparseable, or before now,
// applies every filter, sorts ascending by start, and truncates. A record
// without a real start must never render a card with junk as its date.
// Filters of an unrecognized type match everything: a stale embed config
// must never blank the schedule.
func Apply(sessions []feed.Session, opts Options) []feed.Session {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	var out []feed.Session
	for _, sess := range sessions {
		start, ok := parseStart(sess.Start)
		if !ok || start.Before(now) {
			continue
		}
		if !matchesAll(sess, opts.Filters) {
			continue
		}
		out = append(out, sess)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, _ := parseStart(out[i].Start)
		tj, _ := parseStart(out[j].Start)
		return ti.Before(tj)
	})

	if opts.Max > 0 && len(out) > opts.Max {
		out = out[:opts.Max]
	}
	return out
}

func matchesAll(sess feed.Session, filters []Filter) bool {
	for _, f := range filters {
		if !matches(sess, f) {
			return false
		}
	}
	return true
}

// matches applies one filter. The enum-like fields (family, certBody,
// deliveryMode) compare case-insensitively because host pages disagree on
// value casing; course_id compares as exact text and location_contains is a
// case-sensitive substring test.
func matches(sess feed.Session, f Filter) bool {
	// An unset type or value means no filtering.
	if f.Type == "" || f.Value == "" {
		return true
	}

	switch f.Type {
	case "family":
		return strings.EqualFold(sess.Family, f.Value)
	case "certBody":
		return strings.EqualFold(sess.CertBody, f.Value)
	case "deliveryMode", "delivery":
		return strings.EqualFold(sess.DeliveryMode, f.Value)
	case "course_id":
		for _, id := range strings.Split(f.Value, ",") {
			if strings.TrimSpace(id) == sess.CourseID {
				return true
			}
		}
		return false
	case "location_contains":
		return strings.Contains(sess.Location, f.Value)
	default:
		// Fail open on filter types this build does not know.
		return true
	}
}

func parseStart(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
