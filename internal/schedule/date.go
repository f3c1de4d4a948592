package schedule

import (
	"strings"
	"time"
)

// dateFormats are the layouts the booking platform has been seen to use for
// session line items, most common first.
var dateFormats = []string{
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006 15:04",
	"Monday, January 2, 2006 at 3:04 PM",
	"Monday, January 2, 2006 3:04 PM",
	"January 2, 2006 at 3:04 PM",
	"January 2, 2006 3:04 PM",
	"Mon Jan 2, 2006 3:04 PM",
	"Mon, Jan 2, 2006 3:04 PM",
	"1/2/2006 3:04 PM",
	"2006-01-02 15:04",
}

// ParseDateText parses a session's date text in the given zone.
// Returns the zero time if no known layout matches; callers treat that as a
// per-record skip, not a failure of the run.
func ParseDateText(dateText string, loc *time.Location) time.Time {
	s := normalizeDateText(dateText)
	if s == "" {
		return time.Time{}
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc)
	}

	for _, layout := range dateFormats {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t
		}
	}

	return time.Time{}
}

func normalizeDateText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}
