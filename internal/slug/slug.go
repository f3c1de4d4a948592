// Package slug derives URL-safe tokens and output paths for generated pages.
package slug

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Make converts arbitrary text into a URL-safe slug: every maximal run of
// characters that are not letters or decimal digits becomes a single hyphen,
// leading/trailing hyphens are trimmed, and the result is lower-cased.
// Make is idempotent: Make(Make(x)) == Make(x).
func Make(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingHyphen := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}

	return b.String()
}

// ForSession builds the slug for one session page. The numeric enrollment id
// is appended after a hyphen so two sessions sharing title, date text, and
// location still get distinct slugs.
func ForSession(courseTitle, locationText, dateText string, enrollmentID int) string {
	base := Make(courseTitle + " " + locationText + " " + dateText)
	if base == "" {
		return strconv.Itoa(enrollmentID)
	}
	return base + "-" + strconv.Itoa(enrollmentID)
}

// CoursePath returns the site-relative output path for a course page.
func CoursePath(courseTitle string) string {
	return "courses/" + Make(courseTitle) + "/index.html"
}

// SessionPath returns the site-relative output path for a session page:
// sessions/<yyyy>/<mm>/<dd>/<slug>.html with zero-padded month and day.
func SessionPath(start time.Time, sessionSlug string) string {
	return fmt.Sprintf("sessions/%04d/%02d/%02d/%s.html",
		start.Year(), int(start.Month()), start.Day(), sessionSlug)
}

// LocationPath returns the site-relative output path for a location page.
// The key is the session grouping key: "City, ST" when the location matched
// the expected shape, the raw location text otherwise.
func LocationPath(cityState string) string {
	return "locations/" + Make(cityState) + "/index.html"
}
