package schedule

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/910cpr/ew2landers/internal/logger"
	"github.com/910cpr/ew2landers/internal/slug"
	"github.com/910cpr/ew2landers/internal/snapshot"
)

// enrollLinkRe matches the booking platform's registration links and
// captures the numeric enrollment id. Both "enroll?id=" and the legacy
// "enroll.aspx?id=" spellings appear in the wild.
var enrollLinkRe = regexp.MustCompile(`enroll(?:\.aspx)?\?[^"']*?\bid=(\d+)`)

// cityStateRe matches "ST - City" and "ST - City: street address" location
// strings. The two-letter code must be upper-case.
var cityStateRe = regexp.MustCompile(`^([A-Z]{2})\s*[-–]\s*([^:]+?)\s*(?::.*)?$`)

var titleCaser = cases.Title(language.AmericanEnglish)

// Normalizer converts raw panels into Course and Session records.
type Normalizer struct {
	enrollBase *url.URL
	loc        *time.Location
	itemSel    string
}

// NewNormalizer creates a normalizer. enrollBase resolves relative
// registration links; loc is the zone date text is parsed in; itemSel
// selects one line item inside a session-list fragment.
func NewNormalizer(enrollBase string, loc *time.Location, itemSel string) (*Normalizer, error) {
	base, err := url.Parse(enrollBase)
	if err != nil {
		return nil, err
	}
	if itemSel == "" {
		itemSel = "li"
	}
	return &Normalizer{enrollBase: base, loc: loc, itemSel: itemSel}, nil
}

// Normalize converts retained panels into courses and their sessions.
// Line items without a registration link or with unparseable dates are
// skipped and counted; the run always completes.
func (n *Normalizer) Normalize(panels []snapshot.Panel) ([]*Course, []*Session) {
	var courses []*Course
	var sessions []*Session

	for _, panel := range panels {
		course := &Course{
			ID:                panel.CourseCode,
			Title:             panel.Title,
			DescriptionHTML:   panel.DescriptionHTML,
			SessionListMarkup: panel.SessionListHTML,
		}
		if course.ID == "" {
			course.ID = slug.Make(course.Title)
		}
		courses = append(courses, course)

		sessions = append(sessions, n.sessionsFromCourse(course)...)
	}

	return courses, sessions
}

// sessionsFromCourse extracts session records from one course's session-list
// markup.
func (n *Normalizer) sessionsFromCourse(course *Course) []*Session {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(course.SessionListMarkup))
	if err != nil {
		logger.Warn("unreadable session list", logger.Fields{"course": course.Title})
		logger.IncrCounter("normalize.unreadable_lists")
		return nil
	}

	var out []*Session
	doc.Find(n.itemSel).Each(func(_ int, item *goquery.Selection) {
		sess, ok := n.sessionFromItem(course, item)
		if ok {
			out = append(out, sess)
		}
	})
	return out
}

func (n *Normalizer) sessionFromItem(course *Course, item *goquery.Selection) (*Session, bool) {
	regURL, enrollID, ok := n.registrationLink(item)
	if !ok {
		logger.IncrCounter("normalize.skipped_no_enroll")
		return nil, false
	}

	dateText, locationText := splitItemText(item.Text())

	start := ParseDateText(dateText, n.loc)
	if start.IsZero() {
		logger.Warn("skipping session with unparseable date", logger.Fields{
			"course": course.Title,
			"date":   dateText,
		})
		logger.IncrCounter("normalize.skipped_bad_date")
		return nil, false
	}

	return &Session{
		CourseID:        course.ID,
		CourseTitle:     course.Title,
		EnrollmentID:    enrollID,
		Start:           start,
		DateText:        dateText,
		LocationText:    locationText,
		CityState:       CityState(locationText),
		RegistrationURL: regURL,
	}, true
}

// registrationLink finds the first anchor in the item whose href looks like
// a registration link, and returns the absolute URL plus the enrollment id.
func (n *Normalizer) registrationLink(item *goquery.Selection) (string, int, bool) {
	absURL := ""
	enrollID := 0

	item.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		m := enrollLinkRe.FindStringSubmatch(href)
		if m == nil {
			return true
		}

		id, err := strconv.Atoi(m[1])
		if err != nil {
			return true
		}

		ref, err := url.Parse(href)
		if err != nil {
			return true
		}

		absURL = n.enrollBase.ResolveReference(ref).String()
		enrollID = id
		return false
	})

	if absURL == "" {
		return "", 0, false
	}
	return absURL, enrollID, true
}

// splitItemText strips embedded markup (goquery .Text already did) and
// splits the line on the first literal pipe into date and location parts.
// No pipe means the whole line is date text and the location is empty.
func splitItemText(text string) (dateText, locationText string) {
	text = strings.Join(strings.Fields(strings.ReplaceAll(text, "\u00a0", " ")), " ")

	if i := strings.Index(text, "|"); i >= 0 {
		return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+1:])
	}
	return text, ""
}

// CityState reformats "ST - City" or "ST - City: street" location text as
// "City, ST". Text that does not match the expected shape is returned
// verbatim so it can still serve as a grouping key.
func CityState(locationText string) string {
	if locationText == "" {
		return ""
	}

	m := cityStateRe.FindStringSubmatch(locationText)
	if m == nil {
		return locationText
	}

	state := m[1]
	city := strings.TrimSpace(m[2])
	// The platform sometimes shouts city names; fix those but leave mixed
	// case like "McKee" alone.
	if city == strings.ToUpper(city) {
		city = titleCaser.String(strings.ToLower(city))
	}

	return city + ", " + state
}
