package widget

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/910cpr/ew2landers/internal/feed"
)

// Renderer turns filtered sessions into the widget's HTML fragment.
type Renderer struct {
	enrollBase  string
	fallbackURL string
}

// NewRenderer creates a renderer. enrollBase is the booking platform root
// used for deep links; fallbackURL is the generic schedule page linked when
// a session carries no usable booking reference.
func NewRenderer(enrollBase, fallbackURL string) *Renderer {
	return &Renderer{enrollBase: enrollBase, fallbackURL: fallbackURL}
}

// SeatLabel returns the availability label for a seat count and whether the
// session should be flagged as low availability. A nil count means the feed
// did not report seats.
func SeatLabel(seats *int) (label string, low bool) {
	switch {
	case seats == nil:
		return "Open seats", false
	case *seats <= 0:
		return "Class full", false
	case *seats == 1:
		return "1 seat left", true
	case *seats == 2:
		return "2 seats left", true
	default:
		return fmt.Sprintf("%d seats open", *seats), false
	}
}

// Render produces the fragment for the given display state and sessions.
// Sessions are only consulted in the populated state.
func (r *Renderer) Render(state State, sessions []feed.Session) string {
	switch state {
	case StateLoading:
		return `<div class="cpr-schedule cpr-schedule--loading">Loading upcoming classes…</div>`
	case StateError:
		return fmt.Sprintf(
			`<div class="cpr-schedule cpr-schedule--error">Could not load the schedule. <a href="%s">See all classes</a></div>`,
			html.EscapeString(r.fallbackURL),
		)
	case StateEmpty:
		return fmt.Sprintf(
			`<div class="cpr-schedule cpr-schedule--empty">No upcoming classes match. <a href="%s">See all classes</a></div>`,
			html.EscapeString(r.fallbackURL),
		)
	}

	var b strings.Builder
	b.WriteString(`<div class="cpr-schedule">`)
	for _, sess := range sessions {
		b.WriteString(r.card(sess))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func (r *Renderer) card(sess feed.Session) string {
	title := sess.CleanTitle
	if title == "" {
		title = sess.Title
	}

	label, low := SeatLabel(sess.Seats)
	seatClass := "cpr-card__seats"
	if low {
		seatClass += " cpr-card__seats--low"
	}

	var b strings.Builder
	b.WriteString(`<div class="cpr-card">`)
	fmt.Fprintf(&b, `<h3 class="cpr-card__title">%s</h3>`, html.EscapeString(title))
	fmt.Fprintf(&b, `<p class="cpr-card__when">%s</p>`, html.EscapeString(displayStart(sess.Start)))
	if sess.Location != "" {
		fmt.Fprintf(&b, `<p class="cpr-card__where">%s</p>`, html.EscapeString(sess.Location))
	}
	if sess.Price != "" {
		fmt.Fprintf(&b, `<p class="cpr-card__price">%s</p>`, html.EscapeString(sess.Price))
	}
	fmt.Fprintf(&b, `<p class="%s">%s</p>`, seatClass, html.EscapeString(label))
	fmt.Fprintf(&b, `<a class="cpr-card__register" href="%s">Register</a>`,
		html.EscapeString(r.registerURL(sess)))
	b.WriteString(`</div>`)
	return b.String()
}

// registerURL prefers the booking deep link built from the session id, then
// the URL carried in the feed, then the generic fallback page.
func (r *Renderer) registerURL(sess feed.Session) string {
	if sess.SessionID > 0 && r.enrollBase != "" {
		return fmt.Sprintf("%senroll?id=%d",
			withTrailingSlash(r.enrollBase), sess.SessionID)
	}
	if sess.URL != "" {
		return sess.URL
	}
	return r.fallbackURL
}

func withTrailingSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}

// displayStart reformats an RFC 3339 start for the card. Text that does not
// parse is shown verbatim rather than dropped.
func displayStart(start string) string {
	t, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return start
	}
	return t.Format("Mon, Jan 2, 2006 at 3:04 PM")
}
