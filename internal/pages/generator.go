// Package pages assembles the static course, session, and location pages
// from structured schedule records.
package pages

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/910cpr/ew2landers/internal/config"
	"github.com/910cpr/ew2landers/internal/logger"
	"github.com/910cpr/ew2landers/internal/schedule"
	"github.com/910cpr/ew2landers/internal/slug"
)

// Generator writes the static page tree under the configured output
// directory. Pages are rewritten whole on every run; the generator records
// each path it writes so the sitemap pass can spot stale leftovers.
type Generator struct {
	cfg     *config.Config
	written map[string]struct{}
}

// NewGenerator creates a generator for the given site configuration.
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{cfg: cfg, written: make(map[string]struct{})}
}

// Written returns the output-relative paths written so far, sorted.
func (g *Generator) Written() []string {
	paths := make([]string, 0, len(g.written))
	for p := range g.written {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Build writes every course, session, and location page. now is the cutoff
// for the "upcoming" lists on course and location pages; session pages are
// written for past sessions too so their URLs never break.
func (g *Generator) Build(courses []*schedule.Course, sessions []*schedule.Session, now time.Time) error {
	byCourse := make(map[string][]*schedule.Session)
	for _, sess := range sessions {
		byCourse[sess.CourseID] = append(byCourse[sess.CourseID], sess)
	}

	for _, course := range courses {
		if err := g.coursePage(course, byCourse[course.ID], now); err != nil {
			return err
		}
	}

	for _, sess := range sessions {
		if err := g.sessionPage(sess); err != nil {
			return err
		}
	}

	for _, loc := range schedule.GroupByLocation(sessions) {
		if err := g.locationPage(loc, now); err != nil {
			return err
		}
	}

	logger.Info("built pages", logger.Fields{
		"courses":  len(courses),
		"sessions": len(sessions),
		"pages":    len(g.written),
	})
	return nil
}

func (g *Generator) coursePage(course *schedule.Course, sessions []*schedule.Session, now time.Time) error {
	desc, err := Description(g.cfg.DescriptionsDir, course.ID, course.DescriptionHTML)
	if err != nil {
		return err
	}

	rel := slug.CoursePath(course.Title)
	page := Substitute(coursePageTemplate, map[string]string{
		"TITLE":        html.EscapeString(course.Title),
		"ORG_NAME":     html.EscapeString(g.cfg.Organization.Name),
		"CANONICAL":    g.canonical(rel),
		"DESCRIPTION":  desc,
		"SESSIONS":     g.sessionList(sessions, now),
		"SCHEDULE_URL": g.cfg.ScheduleURL,
	})
	return g.write(rel, []byte(page))
}

func (g *Generator) sessionPage(sess *schedule.Session) error {
	jsonld, err := EventJSONLD(sess, g.cfg.Organization)
	if err != nil {
		return err
	}

	rel := sess.PagePath()
	icsRel := strings.TrimSuffix(rel, ".html") + ".ics"

	desc, err := Description(g.cfg.DescriptionsDir, sess.CourseID, "")
	if err != nil {
		return err
	}

	priceBlock := ""
	if sess.Price != "" {
		priceBlock = fmt.Sprintf(`<p class="session-price">%s</p>`, html.EscapeString(sess.Price))
	}

	page := Substitute(sessionPageTemplate, map[string]string{
		"TITLE":        html.EscapeString(sess.CourseTitle),
		"ORG_NAME":     html.EscapeString(g.cfg.Organization.Name),
		"CANONICAL":    g.canonical(rel),
		"JSONLD":       jsonld,
		"DATE":         html.EscapeString(sess.Start.Format("Monday, January 2, 2006 at 3:04 PM")),
		"LOCATION":     html.EscapeString(sess.LocationText),
		"PRICE_BLOCK":  priceBlock,
		"REGISTER_URL": html.EscapeString(sess.RegistrationURL),
		"ICS_HREF":     "/" + icsRel,
		"DESCRIPTION":  desc,
	})
	if err := g.write(rel, []byte(page)); err != nil {
		return err
	}

	return g.write(icsRel, []byte(SessionICS(sess, g.cfg.Organization)))
}

func (g *Generator) locationPage(loc *schedule.Location, now time.Time) error {
	rel := slug.LocationPath(loc.CityState)
	page := Substitute(locationPageTemplate, map[string]string{
		"CITY_STATE":   html.EscapeString(loc.CityState),
		"ORG_NAME":     html.EscapeString(g.cfg.Organization.Name),
		"CANONICAL":    g.canonical(rel),
		"SESSIONS":     g.sessionList(loc.Sessions, now),
		"SCHEDULE_URL": g.cfg.ScheduleURL,
	})
	return g.write(rel, []byte(page))
}

// sessionList renders the upcoming-classes list shared by course and
// location pages, capped at the configured maximum.
func (g *Generator) sessionList(sessions []*schedule.Session, now time.Time) string {
	var upcoming []*schedule.Session
	for _, sess := range sessions {
		if sess.IsUpcoming(now) {
			upcoming = append(upcoming, sess)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Start.Before(upcoming[j].Start)
	})
	if len(upcoming) > g.cfg.MaxUpcoming {
		upcoming = upcoming[:g.cfg.MaxUpcoming]
	}

	if len(upcoming) == 0 {
		return `<p class="no-sessions">No upcoming classes are on the calendar right now.</p>`
	}

	var b strings.Builder
	b.WriteString(`<ul class="session-list">`)
	for _, sess := range upcoming {
		fmt.Fprintf(&b, `<li><a href="/%s">%s</a>`,
			sess.PagePath(), html.EscapeString(sess.DateText))
		if sess.CityState != "" {
			fmt.Fprintf(&b, ` in %s`, html.EscapeString(sess.CityState))
		}
		fmt.Fprintf(&b, ` <a class="register" href="%s">Register</a></li>`,
			html.EscapeString(sess.RegistrationURL))
	}
	b.WriteString(`</ul>`)
	return b.String()
}

func (g *Generator) canonical(rel string) string {
	u := strings.TrimSuffix(rel, "index.html")
	return strings.TrimSuffix(g.cfg.Origin, "/") + "/" + u
}

// write puts content at the output-relative path, creating directories as
// needed, and records the path.
func (g *Generator) write(rel string, content []byte) error {
	abs := filepath.Join(g.cfg.OutputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return fmt.Errorf("creating page directory: %w", err)
	}
	if err := os.WriteFile(abs, content, 0644); err != nil {
		return fmt.Errorf("writing page %s: %w", rel, err)
	}
	g.written[rel] = struct{}{}
	return nil
}
