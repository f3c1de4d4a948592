package snapshot

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/910cpr/ew2landers/internal/config"
	"github.com/910cpr/ew2landers/internal/logger"
)

// Panel is one course's self-contained block from the schedule snapshot.
type Panel struct {
	// CourseCode is the upstream course token ("ct123456"), or empty when
	// no element in the panel carried one.
	CourseCode string
	// Title is the panel heading text, whitespace-collapsed.
	Title string
	// DescriptionHTML is the free-form course description fragment.
	DescriptionHTML string
	// SessionListHTML is the raw fragment containing the session line items.
	SessionListHTML string
}

// Parser extracts course panels from snapshot markup.
type Parser struct {
	rules     config.Rules
	codeToken *regexp.Regexp
}

// NewParser creates a parser for the given extraction rules.
func NewParser(rules config.Rules) *Parser {
	prefix := rules.CourseCodePrefix
	if prefix == "" {
		prefix = "ct"
	}
	return &Parser{
		rules:     rules,
		codeToken: regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `\d+$`),
	}
}

// Parse reads a snapshot document and returns the retained panels in
// document order. Panels with no heading text or no session list are
// dropped; both cases are per-record skips, not errors.
func (p *Parser) Parse(r io.Reader) ([]Panel, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	var panels []Panel
	doc.Find(p.rules.PanelSelector).Each(func(i int, sel *goquery.Selection) {
		title := p.headingText(sel)
		if title == "" {
			logger.Warn("skipping panel without heading", logger.Fields{"index": i})
			logger.IncrCounter("parse.skipped_no_heading")
			return
		}

		listHTML, ok := p.sessionListHTML(sel)
		if !ok {
			logger.Warn("skipping panel without session list", logger.Fields{"title": title})
			logger.IncrCounter("parse.skipped_no_sessions")
			return
		}

		panels = append(panels, Panel{
			CourseCode:      p.courseCode(sel),
			Title:           title,
			DescriptionHTML: p.descriptionHTML(sel),
			SessionListHTML: listHTML,
		})
	})

	return panels, nil
}

// courseCode looks for an element whose id or name attribute equals a
// course-code token. A panel without one keeps an empty code; that alone is
// not a reason to drop it.
func (p *Parser) courseCode(panel *goquery.Selection) string {
	attrs := p.rules.CourseCodeAttrs
	if len(attrs) == 0 {
		attrs = []string{"id", "name"}
	}

	code := ""
	candidates := panel.AddSelection(panel.Find("[id], [name]"))
	candidates.EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		for _, attr := range attrs {
			if v, exists := sel.Attr(attr); exists && p.codeToken.MatchString(v) {
				code = v
				return false
			}
		}
		return true
	})
	return code
}

// headingText tries the configured heading selectors in order and returns
// the first non-empty text, collapsed to single spaces.
func (p *Parser) headingText(panel *goquery.Selection) string {
	for _, sel := range p.rules.HeadingSelectors {
		text := collapseWhitespace(panel.Find(sel).First().Text())
		if text != "" {
			return text
		}
	}
	return ""
}

func (p *Parser) sessionListHTML(panel *goquery.Selection) (string, bool) {
	list := panel.Find(p.rules.SessionListSelector).First()
	if list.Length() == 0 {
		return "", false
	}
	html, err := goquery.OuterHtml(list)
	if err != nil {
		return "", false
	}
	return html, true
}

func (p *Parser) descriptionHTML(panel *goquery.Selection) string {
	if p.rules.DescriptionSelector == "" {
		return ""
	}
	body := panel.Find(p.rules.DescriptionSelector).First()
	if body.Length() == 0 {
		return ""
	}
	html, err := body.Html()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(html)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\u00a0", " ")), " ")
}
