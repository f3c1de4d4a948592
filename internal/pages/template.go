package pages

import (
	"regexp"
	"strings"
)

var placeholderRe = regexp.MustCompile(`\{\{([A-Z0-9_]+)\}\}`)

// Substitute replaces {{NAME}} placeholders in tmpl from vars. Placeholders
// with no entry in vars are left in place so a missing value is visible in
// the output instead of silently vanishing.
func Substitute(tmpl string, vars map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		name := strings.Trim(m, "{}")
		if v, ok := vars[name]; ok {
			return v
		}
		return m
	})
}
