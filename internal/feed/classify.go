package feed

import (
	"regexp"
	"strings"
)

// Classification values. "Other"/"unknown" are deliberate catch-alls; the
// widget fails open on values it does not recognize.
const (
	FamilyACLS       = "ACLS"
	FamilyPALS       = "PALS"
	FamilyBLS        = "BLS"
	FamilyHeartsaver = "Heartsaver"
	FamilyHSI        = "HSI"
	FamilyOther      = "Other"

	CertAHA     = "AHA"
	CertHSI     = "HSI"
	CertARC     = "ARC"
	CertUnknown = "unknown"

	DeliveryInPerson     = "in-person"
	DeliveryOnlineSkills = "online-with-skills-check"
	DeliveryBlended      = "blended"
	DeliveryOnlineOnly   = "online-only"
)

var parenRe = regexp.MustCompile(`\s*[\(\[][^)\]]*[\)\]]`)

// Family buckets a course title into a program family. Order matters:
// provider-level ACLS/PALS outrank the BLS/CPR keywords that also appear in
// their titles.
func Family(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "acls"):
		return FamilyACLS
	case strings.Contains(t, "pals"):
		return FamilyPALS
	case strings.Contains(t, "bls"):
		return FamilyBLS
	case strings.Contains(t, "heartsaver"):
		return FamilyHeartsaver
	case strings.Contains(t, "hsi") || strings.Contains(t, "safety institute"):
		return FamilyHSI
	default:
		return FamilyOther
	}
}

// CertBody infers the certifying body from the title, falling back to the
// family when the title names no body outright.
func CertBody(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "aha") || strings.Contains(t, "american heart"):
		return CertAHA
	case strings.Contains(t, "hsi") || strings.Contains(t, "safety institute"):
		return CertHSI
	case strings.Contains(t, "arc") || strings.Contains(t, "red cross"):
		return CertARC
	}

	switch Family(title) {
	case FamilyACLS, FamilyPALS, FamilyBLS, FamilyHeartsaver:
		// These are AHA program names even when the title omits the body.
		return CertAHA
	case FamilyHSI:
		return CertHSI
	default:
		return CertUnknown
	}
}

// DeliveryMode infers how the course is delivered. HeartCode and "skills
// session" titles are the online-coursework-plus-in-person-check model.
func DeliveryMode(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "heartcode"),
		strings.Contains(t, "skills session"),
		strings.Contains(t, "skills check"):
		return DeliveryOnlineSkills
	case strings.Contains(t, "blended"):
		return DeliveryBlended
	case strings.Contains(t, "online"):
		return DeliveryOnlineOnly
	default:
		return DeliveryInPerson
	}
}

// CleanTitle strips parenthetical and bracketed qualifiers and collapses
// whitespace, for compact card headings.
func CleanTitle(title string) string {
	cleaned := parenRe.ReplaceAllString(title, "")
	return strings.Join(strings.Fields(cleaned), " ")
}
