// Package config holds the site configuration for the build pipeline.
//
// Everything that ties the pipeline to one upstream markup shape lives here
// as data: the selector rules for the snapshot parser, the booking-platform
// base URL, the site origin for the sitemap, and the organization record
// embedded in session page metadata. Commands load a JSON config file and
// fall back to the 910CPR defaults when no file is present.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// DefaultPath is the config file commands look for when --config is not set.
const DefaultPath = "site.config.json"

// Rules describes how course panels and session line items are located in
// the snapshot markup. These mirror the upstream schedule page's structure;
// if the booking platform changes its markup, this is the only place that
// needs to follow.
type Rules struct {
	// PanelSelector matches one course's self-contained block.
	PanelSelector string `json:"panel_selector"`
	// CourseCodeAttrs are the attributes checked for a course-code token.
	CourseCodeAttrs []string `json:"course_code_attrs"`
	// CourseCodePrefix is the token prefix ("ct" upstream); the rest of the
	// token must be digits.
	CourseCodePrefix string `json:"course_code_prefix"`
	// HeadingSelectors are tried in order; the first non-empty text wins.
	HeadingSelectors []string `json:"heading_selectors"`
	// SessionListSelector matches the list of bookable instances in a panel.
	SessionListSelector string `json:"session_list_selector"`
	// SessionItemSelector matches one line item inside the session list.
	SessionItemSelector string `json:"session_item_selector"`
	// DescriptionSelector matches the free-form course description block.
	DescriptionSelector string `json:"description_selector"`
}

// Organization is the static organizer record used in session page metadata.
type Organization struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Config is the full site configuration.
type Config struct {
	// Origin is the canonical site origin prepended to sitemap URLs.
	Origin string `json:"origin"`
	// EnrollBase is the booking platform base; relative registration links
	// are resolved against it.
	EnrollBase string `json:"enroll_base"`
	// ScheduleURL is the fallback deep link when a session has no id.
	ScheduleURL string `json:"schedule_url"`
	// SnapshotURL is where `refresh` fetches a fresh schedule snapshot.
	SnapshotURL string `json:"snapshot_url"`

	SnapshotPath    string `json:"snapshot_path"`
	OutputDir       string `json:"output_dir"`
	FeedPath        string `json:"feed_path"`
	StatusPath      string `json:"status_path"`
	PriceCachePath  string `json:"price_cache_path"`
	DescriptionsDir string `json:"descriptions_dir"`

	// Timezone is the IANA zone session date text is parsed in.
	Timezone string `json:"timezone"`
	// MaxUpcoming caps how many sessions the widget renders per refresh.
	MaxUpcoming int `json:"max_upcoming"`

	Rules        Rules        `json:"rules"`
	Organization Organization `json:"organization"`
}

// Default returns the 910CPR production configuration.
func Default() *Config {
	return &Config{
		Origin:      "https://www.910cpr.com",
		EnrollBase:  "https://coastalcprtraining.enrollware.com/",
		ScheduleURL: "https://coastalcprtraining.enrollware.com/schedule",
		SnapshotURL: "https://coastalcprtraining.enrollware.com/schedule",

		SnapshotPath:    "docs/data/enrollware-schedule.html",
		OutputDir:       "docs",
		FeedPath:        "docs/data/schedule.json",
		StatusPath:      "docs/data/status.json",
		PriceCachePath:  "docs/data/prices-cache.json",
		DescriptionsDir: "content/descriptions",

		Timezone:    "America/New_York",
		MaxUpcoming: 5,

		Rules: Rules{
			PanelSelector:       ".enrpanel",
			CourseCodeAttrs:     []string{"id", "name"},
			CourseCodePrefix:    "ct",
			HeadingSelectors:    []string{".enrpanel-title", ".enrpanel-heading a", "h2", "h3", "h4"},
			SessionListSelector: ".enrclass-list",
			SessionItemSelector: "li",
			DescriptionSelector: ".enrpanel-body",
		},
		Organization: Organization{
			Name:  "910 CPR / Coastal CPR Training",
			URL:   "https://www.910cpr.com",
			Phone: "(910) 395-5193",
			Email: "brian@910cpr.com",
		},
	}
}

// Load reads a config file and overlays it on the defaults, so partial
// config files only need to name the fields they change.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads the given path, or DefaultPath if path is empty; a
// missing default file silently yields the built-in defaults.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultPath); os.IsNotExist(err) {
			return Default(), nil
		}
		path = DefaultPath
	}
	return Load(path)
}

func (c *Config) validate() error {
	if c.Origin == "" {
		return fmt.Errorf("origin must not be empty")
	}
	if !strings.HasSuffix(c.EnrollBase, "/") {
		c.EnrollBase += "/"
	}
	if c.MaxUpcoming <= 0 {
		c.MaxUpcoming = Default().MaxUpcoming
	}
	if c.Rules.PanelSelector == "" {
		return fmt.Errorf("rules.panel_selector must not be empty")
	}
	return nil
}

// Location resolves the configured timezone, falling back to UTC if the
// zone database does not know it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
