package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// BuildResult summarizes one build for the terminal or CI logs.
type BuildResult struct {
	BuiltAt         time.Time        `json:"built_at"`
	Courses         int              `json:"courses"`
	Sessions        int              `json:"sessions"`
	Locations       int              `json:"locations"`
	PricedFromCache int              `json:"priced_from_cache"`
	SitemapPages    int              `json:"sitemap_pages"`
	Skips           map[string]int64 `json:"skips,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *BuildResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *BuildResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *BuildResult, verbose bool) error {
	fmt.Fprintf(w, "Built %d courses, %d sessions, %d locations.\n",
		result.Courses, result.Sessions, result.Locations)
	fmt.Fprintf(w, "Sitemap lists %d pages.\n", result.SitemapPages)
	if result.PricedFromCache > 0 {
		fmt.Fprintf(w, "Priced %d sessions from cache.\n", result.PricedFromCache)
	}

	if len(result.Skips) == 0 {
		return nil
	}

	// Skips are worth a look even on success; list them sorted for stable
	// CI log diffs.
	names := make([]string, 0, len(result.Skips))
	for name := range result.Skips {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Skipped records:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %d\n", name, result.Skips[name])
	}
	if verbose {
		fmt.Fprintln(w, "Re-run with --verbose logging for per-record details.")
	}
	return nil
}
