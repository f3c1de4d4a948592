// Package snapshot fetches the booking platform's published schedule page
// and extracts the per-course panels from a saved snapshot of it.
//
// Extraction works on a parsed document tree with explicit node-selection
// queries; the selectors themselves live in config.Rules so a markup change
// upstream is a config edit, not a code change. A panel missing its heading
// or its session list is skipped and counted, never fatal.
package snapshot
