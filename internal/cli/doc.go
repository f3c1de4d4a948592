// Package cli implements the command-line interface for ew2landers.
//
// The cli package provides the Cobra-based CLI for the static-site pipeline:
// refreshing the schedule snapshot, building pages and the widget feed,
// enriching prices, generating the sitemap, checking artifact status, and
// previewing or deploying the output tree. It coordinates the snapshot,
// schedule, pages, feed, and sitemap packages.
package cli
