// Package sitemap generates sitemap.xml for the built page tree.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/910cpr/ew2landers/internal/logger"
)

const header = xml.Header

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []urlEntry
}

type urlEntry struct {
	XMLName xml.Name `xml:"url"`
	Loc     string   `xml:"loc"`
}

// Generate walks the output tree, collects every .html page except the root
// index.html, and writes sitemap.xml at the tree root. The site root URL is
// always the first entry, so a tree with N generated pages yields N+1
// locations. Returns the number of page entries, not counting the root.
//
// written, when non-nil, is the set of output-relative paths the current run
// produced; pages on disk that the run did not write are listed anyway (they
// may be hand-maintained) but logged so stale generated pages get noticed.
func Generate(outputDir, origin string, written map[string]struct{}) (int, error) {
	pages, err := collect(outputDir)
	if err != nil {
		return 0, err
	}

	if written != nil {
		for _, rel := range pages {
			if _, ok := written[rel]; !ok {
				logger.Warn("sitemap includes page not written this run", logger.Fields{
					"path": rel,
				})
				logger.IncrCounter("sitemap.stale_pages")
			}
		}
	}

	set := urlset{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	base := strings.TrimSuffix(origin, "/")
	set.URLs = append(set.URLs, urlEntry{Loc: base + "/"})
	for _, rel := range pages {
		set.URLs = append(set.URLs, urlEntry{Loc: base + "/" + rel})
	}

	data, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("marshaling sitemap: %w", err)
	}

	path := filepath.Join(outputDir, "sitemap.xml")
	if err := os.WriteFile(path, append([]byte(header), append(data, '\n')...), 0644); err != nil {
		return 0, fmt.Errorf("writing sitemap: %w", err)
	}

	logger.Info("wrote sitemap", logger.Fields{"path": path, "pages": len(pages)})
	return len(pages), nil
}

// collect returns the sorted, deduplicated output-relative paths of every
// .html file under root, excluding the root index.html.
func collect(root string) ([]string, error) {
	seen := make(map[string]struct{})

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "index.html" {
			return nil
		}
		seen[rel] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking output tree: %w", err)
	}

	pages := make([]string, 0, len(seen))
	for rel := range seen {
		pages = append(pages, rel)
	}
	sort.Strings(pages)
	return pages, nil
}
