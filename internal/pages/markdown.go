package pages

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Description returns the HTML description for a course. A hand-written
// markdown file in dir named <courseID>.md wins over the scraped panel copy;
// when neither exists the description is empty, not an error.
func Description(dir, courseID, scrapedHTML string) (string, error) {
	if dir != "" {
		path := filepath.Join(dir, courseID+".md")
		src, err := os.ReadFile(path)
		switch {
		case err == nil:
			var buf bytes.Buffer
			if err := md.Convert(src, &buf); err != nil {
				return "", fmt.Errorf("rendering description %s: %w", path, err)
			}
			return buf.String(), nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("reading description %s: %w", path, err)
		}
	}

	return scrapedHTML, nil
}
