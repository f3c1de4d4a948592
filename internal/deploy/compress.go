package deploy

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
)

// Precompress writes a .br sibling next to every compressible file in the
// tree, skipping files that already have one newer than the source. Returns
// how many files were compressed.
func Precompress(root string) (int, error) {
	compressed := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, ".br") || !isCompressible(d.Name()) {
			return nil
		}

		fresh, err := brotliFresh(path)
		if err != nil {
			return err
		}
		if fresh {
			return nil
		}

		if err := compressFile(path); err != nil {
			return fmt.Errorf("compressing %s: %w", path, err)
		}
		compressed++
		return nil
	})
	if err != nil {
		return compressed, fmt.Errorf("precompressing tree: %w", err)
	}
	return compressed, nil
}

func brotliFresh(path string) (bool, error) {
	src, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	br, err := os.Stat(path + ".br")
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !br.ModTime().Before(src.ModTime()), nil
}

func compressFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	out, err := os.Create(path + ".br")
	if err != nil {
		return err
	}
	defer out.Close()

	w := brotli.NewWriterLevel(out, brotli.BestCompression)
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Close()
}
