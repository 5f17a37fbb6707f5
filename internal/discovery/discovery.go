// Package discovery finds the video files a run will process.
package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/artshishkin/video-filter/internal/domain/naming"
)

// DefaultExtensions is the allow-list used when none is configured.
var DefaultExtensions = []string{"mp4", "avi", "vob", "ogg"}

// Discover walks root and returns the regular files whose extension is in
// extensions. Matching is case-sensitive and the result is sorted.
// Symlinks to regular files are kept; symlinked directories are not followed.
func Discover(root string, extensions []string) ([]string, error) {
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[ext] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext, ok := naming.Extension(path)
		if !ok || !allowed[ext] {
			return nil
		}
		if !isRegular(path, d) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
