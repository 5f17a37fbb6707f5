package naming

import (
	"path/filepath"
	"strings"
)

// Extension returns the text after the last '.' of the base name, without the
// dot. ok is false when the base name has no dot.
func Extension(path string) (ext string, ok bool) {
	base := path[baseStart(path):]
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return "", false
	}
	return base[i+1:], true
}

// AddOperationSuffix inserts "_<suffix>" before the extension of the last
// path element. Directory components are left untouched.
func AddOperationSuffix(path, suffix string) string {
	start := baseStart(path)
	dir, base := path[:start], path[start:]
	stem, ext := base, ""
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		stem, ext = base[:i], base[i:]
	}
	return dir + stem + "_" + suffix + ext
}

func baseStart(path string) int {
	seps := "/"
	if filepath.Separator != '/' {
		seps += string(filepath.Separator)
	}
	return strings.LastIndexAny(path, seps) + 1
}
