package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/artshishkin/video-filter/internal/types"
)

// ApplyEnv overrides file values with the VIDEOFILTER_* environment variables
// that are set and non-empty.
func (c *Config) ApplyEnv() {
	if v, ok := lookupEnv(EnvDirectory); ok {
		c.Videos.Directory = v
	}
	if v, ok := lookupEnv(EnvToolDir); ok {
		c.Tool.Directory = v
	}
	if v, ok := lookupEnv(EnvSequence); ok {
		c.Filter.Sequence = types.SplitList(v)
	}
	if v, ok := lookupEnv(EnvLogLevel); ok {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok {
		c.Logging.Format = v
	}
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (c *Config) normalize() error {
	var err error
	if strings.TrimSpace(c.Videos.Directory) == "" {
		c.Videos.Directory = defaultVideosDirectory
	}
	if c.Videos.Directory, err = expandPath(strings.TrimSpace(c.Videos.Directory)); err != nil {
		return fmt.Errorf("videos.directory: %w", err)
	}
	c.Videos.Extensions = normalizeExtensions(c.Videos.Extensions)

	// The tool directory is only trimmed; ToolPath joins it with the binary.
	c.Tool.Directory = strings.TrimSpace(c.Tool.Directory)
	if strings.HasPrefix(c.Tool.Directory, "~") {
		if c.Tool.Directory, err = expandPath(c.Tool.Directory); err != nil {
			return fmt.Errorf("tool.directory: %w", err)
		}
	}
	c.Tool.Binary = strings.TrimSpace(c.Tool.Binary)
	if c.Tool.Binary == "" {
		c.Tool.Binary = defaultToolBinary
	}

	if c.Report.Path, err = expandPath(strings.TrimSpace(c.Report.Path)); err != nil {
		return fmt.Errorf("report.path: %w", err)
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	return nil
}

// normalizeExtensions trims entries and drops a leading dot. Case is kept:
// extension matching is case-sensitive.
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	seen := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext == "" || seen[ext] {
			continue
		}
		seen[ext] = true
		out = append(out, ext)
	}
	return out
}
