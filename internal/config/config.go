package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/artshishkin/video-filter/internal/domain/operations"
	"github.com/artshishkin/video-filter/internal/types"
)

//go:embed sample_config.toml
var sampleConfig string

// Videos selects the files a run processes.
type Videos struct {
	Directory  string   `toml:"directory" yaml:"directory"`
	Extensions []string `toml:"extensions" yaml:"extensions"`
}

// Tool locates the external video tool. An empty Directory means the binary
// is looked up on PATH.
type Tool struct {
	Directory string `toml:"directory" yaml:"directory"`
	Binary    string `toml:"binary" yaml:"binary"`
}

// Templates holds the command-line template of each operation. Each %s is
// replaced, in order, by the tool path and the operation's file names.
type Templates struct {
	StabilizePart1 string `toml:"stabilize_part1" yaml:"stabilize_part1"`
	StabilizePart2 string `toml:"stabilize_part2" yaml:"stabilize_part2"`
	Antiflicker    string `toml:"antiflicker" yaml:"antiflicker"`
	CropVertical   string `toml:"crop_vertical" yaml:"crop_vertical"`
	CropHorizontal string `toml:"crop_horizontal" yaml:"crop_horizontal"`
	Rotate         string `toml:"rotate" yaml:"rotate"`
}

// Filter configures the operation chain.
type Filter struct {
	Sequence     []string  `toml:"sequence" yaml:"sequence"`
	Strict       bool      `toml:"strict" yaml:"strict"`
	SkipExisting bool      `toml:"skip_existing" yaml:"skip_existing"`
	Templates    Templates `toml:"templates" yaml:"templates"`
}

type Report struct {
	Path string `toml:"path" yaml:"path"`
}

type Logging struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Config encapsulates all configuration values for videofilter.
type Config struct {
	Videos  Videos  `toml:"videos" yaml:"videos"`
	Tool    Tool    `toml:"tool" yaml:"tool"`
	Filter  Filter  `toml:"filter" yaml:"filter"`
	Report  Report  `toml:"report" yaml:"report"`
	Logging Logging `toml:"logging" yaml:"logging"`
}

// DefaultConfigPath returns the absolute path of the per-user config file.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultUserConfig)
}

// Load locates and parses a configuration file, then applies environment
// overrides. A missing file is not an error: the defaults are used. Callers
// apply flag overrides and then call Validate.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		data, err := os.ReadFile(resolved)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		if err := decode(resolved, data, &cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	}

	cfg.ApplyEnv()
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfig))
	}
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config %s is a directory", expanded)
		}
		return expanded, true, nil
	}

	projectPath, err := filepath.Abs(defaultProjectConfig)
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	userPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(userPath); err == nil && !info.IsDir() {
		return userPath, true, nil
	}
	return userPath, false, nil
}

// ToolPath returns the tool executable: the trimmed directory joined with the
// binary name, or the bare binary name when no directory is configured.
func (c *Config) ToolPath() string {
	bin := strings.TrimSpace(c.Tool.Binary)
	if bin == "" {
		bin = defaultToolBinary
	}
	if runtime.GOOS == "windows" && filepath.Ext(bin) == "" {
		bin += ".exe"
	}
	dir := strings.TrimSpace(c.Tool.Directory)
	if dir == "" {
		return bin
	}
	return filepath.Join(dir, bin)
}

// Sequence parses the configured operation names.
func (c *Config) Sequence() ([]types.Operation, error) {
	ops, err := types.ParseSequence(c.Filter.Sequence)
	if err != nil {
		return nil, fmt.Errorf("filter.sequence: %w", err)
	}
	return ops, nil
}

// TemplateSet maps the configured templates to their operations.
func (c *Config) TemplateSet() operations.Templates {
	t := c.Filter.Templates
	return operations.Templates{
		types.OpStabilize1:     t.StabilizePart1,
		types.OpStabilize2:     t.StabilizePart2,
		types.OpAntiflicker:    t.Antiflicker,
		types.OpCropVertical:   t.CropVertical,
		types.OpCropHorizontal: t.CropHorizontal,
		types.OpRotateCCW:      t.Rotate,
	}
}

// Marshal renders the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to path. An existing file
// is left untouched unless force is set.
func CreateSample(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config %s already exists", path)
		}
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
