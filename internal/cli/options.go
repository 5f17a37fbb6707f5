package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/artshishkin/video-filter/internal/config"
	"github.com/artshishkin/video-filter/internal/logging"
	"github.com/artshishkin/video-filter/internal/types"
)

type options struct {
	configPath string
	logLevel   string
	logFormat  string
	toolDir    string

	sequence     string
	dryRun       bool
	strict       bool
	skipExisting bool
	report       string
	failOnError  bool
}

type loadedConfig struct {
	*config.Config
	path   string
	exists bool
}

// loadConfig reads the config file and environment, then applies the flags
// that were set on cmd. A positional directory overrides videos.directory.
func loadConfig(cmd *cobra.Command, opts *options, args []string) (loadedConfig, error) {
	cfg, path, exists, err := config.Load(opts.configPath)
	if err != nil {
		return loadedConfig{}, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if len(args) == 1 {
		cfg.Videos.Directory = args[0]
	}
	if opts.toolDir != "" {
		cfg.Tool.Directory = opts.toolDir
	}
	if opts.sequence != "" {
		cfg.Filter.Sequence = types.SplitList(opts.sequence)
	}
	if flags.Changed("strict") {
		cfg.Filter.Strict = opts.strict
	}
	if flags.Changed("skip-existing") {
		cfg.Filter.SkipExisting = opts.skipExisting
	}
	if opts.report != "" {
		cfg.Report.Path = opts.report
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Logging.Format = opts.logFormat
	}
	return loadedConfig{Config: cfg, path: path, exists: exists}, nil
}

func newLogger(cfg *config.Config, w io.Writer) (zerolog.Logger, error) {
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: w,
	})
}
