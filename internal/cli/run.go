package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/artshishkin/video-filter/internal/logging"
	"github.com/artshishkin/video-filter/internal/pipeline"
)

func run(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := loadConfig(cmd, opts, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	seq, err := cfg.Sequence()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	stderr := cmd.ErrOrStderr()
	log, err := newLogger(cfg.Config, stderr)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.exists {
		log.Debug().Str("path", cfg.path).Msg("config loaded")
	} else {
		log.Debug().Msg("no config file, using defaults")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pcfg := pipeline.Config{
		Directory:    cfg.Videos.Directory,
		Extensions:   cfg.Videos.Extensions,
		ToolPath:     cfg.ToolPath(),
		Sequence:     seq,
		Templates:    cfg.TemplateSet(),
		Strict:       cfg.Filter.Strict,
		SkipExisting: cfg.Filter.SkipExisting,
		DryRun:       opts.dryRun,
		ReportPath:   cfg.Report.Path,
		Logger:       log,
		Summary:      cmd.OutOrStdout(),
	}
	if logging.IsTerminal(stderr) && cfg.Logging.Format != "json" {
		pcfg.Progress = stderr
	}

	if err := pcfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	report, err := pipeline.Run(ctx, pcfg)
	if err != nil {
		return err
	}

	if opts.failOnError {
		if _, failed, _ := report.Counts(); failed > 0 {
			return fmt.Errorf("%w: %d of %d", errFilesFailed, failed, len(report.Files))
		}
	}
	return nil
}
