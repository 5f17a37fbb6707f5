package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/artshishkin/video-filter/internal/display"
	"github.com/artshishkin/video-filter/internal/ports/adapters/process"
	"github.com/artshishkin/video-filter/internal/toolcheck"
)

func newCheckCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate configuration and verify that ffmpeg runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts, nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cfg.exists {
				fmt.Fprintf(out, "Config path: %s\n", cfg.path)
			} else {
				fmt.Fprintln(out, "Config file not found; defaults were used")
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config: %w", err)
			}
			fmt.Fprintf(out, "Directory:   %s\n", cfg.Videos.Directory)
			fmt.Fprintf(out, "Sequence:    %s\n", strings.Join(cfg.Filter.Sequence, ", "))

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			status := toolcheck.Check(ctx, process.New(""), "ffmpeg", cfg.ToolPath())
			fmt.Fprintln(out, display.RenderTable(
				[]string{"Tool", "Status", "Path", "Details"},
				toolcheck.Rows([]toolcheck.Status{status}),
				nil,
			))
			if !status.Available {
				return errors.New("ffmpeg is not available")
			}
			return nil
		},
	}
}
