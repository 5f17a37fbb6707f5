package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/gofrs/flock"
	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/artshishkin/video-filter/internal/discovery"
	"github.com/artshishkin/video-filter/internal/display"
	"github.com/artshishkin/video-filter/internal/domain/operations"
	"github.com/artshishkin/video-filter/internal/ports"
	"github.com/artshishkin/video-filter/internal/ports/adapters/process"
	"github.com/artshishkin/video-filter/internal/types"
	"github.com/artshishkin/video-filter/internal/usecase"
)

// ErrLocked is returned when another run holds the directory lock.
var ErrLocked = errors.New("another videofilter run is using this directory")

const lockFileName = ".videofilter.lock"

type Config struct {
	Directory    string
	Extensions   []string
	ToolPath     string
	Sequence     []types.Operation
	Templates    operations.Templates
	Strict       bool
	SkipExisting bool
	DryRun       bool

	// ReportPath is a JSON file, or an existing directory in which a
	// timestamped report is created. Empty disables the report.
	ReportPath string

	Logger zerolog.Logger
	// Progress receives a progress bar when non-nil.
	Progress io.Writer
	// Summary receives the summary table when non-nil.
	Summary io.Writer

	// Runner replaces the process adapter (and the dry-run adapter).
	Runner ports.ProcessRunner
}

func (c Config) Validate() error {
	if c.Directory == "" {
		return errors.New("directory is empty")
	}
	info, err := os.Stat(c.Directory)
	if err != nil {
		return fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", c.Directory)
	}
	if len(c.Extensions) == 0 {
		return errors.New("no video extensions configured")
	}
	if strings.TrimSpace(c.ToolPath) == "" {
		return errors.New("tool path is empty")
	}
	if len(c.Sequence) == 0 {
		return errors.New("operation sequence is empty")
	}
	for _, op := range c.Sequence {
		if err := operations.ValidateTemplate(op, c.Templates[op]); err != nil {
			return fmt.Errorf("%s template: %w", op, err)
		}
	}
	return nil
}

// Run processes every video under cfg.Directory. Per-file failures are
// recorded in the returned report; Run itself fails only when the run cannot
// start, the report cannot be written, or ctx is cancelled.
func Run(ctx context.Context, cfg Config) (types.Report, error) {
	report := types.Report{
		RunID:    uuid.NewString(),
		Tool:     cfg.ToolPath,
		Sequence: cfg.Sequence,
		DryRun:   cfg.DryRun,
	}

	dir, err := filepath.Abs(cfg.Directory)
	if err != nil {
		return report, err
	}
	report.Directory = dir
	log := cfg.Logger.With().Str("run_id", report.RunID).Logger()

	lock := flock.New(filepath.Join(dir, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return report, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return report, fmt.Errorf("%w (%s)", ErrLocked, lock.Path())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Warn().Err(err).Msg("release lock")
		}
	}()

	files, err := discovery.Discover(dir, cfg.Extensions)
	if err != nil {
		return report, fmt.Errorf("discover videos: %w", err)
	}
	log.Info().
		Str("dir", dir).
		Int("files", len(files)).
		Strs("sequence", opNames(cfg.Sequence)).
		Bool("dry_run", cfg.DryRun).
		Msg("starting")
	if len(files) == 0 {
		log.Warn().Strs("extensions", cfg.Extensions).Msg("no videos found")
	}

	// adapters
	runner := cfg.Runner
	if runner == nil {
		if cfg.DryRun {
			runner = process.NewDryRun(log)
		} else {
			runner = process.New("")
		}
	}
	uc := usecase.New(usecase.Deps{
		Runner: process.WithLogging(runner, log),
		Log:    log,
	})

	var bar *progressbar.ProgressBar
	if cfg.Progress != nil && len(files) > 0 {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(cfg.Progress),
			progressbar.OptionSetDescription("filtering"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	report.StartedAt = time.Now().UTC()
	res, runErr := uc.Run(ctx, usecase.Input{
		Files:        files,
		Sequence:     cfg.Sequence,
		Templates:    cfg.Templates,
		ToolPath:     cfg.ToolPath,
		Strict:       cfg.Strict,
		SkipExisting: cfg.SkipExisting,
		OnFileDone: func(_, _ int, _ types.FileReport) {
			if bar != nil {
				_ = bar.Add(1)
			}
		},
	})
	report.FinishedAt = time.Now().UTC()
	report.Files = res.Files
	if bar != nil {
		_ = bar.Finish()
	}

	nOK, nFailed, nSkipped := report.Counts()
	log.Info().
		Int("ok", nOK).
		Int("failed", nFailed).
		Int("skipped", nSkipped).
		Dur("took", report.FinishedAt.Sub(report.StartedAt)).
		Msg("finished")

	if cfg.ReportPath != "" {
		path := resolveReportPath(cfg.ReportPath, dir, report.StartedAt, report.RunID)
		if err := writeReport(path, report); err != nil {
			return report, err
		}
		log.Info().Str("path", path).Msg("report written")
	}
	if cfg.Summary != nil {
		fmt.Fprint(cfg.Summary, display.Summary(report))
	}
	return report, runErr
}

func writeReport(path string, report types.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending report: %w", err)
	}
	defer func() { _ = pending.Cleanup() }()

	enc := json.NewEncoder(pending)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace report: %w", err)
	}
	return nil
}

// resolveReportPath returns target unless it names an existing directory, in
// which case a per-run file name is generated inside it.
func resolveReportPath(target, videoDir string, now time.Time, runID string) string {
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return filepath.Join(target, buildReportName(videoDir, now, runID))
	}
	return target
}

func buildReportName(videoDir string, now time.Time, runID string) string {
	name := normalizePathSegment(filepath.Base(videoDir))
	if name == "" {
		name = "videos"
	}
	ts := now.UTC().Format("20060102-150405Z")
	id := strings.ReplaceAll(runID, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s-%s-%s.json", name, ts, id)
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func opNames(ops []types.Operation) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = op.String()
	}
	return out
}

// ensure adapters implement ports
var _ ports.ProcessRunner = (*process.Adapter)(nil)
var _ ports.ProcessRunner = (*process.DryRun)(nil)
var _ ports.ProcessRunner = (*process.Logging)(nil)
