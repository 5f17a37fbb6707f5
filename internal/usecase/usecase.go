package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/artshishkin/video-filter/internal/domain/operations"
	"github.com/artshishkin/video-filter/internal/ports"
	"github.com/artshishkin/video-filter/internal/types"
)

// ErrNonZeroExit marks an operation whose process exited unsuccessfully while
// strict mode is on.
var ErrNonZeroExit = errors.New("process exited with non-zero status")

type Deps struct {
	Runner ports.ProcessRunner
	Log    zerolog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	Files        []string
	Sequence     []types.Operation
	Templates    operations.Templates
	ToolPath     string
	Strict       bool
	SkipExisting bool

	// OnFileDone, if set, is called after each file.
	OnFileDone func(done, total int, fr types.FileReport)
}

type Result struct {
	Files []types.FileReport
}

// Run applies the operation chain to every file in order. A failure inside a
// file's chain is recorded and logged, and the next file is processed. Run
// returns an error only when ctx is cancelled; Result then holds the files
// handled so far.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	var res Result
	if u.d.Runner == nil {
		return res, errors.New("usecase: process runner is required")
	}

	for i, file := range in.Files {
		if err := ctx.Err(); err != nil {
			u.d.Log.Warn().Int("remaining", len(in.Files)-i).Msg("interrupted")
			return res, err
		}
		fr := u.processFile(ctx, in, file)
		res.Files = append(res.Files, fr)
		if in.OnFileDone != nil {
			in.OnFileDone(i+1, len(in.Files), fr)
		}
	}
	return res, ctx.Err()
}

func (u Usecase) processFile(ctx context.Context, in Input, file string) types.FileReport {
	log := u.d.Log.With().Str("file", file).Logger()
	fr := types.FileReport{Input: file, Output: file, Status: types.StatusOK}

	if in.SkipExisting {
		if final, ok := existingOutput(in.Sequence, file); ok {
			log.Info().Str("output", final).Msg("skip (output exists)")
			fr.Status = types.StatusSkipped
			fr.Output = final
			return fr
		}
	}

	name := file
	for _, op := range in.Sequence {
		vr, step, err := u.apply(ctx, in, op, name)
		fr.Steps = append(fr.Steps, step)
		if err != nil {
			log.Error().Err(err).Str("operation", op.String()).Msg("file abandoned")
			fr.Status = types.StatusFailed
			fr.FailedOperation = op
			fr.Error = err.Error()
			fr.Output = name
			return fr
		}
		name = vr.ResultFileName
	}

	fr.Output = name
	log.Info().Str("output", name).Msg("file done")
	return fr
}

func (u Usecase) apply(ctx context.Context, in Input, op types.Operation, name string) (types.VideoProcessResult, types.StepReport, error) {
	step := types.StepReport{Operation: op, Input: name}

	inv, err := operations.Command(op, in.Templates, in.ToolPath, name)
	if err != nil {
		step.Error = err.Error()
		return types.VideoProcessResult{}, step, err
	}
	step.Output = inv.Output
	step.Command = inv.Command

	res, err := u.d.Runner.ExecuteProcess(ctx, inv.Command)
	step.ExitCode = res.ExitCode
	step.DurationMS = res.Duration.Milliseconds()
	if err != nil {
		err = fmt.Errorf("%s: %w", op, err)
		step.Error = err.Error()
		return types.VideoProcessResult{}, step, err
	}
	if in.Strict && res.ExitCode != 0 {
		err = fmt.Errorf("%s: %w (exit code %d)", op, ErrNonZeroExit, res.ExitCode)
		step.Error = err.Error()
		return types.VideoProcessResult{}, step, err
	}

	return types.VideoProcessResult{ResultFileName: inv.Output, Process: res}, step, nil
}

// existingOutput reports whether the chain's final output already exists and
// differs from the input.
func existingOutput(seq []types.Operation, file string) (string, bool) {
	final, err := operations.FinalOutput(seq, file)
	if err != nil || final == file {
		return "", false
	}
	if _, err := os.Stat(final); err != nil {
		return "", false
	}
	return final, true
}
