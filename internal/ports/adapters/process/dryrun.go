package process

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/artshishkin/video-filter/internal/types"
)

// DryRun reports every command as a successful no-op.
type DryRun struct {
	log zerolog.Logger
}

func NewDryRun(log zerolog.Logger) *DryRun {
	return &DryRun{log: log}
}

func (d *DryRun) ExecuteProcess(ctx context.Context, command string) (types.ProcessResult, error) {
	res := types.ProcessResult{Command: command, Started: time.Now()}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	args, err := Split(command)
	if err != nil {
		return res, err
	}
	res.Args = args
	d.log.Info().Strs("argv", args).Msg("dry run, not executing")
	return res, nil
}
