package process

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/artshishkin/video-filter/internal/types"
)

// Adapter runs command lines as child processes.
type Adapter struct {
	dir string
}

// New returns an Adapter that starts processes in workDir ("" means the
// current directory).
func New(workDir string) *Adapter {
	return &Adapter{dir: workDir}
}

// Split turns a command line into argv using POSIX shell word rules.
func Split(command string) ([]string, error) {
	args, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("split command %q: %w", command, err)
	}
	if len(args) == 0 {
		return nil, errors.New("empty command")
	}
	return args, nil
}

func (a *Adapter) ExecuteProcess(ctx context.Context, command string) (types.ProcessResult, error) {
	res := types.ProcessResult{Command: command, Started: time.Now()}
	args, err := Split(command)
	if err != nil {
		return res, err
	}
	res.Args = args

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = a.dir
	b, err := cmd.CombinedOutput()
	res.Duration = time.Since(res.Started)
	res.Output = string(b)
	if err == nil {
		return res, nil
	}

	if ctx.Err() != nil {
		res.ExitCode = -1
		return res, fmt.Errorf("%s interrupted: %w", args[0], ctx.Err())
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	res.ExitCode = -1
	return res, fmt.Errorf("%s: %w\n%s", args[0], err, string(b))
}
