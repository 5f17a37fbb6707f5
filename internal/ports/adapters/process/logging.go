package process

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/artshishkin/video-filter/internal/ports"
	"github.com/artshishkin/video-filter/internal/types"
)

const maxLoggedOutput = 4096

// Logging wraps a runner and logs each command line and the time it took.
type Logging struct {
	next ports.ProcessRunner
	log  zerolog.Logger
}

func WithLogging(next ports.ProcessRunner, log zerolog.Logger) *Logging {
	return &Logging{next: next, log: log}
}

func (l *Logging) ExecuteProcess(ctx context.Context, command string) (types.ProcessResult, error) {
	l.log.Info().Str("command", command).Msg("executing process")

	start := time.Now()
	res, err := l.next.ExecuteProcess(ctx, command)
	took := time.Since(start)

	ev := l.log.Info()
	switch {
	case err != nil:
		ev = l.log.Warn().Err(err)
	case res.ExitCode != 0:
		ev = l.log.Warn()
	}
	ev.Int("exit_code", res.ExitCode).Dur("took", took).Msg("process finished")

	if res.Output != "" {
		l.log.Debug().Str("output", tail(res.Output, maxLoggedOutput)).Msg("process output")
	}
	return res, err
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
