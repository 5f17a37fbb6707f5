package ports

import (
	"context"

	"github.com/artshishkin/video-filter/internal/types"
)

// ProcessRunner runs one command line to completion. A non-zero exit code is
// reported in the result, not as an error.
type ProcessRunner interface {
	ExecuteProcess(ctx context.Context, command string) (types.ProcessResult, error)
}
