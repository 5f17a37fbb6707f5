// Package toolcheck reports whether the configured video tool can be run.
package toolcheck

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/artshishkin/video-filter/internal/ports"
)

// Status reports the availability of the tool.
type Status struct {
	Name      string
	Command   string
	Resolved  string
	Version   string
	Available bool
	Detail    string
}

// Check resolves command on PATH (or as a path) and runs it with -version.
func Check(ctx context.Context, runner ports.ProcessRunner, name, command string) Status {
	cmd := strings.TrimSpace(command)
	status := Status{Name: name, Command: cmd}
	if cmd == "" {
		status.Detail = "command not configured"
		return status
	}

	resolved, err := exec.LookPath(cmd)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", cmd)
		return status
	}
	status.Resolved = resolved

	res, err := runner.ExecuteProcess(ctx, shellquote.Join(resolved, "-version"))
	if err != nil {
		status.Detail = err.Error()
		return status
	}
	if res.ExitCode != 0 {
		status.Detail = fmt.Sprintf("-version exited with status %d", res.ExitCode)
		return status
	}
	status.Version = firstLine(res.Output)
	status.Available = true
	return status
}

// Rows formats statuses for display.RenderTable.
func Rows(statuses []Status) [][]string {
	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		state := "ok"
		info := s.Version
		if !s.Available {
			state = "missing"
			info = s.Detail
		}
		path := s.Resolved
		if path == "" {
			path = s.Command
		}
		rows = append(rows, []string{s.Name, state, path, info})
	}
	return rows
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
