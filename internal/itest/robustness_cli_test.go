//go:build integration

package itest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
	"time"
)

const cliTimeout = 30 * time.Second

type robustCase struct {
	name            string
	args            func(t *testing.T, repoRoot string) []string
	env             map[string]string
	wantContains    []string
	wantNotContains []string
}

type cliRunResult struct {
	exitCode int
	output   string
}

func TestRobustness_ArgsValidation(t *testing.T) {
	repoRoot := mustRepoRoot(t)

	cases := []robustCase{
		{
			name: "too many args",
			args: staticArgs("a", "b"),
			wantContains: []string{
				"accepts at most 1 arg(s), received 2",
			},
		},
		{
			name: "unknown flag",
			args: staticArgs("--wat"),
			wantContains: []string{
				"unknown flag: --wat",
			},
		},
		{
			name: "strict non bool",
			args: staticArgs("--strict=maybe"),
			wantContains: []string{
				`invalid argument "maybe" for "--strict"`,
			},
		},
		{
			name: "unknown operation",
			args: videoDirArgs("--sequence", "STABILIZE1,SHARPEN"),
			wantContains: []string{
				`config: filter.sequence: unknown operation "SHARPEN"`,
			},
		},
		{
			name: "unknown operation from env",
			args: videoDirArgs(),
			env: map[string]string{
				"VIDEOFILTER_SEQUENCE": "BLUR",
			},
			wantContains: []string{
				`unknown operation "BLUR"`,
			},
		},
		{
			name: "bad log level",
			args: videoDirArgs("--log-level", "loud"),
			wantContains: []string{
				"config: logging.level",
			},
		},
	}

	runRobustCases(t, repoRoot, cases)
}

func TestRobustness_InvalidInputs(t *testing.T) {
	repoRoot := mustRepoRoot(t)

	cases := []robustCase{
		{
			name: "missing directory",
			args: func(t *testing.T, _ string) []string {
				t.Helper()
				return []string{"--dry-run", filepath.Join(t.TempDir(), "does-not-exist")}
			},
			wantContains: []string{
				"config: stat directory:",
			},
		},
		{
			name: "directory is a file",
			args: func(t *testing.T, _ string) []string {
				t.Helper()
				file := filepath.Join(t.TempDir(), "clip.mp4")
				if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
					t.Fatalf("write fixture: %v", err)
				}
				return []string{"--dry-run", file}
			},
			wantContains: []string{
				"is not a directory",
			},
		},
		{
			name: "template with wrong arity",
			args: func(t *testing.T, _ string) []string {
				t.Helper()
				cfgPath := filepath.Join(t.TempDir(), "vf.toml")
				body := "[filter]\nsequence = [\"ROTATE_CCW\"]\n[filter.templates]\nrotate = \"%s -i %s\"\n"
				if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
					t.Fatalf("write config: %v", err)
				}
				return []string{"--config", cfgPath, "--dry-run", t.TempDir()}
			},
			wantContains: []string{
				"config: filter.templates.rotate: template must consume exactly 3 values",
			},
		},
		{
			name: "unknown config key",
			args: func(t *testing.T, _ string) []string {
				t.Helper()
				cfgPath := filepath.Join(t.TempDir(), "vf.toml")
				if err := os.WriteFile(cfgPath, []byte("[filter]\nsequense = []\n"), 0o644); err != nil {
					t.Fatalf("write config: %v", err)
				}
				return []string{"--config", cfgPath}
			},
			wantContains: []string{
				"load config: parse config",
			},
		},
		{
			name: "failing tool with fail-on-error",
			args: func(t *testing.T, _ string) []string {
				t.Helper()
				if runtime.GOOS == "windows" {
					t.Skip("shell stubs need a POSIX shell")
				}
				toolDir := t.TempDir()
				if err := os.WriteFile(filepath.Join(toolDir, "ffmpeg"), []byte("#!/bin/sh\nexit 1\n"), 0o755); err != nil {
					t.Fatalf("write stub: %v", err)
				}
				return []string{"--tool-dir", toolDir, "--strict", "--fail-on-error", "--sequence", "ROTATE_CCW", newVideoDir(t)}
			},
			wantContains: []string{
				"some files failed: 1 of 1",
			},
		},
		{
			name: "check with missing tool",
			args: func(t *testing.T, _ string) []string {
				t.Helper()
				return []string{"check", "--tool-dir", filepath.Join(t.TempDir(), "nope")}
			},
			wantContains: []string{
				"ffmpeg is not available",
			},
		},
	}

	runRobustCases(t, repoRoot, cases)
}

func newVideoDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "clip.mp4"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return dir
}

func videoDirArgs(args ...string) func(t *testing.T, _ string) []string {
	clone := append([]string(nil), args...)
	return func(t *testing.T, _ string) []string {
		t.Helper()
		return append(append([]string(nil), clone...), newVideoDir(t))
	}
}

func runRobustCases(t *testing.T, repoRoot string, cases []robustCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := map[string]string{
				// A config path that does not exist keeps the run on defaults.
				"VIDEOFILTER_CONFIG":     filepath.Join(t.TempDir(), "none.toml"),
				"VIDEOFILTER_DIR":        "",
				"VIDEOFILTER_TOOL_DIR":   "",
				"VIDEOFILTER_SEQUENCE":   "",
				"VIDEOFILTER_LOG_LEVEL":  "",
				"VIDEOFILTER_LOG_FORMAT": "",
			}
			for k, v := range tc.env {
				env[k] = v
			}
			res := runCLI(t, repoRoot, tc.args(t, repoRoot), env)
			if res.exitCode == 0 {
				t.Fatalf("expected non-zero exit code, got 0\noutput:\n%s", res.output)
			}
			for _, want := range tc.wantContains {
				if !strings.Contains(res.output, want) {
					t.Fatalf("expected output to contain %q\noutput:\n%s", want, res.output)
				}
			}
			for _, notWant := range tc.wantNotContains {
				if strings.Contains(res.output, notWant) {
					t.Fatalf("expected output to not contain %q\noutput:\n%s", notWant, res.output)
				}
			}
		})
	}
}

func runCLI(t *testing.T, repoRoot string, args []string, env map[string]string) cliRunResult {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), cliTimeout)
	defer cancel()

	cmdArgs := append([]string{"run", "./cmd/videofilter"}, args...)
	cmd := exec.CommandContext(ctx, "go", cmdArgs...)
	cmd.Dir = repoRoot
	cmd.Env = mergeEnv(
		os.Environ(),
		map[string]string{
			"NO_COLOR": "1",
			"TERM":     "dumb",
		},
		env,
	)

	out, err := cmd.CombinedOutput()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		t.Fatalf("command timed out after %s: go %s", cliTimeout, strings.Join(cmdArgs, " "))
	}

	res := cliRunResult{output: string(out)}
	if err == nil {
		res.exitCode = 0
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.exitCode = exitErr.ExitCode()
		return res
	}

	t.Fatalf("run command: %v\noutput:\n%s", err, string(out))
	return cliRunResult{}
}

func mergeEnv(base []string, overrides ...map[string]string) []string {
	env := make(map[string]string, len(base))
	for _, kv := range base {
		i := strings.IndexByte(kv, '=')
		if i <= 0 {
			continue
		}
		env[kv[:i]] = kv[i+1:]
	}

	for _, set := range overrides {
		for k, v := range set {
			env[k] = v
		}
	}

	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(out)
	return out
}

func mustRepoRoot(t *testing.T) string {
	t.Helper()

	repoRoot, err := findRepoRoot()
	if err != nil {
		t.Fatalf("repo root: %v", err)
	}
	return repoRoot
}

func staticArgs(args ...string) func(t *testing.T, _ string) []string {
	clone := append([]string(nil), args...)
	return func(t *testing.T, _ string) []string {
		t.Helper()
		return append([]string(nil), clone...)
	}
}
