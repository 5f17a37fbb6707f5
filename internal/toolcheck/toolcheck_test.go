package toolcheck

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/artshishkin/video-filter/internal/ports/adapters/process"
)

func writeStub(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheck(t *testing.T) {
	ok := writeStub(t, `echo "ffmpeg version 6.1.1 Copyright (c) 2000-2023"; echo "built with gcc"`)
	broken := writeStub(t, `exit 1`)
	runner := process.New("")

	got := Check(context.Background(), runner, "ffmpeg", ok)
	if !got.Available {
		t.Fatalf("expected tool available, got %#v", got)
	}
	if got.Version != "ffmpeg version 6.1.1 Copyright (c) 2000-2023" {
		t.Fatalf("unexpected version line %q", got.Version)
	}

	got = Check(context.Background(), runner, "ffmpeg", broken)
	if got.Available || got.Detail == "" {
		t.Fatalf("expected failing -version to be reported, got %#v", got)
	}

	got = Check(context.Background(), runner, "ffmpeg", "clearly-not-present-binary")
	if got.Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if got.Detail != `binary "clearly-not-present-binary" not found` {
		t.Fatalf("unexpected detail %q", got.Detail)
	}

	got = Check(context.Background(), runner, "ffmpeg", "  ")
	if got.Available || got.Detail != "command not configured" {
		t.Fatalf("unexpected status for empty command: %#v", got)
	}
}

func TestRows(t *testing.T) {
	rows := Rows([]Status{
		{Name: "ffmpeg", Command: "ffmpeg", Resolved: "/usr/bin/ffmpeg", Version: "ffmpeg version 6", Available: true},
		{Name: "ffmpeg", Command: "/opt/ffmpeg", Detail: "binary not found"},
	})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][1] != "ok" || rows[0][2] != "/usr/bin/ffmpeg" || rows[0][3] != "ffmpeg version 6" {
		t.Fatalf("unexpected available row %v", rows[0])
	}
	if rows[1][1] != "missing" || rows[1][2] != "/opt/ffmpeg" || rows[1][3] != "binary not found" {
		t.Fatalf("unexpected missing row %v", rows[1])
	}
}
