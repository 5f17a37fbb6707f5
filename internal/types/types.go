package types

import (
	"fmt"
	"strings"
	"time"
)

// Operation names one filter step of the processing chain.
type Operation string

const (
	OpStabilize1     Operation = "STABILIZE1"
	OpStabilize2     Operation = "STABILIZE2"
	OpAntiflicker    Operation = "ANTIFLICKER"
	OpCropVertical   Operation = "CROP_VERTICAL"
	OpCropHorizontal Operation = "CROP_HORIZONTAL"
	OpRotateCCW      Operation = "ROTATE_CCW"
)

// AllOperations lists every known operation in declaration order.
var AllOperations = []Operation{
	OpStabilize1,
	OpStabilize2,
	OpAntiflicker,
	OpCropVertical,
	OpCropHorizontal,
	OpRotateCCW,
}

func (o Operation) String() string { return string(o) }

// ParseOperation accepts "CROP_VERTICAL", "crop_vertical" and "crop-vertical".
func ParseOperation(s string) (Operation, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	for _, op := range AllOperations {
		if string(op) == norm {
			return op, nil
		}
	}
	return "", fmt.Errorf("unknown operation %q", s)
}

// ParseSequence parses each element with ParseOperation, dropping empty entries.
func ParseSequence(items []string) ([]Operation, error) {
	ops := make([]Operation, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		op, err := ParseOperation(item)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// SplitList splits a comma separated list such as "STABILIZE1, STABILIZE2".
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type ProcessResult struct {
	Command  string
	Args     []string
	ExitCode int
	Output   string
	Started  time.Time
	Duration time.Duration
}

func (r ProcessResult) Success() bool { return r.ExitCode == 0 }

type VideoProcessResult struct {
	ResultFileName string
	Process        ProcessResult
}

type FileStatus string

const (
	StatusOK      FileStatus = "ok"
	StatusFailed  FileStatus = "failed"
	StatusSkipped FileStatus = "skipped"
)

type StepReport struct {
	Operation  Operation `json:"operation"`
	Input      string    `json:"input"`
	Output     string    `json:"output"`
	Command    string    `json:"command"`
	ExitCode   int       `json:"exit_code"`
	DurationMS int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
}

type FileReport struct {
	Input           string       `json:"input"`
	Output          string       `json:"output"`
	Status          FileStatus   `json:"status"`
	FailedOperation Operation    `json:"failed_operation,omitempty"`
	Error           string       `json:"error,omitempty"`
	Steps           []StepReport `json:"steps"`
}

type Report struct {
	RunID      string       `json:"run_id"`
	Directory  string       `json:"directory"`
	Tool       string       `json:"tool"`
	Sequence   []Operation  `json:"sequence"`
	DryRun     bool         `json:"dry_run"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Files      []FileReport `json:"files"`
}

// Counts returns the number of files per status.
func (r Report) Counts() (ok, failed, skipped int) {
	for _, f := range r.Files {
		switch f.Status {
		case StatusOK:
			ok++
		case StatusFailed:
			failed++
		case StatusSkipped:
			skipped++
		}
	}
	return ok, failed, skipped
}
