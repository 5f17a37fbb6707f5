// Package display renders run summaries and check results as terminal tables.
package display

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/artshishkin/video-filter/internal/types"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// RenderTable draws rows under headers. Short rows are padded with empty cells.
func RenderTable(headers []string, rows [][]string, aligns []Alignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// Summary renders one row per file followed by a totals line.
func Summary(r types.Report) string {
	rows := make([][]string, 0, len(r.Files))
	for _, f := range r.Files {
		detail := filepath.Base(f.Output)
		if f.Status == types.StatusFailed {
			detail = fmt.Sprintf("%s: %s", f.FailedOperation, f.Error)
		}
		rows = append(rows, []string{
			relativeTo(r.Directory, f.Input),
			string(f.Status),
			fmt.Sprintf("%d/%d", countDone(f), len(r.Sequence)),
			detail,
		})
	}
	ok, failed, skipped := r.Counts()
	out := RenderTable(
		[]string{"File", "Status", "Steps", "Result"},
		rows,
		[]Alignment{AlignLeft, AlignLeft, AlignRight, AlignLeft},
	)
	return fmt.Sprintf("%s\n%d ok, %d failed, %d skipped in %s\n",
		out, ok, failed, skipped, r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
}

func countDone(f types.FileReport) int {
	n := 0
	for _, s := range f.Steps {
		if s.Error == "" {
			n++
		}
	}
	return n
}

func relativeTo(dir, path string) string {
	if dir == "" {
		return path
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return path
	}
	return rel
}
