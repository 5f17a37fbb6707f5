package display

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/artshishkin/video-filter/internal/types"
)

func TestRenderTable(t *testing.T) {
	out := RenderTable([]string{"Name", "Count"}, [][]string{{"a", "1"}, {"b"}}, []Alignment{AlignLeft, AlignRight})
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Count")
	assert.Contains(t, out, "a")
	assert.Equal(t, 6, strings.Count(out, "\n")+1, "top, header, separator, two rows, bottom:\n%s", out)

	assert.Empty(t, RenderTable(nil, nil, nil))
}

func TestSummary(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	r := types.Report{
		Directory:  "/v",
		Sequence:   []types.Operation{types.OpStabilize2, types.OpRotateCCW},
		StartedAt:  start,
		FinishedAt: start.Add(2500 * time.Millisecond),
		Files: []types.FileReport{
			{
				Input: "/v/trip/a.mp4", Output: "/v/trip/a_stab_rotate.mp4", Status: types.StatusOK,
				Steps: []types.StepReport{{Operation: types.OpStabilize2}, {Operation: types.OpRotateCCW}},
			},
			{
				Input: "/v/b.mp4", Output: "/v/b.mp4", Status: types.StatusFailed,
				FailedOperation: types.OpStabilize2, Error: "exit status 1",
				Steps: []types.StepReport{{Operation: types.OpStabilize2, Error: "exit status 1"}},
			},
			{Input: "/v/c.mp4", Output: "/v/c_stab_rotate.mp4", Status: types.StatusSkipped},
		},
	}

	out := Summary(r)
	assert.Contains(t, out, "trip/a.mp4")
	assert.Contains(t, out, "a_stab_rotate.mp4")
	assert.Contains(t, out, "2/2")
	assert.Contains(t, out, "0/2")
	assert.Contains(t, out, "STABILIZE2: exit status 1")
	assert.Contains(t, out, "1 ok, 1 failed, 1 skipped in 2.5s")
}
