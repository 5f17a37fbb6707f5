package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperation(t *testing.T) {
	tests := map[string]Operation{
		"STABILIZE1":      OpStabilize1,
		"stabilize2":      OpStabilize2,
		" antiflicker ":   OpAntiflicker,
		"crop-vertical":   OpCropVertical,
		"Crop_Horizontal": OpCropHorizontal,
		"rotate_ccw":      OpRotateCCW,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := ParseOperation(in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := ParseOperation("SHARPEN")
	assert.ErrorContains(t, err, `unknown operation "SHARPEN"`)
}

func TestParseSequence(t *testing.T) {
	ops, err := ParseSequence(SplitList("stabilize1, STABILIZE2,,rotate_ccw"))
	require.NoError(t, err)
	assert.Equal(t, []Operation{OpStabilize1, OpStabilize2, OpRotateCCW}, ops)

	_, err = ParseSequence([]string{"stabilize1", "blur"})
	require.Error(t, err)
}

func TestReportCounts(t *testing.T) {
	r := Report{Files: []FileReport{
		{Status: StatusOK},
		{Status: StatusFailed},
		{Status: StatusOK},
		{Status: StatusSkipped},
	}}
	ok, failed, skipped := r.Counts()
	assert.Equal(t, 2, ok)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, skipped)
}
