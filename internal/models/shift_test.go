package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyBreakMarkerSetsFieldsOnlyAboveThreshold(t *testing.T) {
	short := ShiftInfo{Code: "S", Hours: 4}.ApplyBreakMarker(5, 30)
	assert.False(t, short.CrossesBreakThreshold)
	assert.Zero(t, short.BreakMinutes)

	full := ShiftInfo{Code: "1F", Hours: 8}.ApplyBreakMarker(5, 30)
	assert.True(t, full.CrossesBreakThreshold)
	assert.Equal(t, 30, full.BreakMinutes)
}
