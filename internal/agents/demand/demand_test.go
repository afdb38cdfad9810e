package demand

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakhill-retail/shift-roster-engine/internal/logging"
	"github.com/oakhill-retail/shift-roster-engine/internal/models"
)

func TestAnalyzeAppliesWeekendUplift(t *testing.T) {
	a := New(logging.New())
	days := models.BuildHorizon(models.NewDate(2026, 8, 3), 1) // Monday start
	store := models.DefaultStoreProfile()

	out := a.Analyze(store, days)

	require := func(cond bool, msg string) {
		if !cond {
			t.Fatal(msg)
		}
	}
	require(len(out) == len(days), "day count preserved")

	var weekday, weekend models.Day
	for _, d := range out {
		if d.IsWeekend {
			weekend = d
		} else {
			weekday = d
		}
	}
	assert.Greater(t, weekend.DemandProfile[models.LunchPeak], weekday.DemandProfile[models.LunchPeak])
	assert.Equal(t, models.Succeeded, a.State().Status)
}
