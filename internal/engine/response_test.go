package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakhill-retail/shift-roster-engine/internal/models"
)

func TestSplitConflictsSeparatesWarningsFromHardConflicts(t *testing.T) {
	conflicts := []models.Conflict{
		models.NewConflict(models.WeeklyHoursOverflow, "critical"),
		models.NewConflict(models.PeakUndercoverage, "high"),
		models.NewConflict(models.StationSkillMismatch, "medium"),
		models.NewConflict(models.PreferenceIgnored, "low"),
	}

	hard, warnings := splitConflicts(conflicts)

	require.Len(t, hard, 2)
	require.Len(t, warnings, 2)
	assert.Equal(t, models.WeeklyHoursOverflow, hard[0].Kind)
	assert.Equal(t, models.StationSkillMismatch, warnings[0].Kind)
}

func TestBuildPeakCoverageReportsWeekendUplift(t *testing.T) {
	days := models.BuildHorizon(models.NewDate(2026, 8, 3), 1) // Monday start
	for i := range days {
		profile := make(map[models.Interval]int, len(models.AllIntervals))
		for _, interval := range models.AllIntervals {
			profile[interval] = 4
		}
		days[i].DemandProfile = profile
	}

	employees := []models.Employee{{ID: "e1", Name: "Alice"}}
	roster := models.NewRoster(days)
	codesByCode := make(map[string]models.ShiftCode)
	for _, c := range models.CanonicalShiftCodes() {
		codesByCode[c.Code] = c
	}

	for _, day := range days {
		code := "1F"
		if day.IsWeekend {
			code = "2F"
		}
		roster.Set("e1", day.Date, models.ShiftInfo{Code: code, Hours: 8})
	}

	metrics := buildPeakCoverage(roster, employees, days, codesByCode, 20)

	assert.Len(t, metrics.Daily, len(days))
	assert.False(t, metrics.LunchPeakMet) // only one employee against a required 4
	assert.False(t, metrics.MeetsWeekendTarget)
}
