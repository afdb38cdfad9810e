package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakhill-retail/shift-roster-engine/internal/config"
	"github.com/oakhill-retail/shift-roster-engine/internal/models"
)

func allAvailable(days []models.Day) map[string]models.AvailabilityState {
	av := make(map[string]models.AvailabilityState)
	for _, d := range days {
		av[d.Date.String()] = models.Available
	}
	return av
}

func TestViolatesRest(t *testing.T) {
	codes := models.CanonicalShiftCodes()
	var closing, opening, off models.ShiftCode
	for _, c := range codes {
		switch c.Code {
		case "3F":
			closing = c
		case "1F":
			opening = c
		case models.OffCode:
			off = c
		}
	}

	assert.True(t, violatesRest(closing, opening, 10), "closing at 23:00 then opening at 06:30 is a 7h30m gap")
	assert.False(t, violatesRest(off, opening, 10), "off day never violates rest")
	assert.False(t, violatesRest(closing, off, 10))
}

func TestBuildExactlyOnePerDay(t *testing.T) {
	cfg := config.Defaults()
	days := models.BuildHorizon(models.NewDate(2026, 8, 3), 1)
	employees := []models.Employee{
		{ID: "e1", Name: "Alice", EmploymentType: models.Casual, Availability: allAvailable(days)},
	}

	solver := newFakeModel()
	Build(solver, cfg, employees, days)

	require.NotEmpty(t, solver.constraints)
	found := false
	for _, c := range solver.constraints {
		if c.lb == 1 && c.ub == 1 && len(c.terms) == len(models.CanonicalShiftCodes()) {
			found = true
			break
		}
	}
	assert.True(t, found, "expected an exactly-one-code-per-day constraint over all shift codes")
}

func TestBuildDailyHoursCapForbidsOverlongCodes(t *testing.T) {
	days := models.BuildHorizon(models.NewDate(2026, 8, 3), 1)
	employees := []models.Employee{
		{ID: "e1", Name: "Alice", EmploymentType: models.Casual, Availability: allAvailable(days)},
	}
	codes := []models.ShiftCode{
		{Code: models.OffCode, Hours: 0},
		{Code: "3F", Hours: 8},
		{Code: "LONG", Hours: 12},
	}

	solver := newFakeModel()
	tensor := newTensor(solver, employees, days, codes)
	buildDailyHoursCap(solver, tensor, employees, days, codes, 10)

	forbidden := 0
	for _, c := range solver.constraints {
		if c.lb == 0 && c.ub == 0 && len(c.terms) == 1 {
			forbidden++
		}
	}
	assert.Equal(t, len(days), forbidden, "the 12h code should be forbidden on every day, the 8h code never should")
}

func TestSchedulerGenerateFeasibleSmallInstance(t *testing.T) {
	cfg := config.Defaults()
	cfg.SolverWorkers = 2
	cfg.MaxDeviationSlackUnits = 4
	cfg.MaxConsecutiveDays = 7 // single manager must be able to cover every day of this 7-day horizon

	days := models.BuildHorizon(models.NewDate(2026, 8, 3), 1)
	employees := []models.Employee{
		{
			ID: "mgr", Name: "Morgan", EmploymentType: models.FullTime, IsManager: true,
			MinWeeklyHours: 0, MaxWeeklyHours: 60,
			Availability: allAvailable(days),
		},
		{
			ID: "e1", Name: "Alice", EmploymentType: models.Casual,
			MinWeeklyHours: 0, MaxWeeklyHours: 24,
			Availability: allAvailable(days),
		},
	}
	for i := range days {
		days[i].DemandProfile = map[models.Interval]int{}
	}

	s := New(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	roster, status, err := s.Generate(ctx, employees, days, 1*time.Second)
	require.NoError(t, err)
	assert.NotEqual(t, 0, int(status))
	assert.NotNil(t, roster)

	for _, day := range days {
		_, ok := roster.Get("mgr", day.Date)
		assert.True(t, ok, "every day should have a decoded assignment, even if off")
	}
}
