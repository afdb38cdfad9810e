package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakhill-retail/shift-roster-engine/internal/config"
	"github.com/oakhill-retail/shift-roster-engine/internal/models"
)

func availability(days []models.Day, state models.AvailabilityState) map[string]models.AvailabilityState {
	av := make(map[string]models.AvailabilityState)
	for _, d := range days {
		av[d.Date.String()] = state
	}
	return av
}

func TestGenerateProducesAResponseForASmallStore(t *testing.T) {
	cfg := config.Defaults()
	cfg.MaxConsecutiveDays = 7
	o := New(cfg)

	req := models.GenerateRequest{StartDate: models.NewDate(2026, 8, 3), Weeks: 1, TimeLimitSeconds: 1}
	probeDays := models.BuildHorizon(req.StartDate, req.Weeks)

	employees := []models.Employee{
		{ID: "mgr", Name: "Morgan", EmploymentType: models.FullTime, IsManager: true,
			MaxWeeklyHours: 60, Availability: availability(probeDays, models.Available)},
		{ID: "e1", Name: "Alice", EmploymentType: models.Casual,
			MaxWeeklyHours: 24, Availability: availability(probeDays, models.Available)},
	}
	store := models.StoreProfile{
		BaseHeadcount: map[models.Interval]int{},
		OpeningTime:   models.NewClockTime(6, 30),
		ClosingTime:   models.NewClockTime(23, 0),
	}

	resp, err := o.Generate(context.Background(), req, employees, store, map[string]int{})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Len(t, resp.Schedules, 2)
	assert.NotEmpty(t, resp.WorkflowLog)
	assert.Equal(t, "INIT", resp.WorkflowLog[0].Stage)
}

func TestGenerateRejectsInvalidRequest(t *testing.T) {
	o := New(config.Defaults())
	req := models.GenerateRequest{StartDate: models.NewDate(2026, 8, 3), Weeks: 3}

	_, err := o.Generate(context.Background(), req, nil, models.StoreProfile{}, nil)
	require.Error(t, err)

	var fatalErr *FatalError
	require.ErrorAs(t, err, &fatalErr)
	assert.Equal(t, ErrInvalidRequest, fatalErr.Kind)
}
