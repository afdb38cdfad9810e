package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakhill-retail/shift-roster-engine/internal/config"
	"github.com/oakhill-retail/shift-roster-engine/internal/logging"
	"github.com/oakhill-retail/shift-roster-engine/internal/models"
)

func TestValidateFlagsInsufficientRest(t *testing.T) {
	cfg := config.Defaults()
	a := New(cfg, logging.New())

	days := models.BuildHorizon(models.NewDate(2026, 8, 3), 1)
	roster := models.NewRoster(days)
	emp := models.Employee{ID: "e1", Name: "Alice", EmploymentType: models.Casual}

	roster.Set("e1", days[0].Date, models.ShiftInfo{Code: "3F", Hours: 8}) // closes 23:00
	roster.Set("e1", days[1].Date, models.ShiftInfo{Code: "1F", Hours: 8}) // opens 06:30

	conflicts := a.Validate(roster, []models.Employee{emp}, days)

	found := false
	for _, c := range conflicts {
		if c.Kind == models.InsufficientRest {
			found = true
		}
	}
	assert.True(t, found, "expected an insufficient_rest conflict between 3F and 1F")
}

func TestValidateFlagsNoManagerOnDuty(t *testing.T) {
	cfg := config.Defaults()
	a := New(cfg, logging.New())

	days := models.BuildHorizon(models.NewDate(2026, 8, 3), 1)
	roster := models.NewRoster(days)
	emp := models.Employee{ID: "e1", Name: "Alice", EmploymentType: models.Casual, IsManager: false}
	roster.Set("e1", days[0].Date, models.ShiftInfo{Code: "S", Hours: 4})

	conflicts := a.Validate(roster, []models.Employee{emp}, days)

	found := false
	for _, c := range conflicts {
		if c.Kind == models.NoManagerOnDuty {
			found = true
		}
	}
	assert.True(t, found)
}
