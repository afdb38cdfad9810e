package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakhill-retail/shift-roster-engine/internal/config"
	"github.com/oakhill-retail/shift-roster-engine/internal/logging"
	"github.com/oakhill-retail/shift-roster-engine/internal/models"
)

func TestResolveAllAppliesRestFix(t *testing.T) {
	a := New(config.Defaults(), logging.New())
	days := models.BuildHorizon(models.NewDate(2026, 8, 3), 1)
	roster := models.NewRoster(days)
	roster.Set("e1", days[0].Date, models.ShiftInfo{Code: "3F", Hours: 8})
	roster.Set("e1", days[1].Date, models.ShiftInfo{Code: "1F", Hours: 8})

	conflict := models.NewConflict(models.InsufficientRest, "rest violation")
	conflict.EmployeeID = "e1"
	conflict.Days = []string{days[0].Date.String(), days[1].Date.String()}

	employees := []models.Employee{{ID: "e1", Name: "Alice"}}
	resolved, applied, unresolved := a.ResolveAll([]models.Conflict{conflict}, roster, employees)

	require.Equal(t, 1, applied)
	assert.Empty(t, unresolved)

	info, ok := resolved.Get("e1", days[0].Date)
	require.True(t, ok)
	assert.Equal(t, "1F", info.Code)
}

func TestSuggestUnknownKindReturnsManualReview(t *testing.T) {
	a := New(config.Defaults(), logging.New())
	conflict := models.NewConflict(models.PreferenceIgnored, "ignored")
	suggestion := a.Suggest(conflict, models.NewRoster(nil), nil)

	require.Len(t, suggestion.Options, 1)
	assert.Contains(t, suggestion.Options[0].Description, "manual review")
}
