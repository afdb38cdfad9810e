// Package demand implements the Demand Agent: it fills in each day's
// per-interval staffing target before the Scheduler runs (spec.md §4.1).
package demand

import (
	"math"

	"github.com/oakhill-retail/shift-roster-engine/internal/logging"
	"github.com/oakhill-retail/shift-roster-engine/internal/models"
)

// Agent computes the demand profile for a horizon from a store's base
// headcount and weekend-uplift factor (spec.md §4.1 "Demand Agent").
type Agent struct {
	state *models.AgentState
	log   *logging.Logger
}

func New(log *logging.Logger) *Agent {
	return &Agent{state: models.NewAgentState("DemandAgent"), log: log}
}

func (a *Agent) State() *models.AgentState { return a.state }

// Analyze fills DemandProfile on every day of the horizon: weekend days
// get the store's uplift percentage applied on top of the base headcount
// for every interval (spec.md §4.1, §4.3 conflict kind weekend_uplift_missed).
func (a *Agent) Analyze(store models.StoreProfile, days []models.Day) []models.Day {
	a.state.SetStatus(models.Running)
	a.state.SetAction("analyze_demand")

	uplift := store.WeekendUpliftPercent
	if uplift == 0 {
		uplift = 20
	}

	out := make([]models.Day, len(days))
	weekendDays := 0
	for i, day := range days {
		profile := make(map[models.Interval]int, len(models.AllIntervals))
		percent := 100.0
		if day.IsWeekend {
			percent = 100 + uplift
			weekendDays++
		}
		for _, interval := range models.AllIntervals {
			base := store.BaseHeadcount[interval]
			scaled := int(math.Ceil(float64(base) * percent / 100))
			if scaled < 1 {
				scaled = 1
			}
			profile[interval] = scaled
		}
		day.DemandProfile = profile
		out[i] = day
	}

	a.log.WithFields(map[string]interface{}{
		"total_days":   len(days),
		"weekend_days": weekendDays,
	}).Info("demand analysis complete")

	a.state.SetStatus(models.Succeeded)
	return out
}
