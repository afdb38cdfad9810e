package scheduler

import (
	"github.com/oakhill-retail/shift-roster-engine/internal/config"
	"github.com/oakhill-retail/shift-roster-engine/internal/engine/cpsolver"
	"github.com/oakhill-retail/shift-roster-engine/internal/models"
)

// Decode reads the solved tensor's boolean values back into a Roster
// (spec.md §3 Lifecycle: "created by the Scheduler").
func Decode(model cpsolver.Model, t *tensor, cfg config.Config) *models.Roster {
	roster := models.NewRoster(t.days)
	for e, emp := range t.employees {
		for d, day := range t.days {
			for c, code := range t.codes {
				if !model.ReadValue(t.at(e, d, c)) {
					continue
				}
				var station *string
				if code.Station != nil {
					station = code.Station
				}
				info := models.ShiftInfo{
					Code:    code.Code,
					Name:    shiftName(code.Code),
					Hours:   code.Hours,
					Station: station,
				}
				roster.Set(emp.ID, day.Date, info.ApplyBreakMarker(cfg.BreakAfterHours, cfg.BreakDurationMinutes))
				break
			}
		}
	}
	fillManagerOnDuty(roster, t, model)
	return roster
}

// shiftName maps a canonical code to the display name carried on the
// wire (spec.md §6 "Shift codes (canonical)").
func shiftName(code string) string {
	switch code {
	case models.OffCode:
		return "Off"
	case "S":
		return "Support"
	case "1F":
		return "Opening Full"
	case "2F":
		return "Mid Full"
	case "3F":
		return "Closing Full"
	case "SC":
		return "Shift Coordinator"
	case "M":
		return "Manager"
	default:
		return code
	}
}

// fillManagerOnDuty re-derives the manager headcount per interval so the
// Validator and response builder don't need to re-scan the tensor (spec.md
// §3, §4.4 conflict kind no_manager_on_duty).
func fillManagerOnDuty(roster *models.Roster, t *tensor, model cpsolver.Model) {
	for d, day := range t.days {
		counts := make(map[models.Interval]int)
		for e, emp := range t.employees {
			if !emp.IsManager {
				continue
			}
			for c, code := range t.codes {
				if !model.ReadValue(t.at(e, d, c)) {
					continue
				}
				for _, interval := range models.AllIntervals {
					window := models.IntervalWindows[interval]
					if code.CoversInterval(window[0], window[1]) {
						counts[interval]++
					}
				}
			}
		}
		roster.ManagerOnDuty[day.Date.String()] = counts
	}
}
