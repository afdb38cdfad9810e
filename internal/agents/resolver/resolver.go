// Package resolver implements the Resolver Agent: given a ranked list of
// Conflicts, it proposes shift-code changes and applies the best one per
// conflict to a working copy of the Roster (spec.md §4.5, two-phase
// Suggest/Apply pattern).
package resolver

import (
	"fmt"
	"sort"

	"github.com/oakhill-retail/shift-roster-engine/internal/config"
	"github.com/oakhill-retail/shift-roster-engine/internal/logging"
	"github.com/oakhill-retail/shift-roster-engine/internal/models"
)

// Change is one shift-code edit a Resolution would apply.
type Change struct {
	EmployeeID string
	Day        models.Date
	NewCode    string
}

// Resolution is a ranked option for resolving a single conflict; lower
// ImpactScore means less disruptive to the rest of the roster (spec.md
// §4.5 "rank by impact_score").
type Resolution struct {
	Description string
	ImpactScore float64
	Changes     []Change
}

// Suggestion bundles a conflict with its ranked resolution options.
type Suggestion struct {
	Conflict models.Conflict
	Options  []Resolution
}

// Agent proposes and applies conflict resolutions (spec.md §4.5 "Resolver Agent").
type Agent struct {
	cfg         config.Config
	codesByCode map[string]models.ShiftCode
	state       *models.AgentState
	log         *logging.Logger
}

func New(cfg config.Config, log *logging.Logger) *Agent {
	byCode := make(map[string]models.ShiftCode)
	for _, c := range models.CanonicalShiftCodes() {
		byCode[c.Code] = c
	}
	return &Agent{cfg: cfg, codesByCode: byCode, state: models.NewAgentState("ResolverAgent"), log: log}
}

func (a *Agent) State() *models.AgentState { return a.state }

// Suggest generates up to five ranked resolution options for one
// conflict (spec.md §4.5 "suggest_resolutions").
func (a *Agent) Suggest(conflict models.Conflict, roster *models.Roster, employees []models.Employee) Suggestion {
	var options []Resolution
	switch conflict.Kind {
	case models.InsufficientRest:
		options = a.resolveInsufficientRest(conflict)
	case models.WeeklyHoursOverflow:
		options = a.resolveHoursOverflow(conflict, roster)
	case models.WeeklyHoursUnderflow:
		options = a.resolveHoursUnderflow(conflict, roster)
	case models.PeakUndercoverage, models.OpeningOrClosingUncovered:
		options = a.resolveUndercoverage(conflict, roster, employees)
	case models.NoManagerOnDuty:
		options = a.resolveNoManager(conflict, roster, employees)
	default:
		options = []Resolution{{
			Description: fmt.Sprintf("manual review required for %s", conflict.Kind),
			ImpactScore: 10,
		}}
	}

	sort.Slice(options, func(i, j int) bool { return options[i].ImpactScore < options[j].ImpactScore })
	if len(options) > 5 {
		options = options[:5]
	}
	return Suggestion{Conflict: conflict, Options: options}
}

func (a *Agent) resolveInsufficientRest(conflict models.Conflict) []Resolution {
	if len(conflict.Days) < 2 {
		return nil
	}
	d0, err0 := models.ParseDate(conflict.Days[0])
	d1, err1 := models.ParseDate(conflict.Days[1])
	if err0 != nil || err1 != nil {
		return nil
	}
	return []Resolution{
		{
			Description: fmt.Sprintf("change %s's shift on %s to an opening shift (ends earlier)", conflict.EmployeeID, d0),
			ImpactScore: 2,
			Changes:     []Change{{EmployeeID: conflict.EmployeeID, Day: d0, NewCode: "1F"}},
		},
		{
			Description: fmt.Sprintf("change %s's shift on %s to a mid shift (starts later)", conflict.EmployeeID, d1),
			ImpactScore: 2,
			Changes:     []Change{{EmployeeID: conflict.EmployeeID, Day: d1, NewCode: "2F"}},
		},
		{
			Description: fmt.Sprintf("give %s the day off on %s", conflict.EmployeeID, d1),
			ImpactScore: 4,
			Changes:     []Change{{EmployeeID: conflict.EmployeeID, Day: d1, NewCode: models.OffCode}},
		},
	}
}

func (a *Agent) resolveHoursOverflow(conflict models.Conflict, roster *models.Roster) []Resolution {
	type worked struct {
		day   models.Date
		hours float64
		code  string
	}
	var shifts []worked
	for _, day := range roster.Horizon {
		info, ok := roster.Get(conflict.EmployeeID, day.Date)
		if !ok || info.Code == models.OffCode {
			continue
		}
		shifts = append(shifts, worked{day: day.Date, hours: info.Hours, code: info.Code})
	}
	sort.Slice(shifts, func(i, j int) bool { return shifts[i].hours > shifts[j].hours })

	var options []Resolution
	for i, s := range shifts {
		if i >= 3 {
			break
		}
		options = append(options, Resolution{
			Description: fmt.Sprintf("remove %s's shift on %s (%.1fh)", conflict.EmployeeID, s.day, s.hours),
			ImpactScore: s.hours / 2,
			Changes:     []Change{{EmployeeID: conflict.EmployeeID, Day: s.day, NewCode: models.OffCode}},
		})
		if s.code == "3F" {
			options = append(options, Resolution{
				Description: fmt.Sprintf("reduce %s's %s shift to an opening shift", conflict.EmployeeID, s.day),
				ImpactScore: s.hours / 4,
				Changes:     []Change{{EmployeeID: conflict.EmployeeID, Day: s.day, NewCode: "1F"}},
			})
		}
	}
	return options
}

func (a *Agent) resolveHoursUnderflow(conflict models.Conflict, roster *models.Roster) []Resolution {
	var options []Resolution
	for _, day := range roster.Horizon {
		info, ok := roster.Get(conflict.EmployeeID, day.Date)
		if ok && info.Code != models.OffCode {
			continue
		}
		options = append(options, Resolution{
			Description: fmt.Sprintf("add a support shift for %s on %s (+4h)", conflict.EmployeeID, day.Date),
			ImpactScore: 1,
			Changes:     []Change{{EmployeeID: conflict.EmployeeID, Day: day.Date, NewCode: "S"}},
		})
	}
	return options
}

func (a *Agent) resolveUndercoverage(conflict models.Conflict, roster *models.Roster, employees []models.Employee) []Resolution {
	var options []Resolution
	for _, dayStr := range conflict.Days {
		day, err := models.ParseDate(dayStr)
		if err != nil {
			continue
		}
		for _, emp := range employees {
			info, ok := roster.Get(emp.ID, day)
			if !ok || info.Code != models.OffCode {
				continue
			}
			state, _ := emp.AvailabilityOn(day)
			if state == models.Unavailable {
				continue
			}
			options = append(options, Resolution{
				Description: fmt.Sprintf("add %s to work on %s", emp.Name, day),
				ImpactScore: 1.5,
				Changes:     []Change{{EmployeeID: emp.ID, Day: day, NewCode: "S"}},
			})
		}
	}
	return options
}

func (a *Agent) resolveNoManager(conflict models.Conflict, roster *models.Roster, employees []models.Employee) []Resolution {
	var options []Resolution
	for _, dayStr := range conflict.Days {
		day, err := models.ParseDate(dayStr)
		if err != nil {
			continue
		}
		for _, emp := range employees {
			if !emp.IsManager {
				continue
			}
			info, ok := roster.Get(emp.ID, day)
			if !ok || info.Code != models.OffCode {
				continue
			}
			options = append(options, Resolution{
				Description: fmt.Sprintf("add manager %s to work on %s", emp.Name, day),
				ImpactScore: 1,
				Changes:     []Change{{EmployeeID: emp.ID, Day: day, NewCode: "M"}},
			})
		}
	}
	return options
}

// apply rewrites one employee/day cell on the roster with a new shift
// code, recomputing that employee's TotalHours (spec.md §4.5 "_apply_resolution").
func (a *Agent) apply(roster *models.Roster, change Change) bool {
	code, ok := a.codesByCode[change.NewCode]
	if !ok {
		return false
	}
	prev, had := roster.Get(change.EmployeeID, change.Day)
	if had {
		roster.TotalHours[change.EmployeeID] -= prev.Hours
	}
	info := models.ShiftInfo{
		Code:  code.Code,
		Name:  code.Code,
		Hours: code.Hours,
	}
	roster.Set(change.EmployeeID, change.Day, info.ApplyBreakMarker(a.cfg.BreakAfterHours, a.cfg.BreakDurationMinutes))
	return true
}

// ResolveAll applies the best-ranked resolution for every conflict, most
// severe first, to a cloned roster (spec.md §4.5 "resolve_all_conflicts").
// Conflicts with no viable option are returned unresolved.
func (a *Agent) ResolveAll(conflicts []models.Conflict, roster *models.Roster, employees []models.Employee) (*models.Roster, int, []models.Conflict) {
	a.state.SetStatus(models.Running)
	a.state.SetAction("resolve_conflicts")

	sorted := append([]models.Conflict{}, conflicts...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Severity.Rank() < sorted[j].Severity.Rank() })

	working := roster.Clone()
	applied := 0
	var unresolved []models.Conflict

	for _, conflict := range sorted {
		suggestion := a.Suggest(conflict, working, employees)
		if len(suggestion.Options) == 0 {
			unresolved = append(unresolved, conflict)
			continue
		}
		best := suggestion.Options[0]
		ok := true
		for _, change := range best.Changes {
			if !a.apply(working, change) {
				ok = false
			}
		}
		if ok && len(best.Changes) > 0 {
			applied++
		} else {
			unresolved = append(unresolved, conflict)
		}
	}

	a.recomputeManagerOnDuty(working, employees)

	a.log.WithFields(map[string]interface{}{
		"applied":    applied,
		"unresolved": len(unresolved),
	}).Info("conflict resolution pass complete")
	a.state.SetStatus(models.Succeeded)
	return working, applied, unresolved
}

// recomputeManagerOnDuty re-derives ManagerOnDuty from Assignment after a
// resolution pass. Clone only copies the pre-resolve headcounts, and apply
// changes Assignment directly, so without this the post-resolve Validator
// would keep re-checking stale manager coverage (spec.md §4.5, mirrors the
// Scheduler's own fillManagerOnDuty in decode.go).
func (a *Agent) recomputeManagerOnDuty(roster *models.Roster, employees []models.Employee) {
	for d := range roster.ManagerOnDuty {
		delete(roster.ManagerOnDuty, d)
	}
	for _, emp := range employees {
		if !emp.IsManager {
			continue
		}
		for _, day := range roster.Horizon {
			info, ok := roster.Get(emp.ID, day.Date)
			if !ok {
				continue
			}
			code, ok := a.codesByCode[info.Code]
			if !ok {
				continue
			}
			key := day.Date.String()
			if roster.ManagerOnDuty[key] == nil {
				roster.ManagerOnDuty[key] = make(map[models.Interval]int)
			}
			for _, interval := range models.AllIntervals {
				window := models.IntervalWindows[interval]
				if code.CoversInterval(window[0], window[1]) {
					roster.ManagerOnDuty[key][interval]++
				}
			}
		}
	}
}
