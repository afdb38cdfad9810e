// Package validator implements the Validator Agent: it re-checks a
// solved Roster against every labor rule and coverage target and
// produces the Conflict list the Resolver works from (spec.md §4.4).
package validator

import (
	"fmt"

	"github.com/oakhill-retail/shift-roster-engine/internal/config"
	"github.com/oakhill-retail/shift-roster-engine/internal/logging"
	"github.com/oakhill-retail/shift-roster-engine/internal/models"
)

// Agent re-validates a Roster independently of whatever the Scheduler
// believes it satisfied, the way the original's ValidatorAgent rechecks
// labor-law compliance after the fact rather than trusting the solver.
type Agent struct {
	cfg   config.Config
	state *models.AgentState
	log   *logging.Logger
}

func New(cfg config.Config, log *logging.Logger) *Agent {
	return &Agent{cfg: cfg, state: models.NewAgentState("ValidatorAgent"), log: log}
}

func (a *Agent) State() *models.AgentState { return a.state }

// Validate walks every employee's schedule and every day's coverage,
// returning every violation found (spec.md §4.4 table, ten conflict kinds).
func (a *Agent) Validate(roster *models.Roster, employees []models.Employee, days []models.Day) []models.Conflict {
	a.state.SetStatus(models.Running)
	a.state.SetAction("validate_roster")

	var conflicts []models.Conflict
	codesByCode := make(map[string]models.ShiftCode)
	for _, c := range models.CanonicalShiftCodes() {
		codesByCode[c.Code] = c
	}

	for _, emp := range employees {
		conflicts = append(conflicts, a.validateEmployee(emp, roster, days, codesByCode)...)
	}
	conflicts = append(conflicts, a.validateCoverage(roster, employees, days, codesByCode)...)

	a.log.WithField("conflicts", len(conflicts)).Info("roster validation complete")
	a.state.SetStatus(models.Succeeded)
	return conflicts
}

func (a *Agent) validateEmployee(emp models.Employee, roster *models.Roster, days []models.Day, codesByCode map[string]models.ShiftCode) []models.Conflict {
	var conflicts []models.Conflict

	window := emp.HoursWindow()
	weeks := float64(len(days)) / 7
	totalHours := roster.TotalHours[emp.ID]

	if totalHours > window.Max*weeks {
		conflicts = append(conflicts, withEmployee(models.NewConflict(models.WeeklyHoursOverflow,
			fmt.Sprintf("%s: %.1fh exceeds maximum %.1fh", emp.Name, totalHours, window.Max*weeks)), emp.ID, nil))
	}
	if totalHours < window.Min*weeks {
		conflicts = append(conflicts, withEmployee(models.NewConflict(models.WeeklyHoursUnderflow,
			fmt.Sprintf("%s: %.1fh is below minimum %.1fh", emp.Name, totalHours, window.Min*weeks)), emp.ID, nil))
	}

	consecutive := 0
	var prevCode *models.ShiftCode
	var prevDay models.Date
	for _, day := range days {
		info, ok := roster.Get(emp.ID, day.Date)
		code := codesByCode[models.OffCode]
		if ok {
			if c, found := codesByCode[info.Code]; found {
				code = c
			}
		}

		if code.Code != models.OffCode {
			consecutive++
			if prevCode != nil && prevCode.Code != models.OffCode {
				if violatesRest(*prevCode, code, a.cfg.MinRestHours) {
					conflicts = append(conflicts, withEmployee(models.NewConflict(models.InsufficientRest,
						fmt.Sprintf("%s: less than %.0fh rest between %s and %s", emp.Name, a.cfg.MinRestHours, prevDay, day.Date)),
						emp.ID, []string{prevDay.String(), day.Date.String()}))
				}
			}
		} else {
			consecutive = 0
		}

		if consecutive > a.cfg.MaxConsecutiveDays {
			conflicts = append(conflicts, withEmployee(models.NewConflict(models.ConsecutiveDaysExceeded,
				fmt.Sprintf("%s: working more than %d consecutive days", emp.Name, a.cfg.MaxConsecutiveDays)),
				emp.ID, []string{day.Date.String()}))
		}

		if code.Station != nil && !emp.CanWorkStation(*code.Station) {
			conflicts = append(conflicts, withEmployee(models.NewConflict(models.StationSkillMismatch,
				fmt.Sprintf("%s: assigned to %s on %s without that station's training", emp.Name, *code.Station, day.Date)),
				emp.ID, []string{day.Date.String()}))
		}

		state, _ := emp.AvailabilityOn(day.Date)
		if state == models.Preferred && code.Code == models.OffCode {
			conflicts = append(conflicts, withEmployee(models.NewConflict(models.PreferenceIgnored,
				fmt.Sprintf("%s: preferred to work %s but was scheduled off", emp.Name, day.Date)),
				emp.ID, []string{day.Date.String()}))
		}

		c := code
		prevCode = &c
		prevDay = day.Date
	}

	return conflicts
}

func (a *Agent) validateCoverage(roster *models.Roster, employees []models.Employee, days []models.Day, codesByCode map[string]models.ShiftCode) []models.Conflict {
	var conflicts []models.Conflict

	for _, day := range days {
		managers := roster.ManagerOnDuty[day.Date.String()]
		if total(managers) < a.cfg.MinManagersOnDuty {
			conflicts = append(conflicts, models.NewConflict(models.NoManagerOnDuty,
				fmt.Sprintf("%s: no manager scheduled for duty", day.Date)))
		}

		for _, interval := range models.AllIntervals {
			window := models.IntervalWindows[interval]
			required := day.DemandProfile[interval]
			if required <= 0 {
				continue
			}
			count := 0
			for _, emp := range employees {
				info, ok := roster.Get(emp.ID, day.Date)
				if !ok {
					continue
				}
				code, found := codesByCode[info.Code]
				if !found || !code.CoversInterval(window[0], window[1]) {
					continue
				}
				count++
			}
			if count < required {
				kind := models.PeakUndercoverage
				if interval == models.Opening || interval == models.Closing {
					kind = models.OpeningOrClosingUncovered
				}
				conflicts = append(conflicts, models.NewConflict(kind,
					fmt.Sprintf("%s: %s has %d staff, need %d", day.Date, interval, count, required)))
			}
		}

		if day.IsWeekend {
			// Weekend-uplift shortfall is reported once per day at the
			// aggregate level; per-employee equity is a soft objective
			// term in the Scheduler, not a hard per-day check here.
			expected := 0
			for _, req := range day.DemandProfile {
				expected += req
			}
			scheduled := 0
			for _, emp := range employees {
				if info, ok := roster.Get(emp.ID, day.Date); ok && info.Code != models.OffCode {
					scheduled++
				}
			}
			if scheduled < expected {
				conflicts = append(conflicts, models.NewConflict(models.WeekendUpliftMissed,
					fmt.Sprintf("%s: weekend staffing %d below uplifted target derived from %d", day.Date, scheduled, expected)))
			}
		}
	}

	return conflicts
}

func total(m map[models.Interval]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

func withEmployee(c models.Conflict, employeeID string, days []string) models.Conflict {
	c.EmployeeID = employeeID
	c.Days = days
	return c
}

// violatesRest mirrors the Scheduler's rest-gap check so the Validator
// doesn't have to import the scheduler package (spec.md §4.3 constraint 5).
func violatesRest(prev, next models.ShiftCode, minRestHours float64) bool {
	if prev.Code == models.OffCode || next.Code == models.OffCode {
		return false
	}
	minutesToMidnight := 24*60 - prev.End.Minutes()
	gap := minutesToMidnight + next.Start.Minutes()
	return float64(gap) < minRestHours*60
}
