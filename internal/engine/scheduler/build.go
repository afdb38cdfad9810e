package scheduler

import (
	"math"

	"github.com/oakhill-retail/shift-roster-engine/internal/config"
	"github.com/oakhill-retail/shift-roster-engine/internal/engine/cpsolver"
	"github.com/oakhill-retail/shift-roster-engine/internal/models"
)

// Build constructs the full CP model for one roster run: the dense
// x[e,d,c] tensor, every hard constraint from spec.md §4.3, and the
// linearized soft objective terms. Days must already carry a
// DemandProfile (Demand Agent output, spec.md §4.1).
func Build(model cpsolver.Model, cfg config.Config, employees []models.Employee, days []models.Day) *tensor {
	codes := models.CanonicalShiftCodes()
	t := newTensor(model, employees, days, codes)
	offIdx := t.codeIndex(models.OffCode)

	buildAvailability(model, t, employees, days, codes, offIdx)
	buildExactlyOnePerDay(model, t, employees, days)
	buildWeeklyHours(model, t, employees, days, codes)
	buildDailyHoursCap(model, t, employees, days, codes, cfg.MaxDailyHours)
	buildRest(model, t, employees, days, codes, cfg.MinRestHours)
	buildConsecutiveDays(model, t, employees, days, offIdx, cfg.MaxConsecutiveDays)
	buildManagerCoverage(model, t, employees, days, codes, cfg.MinManagersOnDuty)
	buildStationEligibility(model, t, employees, days, codes, cfg.SkillMismatchWeight)
	buildCoverageObjective(model, t, employees, days, codes, cfg)
	buildHoursDispersionObjective(model, t, employees, days, codes, cfg)
	buildWeekendEquityObjective(model, t, employees, days, codes, cfg)
	buildPreferenceBonus(model, t, employees, days, codes, offIdx, cfg.PreferredDayBonus)

	return t
}

// buildExactlyOnePerDay enforces spec.md §4.3 constraint 1: every
// employee works exactly one shift code (possibly off) each day.
func buildExactlyOnePerDay(model cpsolver.Model, t *tensor, employees []models.Employee, days []models.Day) {
	for e := range employees {
		for d := range days {
			model.AddLinearConstraint(t.forEmployeeDay(e, d), 1, 1)
		}
	}
}

// buildAvailability forbids working codes on days the employee marked
// Unavailable (spec.md §4.3 constraint 2).
func buildAvailability(model cpsolver.Model, t *tensor, employees []models.Employee, days []models.Day, codes []models.ShiftCode, offIdx int) {
	for e, emp := range employees {
		for d, day := range days {
			state, _ := emp.AvailabilityOn(day.Date)
			if state != models.Unavailable {
				continue
			}
			for c := range codes {
				if c == offIdx {
					continue
				}
				model.AddLinearConstraint([]cpsolver.Term{{Var: t.at(e, d, c), Coeff: 1}}, 0, 0)
			}
		}
	}
}

// buildWeeklyHours enforces each employee's rolling Monday-Sunday
// weekly-hours window (spec.md §4.3 constraint 4, §9 "WeekAnchor").
func buildWeeklyHours(model cpsolver.Model, t *tensor, employees []models.Employee, days []models.Day, codes []models.ShiftCode) {
	weeks := groupByWeek(days)
	for e, emp := range employees {
		window := emp.HoursWindow()
		for _, group := range weeks {
			var terms []cpsolver.Term
			for _, d := range group {
				for c, code := range codes {
					if code.Hours == 0 {
						continue
					}
					terms = append(terms, cpsolver.Term{Var: t.at(e, d, c), Coeff: int64(code.Hours)})
				}
			}
			model.AddLinearConstraint(terms, int64(math.Round(window.Min)), int64(math.Round(window.Max)))
		}
	}
}

// groupByWeek partitions the horizon's day indices into contiguous
// Monday-Sunday groups using Date.WeekAnchor.
func groupByWeek(days []models.Day) [][]int {
	var groups [][]int
	var anchor models.Date
	for d, day := range days {
		a := day.Date.WeekAnchor()
		if d == 0 || !a.Equal(anchor) {
			groups = append(groups, nil)
			anchor = a
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], d)
	}
	return groups
}

// buildDailyHoursCap forbids any single shift code longer than the
// store's daily hours cap (cfg.MaxDailyHours). None of the canonical
// codes exceed the default 10h cap today, but a store that defines a
// longer custom code must still be rejected by the CP model rather than
// only by the break-threshold marker on ShiftInfo.
func buildDailyHoursCap(model cpsolver.Model, t *tensor, employees []models.Employee, days []models.Day, codes []models.ShiftCode, maxDailyHours float64) {
	for e := range employees {
		for d := range days {
			for c, code := range codes {
				if code.Hours <= maxDailyHours {
					continue
				}
				model.AddLinearConstraint([]cpsolver.Term{{Var: t.at(e, d, c), Coeff: 1}}, 0, 0)
			}
		}
	}
}

// buildRest forbids consecutive-day code pairs that breach the minimum
// rest gap (spec.md §4.3 constraint 5).
func buildRest(model cpsolver.Model, t *tensor, employees []models.Employee, days []models.Day, codes []models.ShiftCode, minRestHours float64) {
	for e := range employees {
		for d := 0; d+1 < len(days); d++ {
			for c1, code1 := range codes {
				for c2, code2 := range codes {
					if !violatesRest(code1, code2, minRestHours) {
						continue
					}
					model.AddBoolOr([]cpsolver.Literal{
						cpsolver.NotLit(t.at(e, d, c1)),
						cpsolver.NotLit(t.at(e, d+1, c2)),
					})
				}
			}
		}
	}
}

// buildConsecutiveDays forbids any run of more than maxConsecutive
// worked days by requiring at least one off day in every window of
// maxConsecutive+1 days (spec.md §4.3 constraint 6).
func buildConsecutiveDays(model cpsolver.Model, t *tensor, employees []models.Employee, days []models.Day, offIdx int, maxConsecutive int) {
	windowLen := maxConsecutive + 1
	if windowLen > len(days) {
		return
	}
	for e := range employees {
		for start := 0; start+windowLen <= len(days); start++ {
			var terms []cpsolver.Term
			for d := start; d < start+windowLen; d++ {
				terms = append(terms, cpsolver.Term{Var: t.at(e, d, offIdx), Coeff: 1})
			}
			model.AddLinearConstraint(terms, int64(windowLen-maxConsecutive), unbounded)
		}
	}
}

// buildManagerCoverage forbids non-managers from manager-required codes
// and requires at least one manager-required assignment per day (spec.md
// §4.3 constraint 7, conflict kind no_manager_on_duty).
func buildManagerCoverage(model cpsolver.Model, t *tensor, employees []models.Employee, days []models.Day, codes []models.ShiftCode, minManagers int) {
	for e, emp := range employees {
		if emp.IsManager {
			continue
		}
		for d := range days {
			for c, code := range codes {
				if code.RequiresManager {
					model.AddLinearConstraint([]cpsolver.Term{{Var: t.at(e, d, c), Coeff: 1}}, 0, 0)
				}
			}
		}
	}
	for d := range days {
		var terms []cpsolver.Term
		for e, emp := range employees {
			if !emp.IsManager {
				continue
			}
			for c, code := range codes {
				if code.RequiresManager {
					terms = append(terms, cpsolver.Term{Var: t.at(e, d, c), Coeff: 1})
				}
			}
		}
		// terms is empty only when the store has no manager employees at
		// all; the constraint is still added so that case is genuinely
		// infeasible (sum of zero terms can never reach minManagers)
		// rather than silently skipped.
		model.AddLinearConstraint(terms, int64(minManagers), unbounded)
	}
}

// buildStationEligibility penalizes, rather than forbids, assigning an
// employee to a station-specific code they aren't cross-trained for
// (spec.md §4.3 soft objectives, conflict kind station_skill_mismatch).
func buildStationEligibility(model cpsolver.Model, t *tensor, employees []models.Employee, days []models.Day, codes []models.ShiftCode, weight float64) {
	if weight == 0 {
		return
	}
	for e, emp := range employees {
		for d := range days {
			for c, code := range codes {
				if code.Station == nil || emp.CanWorkStation(*code.Station) {
					continue
				}
				model.Minimize([]cpsolver.Term{{Var: t.at(e, d, c), Coeff: int64(weight)}})
			}
		}
	}
}

// buildCoverageObjective linearizes the Opening/LunchPeak/DinnerPeak/
// Closing shortfall penalty (spec.md §4.3 soft objectives, weight
// CoverageShortfallWeightPrimary for the boundary and peak intervals and
// CoverageShortfallWeightOther for any other interval).
func buildCoverageObjective(model cpsolver.Model, t *tensor, employees []models.Employee, days []models.Day, codes []models.ShiftCode, cfg config.Config) {
	for d, day := range days {
		for _, interval := range models.AllIntervals {
			window := models.IntervalWindows[interval]
			required, ok := day.DemandProfile[interval]
			if !ok || required <= 0 {
				continue
			}
			var terms []cpsolver.Term
			for e := range employees {
				for c, code := range codes {
					if code.CoversInterval(window[0], window[1]) {
						terms = append(terms, cpsolver.Term{Var: t.at(e, d, c), Coeff: 1})
					}
				}
			}
			weight := cfg.CoverageShortfallWeightOther
			switch interval {
			case models.Opening, models.Closing, models.LunchPeak, models.DinnerPeak:
				weight = cfg.CoverageShortfallWeightPrimary
			}
			addAtLeastSlacks(model, terms, int64(required), cfg.MaxDeviationSlackUnits, int64(weight))
		}
	}
}

// buildHoursDispersionObjective penalizes each employee's scheduled
// hours deviating from the midpoint of their weekly-hours window, in
// either direction (spec.md §4.3 soft objectives: hours dispersion).
func buildHoursDispersionObjective(model cpsolver.Model, t *tensor, employees []models.Employee, days []models.Day, codes []models.ShiftCode, cfg config.Config) {
	weeks := groupByWeek(days)
	for e, emp := range employees {
		window := emp.HoursWindow()
		target := int64(math.Round((window.Min + window.Max) / 2))
		for _, group := range weeks {
			var terms []cpsolver.Term
			for _, d := range group {
				for c, code := range codes {
					if code.Hours == 0 {
						continue
					}
					terms = append(terms, cpsolver.Term{Var: t.at(e, d, c), Coeff: int64(code.Hours)})
				}
			}
			addAtMostSlacks(model, terms, target, cfg.MaxDeviationSlackUnits, int64(cfg.HoursDispersionWeight))
			addAtLeastSlacks(model, terms, target, cfg.MaxDeviationSlackUnits, int64(cfg.HoursDispersionWeight))
		}
	}
}

// buildWeekendEquityObjective penalizes an employee's weekend shift
// count falling short of the configured (cfg.WeekendUpliftPercent)
// weekend-uplift target share (spec.md
// §4.3 soft objectives: weekend equity, conflict kind weekend_uplift_missed).
func buildWeekendEquityObjective(model cpsolver.Model, t *tensor, employees []models.Employee, days []models.Day, codes []models.ShiftCode, cfg config.Config) {
	var weekendDays []int
	for d, day := range days {
		if day.IsWeekend {
			weekendDays = append(weekendDays, d)
		}
	}
	if len(weekendDays) == 0 {
		return
	}
	shareOfWeek := float64(len(weekendDays)) / float64(len(days))
	for e := range employees {
		target := int64(math.Round(shareOfWeek * (1 + cfg.WeekendUpliftPercent/100) * float64(len(weekendDays))))
		var terms []cpsolver.Term
		for _, d := range weekendDays {
			for c, code := range codes {
				if code.Hours == 0 {
					continue
				}
				terms = append(terms, cpsolver.Term{Var: t.at(e, d, c), Coeff: 1})
			}
		}
		addAtLeastSlacks(model, terms, target, cfg.MaxDeviationSlackUnits, int64(cfg.WeekendEquityWeight))
	}
}

// buildPreferenceBonus rewards filling a day the employee marked
// Preferred, via a negative objective coefficient (spec.md §4.3 soft
// objectives: preferred-day bonus, conflict kind preference_ignored).
func buildPreferenceBonus(model cpsolver.Model, t *tensor, employees []models.Employee, days []models.Day, codes []models.ShiftCode, offIdx int, bonus float64) {
	if bonus == 0 {
		return
	}
	for e, emp := range employees {
		for d, day := range days {
			state, _ := emp.AvailabilityOn(day.Date)
			if state != models.Preferred {
				continue
			}
			for c := range codes {
				if c == offIdx {
					continue
				}
				model.Minimize([]cpsolver.Term{{Var: t.at(e, d, c), Coeff: -int64(bonus)}})
			}
		}
	}
}
