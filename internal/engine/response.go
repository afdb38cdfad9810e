package engine

import (
	"math"

	"github.com/oakhill-retail/shift-roster-engine/internal/agents/matcher"
	"github.com/oakhill-retail/shift-roster-engine/internal/models"
)

// WorkflowStep is one entry in the Orchestrator's run log (spec.md §3,
// §6 "workflow_log", grounded on the original's "_log_step").
type WorkflowStep struct {
	Stage     string `json:"stage"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// EmployeeSchedule is one employee's decoded day-by-day shifts on the
// wire (spec.md §6).
type EmployeeSchedule struct {
	EmployeeID string                        `json:"employee_id"`
	Name       string                         `json:"employee_name"`
	IsManager  bool                           `json:"is_manager"`
	TotalHours float64                        `json:"total_hours"`
	Shifts     map[string]models.ShiftInfo    `json:"shifts"` // Date.String() -> ShiftInfo
}

// DailyPeakCoverage reports whether each named demand window was met on
// one day (spec.md §6 "PeakCoverageMetrics reports, per day ... booleans
// for lunch_peak_met, dinner_peak_met, opening_covered, closing_covered").
type DailyPeakCoverage struct {
	Date           string `json:"date"`
	LunchPeakMet   bool   `json:"lunch_peak_met"`
	DinnerPeakMet  bool   `json:"dinner_peak_met"`
	OpeningCovered bool   `json:"opening_covered"`
	ClosingCovered bool   `json:"closing_covered"`
}

// IntervalTotals tallies required-vs-scheduled headcount for one named
// interval across the whole horizon. Not named in spec.md §6 directly,
// but kept alongside the per-day/aggregate booleans it does require,
// the way the original ValidatorAgent's coverage check reports both a
// per-day verdict and a running total.
type IntervalTotals struct {
	Interval       models.Interval `json:"interval"`
	RequiredTotal  int             `json:"required_total"`
	ScheduledTotal int             `json:"scheduled_total"`
	DaysShort      int             `json:"days_short"`
}

// PeakCoverageMetrics is the Orchestrator's peak_coverage output (spec.md
// §6): per-day and across-all-days booleans for the four named demand
// windows, plus the weekend-vs-weekday staffing uplift the roster
// actually achieved measured against the store's configured target.
type PeakCoverageMetrics struct {
	Daily                      []DailyPeakCoverage `json:"daily"`
	LunchPeakMet               bool                `json:"lunch_peak_met"`
	DinnerPeakMet              bool                `json:"dinner_peak_met"`
	OpeningCovered             bool                `json:"opening_covered"`
	ClosingCovered             bool                `json:"closing_covered"`
	WeekendVsWeekdayIncrease   float64             `json:"weekend_vs_weekday_increase"`
	WeekendUpliftTargetPercent float64             `json:"weekend_uplift_target_percent"`
	MeetsWeekendTarget         bool                `json:"meets_weekend_target"`
	Intervals                  []IntervalTotals    `json:"intervals"`
}

// RosterResponse is the Orchestrator's output for one run (spec.md §6
// "RosterResponse").
type RosterResponse struct {
	Status                     string                              `json:"status"` // "success", "partial", or "failed"
	RunID                      string                              `json:"run_id"`
	Schedules                  []EmployeeSchedule                  `json:"schedules"`
	Days                       []models.Day                        `json:"days"`
	TotalEmployees             int                                 `json:"total_employees"`
	GenerationTimeSeconds      float64                             `json:"generation_time_seconds"`
	StationCoverage            []matcher.StationCoverage           `json:"station_coverage"`
	CrossTrainRecommendations  []matcher.CrossTrainRecommendation  `json:"cross_train_recommendations,omitempty"`
	InitialConflicts           []models.Conflict                   `json:"initial_conflicts"`
	ResolutionsApplied         int                                 `json:"resolutions_applied"`
	FinalConflicts             []models.Conflict                   `json:"final_conflicts"` // severity > Medium
	Warnings                   []models.Conflict                   `json:"warnings"`        // severity <= Medium
	PeakCoverage               PeakCoverageMetrics                 `json:"peak_coverage"`
	DemandAnalysis             map[string]interface{}              `json:"demand_analysis"`
	HoursFairnessScore         float64                             `json:"hours_fairness_score"`
	WorkflowLog                []WorkflowStep                      `json:"workflow_log"`
	AgentsUsed                 []string                            `json:"agents_used"`
}

// splitConflicts partitions a Validator conflict list into the hard set
// that gates status=partial and the soft set reported separately as
// warnings (spec.md §6 "warnings: [Conflict], // severity <= Medium").
func splitConflicts(conflicts []models.Conflict) (hard, warnings []models.Conflict) {
	for _, c := range conflicts {
		if c.Severity == models.Critical || c.Severity == models.High {
			hard = append(hard, c)
		} else {
			warnings = append(warnings, c)
		}
	}
	return hard, warnings
}

// buildDemandAnalysis summarizes the Demand Agent's pass over the
// horizon as the opaque map spec.md §6 calls for, grounded on the
// fields the Demand Agent itself already logs (demand.go "total_days",
// "weekend_days").
func buildDemandAnalysis(store models.StoreProfile, days []models.Day) map[string]interface{} {
	uplift := store.WeekendUpliftPercent
	if uplift == 0 {
		uplift = 20
	}
	weekendDays := 0
	perDay := make(map[string]map[models.Interval]int, len(days))
	for _, day := range days {
		if day.IsWeekend {
			weekendDays++
		}
		perDay[day.Date.String()] = day.DemandProfile
	}
	return map[string]interface{}{
		"base_headcount":         store.BaseHeadcount,
		"weekend_uplift_percent": uplift,
		"weekend_days":           weekendDays,
		"total_days":             len(days),
		"demand_profile_by_day":  perDay,
	}
}

// hoursFairnessScore scores how evenly TotalHours is spread across
// employees, 100 meaning zero deviation and degrading toward 0 as the
// standard deviation approaches the mean (spec.md §6, grounded on the
// original's CalculateFairnessScore).
func hoursFairnessScore(roster *models.Roster, employees []models.Employee) float64 {
	if len(employees) == 0 {
		return 100.0
	}

	var sum float64
	for _, emp := range employees {
		sum += roster.TotalHours[emp.ID]
	}
	if sum == 0 {
		return 100.0
	}

	mean := sum / float64(len(employees))
	var varianceSum float64
	for _, emp := range employees {
		diff := roster.TotalHours[emp.ID] - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(len(employees)))

	score := 100.0 * (1 - stdDev/mean)
	if score < 0 {
		return 0
	}
	return score
}

// buildSchedules decodes a Roster into the wire-shaped per-employee view.
func buildSchedules(roster *models.Roster, employees []models.Employee) []EmployeeSchedule {
	schedules := make([]EmployeeSchedule, 0, len(employees))
	for _, emp := range employees {
		shifts := roster.Assignment[emp.ID]
		schedules = append(schedules, EmployeeSchedule{
			EmployeeID: emp.ID,
			Name:       emp.Name,
			IsManager:  emp.IsManager,
			TotalHours: roster.TotalHours[emp.ID],
			Shifts:     shifts,
		})
	}
	return schedules
}

// buildPeakCoverage aggregates scheduled-vs-required headcount per
// interval across the whole horizon into the per-day/aggregate booleans
// and weekend-uplift achievement spec.md §6 requires of peak_coverage.
func buildPeakCoverage(roster *models.Roster, employees []models.Employee, days []models.Day, codesByCode map[string]models.ShiftCode, weekendUpliftTargetPercent float64) PeakCoverageMetrics {
	totals := make(map[models.Interval]*IntervalTotals)
	aggregateMet := make(map[models.Interval]bool, len(models.AllIntervals))
	for _, interval := range models.AllIntervals {
		totals[interval] = &IntervalTotals{Interval: interval}
		aggregateMet[interval] = true
	}

	daily := make([]DailyPeakCoverage, 0, len(days))
	var weekdayScheduled, weekendScheduled float64
	var weekdayDays, weekendDays int

	for _, day := range days {
		metForDay := make(map[models.Interval]bool, len(models.AllIntervals))
		dayScheduled := 0
		for _, interval := range models.AllIntervals {
			window := models.IntervalWindows[interval]
			required := day.DemandProfile[interval]
			scheduled := 0
			for _, emp := range employees {
				info, ok := roster.Get(emp.ID, day.Date)
				if !ok {
					continue
				}
				code, found := codesByCode[info.Code]
				if !found || !code.CoversInterval(window[0], window[1]) {
					continue
				}
				scheduled++
			}
			t := totals[interval]
			t.RequiredTotal += required
			t.ScheduledTotal += scheduled
			dayScheduled += scheduled

			met := scheduled >= required
			metForDay[interval] = met
			if !met {
				t.DaysShort++
				aggregateMet[interval] = false
			}
		}

		daily = append(daily, DailyPeakCoverage{
			Date:           day.Date.String(),
			LunchPeakMet:   metForDay[models.LunchPeak],
			DinnerPeakMet:  metForDay[models.DinnerPeak],
			OpeningCovered: metForDay[models.Opening],
			ClosingCovered: metForDay[models.Closing],
		})

		if day.IsWeekend {
			weekendScheduled += float64(dayScheduled)
			weekendDays++
		} else {
			weekdayScheduled += float64(dayScheduled)
			weekdayDays++
		}
	}

	var increase float64
	meetsTarget := true
	if weekendDays > 0 && weekdayDays > 0 {
		weekdayAvg := weekdayScheduled / float64(weekdayDays)
		weekendAvg := weekendScheduled / float64(weekendDays)
		if weekdayAvg > 0 {
			increase = (weekendAvg - weekdayAvg) / weekdayAvg * 100
		}
		meetsTarget = increase >= weekendUpliftTargetPercent
	}

	intervals := make([]IntervalTotals, 0, len(models.AllIntervals))
	for _, interval := range models.AllIntervals {
		intervals = append(intervals, *totals[interval])
	}

	return PeakCoverageMetrics{
		Daily:                      daily,
		LunchPeakMet:               aggregateMet[models.LunchPeak],
		DinnerPeakMet:              aggregateMet[models.DinnerPeak],
		OpeningCovered:             aggregateMet[models.Opening],
		ClosingCovered:             aggregateMet[models.Closing],
		WeekendVsWeekdayIncrease:   increase,
		WeekendUpliftTargetPercent: weekendUpliftTargetPercent,
		MeetsWeekendTarget:         meetsTarget,
		Intervals:                  intervals,
	}
}
