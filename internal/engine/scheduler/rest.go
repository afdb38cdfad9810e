package scheduler

import "github.com/oakhill-retail/shift-roster-engine/internal/models"

// restMinutes computes the gap between the end of prev (worked the day
// before) and the start of next (worked the following day), wrapping
// through midnight. Either code being OffCode means there's no shift
// boundary to measure, so the pair never violates rest.
func restMinutes(prev, next models.ShiftCode) int {
	minutesToMidnight := 24*60 - prev.End.Minutes()
	return minutesToMidnight + next.Start.Minutes()
}

// violatesRest reports whether working prev then next the following day
// breaches the minimum rest-between-shifts rule (spec.md §4.3 constraint
// 5, Australian Fair Work-style "min_rest_between_shifts_hours").
func violatesRest(prev, next models.ShiftCode, minRestHours float64) bool {
	if prev.Code == models.OffCode || next.Code == models.OffCode {
		return false
	}
	return float64(restMinutes(prev, next)) < minRestHours*60
}
