package models

// OffCode is the shift code meaning "day off" (spec.md §3 ShiftCode invariant).
const OffCode = "/"

// ShiftCode maps a short symbol to a (station, hours, clock window,
// manager-required) tuple (spec.md §3, §6 "Shift codes (canonical)").
type ShiftCode struct {
	Code            string     `json:"code"`
	Hours           float64    `json:"hours"`
	Station         *string    `json:"station,omitempty"`
	Start           ClockTime  `json:"start"`
	End             ClockTime  `json:"end"`
	RequiresManager bool       `json:"requires_manager"`
	IsPeakCovering  bool       `json:"is_peak_covering"`
	IsOpening       bool       `json:"is_opening"`
	IsClosing       bool       `json:"is_closing"`
}

func stationPtr(s string) *string { return &s }

// CanonicalShiftCodes is the store's default catalog (spec.md §6). Station is
// left nil here — a real deployment assigns a station per code per store
// layout; nil means "no fixed station, matched at eligibility time".
func CanonicalShiftCodes() []ShiftCode {
	return []ShiftCode{
		{
			Code: OffCode, Hours: 0,
		},
		{
			Code: "S", Hours: 4,
			Start: NewClockTime(11, 0), End: NewClockTime(15, 0),
			IsPeakCovering: true,
		},
		{
			Code: "1F", Hours: 8,
			Start: NewClockTime(6, 30), End: NewClockTime(14, 30),
			IsOpening: true, IsPeakCovering: true,
		},
		{
			Code: "2F", Hours: 8,
			Start: NewClockTime(14, 0), End: NewClockTime(22, 0),
			IsPeakCovering: true,
		},
		{
			Code: "3F", Hours: 8,
			Start: NewClockTime(15, 0), End: NewClockTime(23, 0),
			IsClosing: true, IsPeakCovering: true,
		},
		{
			Code: "SC", Hours: 8,
			Start: NewClockTime(11, 0), End: NewClockTime(19, 0),
			RequiresManager: true, IsPeakCovering: true,
		},
		{
			Code: "M", Hours: 8,
			Start: NewClockTime(9, 0), End: NewClockTime(17, 0),
			RequiresManager: true, IsPeakCovering: true,
		},
	}
}

// CoversInterval reports whether the shift's clock window overlaps the
// given [start, end) interval, used for peak/opening/closing coverage
// checks (spec.md §4.1, §4.3 constraints 7-8).
func (s ShiftCode) CoversInterval(start, end ClockTime) bool {
	if s.Code == OffCode {
		return false
	}
	return s.Start.Before(end) && start.Before(s.End)
}

// CoversClock reports whether the shift is active at a single point in
// time. The coverage checks do not use it; they go through CoversInterval
// and IntervalWindows.
func (s ShiftCode) CoversClock(at ClockTime) bool {
	if s.Code == OffCode {
		return false
	}
	return s.Start.Minutes() <= at.Minutes() && at.Minutes() < s.End.Minutes()
}

// ShiftInfo is the decoded per-day assignment carried in a Roster and in
// the RosterResponse wire shape (spec.md §3, §6).
type ShiftInfo struct {
	Code                  string  `json:"shift_code"`
	Name                  string  `json:"shift_name"`
	Hours                 float64 `json:"hours"`
	Station               *string `json:"station,omitempty"`
	CrossesBreakThreshold bool    `json:"crosses_break_threshold,omitempty"`
	BreakMinutes          int     `json:"break_minutes,omitempty"`
}

// ApplyBreakMarker sets the informational break fields on a ShiftInfo
// given the store's break policy, mirroring the original ValidatorAgent's
// break_after_hours check (a no-op marker, not a hard rule: "assuming
// breaks are built into shift definitions").
func (s ShiftInfo) ApplyBreakMarker(breakAfterHours float64, breakDurationMinutes int) ShiftInfo {
	if s.Hours > breakAfterHours {
		s.CrossesBreakThreshold = true
		s.BreakMinutes = breakDurationMinutes
	}
	return s
}
