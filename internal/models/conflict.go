package models

// Severity ranks a Conflict's urgency (spec.md §3, §4.4).
type Severity string

const (
	Critical Severity = "Critical"
	High     Severity = "High"
	Medium   Severity = "Medium"
	Low      Severity = "Low"
)

var severityRank = map[Severity]int{
	Critical: 0,
	High:     1,
	Medium:   2,
	Low:      3,
}

// Rank gives a total order for sorting conflicts by severity, most urgent
// first (spec.md §4.5 step 1: "select the highest-severity unresolved conflict").
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return len(severityRank)
}

// ConflictKind enumerates the checks the Validator Agent performs
// (spec.md §4.4 table).
type ConflictKind string

const (
	WeeklyHoursOverflow     ConflictKind = "weekly_hours_overflow"
	WeeklyHoursUnderflow    ConflictKind = "weekly_hours_underflow"
	ConsecutiveDaysExceeded ConflictKind = "consecutive_days_exceeded"
	InsufficientRest        ConflictKind = "insufficient_rest"
	NoManagerOnDuty         ConflictKind = "no_manager_on_duty"
	PeakUndercoverage       ConflictKind = "peak_undercoverage"
	OpeningOrClosingUncovered ConflictKind = "opening_or_closing_uncovered"
	StationSkillMismatch    ConflictKind = "station_skill_mismatch"
	WeekendUpliftMissed     ConflictKind = "weekend_uplift_missed"
	PreferenceIgnored       ConflictKind = "preference_ignored"

	// NoFeasibleAssignment is not one of the Validator's post-hoc checks;
	// it is the Orchestrator's own diagnostic when the Scheduler reports
	// no feasible assignment exists at all (spec.md §7 "a diagnostic
	// Conflict listing the tightest-violated constraint class").
	NoFeasibleAssignment ConflictKind = "no_feasible_assignment"
)

// DefaultSeverity is the severity the Validator assigns each kind by
// default (spec.md §4.4 table).
var DefaultSeverity = map[ConflictKind]Severity{
	WeeklyHoursOverflow:       Critical,
	WeeklyHoursUnderflow:      High,
	ConsecutiveDaysExceeded:   Critical,
	InsufficientRest:          Critical,
	NoManagerOnDuty:           Critical,
	PeakUndercoverage:         High,
	OpeningOrClosingUncovered: High,
	StationSkillMismatch:      Medium,
	WeekendUpliftMissed:       Low,
	PreferenceIgnored:         Low,
	NoFeasibleAssignment:      Critical,
}

// Conflict is a single violation surfaced by the Validator or carried
// through the Resolver (spec.md §3).
type Conflict struct {
	Kind        ConflictKind `json:"kind"`
	Severity    Severity     `json:"severity"`
	Description string       `json:"description"`
	EmployeeID  string       `json:"employee_id,omitempty"`
	Days        []string     `json:"days,omitempty"`
}

func NewConflict(kind ConflictKind, description string) Conflict {
	return Conflict{
		Kind:        kind,
		Severity:    DefaultSeverity[kind],
		Description: description,
	}
}
