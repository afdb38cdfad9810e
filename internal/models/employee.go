package models

// EmploymentType is the employee's contract category; it sets the default
// weekly-hours window (spec.md §3, §4.3 constraint 4).
type EmploymentType string

const (
	FullTime EmploymentType = "FullTime"
	PartTime EmploymentType = "PartTime"
	Casual   EmploymentType = "Casual"
)

// AvailabilityState is the per-day availability cell for an employee.
type AvailabilityState string

const (
	Unavailable AvailabilityState = "Unavailable"
	Available   AvailabilityState = "Available"
	Preferred   AvailabilityState = "Preferred"
)

// HourWindow is an inclusive [Min, Max] weekly-hours range.
type HourWindow struct {
	Min float64
	Max float64
}

// DefaultHourWindows gives the type-dependent default weekly-hours window
// (spec.md §4.3 constraint 4).
var DefaultHourWindows = map[EmploymentType]HourWindow{
	FullTime: {Min: 38, Max: 48},
	PartTime: {Min: 15, Max: 38},
	Casual:   {Min: 0, Max: 38},
}

// Employee is a read-only input for one run (spec.md §3 Lifecycle).
type Employee struct {
	ID                   string             `json:"id"`
	Name                 string             `json:"name"`
	EmploymentType       EmploymentType     `json:"employment_type"`
	IsManager            bool               `json:"is_manager"`
	PrimaryStation       string             `json:"primary_station"`
	CrossTrainedStations map[string]bool    `json:"cross_trained_stations"`
	MaxWeeklyHours       float64            `json:"max_weekly_hours"`
	MinWeeklyHours       float64            `json:"min_weekly_hours"`
	Availability         map[string]AvailabilityState `json:"availability"` // keyed by Date.String()
}

// AvailabilityOn returns the employee's availability for a day. When the
// horizon's invariant (every day defined) was violated upstream it returns
// the empty state and false — callers should treat a missing entry as a
// Fatal input error rather than rely on that empty state.
func (e Employee) AvailabilityOn(day Date) (AvailabilityState, bool) {
	v, ok := e.Availability[day.String()]
	return v, ok
}

// HoursWindow resolves the effective weekly-hours window: explicit
// Min/MaxWeeklyHours when set, otherwise the type default.
func (e Employee) HoursWindow() HourWindow {
	def := DefaultHourWindows[e.EmploymentType]
	w := HourWindow{Min: e.MinWeeklyHours, Max: e.MaxWeeklyHours}
	if w.Max == 0 {
		w.Max = def.Max
	}
	if w.Min == 0 && e.EmploymentType != Casual {
		w.Min = def.Min
	}
	return w
}

// CanWorkStation reports whether the employee is qualified for a station,
// via primary station or cross-training (spec.md §4.2 eligibility rules).
func (e Employee) CanWorkStation(station string) bool {
	if station == "" {
		return true
	}
	if e.PrimaryStation == station {
		return true
	}
	return e.CrossTrainedStations[station]
}
