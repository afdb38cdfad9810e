package models

// Roster is created by the Scheduler, mutated only by the Resolver, and
// frozen once the pipeline exits (spec.md §3 Lifecycle).
type Roster struct {
	Horizon         []Day
	Assignment      map[string]map[string]ShiftInfo // employeeID -> Date.String() -> ShiftInfo
	TotalHours      map[string]float64
	ManagerOnDuty   map[string]map[Interval]int // Date.String() -> interval -> manager headcount
}

func NewRoster(horizon []Day) *Roster {
	return &Roster{
		Horizon:       horizon,
		Assignment:    make(map[string]map[string]ShiftInfo),
		TotalHours:    make(map[string]float64),
		ManagerOnDuty: make(map[string]map[Interval]int),
	}
}

func (r *Roster) Set(employeeID string, day Date, info ShiftInfo) {
	if r.Assignment[employeeID] == nil {
		r.Assignment[employeeID] = make(map[string]ShiftInfo)
	}
	r.Assignment[employeeID][day.String()] = info
	r.TotalHours[employeeID] += info.Hours
}

func (r *Roster) Get(employeeID string, day Date) (ShiftInfo, bool) {
	m, ok := r.Assignment[employeeID]
	if !ok {
		return ShiftInfo{}, false
	}
	info, ok := m[day.String()]
	return info, ok
}

// Clone deep-copies the roster so the Resolver can mutate a working copy
// without corrupting the one already shipped (spec.md §4.5).
func (r *Roster) Clone() *Roster {
	clone := NewRoster(r.Horizon)
	for emp, days := range r.Assignment {
		copied := make(map[string]ShiftInfo, len(days))
		for d, info := range days {
			copied[d] = info
		}
		clone.Assignment[emp] = copied
	}
	for emp, h := range r.TotalHours {
		clone.TotalHours[emp] = h
	}
	for d, intervals := range r.ManagerOnDuty {
		copied := make(map[Interval]int, len(intervals))
		for i, v := range intervals {
			copied[i] = v
		}
		clone.ManagerOnDuty[d] = copied
	}
	return clone
}
