package models

// GenerateRequest is the inbound request to the core (spec.md §6).
type GenerateRequest struct {
	StartDate        Date `json:"start_date"`
	Weeks            int  `json:"weeks"`
	TimeLimitSeconds int  `json:"time_limit_seconds"`
}

// Validate checks the request shape before the pipeline runs; a failure
// here is a malformed request, rejected at the boundary (spec.md §7).
func (r GenerateRequest) Validate() error {
	switch r.Weeks {
	case 1, 2, 4:
	default:
		return &ValidationError{Field: "weeks", Reason: "must be 1, 2, or 4"}
	}
	if r.TimeLimitSeconds < 0 || r.TimeLimitSeconds > 180 {
		return &ValidationError{Field: "time_limit_seconds", Reason: "must be between 0 and 180"}
	}
	return nil
}

// WithDefaults fills zero-valued optional fields (spec.md §6 defaults).
func (r GenerateRequest) WithDefaults() GenerateRequest {
	if r.TimeLimitSeconds == 0 {
		r.TimeLimitSeconds = 120
	}
	if r.Weeks == 0 {
		r.Weeks = 1
	}
	return r
}

// ValidationError is a malformed-request rejection at the API boundary,
// distinct from the core's FatalError taxonomy (spec.md §7).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

// StoreProfile is the base demand + operating-hours input to the Demand
// Agent (spec.md §4.1, §6 "Store structure").
type StoreProfile struct {
	BaseHeadcount        map[Interval]int `json:"base_headcount"`
	OpeningTime          ClockTime        `json:"opening_time"`
	ClosingTime          ClockTime        `json:"closing_time"`
	WeekendUpliftPercent float64          `json:"weekend_uplift_percent"`
}

func DefaultStoreProfile() StoreProfile {
	return StoreProfile{
		BaseHeadcount: map[Interval]int{
			Opening:    2,
			LunchPeak:  5,
			DinnerPeak: 5,
			Closing:    2,
		},
		OpeningTime:          NewClockTime(6, 30),
		ClosingTime:          NewClockTime(23, 0),
		WeekendUpliftPercent: 20,
	}
}
