// Package config loads the engine's immutable run-start configuration
// (default hours windows, objective weights, uplift factors, solver
// worker cap) the way the teacher's HTTP layer loads .env secrets, but
// via viper so values can come from the environment or a YAML file
// (spec.md §9 "Global state: ... Configuration ... is passed as an
// immutable value at run start").
package config

import (
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// Config is passed by value into every agent; nothing in the core
// mutates it during a run.
type Config struct {
	// Demand Agent
	WeekendUpliftPercent float64

	// Scheduler objective weights (spec.md §4.3 Soft objectives)
	CoverageShortfallWeightPrimary float64 // Opening/Closing/Peak intervals
	CoverageShortfallWeightOther   float64
	SkillMismatchWeight            float64
	HoursDispersionWeight          float64
	WeekendEquityWeight            float64
	PreferredDayBonus              float64
	MaxDeviationSlackUnits         int

	// Solver
	DefaultTimeLimit time.Duration
	MaxTimeLimit     time.Duration
	SolverWorkers    int

	// Resolver
	MaxResolverIterations int

	// Labor rules
	MinRestHours          float64
	MaxDailyHours         float64
	MaxConsecutiveDays    int
	MinManagersOnDuty     int
	BreakAfterHours       float64
	BreakDurationMinutes  int
}

func Defaults() Config {
	return Config{
		WeekendUpliftPercent: 20,

		CoverageShortfallWeightPrimary: 100,
		CoverageShortfallWeightOther:   40,
		SkillMismatchWeight:            1,
		HoursDispersionWeight:          2,
		WeekendEquityWeight:            1,
		PreferredDayBonus:              2,
		MaxDeviationSlackUnits:         16,

		DefaultTimeLimit: 120 * time.Second,
		MaxTimeLimit:     180 * time.Second,
		SolverWorkers:    runtime.NumCPU(),

		MaxResolverIterations: 3,

		MinRestHours:         10,
		MaxDailyHours:        10,
		MaxConsecutiveDays:   6,
		MinManagersOnDuty:    1,
		BreakAfterHours:      5,
		BreakDurationMinutes: 30,
	}
}

// Load reads overrides from the environment (prefixed ROSTER_) and an
// optional config file, layered on top of Defaults().
func Load() (Config, error) {
	cfg := Defaults()

	v := viper.New()
	v.SetEnvPrefix("ROSTER")
	v.AutomaticEnv()
	v.SetConfigName("roster")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	bind := func(key string, dst *float64) {
		v.SetDefault(key, *dst)
		*dst = v.GetFloat64(key)
	}
	bindInt := func(key string, dst *int) {
		v.SetDefault(key, *dst)
		*dst = v.GetInt(key)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cfg, err
		}
	}

	bind("weekend_uplift_percent", &cfg.WeekendUpliftPercent)
	bind("coverage_shortfall_weight_primary", &cfg.CoverageShortfallWeightPrimary)
	bind("coverage_shortfall_weight_other", &cfg.CoverageShortfallWeightOther)
	bind("skill_mismatch_weight", &cfg.SkillMismatchWeight)
	bind("hours_dispersion_weight", &cfg.HoursDispersionWeight)
	bind("weekend_equity_weight", &cfg.WeekendEquityWeight)
	bind("preferred_day_bonus", &cfg.PreferredDayBonus)
	bind("min_rest_hours", &cfg.MinRestHours)
	bind("max_daily_hours", &cfg.MaxDailyHours)
	bind("break_after_hours", &cfg.BreakAfterHours)

	bindInt("max_deviation_slack_units", &cfg.MaxDeviationSlackUnits)
	bindInt("solver_workers", &cfg.SolverWorkers)
	bindInt("max_resolver_iterations", &cfg.MaxResolverIterations)
	bindInt("max_consecutive_days", &cfg.MaxConsecutiveDays)
	bindInt("min_managers_on_duty", &cfg.MinManagersOnDuty)
	bindInt("break_duration_minutes", &cfg.BreakDurationMinutes)

	return cfg, nil
}
