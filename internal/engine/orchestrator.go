// Package engine wires the Demand, Matcher, Scheduler, Validator, and
// Resolver stages into the Orchestrator pipeline (spec.md §3 Lifecycle,
// §4 module breakdown), grounded on the original's
// OrchestratorAgent.orchestrate_roster_generation workflow-logging shape.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oakhill-retail/shift-roster-engine/internal/agents/demand"
	"github.com/oakhill-retail/shift-roster-engine/internal/agents/matcher"
	"github.com/oakhill-retail/shift-roster-engine/internal/agents/resolver"
	"github.com/oakhill-retail/shift-roster-engine/internal/agents/validator"
	"github.com/oakhill-retail/shift-roster-engine/internal/config"
	"github.com/oakhill-retail/shift-roster-engine/internal/engine/cpsolver"
	"github.com/oakhill-retail/shift-roster-engine/internal/engine/scheduler"
	"github.com/oakhill-retail/shift-roster-engine/internal/logging"
	"github.com/oakhill-retail/shift-roster-engine/internal/models"
)

// Orchestrator runs one full roster-generation pipeline per Generate call.
type Orchestrator struct {
	cfg       config.Config
	log       *logging.Logger
	demand    *demand.Agent
	matcher   *matcher.Agent
	scheduler *scheduler.Scheduler
	validator *validator.Agent
	resolver  *resolver.Agent
}

func New(cfg config.Config) *Orchestrator {
	log := logging.New()
	return &Orchestrator{
		cfg:       cfg,
		log:       log,
		demand:    demand.New(log),
		matcher:   matcher.New(log),
		scheduler: scheduler.New(cfg),
		validator: validator.New(cfg, log),
		resolver:  resolver.New(cfg, log),
	}
}

// stationAdjacency is the default "related station" table the Matcher
// Agent's cross-training recommendations are seeded from (spec.md §9.3,
// grounded on the original's hardcoded Kitchen/Counter/McCafe pairing,
// generalized to a table so a store can extend it).
var stationAdjacency = map[string][]string{
	"Kitchen": {"Counter"},
	"Counter": {"Kitchen"},
	"McCafe":  {"Counter"},
}

// Generate runs Demand -> Matcher -> Scheduler -> Validator -> Resolver
// (bounded by cfg.MaxResolverIterations) -> final Validator, logging each
// stage transition (spec.md §3, §4, §6 "workflow_log").
func (o *Orchestrator) Generate(ctx context.Context, req models.GenerateRequest, employees []models.Employee, store models.StoreProfile, stationRequirements map[string]int) (*RosterResponse, error) {
	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		return nil, fatal(ErrInvalidRequest, "malformed generate request", err)
	}

	runID := uuid.NewString()
	runLog := o.log.WithRun(runID)
	start := timeNow()

	var steps []WorkflowStep
	logStep := func(stage, message string) {
		steps = append(steps, WorkflowStep{Stage: stage, Message: message, Timestamp: timeNow().Format(time.RFC3339)})
		runLog.WithStage(stage).Info(message)
	}

	logStep("INIT", "starting roster generation workflow")

	days := models.BuildHorizon(req.StartDate, req.Weeks)
	for _, emp := range employees {
		for _, day := range days {
			if _, ok := emp.AvailabilityOn(day.Date); !ok {
				return nil, fatal(ErrInvalidInput, "employee missing availability entry", nil).
					withDetail(emp.ID, day.Date.String())
			}
		}
	}

	logStep("DEMAND", "analyzing staffing demand patterns")
	days = o.demand.Analyze(store, days)
	logStep("DEMAND", "demand analysis complete")

	logStep("MATCH", "matching employee skills to stations")
	coverage, shortages := o.matcher.MatchStations(employees, stationRequirements)
	var recommendations []matcher.CrossTrainRecommendation
	if len(shortages) > 0 {
		recommendations = o.matcher.RecommendCrossTraining(employees, shortages, stationAdjacency)
	}
	logStep("MATCH", "skill matching complete")

	codesByCode := make(map[string]models.ShiftCode)
	for _, c := range models.CanonicalShiftCodes() {
		codesByCode[c.Code] = c
	}
	weekendUpliftTarget := store.WeekendUpliftPercent
	if weekendUpliftTarget == 0 {
		weekendUpliftTarget = 20
	}
	demandAnalysis := buildDemandAnalysis(store, days)

	logStep("SCHEDULE", "generating roster with the CP core")
	timeLimit := time.Duration(req.TimeLimitSeconds) * time.Second
	roster, status, err := o.scheduler.Generate(ctx, employees, days, timeLimit)
	if err != nil {
		return nil, fatal(ErrInternal, "scheduler failed", err)
	}
	if status == cpsolver.StatusInfeasible {
		logStep("SCHEDULE", "no feasible roster exists within the time limit")
		logStep("COMPLETE", "workflow completed")
		diagnostic := diagnoseInfeasibility(employees, days)
		empty := models.NewRoster(days)
		return &RosterResponse{
			Status:                    "failed",
			RunID:                     runID,
			Schedules:                 buildSchedules(empty, employees),
			Days:                      days,
			TotalEmployees:            len(employees),
			GenerationTimeSeconds:     timeNow().Sub(start).Seconds(),
			StationCoverage:           coverage,
			CrossTrainRecommendations: recommendations,
			InitialConflicts:          diagnostic,
			FinalConflicts:            diagnostic,
			Warnings:                  nil,
			PeakCoverage:              buildPeakCoverage(empty, employees, days, codesByCode, weekendUpliftTarget),
			DemandAnalysis:            demandAnalysis,
			HoursFairnessScore:        hoursFairnessScore(empty, employees),
			WorkflowLog:               steps,
			AgentsUsed:                []string{"DemandAgent", "MatcherAgent"},
		}, nil
	}
	logStep("SCHEDULE", "roster generated, status="+status.String())

	logStep("VALIDATE", "validating roster against labor rules and coverage targets")
	initialConflicts := o.validator.Validate(roster, employees, days)
	logStep("VALIDATE", "initial validation complete")

	applied := 0
	finalConflicts := initialConflicts
	if len(initialConflicts) > 0 {
		for iteration := 0; iteration < o.cfg.MaxResolverIterations && len(finalConflicts) > 0; iteration++ {
			logStep("RESOLVE", "resolving scheduling conflicts")
			resolved, roundApplied, unresolved := o.resolver.ResolveAll(finalConflicts, roster, employees)
			roster = resolved
			applied += roundApplied
			logStep("RESOLVE", "resolution pass complete")

			finalConflicts = o.validator.Validate(roster, employees, days)
			if len(unresolved) == len(finalConflicts) && roundApplied == 0 {
				break // no progress this round, stop iterating
			}
		}
	}

	logStep("FINAL", "running final validation")

	hardConflicts, warnings := splitConflicts(finalConflicts)
	status2 := "success"
	if len(hardConflicts) > 0 {
		status2 = "partial"
	}

	elapsed := timeNow().Sub(start).Seconds()
	logStep("COMPLETE", "workflow completed")

	return &RosterResponse{
		Status:                    status2,
		RunID:                     runID,
		Schedules:                 buildSchedules(roster, employees),
		Days:                      days,
		TotalEmployees:            len(employees),
		GenerationTimeSeconds:     elapsed,
		StationCoverage:           coverage,
		CrossTrainRecommendations: recommendations,
		InitialConflicts:          initialConflicts,
		ResolutionsApplied:        applied,
		FinalConflicts:            hardConflicts,
		Warnings:                  warnings,
		PeakCoverage:              buildPeakCoverage(roster, employees, days, codesByCode, weekendUpliftTarget),
		DemandAnalysis:            demandAnalysis,
		HoursFairnessScore:        hoursFairnessScore(roster, employees),
		WorkflowLog:               steps,
		AgentsUsed:                []string{"DemandAgent", "MatcherAgent", "ValidatorAgent", "ResolverAgent"},
	}, nil
}

// timeNow is the one clock source for a run's timestamps and elapsed
// time; kept as a seam so tests could swap it, though none currently do.
func timeNow() time.Time { return time.Now() }

// diagnoseInfeasibility names the tightest-violated constraint class when
// the Scheduler reports no feasible assignment exists (spec.md §7). Manager
// scarcity is checked first since it is the scenario the spec calls out by
// name (§8 scenario 2: 0 managers -> no_manager_on_duty for every day);
// anything else falls back to a single generic diagnostic conflict.
func diagnoseInfeasibility(employees []models.Employee, days []models.Day) []models.Conflict {
	hasManager := false
	for _, emp := range employees {
		if emp.IsManager {
			hasManager = true
			break
		}
	}
	if !hasManager {
		conflicts := make([]models.Conflict, 0, len(days))
		for _, day := range days {
			conflicts = append(conflicts, models.NewConflict(models.NoManagerOnDuty,
				fmt.Sprintf("%s: no manager available to cover a required shift", day.Date)))
		}
		return conflicts
	}

	return []models.Conflict{models.NewConflict(models.NoFeasibleAssignment,
		"no combination of shift assignments satisfies every hard constraint within the time limit")}
}

func (e *FatalError) withDetail(employeeID, day string) *FatalError {
	e.Message = e.Message + " (employee=" + employeeID + " day=" + day + ")"
	return e
}
