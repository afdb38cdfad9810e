package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/oakhill-retail/shift-roster-engine/internal/config"
	"github.com/oakhill-retail/shift-roster-engine/internal/engine/cpsolver"
	"github.com/oakhill-retail/shift-roster-engine/internal/engine/cpsolver/heuristic"
	"github.com/oakhill-retail/shift-roster-engine/internal/models"
)

// Scheduler is the pipeline stage that turns a demand-filled horizon and
// employee roster into a solved Roster (spec.md §4.3 "Scheduler (CP
// core)"). It is backend-agnostic: Model is whatever cpsolver.Model the
// caller wires in, defaulting to the heuristic package.
type Scheduler struct {
	cfg     config.Config
	newModel func() cpsolver.Model
}

func New(cfg config.Config) *Scheduler {
	return &Scheduler{
		cfg: cfg,
		newModel: func() cpsolver.Model {
			return heuristic.New(cfg.SolverWorkers)
		},
	}
}

// Generate builds the CP model for the given employees and horizon,
// solves it within timeLimit (bounded by cfg.MaxTimeLimit), and decodes
// the result into a Roster (spec.md §4.3, §9 "SolveWithDeadline").
func (s *Scheduler) Generate(ctx context.Context, employees []models.Employee, days []models.Day, timeLimit time.Duration) (*models.Roster, cpsolver.Status, error) {
	if timeLimit <= 0 || timeLimit > s.cfg.MaxTimeLimit {
		timeLimit = s.cfg.DefaultTimeLimit
	}
	model := s.newModel()
	t := Build(model, s.cfg, employees, days)

	deadline := time.Now().Add(timeLimit)
	status, err := model.SolveWithDeadline(ctx, deadline)
	if err != nil {
		return nil, status, fmt.Errorf("solve roster: %w", err)
	}
	// Infeasibility is not an error here: the Orchestrator turns it into a
	// well-formed status=failed RosterResponse rather than aborting the
	// run (spec.md §7).
	if status == cpsolver.StatusInfeasible {
		return nil, status, nil
	}
	return Decode(model, t, s.cfg), status, nil
}
