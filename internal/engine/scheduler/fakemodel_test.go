package scheduler

import (
	"context"
	"time"

	"github.com/oakhill-retail/shift-roster-engine/internal/engine/cpsolver"
)

// fakeModel records what Build submits without solving anything, so
// constraint-shape assertions don't depend on the heuristic backend.
type fakeModel struct {
	nextVar     cpsolver.VarRef
	values      map[cpsolver.VarRef]bool
	constraints []fakeConstraint
	clauses     [][]cpsolver.Literal
}

type fakeConstraint struct {
	terms []cpsolver.Term
	lb    int64
	ub    int64
}

func newFakeModel() *fakeModel {
	return &fakeModel{values: make(map[cpsolver.VarRef]bool)}
}

func (m *fakeModel) AddBoolVar(name string) cpsolver.VarRef {
	v := m.nextVar
	m.nextVar++
	m.values[v] = false
	return v
}

func (m *fakeModel) AddLinearConstraint(terms []cpsolver.Term, lb, ub int64) {
	m.constraints = append(m.constraints, fakeConstraint{terms: terms, lb: lb, ub: ub})
}

func (m *fakeModel) AddBoolOr(lits []cpsolver.Literal) {
	m.clauses = append(m.clauses, lits)
}

func (m *fakeModel) Minimize(terms []cpsolver.Term) {}

func (m *fakeModel) SolveWithDeadline(ctx context.Context, deadline time.Time) (cpsolver.Status, error) {
	return cpsolver.StatusFeasible, nil
}

func (m *fakeModel) ReadValue(v cpsolver.VarRef) bool {
	return m.values[v]
}
