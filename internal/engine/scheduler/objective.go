package scheduler

import (
	"github.com/oakhill-retail/shift-roster-engine/internal/engine/cpsolver"
)

// unbounded stands in for "no upper/lower bound" in an AddLinearConstraint
// call that only wants to enforce one side.
const unbounded = int64(1 << 30)

// addAtLeastSlacks linearizes a "coverage must reach at least lb" soft
// term: sum(terms) + sum(slack) >= lb, with an ordered chain of up to
// maxSlack boolean slack variables (slack[i] implies slack[i-1]) so that
// the number of slack variables set to true equals the shortfall, capped
// at maxSlack. weight*shortfall is added to the objective (spec.md §4.3
// "Soft objectives": coverage shortfall, §9 "linearize via slack-variable
// chains capped by Config.MaxDeviationSlackUnits").
func addAtLeastSlacks(model cpsolver.Model, terms []cpsolver.Term, lb int64, maxSlack int, weight int64) {
	if maxSlack <= 0 {
		return
	}
	slack := make([]cpsolver.VarRef, maxSlack)
	for i := range slack {
		slack[i] = model.AddBoolVar("")
	}
	for i := 1; i < maxSlack; i++ {
		model.AddBoolOr([]cpsolver.Literal{cpsolver.NotLit(slack[i]), cpsolver.Lit(slack[i-1])})
	}

	full := append([]cpsolver.Term{}, terms...)
	for i, v := range slack {
		coeff := int64(1)
		if i == maxSlack-1 && lb > int64(maxSlack) {
			// The last slack absorbs any shortfall beyond the chain length,
			// so the constraint stays satisfiable and the penalty saturates.
			coeff = lb - int64(maxSlack-1)
		}
		full = append(full, cpsolver.Term{Var: v, Coeff: coeff})
	}
	model.AddLinearConstraint(full, lb, unbounded)

	if weight != 0 {
		objTerms := make([]cpsolver.Term, maxSlack)
		for i, v := range slack {
			objTerms[i] = cpsolver.Term{Var: v, Coeff: weight}
		}
		model.Minimize(objTerms)
	}
}

// addAtMostSlacks linearizes a "must not exceed ub" soft term:
// sum(terms) - sum(slack) <= ub, same ordered-chain encoding as
// addAtLeastSlacks but penalizing overflow instead of shortfall (used for
// the upper side of the hours-dispersion term, spec.md §4.3).
func addAtMostSlacks(model cpsolver.Model, terms []cpsolver.Term, ub int64, maxSlack int, weight int64) {
	if maxSlack <= 0 {
		return
	}
	slack := make([]cpsolver.VarRef, maxSlack)
	for i := range slack {
		slack[i] = model.AddBoolVar("")
	}
	for i := 1; i < maxSlack; i++ {
		model.AddBoolOr([]cpsolver.Literal{cpsolver.NotLit(slack[i]), cpsolver.Lit(slack[i-1])})
	}

	var maxSum int64
	for _, t := range terms {
		if t.Coeff > 0 {
			maxSum += t.Coeff
		}
	}
	full := append([]cpsolver.Term{}, terms...)
	for i, v := range slack {
		coeff := int64(-1)
		if excess := maxSum - ub; i == maxSlack-1 && excess > int64(maxSlack) {
			// As in addAtLeastSlacks, the last slack absorbs any overflow
			// beyond the chain length.
			coeff = -(excess - int64(maxSlack-1))
		}
		full = append(full, cpsolver.Term{Var: v, Coeff: coeff})
	}
	model.AddLinearConstraint(full, -unbounded, ub)

	if weight != 0 {
		objTerms := make([]cpsolver.Term, maxSlack)
		for i, v := range slack {
			objTerms[i] = cpsolver.Term{Var: v, Coeff: weight}
		}
		model.Minimize(objTerms)
	}
}
