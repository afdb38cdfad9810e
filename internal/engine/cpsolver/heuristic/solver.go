// Package heuristic implements a bounded-time, restart/local-search
// backend for cpsolver.Model. Every chain starts from the all-false
// assignment and repairs it with randomized flips that reduce a weighted
// violation-plus-objective score, tracking the best complete assignment
// seen before the deadline — a "multi-pass, keep the best" local search
// over arbitrary pseudo-boolean constraints, so any CP-SAT-class model
// can be solved through the same six verbs.
package heuristic

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/oakhill-retail/shift-roster-engine/internal/engine/cpsolver"
)

// hardWeight scales constraint/clause violations far above any objective
// term so the search always prefers feasibility over optimality.
const hardWeight = 1_000_000.0

type linearConstraint struct {
	terms []cpsolver.Term
	lb, ub int64
}

type termRef struct {
	idx   int
	coeff int64
}

type clauseRef struct {
	idx     int
	negated bool
}

// Solver is a Model implementation; construct with New and pass it to the
// Scheduler as a cpsolver.Model.
type Solver struct {
	names  []string
	values []bool

	constraints []linearConstraint
	varConstraints [][]termRef

	clauses    [][]cpsolver.Literal
	varClauses [][]clauseRef

	objective   map[cpsolver.VarRef]int64

	workers int
}

// New creates an empty model. workers bounds the number of parallel
// restart chains SolveWithDeadline runs (spec.md §5, §9).
func New(workers int) *Solver {
	if workers < 1 {
		workers = 1
	}
	return &Solver{
		objective: make(map[cpsolver.VarRef]int64),
		workers:   workers,
	}
}

func (s *Solver) AddBoolVar(name string) cpsolver.VarRef {
	s.names = append(s.names, name)
	s.values = append(s.values, false)
	return cpsolver.VarRef(len(s.names) - 1)
}

func (s *Solver) AddLinearConstraint(terms []cpsolver.Term, lb, ub int64) {
	idx := len(s.constraints)
	s.constraints = append(s.constraints, linearConstraint{terms: terms, lb: lb, ub: ub})
	for _, t := range terms {
		s.ensureVarIndex(int(t.Var))
		s.varConstraints[t.Var] = append(s.varConstraints[t.Var], termRef{idx: idx, coeff: t.Coeff})
	}
}

func (s *Solver) AddBoolOr(lits []cpsolver.Literal) {
	idx := len(s.clauses)
	s.clauses = append(s.clauses, lits)
	for _, l := range lits {
		s.ensureVarIndex(int(l.Var))
		s.varClauses[l.Var] = append(s.varClauses[l.Var], clauseRef{idx: idx, negated: l.Negated})
	}
}

func (s *Solver) Minimize(terms []cpsolver.Term) {
	for _, t := range terms {
		s.objective[t.Var] += t.Coeff
	}
}

func (s *Solver) ReadValue(v cpsolver.VarRef) bool {
	return s.values[v]
}

func (s *Solver) ensureVarIndex(v int) {
	for len(s.varConstraints) <= v {
		s.varConstraints = append(s.varConstraints, nil)
	}
	for len(s.varClauses) <= v {
		s.varClauses = append(s.varClauses, nil)
	}
}

// state is one candidate assignment and the incremental bookkeeping
// (current constraint sums, clause-satisfied counts) needed to flip a
// single variable in O(degree(v)) time.
type state struct {
	values        []bool
	constraintSum []int64
	clauseSat     []int
}

func (s *Solver) newState() *state {
	st := &state{
		values:        make([]bool, len(s.values)),
		constraintSum: make([]int64, len(s.constraints)),
		clauseSat:     make([]int, len(s.clauses)),
	}
	// values starts all-false, so a clause is satisfied at this baseline by
	// exactly its negated literals (all(!v)). constraintSum stays correctly
	// at zero since every var contributes zero while false.
	for i, lits := range s.clauses {
		for _, l := range lits {
			if l.Negated {
				st.clauseSat[i]++
			}
		}
	}
	return st
}

func (s *Solver) cost(st *state) float64 {
	violation := 0.0
	for i, c := range s.constraints {
		sum := st.constraintSum[i]
		if sum < c.lb {
			violation += float64(c.lb - sum)
		}
		if sum > c.ub {
			violation += float64(sum - c.ub)
		}
	}
	for i := range s.clauses {
		if st.clauseSat[i] == 0 {
			violation += 1
		}
	}
	objective := 0.0
	for v, coeff := range s.objective {
		if st.values[v] {
			objective += float64(coeff)
		}
	}
	return hardWeight*violation + objective
}

// flip toggles variable v in st, updating constraintSum/clauseSat in
// place. The caller re-derives cost() afterward.
func (s *Solver) flip(st *state, v int) {
	st.values[v] = !st.values[v]
	sign := int64(1)
	if !st.values[v] {
		sign = -1
	}
	for _, ref := range s.varConstraints[v] {
		st.constraintSum[ref.idx] += sign * ref.coeff
	}
	for _, ref := range s.varClauses[v] {
		satisfiedNow := st.values[v] != ref.negated
		if satisfiedNow {
			st.clauseSat[ref.idx]++
		} else {
			st.clauseSat[ref.idx]--
		}
	}
}

// SolveWithDeadline runs the configured number of parallel restart chains
// until ctx is done or deadline passes, and keeps the best-scoring
// complete assignment found by any of them.
func (s *Solver) SolveWithDeadline(ctx context.Context, deadline time.Time) (cpsolver.Status, error) {
	if len(s.values) == 0 {
		return cpsolver.StatusOptimal, nil
	}

	var mu sync.Mutex
	best := make([]bool, len(s.values))
	bestCost := math.Inf(1)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < s.workers; w++ {
		seed := int64(w)*104729 + 17
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed))
			st := s.newState()
			localBest := make([]bool, len(st.values))
			localBestCost := s.cost(st)
			current := localBestCost
			copy(localBest, st.values)

			iterations := 0
			for {
				iterations++
				if iterations%256 == 0 {
					select {
					case <-gctx.Done():
						goto done
					default:
					}
					if time.Now().After(deadline) {
						goto done
					}
				}

				v := s.pickRepairCandidate(st, rng)
				s.flip(st, v)
				actual := s.cost(st)
				accept := actual <= current || rng.Float64() < 0.02
				if !accept {
					s.flip(st, v) // revert
					continue
				}
				current = actual
				if actual < localBestCost {
					localBestCost = actual
					copy(localBest, st.values)
				}
			}
		done:
			mu.Lock()
			if localBestCost < bestCost {
				bestCost = localBestCost
				copy(best, localBest)
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	copy(s.values, best)

	if bestCost >= hardWeight {
		return cpsolver.StatusInfeasible, nil
	}
	return cpsolver.StatusFeasible, nil
}


// pickRepairCandidate favors variables that participate in a currently
// violated constraint or clause (WalkSAT-style), falling back to a
// uniform random variable to keep the chain exploring.
func (s *Solver) pickRepairCandidate(st *state, rng *rand.Rand) int {
	for attempt := 0; attempt < 8; attempt++ {
		ci := rng.Intn(len(s.constraints) + len(s.clauses) + 1)
		switch {
		case ci < len(s.constraints):
			c := s.constraints[ci]
			sum := st.constraintSum[ci]
			if sum < c.lb || sum > c.ub {
				if len(c.terms) > 0 {
					return int(c.terms[rng.Intn(len(c.terms))].Var)
				}
			}
		case ci < len(s.constraints)+len(s.clauses):
			lits := s.clauses[ci-len(s.constraints)]
			if st.clauseSat[ci-len(s.constraints)] == 0 && len(lits) > 0 {
				return int(lits[rng.Intn(len(lits))].Var)
			}
		}
	}
	return rng.Intn(len(s.values))
}
