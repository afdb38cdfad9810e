// Package scheduler builds and decodes the CP-SAT-class model for one
// roster run (spec.md §4.3 "Scheduler (CP core)"). It depends only on
// the cpsolver.Model interface, never on a specific backend.
package scheduler

import (
	"github.com/oakhill-retail/shift-roster-engine/internal/engine/cpsolver"
	"github.com/oakhill-retail/shift-roster-engine/internal/models"
)

// tensor is the dense x[e,d,c] decision variable space: employee e works
// shift code c on day d. Addressed via computed strides over a flat
// buffer rather than a nested slice, per spec.md §9 Design Notes.
type tensor struct {
	employees []models.Employee
	days      []models.Day
	codes     []models.ShiftCode

	strideEmployee int
	strideDay      int

	vars []cpsolver.VarRef
}

func newTensor(model cpsolver.Model, employees []models.Employee, days []models.Day, codes []models.ShiftCode) *tensor {
	t := &tensor{
		employees:      employees,
		days:           days,
		codes:          codes,
		strideDay:      len(codes),
		strideEmployee: len(days) * len(codes),
	}
	t.vars = make([]cpsolver.VarRef, len(employees)*len(days)*len(codes))
	for e := range employees {
		for d := range days {
			for c := range codes {
				name := employees[e].ID + "/" + days[d].Date.String() + "/" + codes[c].Code
				t.vars[t.index(e, d, c)] = model.AddBoolVar(name)
			}
		}
	}
	return t
}

func (t *tensor) index(e, d, c int) int {
	return e*t.strideEmployee + d*t.strideDay + c
}

func (t *tensor) at(e, d, c int) cpsolver.VarRef {
	return t.vars[t.index(e, d, c)]
}

// forEmployeeDay returns the x[e,d,*] variables as unit-coefficient terms,
// in code-axis order, for building the "exactly one code per day"
// constraint.
func (t *tensor) forEmployeeDay(e, d int) []cpsolver.Term {
	terms := make([]cpsolver.Term, len(t.codes))
	for c := range t.codes {
		terms[c] = cpsolver.Term{Var: t.at(e, d, c), Coeff: 1}
	}
	return terms
}

// codeIndex resolves a ShiftCode's position in the tensor's code axis.
func (t *tensor) codeIndex(code string) int {
	for i, c := range t.codes {
		if c.Code == code {
			return i
		}
	}
	return -1
}
