// Package individual implements the weighted constraint-optimization scheduling
// mode (C3): CP-SAT variable creation, hard constraints, the cumulative
// per-grade understaffing slack, the pattern-deviation indicator, and the
// weighted objective, plus the translation of a solver response into a roster.
package individual

import (
	"fmt"
	"time"

	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/shiftforge/rosterengine/pkg/model"
	"github.com/shiftforge/rosterengine/pkg/roster/shared"
)

// Params are the solver's tunable knobs: wall time, worker count, and the
// two objective weights. Callers normally build these from internal/config.
type Params struct {
	MaxTimeSeconds   float64
	NumWorkers       int
	UnderstaffWeight int64
	PatternWeight    int64
}

// DefaultParams returns the baseline solver knobs used when no config override is supplied.
func DefaultParams() Params {
	return Params{MaxTimeSeconds: 30, NumWorkers: 8, UnderstaffWeight: 1000, PatternWeight: 100}
}

// assignKey identifies one assign[e,d,s,l] decision variable.
type assignKey struct {
	slotIdx    int
	employeeIdx int
}

// Diagnostics carries the per-run facts reported on the logging channel
// alongside the roster: solver status, objective value, and constraint slack.
type Diagnostics struct {
	Status            string
	ObjectiveValue    float64
	TotalUnderstaff   int64
	TotalDeviations   int64
	EligiblePairCount int
	WallTime          time.Duration
}

// Solve builds the CP-SAT model for idx and returns the assembled roster plus
// diagnostics. It never returns an error for solver infeasibility: an
// infeasible or timed-out solve is non-fatal and yields an
// empty-but-well-formed roster instead.
func Solve(idx *shared.Index, params Params) (model.Roster, *Diagnostics, error) {
	builder := cpmodel.NewCpModelBuilder()

	assign := make(map[assignKey]cpmodel.BoolVar)
	eligibleBySlot := make([][]int, len(idx.Slots))

	for slotIdx, req := range idx.Requests {
		minGrade, hasDemand := req.MinGrade()
		if !hasDemand {
			continue // zero-demand slot: no variables, handled by the forced-zero constraint below
		}
		for empIdx, emp := range idx.Employees {
			if !emp.MeetsGrade(minGrade) {
				continue
			}
			if idx.IsOnLeave(emp.ID, req.Date) {
				continue
			}
			eligibleBySlot[slotIdx] = append(eligibleBySlot[slotIdx], empIdx)
			name := fmt.Sprintf("assign_e%d_s%d", empIdx, slotIdx)
			assign[assignKey{slotIdx, empIdx}] = builder.NewBoolVar().WithName(name)
		}
	}

	totalEligiblePairs := 0
	for _, v := range eligibleBySlot {
		totalEligiblePairs += len(v)
	}

	// Hard constraint #1: one shift per day per employee.
	slotsByEmployeeDate := make(map[[2]string][]cpmodel.BoolVar) // key: employeeID, date
	for slotIdx, req := range idx.Requests {
		for _, empIdx := range eligibleBySlot[slotIdx] {
			emp := idx.Employees[empIdx]
			key := [2]string{emp.ID, req.Date}
			slotsByEmployeeDate[key] = append(slotsByEmployeeDate[key], assign[assignKey{slotIdx, empIdx}])
		}
	}
	for _, vars := range slotsByEmployeeDate {
		if len(vars) > 1 {
			builder.AddAtMostOne(vars...)
		}
	}

	// Hard constraint #2: leave is enforced by omission above; the defensive pin
	// is implicit because no variable is ever created for an (e,d) pair in leave.

	understaffBySlotGrade := make(map[[2]int]cpmodel.IntVar) // key: slotIdx, grade
	var totalUnderstaffTerms []cpmodel.LinearArgument
	var totalDeviationTerms []cpmodel.LinearArgument

	for slotIdx, req := range idx.Requests {
		eligible := eligibleBySlot[slotIdx]
		total := req.TotalRequired()

		slotSum := cpmodel.NewLinearExpr()
		for _, empIdx := range eligible {
			slotSum.Add(assign[assignKey{slotIdx, empIdx}])
		}

		if total == 0 {
			// Hard constraint #4: zero-demand slots force sum = 0. No eligible
			// variables are created for such slots in the first place (no grade
			// row to derive minGrade from), so there is nothing to force here;
			// this branch exists for the pathological case of a request whose
			// rows are all present but sum to zero.
			builder.AddLessOrEqual(slotSum, cpmodel.NewConstant(0))
			continue
		}

		// Hard constraint #3: no over-staffing.
		builder.AddLessOrEqual(slotSum, cpmodel.NewConstant(int64(total)))

		// Soft: cumulative per-grade understaffing, descending grades.
		for _, grade := range req.DescendingGrades() {
			cumulative := req.CumulativeRequired(grade)
			coveringSum := cpmodel.NewLinearExpr()
			for _, empIdx := range eligible {
				if idx.Employees[empIdx].MeetsGrade(grade) {
					coveringSum.Add(assign[assignKey{slotIdx, empIdx}])
				}
			}
			understaff := builder.NewIntVar(0, int64(cumulative)).WithName(fmt.Sprintf("understaff_s%d_g%d", slotIdx, grade))
			understaffBySlotGrade[[2]int{slotIdx, grade}] = understaff

			lhs := cpmodel.NewLinearExpr()
			lhs.Add(coveringSum)
			lhs.Add(understaff)
			builder.AddGreaterOrEqual(lhs, cpmodel.NewConstant(int64(cumulative)))

			totalUnderstaffTerms = append(totalUnderstaffTerms, understaff)
		}
	}

	// Soft: pattern deviation, one boolean per (employee, request date).
	requestDateSet := make(map[string]bool, len(idx.RequestDates))
	for _, d := range idx.RequestDates {
		requestDateSet[d] = true
	}

	for empIdx := range idx.Employees {
		for _, date := range idx.RequestDates {
			dateIdx := idx.DateIndex[date]
			expected := idx.ExpectedShift(empIdx, dateIdx)

			var assignedOnDate []cpmodel.BoolVar
			var expectedAssigned []cpmodel.BoolVar
			var otherAssigned []cpmodel.BoolVar
			for slotIdx, req := range idx.Requests {
				if req.Date != date {
					continue
				}
				v, ok := assign[assignKey{slotIdx, empIdx}]
				if !ok {
					continue
				}
				assignedOnDate = append(assignedOnDate, v)
				if req.ShiftType == expected {
					expectedAssigned = append(expectedAssigned, v)
				} else {
					otherAssigned = append(otherAssigned, v)
				}
			}
			dev := builder.NewBoolVar().WithName(fmt.Sprintf("dev_e%d_d%d", empIdx, dateIdx))

			if expected == model.Off {
				// dev = OR over all assign[e,d,*,*]. An employee wholly
				// ineligible/on-leave that day has an empty list here, and
				// empty-OR is false: correctly no deviation on an Off day.
				addBoolEquivalentToOr(builder, dev, assignedOnDate)
			} else {
				expectedAssignedVar := orIndicator(builder, fmt.Sprintf("expAssigned_e%d_d%d", empIdx, dateIdx), expectedAssigned)
				otherAssignedVar := orIndicator(builder, fmt.Sprintf("otherAssigned_e%d_d%d", empIdx, dateIdx), otherAssigned)
				// dev <=> (NOT expectedAssigned OR otherAssigned)
				addBoolEquivalentToOr(builder, dev, []cpmodel.BoolVar{expectedAssignedVar.Not(), otherAssignedVar})
			}

			totalDeviationTerms = append(totalDeviationTerms, dev)
		}
	}

	objective := cpmodel.NewLinearExpr()
	for _, term := range totalUnderstaffTerms {
		objective.AddTerm(term, params.UnderstaffWeight)
	}
	for _, term := range totalDeviationTerms {
		objective.AddTerm(term, params.PatternWeight)
	}
	builder.Minimize(objective)

	cpModel, err := builder.Model()
	if err != nil {
		return nil, nil, fmt.Errorf("instantiate CP model: %w", err)
	}

	start := time.Now()
	response, err := solve(cpModel, params)
	elapsed := time.Since(start)
	if err != nil {
		return nil, nil, fmt.Errorf("solve CP model: %w", err)
	}

	diag := &Diagnostics{
		Status:            response.GetStatus().String(),
		ObjectiveValue:    response.GetObjectiveValue(),
		EligiblePairCount: totalEligiblePairs,
		WallTime:          elapsed,
	}

	roster := model.NewRoster(idx.RequestDates)
	if !accepted(response) {
		return roster, diag, nil // non-OPTIMAL/FEASIBLE yields the empty-but-well-formed structure
	}

	for slotIdx, req := range idx.Requests {
		if !requestDateSet[req.Date] {
			continue
		}
		slot := idx.Slots[slotIdx]
		// Walk employees in original input order, not sorted, so a slot's
		// assignment list is deterministic and stable across runs.
		for empIdx, emp := range idx.Employees {
			v, ok := assign[assignKey{slotIdx, empIdx}]
			if !ok {
				continue
			}
			if cpmodel.SolutionBooleanValue(response, v) {
				roster.Assign(slot, emp.ID)
			}
		}
	}

	for _, v := range understaffBySlotGrade {
		diag.TotalUnderstaff += cpmodel.SolutionIntegerValue(response, v)
	}
	for _, term := range totalDeviationTerms {
		if bv, ok := term.(cpmodel.BoolVar); ok && cpmodel.SolutionBooleanValue(response, bv) {
			diag.TotalDeviations++
		}
	}

	return roster, diag, nil
}

// orIndicator returns a boolean equal to the OR of lits, handling the empty
// case explicitly: OR of no variables is false, so an always-false literal
// is synthesized rather than leaving the indicator unconstrained.
func orIndicator(builder *cpmodel.CpModelBuilder, name string, lits []cpmodel.BoolVar) cpmodel.BoolVar {
	ind := builder.NewBoolVar().WithName(name)
	addBoolEquivalentToOr(builder, ind, lits)
	return ind
}

// addBoolEquivalentToOr posts the channeling constraints making `ind`
// logically equivalent to the OR of lits (OR of an empty slice pins ind to false).
func addBoolEquivalentToOr(builder *cpmodel.CpModelBuilder, ind cpmodel.BoolVar, lits []cpmodel.BoolVar) {
	if len(lits) == 0 {
		builder.AddBoolAnd(ind.Not())
		return
	}
	// ind => OR(lits)
	builder.AddBoolOr(lits...).OnlyEnforceIf(ind)
	// NOT ind => AND(NOT lits), i.e. every lit is false when ind is false
	for _, lit := range lits {
		builder.AddBoolAnd(lit.Not()).OnlyEnforceIf(ind.Not())
	}
}

func accepted(response *cmpb.CpSolverResponse) bool {
	status := response.GetStatus()
	return status == cmpb.CpSolverStatus_OPTIMAL || status == cmpb.CpSolverStatus_FEASIBLE
}
