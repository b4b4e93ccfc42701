// Package diagnostics computes the per-slot and per-employee facts that go
// on the logging channel alongside a finished roster — never on the result
// channel, which carries only the roster JSON itself.
package diagnostics

import (
	"sort"

	"github.com/shiftforge/rosterengine/pkg/model"
	"github.com/shiftforge/rosterengine/pkg/roster/shared"
)

// SlotFill is the fill rate for one request slot.
type SlotFill struct {
	Slot      model.Slot `json:"slot"`
	Required  int        `json:"required"`
	Assigned  int        `json:"assigned"`
	FillRate  float64    `json:"fill_rate"` // 100 when Required is 0
}

// GradeShortfall is the per-slot, per-grade understaffing total.
type GradeShortfall struct {
	Slot     model.Slot `json:"slot"`
	Grade    int        `json:"grade"`
	Required int        `json:"cumulative_required"`
	Covering int        `json:"covering"`
	Shortfall int       `json:"shortfall"`
}

// EmployeeDeviation counts how many request dates an employee's assignment
// differed from their expected pattern shift.
type EmployeeDeviation struct {
	EmployeeID string `json:"employee_id"`
	Deviations int    `json:"deviations"`
}

// Report bundles every diagnostic view computed from a finished roster.
type Report struct {
	SlotFills          []SlotFill          `json:"slot_fills"`
	OverallFillRate     float64             `json:"overall_fill_rate"`
	GradeShortfalls    []GradeShortfall    `json:"grade_shortfalls"`
	EmployeeDeviations []EmployeeDeviation `json:"employee_deviations"`
}

// Compute derives a Report for roster using idx's request/employee/pattern
// data. It works for both modes: team mode will typically show zero
// shortfalls since Allocate fails the whole run rather than leaving gaps.
func Compute(idx *shared.Index, roster model.Roster) *Report {
	report := &Report{}

	employeeGrade := make(map[string]int, len(idx.Employees))
	for _, e := range idx.Employees {
		employeeGrade[e.ID] = e.ProficiencyGrade
	}

	var totalRequired, totalAssigned int
	for slotIdx, req := range idx.Requests {
		slot := idx.Slots[slotIdx]
		assigned := roster[slot.Date][slot.Location][slot.Shift]
		required := req.TotalRequired()

		fillRate := 100.0
		if required > 0 {
			fillRate = float64(len(assigned)) / float64(required) * 100
		}
		report.SlotFills = append(report.SlotFills, SlotFill{
			Slot:     slot,
			Required: required,
			Assigned: len(assigned),
			FillRate: fillRate,
		})
		totalRequired += required
		totalAssigned += min(len(assigned), required)

		for _, grade := range req.DescendingGrades() {
			cumReq := req.CumulativeRequired(grade)
			covering := 0
			for _, empID := range assigned {
				if employeeGrade[empID] >= grade {
					covering++
				}
			}
			if covering < cumReq {
				report.GradeShortfalls = append(report.GradeShortfalls, GradeShortfall{
					Slot: slot, Grade: grade, Required: cumReq, Covering: covering, Shortfall: cumReq - covering,
				})
			}
		}
	}

	if totalRequired > 0 {
		report.OverallFillRate = float64(totalAssigned) / float64(totalRequired) * 100
	} else {
		report.OverallFillRate = 100
	}

	deviationCounts := make(map[string]int, len(idx.Employees))
	for empIdx, emp := range idx.Employees {
		for _, date := range idx.RequestDates {
			dateIdx := idx.DateIndex[date]
			expected := idx.ExpectedShift(empIdx, dateIdx)
			assignedShift, isAssigned := assignedShiftOnDate(idx, roster, emp.ID, date)
			if expected == model.Off {
				if isAssigned {
					deviationCounts[emp.ID]++
				}
				continue
			}
			if !isAssigned || assignedShift != expected {
				deviationCounts[emp.ID]++
			}
		}
	}
	for empID, count := range deviationCounts {
		if count > 0 {
			report.EmployeeDeviations = append(report.EmployeeDeviations, EmployeeDeviation{EmployeeID: empID, Deviations: count})
		}
	}
	sort.Slice(report.EmployeeDeviations, func(i, j int) bool {
		return report.EmployeeDeviations[i].EmployeeID < report.EmployeeDeviations[j].EmployeeID
	})

	return report
}

func assignedShiftOnDate(idx *shared.Index, roster model.Roster, employeeID, date string) (model.Shift, bool) {
	for _, loc := range model.Locations {
		for _, sh := range model.WorkingShifts {
			for _, id := range roster[date][loc][sh] {
				if id == employeeID {
					return sh, true
				}
			}
		}
	}
	return "", false
}
