package invariant

import (
	"testing"

	"github.com/shiftforge/rosterengine/pkg/model"
	"github.com/shiftforge/rosterengine/pkg/roster/shared"
)

func buildIndex(t *testing.T, employees []model.Employee, requests []model.Request, leave model.LeaveData) *shared.Index {
	t.Helper()
	return shared.BuildIndex(model.ModeIndividual, employees, requests, leave)
}

func TestCheckAllCleanRosterHasNoViolations(t *testing.T) {
	employees := []model.Employee{{ID: "A", ProficiencyGrade: 2}}
	requests := []model.Request{
		{Date: "2024-01-01", ShiftType: model.Morning, Location: model.East, RequiredProficiencies: map[int]int{1: 1}},
	}
	idx := buildIndex(t, employees, requests, nil)

	roster := model.NewRoster(idx.RequestDates)
	roster.Assign(model.Slot{Date: "2024-01-01", Shift: model.Morning, Location: model.East}, "A")

	if v := CheckAll(idx, roster); len(v) != 0 {
		t.Errorf("expected no violations, got %+v", v)
	}
}

func TestCheckNoDoubleBookingCatchesDuplicate(t *testing.T) {
	employees := []model.Employee{{ID: "A", ProficiencyGrade: 1}}
	requests := []model.Request{
		{Date: "2024-01-01", ShiftType: model.Morning, Location: model.East, RequiredProficiencies: map[int]int{1: 1}},
		{Date: "2024-01-01", ShiftType: model.Afternoon, Location: model.West, RequiredProficiencies: map[int]int{1: 1}},
	}
	idx := buildIndex(t, employees, requests, nil)

	roster := model.NewRoster(idx.RequestDates)
	roster.Assign(model.Slot{Date: "2024-01-01", Shift: model.Morning, Location: model.East}, "A")
	roster.Assign(model.Slot{Date: "2024-01-01", Shift: model.Afternoon, Location: model.West}, "A")

	v := checkNoDoubleBooking(idx, roster)
	if len(v) != 1 || v[0].EmployeeID != "A" {
		t.Errorf("expected one double-booking violation for A, got %+v", v)
	}
}

func TestCheckLeaveHonoredCatchesAssignmentOnLeave(t *testing.T) {
	employees := []model.Employee{{ID: "A", ProficiencyGrade: 1}}
	requests := []model.Request{
		{Date: "2024-01-01", ShiftType: model.Morning, Location: model.East, RequiredProficiencies: map[int]int{1: 1}},
	}
	leave := model.NewLeaveData(map[string][]string{"A": {"2024-01-01"}})
	idx := buildIndex(t, employees, requests, leave)

	roster := model.NewRoster(idx.RequestDates)
	roster.Assign(model.Slot{Date: "2024-01-01", Shift: model.Morning, Location: model.East}, "A")

	v := checkLeaveHonored(idx, roster)
	if len(v) != 1 {
		t.Errorf("expected one leave-honored violation, got %+v", v)
	}
}

func TestCheckNoOverstaffCatchesExcess(t *testing.T) {
	employees := []model.Employee{{ID: "A", ProficiencyGrade: 1}, {ID: "B", ProficiencyGrade: 1}}
	requests := []model.Request{
		{Date: "2024-01-01", ShiftType: model.Morning, Location: model.East, RequiredProficiencies: map[int]int{1: 1}},
	}
	idx := buildIndex(t, employees, requests, nil)

	roster := model.NewRoster(idx.RequestDates)
	slot := model.Slot{Date: "2024-01-01", Shift: model.Morning, Location: model.East}
	roster.Assign(slot, "A")
	roster.Assign(slot, "B")

	v := checkNoOverstaff(idx, roster)
	if len(v) != 1 {
		t.Errorf("expected one no-overstaff violation, got %+v", v)
	}
}

func TestCheckGradeCoverWarnsOnShortfall(t *testing.T) {
	employees := []model.Employee{{ID: "A", ProficiencyGrade: 1}}
	requests := []model.Request{
		{Date: "2024-01-01", ShiftType: model.Morning, Location: model.East, RequiredProficiencies: map[int]int{1: 1, 3: 1}},
	}
	idx := buildIndex(t, employees, requests, nil)

	roster := model.NewRoster(idx.RequestDates)
	roster.Assign(model.Slot{Date: "2024-01-01", Shift: model.Morning, Location: model.East}, "A")

	v := checkGradeCover(idx, roster)
	if len(v) == 0 {
		t.Error("expected a grade-cover shortfall warning for the uncovered grade-3 requirement")
	}
	for _, violation := range v {
		if violation.Severity != SeverityWarning {
			t.Errorf("grade_cover violations should be warnings, got %s", violation.Severity)
		}
	}
}

func TestCheckShapeCatchesMissingEntries(t *testing.T) {
	employees := []model.Employee{{ID: "A", ProficiencyGrade: 1}}
	requests := []model.Request{
		{Date: "2024-01-01", ShiftType: model.Morning, Location: model.East, RequiredProficiencies: map[int]int{1: 1}},
	}
	idx := buildIndex(t, employees, requests, nil)

	roster := model.NewRoster(idx.RequestDates)
	delete(roster[idx.RequestDates[0]][model.East], model.Night)

	v := checkShape(idx, roster)
	if len(v) != 1 {
		t.Errorf("expected one shape violation for the deleted shift entry, got %+v", v)
	}
}
