package shared

import (
	"testing"

	"github.com/shiftforge/rosterengine/pkg/model"
)

func offsetPtr(i int) *int { return &i }

func buildIndex(t *testing.T, employees []model.Employee, requests []model.Request, leave model.LeaveData) *Index {
	t.Helper()
	return BuildIndex(model.ModeIndividual, employees, requests, leave)
}

func TestExpectedShiftFollowsOffset(t *testing.T) {
	employees := []model.Employee{{ID: "A", Offset: offsetPtr(0)}}
	requests := []model.Request{{Date: "2024-01-01", ShiftType: model.Morning, Location: model.East, RequiredProficiencies: map[int]int{1: 1}}}
	idx := buildIndex(t, employees, requests, nil)

	dateIdx := idx.DateIndex["2024-01-01"]
	if got := idx.ExpectedShift(0, dateIdx); got != model.Morning {
		t.Errorf("ExpectedShift(0, %d) = %s, want Morning", dateIdx, got)
	}
}

func TestEmployeeOffsetFallsBackToInputOrder(t *testing.T) {
	employees := []model.Employee{{ID: "A"}, {ID: "B"}}
	idx := buildIndex(t, employees, nil, nil)

	if got := idx.EmployeeOffset(0); got != 0 {
		t.Errorf("EmployeeOffset(0) = %d, want 0", got)
	}
	if got := idx.EmployeeOffset(1); got != 1 {
		t.Errorf("EmployeeOffset(1) = %d, want 1", got)
	}
}

// TestResponsibleTeamMorningDayZero checks that with offsets 0..8 across nine
// teams, the Morning candidates on pattern day 0 are teams {1, 2}; sorted
// ascending, East maps to the lower id.
func TestResponsibleTeamMorningDayZero(t *testing.T) {
	var employees []model.Employee
	for t9 := 1; t9 <= 9; t9++ {
		team := t9
		employees = append(employees, model.Employee{ID: "e", Offset: offsetPtr(t9 - 1), Team: &team})
	}
	requests := []model.Request{{Date: "2024-01-01", ShiftType: model.Morning, Location: model.East, RequiredProficiencies: map[int]int{1: 1}}}
	idx := buildIndex(t, employees, requests, nil)

	east, dayInPattern, ok := idx.ResponsibleTeam("2024-01-01", model.Morning, model.East)
	if !ok {
		t.Fatal("ResponsibleTeam reported not ok")
	}
	if dayInPattern != 0 {
		t.Errorf("dayInPattern = %d, want 0", dayInPattern)
	}
	if east != 1 {
		t.Errorf("East responsible team = %d, want 1", east)
	}

	west, _, ok := idx.ResponsibleTeam("2024-01-01", model.Morning, model.West)
	if !ok {
		t.Fatal("ResponsibleTeam (West) reported not ok")
	}
	if west != 2 {
		t.Errorf("West responsible team = %d, want 2", west)
	}
}

func TestIsOnLeave(t *testing.T) {
	leave := model.NewLeaveData(map[string][]string{"A": {"2024-01-01"}})
	idx := buildIndex(t, []model.Employee{{ID: "A"}}, nil, leave)

	if !idx.IsOnLeave("A", "2024-01-01") {
		t.Error("expected A on leave on 2024-01-01")
	}
	if idx.IsOnLeave("A", "2024-01-02") {
		t.Error("did not expect A on leave on 2024-01-02")
	}
}
