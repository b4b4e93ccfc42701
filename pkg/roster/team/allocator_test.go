package team

import (
	"testing"

	"github.com/shiftforge/rosterengine/pkg/model"
	"github.com/shiftforge/rosterengine/pkg/roster/shared"
)

func teamPtr(i int) *int { return &i }
func offsetPtr(i int) *int { return &i }

// TestAllocateOnlyPullsResponsibleTeam sets up two teams; team 1 is the
// East-responsible team for pattern day 0's Morning slot (team ids, not
// employee offsets, decide this), so only team 1's members may be assigned.
func TestAllocateOnlyPullsResponsibleTeam(t *testing.T) {
	employees := []model.Employee{
		{ID: "t1-a", Offset: offsetPtr(0), Team: teamPtr(1), ProficiencyGrade: 1},
		{ID: "t2-a", Offset: offsetPtr(1), Team: teamPtr(2), ProficiencyGrade: 1},
	}
	requests := []model.Request{
		{Date: "2024-01-01", ShiftType: model.Morning, Location: model.East, RequiredProficiencies: map[int]int{1: 1}},
	}
	idx := shared.BuildIndex(model.ModeTeam, employees, requests, nil)

	roster, err := Allocate(idx)
	if err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}

	slot := model.Slot{Date: "2024-01-01", Shift: model.Morning, Location: model.East}
	assigned := roster.At(slot)
	if len(assigned) != 1 || assigned[0] != "t1-a" {
		t.Errorf("assigned = %v, want [t1-a]", assigned)
	}
}

// TestAllocateUnderstaffedRecordsFailure checks that leave removing the only
// eligible member produces an understaffing failure document rather than a
// partial roster.
func TestAllocateUnderstaffedRecordsFailure(t *testing.T) {
	employees := []model.Employee{
		{ID: "A", Offset: offsetPtr(0), Team: teamPtr(1), ProficiencyGrade: 1},
	}
	requests := []model.Request{
		{Date: "2024-01-01", ShiftType: model.Morning, Location: model.East, RequiredProficiencies: map[int]int{1: 1}},
	}
	leave := model.NewLeaveData(map[string][]string{"A": {"2024-01-01"}})
	idx := shared.BuildIndex(model.ModeTeam, employees, requests, leave)

	_, err := Allocate(idx)
	if err == nil {
		t.Fatal("expected an understaffing error")
	}
	doc, ok := AsFailureDocument(err)
	if !ok {
		t.Fatalf("expected a failure document, got %v", err)
	}
	if len(doc.Details) == 0 {
		t.Error("expected at least one validation detail")
	}
}

// TestAllocateGradeTiersAssignExclusively checks that the higher-grade need
// is filled first and consumes the senior employee, leaving only the junior
// available for the lower-grade need.
func TestAllocateGradeTiersAssignExclusively(t *testing.T) {
	employees := []model.Employee{
		{ID: "senior", Offset: offsetPtr(0), Team: teamPtr(1), ProficiencyGrade: 3},
		{ID: "junior", Offset: offsetPtr(0), Team: teamPtr(1), ProficiencyGrade: 1},
	}
	requests := []model.Request{
		{Date: "2024-01-01", ShiftType: model.Morning, Location: model.East, RequiredProficiencies: map[int]int{1: 1, 3: 1}},
	}
	idx := shared.BuildIndex(model.ModeTeam, employees, requests, nil)

	roster, err := Allocate(idx)
	if err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}
	slot := model.Slot{Date: "2024-01-01", Shift: model.Morning, Location: model.East}
	assigned := roster.At(slot)
	if len(assigned) != 2 {
		t.Fatalf("assigned = %v, want 2 employees", assigned)
	}

	// a third, lower grade2 requirement with only the two above would
	// exhaust the pool and report understaffing
	requests[0].RequiredProficiencies[2] = 1
	idx2 := shared.BuildIndex(model.ModeTeam, employees, requests, nil)
	if _, err := Allocate(idx2); err == nil {
		t.Error("expected understaffing once the pool is exhausted")
	}
}
