package model

import "testing"

func TestNewRosterPrePopulatesShape(t *testing.T) {
	dates := []string{"2024-01-01", "2024-01-02"}
	r := NewRoster(dates)

	for _, d := range dates {
		for _, loc := range Locations {
			for _, sh := range WorkingShifts {
				if list := r[d][loc][sh]; list == nil || len(list) != 0 {
					t.Errorf("expected empty pre-populated list at %s/%s/%s, got %v", d, loc, sh, list)
				}
			}
		}
	}
}

func TestRosterAssignAndAt(t *testing.T) {
	r := NewRoster([]string{"2024-01-01"})
	slot := Slot{Date: "2024-01-01", Shift: Morning, Location: East}

	r.Assign(slot, "alice")
	r.Assign(slot, "bob")

	got := r.At(slot)
	if len(got) != 2 || got[0] != "alice" || got[1] != "bob" {
		t.Errorf("At(%v) = %v, want [alice bob]", slot, got)
	}
}

func TestRequestCumulativeRequired(t *testing.T) {
	req := Request{RequiredProficiencies: map[int]int{1: 2, 3: 1}}

	if got := req.TotalRequired(); got != 3 {
		t.Errorf("TotalRequired() = %d, want 3", got)
	}
	if got := req.CumulativeRequired(1); got != 3 {
		t.Errorf("CumulativeRequired(1) = %d, want 3", got)
	}
	if got := req.CumulativeRequired(3); got != 1 {
		t.Errorf("CumulativeRequired(3) = %d, want 1", got)
	}
	if got := req.CumulativeRequired(2); got != 1 {
		t.Errorf("CumulativeRequired(2) = %d, want 1", got)
	}

	grades := req.DescendingGrades()
	if len(grades) != 2 || grades[0] != 3 || grades[1] != 1 {
		t.Errorf("DescendingGrades() = %v, want [3 1]", grades)
	}
}

func TestRequestMinGradeEmpty(t *testing.T) {
	req := Request{}
	if _, ok := req.MinGrade(); ok {
		t.Error("MinGrade() on an empty request should report ok=false")
	}
}

func TestLeaveData(t *testing.T) {
	ld := NewLeaveData(map[string][]string{"A": {"2024-01-01", "2024-01-02"}})
	if !ld.IsOnLeave("A", "2024-01-01") {
		t.Error("expected A on leave on 2024-01-01")
	}
	if ld.IsOnLeave("A", "2024-01-03") {
		t.Error("did not expect A on leave on 2024-01-03")
	}
	if ld.IsOnLeave("B", "2024-01-01") {
		t.Error("did not expect unknown employee B to be on leave")
	}
}
