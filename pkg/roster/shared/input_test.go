package shared

import (
	"testing"

	"github.com/shiftforge/rosterengine/pkg/rosterrors"
)

func TestBuildFromDocumentDefaultsToIndividualMode(t *testing.T) {
	doc := &RawDocument{
		Employees: []RawEmployee{{ID: "A", ProficiencyGrade: 1}},
		Requests: []RawRequest{
			{Date: "2024-01-01", ShiftType: "Morning", Location: "East", RequiredProficiencies: map[string]int{"1": 1}},
		},
	}
	idx, err := BuildFromDocument(doc)
	if err != nil {
		t.Fatalf("BuildFromDocument returned error: %v", err)
	}
	if idx.Mode != "individual" {
		t.Errorf("Mode = %s, want individual", idx.Mode)
	}
	if len(idx.Employees) != 1 || len(idx.Requests) != 1 {
		t.Errorf("unexpected index shape: %+v", idx)
	}
}

func TestBuildFromDocumentTeamModeRequiresTeam(t *testing.T) {
	doc := &RawDocument{
		SchedulingMode: "team",
		Employees:      []RawEmployee{{ID: "A", ProficiencyGrade: 1}},
	}
	_, err := BuildFromDocument(doc)
	if !rosterrors.Is(err, rosterrors.CodeMissingTeam) {
		t.Errorf("expected CodeMissingTeam error, got %v", err)
	}
}

func TestBuildFromDocumentRejectsUnknownShift(t *testing.T) {
	doc := &RawDocument{
		Requests: []RawRequest{
			{Date: "2024-01-01", ShiftType: "Evening", Location: "East", RequiredProficiencies: map[string]int{"1": 1}},
		},
	}
	_, err := BuildFromDocument(doc)
	if !rosterrors.Is(err, rosterrors.CodeInvalidInput) {
		t.Errorf("expected CodeInvalidInput error, got %v", err)
	}
}

func TestBuildFromDocumentRejectsNonIntegerGradeKey(t *testing.T) {
	doc := &RawDocument{
		Requests: []RawRequest{
			{Date: "2024-01-01", ShiftType: "Morning", Location: "East", RequiredProficiencies: map[string]int{"senior": 1}},
		},
	}
	_, err := BuildFromDocument(doc)
	if !rosterrors.Is(err, rosterrors.CodeInvalidInput) {
		t.Errorf("expected CodeInvalidInput error, got %v", err)
	}
}
