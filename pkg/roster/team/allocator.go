// Package team implements the deterministic greedy allocation scheduling mode
// (C4): pattern-to-team mapping via the shared pattern oracle, top-down
// grade-greedy assignment, and validation-error accumulation.
package team

import (
	"fmt"
	"sort"

	"github.com/shiftforge/rosterengine/pkg/model"
	"github.com/shiftforge/rosterengine/pkg/roster/shared"
	"github.com/shiftforge/rosterengine/pkg/rosterrors"
)

// member is one employee available for a given date, carried alongside its
// grade so the pool can be sorted and picked from without further lookups.
type member struct {
	employeeID string
	grade      int
}

// Allocate implements the deterministic greedy team-mode allocation: every
// employee must have a team in [1,9] — the caller (the dispatcher) already
// rejected missing-team input via C1's MissingTeam check, so this function
// assumes the precondition holds.
func Allocate(idx *shared.Index) (model.Roster, error) {
	roster := model.NewRoster(idx.RequestDates)
	var verrs rosterrors.ValidationErrors

	for _, date := range idx.RequestDates {
		available := availableByTeam(idx, date)

		for slotIdx, req := range idx.Requests {
			if req.Date != date {
				continue
			}
			slot := idx.Slots[slotIdx]

			responsibleTeam, dayInPattern, ok := idx.ResponsibleTeam(date, req.ShiftType, req.Location)
			if !ok {
				verrs.Add("no responsible team for %s (day_in_pattern=%d)", slot, dayInPattern)
				continue
			}

			pool := append([]member(nil), available[responsibleTeam]...)
			sort.Slice(pool, func(i, j int) bool { return pool[i].grade > pool[j].grade })

			for _, grade := range req.DescendingGrades() {
				needed := req.RequiredProficiencies[grade]
				for n := 0; n < needed; n++ {
					pickIdx := -1
					for i, m := range pool {
						if m.grade >= grade {
							pickIdx = i
							break
						}
					}
					if pickIdx == -1 {
						verrs.Add("team %d short %d at grade>=%d for %s (available grades: %s)",
							responsibleTeam, needed-n, grade, slot, gradeHistogram(available[responsibleTeam]))
						break
					}
					picked := pool[pickIdx]
					pool = append(pool[:pickIdx], pool[pickIdx+1:]...)
					roster.Assign(slot, picked.employeeID)
				}
			}
		}
	}

	if verrs.HasErrors() {
		return nil, &understaffedError{doc: verrs.ToFailureDocument()}
	}
	return roster, nil
}

// understaffedError wraps the failure document so callers can recover it
// with errors.As while still satisfying the error interface.
type understaffedError struct {
	doc *rosterrors.FailureDocument
}

func (e *understaffedError) Error() string { return e.doc.Error }

// FailureDocument returns the understaffing failure response body.
func (e *understaffedError) FailureDocument() *rosterrors.FailureDocument { return e.doc }

// AsFailureDocument extracts the failure document from an error returned by
// Allocate, if any.
func AsFailureDocument(err error) (*rosterrors.FailureDocument, bool) {
	ue, ok := err.(*understaffedError)
	if !ok {
		return nil, false
	}
	return ue.doc, true
}

// availableByTeam precomputes, for one date, the set of employees of each
// team who are not on leave that date — done once per date rather than once
// per slot, since every slot on the date can reuse it.
func availableByTeam(idx *shared.Index, date string) map[int][]member {
	byTeam := make(map[int][]member)
	for _, emp := range idx.Employees {
		if !emp.HasTeam() {
			continue
		}
		if idx.IsOnLeave(emp.ID, date) {
			continue
		}
		byTeam[*emp.Team] = append(byTeam[*emp.Team], member{employeeID: emp.ID, grade: emp.ProficiencyGrade})
	}
	return byTeam
}

// gradeHistogram renders a team's available-grade counts for the
// Understaffed error message, e.g. "{2: 1, 0: 1}".
func gradeHistogram(pool []member) string {
	counts := make(map[int]int)
	for _, m := range pool {
		counts[m.grade]++
	}
	grades := make([]int, 0, len(counts))
	for g := range counts {
		grades = append(grades, g)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(grades)))

	out := "{"
	for i, g := range grades {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%d: %d", g, counts[g])
	}
	out += "}"
	return out
}
