package shared

import (
	"sort"

	"github.com/shiftforge/rosterengine/pkg/model"
)

// ExpectedShift implements C2's expected_shift(employee_idx, date_idx): the
// pattern slot that employee is nominally supposed to work on that date,
// given their offset into the 9-day cycle.
func (idx *Index) ExpectedShift(employeeIdx, dateIdx int) model.Shift {
	offset := idx.EmployeeOffset(employeeIdx)
	return model.Pattern.At(dateIdx + offset)
}

// dayIndex returns the number of days between FirstDate and date. Both dates
// are drawn from AllDates, so this never needs true calendar arithmetic beyond
// what ParseDate already gives us.
func (idx *Index) dayIndex(date string) (int, bool) {
	if idx.FirstDate == "" {
		return 0, false
	}
	first, err1 := model.ParseDate(idx.FirstDate)
	d, err2 := model.ParseDate(date)
	if err1 != nil || err2 != nil {
		return 0, false
	}
	days := int(d.Sub(first).Hours() / 24)
	return days, true
}

// ResponsibleTeam implements C2's responsible_team(date, shift, location) for
// team mode: exactly two teams work any given shift on a given day (a 9-day
// pattern rotated across 9 teams each offset by one day), sorted ascending
// and mapped East = candidates[0], West = candidates[1].
//
// ok is false when the required candidate index is missing — the caller must
// then record a validation error and skip the slot.
func (idx *Index) ResponsibleTeam(date string, shift model.Shift, loc model.Location) (team int, dayInPattern int, ok bool) {
	dayIdx, valid := idx.dayIndex(date)
	if !valid {
		return 0, 0, false
	}
	dayInPattern = model.Mod9(dayIdx)

	var candidates []int
	for t := 1; t <= 9; t++ {
		teamOffset := t - 1
		if model.Pattern.At(dayInPattern+teamOffset) == shift {
			candidates = append(candidates, t)
		}
	}
	sort.Ints(candidates)

	var want int
	switch loc {
	case model.East:
		want = 0
	case model.West:
		want = 1
	default:
		return 0, dayInPattern, false
	}
	if want >= len(candidates) {
		return 0, dayInPattern, false
	}
	return candidates[want], dayInPattern, true
}
