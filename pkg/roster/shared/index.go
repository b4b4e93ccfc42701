package shared

import (
	"sort"

	"github.com/shiftforge/rosterengine/pkg/model"
)

// Index holds every derived structure C3/C4/C5 need so neither mode has to
// re-derive dates, positions or slot identities from the raw request list.
type Index struct {
	Mode      model.Mode
	Employees []model.Employee
	// EmployeeIndex maps an employee id to its position in the original input order.
	EmployeeIndex map[string]int
	Requests      []model.Request
	// Slots mirrors Requests one-to-one: the slot set is exactly the request set.
	Slots []model.Slot
	Leave model.LeaveData

	// AllDates is the sorted union of request dates and every date mentioned in leave.
	AllDates []string
	// DateIndex maps a date string to its position in AllDates.
	DateIndex map[string]int
	// RequestDates is the sorted, de-duplicated subset of AllDates that actually carries demand.
	RequestDates []string
	// FirstDate is AllDates[0]; the pattern oracle's day_index is computed relative to it.
	FirstDate string
}

// BuildIndex implements C1: it derives every lookup structure the rest of the
// engine needs from the normalized employee/request/leave lists. It performs
// no further validation — normalize already rejected malformed shapes.
func BuildIndex(mode model.Mode, employees []model.Employee, requests []model.Request, leave model.LeaveData) *Index {
	idx := &Index{
		Mode:          mode,
		Employees:     employees,
		EmployeeIndex: make(map[string]int, len(employees)),
		Requests:      requests,
		Slots:         make([]model.Slot, len(requests)),
		Leave:         leave,
	}

	for i, e := range employees {
		idx.EmployeeIndex[e.ID] = i
	}

	dateSet := make(map[string]bool)
	requestDateSet := make(map[string]bool)
	for i, r := range requests {
		idx.Slots[i] = model.Slot{Date: r.Date, Shift: r.ShiftType, Location: r.Location}
		dateSet[r.Date] = true
		requestDateSet[r.Date] = true
	}
	for _, dates := range leave {
		for d := range dates {
			dateSet[d] = true
		}
	}

	idx.AllDates = sortedKeys(dateSet)
	idx.RequestDates = sortedKeys(requestDateSet)
	idx.DateIndex = make(map[string]int, len(idx.AllDates))
	for i, d := range idx.AllDates {
		idx.DateIndex[d] = i
	}
	if len(idx.AllDates) > 0 {
		idx.FirstDate = idx.AllDates[0]
	}

	return idx
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EmployeeOffset returns the employee's phase into the 9-day pattern: the
// supplied offset reduced mod 9, or the employee's input-order position mod 9
// when no offset was given. The fallback is load-bearing — it defines pattern
// placement whenever offsets are absent.
func (idx *Index) EmployeeOffset(employeeIdx int) int {
	emp := idx.Employees[employeeIdx]
	if emp.HasOffset() {
		return model.Mod9(*emp.Offset)
	}
	return model.Mod9(employeeIdx)
}

// IsOnLeave reports whether the given employee is on leave on the given date.
func (idx *Index) IsOnLeave(employeeID, date string) bool {
	return idx.Leave.IsOnLeave(employeeID, date)
}
