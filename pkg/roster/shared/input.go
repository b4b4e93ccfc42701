// Package shared holds the data shared by both scheduling modes: the derived
// indexes (C1) and the pattern oracle (C2), plus the input normalizer that
// produces them. Neither individual nor team mode owns these — both read them.
package shared

import (
	"strconv"

	"github.com/shiftforge/rosterengine/pkg/model"
	"github.com/shiftforge/rosterengine/pkg/rosterrors"
)

// RawDocument 是输入文档的 JSON 映射：员工列表、需求列表、请假数据与可选的调度模式
type RawDocument struct {
	SchedulingMode string               `json:"schedulingMode"`
	Employees      []RawEmployee        `json:"employees"`
	Requests       []RawRequest         `json:"requests"`
	LeaveData      map[string][]string  `json:"leaveData"`
}

// RawEmployee 是输入文档中一条员工记录
type RawEmployee struct {
	ID               string `json:"id"`
	ProficiencyGrade int    `json:"proficiency_grade"`
	Offset           *int   `json:"offset,omitempty"`
	Team             *int   `json:"team,omitempty"`
}

// RawRequest 是输入文档中一条需求记录；required_proficiencies 的键在 JSON 里是字符串形式的等级
type RawRequest struct {
	Date                  string         `json:"date"`
	ShiftType             string         `json:"shiftType"`
	Location              string         `json:"location"`
	RequiredProficiencies map[string]int `json:"required_proficiencies"`
}

// BuildFromDocument normalizes the raw input document and builds the derived
// indexes in one step — the single entry point C1 exposes to the dispatcher.
func BuildFromDocument(doc *RawDocument) (*Index, error) {
	mode, employees, requests, leave, err := normalize(doc)
	if err != nil {
		return nil, err
	}
	return BuildIndex(mode, employees, requests, leave), nil
}

// normalize 把原始文档转换为带校验的领域模型列表，承担 C1 的解析/校验职责
func normalize(doc *RawDocument) (mode model.Mode, employees []model.Employee, requests []model.Request, leave model.LeaveData, err error) {
	mode = model.ModeIndividual
	if doc.SchedulingMode != "" {
		mode = model.Mode(doc.SchedulingMode)
		if !mode.Valid() {
			return "", nil, nil, nil, rosterrors.InvalidInput("unknown schedulingMode " + doc.SchedulingMode)
		}
	}

	employees = make([]model.Employee, 0, len(doc.Employees))
	for _, re := range doc.Employees {
		emp := model.Employee{
			ID:               re.ID,
			ProficiencyGrade: re.ProficiencyGrade,
			Offset:           re.Offset,
			Team:             re.Team,
		}
		if mode == model.ModeTeam && !emp.HasTeam() {
			return "", nil, nil, nil, rosterrors.MissingTeam(emp.ID)
		}
		employees = append(employees, emp)
	}

	requests = make([]model.Request, 0, len(doc.Requests))
	for _, rr := range doc.Requests {
		shift, shiftErr := model.ParseShift(rr.ShiftType)
		if shiftErr != nil {
			return "", nil, nil, nil, rosterrors.InvalidInput(shiftErr.Error())
		}
		loc, locErr := model.ParseLocation(rr.Location)
		if locErr != nil {
			return "", nil, nil, nil, rosterrors.InvalidInput(locErr.Error())
		}
		if _, dateErr := model.ParseDate(rr.Date); dateErr != nil {
			return "", nil, nil, nil, rosterrors.InvalidInput(dateErr.Error())
		}

		required := make(map[int]int, len(rr.RequiredProficiencies))
		for gradeStr, count := range rr.RequiredProficiencies {
			grade, convErr := strconv.Atoi(gradeStr)
			if convErr != nil {
				return "", nil, nil, nil, rosterrors.InvalidInput("required_proficiencies key " + gradeStr + " is not an integer grade")
			}
			required[grade] = count
		}

		requests = append(requests, model.Request{
			Date:                  rr.Date,
			ShiftType:             shift,
			Location:              loc,
			RequiredProficiencies: required,
		})
	}

	leave = model.NewLeaveData(doc.LeaveData)
	for empID, dates := range leave {
		for d := range dates {
			if _, dateErr := model.ParseDate(d); dateErr != nil {
				return "", nil, nil, nil, rosterrors.InvalidInput("leaveData[" + empID + "]: " + dateErr.Error())
			}
		}
	}

	return mode, employees, requests, leave, nil
}
