// Package model 定义排班引擎的核心数据模型
package model

import (
	"fmt"
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate 按照输入约定的 YYYY-MM-DD 解析日期
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate 将日期格式化回 YYYY-MM-DD，roster 的键与输出一律使用该格式
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Request 是一条需求记录：某个 slot 需要按等级分层的人数
type Request struct {
	Date                  string      `json:"date"`
	ShiftType             Shift       `json:"shiftType"`
	Location              Location    `json:"location"`
	RequiredProficiencies map[int]int `json:"required_proficiencies"`
}

// TotalRequired 返回该请求各等级人数之和，即 slot 的总需求上限
func (r *Request) TotalRequired() int {
	total := 0
	for _, c := range r.RequiredProficiencies {
		total += c
	}
	return total
}

// MinGrade 返回需求中出现的最小等级；没有需求行时返回 ok=false
func (r *Request) MinGrade() (grade int, ok bool) {
	first := true
	for g := range r.RequiredProficiencies {
		if first || g < grade {
			grade = g
			first = false
		}
	}
	return grade, !first
}

// DescendingGrades 返回需求中出现的等级，按降序排列
func (r *Request) DescendingGrades() []int {
	grades := make([]int, 0, len(r.RequiredProficiencies))
	for g := range r.RequiredProficiencies {
		grades = append(grades, g)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(grades)))
	return grades
}

// CumulativeRequired 返回等级 >= g 的累计需求人数 C_g
func (r *Request) CumulativeRequired(g int) int {
	total := 0
	for grade, count := range r.RequiredProficiencies {
		if grade >= g {
			total += count
		}
	}
	return total
}

// Slot 是请求对应的三元组标识：(date, shift, location)
type Slot struct {
	Date     string
	Shift    Shift
	Location Location
}

// String 供日志与校验错误使用的简短表示
func (s Slot) String() string {
	return fmt.Sprintf("%s/%s/%s", s.Date, s.Location, s.Shift)
}

// LeaveData 是 employee_id -> 请假日期集合
type LeaveData map[string]map[string]bool

// NewLeaveData 将原始的 employee_id -> []date 转换为便于查询的集合形式
func NewLeaveData(raw map[string][]string) LeaveData {
	ld := make(LeaveData, len(raw))
	for empID, dates := range raw {
		set := make(map[string]bool, len(dates))
		for _, d := range dates {
			set[d] = true
		}
		ld[empID] = set
	}
	return ld
}

// IsOnLeave 判断员工在给定日期是否请假
func (ld LeaveData) IsOnLeave(employeeID, date string) bool {
	dates, ok := ld[employeeID]
	if !ok {
		return false
	}
	return dates[date]
}

// Roster 是最终输出结构：date -> location -> shiftName -> employee ids
type Roster map[string]map[Location]map[Shift][]string

// NewRoster 为每个请求日期、每个地点、每个班次预先建立空列表，保证输出结构完整而非只含有已分配的 slot
func NewRoster(requestDates []string) Roster {
	r := make(Roster, len(requestDates))
	for _, date := range requestDates {
		byLocation := make(map[Location]map[Shift][]string, len(Locations))
		for _, loc := range Locations {
			byShift := make(map[Shift][]string, len(WorkingShifts))
			for _, sh := range WorkingShifts {
				byShift[sh] = []string{}
			}
			byLocation[loc] = byShift
		}
		r[date] = byLocation
	}
	return r
}

// Assign 向 roster 追加一名员工，调用方负责保证同一 slot 不重复追加同一人
func (r Roster) Assign(slot Slot, employeeID string) {
	r[slot.Date][slot.Location][slot.Shift] = append(r[slot.Date][slot.Location][slot.Shift], employeeID)
}

// At 返回 slot 当前已分配的员工列表（只读）
func (r Roster) At(slot Slot) []string {
	return r[slot.Date][slot.Location][slot.Shift]
}
