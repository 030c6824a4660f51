// Package model 定义排班引擎的核心数据模型
package model

import "fmt"

// ShiftType 班次类型（封闭枚举）
// Rest 表示休息，不占用工时；其余三种为工作班次
type ShiftType int

const (
	ShiftRest      ShiftType = iota // 休息
	ShiftMorning                    // 早班 06:00-14:00
	ShiftAfternoon                  // 中班 14:00-22:00
	ShiftNight                      // 夜班 22:00-06:00
)

// ShiftUnassigned 搜索过程中的未赋值哨兵，冻结后的结果中不会出现
const ShiftUnassigned ShiftType = -1

// DefaultHoursPerShift 每个工作班次的默认时长（小时）
const DefaultHoursPerShift = 8

// WorkingShifts 所有工作班次（不含休息），顺序固定
var WorkingShifts = []ShiftType{ShiftMorning, ShiftAfternoon, ShiftNight}

// AllShifts 决策变量的完整取值域，顺序固定
var AllShifts = []ShiftType{ShiftRest, ShiftMorning, ShiftAfternoon, ShiftNight}

var shiftNames = map[ShiftType]string{
	ShiftRest:      "rest",
	ShiftMorning:   "morning",
	ShiftAfternoon: "afternoon",
	ShiftNight:     "night",
}

// String 返回班次的英文标识
func (s ShiftType) String() string {
	if name, ok := shiftNames[s]; ok {
		return name
	}
	return "unassigned"
}

// IsWorking 是否为工作班次
func (s ShiftType) IsWorking() bool {
	return s == ShiftMorning || s == ShiftAfternoon || s == ShiftNight
}

// Valid 是否为合法班次取值（含休息）
func (s ShiftType) Valid() bool {
	return s >= ShiftRest && s <= ShiftNight
}

// ParseShiftType 按英文标识解析班次类型
func ParseShiftType(name string) (ShiftType, error) {
	for st, n := range shiftNames {
		if n == name {
			return st, nil
		}
	}
	return ShiftUnassigned, fmt.Errorf("未知班次类型: %q", name)
}

// Weekday 把周期内的日索引换算为星期（0=周一..6=周日）
func Weekday(dayIndex int) int {
	return dayIndex % 7
}
