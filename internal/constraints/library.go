// Package constraints 约束库元数据
//
// 描述引擎支持的全部约束类型及其参数，供 CLI 展示与文档生成。
// 真正的参数校验发生在约束编译阶段，这里只是目录。
package constraints

import (
	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
)

// ConstraintParam 约束参数定义
type ConstraintParam struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // int, string, array
	Description string `json:"description"`
	Default     string `json:"default,omitempty"`
	Min         string `json:"min,omitempty"`
	Max         string `json:"max,omitempty"`
}

// ConstraintDefinition 约束定义
type ConstraintDefinition struct {
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	Type        string            `json:"type"` // hard 硬约束, soft 软约束
	Category    string            `json:"category"`
	Description string            `json:"description"`
	Params      []ConstraintParam `json:"params"`
}

// Lookup 按名称查找约束定义
func Lookup(name string) (ConstraintDefinition, bool) {
	for _, def := range GetLibrary() {
		if def.Name == name {
			return def, true
		}
	}
	return ConstraintDefinition{}, false
}

// HardDefinitions 仅硬约束
func HardDefinitions() []ConstraintDefinition {
	return filterByType("hard")
}

// SoftDefinitions 仅软约束
func SoftDefinitions() []ConstraintDefinition {
	return filterByType("soft")
}

func filterByType(typ string) []ConstraintDefinition {
	var out []ConstraintDefinition
	for _, def := range GetLibrary() {
		if def.Type == typ {
			out = append(out, def)
		}
	}
	return out
}

var weightParam = ConstraintParam{
	Name: "weight", Type: "int", Description: "优化权重，0 表示记录但不生效", Default: "50", Min: "0",
}

// GetLibrary 获取完整的约束库
func GetLibrary() []ConstraintDefinition {
	return []ConstraintDefinition{
		// =====================================================
		// 硬约束
		// =====================================================
		{
			Name:        string(constraint.TypeCoverageMinimum),
			DisplayName: "每日最低覆盖",
			Type:        "hard",
			Category:    "覆盖保障",
			Description: "每天每个工作班次的在岗人数不得低于下限；可同时设置上限。",
			Params: []ConstraintParam{
				{Name: "morning", Type: "int", Description: "早班最低人数", Default: "2", Min: "0"},
				{Name: "afternoon", Type: "int", Description: "中班最低人数", Default: "2", Min: "0"},
				{Name: "night", Type: "int", Description: "夜班最低人数", Default: "1", Min: "0"},
				{Name: "max_morning", Type: "int", Description: "早班人数上限，0 不限", Default: "0", Min: "0"},
				{Name: "max_afternoon", Type: "int", Description: "中班人数上限，0 不限", Default: "0", Min: "0"},
				{Name: "max_night", Type: "int", Description: "夜班人数上限，0 不限", Default: "0", Min: "0"},
			},
		},
		{
			Name:        string(constraint.TypeMaxShiftsPerPeriod),
			DisplayName: "周期最大班次数",
			Type:        "hard",
			Category:    "工时限制",
			Description: "按合同工时与周期长度折算每人的班次上限（周取四分之一，月取全额，其余按 30 天比例）。",
			Params:      []ConstraintParam{},
		},
		{
			Name:        string(constraint.TypeMinRestHours),
			DisplayName: "班次间最小休息",
			Type:        "hard",
			Category:    "休息保障",
			Description: "班次间隔不足时禁止相接；11 小时及以上时夜班次日不得接早班，低于 11 小时不生效。",
			Params: []ConstraintParam{
				{Name: "hours", Type: "int", Description: "最小休息小时数", Default: "11", Min: "0"},
			},
		},
		{
			Name:        string(constraint.TypeNoAfternoonToMorning),
			DisplayName: "禁止中班接早班",
			Type:        "hard",
			Category:    "休息保障",
			Description: "当天上中班的人员，次日不得上早班。",
			Params:      []ConstraintParam{},
		},
		{
			Name:        string(constraint.TypeMaxConsecutiveNights),
			DisplayName: "最大连续夜班",
			Type:        "hard",
			Category:    "休息保障",
			Description: "限制每人连续夜班的最大天数。",
			Params: []ConstraintParam{
				{Name: "max", Type: "int", Description: "最大连续夜班数", Default: "3", Min: "1"},
			},
		},
		{
			Name:        string(constraint.TypeMaxConsecutiveWorkDays),
			DisplayName: "最大连续工作日",
			Type:        "hard",
			Category:    "休息保障",
			Description: "限制每人连续工作（任意工作班次）的最大天数。",
			Params: []ConstraintParam{
				{Name: "max_days", Type: "int", Description: "最大连续工作日", Default: "6", Min: "1"},
			},
		},
		{
			Name:        string(constraint.TypeMaxNightsPerPeriod),
			DisplayName: "周期最大夜班数",
			Type:        "hard",
			Category:    "休息保障",
			Description: "限制每人周期内的夜班总数；周与短周期按月度上限折算。",
			Params: []ConstraintParam{
				{Name: "max_monthly", Type: "int", Description: "月度夜班上限", Default: "4", Min: "0"},
			},
		},
		{
			Name:        string(constraint.TypeIncompatibility),
			DisplayName: "人员互斥",
			Type:        "hard",
			Category:    "协作限制",
			Description: "互斥的两人不得在同一天担任工作班次。",
			Params: []ConstraintParam{
				{Name: "pairs", Type: "array", Description: "互斥姓名对数组，如 [[\"甲\",\"乙\"]]"},
			},
		},
		{
			Name:        string(constraint.TypeStaffAbsence),
			DisplayName: "人员缺勤",
			Type:        "hard",
			Category:    "时间限制",
			Description: "指定人员在指定日期只能休息（请假、培训等）。",
			Params: []ConstraintParam{
				{Name: "absences", Type: "array", Description: "缺勤记录数组，每条含 name、start_day、end_day"},
			},
		},
		{
			Name:        string(constraint.TypePredefinedShifts),
			DisplayName: "预定班次",
			Type:        "hard",
			Category:    "排班模式",
			Description: "把指定人员在指定日期的班次固定为给定值。",
			Params: []ConstraintParam{
				{Name: "predefined", Type: "array", Description: "预定记录数组，每条含 name、day、shift"},
			},
		},

		// =====================================================
		// 软约束
		// =====================================================
		{
			Name:        string(constraint.TypePreferShift),
			DisplayName: "班次偏好",
			Type:        "soft",
			Category:    "偏好",
			Description: "有偏好的人员被排到非偏好班次（含休息）时按权重计罚。",
			Params:      []ConstraintParam{weightParam},
		},
		{
			Name:        string(constraint.TypeAvoidShift),
			DisplayName: "班次回避",
			Type:        "soft",
			Category:    "偏好",
			Description: "人员被排到其回避班次时按权重计罚。",
			Params:      []ConstraintParam{weightParam},
		},
		{
			Name:        string(constraint.TypeEquity),
			DisplayName: "工时公平",
			Type:        "soft",
			Category:    "公平性",
			Description: "按各人实际工时与合同目标偏差的方差计罚，偏差越集中罚分越低。",
			Params:      []ConstraintParam{weightParam},
		},
		{
			Name:        string(constraint.TypeWorkloadBalance),
			DisplayName: "班次数均衡",
			Type:        "soft",
			Category:    "公平性",
			Description: "按各人工作班次数的离散程度计罚，拉平班次分布。",
			Params:      []ConstraintParam{weightParam},
		},
	}
}
