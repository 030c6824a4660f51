// Package stats 提供排班结果投影与统计分析
package stats

import (
	"github.com/zhipai/zhipai/pkg/model"
)

// StaffSummary 单个员工的周期结算
type StaffSummary struct {
	Name          string            `json:"name"`
	WorkedShifts  int               `json:"worked_shifts"`  // 工作班次数
	WorkedHours   int               `json:"worked_hours"`   // 实际工时 = 班次数 × 班次时长
	ContractHours int               `json:"contract_hours"` // 周期合同工时目标（三分支规则）
	Delta         int               `json:"delta"`          // 实际 − 目标，有符号
	ShiftCounts   map[string]int    `json:"shift_counts"`   // 按班次类型的分布（含休息）
	Schedule      []model.ShiftType `json:"-"`              // 逐日班次
}

// SlotHeadcount 单个槽位的实际人数
type SlotHeadcount struct {
	Day      int             `json:"day"`
	Shift    model.ShiftType `json:"shift"`
	MinStaff int             `json:"min_staff"`
	MaxStaff int             `json:"max_staff"`
	Actual   int             `json:"actual"`
}

// Projection 完整排班的投影视图，供外部格式化/持久化协作方消费
type Projection struct {
	Days          int             `json:"days"`
	PeriodDays    int             `json:"period_days"`
	HoursPerShift int             `json:"hours_per_shift"`
	StaffSummary  []StaffSummary  `json:"staff_summary"`
	SlotCoverage  []SlotHeadcount `json:"slot_coverage"`
}

// Project 把冻结的排班结果投影为逐员工、逐槽位的视图
//
// 纯函数：不修改输入，也不再做任何约束检查（信任求解器的不变量）。
func Project(asg *model.Assignment, slots []model.Slot, hoursPerShift, periodDays int) *Projection {
	if hoursPerShift <= 0 {
		hoursPerShift = model.DefaultHoursPerShift
	}
	if periodDays <= 0 {
		periodDays = asg.Days()
	}

	staff := asg.Staff()
	summaries := make([]StaffSummary, len(staff))
	for i, st := range staff {
		counts := make(map[string]int, len(model.AllShifts))
		schedule := make([]model.ShiftType, asg.Days())
		for d := 0; d < asg.Days(); d++ {
			s := asg.Get(i, d)
			schedule[d] = s
			counts[s.String()]++
		}
		worked := asg.WorkingShiftCount(i)
		target := st.PeriodContractHours(hoursPerShift, periodDays)
		summaries[i] = StaffSummary{
			Name:          st.Name,
			WorkedShifts:  worked,
			WorkedHours:   worked * hoursPerShift,
			ContractHours: target,
			Delta:         worked*hoursPerShift - target,
			ShiftCounts:   counts,
			Schedule:      schedule,
		}
	}

	coverage := make([]SlotHeadcount, len(slots))
	for i, sl := range slots {
		coverage[i] = SlotHeadcount{
			Day:      sl.Day,
			Shift:    sl.Shift,
			MinStaff: sl.MinStaff,
			MaxStaff: sl.MaxStaff,
			Actual:   asg.SlotCount(sl.Day, sl.Shift),
		}
	}

	return &Projection{
		Days:          asg.Days(),
		PeriodDays:    periodDays,
		HoursPerShift: hoursPerShift,
		StaffSummary:  summaries,
		SlotCoverage:  coverage,
	}
}
