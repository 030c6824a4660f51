package constraint

import (
	"github.com/zhipai/zhipai/pkg/model"
)

// CoverageConstraint 槽位覆盖约束：每个槽位的实际人数须落在 [min, max] 内
type CoverageConstraint struct {
	base
	slots []model.Slot
}

// NewCoverageConstraint 创建槽位覆盖约束
func NewCoverageConstraint(slots []model.Slot) *CoverageConstraint {
	return &CoverageConstraint{
		base:  base{name: "槽位覆盖", typ: TypeCoverageMinimum},
		slots: slots,
	}
}

// Slots 返回约束携带的槽位要求
func (c *CoverageConstraint) Slots() []model.Slot { return c.slots }

// IsSatisfied 部分分配下：人数已超上限，或加上未赋值员工也到不了下限，即为确定违反
func (c *CoverageConstraint) IsSatisfied(ctx *Context, asg *model.Assignment) bool {
	for _, sl := range c.slots {
		count := asg.SlotCount(sl.Day, sl.Shift)
		if sl.HasMax() && count > sl.MaxStaff {
			return false
		}
		if count+asg.UnassignedInDay(sl.Day) < sl.MinStaff {
			return false
		}
	}
	return true
}

// CapacityConstraint 周期容量约束：工作班次数不得超过三分支规则导出的上限
type CapacityConstraint struct {
	base
}

// NewCapacityConstraint 创建周期容量约束
func NewCapacityConstraint() *CapacityConstraint {
	return &CapacityConstraint{base: base{name: "周期容量", typ: TypeMaxShiftsPerPeriod}}
}

// IsSatisfied 工作班次计数只增不减，部分分配下的超限即确定违反
func (c *CapacityConstraint) IsSatisfied(ctx *Context, asg *model.Assignment) bool {
	for i, st := range ctx.Staff {
		if asg.WorkingShiftCount(i) > st.MaxShifts(ctx.HoursPerShift, ctx.PeriodDays) {
			return false
		}
	}
	return true
}

// MinRestConstraint 班次间最小休息约束：夜班后次日不得排早班
// 休息时长低于 11 小时的声明不构成实际限制
type MinRestConstraint struct {
	base
	hours int
}

// NewMinRestConstraint 创建最小休息约束
func NewMinRestConstraint(hours int) *MinRestConstraint {
	return &MinRestConstraint{
		base:  base{name: "班次间最小休息", typ: TypeMinRestHours},
		hours: hours,
	}
}

// IsSatisfied 检查相邻两天的夜班→早班转换
func (c *MinRestConstraint) IsSatisfied(ctx *Context, asg *model.Assignment) bool {
	if c.hours < 11 {
		return true
	}
	for i := range ctx.Staff {
		for d := 0; d < ctx.Days-1; d++ {
			if asg.Get(i, d) == model.ShiftNight && asg.Get(i, d+1) == model.ShiftMorning {
				return false
			}
		}
	}
	return true
}

// NoAfternoonToMorningConstraint 中班后次日不得排早班
type NoAfternoonToMorningConstraint struct {
	base
}

// NewNoAfternoonToMorningConstraint 创建中班→早班禁止约束
func NewNoAfternoonToMorningConstraint() *NoAfternoonToMorningConstraint {
	return &NoAfternoonToMorningConstraint{
		base: base{name: "中班后禁早班", typ: TypeNoAfternoonToMorning},
	}
}

// IsSatisfied 检查相邻两天的中班→早班转换
func (c *NoAfternoonToMorningConstraint) IsSatisfied(ctx *Context, asg *model.Assignment) bool {
	for i := range ctx.Staff {
		for d := 0; d < ctx.Days-1; d++ {
			if asg.Get(i, d) == model.ShiftAfternoon && asg.Get(i, d+1) == model.ShiftMorning {
				return false
			}
		}
	}
	return true
}

// MaxConsecutiveNightsConstraint 最大连续夜班约束
type MaxConsecutiveNightsConstraint struct {
	base
	maxNights int
}

// NewMaxConsecutiveNightsConstraint 创建最大连续夜班约束
func NewMaxConsecutiveNightsConstraint(maxNights int) *MaxConsecutiveNightsConstraint {
	return &MaxConsecutiveNightsConstraint{
		base:      base{name: "最大连续夜班", typ: TypeMaxConsecutiveNights},
		maxNights: maxNights,
	}
}

// IsSatisfied 任意 maxNights+1 天窗口内全为夜班即确定违反
func (c *MaxConsecutiveNightsConstraint) IsSatisfied(ctx *Context, asg *model.Assignment) bool {
	for i := range ctx.Staff {
		run := 0
		for d := 0; d < ctx.Days; d++ {
			if asg.Get(i, d) == model.ShiftNight {
				run++
				if run > c.maxNights {
					return false
				}
			} else {
				// 未赋值按未知处理，连续段无法确定延续
				run = 0
			}
		}
	}
	return true
}

// MaxConsecutiveWorkDaysConstraint 最大连续工作天数约束
type MaxConsecutiveWorkDaysConstraint struct {
	base
	maxDays int
}

// NewMaxConsecutiveWorkDaysConstraint 创建最大连续工作天数约束
func NewMaxConsecutiveWorkDaysConstraint(maxDays int) *MaxConsecutiveWorkDaysConstraint {
	return &MaxConsecutiveWorkDaysConstraint{
		base:    base{name: "最大连续工作天数", typ: TypeMaxConsecutiveWorkDays},
		maxDays: maxDays,
	}
}

// IsSatisfied 连续工作段超长即确定违反
func (c *MaxConsecutiveWorkDaysConstraint) IsSatisfied(ctx *Context, asg *model.Assignment) bool {
	for i := range ctx.Staff {
		run := 0
		for d := 0; d < ctx.Days; d++ {
			if asg.Get(i, d).IsWorking() {
				run++
				if run > c.maxDays {
					return false
				}
			} else {
				run = 0
			}
		}
	}
	return true
}

// MaxNightsPerPeriodConstraint 周期内最大夜班数约束
// 月度上限按周期长度折算：周取 min(2, 上限/4+1)，整月取上限，
// 其余按 30 天等比折算且不低于 1
type MaxNightsPerPeriodConstraint struct {
	base
	maxMonthly int
}

// NewMaxNightsPerPeriodConstraint 创建周期夜班上限约束
func NewMaxNightsPerPeriodConstraint(maxMonthly int) *MaxNightsPerPeriodConstraint {
	return &MaxNightsPerPeriodConstraint{
		base:       base{name: "周期夜班上限", typ: TypeMaxNightsPerPeriod},
		maxMonthly: maxMonthly,
	}
}

// Limit 返回当前周期的实际夜班上限
func (c *MaxNightsPerPeriodConstraint) Limit(periodDays int) int {
	switch {
	case periodDays == 7:
		lim := c.maxMonthly/4 + 1
		if lim > 2 {
			lim = 2
		}
		return lim
	case periodDays >= 28:
		return c.maxMonthly
	default:
		lim := int(float64(c.maxMonthly) * float64(periodDays) / 30.0)
		if lim < 1 {
			lim = 1
		}
		return lim
	}
}

// IsSatisfied 夜班计数只增不减，部分分配下的超限即确定违反
func (c *MaxNightsPerPeriodConstraint) IsSatisfied(ctx *Context, asg *model.Assignment) bool {
	lim := c.Limit(ctx.PeriodDays)
	for i := range ctx.Staff {
		nights := 0
		for d := 0; d < ctx.Days; d++ {
			if asg.Get(i, d) == model.ShiftNight {
				nights++
			}
		}
		if nights > lim {
			return false
		}
	}
	return true
}

// IncompatibilityConstraint 不相容约束：指定员工对不得同日同班次
type IncompatibilityConstraint struct {
	base
	pairs [][2]string
}

// NewIncompatibilityConstraint 创建不相容约束
func NewIncompatibilityConstraint(pairs [][2]string) *IncompatibilityConstraint {
	return &IncompatibilityConstraint{
		base:  base{name: "员工不相容", typ: TypeIncompatibility},
		pairs: pairs,
	}
}

// IsSatisfied 检查每对员工是否出现在同一工作槽位
func (c *IncompatibilityConstraint) IsSatisfied(ctx *Context, asg *model.Assignment) bool {
	for _, p := range c.pairs {
		i1, ok1 := ctx.StaffIndex(p[0])
		i2, ok2 := ctx.StaffIndex(p[1])
		if !ok1 || !ok2 {
			continue
		}
		for d := 0; d < ctx.Days; d++ {
			s1 := asg.Get(i1, d)
			if s1.IsWorking() && s1 == asg.Get(i2, d) {
				return false
			}
		}
	}
	return true
}

// Absence 员工缺勤区间（日索引闭区间）
type Absence struct {
	Name     string
	StartDay int
	EndDay   int
}

// StaffAbsenceConstraint 计划缺勤约束：缺勤区间内强制休息
type StaffAbsenceConstraint struct {
	base
	absences []Absence
}

// NewStaffAbsenceConstraint 创建缺勤约束
func NewStaffAbsenceConstraint(absences []Absence) *StaffAbsenceConstraint {
	return &StaffAbsenceConstraint{
		base:     base{name: "计划缺勤", typ: TypeStaffAbsence},
		absences: absences,
	}
}

// IsSatisfied 缺勤日内出现工作班次即违反
func (c *StaffAbsenceConstraint) IsSatisfied(ctx *Context, asg *model.Assignment) bool {
	for _, ab := range c.absences {
		i, ok := ctx.StaffIndex(ab.Name)
		if !ok {
			continue
		}
		for d := ab.StartDay; d <= ab.EndDay && d < ctx.Days; d++ {
			if d < 0 {
				continue
			}
			if asg.Get(i, d).IsWorking() {
				return false
			}
		}
	}
	return true
}

// Propagate 把缺勤日的变量域收缩为仅休息
func (c *StaffAbsenceConstraint) Propagate(ctx *Context, dom *Domains) {
	for _, ab := range c.absences {
		i, ok := ctx.StaffIndex(ab.Name)
		if !ok {
			continue
		}
		for d := ab.StartDay; d <= ab.EndDay && d < ctx.Days; d++ {
			if d < 0 {
				continue
			}
			dom.RestrictTo(i, d, model.ShiftRest)
		}
	}
}

// PredefinedShift 预定班次：把某员工某天固定为指定班次
type PredefinedShift struct {
	Name  string
	Day   int
	Shift model.ShiftType
}

// PredefinedShiftsConstraint 预定班次约束，用于锁定既有安排
type PredefinedShiftsConstraint struct {
	base
	items []PredefinedShift
}

// NewPredefinedShiftsConstraint 创建预定班次约束
func NewPredefinedShiftsConstraint(items []PredefinedShift) *PredefinedShiftsConstraint {
	return &PredefinedShiftsConstraint{
		base:  base{name: "预定班次", typ: TypePredefinedShifts},
		items: items,
	}
}

// IsSatisfied 已赋值但与预定不符即违反
func (c *PredefinedShiftsConstraint) IsSatisfied(ctx *Context, asg *model.Assignment) bool {
	for _, it := range c.items {
		i, ok := ctx.StaffIndex(it.Name)
		if !ok || it.Day < 0 || it.Day >= ctx.Days {
			continue
		}
		got := asg.Get(i, it.Day)
		if got != model.ShiftUnassigned && got != it.Shift {
			return false
		}
	}
	return true
}

// Propagate 把预定格子的变量域收缩为单一取值
func (c *PredefinedShiftsConstraint) Propagate(ctx *Context, dom *Domains) {
	for _, it := range c.items {
		i, ok := ctx.StaffIndex(it.Name)
		if !ok || it.Day < 0 || it.Day >= ctx.Days {
			continue
		}
		dom.RestrictTo(i, it.Day, it.Shift)
	}
}
