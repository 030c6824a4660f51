// Package constraint 定义约束接口、约束注册表和编译器
package constraint

import (
	"github.com/zhipai/zhipai/pkg/model"
)

// Type 约束类型标识
type Type string

const (
	// 硬约束类型
	TypeCoverageMinimum        Type = "coverage_minimum"
	TypeMaxShiftsPerPeriod     Type = "max_shifts_per_period"
	TypeMinRestHours           Type = "min_rest_hours"
	TypeNoAfternoonToMorning   Type = "no_afternoon_to_morning"
	TypeMaxConsecutiveNights   Type = "max_consecutive_nights"
	TypeMaxConsecutiveWorkDays Type = "max_consecutive_work_days"
	TypeMaxNightsPerPeriod     Type = "max_nights_per_period"
	TypeIncompatibility        Type = "incompatibility"
	TypeStaffAbsence           Type = "staff_absence"
	TypePredefinedShifts       Type = "predefined_shifts"

	// 软约束类型（封闭集合）
	TypePreferShift     Type = "prefer_shift"
	TypeAvoidShift      Type = "avoid_shift"
	TypeEquity          Type = "equity"
	TypeWorkloadBalance Type = "workload_balance"
)

// Category 约束类别
type Category string

const (
	CategoryHard Category = "hard" // 硬约束（必须满足）
	CategorySoft Category = "soft" // 软约束（尽量满足）
)

// Declaration 约束声明：来自已验证配置的内存记录
// Weight 仅对软约束有意义，0 表示记录但不生效
type Declaration struct {
	Type   string                 `json:"type"`
	Params map[string]interface{} `json:"params"`
	Weight int                    `json:"weight,omitempty"`
}

// Hard 硬约束评估器
//
// IsSatisfied 对部分或完整分配进行判定。对部分分配（存在未赋值
// 格子）只允许报告确定性违反，未赋值格子按未知处理，以保证搜索
// 剪枝的正确性。
type Hard interface {
	Name() string
	Type() Type
	IsSatisfied(ctx *Context, asg *model.Assignment) bool
}

// Soft 软约束评估器，对完整分配打分
//
// CellPenalty 返回单个格子独立产生的惩罚分量，供搜索排序与
// 分支定界下界使用；全局性约束（离散度类）返回 0。
type Soft interface {
	Name() string
	Type() Type
	Weight() int
	Penalty(ctx *Context, asg *model.Assignment) int
	CellPenalty(ctx *Context, staffIdx, day int, shift model.ShiftType) int
}

// Propagator 可选能力：搜索前收缩变量域
type Propagator interface {
	Propagate(ctx *Context, dom *Domains)
}

// Context 求解上下文，编译与求解期间只读共享
type Context struct {
	Staff         []*model.Staff
	Days          int
	PeriodDays    int
	HoursPerShift int
	Slots         []model.Slot

	staffIdx map[string]int
}

// NewContext 创建求解上下文
// periodDays <= 0 时取 days；hoursPerShift <= 0 时取默认班次时长
func NewContext(staff []*model.Staff, days, periodDays, hoursPerShift int, slots []model.Slot) *Context {
	if periodDays <= 0 {
		periodDays = days
	}
	if hoursPerShift <= 0 {
		hoursPerShift = model.DefaultHoursPerShift
	}
	idx := make(map[string]int, len(staff))
	for i, s := range staff {
		idx[s.Name] = i
	}
	return &Context{
		Staff:         staff,
		Days:          days,
		PeriodDays:    periodDays,
		HoursPerShift: hoursPerShift,
		Slots:         slots,
		staffIdx:      idx,
	}
}

// StaffIndex 按姓名查找员工序号
func (c *Context) StaffIndex(name string) (int, bool) {
	i, ok := c.staffIdx[name]
	return i, ok
}

// SlotsForDay 返回某天的全部槽位
func (c *Context) SlotsForDay(day int) []model.Slot {
	var out []model.Slot
	for _, sl := range c.Slots {
		if sl.Day == day {
			out = append(out, sl)
		}
	}
	return out
}

// Set 编译完成的约束集合，可在多次/并发求解间只读复用
type Set struct {
	Hard []Hard
	Soft []Soft
}

// AllSatisfied 检查全部硬约束，返回首个违反的约束类型
func (s *Set) AllSatisfied(ctx *Context, asg *model.Assignment) (bool, Type) {
	for _, h := range s.Hard {
		if !h.IsSatisfied(ctx, asg) {
			return false, h.Type()
		}
	}
	return true, ""
}

// TotalPenalty 计算完整分配的加权软约束总惩罚
func (s *Set) TotalPenalty(ctx *Context, asg *model.Assignment) int {
	total := 0
	for _, sc := range s.Soft {
		total += sc.Penalty(ctx, asg)
	}
	return total
}

// CellPenalty 汇总各软约束在单个格子上的惩罚分量
func (s *Set) CellPenalty(ctx *Context, staffIdx, day int, shift model.ShiftType) int {
	total := 0
	for _, sc := range s.Soft {
		total += sc.CellPenalty(ctx, staffIdx, day, shift)
	}
	return total
}

// base 约束公共字段
type base struct {
	name   string
	typ    Type
	weight int
}

func (b *base) Name() string { return b.name }
func (b *base) Type() Type   { return b.typ }
func (b *base) Weight() int  { return b.weight }
