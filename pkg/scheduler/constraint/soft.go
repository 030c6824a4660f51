package constraint

import (
	"gonum.org/v1/gonum/stat"

	"github.com/zhipai/zhipai/pkg/model"
)

// PreferShiftConstraint 班次偏好软约束
//
// 对每个声明了偏好班次的员工，每出现一个未命中偏好的 (员工, 日)
// 组合（含休息）计一次惩罚。
type PreferShiftConstraint struct {
	base
}

// NewPreferShiftConstraint 创建班次偏好约束
func NewPreferShiftConstraint(weight int) *PreferShiftConstraint {
	return &PreferShiftConstraint{base: base{name: "班次偏好", typ: TypePreferShift, weight: weight}}
}

// Penalty 统计全部未命中偏好的格子
func (c *PreferShiftConstraint) Penalty(ctx *Context, asg *model.Assignment) int {
	total := 0
	for i := range ctx.Staff {
		for d := 0; d < ctx.Days; d++ {
			total += c.CellPenalty(ctx, i, d, asg.Get(i, d))
		}
	}
	return total
}

// CellPenalty 单格惩罚分量
func (c *PreferShiftConstraint) CellPenalty(ctx *Context, staffIdx, day int, shift model.ShiftType) int {
	if shift == model.ShiftUnassigned {
		return 0
	}
	prefs := ctx.Staff[staffIdx].Preferences
	if !prefs.HasPreferred() || prefs.Prefers(shift) {
		return 0
	}
	return c.weight
}

// AvoidShiftConstraint 班次避免软约束（与偏好对称）
type AvoidShiftConstraint struct {
	base
}

// NewAvoidShiftConstraint 创建班次避免约束
func NewAvoidShiftConstraint(weight int) *AvoidShiftConstraint {
	return &AvoidShiftConstraint{base: base{name: "班次避免", typ: TypeAvoidShift, weight: weight}}
}

// Penalty 统计被分配到避免班次的格子
func (c *AvoidShiftConstraint) Penalty(ctx *Context, asg *model.Assignment) int {
	total := 0
	for i := range ctx.Staff {
		for d := 0; d < ctx.Days; d++ {
			total += c.CellPenalty(ctx, i, d, asg.Get(i, d))
		}
	}
	return total
}

// CellPenalty 单格惩罚分量
func (c *AvoidShiftConstraint) CellPenalty(ctx *Context, staffIdx, day int, shift model.ShiftType) int {
	if shift == model.ShiftUnassigned {
		return 0
	}
	if ctx.Staff[staffIdx].Preferences.Avoids(shift) {
		return c.weight
	}
	return 0
}

// EquityConstraint 工时公平软约束
//
// 以 (实际工时 − 周期合同工时) 的偏差序列的离散度作为惩罚：
// 超配/欠配在员工间摊匀时离散度为零，集中在少数人身上时惩罚增大。
type EquityConstraint struct {
	base
}

// NewEquityConstraint 创建工时公平约束
func NewEquityConstraint(weight int) *EquityConstraint {
	return &EquityConstraint{base: base{name: "工时公平", typ: TypeEquity, weight: weight}}
}

// Penalty 权重 × 偏差对均值的平方和
func (c *EquityConstraint) Penalty(ctx *Context, asg *model.Assignment) int {
	if c.weight == 0 || len(ctx.Staff) == 0 {
		return 0
	}
	devs := make([]float64, len(ctx.Staff))
	for i, st := range ctx.Staff {
		worked := asg.WorkingShiftCount(i) * ctx.HoursPerShift
		target := st.PeriodContractHours(ctx.HoursPerShift, ctx.PeriodDays)
		devs[i] = float64(worked - target)
	}
	return c.weight * int(sumSquaredDeviations(devs))
}

// CellPenalty 全局离散度无单格分量
func (c *EquityConstraint) CellPenalty(ctx *Context, staffIdx, day int, shift model.ShiftType) int {
	return 0
}

// WorkloadBalanceConstraint 班次数均衡软约束
//
// 与工时公平不同，这里只看各员工的工作班次数，与班次时长无关。
type WorkloadBalanceConstraint struct {
	base
}

// NewWorkloadBalanceConstraint 创建班次数均衡约束
func NewWorkloadBalanceConstraint(weight int) *WorkloadBalanceConstraint {
	return &WorkloadBalanceConstraint{base: base{name: "班次数均衡", typ: TypeWorkloadBalance, weight: weight}}
}

// Penalty 权重 × 班次数对均值的平方和
func (c *WorkloadBalanceConstraint) Penalty(ctx *Context, asg *model.Assignment) int {
	if c.weight == 0 || len(ctx.Staff) == 0 {
		return 0
	}
	counts := make([]float64, len(ctx.Staff))
	for i := range ctx.Staff {
		counts[i] = float64(asg.WorkingShiftCount(i))
	}
	return c.weight * int(sumSquaredDeviations(counts))
}

// CellPenalty 全局离散度无单格分量
func (c *WorkloadBalanceConstraint) CellPenalty(ctx *Context, staffIdx, day int, shift model.ShiftType) int {
	return 0
}

// sumSquaredDeviations 对均值的平方偏差和
func sumSquaredDeviations(xs []float64) float64 {
	mean := stat.Mean(xs, nil)
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return ss
}
