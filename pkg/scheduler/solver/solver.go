// Package solver 提供基于回溯与分支定界的排班求解器
package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/logger"
	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
)

// Budget 搜索预算，超出后终止搜索
type Budget struct {
	MaxIterations int           `json:"max_iterations"` // 最大搜索节点数
	MaxTime       time.Duration `json:"max_time"`       // 最长运行时间
}

// DefaultBudget 默认搜索预算
func DefaultBudget() Budget {
	return Budget{
		MaxIterations: 2_000_000,
		MaxTime:       30 * time.Second,
	}
}

// Request 一次求解请求
//
// 每次求解持有独立的搜索状态，约束集合只读，可跨请求复用；
// 并发求解无需同步。
type Request struct {
	Staff         []*model.Staff
	Days          int
	PeriodDays    int // <= 0 时取 Days
	HoursPerShift int // <= 0 时取默认班次时长
	Slots         []model.Slot
	Constraints   *constraint.Set
	Budget        Budget
}

// Result 求解结果，仅在成功时返回，永不携带部分赋值
type Result struct {
	RunID      uuid.UUID         `json:"run_id"`
	Assignment *model.Assignment `json:"-"`
	Penalty    int               `json:"penalty"`    // 达到的加权软约束总惩罚
	Iterations int               `json:"iterations"` // 实际消耗的搜索节点数
	Duration   time.Duration     `json:"duration"`
	Optimal    bool              `json:"optimal"` // 搜索空间穷尽（最优已证明）
}

// Solver 排班求解器，本身无状态，可复用
type Solver struct {
	log *logger.SolverLogger
}

// New 创建求解器
func New() *Solver {
	return &Solver{log: logger.NewSolverLogger()}
}

// Solve 求解排班
//
// 成功时返回对全部 (员工, 日) 组合完整赋值的结果；失败时返回
// 类型化错误：配置错误、无可行解（已证明）、预算耗尽（可行性
// 未知）或取消。预算耗尽但已有可行解时返回当前最优解并置
// Optimal=false。
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	runID := uuid.New()

	if err := validateRequest(&req); err != nil {
		return nil, err
	}
	if req.Budget.MaxIterations <= 0 && req.Budget.MaxTime <= 0 {
		req.Budget = DefaultBudget()
	}
	set := req.Constraints
	if set == nil {
		set = &constraint.Set{}
	}

	cctx := constraint.NewContext(req.Staff, req.Days, req.PeriodDays, req.HoursPerShift, req.Slots)
	s.log.StartSolve(runID.String(), len(req.Staff), req.Days)

	// 内建硬约束：请求槽位覆盖 + 三分支周期容量，声明集在其后
	hard := make([]constraint.Hard, 0, len(set.Hard)+2)
	if len(req.Slots) > 0 {
		hard = append(hard, constraint.NewCoverageConstraint(req.Slots))
	}
	hard = append(hard, constraint.NewCapacityConstraint())
	hard = append(hard, set.Hard...)

	// 传播阶段：收缩变量域，可能直接导出矛盾
	dom, err := propagate(cctx, hard)
	if err != nil {
		s.log.SolveFailed(runID.String(), err, 0)
		return nil, err
	}
	s.log.Propagation(runID.String(), dom.Pruned())

	sr := newSearch(cctx, hard, set, dom, req.Budget)
	sr.run(ctx)

	switch {
	case sr.cancelled != nil:
		err := errors.Wrap(sr.cancelled, errors.CodeCancelled, "求解被调用方取消")
		s.log.SolveFailed(runID.String(), err, sr.iterations)
		return nil, err

	case sr.best != nil:
		result := &Result{
			RunID:      runID,
			Assignment: sr.best,
			Penalty:    sr.bestPenalty,
			Iterations: sr.iterations,
			Duration:   time.Since(start),
			Optimal:    sr.exhausted || sr.bestPenalty == 0,
		}
		s.log.SolveComplete(runID.String(), result.Duration, result.Penalty, result.Iterations, result.Optimal)
		return result, nil

	case sr.exhausted:
		blockedBy, reason := sr.dominantPruneCause()
		err := errors.Infeasible(blockedBy, reason)
		s.log.SolveFailed(runID.String(), err, sr.iterations)
		return nil, err

	default:
		err := errors.BudgetExceeded(sr.iterations)
		s.log.SolveFailed(runID.String(), err, sr.iterations)
		return nil, err
	}
}

// validateRequest 基础输入检查
func validateRequest(req *Request) error {
	if len(req.Staff) == 0 {
		return errors.InvalidInput("staff", "员工列表不能为空")
	}
	if req.Days <= 0 {
		return errors.InvalidInput("days", "周期天数必须为正")
	}
	for i, st := range req.Staff {
		if st.Name == "" {
			return errors.InvalidInput("staff.name", fmt.Sprintf("第 %d 个员工姓名为空", i))
		}
		if st.ContractedHours < 0 {
			return errors.InvalidInput("staff.contracted_hours",
				fmt.Sprintf("员工 '%s' 合同工时为负", st.Name))
		}
	}
	for i, sl := range req.Slots {
		if sl.Day < 0 || sl.Day >= req.Days {
			return errors.InvalidInput("slots", fmt.Sprintf("第 %d 个槽位日索引 %d 越界", i, sl.Day))
		}
		if !sl.Shift.IsWorking() {
			return errors.InvalidInput("slots", fmt.Sprintf("第 %d 个槽位班次必须是工作班次", i))
		}
		if sl.HasMax() && sl.MaxStaff < sl.MinStaff {
			return errors.InvalidInput("slots", fmt.Sprintf("第 %d 个槽位人数上限小于下限", i))
		}
	}
	return nil
}

// propagate 搜索前的约束传播
//
// 应用 only_shifts / avoid_days 的域限制、容量为零的员工、
// 各硬约束的传播钩子，随后检查覆盖可达性；导出矛盾即为已证明
// 的无可行解。
func propagate(cctx *constraint.Context, hard []constraint.Hard) (*constraint.Domains, error) {
	dom := constraint.NewDomains(len(cctx.Staff), cctx.Days)

	for i, st := range cctx.Staff {
		prefs := st.Preferences
		capacity := st.MaxShifts(cctx.HoursPerShift, cctx.PeriodDays)
		for d := 0; d < cctx.Days; d++ {
			if capacity == 0 || (prefs != nil && prefs.AvoidsWeekday(model.Weekday(d))) {
				dom.RestrictTo(i, d, model.ShiftRest)
				continue
			}
			for _, ws := range model.WorkingShifts {
				if !prefs.AllowsShift(ws) {
					dom.Forbid(i, d, ws)
				}
			}
		}
	}

	for _, h := range hard {
		if p, ok := h.(constraint.Propagator); ok {
			p.Propagate(cctx, dom)
		}
	}

	for i := range cctx.Staff {
		for d := 0; d < cctx.Days; d++ {
			if dom.Empty(i, d) {
				return nil, errors.Infeasible(string(constraint.TypePredefinedShifts),
					fmt.Sprintf("员工 '%s' 第 %d 天的变量域为空", cctx.Staff[i].Name, d))
			}
		}
	}

	// 覆盖可达性：可承担某槽位的员工数低于下限即矛盾
	for _, h := range hard {
		cc, ok := h.(*constraint.CoverageConstraint)
		if !ok {
			continue
		}
		for _, sl := range cc.Slots() {
			eligible := 0
			for i := range cctx.Staff {
				if dom.Has(i, sl.Day, sl.Shift) {
					eligible++
				}
			}
			if eligible < sl.MinStaff {
				return nil, errors.Infeasible(string(constraint.TypeCoverageMinimum),
					fmt.Sprintf("第 %d 天 %s 班需要 %d 人，仅 %d 人可排",
						sl.Day, sl.Shift, sl.MinStaff, eligible))
			}
		}
	}

	return dom, nil
}
