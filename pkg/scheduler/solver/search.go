package solver

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
)

// search 一次求解独享的搜索状态
//
// 变量顺序固定为员工加载顺序在外、日索引在内，取值顺序对单格软
// 惩罚稳定排序，因此同一输入的重复求解得到完全相同的结果（确定
// 性平局裁决）。
type search struct {
	cctx *constraint.Context
	hard []constraint.Hard
	set  *constraint.Set
	dom  *constraint.Domains

	budget   Budget
	deadline time.Time

	asg         *model.Assignment
	best        *model.Assignment
	bestPenalty int

	iterations int
	exhausted  bool
	cancelled  error

	pruneCount map[constraint.Type]int
}

// newSearch 创建搜索状态
func newSearch(cctx *constraint.Context, hard []constraint.Hard, set *constraint.Set, dom *constraint.Domains, budget Budget) *search {
	return &search{
		cctx:       cctx,
		hard:       hard,
		set:        set,
		dom:        dom,
		budget:     budget,
		asg:        model.NewAssignment(cctx.Staff, cctx.Days),
		pruneCount: make(map[constraint.Type]int),
	}
}

// 内部控制信号
type searchSignal int

const (
	sigContinue searchSignal = iota // 继续搜索
	sigOptimal                      // 惩罚为零的解已找到，无需继续
	sigBudget                       // 预算耗尽
	sigCancel                       // 调用方取消
)

// run 执行完整搜索并记录结果分类
func (s *search) run(ctx context.Context) {
	if s.budget.MaxTime > 0 {
		s.deadline = time.Now().Add(s.budget.MaxTime)
	}
	sig := s.expand(ctx, 0, 0)
	s.exhausted = sig == sigContinue || sig == sigOptimal
}

// expand 展开第 v 个决策变量（v = 员工序号 × 天数 + 日索引）
// lowerBound 为已赋值格子累计的软惩罚下界
func (s *search) expand(ctx context.Context, v, lowerBound int) searchSignal {
	// 每个搜索节点边界检查取消与预算
	s.iterations++
	if err := ctx.Err(); err != nil {
		s.cancelled = err
		return sigCancel
	}
	if s.budget.MaxIterations > 0 && s.iterations > s.budget.MaxIterations {
		return sigBudget
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		return sigBudget
	}

	total := len(s.cctx.Staff) * s.cctx.Days
	if v == total {
		return s.acceptLeaf()
	}

	staffIdx := v / s.cctx.Days
	day := v % s.cctx.Days

	for _, shift := range s.orderedCandidates(staffIdx, day) {
		cellPen := s.set.CellPenalty(s.cctx, staffIdx, day, shift)
		// 分支定界：下界已不优于当前最优解则剪枝
		if s.best != nil && lowerBound+cellPen >= s.bestPenalty {
			continue
		}

		s.asg.Set(staffIdx, day, shift)
		if ok, violated := s.satisfiedAll(); !ok {
			s.pruneCount[violated]++
			s.asg.Set(staffIdx, day, model.ShiftUnassigned)
			continue
		}

		sig := s.expand(ctx, v+1, lowerBound+cellPen)
		s.asg.Set(staffIdx, day, model.ShiftUnassigned)
		if sig != sigContinue {
			return sig
		}
	}
	return sigContinue
}

// acceptLeaf 处理一个完整赋值的叶节点
func (s *search) acceptLeaf() searchSignal {
	if ok, violated := s.satisfiedAll(); !ok {
		s.pruneCount[violated]++
		return sigContinue
	}
	penalty := s.set.TotalPenalty(s.cctx, s.asg)
	if s.best == nil || penalty < s.bestPenalty {
		s.best = s.asg.Clone()
		s.bestPenalty = penalty
		if penalty == 0 {
			// 零惩罚即全局最优
			return sigOptimal
		}
	}
	return sigContinue
}

// satisfiedAll 检查全部硬约束
func (s *search) satisfiedAll() (bool, constraint.Type) {
	for _, h := range s.hard {
		if !h.IsSatisfied(s.cctx, s.asg) {
			return false, h.Type()
		}
	}
	return true, ""
}

// orderedCandidates 变量域内候选取值，按单格软惩罚升序稳定排序
// 使搜索先尝试偏好友好的取值，减少优化目标上的回溯
func (s *search) orderedCandidates(staffIdx, day int) []model.ShiftType {
	candidates := s.dom.Shifts(staffIdx, day)
	if len(s.set.Soft) == 0 || len(candidates) < 2 {
		return candidates
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return s.set.CellPenalty(s.cctx, staffIdx, day, candidates[a]) <
			s.set.CellPenalty(s.cctx, staffIdx, day, candidates[b])
	})
	return candidates
}

// dominantPruneCause 返回剪枝次数最多的约束类别，用于无可行解诊断
func (s *search) dominantPruneCause() (string, string) {
	var top constraint.Type
	max := 0
	for typ, n := range s.pruneCount {
		if n > max || (n == max && typ < top) {
			top = typ
			max = n
		}
	}
	if max == 0 {
		return "", ""
	}
	return string(top), fmt.Sprintf("搜索被 '%s' 约束剪枝 %d 次", top, max)
}
