// Package validator 提供排班结果验证
//
// 对完整班表做事后检查：逐条硬约束复核，并给出软约束的罚分明细。
// 用于校验外部修改过的班表（换班、手工调整、历史导入）。
package validator

import (
	"fmt"

	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
)

// Conflict 冲突信息
type Conflict struct {
	Constraint constraint.Type `json:"constraint"`
	Severity   string          `json:"severity"` // error/warning
	Message    string          `json:"message"`
}

// PenaltyItem 单条软约束的罚分明细
type PenaltyItem struct {
	Constraint constraint.Type `json:"constraint"`
	Weight     int             `json:"weight"`
	Penalty    int             `json:"penalty"`
}

// Report 验证报告
type Report struct {
	Valid        bool          `json:"valid"`
	Conflicts    []Conflict    `json:"conflicts"`
	TotalPenalty int           `json:"total_penalty"`
	Penalties    []PenaltyItem `json:"penalties"`
}

// Verifier 班表验证器
type Verifier struct {
	ctx *constraint.Context
	set *constraint.Set
}

// NewVerifier 创建班表验证器
func NewVerifier(ctx *constraint.Context, set *constraint.Set) *Verifier {
	return &Verifier{ctx: ctx, set: set}
}

// Verify 验证完整班表
//
// 存在未赋值格子时直接报错：验证只对冻结的结果有意义。
func (v *Verifier) Verify(asg *model.Assignment) (*Report, error) {
	if !asg.IsComplete() {
		return nil, fmt.Errorf("班表存在未赋值格子，无法验证")
	}

	report := &Report{Valid: true}
	for _, h := range v.set.Hard {
		if h.IsSatisfied(v.ctx, asg) {
			continue
		}
		report.Valid = false
		report.Conflicts = append(report.Conflicts, Conflict{
			Constraint: h.Type(),
			Severity:   "error",
			Message:    fmt.Sprintf("硬约束 %q 被违反", h.Name()),
		})
	}

	for _, sc := range v.set.Soft {
		p := sc.Penalty(v.ctx, asg)
		report.TotalPenalty += p
		report.Penalties = append(report.Penalties, PenaltyItem{
			Constraint: sc.Type(),
			Weight:     sc.Weight(),
			Penalty:    p,
		})
	}
	return report, nil
}

// VerifyCell 验证把某人某天改为指定班次后的班表
//
// 不改动传入的班表；返回修改后的验证报告。
func (v *Verifier) VerifyCell(asg *model.Assignment, staffIdx, day int, shift model.ShiftType) (*Report, error) {
	if staffIdx < 0 || staffIdx >= len(asg.Staff()) || day < 0 || day >= asg.Days() {
		return nil, fmt.Errorf("格子越界: staff=%d day=%d", staffIdx, day)
	}
	if !shift.Valid() {
		return nil, fmt.Errorf("非法班次取值: %d", int(shift))
	}
	trial := asg.Clone()
	trial.Set(staffIdx, day, shift)
	return v.Verify(trial)
}
