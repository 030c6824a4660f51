package constraint

import (
	"testing"

	"github.com/zhipai/zhipai/pkg/model"
)

func TestPreferShiftConstraint_CellPenalty(t *testing.T) {
	staff := []*model.Staff{
		{Name: "张三", ContractedHours: 160, Preferences: &model.Preferences{
			PreferredShifts: map[model.ShiftType]bool{model.ShiftMorning: true},
		}},
		{Name: "李四", ContractedHours: 160},
	}
	ctx := NewContext(staff, 7, 30, 8, nil)
	c := NewPreferShiftConstraint(5)

	// 命中偏好不罚，未命中（含休息）按权重计罚
	if got := c.CellPenalty(ctx, 0, 0, model.ShiftMorning); got != 0 {
		t.Errorf("preferred shift penalty = %d, want 0", got)
	}
	if got := c.CellPenalty(ctx, 0, 0, model.ShiftAfternoon); got != 5 {
		t.Errorf("non-preferred shift penalty = %d, want 5", got)
	}
	if got := c.CellPenalty(ctx, 0, 0, model.ShiftRest); got != 5 {
		t.Errorf("rest penalty for staff with preference = %d, want 5", got)
	}
	if got := c.CellPenalty(ctx, 0, 0, model.ShiftUnassigned); got != 0 {
		t.Errorf("unassigned cell penalty = %d, want 0", got)
	}

	// 无偏好员工任何班次都不罚
	if got := c.CellPenalty(ctx, 1, 0, model.ShiftNight); got != 0 {
		t.Errorf("penalty for staff without preference = %d, want 0", got)
	}
}

func TestPreferShiftConstraint_Penalty(t *testing.T) {
	staff := []*model.Staff{
		{Name: "张三", ContractedHours: 160, Preferences: &model.Preferences{
			PreferredShifts: map[model.ShiftType]bool{model.ShiftNight: true},
		}},
	}
	ctx := NewContext(staff, 3, 30, 8, nil)
	c := NewPreferShiftConstraint(2)

	asg := model.NewAssignment(staff, 3)
	asg.Set(0, 0, model.ShiftNight)   // 命中
	asg.Set(0, 1, model.ShiftMorning) // 未命中
	asg.Set(0, 2, model.ShiftRest)    // 未命中

	if got := c.Penalty(ctx, asg); got != 4 {
		t.Errorf("total penalty = %d, want 4", got)
	}
}

func TestAvoidShiftConstraint(t *testing.T) {
	staff := []*model.Staff{
		{Name: "张三", ContractedHours: 160, Preferences: &model.Preferences{
			AvoidShifts: map[model.ShiftType]bool{model.ShiftNight: true},
		}},
		{Name: "李四", ContractedHours: 160},
	}
	ctx := NewContext(staff, 2, 30, 8, nil)
	c := NewAvoidShiftConstraint(3)

	if got := c.CellPenalty(ctx, 0, 0, model.ShiftNight); got != 3 {
		t.Errorf("avoided shift penalty = %d, want 3", got)
	}
	if got := c.CellPenalty(ctx, 0, 0, model.ShiftMorning); got != 0 {
		t.Errorf("non-avoided shift penalty = %d, want 0", got)
	}
	if got := c.CellPenalty(ctx, 0, 0, model.ShiftRest); got != 0 {
		t.Errorf("rest penalty = %d, want 0", got)
	}
	if got := c.CellPenalty(ctx, 1, 0, model.ShiftNight); got != 0 {
		t.Errorf("penalty for staff without avoid list = %d, want 0", got)
	}

	asg := model.NewAssignment(staff, 2)
	asg.Set(0, 0, model.ShiftNight)
	asg.Set(0, 1, model.ShiftNight)
	asg.Set(1, 0, model.ShiftNight)
	asg.Set(1, 1, model.ShiftRest)
	if got := c.Penalty(ctx, asg); got != 6 {
		t.Errorf("total penalty = %d, want 6", got)
	}
}

func TestEquityConstraint(t *testing.T) {
	staff := []*model.Staff{
		{Name: "张三", ContractedHours: 160},
		{Name: "李四", ContractedHours: 160},
	}
	ctx := NewContext(staff, 7, 30, 8, nil)
	c := NewEquityConstraint(1)

	// 偏差全员一致时离散度为零
	equal := model.NewAssignment(staff, 7)
	for i := range staff {
		equal.Set(i, 0, model.ShiftMorning)
		for d := 1; d < 7; d++ {
			equal.Set(i, d, model.ShiftRest)
		}
	}
	if got := c.Penalty(ctx, equal); got != 0 {
		t.Errorf("equal deviation penalty = %d, want 0", got)
	}

	// 张三 2 班、李四 0 班：偏差 [-144,-160]，均值 -152，平方和 128
	skewed := fullRest(staff, 7)
	skewed.Set(0, 0, model.ShiftMorning)
	skewed.Set(0, 1, model.ShiftNight)
	if got := c.Penalty(ctx, skewed); got != 128 {
		t.Errorf("skewed deviation penalty = %d, want 128", got)
	}

	// 惩罚随权重线性放大
	c5 := NewEquityConstraint(5)
	if got := c5.Penalty(ctx, skewed); got != 640 {
		t.Errorf("weighted penalty = %d, want 640", got)
	}

	if got := c.CellPenalty(ctx, 0, 0, model.ShiftMorning); got != 0 {
		t.Errorf("equity cell penalty = %d, want 0", got)
	}
}

func TestWorkloadBalanceConstraint(t *testing.T) {
	staff := []*model.Staff{
		{Name: "张三", ContractedHours: 160},
		{Name: "李四", ContractedHours: 160},
	}
	ctx := NewContext(staff, 4, 30, 8, nil)
	c := NewWorkloadBalanceConstraint(3)

	// 班次数 [2,0]：均值 1，平方和 2，惩罚 3×2
	asg := fullRest(staff, 4)
	asg.Set(0, 0, model.ShiftMorning)
	asg.Set(0, 1, model.ShiftAfternoon)
	if got := c.Penalty(ctx, asg); got != 6 {
		t.Errorf("imbalanced penalty = %d, want 6", got)
	}

	// 班次数持平时无惩罚
	asg.Set(1, 0, model.ShiftNight)
	asg.Set(1, 1, model.ShiftNight)
	if got := c.Penalty(ctx, asg); got != 0 {
		t.Errorf("balanced penalty = %d, want 0", got)
	}
}
