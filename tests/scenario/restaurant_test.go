package scenario

import (
	"context"
	"testing"

	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
	"github.com/zhipai/zhipai/pkg/scheduler/solver"
)

// TestRestaurantRushHourStaffing 测试餐厅高峰日加排
//
// 第二天晚市要求双人中班，槽位逐日声明而非统一模板；
// 赵六固定周二休息。
func TestRestaurantRushHourStaffing(t *testing.T) {
	staff := []*model.Staff{
		{Name: "张三", ContractedHours: 160},
		{Name: "李四", ContractedHours: 160},
		{Name: "王五", ContractedHours: 160},
		{Name: "赵六", ContractedHours: 160, Preferences: &model.Preferences{
			AvoidDays: map[int]bool{1: true},
		}},
	}
	slots := []model.Slot{
		{Day: 0, Shift: model.ShiftMorning, MinStaff: 1},
		{Day: 0, Shift: model.ShiftAfternoon, MinStaff: 1},
		{Day: 1, Shift: model.ShiftMorning, MinStaff: 1},
		{Day: 1, Shift: model.ShiftAfternoon, MinStaff: 2},
	}

	cctx := constraint.NewContext(staff, 2, 7, 8, slots)
	set, err := constraint.Compile(cctx, []constraint.Declaration{
		{Type: "min_rest_hours", Params: map[string]interface{}{"hours": 11}},
	}, nil)
	if err != nil {
		t.Fatalf("编译约束失败: %v", err)
	}

	result, err := solver.New().Solve(context.Background(), solver.Request{
		Staff:         staff,
		Days:          2,
		PeriodDays:    7,
		HoursPerShift: 8,
		Slots:         slots,
		Constraints:   set,
	})
	if err != nil {
		t.Fatalf("求解失败: %v", err)
	}
	asg := result.Assignment

	// 高峰日中班双人
	if n := asg.SlotCount(1, model.ShiftAfternoon); n < 2 {
		t.Errorf("高峰日中班人数 = %d，要求 >= 2", n)
	}
	// 平峰日要求照常满足
	if n := asg.SlotCount(0, model.ShiftMorning); n < 1 {
		t.Errorf("首日早班人数 = %d，要求 >= 1", n)
	}
	// 赵六周二必须休息
	if got := asg.Get(3, 1); got != model.ShiftRest {
		t.Errorf("赵六周二班次 = %v，期望休息", got)
	}
}
