package scenario

import (
	"context"
	"testing"

	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
	"github.com/zhipai/zhipai/pkg/scheduler/solver"
)

// TestHousekeepingPartTimeAndAbsence 测试保洁团队：兼职工时上限与请假
//
// 李四是兼职（月 80 小时，周内最多 2 班），张三前两天请假。
func TestHousekeepingPartTimeAndAbsence(t *testing.T) {
	staff := []*model.Staff{
		{Name: "张三", ContractedHours: 160},
		{Name: "李四", ContractedHours: 80},
		{Name: "王五", ContractedHours: 160},
	}
	slots := model.UniformSlots(3, map[model.ShiftType]int{
		model.ShiftMorning: 1,
	}, nil)

	cctx := constraint.NewContext(staff, 3, 7, 8, slots)
	set, err := constraint.Compile(cctx, []constraint.Declaration{
		{Type: "staff_absence", Params: map[string]interface{}{
			"absences": []interface{}{
				map[string]interface{}{"name": "张三", "start_day": 0, "end_day": 1},
			},
		}},
	}, nil)
	if err != nil {
		t.Fatalf("编译约束失败: %v", err)
	}

	result, err := solver.New().Solve(context.Background(), solver.Request{
		Staff:         staff,
		Days:          3,
		PeriodDays:    7,
		HoursPerShift: 8,
		Slots:         slots,
		Constraints:   set,
	})
	if err != nil {
		t.Fatalf("求解失败: %v", err)
	}
	asg := result.Assignment

	// 请假期间只能休息
	for d := 0; d <= 1; d++ {
		if got := asg.Get(0, d); got != model.ShiftRest {
			t.Errorf("张三请假第 %d 天班次 = %v，期望休息", d, got)
		}
	}

	// 兼职周容量：int(80/4/8) = 2 班
	if got := asg.WorkingShiftCount(1); got > 2 {
		t.Errorf("李四班次数 = %d，超出兼职容量 2", got)
	}

	// 覆盖要求仍然满足
	for d := 0; d < 3; d++ {
		if asg.SlotCount(d, model.ShiftMorning) < 1 {
			t.Errorf("第 %d 天早班无人", d)
		}
	}
}
