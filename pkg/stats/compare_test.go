package stats

import (
	"testing"

	"github.com/zhipai/zhipai/pkg/model"
)

func TestCompare(t *testing.T) {
	before := buildAssignment(t, []int{160, 160}, 3, [][]model.ShiftType{
		{model.ShiftMorning, model.ShiftRest, model.ShiftNight},
		{model.ShiftRest, model.ShiftAfternoon, model.ShiftRest},
	})
	after := buildAssignment(t, []int{160, 160}, 3, [][]model.ShiftType{
		{model.ShiftAfternoon, model.ShiftRest, model.ShiftRest},    // 换班 + 撤班
		{model.ShiftMorning, model.ShiftAfternoon, model.ShiftRest}, // 新排
	})

	diff, err := Compare(before, after)
	if err != nil {
		t.Fatalf("Compare error: %v", err)
	}

	if diff.TotalChanges != 3 {
		t.Errorf("total changes = %d, want 3", diff.TotalChanges)
	}
	if diff.AffectedStaff != 2 {
		t.Errorf("affected staff = %d, want 2", diff.AffectedStaff)
	}
	// 3 处变更 / 6 格 = 50%
	if diff.ImpactPercent != 50 {
		t.Errorf("impact percent = %v, want 50", diff.ImpactPercent)
	}
	if diff.ChangesByType[ChangeShiftChange] != 1 ||
		diff.ChangesByType[ChangeRemovedAssignment] != 1 ||
		diff.ChangesByType[ChangeNewAssignment] != 1 {
		t.Errorf("changes by type = %v", diff.ChangesByType)
	}
	if diff.ChangesByDay[0] != 2 || diff.ChangesByDay[2] != 1 {
		t.Errorf("changes by day = %v", diff.ChangesByDay)
	}
	// 变更最多的日在前
	if len(diff.MostAffectedDays) != 2 || diff.MostAffectedDays[0] != 0 {
		t.Errorf("most affected days = %v", diff.MostAffectedDays)
	}
	if diff.ChangesByStaff["A"] != 2 || diff.ChangesByStaff["B"] != 1 {
		t.Errorf("changes by staff = %v", diff.ChangesByStaff)
	}
}

func TestCompare_NoChanges(t *testing.T) {
	asg := buildAssignment(t, []int{160}, 2, [][]model.ShiftType{
		{model.ShiftMorning, model.ShiftRest},
	})

	diff, err := Compare(asg, asg.Clone())
	if err != nil {
		t.Fatalf("Compare error: %v", err)
	}
	if diff.TotalChanges != 0 || diff.AffectedStaff != 0 || diff.ImpactPercent != 0 {
		t.Errorf("identical schedules must produce empty diff: %+v", diff)
	}
	if len(diff.MostAffectedDays) != 0 {
		t.Errorf("most affected days = %v, want empty", diff.MostAffectedDays)
	}
}

func TestCompare_SizeMismatch(t *testing.T) {
	a := buildAssignment(t, []int{160}, 2, [][]model.ShiftType{
		{model.ShiftRest, model.ShiftRest},
	})
	b := buildAssignment(t, []int{160}, 3, [][]model.ShiftType{
		{model.ShiftRest, model.ShiftRest, model.ShiftRest},
	})

	if _, err := Compare(a, b); err == nil {
		t.Fatal("size mismatch must be rejected")
	}
}
