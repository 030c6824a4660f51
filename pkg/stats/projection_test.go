package stats

import (
	"testing"

	"github.com/zhipai/zhipai/pkg/model"
)

func buildAssignment(t *testing.T, contracted []int, days int, cells [][]model.ShiftType) *model.Assignment {
	t.Helper()
	staff := make([]*model.Staff, len(contracted))
	for i, h := range contracted {
		staff[i] = &model.Staff{Name: string(rune('A' + i)), ContractedHours: h}
	}
	asg := model.NewAssignment(staff, days)
	for i, row := range cells {
		for d, s := range row {
			asg.Set(i, d, s)
		}
	}
	return asg
}

func TestProject(t *testing.T) {
	asg := buildAssignment(t, []int{160, 160}, 3, [][]model.ShiftType{
		{model.ShiftMorning, model.ShiftNight, model.ShiftRest},
		{model.ShiftRest, model.ShiftRest, model.ShiftAfternoon},
	})
	slots := []model.Slot{
		{Day: 0, Shift: model.ShiftMorning, MinStaff: 1},
		{Day: 2, Shift: model.ShiftAfternoon, MinStaff: 1, MaxStaff: 2},
	}

	p := Project(asg, slots, 8, 7)

	if p.Days != 3 || p.PeriodDays != 7 || p.HoursPerShift != 8 {
		t.Fatalf("projection header mismatch: %+v", p)
	}
	if len(p.StaffSummary) != 2 {
		t.Fatalf("staff summary count = %d", len(p.StaffSummary))
	}

	a := p.StaffSummary[0]
	if a.WorkedShifts != 2 || a.WorkedHours != 16 {
		t.Errorf("staff A worked = %d shifts / %d hours", a.WorkedShifts, a.WorkedHours)
	}
	// 7 天周期的合同目标：int(160/4.0/8) × 8 = 40
	if a.ContractHours != 40 {
		t.Errorf("staff A contract hours = %d, want 40", a.ContractHours)
	}
	if a.Delta != -24 {
		t.Errorf("staff A delta = %d, want -24", a.Delta)
	}
	if a.ShiftCounts["morning"] != 1 || a.ShiftCounts["night"] != 1 || a.ShiftCounts["rest"] != 1 {
		t.Errorf("staff A shift counts = %v", a.ShiftCounts)
	}
	if len(a.Schedule) != 3 || a.Schedule[1] != model.ShiftNight {
		t.Errorf("staff A schedule = %v", a.Schedule)
	}

	if len(p.SlotCoverage) != 2 {
		t.Fatalf("slot coverage count = %d", len(p.SlotCoverage))
	}
	if p.SlotCoverage[0].Actual != 1 {
		t.Errorf("day 0 morning actual = %d, want 1", p.SlotCoverage[0].Actual)
	}
	if p.SlotCoverage[1].Actual != 1 || p.SlotCoverage[1].MaxStaff != 2 {
		t.Errorf("day 2 afternoon coverage = %+v", p.SlotCoverage[1])
	}
}

func TestProject_Defaults(t *testing.T) {
	asg := buildAssignment(t, []int{160}, 5, [][]model.ShiftType{
		{model.ShiftRest, model.ShiftRest, model.ShiftRest, model.ShiftRest, model.ShiftRest},
	})

	// 非正参数回退到默认班次时长与排班天数
	p := Project(asg, nil, 0, 0)
	if p.HoursPerShift != model.DefaultHoursPerShift {
		t.Errorf("hours per shift = %d, want default", p.HoursPerShift)
	}
	if p.PeriodDays != 5 {
		t.Errorf("period days = %d, want 5", p.PeriodDays)
	}
}
