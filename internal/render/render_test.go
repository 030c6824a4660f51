package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/stats"
)

func sampleProjection(t *testing.T) *stats.Projection {
	t.Helper()
	staff := []*model.Staff{
		{Name: "张三", ContractedHours: 160},
		{Name: "李四", ContractedHours: 160},
	}
	asg := model.NewAssignment(staff, 2)
	asg.Set(0, 0, model.ShiftMorning)
	asg.Set(0, 1, model.ShiftNight)
	asg.Set(1, 0, model.ShiftRest)
	asg.Set(1, 1, model.ShiftAfternoon)

	slots := []model.Slot{
		{Day: 0, Shift: model.ShiftMorning, MinStaff: 1},
		{Day: 1, Shift: model.ShiftNight, MinStaff: 1, MaxStaff: 2},
	}
	return stats.Project(asg, slots, 8, 7)
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Table(&buf, sampleProjection(t)); err != nil {
		t.Fatalf("Table error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"排班表：2 人 × 2 天（每班 8 小时）",
		"张三",
		"李四",
		"D00(周一)",
		"D01(周二)",
		"早", "中", "夜", "休",
		"槽位覆盖：",
		"实际 1（要求 ≥1）",
		"实际 1（要求 1..2）",
		"合计：",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}

	// 7 天周期下 160h 合同折算每人 40h，两行合同列均为 40h
	if strings.Count(out, "40h") < 2 {
		t.Errorf("contract hours column missing:\n%s", out)
	}
}

func TestTable_NoSlots(t *testing.T) {
	p := sampleProjection(t)
	p.SlotCoverage = nil

	var buf bytes.Buffer
	if err := Table(&buf, p); err != nil {
		t.Fatalf("Table error: %v", err)
	}
	if strings.Contains(buf.String(), "槽位覆盖") {
		t.Error("coverage section must be omitted without slots")
	}
}

func TestLegend(t *testing.T) {
	var buf bytes.Buffer
	if err := Legend(&buf); err != nil {
		t.Fatalf("Legend error: %v", err)
	}
	if !strings.Contains(buf.String(), "休=休息") {
		t.Errorf("legend output = %q", buf.String())
	}
}

func TestTruncateName(t *testing.T) {
	if got := truncateName("阿"); got != "阿" {
		t.Errorf("short name truncated: %q", got)
	}
	long := "一二三四五六七八九十"
	if got := truncateName(long); got != "一二三四五六七八" {
		t.Errorf("truncated = %q", got)
	}
}
