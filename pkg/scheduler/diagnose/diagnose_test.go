package diagnose

import (
	"strings"
	"testing"

	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
)

func staffOf(hours ...int) []*model.Staff {
	staff := make([]*model.Staff, len(hours))
	for i, h := range hours {
		staff[i] = &model.Staff{Name: string(rune('A' + i)), ContractedHours: h}
	}
	return staff
}

func findByCategory(r *Report, category string) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out
}

func TestAnalyze_SufficientHours(t *testing.T) {
	// 6 人 × 160h 月度合同，7 天周期 → 每人 40h，合计 240h
	// 需求 早2/午2/夜1 × 7 天 × 8h = 280h → 缺口
	staff := staffOf(160, 160, 160, 160, 160, 160)
	cctx := constraint.NewContext(staff, 7, 7, 8, nil)

	r := Analyze(cctx, nil)

	if r.TotalContractHours != 240 {
		t.Errorf("total contract hours = %d, want 240", r.TotalContractHours)
	}
	if r.RequiredHours != 280 {
		t.Errorf("required hours = %d, want 280", r.RequiredHours)
	}
	if !r.HasCritical() {
		t.Error("hours shortfall must be critical")
	}
	hours := findByCategory(r, "hours")
	if len(hours) != 1 || hours[0].Severity != SeverityCritical {
		t.Errorf("hours findings = %+v", hours)
	}
	if len(r.Suggestions) == 0 {
		t.Error("critical shortfall must come with suggestions")
	}
}

func TestAnalyze_HoursMargin(t *testing.T) {
	// 8 人 → 320h 可用对 280h 需求，余量 40h > 28h（10%），工时正常
	staff := staffOf(160, 160, 160, 160, 160, 160, 160, 160)
	cctx := constraint.NewContext(staff, 7, 7, 8, nil)

	r := Analyze(cctx, nil)

	hours := findByCategory(r, "hours")
	if len(hours) != 1 || hours[0].Severity != SeverityOK {
		t.Errorf("hours findings = %+v", hours)
	}
}

func TestAnalyze_CoverageShortage(t *testing.T) {
	// 夜班要求 1 人但无人可排夜班
	staff := staffOf(160, 160, 160, 160, 160, 160, 160, 160)
	for _, s := range staff {
		s.Preferences = &model.Preferences{
			OnlyShifts: map[model.ShiftType]bool{
				model.ShiftMorning:   true,
				model.ShiftAfternoon: true,
			},
		}
	}
	cctx := constraint.NewContext(staff, 7, 7, 8, nil)

	r := Analyze(cctx, nil)

	var nightFinding *Finding
	for _, f := range findByCategory(r, "coverage") {
		if strings.Contains(f.Message, "night") {
			nightFinding = &f
			break
		}
	}
	if nightFinding == nil {
		t.Fatal("night coverage finding missing")
	}
	if nightFinding.Severity != SeverityCritical {
		t.Errorf("night coverage severity = %s, want critical", nightFinding.Severity)
	}
}

func TestAnalyze_CoverageFromDeclaration(t *testing.T) {
	// 覆盖声明覆盖缺省值
	staff := staffOf(160, 160, 160, 160, 160, 160, 160, 160)
	cctx := constraint.NewContext(staff, 7, 7, 8, nil)

	r := Analyze(cctx, []constraint.Declaration{
		{Type: "coverage_minimum", Params: map[string]interface{}{
			"morning": float64(1), "afternoon": float64(1), "night": float64(1),
		}},
	})

	// 需求 3 班 × 7 天 × 8h = 168h
	if r.RequiredHours != 168 {
		t.Errorf("required hours = %d, want 168", r.RequiredHours)
	}
}

func TestAnalyze_Incompatibilities(t *testing.T) {
	staff := staffOf(160, 160, 160, 160)
	cctx := constraint.NewContext(staff, 7, 7, 8, nil)

	// 2 对互斥 × 2 >= 4 人 → 关键问题
	r := Analyze(cctx, []constraint.Declaration{
		{Type: "incompatibility", Params: map[string]interface{}{
			"pairs": []interface{}{
				[]interface{}{"A", "B"},
				[]interface{}{"C", "D"},
			},
		}},
	})

	inc := findByCategory(r, "incompatibility")
	if len(inc) != 1 || inc[0].Severity != SeverityCritical {
		t.Errorf("incompatibility findings = %+v", inc)
	}
}

func TestAnalyze_ConsecutiveTightness(t *testing.T) {
	staff := staffOf(160, 160, 160, 160, 160, 160, 160, 160)
	cctx := constraint.NewContext(staff, 14, 14, 8, nil)

	r := Analyze(cctx, []constraint.Declaration{
		{Type: "max_consecutive_nights", Params: map[string]interface{}{"max": float64(2)}},
		{Type: "max_consecutive_work_days", Params: map[string]interface{}{"max_days": float64(4)}},
		{Type: "min_rest_hours", Params: map[string]interface{}{"hours": float64(11)}},
	})

	cons := findByCategory(r, "consecutive")
	if len(cons) != 3 {
		t.Fatalf("consecutive findings = %d, want 3", len(cons))
	}
	// 连续夜班 2 < 14/2，连续工作日 4 < 5，都应告警
	if cons[0].Severity != SeverityWarning {
		t.Errorf("nights finding = %+v", cons[0])
	}
	if cons[1].Severity != SeverityWarning {
		t.Errorf("work days finding = %+v", cons[1])
	}
	if cons[2].Severity != SeverityOK {
		t.Errorf("rest finding = %+v", cons[2])
	}
}

func TestAnalyze_Restrictions(t *testing.T) {
	staff := staffOf(160, 160, 160, 160, 160, 160, 160, 160)
	staff[0].Preferences = &model.Preferences{
		OnlyShifts: map[model.ShiftType]bool{model.ShiftNight: true},
		AvoidDays:  map[int]bool{5: true, 6: true},
	}
	cctx := constraint.NewContext(staff, 7, 7, 8, nil)

	r := Analyze(cctx, nil)

	res := findByCategory(r, "restriction")
	if len(res) != 1 || res[0].Severity != SeverityWarning {
		t.Fatalf("restriction findings = %+v", res)
	}
	if !strings.Contains(res[0].Message, "A") {
		t.Errorf("restriction message = %q", res[0].Message)
	}
}
