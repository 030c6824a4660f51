package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadStaff(t *testing.T) {
	path := writeFile(t, "staff.json", `[
		{"name": "张三", "contracted_hours": 160},
		{"name": "李四", "contracted_hours": 120, "preferences": {
			"preferred_shifts": ["night"],
			"avoid_shifts": ["morning"],
			"only_shifts": ["afternoon", "night"],
			"avoid_days": [5, 6]
		}}
	]`)

	staff, err := LoadStaff(path)
	if err != nil {
		t.Fatalf("LoadStaff error: %v", err)
	}
	if len(staff) != 2 {
		t.Fatalf("staff count = %d, want 2", len(staff))
	}

	// 文件顺序即加载顺序
	if staff[0].Name != "张三" || staff[1].Name != "李四" {
		t.Errorf("order = %s, %s", staff[0].Name, staff[1].Name)
	}
	if staff[0].Preferences != nil {
		t.Error("staff without preferences block must have nil preferences")
	}

	p := staff[1].Preferences
	if p == nil {
		t.Fatal("preferences missing")
	}
	if !p.Prefers(model.ShiftNight) || !p.Avoids(model.ShiftMorning) {
		t.Errorf("preferences = %+v", p)
	}
	if p.AllowsShift(model.ShiftMorning) || !p.AllowsShift(model.ShiftNight) {
		t.Error("only_shifts not applied")
	}
	if !p.AvoidsWeekday(5) || !p.AvoidsWeekday(6) || p.AvoidsWeekday(0) {
		t.Error("avoid_days not applied")
	}
}

func TestLoadStaff_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"姓名缺失", `[{"contracted_hours": 160}]`},
		{"合同工时为负", `[{"name": "张三", "contracted_hours": -8}]`},
		{"姓名重复", `[{"name": "张三"}, {"name": "张三"}]`},
		{"非法班次名称", `[{"name": "张三", "preferences": {"preferred_shifts": ["graveyard"]}}]`},
		{"星期索引越界", `[{"name": "张三", "preferences": {"avoid_days": [7]}}]`},
		{"空数组", `[]`},
		{"不是数组", `{"name": "张三"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "staff.json", tt.content)
			_, err := LoadStaff(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, errors.CodeValidationFail) && !errors.Is(err, errors.CodeInvalidInput) {
				t.Errorf("error code = %v", errors.GetCode(err))
			}
		})
	}
}

func TestLoadStaff_MissingFile(t *testing.T) {
	if _, err := LoadStaff(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("missing file must error")
	}
}

func TestLoadConstraints(t *testing.T) {
	path := writeFile(t, "constraints.json", `{
		"hard": [
			{"type": "coverage_minimum", "params": {"morning": 2, "night": 1}},
			{"type": "min_rest_hours", "params": {"hours": 11}}
		],
		"soft": [
			{"type": "equity", "weight": 5},
			{"type": "prefer_shift", "weight": 3}
		]
	}`)

	hard, soft, err := LoadConstraints(path)
	if err != nil {
		t.Fatalf("LoadConstraints error: %v", err)
	}
	if len(hard) != 2 || len(soft) != 2 {
		t.Fatalf("decls = %d hard / %d soft", len(hard), len(soft))
	}
	if hard[0].Type != "coverage_minimum" {
		t.Errorf("hard[0].Type = %s", hard[0].Type)
	}
	// JSON 数字反序列化为 float64，由编译阶段兼容
	if got, ok := hard[1].Params["hours"].(float64); !ok || got != 11 {
		t.Errorf("hours param = %v", hard[1].Params["hours"])
	}
	if soft[0].Weight != 5 {
		t.Errorf("soft[0].Weight = %d", soft[0].Weight)
	}
	// 缺省 params 归一为空表而不是 nil
	if soft[0].Params == nil {
		t.Error("missing params must default to empty map")
	}
}

func TestLoadConstraints_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"类型缺失", `{"hard": [{"params": {}}]}`},
		{"负权重", `{"soft": [{"type": "equity", "weight": -1}]}`},
		{"非法 JSON", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "constraints.json", tt.content)
			if _, _, err := LoadConstraints(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadConstraints_EmptyFile(t *testing.T) {
	// 空对象合法：无任何约束声明
	path := writeFile(t, "constraints.json", `{}`)
	hard, soft, err := LoadConstraints(path)
	if err != nil {
		t.Fatalf("LoadConstraints error: %v", err)
	}
	if len(hard) != 0 || len(soft) != 0 {
		t.Errorf("decls = %d hard / %d soft, want none", len(hard), len(soft))
	}
}
