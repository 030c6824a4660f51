package constraint

import (
	"testing"

	"github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/model"
)

func TestCompile_Defaults(t *testing.T) {
	ctx := NewContext(testStaff(), 7, 0, 8, nil)

	set, err := Compile(ctx,
		[]Declaration{
			{Type: "coverage_minimum", Params: map[string]interface{}{}},
			{Type: "min_rest_hours", Params: map[string]interface{}{"hours": 11}},
		},
		[]Declaration{
			{Type: "prefer_shift", Weight: 5},
		},
	)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	if len(set.Hard) != 2 || len(set.Soft) != 1 {
		t.Fatalf("编译结果数量不对: hard=%d soft=%d", len(set.Hard), len(set.Soft))
	}

	// 覆盖约束缺省 早2/午2/夜1，夜班槽位应存在
	cov, ok := set.Hard[0].(*CoverageConstraint)
	if !ok {
		t.Fatal("首条硬约束应为覆盖约束")
	}
	found := false
	for _, sl := range cov.Slots() {
		if sl.Day == 0 && sl.Shift == model.ShiftNight && sl.MinStaff == 1 {
			found = true
		}
	}
	if !found {
		t.Error("缺省夜班覆盖 1 人的槽位缺失")
	}
}

func TestCompile_UnknownType(t *testing.T) {
	ctx := NewContext(testStaff(), 7, 0, 8, nil)

	_, err := Compile(ctx, []Declaration{
		{Type: "min_rest_hours"},
		{Type: "mandatory_smonto_after_night"},
	}, nil)
	if err == nil {
		t.Fatal("未知约束类型应编译失败")
	}
	if !errors.Is(err, errors.CodeConfiguration) {
		t.Errorf("应返回配置错误, got %v", errors.GetCode(err))
	}

	appErr := err.(*errors.AppError)
	if appErr.Fields["index"] != 1 {
		t.Errorf("配置错误应定位到声明序号 1, got %v", appErr.Fields["index"])
	}
}

func TestCompile_NegativeWeight(t *testing.T) {
	ctx := NewContext(testStaff(), 7, 0, 8, nil)

	_, err := Compile(ctx, nil, []Declaration{
		{Type: "equity", Weight: -3},
	})
	if err == nil {
		t.Fatal("负权重应编译失败")
	}
	if !errors.Is(err, errors.CodeConfiguration) {
		t.Errorf("应返回配置错误, got %v", errors.GetCode(err))
	}
}

func TestCompile_ZeroWeightSoft(t *testing.T) {
	// 权重 0 的软约束合法：记录但不产生惩罚
	ctx := NewContext(testStaff(), 7, 0, 8, nil)

	set, err := Compile(ctx, nil, []Declaration{
		{Type: "workload_balance", Weight: 0},
	})
	if err != nil {
		t.Fatalf("权重 0 应编译通过: %v", err)
	}

	asg := fullRest(testStaff(), 7)
	if got := set.TotalPenalty(ctx, asg); got != 0 {
		t.Errorf("权重 0 的约束不应产生惩罚, got %d", got)
	}
}

func TestCompile_UnknownStaffReference(t *testing.T) {
	ctx := NewContext(testStaff(), 7, 0, 8, nil)

	_, err := Compile(ctx, []Declaration{
		{Type: "incompatibility", Params: map[string]interface{}{
			"pairs": []interface{}{[]interface{}{"张三", "不存在的人"}},
		}},
	}, nil)
	if err == nil {
		t.Fatal("引用不存在的员工应编译失败")
	}
	if !errors.Is(err, errors.CodeConfiguration) {
		t.Errorf("应返回配置错误, got %v", errors.GetCode(err))
	}
}

func TestCompile_PredefinedOutOfRange(t *testing.T) {
	ctx := NewContext(testStaff(), 7, 0, 8, nil)

	_, err := Compile(ctx, []Declaration{
		{Type: "predefined_shifts", Params: map[string]interface{}{
			"predefined": []interface{}{
				map[string]interface{}{"name": "张三", "day": float64(9), "shift": "night"},
			},
		}},
	}, nil)
	if err == nil {
		t.Fatal("日索引越界应编译失败")
	}
}

func TestParamInt_JSONNumbers(t *testing.T) {
	// JSON 反序列化的数字是 float64，必须兼容
	params := map[string]interface{}{"a": float64(3), "b": 4, "c": int64(5)}
	if got := paramInt(params, "a", 0); got != 3 {
		t.Errorf("float64 参数解析失败: %d", got)
	}
	if got := paramInt(params, "b", 0); got != 4 {
		t.Errorf("int 参数解析失败: %d", got)
	}
	if got := paramInt(params, "c", 0); got != 5 {
		t.Errorf("int64 参数解析失败: %d", got)
	}
	if got := paramInt(params, "missing", 7); got != 7 {
		t.Errorf("缺失参数应取默认值: %d", got)
	}
}
