package constraint

import (
	"fmt"

	"github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/model"
)

// hardBuilder 把一条硬约束声明编译为评估器
type hardBuilder func(ctx *Context, decl Declaration) (Hard, error)

// softBuilder 把一条软约束声明编译为评估器
type softBuilder func(decl Declaration) (Soft, error)

// hardBuilders 硬约束注册表（按类型名分派）
var hardBuilders = map[Type]hardBuilder{
	TypeCoverageMinimum: func(ctx *Context, d Declaration) (Hard, error) {
		mins := map[model.ShiftType]int{
			model.ShiftMorning:   paramInt(d.Params, "morning", 2),
			model.ShiftAfternoon: paramInt(d.Params, "afternoon", 2),
			model.ShiftNight:     paramInt(d.Params, "night", 1),
		}
		maxs := map[model.ShiftType]int{
			model.ShiftMorning:   paramInt(d.Params, "max_morning", 0),
			model.ShiftAfternoon: paramInt(d.Params, "max_afternoon", 0),
			model.ShiftNight:     paramInt(d.Params, "max_night", 0),
		}
		return NewCoverageConstraint(model.UniformSlots(ctx.Days, mins, maxs)), nil
	},
	TypeMaxShiftsPerPeriod: func(ctx *Context, d Declaration) (Hard, error) {
		return NewCapacityConstraint(), nil
	},
	TypeMinRestHours: func(ctx *Context, d Declaration) (Hard, error) {
		return NewMinRestConstraint(paramInt(d.Params, "hours", 11)), nil
	},
	TypeNoAfternoonToMorning: func(ctx *Context, d Declaration) (Hard, error) {
		return NewNoAfternoonToMorningConstraint(), nil
	},
	TypeMaxConsecutiveNights: func(ctx *Context, d Declaration) (Hard, error) {
		return NewMaxConsecutiveNightsConstraint(paramInt(d.Params, "max", 3)), nil
	},
	TypeMaxConsecutiveWorkDays: func(ctx *Context, d Declaration) (Hard, error) {
		return NewMaxConsecutiveWorkDaysConstraint(paramInt(d.Params, "max_days", 6)), nil
	},
	TypeMaxNightsPerPeriod: func(ctx *Context, d Declaration) (Hard, error) {
		return NewMaxNightsPerPeriodConstraint(paramInt(d.Params, "max_monthly", 4)), nil
	},
	TypeIncompatibility: func(ctx *Context, d Declaration) (Hard, error) {
		pairs, err := parsePairs(ctx, d.Params["pairs"])
		if err != nil {
			return nil, err
		}
		return NewIncompatibilityConstraint(pairs), nil
	},
	TypeStaffAbsence: func(ctx *Context, d Declaration) (Hard, error) {
		absences, err := parseAbsences(ctx, d.Params["absences"])
		if err != nil {
			return nil, err
		}
		return NewStaffAbsenceConstraint(absences), nil
	},
	TypePredefinedShifts: func(ctx *Context, d Declaration) (Hard, error) {
		items, err := parsePredefined(ctx, d.Params["predefined"])
		if err != nil {
			return nil, err
		}
		return NewPredefinedShiftsConstraint(items), nil
	},
}

// softBuilders 软约束注册表（封闭集合）
var softBuilders = map[Type]softBuilder{
	TypePreferShift: func(d Declaration) (Soft, error) {
		return NewPreferShiftConstraint(d.Weight), nil
	},
	TypeAvoidShift: func(d Declaration) (Soft, error) {
		return NewAvoidShiftConstraint(d.Weight), nil
	},
	TypeEquity: func(d Declaration) (Soft, error) {
		return NewEquityConstraint(d.Weight), nil
	},
	TypeWorkloadBalance: func(d Declaration) (Soft, error) {
		return NewWorkloadBalanceConstraint(d.Weight), nil
	},
}

// Compile 把约束声明编译为可复用的评估器集合
//
// 未知类型、非法参数或越界权重在此处立即失败并定位到声明序号，
// 绝不带入搜索阶段。编译结果只读，可跨多次并发求解复用。
func Compile(ctx *Context, hardDecls, softDecls []Declaration) (*Set, error) {
	set := &Set{}

	for i, d := range hardDecls {
		builder, ok := hardBuilders[Type(d.Type)]
		if !ok {
			return nil, errors.Configuration(i, d.Type, "不支持的硬约束类型")
		}
		h, err := builder(ctx, d)
		if err != nil {
			return nil, errors.Configuration(i, d.Type, err.Error())
		}
		set.Hard = append(set.Hard, h)
	}

	for i, d := range softDecls {
		if d.Weight < 0 {
			return nil, errors.Configuration(i, d.Type, fmt.Sprintf("权重 %d 越界，必须 >= 0", d.Weight))
		}
		builder, ok := softBuilders[Type(d.Type)]
		if !ok {
			return nil, errors.Configuration(i, d.Type, "不支持的软约束类型")
		}
		s, err := builder(d)
		if err != nil {
			return nil, errors.Configuration(i, d.Type, err.Error())
		}
		set.Soft = append(set.Soft, s)
	}

	return set, nil
}

// SupportedHardTypes 返回全部受支持的硬约束类型名
func SupportedHardTypes() []Type {
	return []Type{
		TypeCoverageMinimum, TypeMaxShiftsPerPeriod, TypeMinRestHours,
		TypeNoAfternoonToMorning, TypeMaxConsecutiveNights,
		TypeMaxConsecutiveWorkDays, TypeMaxNightsPerPeriod,
		TypeIncompatibility, TypeStaffAbsence, TypePredefinedShifts,
	}
}

// SupportedSoftTypes 返回全部受支持的软约束类型名
func SupportedSoftTypes() []Type {
	return []Type{TypePreferShift, TypeAvoidShift, TypeEquity, TypeWorkloadBalance}
}

// paramInt 读取整数参数，兼容 JSON 反序列化产生的 float64
func paramInt(params map[string]interface{}, key string, defaultVal int) int {
	if params == nil {
		return defaultVal
	}
	switch v := params[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return defaultVal
}

// parsePairs 解析不相容员工对，姓名必须存在
func parsePairs(ctx *Context, raw interface{}) ([][2]string, error) {
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("参数 'pairs' 必须是姓名对列表")
	}
	pairs := make([][2]string, 0, len(list))
	for _, item := range list {
		pair, ok := item.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("参数 'pairs' 的元素必须是两个姓名")
		}
		n1, ok1 := pair[0].(string)
		n2, ok2 := pair[1].(string)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("参数 'pairs' 的姓名必须是字符串")
		}
		for _, n := range []string{n1, n2} {
			if _, found := ctx.StaffIndex(n); !found {
				return nil, fmt.Errorf("员工 '%s' 不存在", n)
			}
		}
		pairs = append(pairs, [2]string{n1, n2})
	}
	return pairs, nil
}

// parseAbsences 解析缺勤区间
func parseAbsences(ctx *Context, raw interface{}) ([]Absence, error) {
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("参数 'absences' 必须是缺勤记录列表")
	}
	absences := make([]Absence, 0, len(list))
	for _, item := range list {
		rec, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("缺勤记录必须是对象")
		}
		name, _ := rec["name"].(string)
		if _, found := ctx.StaffIndex(name); !found {
			return nil, fmt.Errorf("员工 '%s' 不存在", name)
		}
		start := paramInt(rec, "start_day", 0)
		end := paramInt(rec, "end_day", start)
		if start > end {
			return nil, fmt.Errorf("缺勤区间 [%d, %d] 非法", start, end)
		}
		absences = append(absences, Absence{Name: name, StartDay: start, EndDay: end})
	}
	return absences, nil
}

// parsePredefined 解析预定班次
func parsePredefined(ctx *Context, raw interface{}) ([]PredefinedShift, error) {
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("参数 'predefined' 必须是预定记录列表")
	}
	items := make([]PredefinedShift, 0, len(list))
	for _, item := range list {
		rec, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("预定记录必须是对象")
		}
		name, _ := rec["name"].(string)
		if _, found := ctx.StaffIndex(name); !found {
			return nil, fmt.Errorf("员工 '%s' 不存在", name)
		}
		shiftName, _ := rec["shift"].(string)
		shift, err := model.ParseShiftType(shiftName)
		if err != nil {
			return nil, err
		}
		day := paramInt(rec, "day", -1)
		if day < 0 || day >= ctx.Days {
			return nil, fmt.Errorf("日索引 %d 超出周期范围", day)
		}
		items = append(items, PredefinedShift{Name: name, Day: day, Shift: shift})
	}
	return items, nil
}
