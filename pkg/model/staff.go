package model

// Preferences 员工排班偏好，所有字段均可为空（空表示无限制）
type Preferences struct {
	// PreferredShifts 偏好的工作班次集合
	PreferredShifts map[ShiftType]bool `json:"preferred_shifts,omitempty"`
	// AvoidShifts 不承担的工作班次集合，排班时直接排除
	AvoidShifts map[ShiftType]bool `json:"avoid_shifts,omitempty"`
	// OnlyShifts 若非空，则仅允许这些工作班次（休息始终允许）
	OnlyShifts map[ShiftType]bool `json:"only_shifts,omitempty"`
	// AvoidDays 希望休息的星期索引集合（0=周一..6=周日）
	AvoidDays map[int]bool `json:"avoid_days,omitempty"`
}

// HasPreferred 是否声明了偏好班次
func (p *Preferences) HasPreferred() bool {
	return p != nil && len(p.PreferredShifts) > 0
}

// Prefers 是否偏好指定班次
func (p *Preferences) Prefers(s ShiftType) bool {
	return p != nil && p.PreferredShifts[s]
}

// Avoids 是否希望避免指定班次
func (p *Preferences) Avoids(s ShiftType) bool {
	return p != nil && p.AvoidShifts[s]
}

// AllowsShift 判断人员是否可承担指定班次
// 休息始终允许；avoid_shifts 中的班次直接排除，声明了 only_shifts 时仅其列出的班次可用
func (p *Preferences) AllowsShift(s ShiftType) bool {
	if s == ShiftRest {
		return true
	}
	if p == nil {
		return true
	}
	if p.AvoidShifts[s] {
		return false
	}
	return len(p.OnlyShifts) == 0 || p.OnlyShifts[s]
}

// AvoidsWeekday 是否希望在指定星期休息
func (p *Preferences) AvoidsWeekday(weekday int) bool {
	return p != nil && p.AvoidDays[weekday]
}

// Staff 员工记录，加载后不可变，求解器仅持引用
type Staff struct {
	Name            string       `json:"name"`
	ContractedHours int          `json:"contracted_hours"` // 月度合同工时，>= 0
	Preferences     *Preferences `json:"preferences,omitempty"`
}

// MaxShiftsMonthly 按月度合同计算每月最大工作班次数
func (s *Staff) MaxShiftsMonthly(hoursPerShift int) int {
	if hoursPerShift <= 0 {
		hoursPerShift = DefaultHoursPerShift
	}
	return s.ContractedHours / hoursPerShift
}

// MaxShifts 计算指定周期内的最大工作班次数（周期容量）
//
// 三分支换算规则是排班引擎的硬性不变量：
//   - 周计划（7 天）：月度工时按 4 个名义周拆分
//   - 整月（14~31 天）：直接使用月度工时
//   - 自定义周期：按月度班次数以 30 天为基准等比折算
//
// 三个分支在边界处不连续，属既定业务口径，不得合并简化。
func (s *Staff) MaxShifts(hoursPerShift, periodDays int) int {
	if hoursPerShift <= 0 {
		hoursPerShift = DefaultHoursPerShift
	}
	switch {
	case periodDays == 7:
		return int(float64(s.ContractedHours) / 4.0 / float64(hoursPerShift))
	case periodDays >= 14 && periodDays <= 31:
		return s.ContractedHours / hoursPerShift
	default:
		monthly := s.ContractedHours / hoursPerShift
		return int(float64(monthly) * float64(periodDays) / 30.0)
	}
}

// PeriodContractHours 指定周期内的合同工时目标（周期容量 × 班次时长）
func (s *Staff) PeriodContractHours(hoursPerShift, periodDays int) int {
	if hoursPerShift <= 0 {
		hoursPerShift = DefaultHoursPerShift
	}
	return s.MaxShifts(hoursPerShift, periodDays) * hoursPerShift
}
