package model

// Slot 排班槽：某一天的某个工作班次及其人数要求
type Slot struct {
	Day      int       `json:"day"`       // 周期内日索引 0..N-1
	Shift    ShiftType `json:"shift"`     // 工作班次（不含休息）
	MinStaff int       `json:"min_staff"` // 最少人数
	MaxStaff int       `json:"max_staff"` // 最多人数，<= 0 表示不限
}

// HasMax 是否配置了人数上限
func (sl Slot) HasMax() bool {
	return sl.MaxStaff > 0
}

// UniformSlots 为周期内每一天生成统一的人数要求槽位
// minByShift 给出各工作班次的最少人数，缺省为 0（不要求）
func UniformSlots(days int, minByShift map[ShiftType]int, maxByShift map[ShiftType]int) []Slot {
	var slots []Slot
	for d := 0; d < days; d++ {
		for _, st := range WorkingShifts {
			min := minByShift[st]
			max := maxByShift[st]
			if min <= 0 && max <= 0 {
				continue
			}
			slots = append(slots, Slot{Day: d, Shift: st, MinStaff: min, MaxStaff: max})
		}
	}
	return slots
}
