package stats

import (
	"fmt"
	"sort"

	"github.com/zhipai/zhipai/pkg/model"
)

// 变更类型
const (
	ChangeNewAssignment     = "new_assignment"     // 休息 → 工作班次
	ChangeRemovedAssignment = "removed_assignment" // 工作班次 → 休息
	ChangeShiftChange       = "shift_change"       // 工作班次之间切换
)

// CellChange 单个格子的变更
type CellChange struct {
	Name     string          `json:"name"`
	StaffIdx int             `json:"staff_idx"`
	Day      int             `json:"day"`
	OldShift model.ShiftType `json:"old_shift"`
	NewShift model.ShiftType `json:"new_shift"`
	Type     string          `json:"type"`
}

// Diff 两份班表的差异报告
type Diff struct {
	TotalChanges     int            `json:"total_changes"`
	AffectedStaff    int            `json:"affected_staff"`
	ImpactPercent    float64        `json:"impact_percent"` // 变更格子占比
	ChangesByDay     map[int]int    `json:"changes_by_day"`
	ChangesByStaff   map[string]int `json:"changes_by_staff"`
	ChangesByType    map[string]int `json:"changes_by_type"`
	MostAffectedDays []int          `json:"most_affected_days"` // 按变更数降序，至多 3 个
	Changes          []CellChange   `json:"changes"`
}

// Compare 比较两份同规模的班表
//
// 两份班表必须有相同的人员列表与天数，按格子逐一对比。
func Compare(before, after *model.Assignment) (*Diff, error) {
	if before.Days() != after.Days() || len(before.Staff()) != len(after.Staff()) {
		return nil, fmt.Errorf("班表规模不一致: %d×%d vs %d×%d",
			len(before.Staff()), before.Days(), len(after.Staff()), after.Days())
	}

	diff := &Diff{
		ChangesByDay:   make(map[int]int),
		ChangesByStaff: make(map[string]int),
		ChangesByType:  make(map[string]int),
	}
	affected := make(map[int]bool)

	for i, st := range before.Staff() {
		for d := 0; d < before.Days(); d++ {
			oldShift := before.Get(i, d)
			newShift := after.Get(i, d)
			if oldShift == newShift {
				continue
			}

			diff.TotalChanges++
			affected[i] = true
			diff.ChangesByDay[d]++
			diff.ChangesByStaff[st.Name]++

			changeType := changeKind(oldShift, newShift)
			diff.ChangesByType[changeType]++
			diff.Changes = append(diff.Changes, CellChange{
				Name:     st.Name,
				StaffIdx: i,
				Day:      d,
				OldShift: oldShift,
				NewShift: newShift,
				Type:     changeType,
			})
		}
	}

	diff.AffectedStaff = len(affected)
	cells := len(before.Staff()) * before.Days()
	if cells > 0 {
		diff.ImpactPercent = float64(diff.TotalChanges) / float64(cells) * 100
	}
	diff.MostAffectedDays = topDays(diff.ChangesByDay, 3)
	return diff, nil
}

func changeKind(from, to model.ShiftType) string {
	switch {
	case from == model.ShiftRest:
		return ChangeNewAssignment
	case to == model.ShiftRest:
		return ChangeRemovedAssignment
	default:
		return ChangeShiftChange
	}
}

func topDays(byDay map[int]int, n int) []int {
	days := make([]int, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool {
		if byDay[days[i]] != byDay[days[j]] {
			return byDay[days[i]] > byDay[days[j]]
		}
		return days[i] < days[j]
	})
	if len(days) > n {
		days = days[:n]
	}
	return days
}
