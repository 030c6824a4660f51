package model

// Assignment 排班结果：员工 × 日 的班次网格
//
// 以 (员工序号 × 天数 + 日索引) 的一维数组存放，便于搜索状态的
// 快照与回溯。搜索期间允许存在未赋值哨兵；求解成功冻结后必须
// 对全部 (员工, 日) 组合完整赋值。
type Assignment struct {
	staff []*Staff
	days  int
	cells []ShiftType
}

// NewAssignment 创建全部未赋值的空网格
func NewAssignment(staff []*Staff, days int) *Assignment {
	cells := make([]ShiftType, len(staff)*days)
	for i := range cells {
		cells[i] = ShiftUnassigned
	}
	return &Assignment{staff: staff, days: days, cells: cells}
}

// Staff 返回员工列表（按加载顺序）
func (a *Assignment) Staff() []*Staff { return a.staff }

// Days 返回周期天数
func (a *Assignment) Days() int { return a.days }

// Get 读取指定员工某天的班次
func (a *Assignment) Get(staffIdx, day int) ShiftType {
	return a.cells[staffIdx*a.days+day]
}

// Set 写入指定员工某天的班次
func (a *Assignment) Set(staffIdx, day int, s ShiftType) {
	a.cells[staffIdx*a.days+day] = s
}

// IsComplete 是否已对全部组合赋值
func (a *Assignment) IsComplete() bool {
	for _, c := range a.cells {
		if c == ShiftUnassigned {
			return false
		}
	}
	return true
}

// WorkingShiftCount 统计某员工在周期内的工作班次数（未赋值不计）
func (a *Assignment) WorkingShiftCount(staffIdx int) int {
	count := 0
	base := staffIdx * a.days
	for d := 0; d < a.days; d++ {
		if a.cells[base+d].IsWorking() {
			count++
		}
	}
	return count
}

// SlotCount 统计某天被分配到指定班次的人数（未赋值不计）
func (a *Assignment) SlotCount(day int, s ShiftType) int {
	count := 0
	for i := 0; i < len(a.staff); i++ {
		if a.cells[i*a.days+day] == s {
			count++
		}
	}
	return count
}

// UnassignedInDay 统计某天尚未赋值的员工数
func (a *Assignment) UnassignedInDay(day int) int {
	count := 0
	for i := 0; i < len(a.staff); i++ {
		if a.cells[i*a.days+day] == ShiftUnassigned {
			count++
		}
	}
	return count
}

// Clone 深拷贝网格（员工列表共享引用）
func (a *Assignment) Clone() *Assignment {
	cells := make([]ShiftType, len(a.cells))
	copy(cells, a.cells)
	return &Assignment{staff: a.staff, days: a.days, cells: cells}
}
