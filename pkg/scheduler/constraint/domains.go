package constraint

import (
	"math/bits"

	"github.com/zhipai/zhipai/pkg/model"
)

// fullMask 全部四种取值均允许
const fullMask uint8 = 0b1111

// Domains 每个 (员工, 日) 决策变量的候选班次域
//
// 用位掩码存放，位序号即 model.ShiftType 的数值。传播阶段收缩，
// 搜索阶段只读。
type Domains struct {
	staffN int
	days   int
	masks  []uint8
}

// NewDomains 创建全开放的变量域
func NewDomains(staffN, days int) *Domains {
	masks := make([]uint8, staffN*days)
	for i := range masks {
		masks[i] = fullMask
	}
	return &Domains{staffN: staffN, days: days, masks: masks}
}

func (d *Domains) idx(staffIdx, day int) int {
	return staffIdx*d.days + day
}

// Has 变量域是否包含指定班次
func (d *Domains) Has(staffIdx, day int, s model.ShiftType) bool {
	return d.masks[d.idx(staffIdx, day)]&(1<<uint(s)) != 0
}

// Forbid 从变量域中移除指定班次
func (d *Domains) Forbid(staffIdx, day int, s model.ShiftType) {
	d.masks[d.idx(staffIdx, day)] &^= 1 << uint(s)
}

// RestrictTo 把变量域收缩为给定班次集合
func (d *Domains) RestrictTo(staffIdx, day int, shifts ...model.ShiftType) {
	var mask uint8
	for _, s := range shifts {
		mask |= 1 << uint(s)
	}
	d.masks[d.idx(staffIdx, day)] &= mask
}

// Count 变量域大小
func (d *Domains) Count(staffIdx, day int) int {
	return bits.OnesCount8(d.masks[d.idx(staffIdx, day)])
}

// Pruned 已从全部变量域中移除的候选值总数
func (d *Domains) Pruned() int {
	removed := 0
	for _, m := range d.masks {
		removed += 4 - bits.OnesCount8(m)
	}
	return removed
}

// Empty 变量域是否为空（传播导出的矛盾）
func (d *Domains) Empty(staffIdx, day int) bool {
	return d.masks[d.idx(staffIdx, day)] == 0
}

// Shifts 按固定顺序返回变量域内的候选班次
func (d *Domains) Shifts(staffIdx, day int) []model.ShiftType {
	out := make([]model.ShiftType, 0, 4)
	for _, s := range model.AllShifts {
		if d.Has(staffIdx, day, s) {
			out = append(out, s)
		}
	}
	return out
}
