// Package render 把排班投影渲染为文本表格
//
// 行为人员（含合同/实际工时与差额），列为天，单元格为班次缩写。
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/stats"
)

// 班次缩写：休/早/中/夜
var shiftAbbrev = map[model.ShiftType]string{
	model.ShiftRest:      "休",
	model.ShiftMorning:   "早",
	model.ShiftAfternoon: "中",
	model.ShiftNight:     "夜",
}

var weekdayNames = []string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// Table 输出完整排班表格，含图例与汇总
func Table(w io.Writer, p *stats.Projection) error {
	if err := writeHeader(w, p); err != nil {
		return err
	}
	for _, ss := range p.StaffSummary {
		if err := writeStaffRow(w, &ss); err != nil {
			return err
		}
	}
	if err := writeSeparator(w, p.Days); err != nil {
		return err
	}
	if err := writeCoverage(w, p); err != nil {
		return err
	}
	return writeSummary(w, p)
}

func writeHeader(w io.Writer, p *stats.Projection) error {
	if _, err := fmt.Fprintf(w, "排班表：%d 人 × %d 天（每班 %d 小时）\n\n",
		len(p.StaffSummary), p.Days, p.HoursPerShift); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-16s %6s %6s %6s", "姓名", "合同", "实际", "差额"))
	for d := 0; d < p.Days; d++ {
		b.WriteString(fmt.Sprintf("  D%02d(%s)", d, weekdayNames[model.Weekday(d)]))
	}
	b.WriteString("\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	return writeSeparator(w, p.Days)
}

func writeSeparator(w io.Writer, days int) error {
	width := 38 + days*10
	_, err := fmt.Fprintln(w, strings.Repeat("-", width))
	return err
}

func writeStaffRow(w io.Writer, ss *stats.StaffSummary) error {
	delta := fmt.Sprintf("%+dh", ss.Delta)
	if ss.Delta == 0 {
		delta = "0h"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-16s %5dh %5dh %6s", truncateName(ss.Name), ss.ContractHours, ss.WorkedHours, delta))
	for _, s := range ss.Schedule {
		b.WriteString(fmt.Sprintf("  %8s", shiftAbbrev[s]))
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// writeCoverage 输出各槽位的实际人数与要求区间
func writeCoverage(w io.Writer, p *stats.Projection) error {
	if len(p.SlotCoverage) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\n槽位覆盖："); err != nil {
		return err
	}
	for _, sc := range p.SlotCoverage {
		bound := fmt.Sprintf("≥%d", sc.MinStaff)
		if sc.MaxStaff > 0 {
			bound = fmt.Sprintf("%d..%d", sc.MinStaff, sc.MaxStaff)
		}
		if _, err := fmt.Fprintf(w, "  D%02d %s班  实际 %d（要求 %s）\n",
			sc.Day, shiftAbbrev[sc.Shift], sc.Actual, bound); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(w io.Writer, p *stats.Projection) error {
	totalContract, totalWorked := 0, 0
	for _, ss := range p.StaffSummary {
		totalContract += ss.ContractHours
		totalWorked += ss.WorkedHours
	}
	_, err := fmt.Fprintf(w, "\n合计：合同 %dh | 实际 %dh | 差额 %+dh\n",
		totalContract, totalWorked, totalWorked-totalContract)
	return err
}

// Legend 输出班次缩写图例
func Legend(w io.Writer) error {
	_, err := fmt.Fprintln(w, "图例：休=休息 早=早班 中=中班 夜=夜班")
	return err
}

func truncateName(name string) string {
	r := []rune(name)
	if len(r) > 8 {
		return string(r[:8])
	}
	return name
}
