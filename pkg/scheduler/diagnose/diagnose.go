// Package diagnose 排班不可行性诊断
//
// 当求解器报告无解时，对人员与约束配置做静态分析，定位工时缺口、
// 覆盖缺口和过度受限的人员，并给出调整建议。
package diagnose

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
)

// Severity 诊断结论严重程度
type Severity string

const (
	SeverityOK       Severity = "ok"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Finding 单条诊断结论
type Finding struct {
	Category string   `json:"category"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report 诊断报告
type Report struct {
	Findings    []Finding `json:"findings"`
	Suggestions []string  `json:"suggestions"`

	TotalContractHours int `json:"total_contract_hours"`
	RequiredHours      int `json:"required_hours"`
}

// HasCritical 是否存在关键问题
func (r *Report) HasCritical() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

func (r *Report) add(category string, sev Severity, format string, args ...interface{}) {
	r.Findings = append(r.Findings, Finding{
		Category: category,
		Severity: sev,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r *Report) suggest(format string, args ...interface{}) {
	r.Suggestions = append(r.Suggestions, fmt.Sprintf(format, args...))
}

// Analyze 对排班配置做全量静态诊断
func Analyze(cctx *constraint.Context, hard []constraint.Declaration) *Report {
	coverage := coverageRequirements(hard)
	r := &Report{}

	analyzeHours(r, cctx, coverage)
	analyzeCoverage(r, cctx, coverage)
	analyzeRestrictions(r, cctx)
	analyzeIncompatibilities(r, cctx, hard)
	analyzeConsecutive(r, cctx, hard)

	if len(r.Suggestions) == 0 && r.HasCritical() {
		r.suggest("尝试逐步放宽硬约束或降低最低覆盖要求")
	}
	return r
}

// coverageRequirements 从硬约束声明中提取每班覆盖要求，缺省 早2/午2/夜1
func coverageRequirements(hard []constraint.Declaration) map[model.ShiftType]int {
	req := map[model.ShiftType]int{
		model.ShiftMorning:   2,
		model.ShiftAfternoon: 2,
		model.ShiftNight:     1,
	}
	for _, d := range hard {
		if constraint.Type(d.Type) != constraint.TypeCoverageMinimum {
			continue
		}
		for shift, key := range map[model.ShiftType]string{
			model.ShiftMorning:   "morning",
			model.ShiftAfternoon: "afternoon",
			model.ShiftNight:     "night",
		} {
			if v, ok := paramInt(d.Params, key); ok {
				req[shift] = v
			}
		}
		break
	}
	return req
}

// analyzeHours 工时总量核算：合同工时是否足以覆盖需求
func analyzeHours(r *Report, cctx *constraint.Context, coverage map[model.ShiftType]int) {
	total := 0
	for _, s := range cctx.Staff {
		total += s.PeriodContractHours(cctx.HoursPerShift, cctx.PeriodDays)
	}
	perDay := 0
	for _, n := range coverage {
		perDay += n
	}
	needed := perDay * cctx.Days * cctx.HoursPerShift

	r.TotalContractHours = total
	r.RequiredHours = needed

	switch {
	case total < needed:
		r.add("hours", SeverityCritical,
			"合同工时不足：可用 %d 小时，需求 %d 小时，缺口 %d 小时",
			total, needed, needed-total)
		r.suggest("增加人员或提高合同工时")
	case total-needed < needed/10:
		r.add("hours", SeverityWarning,
			"工时余量不足 10%%：可用 %d 小时，需求 %d 小时", total, needed)
	default:
		r.add("hours", SeverityOK,
			"工时充足：可用 %d 小时，需求 %d 小时", total, needed)
	}
}

// analyzeCoverage 按班次统计可上岗人数并与覆盖要求对比
func analyzeCoverage(r *Report, cctx *constraint.Context, coverage map[model.ShiftType]int) {
	for _, shift := range model.WorkingShifts {
		required := coverage[shift]
		if required <= 0 {
			continue
		}
		eligible := 0
		for _, s := range cctx.Staff {
			if s.Preferences.AllowsShift(shift) {
				eligible++
			}
		}
		switch {
		case eligible < required:
			r.add("coverage", SeverityCritical,
				"%s班可上岗人数不足：可用 %d 人，需求 %d 人", shift, eligible, required)
			r.suggest("放宽 %s 班的人员限制或降低其最低覆盖", shift)
		case eligible == required:
			r.add("coverage", SeverityWarning,
				"%s班无余量：可用人数恰好等于需求 %d 人", shift, required)
			if shift == model.ShiftNight {
				r.suggest("为夜班增加备用人员（当前余量为零）")
			}
		default:
			r.add("coverage", SeverityOK,
				"%s班余量 %d 人（可用 %d / 需求 %d）", shift, eligible-required, eligible, required)
		}
	}
}

// analyzeRestrictions 列出带个人限制的人员及其最大班次数
func analyzeRestrictions(r *Report, cctx *constraint.Context) {
	restricted := 0
	for _, s := range cctx.Staff {
		p := s.Preferences
		if p == nil {
			continue
		}
		var parts []string
		if len(p.OnlyShifts) > 0 {
			parts = append(parts, "仅 "+shiftSetNames(p.OnlyShifts))
		}
		if len(p.AvoidShifts) > 0 {
			parts = append(parts, "避开 "+shiftSetNames(p.AvoidShifts))
		}
		if len(p.AvoidDays) > 0 {
			parts = append(parts, fmt.Sprintf("避开 %d 个星期日序", len(p.AvoidDays)))
		}
		if len(parts) == 0 {
			continue
		}
		restricted++
		r.add("restriction", SeverityWarning, "%s（最多 %d 班）：%s",
			s.Name, s.MaxShifts(cctx.HoursPerShift, cctx.PeriodDays), strings.Join(parts, "；"))
	}
	if restricted == 0 {
		r.add("restriction", SeverityOK, "无人员个人限制")
	} else if restricted*2 > len(cctx.Staff) {
		r.add("restriction", SeverityWarning,
			"超过半数人员带限制（%d/%d）", restricted, len(cctx.Staff))
	}
}

// analyzeIncompatibilities 统计互斥人员对数量并评估风险
func analyzeIncompatibilities(r *Report, cctx *constraint.Context, hard []constraint.Declaration) {
	pairs := 0
	for _, d := range hard {
		if constraint.Type(d.Type) != constraint.TypeIncompatibility {
			continue
		}
		if raw, ok := d.Params["pairs"].([]interface{}); ok {
			pairs += len(raw)
		}
	}
	switch {
	case pairs == 0:
		r.add("incompatibility", SeverityOK, "未定义互斥人员对")
	case pairs*2 >= len(cctx.Staff):
		r.add("incompatibility", SeverityCritical,
			"互斥对过多（%d 对，团队 %d 人），排班空间严重受限", pairs, len(cctx.Staff))
		r.suggest("减少互斥人员对数量")
	case pairs*3 >= len(cctx.Staff):
		r.add("incompatibility", SeverityWarning, "互斥对较多：%d 对", pairs)
		r.suggest("减少互斥人员对数量")
	default:
		r.add("incompatibility", SeverityOK, "互斥对 %d 对，影响有限", pairs)
	}
}

// analyzeConsecutive 评估连班类约束的收紧程度
func analyzeConsecutive(r *Report, cctx *constraint.Context, hard []constraint.Declaration) {
	for _, d := range hard {
		switch constraint.Type(d.Type) {
		case constraint.TypeMaxConsecutiveNights:
			max, _ := paramInt(d.Params, "max")
			if max <= 0 {
				max = 3
			}
			if max < cctx.Days/2 {
				r.add("consecutive", SeverityWarning,
					"最大连续夜班 %d，可能限制夜班排布", max)
			} else {
				r.add("consecutive", SeverityOK, "最大连续夜班 %d", max)
			}
		case constraint.TypeMaxConsecutiveWorkDays:
			max, _ := paramInt(d.Params, "max_days")
			if max <= 0 {
				max = 6
			}
			if max < 5 {
				r.add("consecutive", SeverityWarning,
					"最大连续工作日 %d，对整周排班限制很强", max)
				r.suggest("放宽最大连续工作日约束")
			} else {
				r.add("consecutive", SeverityOK, "最大连续工作日 %d", max)
			}
		case constraint.TypeMinRestHours:
			r.add("consecutive", SeverityOK, "最小休息间隔约束生效（禁止夜班接早班）")
		}
	}
}

func shiftSetNames(set map[model.ShiftType]bool) string {
	var names []string
	for s := range set {
		names = append(names, s.String())
	}
	sort.Strings(names)
	return strings.Join(names, "/")
}

func paramInt(params map[string]interface{}, key string) (int, bool) {
	v, ok := params[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
