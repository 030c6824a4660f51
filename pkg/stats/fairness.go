package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/zhipai/zhipai/pkg/model"
)

// FairnessMetrics 公平性指标
type FairnessMetrics struct {
	WorkloadGini     float64 `json:"workload_gini"`      // 工时基尼系数 (0=完全公平)
	WorkloadVariance float64 `json:"workload_variance"`  // 工时方差
	WorkloadStdDev   float64 `json:"workload_std_dev"`   // 工时标准差
	AvgHours         float64 `json:"avg_hours"`          // 人均工时
	MaxHours         float64 `json:"max_hours"`          // 最大工时
	MinHours         float64 `json:"min_hours"`          // 最小工时
	NightShiftGini   float64 `json:"night_shift_gini"`   // 夜班分配基尼系数
	WeekendShiftGini float64 `json:"weekend_shift_gini"` // 周末班分配基尼系数
	OverallScore     float64 `json:"overall_score"`      // 综合公平性评分 (0-100)
}

// Fairness 基于投影计算公平性指标
func Fairness(p *Projection) *FairnessMetrics {
	n := len(p.StaffSummary)
	if n == 0 {
		return &FairnessMetrics{OverallScore: 100}
	}

	hours := make([]float64, n)
	nights := make([]float64, n)
	weekends := make([]float64, n)
	for i, ss := range p.StaffSummary {
		hours[i] = float64(ss.WorkedHours)
		for d, s := range ss.Schedule {
			if s == model.ShiftNight {
				nights[i]++
			}
			wd := model.Weekday(d)
			if s.IsWorking() && (wd == 5 || wd == 6) {
				weekends[i]++
			}
		}
	}

	avg := stat.Mean(hours, nil)
	variance := stat.PopVariance(hours, nil)
	stdDev := math.Sqrt(variance)
	minH, maxH := hours[0], hours[0]
	for _, h := range hours {
		if h < minH {
			minH = h
		}
		if h > maxH {
			maxH = h
		}
	}

	workloadGini := gini(hours)
	nightGini := gini(nights)
	weekendGini := gini(weekends)

	return &FairnessMetrics{
		WorkloadGini:     workloadGini,
		WorkloadVariance: variance,
		WorkloadStdDev:   stdDev,
		AvgHours:         avg,
		MaxHours:         maxH,
		MinHours:         minH,
		NightShiftGini:   nightGini,
		WeekendShiftGini: weekendGini,
		OverallScore:     overallScore(workloadGini, nightGini, weekendGini),
	}
}

// gini 计算基尼系数，全零序列视为完全公平
func gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var total, weighted float64
	for i, v := range sorted {
		total += v
		weighted += float64(i+1) * v
	}
	if total == 0 {
		return 0
	}
	return (2*weighted - float64(n+1)*total) / (float64(n) * total)
}

// overallScore 由各基尼系数合成 0-100 的综合评分
// 工时公平权重最高，夜班次之，周末最低
func overallScore(workload, night, weekend float64) float64 {
	score := 100 * (1 - 0.5*workload - 0.3*night - 0.2*weekend)
	if score < 0 {
		return 0
	}
	return score
}
