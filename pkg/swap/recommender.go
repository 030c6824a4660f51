// Package swap 提供换班推荐
//
// 在已冻结的班表上，为想要让出某个班次的人员寻找可行的接班或
// 互换对象：逐候选试改班表，硬约束全过才入围，按软约束罚分变化
// 排序。
package swap

import (
	"fmt"
	"sort"

	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
)

// 换班方式
const (
	SwapTakeOver = "take_over" // 对方接班，本人转休
	SwapExchange = "exchange"  // 双方当天班次互换
)

// Recommendation 换班推荐
type Recommendation struct {
	StaffIdx     int     `json:"staff_idx"`
	Name         string  `json:"name"`
	SwapType     string  `json:"swap_type"`
	PenaltyDelta int     `json:"penalty_delta"` // 换班后总罚分变化，负数为改善
	Score        float64 `json:"score"`
	Reason       string  `json:"reason"`
	Rank         int     `json:"rank"`
}

// Options 推荐选项
type Options struct {
	MaxRecommendations int             // 最大推荐数量
	AllowExchange      bool            // 是否允许互换
	Exclude            map[string]bool // 排除的人员姓名
	MinScore           float64         // 最低得分
}

// DefaultOptions 返回默认选项
func DefaultOptions() *Options {
	return &Options{
		MaxRecommendations: 5,
		AllowExchange:      true,
		MinScore:           0,
	}
}

// Recommender 换班推荐器
type Recommender struct {
	ctx     *constraint.Context
	set     *constraint.Set
	builtin []constraint.Hard
}

// NewRecommender 创建换班推荐器
//
// 槽位覆盖与周期容量在求解时是内建硬约束、不在声明集合内，
// 试改班表时同样必须通过。
func NewRecommender(ctx *constraint.Context, set *constraint.Set) *Recommender {
	builtin := []constraint.Hard{constraint.NewCapacityConstraint()}
	if len(ctx.Slots) > 0 {
		builtin = append(builtin, constraint.NewCoverageConstraint(ctx.Slots))
	}
	return &Recommender{ctx: ctx, set: set, builtin: builtin}
}

// Recommend 为 (staffIdx, day) 的班次寻找换班对象
//
// 源格子必须是工作班次。返回结果按得分降序，同分按人员编号。
func (r *Recommender) Recommend(asg *model.Assignment, staffIdx, day int, opts *Options) ([]Recommendation, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if staffIdx < 0 || staffIdx >= len(asg.Staff()) || day < 0 || day >= asg.Days() {
		return nil, fmt.Errorf("格子越界: staff=%d day=%d", staffIdx, day)
	}
	shift := asg.Get(staffIdx, day)
	if !shift.IsWorking() {
		return nil, fmt.Errorf("%s 第 %d 天不是工作班次，无需换班", asg.Staff()[staffIdx].Name, day)
	}

	basePenalty := r.set.TotalPenalty(r.ctx, asg)
	var recs []Recommendation

	for idx, st := range asg.Staff() {
		if idx == staffIdx || opts.Exclude[st.Name] {
			continue
		}
		targetShift := asg.Get(idx, day)

		// 接班：对方当天休息时，对方接下本班，本人转休
		if targetShift == model.ShiftRest {
			if rec, ok := r.try(asg, basePenalty, staffIdx, idx, day, shift, model.ShiftRest, SwapTakeOver); ok {
				recs = append(recs, rec)
			}
			continue
		}

		// 互换：双方当天班次对调
		if opts.AllowExchange && targetShift != shift {
			if rec, ok := r.try(asg, basePenalty, staffIdx, idx, day, shift, targetShift, SwapExchange); ok {
				recs = append(recs, rec)
			}
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].StaffIdx < recs[j].StaffIdx
	})

	var out []Recommendation
	for _, rec := range recs {
		if rec.Score < opts.MinScore {
			continue
		}
		rec.Rank = len(out) + 1
		out = append(out, rec)
		if len(out) >= opts.MaxRecommendations {
			break
		}
	}
	return out, nil
}

// try 试改班表：target 接下 shift，source 改为 sourceNew
func (r *Recommender) try(asg *model.Assignment, basePenalty, source, target, day int, shift, sourceNew model.ShiftType, swapType string) (Recommendation, bool) {
	trial := asg.Clone()
	trial.Set(source, day, sourceNew)
	trial.Set(target, day, shift)

	for _, h := range r.builtin {
		if !h.IsSatisfied(r.ctx, trial) {
			return Recommendation{}, false
		}
	}
	if ok, _ := r.set.AllSatisfied(r.ctx, trial); !ok {
		return Recommendation{}, false
	}

	delta := r.set.TotalPenalty(r.ctx, trial) - basePenalty
	rec := Recommendation{
		StaffIdx:     target,
		Name:         asg.Staff()[target].Name,
		SwapType:     swapType,
		PenaltyDelta: delta,
		Score:        score(delta),
		Reason:       reason(swapType, delta),
	}
	return rec, true
}

// score 把罚分变化映射到 0-100，0 变化为 80 分，改善加分、恶化减分
func score(delta int) float64 {
	s := 80 - float64(delta)
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func reason(swapType string, delta int) string {
	verb := "接班"
	if swapType == SwapExchange {
		verb = "互换"
	}
	switch {
	case delta < 0:
		return fmt.Sprintf("%s后总罚分下降 %d", verb, -delta)
	case delta == 0:
		return verb + "不影响软约束得分"
	default:
		return fmt.Sprintf("%s后总罚分上升 %d", verb, delta)
	}
}
