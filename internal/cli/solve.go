package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhipai/zhipai/internal/config"
	"github.com/zhipai/zhipai/internal/database"
	"github.com/zhipai/zhipai/internal/loader"
	"github.com/zhipai/zhipai/internal/render"
	"github.com/zhipai/zhipai/internal/repository"
	apperrors "github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/logger"
	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
	"github.com/zhipai/zhipai/pkg/scheduler/solver"
	"github.com/zhipai/zhipai/pkg/stats"
)

var solveFlags struct {
	staffPath       string
	constraintsPath string
	days            int
	periodDays      int
	hoursPerShift   int
	maxIterations   int
	maxTime         time.Duration
	save            bool
	name            string
}

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "求解排班并输出班表",
	RunE:  runSolve,
}

func init() {
	f := solveCmd.Flags()
	f.StringVar(&solveFlags.staffPath, "staff", "staff.json", "人员文件路径")
	f.StringVar(&solveFlags.constraintsPath, "constraints", "constraints.json", "约束文件路径")
	f.IntVar(&solveFlags.days, "days", 0, "排班天数，0 取配置默认")
	f.IntVar(&solveFlags.periodDays, "period-days", 0, "合同折算周期天数，0 取排班天数")
	f.IntVar(&solveFlags.hoursPerShift, "hours-per-shift", 0, "每班工时，0 取配置默认")
	f.IntVar(&solveFlags.maxIterations, "max-iterations", 0, "搜索节点预算，0 取配置默认")
	f.DurationVar(&solveFlags.maxTime, "max-time", 0, "搜索时间预算，0 取配置默认")
	f.BoolVar(&solveFlags.save, "save", false, "求解成功后把班表写入数据库")
	f.StringVar(&solveFlags.name, "name", "default", "班表名称（保存历史时使用）")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	staff, err := loader.LoadStaff(solveFlags.staffPath)
	if err != nil {
		return err
	}
	hardDecls, softDecls, err := loader.LoadConstraints(solveFlags.constraintsPath)
	if err != nil {
		return err
	}

	days := solveFlags.days
	if days <= 0 {
		days = cfg.Schedule.Days
	}
	hoursPerShift := solveFlags.hoursPerShift
	if hoursPerShift <= 0 {
		hoursPerShift = cfg.Schedule.HoursPerShift
	}
	periodDays := solveFlags.periodDays
	if periodDays <= 0 {
		periodDays = cfg.Schedule.PeriodDays
	}

	slots := buildSlots(days, cfg.Schedule, hardDecls)
	cctx := constraint.NewContext(staff, days, periodDays, hoursPerShift, slots)
	set, err := constraint.Compile(cctx, hardDecls, softDecls)
	if err != nil {
		return err
	}

	budget := solver.Budget{
		MaxIterations: cfg.Solver.MaxIterations,
		MaxTime:       cfg.Solver.MaxTime,
	}
	if solveFlags.maxIterations > 0 {
		budget.MaxIterations = solveFlags.maxIterations
	}
	if solveFlags.maxTime > 0 {
		budget.MaxTime = solveFlags.maxTime
	}

	result, err := solver.New().Solve(ctx, solver.Request{
		Staff:         staff,
		Days:          days,
		PeriodDays:    periodDays,
		HoursPerShift: hoursPerShift,
		Slots:         slots,
		Constraints:   set,
		Budget:        budget,
	})
	if err != nil {
		if apperrors.Is(err, apperrors.CodeInfeasible) {
			fmt.Fprintln(cmd.OutOrStdout(), "无可行解，可运行 zhipai check 查看诊断。")
		}
		return err
	}

	projection := stats.Project(result.Assignment, slots, hoursPerShift, periodDays)
	out := cmd.OutOrStdout()
	if err := render.Table(out, projection); err != nil {
		return err
	}
	if err := render.Legend(out); err != nil {
		return err
	}

	fairness := stats.Fairness(projection)
	fmt.Fprintf(out, "\n求解：penalty=%d optimal=%v iterations=%d duration=%s\n",
		result.Penalty, result.Optimal, result.Iterations, result.Duration.Round(time.Millisecond))
	fmt.Fprintf(out, "公平性：工时基尼=%.3f 夜班基尼=%.3f 综合评分=%.1f\n",
		fairness.WorkloadGini, fairness.NightShiftGini, fairness.OverallScore)

	if solveFlags.save {
		return saveRoster(ctx, cfg, result, periodDays, hoursPerShift)
	}
	return nil
}

// saveRoster 把求解结果持久化为排班历史
func saveRoster(ctx context.Context, cfg *config.Config, result *solver.Result, periodDays, hoursPerShift int) error {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		return apperrors.Wrap(err, apperrors.CodeDatabaseError, "初始化表结构失败")
	}

	roster := repository.NewRoster(solveFlags.name, result.Assignment,
		periodDays, hoursPerShift, result.Penalty, result.Iterations, result.Optimal)
	roster.ID = result.RunID
	if err := repository.NewRosterRepository(db).Create(ctx, roster); err != nil {
		return err
	}
	logger.Info().
		Str("roster_id", roster.ID.String()).
		Str("name", roster.Name).
		Msg("班表已保存")
	return nil
}

// buildSlots 根据覆盖约束声明（或配置默认值）展开全周期槽位
func buildSlots(days int, sched config.ScheduleConfig, hardDecls []constraint.Declaration) []model.Slot {
	min := map[model.ShiftType]int{
		model.ShiftMorning:   sched.CoverageMorning,
		model.ShiftAfternoon: sched.CoverageAfternoon,
		model.ShiftNight:     sched.CoverageNight,
	}
	max := map[model.ShiftType]int{}

	for _, d := range hardDecls {
		if constraint.Type(d.Type) != constraint.TypeCoverageMinimum {
			continue
		}
		for shift, key := range map[model.ShiftType]string{
			model.ShiftMorning:   "morning",
			model.ShiftAfternoon: "afternoon",
			model.ShiftNight:     "night",
		} {
			if v, ok := declInt(d.Params, key); ok {
				min[shift] = v
			}
			if v, ok := declInt(d.Params, "max_"+key); ok {
				max[shift] = v
			}
		}
		break
	}
	return model.UniformSlots(days, min, max)
}

func declInt(params map[string]interface{}, key string) (int, bool) {
	switch n := params[key].(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
