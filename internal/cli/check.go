package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhipai/zhipai/internal/loader"
	"github.com/zhipai/zhipai/pkg/scheduler/constraint"
	"github.com/zhipai/zhipai/pkg/scheduler/diagnose"
)

var checkFlags struct {
	staffPath       string
	constraintsPath string
	days            int
	periodDays      int
	hoursPerShift   int
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "静态诊断排班配置的可行性",
	Long:  "不求解，只分析工时总量、覆盖余量与约束收紧程度，定位无解的可能原因。",
	RunE:  runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.StringVar(&checkFlags.staffPath, "staff", "staff.json", "人员文件路径")
	f.StringVar(&checkFlags.constraintsPath, "constraints", "constraints.json", "约束文件路径")
	f.IntVar(&checkFlags.days, "days", 0, "排班天数，0 取配置默认")
	f.IntVar(&checkFlags.periodDays, "period-days", 0, "合同折算周期天数，0 取排班天数")
	f.IntVar(&checkFlags.hoursPerShift, "hours-per-shift", 0, "每班工时，0 取配置默认")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	staff, err := loader.LoadStaff(checkFlags.staffPath)
	if err != nil {
		return err
	}
	hardDecls, softDecls, err := loader.LoadConstraints(checkFlags.constraintsPath)
	if err != nil {
		return err
	}

	days := checkFlags.days
	if days <= 0 {
		days = cfg.Schedule.Days
	}
	hoursPerShift := checkFlags.hoursPerShift
	if hoursPerShift <= 0 {
		hoursPerShift = cfg.Schedule.HoursPerShift
	}

	slots := buildSlots(days, cfg.Schedule, hardDecls)
	cctx := constraint.NewContext(staff, days, checkFlags.periodDays, hoursPerShift, slots)

	// 先走一遍编译，未知类型和非法参数在这里就会暴露
	if _, err := constraint.Compile(cctx, hardDecls, softDecls); err != nil {
		return err
	}

	report := diagnose.Analyze(cctx, hardDecls)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "诊断报告：%d 人 × %d 天\n", len(staff), days)
	fmt.Fprintf(out, "工时：可用 %dh / 需求 %dh\n\n", report.TotalContractHours, report.RequiredHours)

	marks := map[diagnose.Severity]string{
		diagnose.SeverityOK:       "[正常]",
		diagnose.SeverityWarning:  "[警告]",
		diagnose.SeverityCritical: "[严重]",
	}
	for _, f := range report.Findings {
		fmt.Fprintf(out, "%s %-16s %s\n", marks[f.Severity], f.Category, f.Message)
	}

	if len(report.Suggestions) > 0 {
		fmt.Fprintln(out, "\n建议：")
		for i, s := range report.Suggestions {
			fmt.Fprintf(out, "  %d. %s\n", i+1, s)
		}
	}
	if report.HasCritical() {
		fmt.Fprintln(out, "\n存在关键问题，当前配置大概率无可行解。")
	}
	return nil
}
