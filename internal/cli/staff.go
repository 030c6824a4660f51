package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhipai/zhipai/internal/database"
	"github.com/zhipai/zhipai/internal/loader"
	"github.com/zhipai/zhipai/internal/repository"
	"github.com/zhipai/zhipai/pkg/model"
)

var staffCmd = &cobra.Command{
	Use:   "staff",
	Short: "管理人员档案",
}

var staffSyncCmd = &cobra.Command{
	Use:   "sync <人员文件>",
	Short: "把人员文件同步到数据库",
	Long:  "按姓名比对：不存在的创建，已存在的更新合同工时与偏好。",
	Args:  cobra.ExactArgs(1),
	RunE:  runStaffSync,
}

var staffListCmd = &cobra.Command{
	Use:   "list",
	Short: "列出数据库中的人员档案",
	RunE:  runStaffList,
}

func init() {
	staffCmd.AddCommand(staffSyncCmd, staffListCmd)
	rootCmd.AddCommand(staffCmd)
}

func runStaffSync(cmd *cobra.Command, args []string) error {
	staff, err := loader.LoadStaff(args[0])
	if err != nil {
		return err
	}
	return withDatabase(func(ctx context.Context, db *database.DB) error {
		repo := repository.NewStaffRepository(db)
		created, updated := 0, 0
		for _, st := range staff {
			rec, err := repo.GetByName(ctx, st.Name)
			if err != nil {
				return err
			}
			if rec == nil {
				if err := repo.Create(ctx, &repository.StaffRecord{
					Name:            st.Name,
					ContractedHours: st.ContractedHours,
					Preferences:     st.Preferences,
				}); err != nil {
					return err
				}
				created++
				continue
			}
			rec.ContractedHours = st.ContractedHours
			rec.Preferences = st.Preferences
			if err := repo.Update(ctx, rec); err != nil {
				return err
			}
			updated++
		}
		fmt.Fprintf(cmd.OutOrStdout(), "同步完成：新建 %d 人，更新 %d 人\n", created, updated)
		return nil
	})
}

func runStaffList(cmd *cobra.Command, args []string) error {
	return withDatabase(func(ctx context.Context, db *database.DB) error {
		records, err := repository.NewStaffRepository(db).ListAll(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "共 %d 人\n", len(records))
		for _, rec := range records {
			fmt.Fprintf(out, "%s  %-16s %3dh  %s\n",
				rec.ID, rec.Name, rec.ContractedHours, describePreferences(rec.Preferences))
		}
		return nil
	})
}

// describePreferences 把偏好压缩成单行摘要
func describePreferences(p *model.Preferences) string {
	if p == nil {
		return "-"
	}
	var parts []string
	if s := shiftSetNames(p.PreferredShifts); s != "" {
		parts = append(parts, "偏好:"+s)
	}
	if s := shiftSetNames(p.AvoidShifts); s != "" {
		parts = append(parts, "回避:"+s)
	}
	if s := shiftSetNames(p.OnlyShifts); s != "" {
		parts = append(parts, "仅排:"+s)
	}
	if len(p.AvoidDays) > 0 {
		days := make([]int, 0, len(p.AvoidDays))
		for d := range p.AvoidDays {
			days = append(days, d)
		}
		sort.Ints(days)
		strs := make([]string, len(days))
		for i, d := range days {
			strs[i] = fmt.Sprintf("%d", d)
		}
		parts = append(parts, "忌日:"+strings.Join(strs, ","))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func shiftSetNames(set map[model.ShiftType]bool) string {
	var names []string
	for _, ws := range model.WorkingShifts {
		if set[ws] {
			names = append(names, ws.String())
		}
	}
	return strings.Join(names, ",")
}
