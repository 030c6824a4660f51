package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/zhipai/zhipai/internal/database"
	"github.com/zhipai/zhipai/internal/repository"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "管理已保存的排班历史",
}

var historyListFlags struct {
	search string
	limit  int
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "列出排班历史",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "查看一条排班历史",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyListCmd.Flags().StringVar(&historyListFlags.search, "search", "", "按名称模糊过滤")
	historyListCmd.Flags().IntVar(&historyListFlags.limit, "limit", 20, "最多显示条数")
	historyCmd.AddCommand(historyListCmd, historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

// withDatabase 打开数据库并完成迁移后执行回调，随命令生命周期关闭连接
func withDatabase(fn func(ctx context.Context, db *database.DB) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		return err
	}
	return fn(ctx, db)
}

func withRosterRepo(fn func(ctx context.Context, repo *repository.RosterRepository) error) error {
	return withDatabase(func(ctx context.Context, db *database.DB) error {
		return fn(ctx, repository.NewRosterRepository(db))
	})
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	return withRosterRepo(func(ctx context.Context, repo *repository.RosterRepository) error {
		filter := repository.DefaultListFilter().
			WithLimit(historyListFlags.limit).
			WithSearch(historyListFlags.search)

		rosters, total, err := repo.List(ctx, filter)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "共 %d 条记录\n", total)
		for _, r := range rosters {
			optimal := "启发"
			if r.Optimal {
				optimal = "最优"
			}
			fmt.Fprintf(out, "%s  %-16s %2d天  penalty=%-6d %s  %s\n",
				r.ID, r.Name, r.Days, r.Penalty, optimal, r.SolvedAt.Format("2006-01-02 15:04"))
		}
		return nil
	})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("非法的记录ID: %w", err)
	}
	return withRosterRepo(func(ctx context.Context, repo *repository.RosterRepository) error {
		roster, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if roster == nil {
			return fmt.Errorf("记录不存在: %s", id)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "班表 %s（%s）\n", roster.Name, roster.ID)
		fmt.Fprintf(out, "周期：%d 天（折算基准 %d 天，每班 %d 小时）\n",
			roster.Days, roster.PeriodDays, roster.HoursPerShift)
		fmt.Fprintf(out, "求解：penalty=%d iterations=%d optimal=%v\n",
			roster.Penalty, roster.Iterations, roster.Optimal)
		names := make([]string, 0, len(roster.Cells))
		for name := range roster.Cells {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "  %-16s", name)
			for _, s := range roster.Cells[name] {
				fmt.Fprintf(out, " %s", s)
			}
			fmt.Fprintln(out)
		}
		return nil
	})
}
