// Package cli 排班引擎命令行入口
package cli

import (
	"github.com/spf13/cobra"

	"github.com/zhipai/zhipai/internal/config"
	"github.com/zhipai/zhipai/pkg/logger"
)

// 构建信息（通过 ldflags 注入）
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	cfgPath  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:     "zhipai",
	Short:   "智排 排班求解引擎",
	Long:    "智排：基于回溯搜索与分支定界的员工排班求解引擎。",
	Version: Version + " (" + GitCommit + ")",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		level := cfg.App.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		logger.Init(logger.Config{Level: level, Format: "console"})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "配置文件路径（YAML）")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "日志级别，覆盖配置文件")
}

// Execute 运行命令行
func Execute() error { return rootCmd.Execute() }

func loadConfig() (*config.Config, error) {
	return config.Load(cfgPath)
}
