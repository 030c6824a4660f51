package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhipai/zhipai/internal/constraints"
)

var constraintsCmd = &cobra.Command{
	Use:   "constraints [名称]",
	Short: "列出支持的约束类型",
	Long:  "不带参数时列出全部约束类型；指定名称时输出该约束的参数说明。",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConstraints,
}

func init() {
	rootCmd.AddCommand(constraintsCmd)
}

func runConstraints(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		def, ok := constraints.Lookup(args[0])
		if !ok {
			return fmt.Errorf("未知约束类型: %q", args[0])
		}
		fmt.Fprintf(out, "%s（%s，%s）\n", def.DisplayName, def.Name, def.Type)
		fmt.Fprintf(out, "分类：%s\n", def.Category)
		fmt.Fprintf(out, "说明：%s\n", def.Description)
		if len(def.Params) > 0 {
			fmt.Fprintln(out, "参数：")
			for _, p := range def.Params {
				line := fmt.Sprintf("  %-14s %-6s %s", p.Name, p.Type, p.Description)
				if p.Default != "" {
					line += fmt.Sprintf("（默认 %s）", p.Default)
				}
				fmt.Fprintln(out, line)
			}
		}
		return nil
	}

	fmt.Fprintln(out, "硬约束：")
	for _, def := range constraints.HardDefinitions() {
		fmt.Fprintf(out, "  %-26s %s\n", def.Name, def.DisplayName)
	}
	fmt.Fprintln(out, "\n软约束：")
	for _, def := range constraints.SoftDefinitions() {
		fmt.Fprintf(out, "  %-26s %s\n", def.Name, def.DisplayName)
	}
	return nil
}
