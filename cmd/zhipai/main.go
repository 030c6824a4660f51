// 智排 排班求解引擎
// 主程序入口

package main

import (
	"os"

	"github.com/zhipai/zhipai/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
