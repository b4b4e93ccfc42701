// rosterctl 是排班引擎的命令行入口，供脚本化/批量运行使用：读取一份输入文档，
// 打印生成的排班或失败响应体到标准输出。
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/shiftforge/rosterengine/internal/config"
	"github.com/shiftforge/rosterengine/pkg/roster"
	"github.com/shiftforge/rosterengine/pkg/roster/individual"
)

func main() {
	inputPath := flag.String("input", "", "path to the input document (defaults to stdin)")
	runID := flag.String("run-id", "cli", "correlation id recorded on the diagnostic log")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	var raw []byte
	if *inputPath != "" {
		raw, err = os.ReadFile(*inputPath)
	} else {
		raw, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "read input:", err)
		os.Exit(1)
	}

	engine := roster.NewEngine(individual.Params{
		MaxTimeSeconds:   cfg.Solver.MaxTimeSeconds,
		NumWorkers:       cfg.Solver.NumWorkers,
		UnderstaffWeight: cfg.Solver.UnderstaffWeight,
		PatternWeight:    cfg.Solver.PatternWeight,
	})

	result, err := engine.Schedule(*runID, raw)
	if err != nil {
		fmt.Fprintln(os.Stderr, "schedule:", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if result.Failure != nil {
		_ = enc.Encode(result.Failure)
		os.Exit(1)
	}
	if err := enc.Encode(result.Roster); err != nil {
		fmt.Fprintln(os.Stderr, "encode result:", err)
		os.Exit(1)
	}
}
