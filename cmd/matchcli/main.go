// matchcli 离线评分工具：读取本地简历和职位描述文件，输出匹配结果。
// 与HTTP服务共用同一条匹配流水线，便于脱离服务器调试评分。
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/spf13/pflag"

	"resume-match-go/internal/config"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/types"
)

var (
	resumePath string
	jobPath    string
	configPath string
	initConfig string
	jsonOutput bool
	verbose    bool
)

func main() {
	pflag.StringVarP(&resumePath, "resume", "r", "", "简历文件路径 (必填，支持 pdf/docx/txt)")
	pflag.StringVarP(&jobPath, "job", "j", "", "职位描述文件路径 (必填)")
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径，留空时使用内置默认值")
	pflag.StringVar(&initConfig, "init-config", "", "在指定路径生成示例配置文件后退出")
	pflag.BoolVar(&jsonOutput, "json", false, "以JSON格式输出结果")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")
	pflag.Parse()

	if initConfig != "" {
		if err := config.CreateSampleConfig(initConfig); err != nil {
			fmt.Printf("生成示例配置失败: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if resumePath == "" || jobPath == "" {
		fmt.Println("错误: 必须同时提供 --resume 和 --job 参数。")
		pflag.Usage()
		os.Exit(1)
	}

	cfg := loadConfig()
	initLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// 1. 组装匹配流水线
	matchProcessor, engine, err := processor.CreateProcessorFromConfig(ctx, cfg,
		processor.WithsetDebug(verbose))
	if err != nil {
		fmt.Printf("初始化匹配处理器失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 一次性运行，语义引擎需要同步预热才来得及参与本次评分
	if cfg.Semantic.Enabled && engine != nil {
		if err := engine.Init(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "警告: 语义引擎初始化失败，使用纯关键词评分: %v\n", err)
		}
	}

	// 3. 读取输入文件
	resumeBytes, err := os.ReadFile(resumePath)
	if err != nil {
		fmt.Printf("读取简历文件失败: %v\n", err)
		os.Exit(1)
	}
	jobBytes, err := os.ReadFile(jobPath)
	if err != nil {
		fmt.Printf("读取职位描述文件失败: %v\n", err)
		os.Exit(1)
	}

	// 4. 执行匹配
	requestID := newRequestID()
	result, err := matchProcessor.MatchFiles(ctx, requestID,
		processor.FileInput{Data: resumeBytes, Filename: resumePath},
		processor.FileInput{Data: jobBytes, Filename: jobPath},
	)
	if err != nil {
		fmt.Printf("匹配失败: %v\n", err)
		os.Exit(1)
	}

	// 5. 输出结果
	if jsonOutput {
		printJSON(result)
	} else {
		printPretty(result)
	}
}

func loadConfig() *config.Config {
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			fmt.Printf("加载配置失败: %v\n", err)
			os.Exit(1)
		}
		return cfg
	}

	// 未显式指定时先找默认位置，找不到就用内置默认值
	if cfg, err := config.LoadConfig(""); err == nil {
		return cfg
	}
	return config.Default()
}

func initLogger(cfg *config.Config) {
	level := "warn"
	if verbose {
		level = "debug"
	}
	logger.Init(logger.Config{
		Level:      level,
		Format:     "pretty",
		TimeFormat: cfg.Logger.TimeFormat,
	})
}

func newRequestID() string {
	uuidV7, err := uuid.NewV7()
	if err != nil {
		return "cli"
	}
	return "cli-" + uuidV7.String()
}

func printJSON(result *types.MatchResult) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Printf("序列化结果失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func printPretty(result *types.MatchResult) {
	fmt.Println("===== 匹配结果 =====")
	fmt.Printf("候选人:   %s\n", result.CandidateName)
	fmt.Printf("目标岗位: %s\n", result.JobTitle)
	fmt.Println()
	fmt.Printf("  技能匹配:   %3d\n", result.MatchScores.SkillsMatch)
	fmt.Printf("  经验匹配:   %3d\n", result.MatchScores.ExperienceMatch)
	fmt.Printf("  教育匹配:   %3d\n", result.MatchScores.EducationMatch)
	fmt.Println("  ----------------")
	fmt.Printf("  综合得分:   %3d\n", result.MatchScores.OverallScore)
	fmt.Println()
	fmt.Printf("评分方式: %s\n", result.Details.MatchingMethod)
}
