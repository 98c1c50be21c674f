package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	hzconfig "github.com/cloudwego/hertz/pkg/common/config"
	hlog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/spf13/pflag"

	"resume-match-go/internal/api/handler"
	"resume-match-go/internal/api/router"
	"resume-match-go/internal/config"
	"resume-match-go/internal/constants"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/tracing"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径，留空时在默认位置查找")
	pflag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载配置失败")
	}

	// 2. 初始化日志系统
	initLogger(cfg)
	logger.Info().Str("address", cfg.Server.Address).Msg("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. 初始化链路追踪
	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化链路追踪失败")
	}

	// 4. 组装匹配流水线
	matchProcessor, engine, err := processor.CreateProcessorFromConfig(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化匹配处理器失败")
	}
	logger.Info().Msg("匹配处理器初始化成功")

	// 5. 语义引擎预热。失败不是致命错误，服务会降级到关键词路径。
	if cfg.Semantic.Enabled && cfg.Semantic.Warmup && engine != nil {
		go func() {
			if err := engine.Init(context.Background()); err != nil {
				logger.Warn().Err(err).Msg("语义引擎预热失败，评分将降级到关键词路径")
				return
			}
			logger.Info().Msg("语义引擎预热完成")
		}()
	}

	// 6. 创建HTTP服务器
	svrOpts := []hzconfig.Option{
		server.WithHostPorts(cfg.Server.Address),
		server.WithMaxRequestBodySize(cfg.Server.MaxUploadMB << 20),
		server.WithHandleMethodNotAllowed(true),
	}
	var tracingCfg *hertztracing.Config
	if cfg.Tracing.Enabled {
		tracer, tCfg := hertztracing.NewServerTracer()
		svrOpts = append(svrOpts, tracer)
		tracingCfg = tCfg
	}

	h := server.New(svrOpts...)
	if tracingCfg != nil {
		h.Use(hertztracing.ServerMiddleware(tracingCfg))
	}

	// 7. 注册路由
	matchHandler := handler.NewMatchHandler(cfg, matchProcessor, engine)
	router.RegisterRoutes(h, matchHandler)
	logger.Info().Msg("HTTP路由注册成功")

	// 8. 启动HTTP服务器
	logger.Info().Str("address", cfg.Server.Address).Msg("HTTP服务器启动中")
	go func() {
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()

	// 9. 等待终止信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("接收到终止信号，正在优雅退出...")

	// 10. 优雅关闭
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("服务器关闭失败")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("链路追踪关闭失败")
	}
	logger.Info().Msg("优雅退出完成")
}

// initLogger 初始化应用日志并把Hertz内部日志接到同一个zerolog输出
func initLogger(cfg *config.Config) {
	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	logger.Logger = logger.Logger.With().
		Str("app", "resume-match").
		Str("version", constants.AppVersion).
		Logger()

	hlog.SetLogger(hertzadapter.From(logger.Logger))
	hlog.SetLevel(hertzLogLevel(cfg.Logger.Level))
}

func hertzLogLevel(level string) hlog.Level {
	switch level {
	case "debug":
		return hlog.LevelDebug
	case "warn":
		return hlog.LevelWarn
	case "error":
		return hlog.LevelError
	default:
		return hlog.LevelInfo
	}
}
