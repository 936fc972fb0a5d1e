package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"context-service-go/internal/api/handler"
	"context-service-go/internal/api/router"
	"context-service-go/internal/config"
	"context-service-go/internal/fetcher"
	"context-service-go/internal/logger"
	"context-service-go/internal/parser"
	"context-service-go/internal/processor"
	"context-service-go/internal/storage"
	"context-service-go/internal/tracing"

	"github.com/cloudwego/hertz/pkg/app/server"
	hertzconfig "github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	hertzzerolog "github.com/hertz-contrib/logger/zerolog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/spf13/pflag"
)

func main() {
	configPath := pflag.String("config", "", "配置文件路径，为空时按默认位置查找")
	pflag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载配置文件失败")
	}

	// 2. 初始化日志系统
	initLogger(cfg)

	// 3. 初始化链路追踪
	ctx := context.Background()
	if cfg.Tracing.Enabled {
		provider, err := tracing.InitProvider(ctx, cfg.Tracing.Endpoint, cfg.Tracing.ServiceName, cfg.Tracing.SampleRatio)
		if err != nil {
			logger.Fatal().Err(err).Msg("初始化链路追踪失败")
		}
		defer func() {
			if err := provider.Shutdown(context.Background()); err != nil {
				logger.Warn().Err(err).Msg("关闭链路追踪失败")
			}
		}()
	}

	// 4. 初始化存储管理器（各组件均可选）
	storageManager, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化存储管理器失败")
	}
	defer storageManager.Close()

	// 5. 加载关键词表
	taxonomy, err := loadTaxonomy(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载关键词表失败")
	}

	// 6. 组装文档获取器
	fetchOpts := []fetcher.Option{
		fetcher.WithTimeout(time.Duration(cfg.Fetcher.TimeoutSeconds) * time.Second),
		fetcher.WithMaxBodyBytes(cfg.Fetcher.MaxBodyBytes),
	}
	if storageManager.MinIO != nil {
		fetchOpts = append(fetchOpts, fetcher.WithObjectLoader(storageManager.MinIO))
	}
	docFetcher := fetcher.NewHTTPFetcher(fetchOpts...)

	// 7. 组装编排器和异步持久化器
	procOpts := []processor.Option{
		processor.WithParser(parser.NewResumeParser(taxonomy)),
		processor.WithFetcher(docFetcher),
		processor.WithCache(processor.NewResponseCache(
			cfg.Cache.Capacity,
			time.Duration(cfg.Cache.TTLMinutes)*time.Minute,
		)),
	}
	if storageManager.Redis != nil {
		procOpts = append(procOpts, processor.WithRedis(storageManager.Redis))
	}

	proc := processor.NewContextProcessor(procOpts...)

	persister := processor.NewPersister(storageManager, proc.Metrics(), cfg.Persistence.QueueSize, cfg.Persistence.Workers)
	persister.SetRouting(cfg.RabbitMQ.ContextEventsExchange, cfg.RabbitMQ.ParsedRoutingKey)
	processor.WithPersister(persister)(proc)
	defer persister.Close()

	// 8. 创建HTTP服务器
	serverOpts := []hertzconfig.Option{
		server.WithHostPorts(cfg.Server.Address),
	}
	var tracerCfg *hertztracing.Config
	if cfg.Tracing.Enabled {
		tracer, tcfg := hertztracing.NewServerTracer()
		serverOpts = append(serverOpts, tracer)
		tracerCfg = tcfg
	}

	h := server.Default(serverOpts...)
	if tracerCfg != nil {
		h.Use(hertztracing.ServerMiddleware(tracerCfg))
	}

	// 9. 注册路由
	contextHandler := handler.NewContextHandler(cfg, proc, storageManager)
	router.RegisterRoutes(h, cfg, contextHandler)

	// 10. 启动HTTP服务器
	go func() {
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()
	logger.Info().Str("address", cfg.Server.Address).Msg("上下文解析服务已启动")

	// 11. 等待终止信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("接收到终止信号，正在优雅退出...")

	// 12. 优雅关闭HTTP服务器，持久化队列由defer排空
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("服务器关闭失败")
	}

	logger.Info().Msg("优雅退出完成")
}

// initLogger 初始化应用日志并接管hertz框架日志
func initLogger(cfg *config.Config) {
	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})

	logger.Logger = logger.Logger.With().
		Str("app", "context-service").
		Logger()

	// hertz框架日志走同一套zerolog输出
	hlog.SetLogger(hertzzerolog.New(
		hertzzerolog.WithOutput(os.Stdout),
		hertzzerolog.WithLevel(hertzLogLevel(cfg.Logger.Level)),
	))
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

// loadTaxonomy 加载关键词表，未配置路径时使用内置表
func loadTaxonomy(cfg *config.Config) (*parser.Taxonomy, error) {
	if cfg.Taxonomy.Path == "" {
		return parser.DefaultTaxonomy(), nil
	}
	taxonomy, err := parser.LoadTaxonomy(cfg.Taxonomy.Path)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("path", cfg.Taxonomy.Path).Msg("已加载外部关键词表")
	return taxonomy, nil
}
