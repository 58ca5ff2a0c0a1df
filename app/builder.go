package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wyfcoding/inversion/cache"
	"github.com/wyfcoding/inversion/config"
	"github.com/wyfcoding/inversion/handler"
	"github.com/wyfcoding/inversion/health"
	"github.com/wyfcoding/inversion/logging"
	"github.com/wyfcoding/inversion/metrics"
	"github.com/wyfcoding/inversion/middleware"
	"github.com/wyfcoding/inversion/server"
	"github.com/wyfcoding/inversion/service"
	"github.com/wyfcoding/inversion/tracing"

	"github.com/gin-gonic/gin"
)

const (
	defaultMetricsPath = "/metrics"
	healthPath         = "/healthz"
)

// Builder 按配置组装计数服务：日志、追踪、指标、缓存、服务、路由与 HTTP 服务器。
type Builder struct {
	cfg            *config.Config
	version        string
	logger         *logging.Logger
	ginMiddleware  []gin.HandlerFunc
	healthCheckers map[string]health.Checker

	engine  *gin.Engine
	service *service.InversionService
	metrics *metrics.Metrics
}

// NewBuilder 创建一个新的应用构建器.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		cfg:            cfg,
		healthCheckers: make(map[string]health.Checker),
	}
}

// WithVersion 设置写入 build_info 指标的版本号.
func (b *Builder) WithVersion(version string) *Builder {
	b.version = version
	return b
}

// WithLogger 使用外部提供的日志记录器，未设置时按配置初始化全局日志.
func (b *Builder) WithLogger(logger *logging.Logger) *Builder {
	b.logger = logger
	return b
}

// WithGinMiddleware 追加 Gin 中间件，位于内置中间件之后.
func (b *Builder) WithGinMiddleware(mw ...gin.HandlerFunc) *Builder {
	b.ginMiddleware = append(b.ginMiddleware, mw...)
	return b
}

// WithHealthChecker 添加自定义健康检查.
func (b *Builder) WithHealthChecker(name string, checker health.Checker) *Builder {
	b.healthCheckers[name] = checker
	return b
}

// Engine 返回 Build 组装好的 Gin 引擎.
func (b *Builder) Engine() *gin.Engine { return b.engine }

// Service 返回 Build 创建的计数服务.
func (b *Builder) Service() *service.InversionService { return b.service }

// Metrics 返回 Build 创建的指标注册表.
func (b *Builder) Metrics() *metrics.Metrics { return b.metrics }

// Build 构建并组装完整的 App 实例.
func (b *Builder) Build() (*App, error) {
	if b.cfg == nil {
		return nil, fmt.Errorf("app: config is required")
	}
	cfg := b.cfg
	name := cfg.Server.Name

	logger := b.initLogger()
	var appOpts []Option

	shutdownTracer, err := tracing.InitTracer(cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	appOpts = append(appOpts, WithCleanup("tracer", shutdownTracer))

	b.metrics = metrics.NewMetrics(name)
	b.metrics.RegisterBuildInfo(name, b.version)

	var resultCache *cache.ResultCache
	if cfg.Cache.Enabled {
		resultCache, err = cache.NewResultCache(cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("init result cache: %w", err)
		}
		appOpts = append(appOpts, WithCleanup("result-cache", func(context.Context) error {
			return resultCache.Close()
		}))
		b.metrics.RegisterCacheEntries(resultCache.Len)
	}

	opts, err := service.OptionsFromConfig(cfg.Counter)
	if err != nil {
		return nil, err
	}
	b.service = service.New(opts, resultCache, b.metrics, logger.Named("service").Logger)

	svc := b.service
	config.RegisterReloadHook(func(next *config.Config) {
		_ = svc.ApplyConfig(next.Counter)
	})

	b.engine = b.newEngine(logger.Logger)

	srv := server.NewGinServer(b.engine, cfg.Server.Address(), server.Options{
		ReadTimeout:     cfg.Server.HTTP.ReadTimeout,
		WriteTimeout:    cfg.Server.HTTP.WriteTimeout,
		ShutdownTimeout: cfg.Server.HTTP.ShutdownTimeout,
	}, logger.Named("http").Logger)
	appOpts = append(appOpts, WithServer(srv), WithShutdownTimeout(2*cfg.Server.HTTP.ShutdownTimeout))

	return New(name, logger.Logger, appOpts...), nil
}

func (b *Builder) initLogger() *logging.Logger {
	if b.logger != nil {
		return b.logger
	}
	cfg := b.cfg
	b.logger = logging.InitLogger(logging.Config{
		Service:    cfg.Server.Name,
		Module:     "app",
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		Console:    cfg.Log.Console,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})
	return b.logger
}

func (b *Builder) newEngine(logger *slog.Logger) *gin.Engine {
	cfg := b.cfg
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = defaultMetricsPath
	}

	mws := []gin.HandlerFunc{
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.TracingMiddleware(cfg.Tracing.ServiceName),
		middleware.Logger(logger),
		middleware.HTTPMetricsMiddleware(b.metrics, middleware.MetricsOptions{
			SkipPaths: []string{metricsPath, healthPath},
		}),
		middleware.NewIPRateLimitMiddleware(cfg.Server.HTTP.RateLimit, cfg.Server.HTTP.RateBurst),
		middleware.NewConcurrencyLimitMiddleware(cfg.Server.HTTP.MaxConcurrency, cfg.Server.HTTP.ConcurrencyWait),
		middleware.MaxBodyBytes(cfg.Server.HTTP.MaxBodyBytes),
		middleware.TimeoutMiddleware(cfg.Server.HTTP.WriteTimeout),
	}
	engine := server.NewDefaultGinEngine(append(mws, b.ginMiddleware...)...)

	checkers := map[string]health.Checker{"counter": health.CounterChecker(b.service)}
	for name, checker := range b.healthCheckers {
		checkers[name] = checker
	}
	engine.GET(healthPath, health.Handler(cfg.Server.Name, checkers))

	if cfg.Metrics.Enabled {
		engine.GET(metricsPath, gin.WrapH(b.metrics.Handler()))
	}

	handler.NewInversionHandler(b.service, logger.With("component", "handler")).Register(engine)
	return engine
}
