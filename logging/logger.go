// Package logging 提供了统一的结构化日志（slog）封装，支持OpenTelemetry追踪上下文注入与日志文件切割。
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace" // OpenTelemetry追踪
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// defaultLogger 是全局默认的Logger实例，采用单例模式。
	defaultLogger *Logger
	// once 用于确保InitLogger函数只被执行一次，保证defaultLogger的单例性。
	once sync.Once
	// level 是全局共享的动态日志级别，SetLevel 修改后对所有 Logger 立即生效。
	level = new(slog.LevelVar)
)

// Config 定义日志配置
type Config struct {
	Service    string
	Module     string
	Level      string
	File       string // 日志文件路径，为空则只输出到 stdout
	MaxSize    int    // 每个日志文件最大尺寸 (MB)
	MaxBackups int    // 保留旧日志文件的最大个数
	MaxAge     int    // 保留旧日志文件的最大天数
	Compress   bool   // 是否压缩旧日志
	Console    bool   // 配置了 File 时是否同时输出到 stdout
}

// Logger 结构体封装了原生的 `*slog.Logger`，并添加了服务名和模块名，方便在日志中区分来源。
type Logger struct {
	*slog.Logger
	Service string // 服务名称
	Module  string // 模块名称
}

// TraceHandler 是一个自定义的 `slog.Handler` 装饰器，用于从 `context.Context` 中提取并注入 `trace_id` 和 `span_id` 到日志记录中。
type TraceHandler struct {
	slog.Handler
}

// Handle 在处理日志记录之前尝试从上下文获取 SpanContext，有效时追加 trace_id 与 span_id。
func (h *TraceHandler) Handle(ctx context.Context, r slog.Record) error {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		)
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs 保持装饰器在派生 Handler 上依然生效。
func (h *TraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TraceHandler{Handler: h.Handler.WithAttrs(attrs)}
}

// WithGroup 保持装饰器在派生 Handler 上依然生效。
func (h *TraceHandler) WithGroup(name string) slog.Handler {
	return &TraceHandler{Handler: h.Handler.WithGroup(name)}
}

// ParseLevel 将字符串级别转换为 slog.Level，未知取值按 info 处理。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetLevel 动态调整全局日志级别，供配置热更新使用。
func SetLevel(s string) {
	level.Set(ParseLevel(s))
}

// NewFromConfig 创建一个新的Logger实例。
// 支持通过 Config 结构体配置日志切割。
func NewFromConfig(cfg Config) *Logger {
	level.Set(ParseLevel(cfg.Level))

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "timestamp"
			}
			return a
		},
	}

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)

	// 如果配置了文件路径，则使用 lumberjack 进行日志切割
	if cfg.File != "" {
		fileHandler := slog.NewJSONHandler(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize, // MB
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge, // days
			Compress:   cfg.Compress,
		}, opts)
		if cfg.Console {
			handler = newMultiHandler(handler, fileHandler)
		} else {
			handler = fileHandler
		}
	}

	logger := slog.New(&TraceHandler{Handler: handler}).With(
		slog.String("service", cfg.Service),
		slog.String("module", cfg.Module),
	)

	return &Logger{
		Logger:  logger,
		Service: cfg.Service,
		Module:  cfg.Module,
	}
}

// NewLogger 是创建一个带有简单参数的 logger 的兼容别名。
func NewLogger(service, module string, lvl ...string) *Logger {
	l := "info"
	if len(lvl) > 0 {
		l = lvl[0]
	}
	return NewFromConfig(Config{
		Service: service,
		Module:  module,
		Level:   l,
	})
}

// InitLogger 初始化全局默认日志记录器并设置为 slog 默认实例。
func InitLogger(cfg Config) *Logger {
	once.Do(func() {
		defaultLogger = NewFromConfig(cfg)
		slog.SetDefault(defaultLogger.Logger)
	})
	return defaultLogger
}

// Default 返回默认日志记录器实例
func Default() *Logger {
	if defaultLogger == nil {
		return InitLogger(Config{Service: "inversion", Module: "default", Level: "info"})
	}
	return defaultLogger
}

// Named 返回附加了组件名的子 Logger。
func (l *Logger) Named(module string) *Logger {
	return &Logger{
		Logger:  l.Logger.With(slog.String("component", module)),
		Service: l.Service,
		Module:  module,
	}
}

// LogDuration 记录操作耗时
func LogDuration(ctx context.Context, logger *slog.Logger, operation string, args ...any) func() {
	start := time.Now()
	return func() {
		logArgs := append(args, "duration", time.Since(start))
		logger.InfoContext(ctx, fmt.Sprintf("%s finished", operation), logArgs...)
	}
}
