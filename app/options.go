package app

import (
	"context"
	"time"

	"github.com/wyfcoding/inversion/server"
)

// Option 是一个函数类型，用于配置应用程序选项。
type Option func(*options)

type options struct {
	servers         []server.Server // 应用程序管理的服务器列表。
	hooks           []Hook          // 按注册顺序启动、按相反顺序停止的组件。
	shutdownTimeout time.Duration
}

// WithServer 向应用程序添加一个或多个服务器，它们在 Run 时启动并在退出时被优雅关闭。
func WithServer(servers ...server.Server) Option {
	return func(o *options) {
		o.servers = append(o.servers, servers...)
	}
}

// WithHook 注册一个生命周期钩子。
func WithHook(hook Hook) Option {
	return func(o *options) {
		o.hooks = append(o.hooks, hook)
	}
}

// WithCleanup 注册一个只在关闭时执行的清理函数，例如关闭缓存、刷新追踪数据。
func WithCleanup(name string, cleanup func(ctx context.Context) error) Option {
	return WithHook(Hook{Name: name, OnStop: cleanup})
}

// WithShutdownTimeout 设置关闭阶段的总超时。
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}
