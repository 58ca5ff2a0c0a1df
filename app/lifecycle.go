package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Hook 定义了生命周期钩子，包含启动和停止逻辑
type Hook struct {
	Name    string
	OnStart func(ctx context.Context) error
	OnStop  func(ctx context.Context) error
}

// Lifecycle 管理应用程序中多个组件的生命周期
type Lifecycle struct {
	logger  *slog.Logger
	mu      sync.Mutex
	hooks   []Hook
	started int // 已成功启动的钩子数量，Stop 只回收这些组件
}

// NewLifecycle 创建一个新的生命周期管理器
func NewLifecycle(logger *slog.Logger) *Lifecycle {
	return &Lifecycle{logger: logger}
}

// Append 添加一个生命周期钩子
func (l *Lifecycle) Append(hook Hook) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hooks = append(l.hooks, hook)
}

// Start 按顺序启动所有组件，遇到第一个错误即停止。
func (l *Lifecycle) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, hook := range l.hooks {
		if hook.OnStart != nil {
			l.logger.Info("Lifecycle: starting component", "name", hook.Name)
			if err := hook.OnStart(ctx); err != nil {
				l.logger.Error("Lifecycle: failed to start component", "name", hook.Name, "error", err)
				return err
			}
		}
		l.started++
	}
	return nil
}

// Stop 以相反的顺序停止已启动的组件，返回所有失败的合并错误。
func (l *Lifecycle) Stop(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var errs []error
	for i := l.started - 1; i >= 0; i-- {
		hook := l.hooks[i]
		if hook.OnStop == nil {
			continue
		}
		l.logger.Info("Lifecycle: stopping component", "name", hook.Name)
		if err := hook.OnStop(ctx); err != nil {
			l.logger.Error("Lifecycle: failed to stop component", "name", hook.Name, "error", err)
			errs = append(errs, err)
		}
	}
	l.started = 0
	return errors.Join(errs...)
}
