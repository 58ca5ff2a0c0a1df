// Package app 提供了应用程序的构建和管理功能，包括服务的启动、停止和资源清理。
package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/wyfcoding/inversion/server"
)

// App 是应用程序的核心容器，负责管理应用程序的生命周期。
// 包括启动注册的服务器、等待退出信号、以及按相反顺序释放所有资源。
type App struct {
	name      string       // 应用程序的名称。
	logger    *slog.Logger // 应用程序的日志记录器。
	opts      options
	lifecycle *Lifecycle
}

// New 创建一个新的应用程序实例。
func New(name string, logger *slog.Logger, opts ...Option) *App {
	o := options{shutdownTimeout: 10 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = slog.Default()
	}

	lc := NewLifecycle(logger)
	for _, hook := range o.hooks {
		lc.Append(hook)
	}
	return &App{
		name:      name,
		logger:    logger,
		opts:      o,
		lifecycle: lc,
	}
}

// Run 启动应用程序并阻塞，直到 ctx 被取消或任一服务器异常退出。
// 调用方通常传入 signal.NotifyContext 得到的上下文。
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.logger.Info("Application starting...", "name", a.name, "pid", os.Getpid())

	if err := a.lifecycle.Start(ctx); err != nil {
		return errors.Join(err, a.stop())
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(a.opts.servers))
	for _, srv := range a.opts.servers {
		wg.Add(1)
		go func(s server.Server) {
			defer wg.Done()
			// Start 阻塞到 ctx 取消；任何一个服务器失败都会触发整体关闭。
			if err := s.Start(ctx); err != nil {
				a.logger.Error("server failed", "error", err)
				errCh <- err
				cancel()
			}
		}(srv)
	}

	<-ctx.Done()
	a.logger.Info("shutting down application", "name", a.name)

	stopErr := a.stop()
	wg.Wait()

	// 所有 Start 均已返回，errCh 中即为全部启动或运行错误。
	close(errCh)
	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	if err := errors.Join(append(errs, stopErr)...); err != nil {
		return err
	}
	a.logger.Info("application shut down gracefully")
	return nil
}

func (a *App) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.opts.shutdownTimeout)
	defer cancel()

	var errs []error
	for _, srv := range a.opts.servers {
		if err := srv.Stop(ctx); err != nil {
			a.logger.Error("server failed to stop", "error", err)
			errs = append(errs, err)
		}
	}
	if err := a.lifecycle.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
