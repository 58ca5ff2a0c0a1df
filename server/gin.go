// Package server 提供了启动和管理 HTTP 服务器的封装。
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Options 定义 GinServer 的超时参数，零值表示使用默认值。
type Options struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// GinServer 封装了标准的 `http.Server`，专门用于运行 Gin 引擎，并提供了优雅的启动和关闭功能。
type GinServer struct {
	server          *http.Server
	addr            string
	shutdownTimeout time.Duration
	logger          *slog.Logger

	stopOnce sync.Once
	stopErr  error
}

// NewGinServer 创建一个新的Gin服务器实例。
func NewGinServer(engine *gin.Engine, addr string, opts Options, logger *slog.Logger) *GinServer {
	shutdown := opts.ShutdownTimeout
	if shutdown <= 0 {
		shutdown = 5 * time.Second
	}
	return &GinServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           engine, // 将Gin引擎作为HTTP处理器
			ReadTimeout:       opts.ReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      opts.WriteTimeout,
		},
		addr:            addr,
		shutdownTimeout: shutdown,
		logger:          logger,
	}
}

// Start 启动Gin HTTP服务器。
// 这是一个阻塞操作，它会监听上下文的取消事件以触发优雅关闭。
func (s *GinServer) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve 在给定的 listener 上提供服务，直到 ctx 被取消或服务出错。
func (s *GinServer) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("Starting Gin server", "addr", ln.Addr().String())

	errChan := make(chan error, 1)
	go func() {
		// 非 ErrServerClosed 的退出才视为真正的错误。
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Gin server stopping due to context cancellation.")
		return s.shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Stop 优雅地停止Gin服务器。
// 它会等待现有请求在给定超时时间内完成。
func (s *GinServer) Stop(ctx context.Context) error {
	s.logger.Info("Stopping Gin server gracefully")
	return s.shutdown(ctx)
}

// shutdown 只执行一次，Serve 与 Stop 并发触发时共享同一个结果。
func (s *GinServer) shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
		defer cancel()
		s.stopErr = s.server.Shutdown(ctx)
	})
	return s.stopErr
}
