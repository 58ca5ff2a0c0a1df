package server

import "context"

// Server 是可由 app 统一启动和停止的服务器。
type Server interface {
	// Start 阻塞运行，直到 ctx 被取消或发生错误。
	Start(ctx context.Context) error
	// Stop 在 ctx 的期限内优雅关闭。
	Stop(ctx context.Context) error
}
