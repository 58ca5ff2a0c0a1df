package limiter

import (
	"context"
	"errors"
	"log/slog"
)

// ErrConcurrencyLimit 表示并发上限已触发。
var ErrConcurrencyLimit = errors.New("concurrency limit exceeded")

// ConcurrencyLimiter 定义并发控制的通用接口。
type ConcurrencyLimiter interface {
	Acquire(ctx context.Context) error
	TryAcquire() bool
	Release()
}

// SemaphoreLimiter 用带缓冲的 channel 作为信号量，nil 或容量 <= 0 时不做限制。
type SemaphoreLimiter struct {
	sem chan struct{}
}

// NewSemaphoreLimiter 创建一个最多允许 max 个并发持有者的限流器。
func NewSemaphoreLimiter(max int) *SemaphoreLimiter {
	if max <= 0 {
		return &SemaphoreLimiter{}
	}
	return &SemaphoreLimiter{sem: make(chan struct{}, max)}
}

// Acquire 阻塞获取令牌，ctx 结束时返回 ErrConcurrencyLimit 与 ctx 错误的组合。
func (l *SemaphoreLimiter) Acquire(ctx context.Context) error {
	if l == nil || l.sem == nil {
		return nil
	}
	select {
	case l.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return errors.Join(ErrConcurrencyLimit, ctx.Err())
	}
}

// TryAcquire 非阻塞获取令牌。
func (l *SemaphoreLimiter) TryAcquire() bool {
	if l == nil || l.sem == nil {
		return true
	}
	select {
	case l.sem <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release 归还令牌，多余的归还只记录告警。
func (l *SemaphoreLimiter) Release() {
	if l == nil || l.sem == nil {
		return
	}
	select {
	case <-l.sem:
	default:
		slog.Warn("concurrency limiter release without acquire")
	}
}

// InUse 返回当前被持有的令牌数。
func (l *SemaphoreLimiter) InUse() int {
	if l == nil {
		return 0
	}
	return len(l.sem)
}
