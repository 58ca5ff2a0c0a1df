// Package limiter 提供请求速率与并发度的本地限流器。
package limiter

import (
	"context"
	"sync"

	"golang.org/x/time/rate" // 基于令牌桶算法的限流库。
)

// Limiter 接口定义了限流器的通用行为。
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error) // 检查是否允许请求通过。
}

// LocalLimiter 是一个全局令牌桶限流器，忽略 key。
type LocalLimiter struct {
	limiter *rate.Limiter
}

// NewLocalLimiter 创建全局限流器。r 为每秒令牌数，b 为桶容量。
func NewLocalLimiter(r rate.Limit, b int) *LocalLimiter {
	return &LocalLimiter{limiter: rate.NewLimiter(r, b)}
}

// Allow 尝试取走一个令牌。
func (l *LocalLimiter) Allow(context.Context, string) (bool, error) {
	return l.limiter.Allow(), nil
}

// defaultMaxKeys 是 KeyedLimiter 默认跟踪的 key 数量上限。
const defaultMaxKeys = 10000

// KeyedLimiter 为每个 key（通常是客户端 IP）维护独立的令牌桶。
// 跟踪的 key 超过上限时整体重置，被重置的 key 重新获得满桶。
type KeyedLimiter struct {
	mu      sync.Mutex
	r       rate.Limit
	b       int
	maxKeys int
	buckets map[string]*rate.Limiter
}

// NewKeyedLimiter 创建按 key 限流的限流器，maxKeys <= 0 时使用默认上限。
func NewKeyedLimiter(r rate.Limit, b, maxKeys int) *KeyedLimiter {
	if maxKeys <= 0 {
		maxKeys = defaultMaxKeys
	}
	return &KeyedLimiter{
		r:       r,
		b:       b,
		maxKeys: maxKeys,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Allow 检查 key 对应的令牌桶。
func (l *KeyedLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	bucket, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= l.maxKeys {
			l.buckets = make(map[string]*rate.Limiter)
		}
		bucket = rate.NewLimiter(l.r, l.b)
		l.buckets[key] = bucket
	}
	l.mu.Unlock()
	return bucket.Allow(), nil
}

// Len 返回当前跟踪的 key 数量。
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
