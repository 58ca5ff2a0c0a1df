// Package cache 提供计数结果的本地缓存，底层使用 allegro/bigcache。
package cache

import (
	"context"
	"encoding/binary"
	"fmt"
	"strconv"
	"time"

	"github.com/wyfcoding/inversion/config"

	"github.com/allegro/bigcache/v3" // 导入高性能本地缓存库
	"github.com/cespare/xxhash/v2"
)

// verifySeed 用于计算存放在值中的第二个摘要，键摘要碰撞时据此识别。
const verifySeed = 0x9e3779b97f4a7c15

// ResultCache 以序列内容为键缓存逆序对数量。
// 键为序列长度与 xxhash 摘要，值为 8 字节计数加 8 字节校验摘要。
type ResultCache struct {
	cache     *bigcache.BigCache // 底层的BigCache实例
	minLength int
}

// NewResultCache 创建结果缓存。
// cfg.TTL 为全局过期时间，cfg.MaxSizeMB 为硬性内存上限，cfg.MinLength 以下的序列不缓存。
func NewResultCache(cfg config.CacheConfig) (*ResultCache, error) {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	bc := bigcache.DefaultConfig(ttl)
	bc.HardMaxCacheSize = cfg.MaxSizeMB
	bc.Shards = 64
	bc.MaxEntrySize = 64 // 键约 24 字节，值 16 字节
	bc.MaxEntriesInWindow = 10_000
	bc.CleanWindow = time.Minute
	bc.Verbose = false

	cache, err := bigcache.New(context.Background(), bc)
	if err != nil {
		return nil, fmt.Errorf("init bigcache failed: %w", err)
	}

	return &ResultCache{cache: cache, minLength: cfg.MinLength}, nil
}

// Cacheable 报告长度为 n 的序列是否值得缓存。
func (c *ResultCache) Cacheable(n int) bool {
	return c != nil && n >= c.minLength
}

// Get 查询序列的缓存结果。
func (c *ResultCache) Get(seq []int) (uint64, bool) {
	if !c.Cacheable(len(seq)) {
		return 0, false
	}
	key, check := fingerprint(seq)
	data, err := c.cache.Get(key)
	if err != nil || len(data) != 16 {
		return 0, false
	}
	if binary.BigEndian.Uint64(data[8:]) != check {
		return 0, false
	}
	return binary.BigEndian.Uint64(data[:8]), true
}

// Set 写入序列的计数结果。
func (c *ResultCache) Set(seq []int, count uint64) error {
	if !c.Cacheable(len(seq)) {
		return nil
	}
	key, check := fingerprint(seq)
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], count)
	binary.BigEndian.PutUint64(buf[8:], check)
	return c.cache.Set(key, buf[:])
}

// Len 返回当前缓存项数量。
func (c *ResultCache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.Len()
}

// Close 关闭BigCache实例，释放其占用的资源。
func (c *ResultCache) Close() error {
	if c == nil {
		return nil
	}
	return c.cache.Close()
}

func fingerprint(seq []int) (string, uint64) {
	primary := xxhash.New()
	secondary := xxhash.NewWithSeed(verifySeed)
	var buf [8]byte
	for _, v := range seq {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = primary.Write(buf[:])
		_, _ = secondary.Write(buf[:])
	}
	return strconv.Itoa(len(seq)) + ":" + strconv.FormatUint(primary.Sum64(), 16), secondary.Sum64()
}
