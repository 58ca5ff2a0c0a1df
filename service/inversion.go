// Package service 把逆序对计数包装为带缓存、指标、追踪与日志的服务。
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/wyfcoding/inversion/algorithm/inversion"
	"github.com/wyfcoding/inversion/cache"
	"github.com/wyfcoding/inversion/config"
	"github.com/wyfcoding/inversion/metrics"
	"github.com/wyfcoding/inversion/tracing"
	"github.com/wyfcoding/inversion/xerrors"

	"google.golang.org/grpc/codes"
)

// Options 是可热更新的服务参数。
type Options struct {
	Strategy     inversion.Strategy
	MaxLength    int // 0 表示不限制
	BatchWorkers int
	MaxBatchSize int
}

// OptionsFromConfig 把配置转换为服务参数。
func OptionsFromConfig(cfg config.CounterConfig) (Options, error) {
	strategy, err := inversion.ParseStrategy(cfg.Strategy)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Strategy:     strategy,
		MaxLength:    cfg.MaxLength,
		BatchWorkers: cfg.BatchWorkers,
		MaxBatchSize: cfg.MaxBatchSize,
	}, nil
}

// InversionService 是计数的服务入口，可以被多个 goroutine 并发调用。
type InversionService struct {
	cache   *cache.ResultCache
	metrics *metrics.Metrics
	logger  *slog.Logger

	mu   sync.RWMutex
	opts Options
}

// New 创建服务。cache 与 m 均可为 nil。
func New(opts Options, c *cache.ResultCache, m *metrics.Metrics, logger *slog.Logger) *InversionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InversionService{
		cache:   c,
		metrics: m,
		logger:  logger,
		opts:    normalize(opts),
	}
}

func normalize(opts Options) Options {
	if opts.Strategy == "" {
		opts.Strategy = inversion.StrategyTree
	}
	if opts.BatchWorkers <= 0 {
		opts.BatchWorkers = 1
	}
	if opts.MaxBatchSize <= 0 {
		opts.MaxBatchSize = 1000
	}
	return opts
}

// Options 返回当前生效的参数。
func (s *InversionService) Options() Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

// ApplyConfig 在配置热更新后替换服务参数，非法配置被忽略并返回错误。
func (s *InversionService) ApplyConfig(cfg config.CounterConfig) error {
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		s.logger.Error("ignore invalid counter config", "error", err)
		return err
	}
	s.mu.Lock()
	s.opts = normalize(opts)
	s.mu.Unlock()
	s.logger.Info("counter options updated", "strategy", opts.Strategy, "max_length", opts.MaxLength)
	return nil
}

// Count 计算 seq 的逆序对数量。
func (s *InversionService) Count(ctx context.Context, seq []int) (uint64, error) {
	ctx, span := tracing.StartSpan(ctx, "inversion.Count")
	defer span.End()

	opts := s.Options()
	tracing.AddTag(ctx, "sequence.length", len(seq))
	tracing.AddTag(ctx, "strategy", string(opts.Strategy))

	if opts.MaxLength > 0 && len(seq) > opts.MaxLength {
		err := xerrors.SequenceTooLong(len(seq), opts.MaxLength)
		s.observe(opts.Strategy, len(seq), 0, err)
		tracing.SetError(ctx, err)
		return 0, err
	}

	if s.cache.Cacheable(len(seq)) {
		if n, ok := s.cache.Get(seq); ok {
			s.cacheLookup("hit")
			s.observe(opts.Strategy, len(seq), 0, nil)
			tracing.AddTag(ctx, "cache.hit", true)
			return n, nil
		}
		s.cacheLookup("miss")
	}

	start := time.Now()
	n, err := inversion.CountWith(opts.Strategy, seq)
	s.observe(opts.Strategy, len(seq), time.Since(start), err)
	if err != nil {
		s.logger.DebugContext(ctx, "sequence rejected", "length", len(seq), "error", err)
		tracing.SetError(ctx, err)
		return 0, err
	}

	if err := s.cache.Set(seq, n); err != nil {
		s.logger.WarnContext(ctx, "cache result failed", "length", len(seq), "error", err)
	}
	tracing.AddTag(ctx, "inversions", n)
	return n, nil
}

// CountValues 先把松散类型的元素转换为整数，再按 Count 计数。
func (s *InversionService) CountValues(ctx context.Context, seq []any) (uint64, error) {
	opts := s.Options()
	if opts.MaxLength > 0 && len(seq) > opts.MaxLength {
		err := xerrors.SequenceTooLong(len(seq), opts.MaxLength)
		s.observe(opts.Strategy, len(seq), 0, err)
		return 0, err
	}

	ints, err := inversion.IntsFromValues(seq)
	if err != nil {
		// 前面可能已有越界或重复的元素，由在线计数器给出第一个出错位置。
		if _, cerr := inversion.CountValues(seq); cerr != nil {
			err = cerr
		}
		s.observe(opts.Strategy, len(seq), 0, err)
		return 0, err
	}
	return s.Count(ctx, ints)
}

func (s *InversionService) observe(strategy inversion.Strategy, length int, elapsed time.Duration, err error) {
	if s.metrics == nil {
		return
	}
	result := codes.OK
	if err != nil {
		result = codes.Internal
		if xe, ok := xerrors.FromError(err); ok {
			result = xe.GRPCCode()
		}
	}
	s.metrics.CountsTotal.WithLabelValues(string(strategy), result.String()).Inc()
	s.metrics.SequenceLength.Observe(float64(length))
	if elapsed > 0 {
		s.metrics.CountDuration.WithLabelValues(string(strategy)).Observe(elapsed.Seconds())
	}
}

func (s *InversionService) cacheLookup(result string) {
	if s.metrics != nil {
		s.metrics.CacheLookups.WithLabelValues(result).Inc()
	}
}
