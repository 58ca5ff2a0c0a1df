package service

import (
	"context"

	"github.com/wyfcoding/inversion/xerrors"

	"github.com/sourcegraph/conc/pool"
)

// BatchResult 是批量计数中单条序列的结果，Err 非空时 Inversions 无意义。
type BatchResult struct {
	Index      int
	Inversions uint64
	Err        error
}

// CountBatch 以有界并发对多条互不相关的序列计数，结果顺序与输入一致。
// 单条序列失败只记录在对应结果中；ctx 取消后尚未开始的序列以 ctx.Err() 结束，
// 并且 CountBatch 同样返回 ctx.Err()。
func (s *InversionService) CountBatch(ctx context.Context, seqs [][]int) ([]BatchResult, error) {
	return runBatch(ctx, s, seqs, s.Count)
}

// CountValuesBatch 是 CountBatch 的松散类型版本。
func (s *InversionService) CountValuesBatch(ctx context.Context, seqs [][]any) ([]BatchResult, error) {
	return runBatch(ctx, s, seqs, s.CountValues)
}

func runBatch[T any](ctx context.Context, s *InversionService, items []T, count func(context.Context, T) (uint64, error)) ([]BatchResult, error) {
	opts := s.Options()
	if len(items) > opts.MaxBatchSize {
		return nil, xerrors.BatchTooLarge(len(items), opts.MaxBatchSize)
	}

	results := make([]BatchResult, len(items))
	p := pool.New().WithMaxGoroutines(opts.BatchWorkers).WithContext(ctx)
	for i, item := range items {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				results[i] = BatchResult{Index: i, Err: err}
				return nil
			}
			n, err := count(ctx, item)
			results[i] = BatchResult{Index: i, Inversions: n, Err: err}
			return nil
		})
	}
	_ = p.Wait()

	s.logger.DebugContext(ctx, "batch counted", "size", len(items), "workers", opts.BatchWorkers)
	return results, ctx.Err()
}
