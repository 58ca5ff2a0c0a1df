package inversion

import (
	"strings"

	"github.com/wyfcoding/inversion/xerrors"
)

// Strategy 选择计数使用的树表示。
type Strategy string

const (
	// StrategyTree 使用按 2 的幂补齐的隐式二叉树（默认）。
	StrategyTree Strategy = "tree"
	// StrategyFenwick 使用大小为 n 的树状数组。
	StrategyFenwick Strategy = "fenwick"
)

// ParseStrategy 解析策略名称，空字符串返回默认策略。
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(name))) {
	case "", StrategyTree:
		return StrategyTree, nil
	case StrategyFenwick:
		return StrategyFenwick, nil
	default:
		return "", xerrors.New(xerrors.ErrInvalidArg, xerrors.CodeInvalidStrategy, "invalid strategy", "", nil).
			WithDetail("unknown strategy %q, supported: tree, fenwick", name)
	}
}

// CountWith 使用指定策略计数，未知策略回退到 StrategyTree。
func CountWith(s Strategy, seq []int) (uint64, error) {
	if s == StrategyFenwick {
		return CountFenwick(seq)
	}
	return Count(seq)
}
