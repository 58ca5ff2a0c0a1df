// Package inversion 计算 1..n 排列的逆序对数量。
//
// 核心是一棵按 2 的幂补齐的隐式二叉树：每读入一个值 v，先查询已出现且大于 v 的值个数，
// 再把 v 标记到树中。单次计数 O(n log n) 时间、O(n) 空间，树只属于本次调用，
// 不同调用之间没有共享状态，可以在多个 goroutine 中并发执行。
package inversion

import (
	"github.com/wyfcoding/inversion/cast"
)

// State 描述一次计数所处的阶段。
type State int

const (
	// StateAccepting 等待下一个元素。
	StateAccepting State = iota
	// StateRejected 遇到非法元素，终止状态。
	StateRejected
	// StateDone 输入已耗尽，终止状态。
	StateDone
)

func (s State) String() string {
	switch s {
	case StateAccepting:
		return "accepting"
	case StateRejected:
		return "rejected"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Counter 是逆序对计数的在线形式：按输入顺序逐个 Push，最后 Finish。
// Counter 不是并发安全的，一个实例只服务一条序列。
type Counter struct {
	tree       *implicitTree
	err        error
	n          int
	seen       int
	inversions uint64
	state      State
}

// NewCounter 为长度为 n 的序列创建计数器，n < 0 视为 0。
func NewCounter(n int) *Counter {
	if n < 0 {
		n = 0
	}
	return &Counter{
		tree: newImplicitTree(n),
		n:    n,
	}
}

// Push 读入下一个元素。元素越界或重复时计数器进入 StateRejected，
// 之后的 Push 与 Finish 都返回同一个错误。
func (c *Counter) Push(v int) error {
	if c.state != StateAccepting {
		return c.terminalErr()
	}
	if v < 1 || v > c.n {
		return c.reject(outOfRange(c.seen, v, c.n))
	}
	if c.tree.marked(v) {
		return c.reject(duplicated(c.seen, v))
	}

	c.inversions += c.tree.rangeSum(v+1, c.n)
	c.tree.insert(v)
	c.seen++
	return nil
}

// Finish 结束输入并返回逆序对总数。读入的元素少于 n 个时视为非法输入。
func (c *Counter) Finish() (uint64, error) {
	if c.state == StateAccepting {
		if c.seen != c.n {
			return 0, c.reject(truncated(c.seen, c.n))
		}
		c.state = StateDone
		c.tree = nil
	}
	if c.state == StateRejected {
		return 0, c.err
	}
	return c.inversions, nil
}

// Inversions 返回目前已读入前缀中的逆序对数量。
func (c *Counter) Inversions() uint64 {
	return c.inversions
}

// Len 返回已读入的元素个数。
func (c *Counter) Len() int {
	return c.seen
}

// State 返回当前状态。
func (c *Counter) State() State {
	return c.state
}

func (c *Counter) reject(err error) error {
	c.state = StateRejected
	c.err = err
	c.inversions = 0
	c.tree = nil
	return err
}

func (c *Counter) terminalErr() error {
	if c.err != nil {
		return c.err
	}
	// 已完成的计数器再收到元素，说明序列比声明的更长。
	return c.reject(outOfRange(c.seen, nil, c.n))
}

// Count 返回 seq 的逆序对数量，seq 必须是 1..len(seq) 的一个排列。
// 第一个越界或重复的元素即触发 ErrInvalidInput，不返回部分结果。
func Count(seq []int) (uint64, error) {
	c := NewCounter(len(seq))
	for _, v := range seq {
		if err := c.Push(v); err != nil {
			return 0, err
		}
	}
	return c.Finish()
}

// CountOf 与 Count 相同，但接受任意整数元素类型。
// 负数或超出 int 范围的元素同样返回 ErrInvalidInput。
func CountOf[T cast.Integer](seq []T) (uint64, error) {
	c := NewCounter(len(seq))
	for i, raw := range seq {
		v, ok := cast.ToInt(raw)
		if !ok {
			return 0, c.reject(outOfRange(i, raw, len(seq)))
		}
		if err := c.Push(v); err != nil {
			return 0, err
		}
	}
	return c.Finish()
}

// MaxInversions 返回长度为 n 的排列可能的最大逆序对数 n(n-1)/2。
func MaxInversions(n int) uint64 {
	if n < 2 {
		return 0
	}
	m := uint64(n)
	return m * (m - 1) / 2
}
