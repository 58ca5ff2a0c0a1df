package inversion

import "math/bits"

// implicitTree 是按层序存放于切片中的完全二叉树（1-indexed）。
// 节点 k 的左右子节点为 2k、2k+1，父节点为 k>>1，下标 0 不使用。
// 值 v (1 <= v <= n) 对应的叶子下标为 leaves+v。
// 当 n 恰为 2 的幂时，值 n 落在下标 2*leaves，挂在永远不会被标记的叶子 leaves（值 0）之下，
// 区间查询的左端点始终在每层最左节点之右，因此不会重复计数。
type implicitTree struct {
	nodes  []uint64
	leaves int
}

// leafCount 返回不小于 n 的最小 2 的幂，n <= 1 时为 1。
func leafCount(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

func newImplicitTree(n int) *implicitTree {
	nn := leafCount(n)
	return &implicitTree{
		nodes:  make([]uint64, 2*nn+2),
		leaves: nn,
	}
}

// marked 报告值 v 是否已经插入过。
func (t *implicitTree) marked(v int) bool {
	return t.nodes[t.leaves+v] != 0
}

// insert 将值 v 的叶子及其所有祖先加一，维持 tree[k] == tree[2k] + tree[2k+1]。
func (t *implicitTree) insert(v int) {
	for k := t.leaves + v; k > 0; k >>= 1 {
		t.nodes[k]++
	}
}

// rangeSum 返回值区间 [lo, hi] 内已插入的元素个数，lo > hi 时为 0。
// 左右边界自底向上攀爬：左端为右孩子、右端为左孩子时先把该节点计入结果。
func (t *implicitTree) rangeSum(lo, hi int) uint64 {
	var sum uint64
	left, right := t.leaves+lo, t.leaves+hi
	for left <= right {
		if left&1 == 1 {
			sum += t.nodes[left]
		}
		if right&1 == 0 {
			sum += t.nodes[right]
		}
		left = (left + 1) >> 1
		right = (right - 1) >> 1
	}
	return sum
}
