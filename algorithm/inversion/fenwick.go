package inversion

// fenwickTree (树状数组) 以 n+1 个槽位维护前缀计数，下标 1..n 与取值一一对应。
// 与 implicitTree 只在单次计数内部使用，不做并发保护。
type fenwickTree struct {
	tree []uint64
}

func newFenwickTree(n int) *fenwickTree {
	return &fenwickTree{tree: make([]uint64, n+1)}
}

// add 将值 v 的计数加一。
func (ft *fenwickTree) add(v int) {
	for i := v; i < len(ft.tree); i += i & (-i) {
		ft.tree[i]++
	}
}

// prefix 返回取值 1..v 的计数之和。
func (ft *fenwickTree) prefix(v int) uint64 {
	var sum uint64
	for i := v; i > 0; i -= i & (-i) {
		sum += ft.tree[i]
	}
	return sum
}

// CountFenwick 使用树状数组计算逆序对数量。
// 结果与错误语义与 Count 完全一致，仅内部表示不同。
func CountFenwick(seq []int) (uint64, error) {
	n := len(seq)
	ft := newFenwickTree(n)
	var inversions uint64
	for i, v := range seq {
		if v < 1 || v > n {
			return 0, outOfRange(i, v, n)
		}
		below := ft.prefix(v)
		if below != ft.prefix(v-1) {
			return 0, duplicated(i, v)
		}
		// 已读入 i 个元素，其中不大于 v 的有 below 个。
		inversions += uint64(i) - below
		ft.add(v)
	}
	return inversions, nil
}
