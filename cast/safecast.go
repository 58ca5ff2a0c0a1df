// Package cast 提供带范围检查的整数转换。
package cast

import "math"

// Integer 是所有内建整数类型的约束。
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// ToInt 将任意整数转换为 int，超出 int 表示范围时返回 false。
func ToInt[T Integer](v T) (int, bool) {
	if v < 0 {
		// 有符号类型：负数一定能放进 int64。
		i := int64(v)
		if i < math.MinInt {
			return 0, false
		}
		return int(i), true
	}
	u := uint64(v)
	if u > math.MaxInt {
		return 0, false
	}
	return int(u), true
}

// Float64ToInt 仅在浮点数为整数值且落在 int 范围内时转换成功。
func Float64ToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt || f >= math.MaxInt {
		return 0, false
	}
	return int(f), true
}
