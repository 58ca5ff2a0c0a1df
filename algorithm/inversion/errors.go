package inversion

import (
	"github.com/wyfcoding/inversion/xerrors"
)

// ErrInvalidInput 是唯一的校验失败类别：越界、重复或无法解释为整数的元素。
// 使用 errors.Is(err, ErrInvalidInput) 判断。
var ErrInvalidInput = xerrors.ErrInvalidSequence

func outOfRange(index int, value any, n int) error {
	return xerrors.InvalidSequence(index, value, "").
		WithDetail("item %v at index %d is not in [1, %d]", value, index, n)
}

func duplicated(index int, value int) error {
	return xerrors.InvalidSequence(index, value, "").
		WithDetail("item %d at index %d appears more than once", value, index)
}

func notInteger(index int, value any) error {
	return xerrors.InvalidSequence(index, value, "").
		WithDetail("item %v (%T) at index %d is not a non-negative integer", value, value, index)
}

func truncated(seen, n int) error {
	return xerrors.InvalidSequence(seen, nil, "").
		WithDetail("sequence ended after %d of %d items", seen, n)
}
