package inversion

import (
	"encoding/json"
	"strconv"

	"github.com/wyfcoding/inversion/cast"
)

// CountValues 接受松散类型的元素（例如 JSON 解码得到的 float64 / json.Number / 字符串），
// 将其逐个转换为整数后计数。无法解释为整数的元素返回 ErrInvalidInput。
func CountValues(seq []any) (uint64, error) {
	c := NewCounter(len(seq))
	for i, raw := range seq {
		v, ok := coerce(raw)
		if !ok {
			return 0, c.reject(notInteger(i, raw))
		}
		if err := c.Push(v); err != nil {
			return 0, err
		}
	}
	return c.Finish()
}

// IntsFromValues 把松散类型的元素转换为 []int，供需要选择策略的调用方使用。
func IntsFromValues(seq []any) ([]int, error) {
	out := make([]int, len(seq))
	for i, raw := range seq {
		v, ok := coerce(raw)
		if !ok {
			return nil, notInteger(i, raw)
		}
		out[i] = v
	}
	return out, nil
}

func coerce(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int8:
		return cast.ToInt(v)
	case int16:
		return cast.ToInt(v)
	case int32:
		return cast.ToInt(v)
	case int64:
		return cast.ToInt(v)
	case uint:
		return cast.ToInt(v)
	case uint8:
		return cast.ToInt(v)
	case uint16:
		return cast.ToInt(v)
	case uint32:
		return cast.ToInt(v)
	case uint64:
		return cast.ToInt(v)
	case float32:
		return cast.Float64ToInt(float64(v))
	case float64:
		return cast.Float64ToInt(v)
	case json.Number:
		return parseInt(string(v))
	case string:
		return parseInt(v)
	default:
		return 0, false
	}
}

func parseInt(s string) (int, bool) {
	i, err := strconv.ParseInt(s, 10, 0)
	if err != nil {
		return 0, false
	}
	return int(i), true
}
