package cast

import (
	"math"
	"testing"
)

func TestToInt(t *testing.T) {
	if v, ok := ToInt(int8(-3)); !ok || v != -3 {
		t.Errorf("ToInt(int8(-3)) = %d, %v", v, ok)
	}
	if v, ok := ToInt(uint32(42)); !ok || v != 42 {
		t.Errorf("ToInt(uint32(42)) = %d, %v", v, ok)
	}
	if _, ok := ToInt(uint64(math.MaxUint64)); ok {
		t.Errorf("expected overflow for MaxUint64")
	}
	if v, ok := ToInt(int64(math.MinInt64)); !ok || v != math.MinInt64 {
		t.Errorf("ToInt(MinInt64) = %d, %v", v, ok)
	}
}

func TestFloat64ToInt(t *testing.T) {
	cases := []struct {
		in   float64
		want int
		ok   bool
	}{
		{3, 3, true},
		{-2, -2, true},
		{1.5, 0, false},
		{math.NaN(), 0, false},
		{math.Inf(1), 0, false},
		{1e300, 0, false},
	}
	for _, c := range cases {
		got, ok := Float64ToInt(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("Float64ToInt(%v) = %d, %v; want %d, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}
