package inversion

import (
	"errors"
	"math/rand"
	"strconv"
	"testing"
	"time"
)

// bruteForce 是 O(n^2) 的参照实现。
func bruteForce(seq []int) uint64 {
	var total uint64
	for i := 0; i < len(seq); i++ {
		for j := i + 1; j < len(seq); j++ {
			if seq[i] > seq[j] {
				total++
			}
		}
	}
	return total
}

func identity(n int) []int {
	seq := make([]int, n)
	for i := range seq {
		seq[i] = i + 1
	}
	return seq
}

func reversed(seq []int) []int {
	out := make([]int, len(seq))
	for i, v := range seq {
		out[len(seq)-1-i] = v
	}
	return out
}

func TestCountScenarios(t *testing.T) {
	cases := []struct {
		name string
		seq  []int
		want uint64
	}{
		{"empty", []int{}, 0},
		{"nil", nil, 0},
		{"single", []int{1}, 0},
		{"sorted", []int{1, 2, 3, 4}, 0},
		{"reverse", []int{4, 3, 2, 1}, 6},
		{"mixed", []int{4, 1, 8, 5, 6, 2, 7, 3}, 15},
		{"swap", []int{2, 1}, 1},
		{"power of two tail", []int{2, 4, 1, 3}, 3},
		{"non power of two", []int{3, 1, 2}, 2},
	}
	for _, c := range cases {
		for _, s := range []Strategy{StrategyTree, StrategyFenwick} {
			got, err := CountWith(s, c.seq)
			if err != nil {
				t.Errorf("%s/%s: unexpected error %v", c.name, s, err)
				continue
			}
			if got != c.want {
				t.Errorf("%s/%s: got %d, want %d", c.name, s, got, c.want)
			}
		}
	}
}

func TestCountRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		seq  []int
	}{
		{"zero", []int{0, 1}},
		{"too large", []int{1, 3}},
		{"duplicate", []int{1, 1}},
		{"duplicate later", []int{3, 1, 2, 2}},
		{"negative", []int{-1, 1}},
		{"single wrong", []int{2}},
		{"bad last", []int{1, 2, 3, 5}},
		{"bad first", []int{9, 1, 2, 3}},
		{"bad middle", []int{1, 0, 2, 3}},
	}
	for _, c := range cases {
		for _, s := range []Strategy{StrategyTree, StrategyFenwick} {
			got, err := CountWith(s, c.seq)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("%s/%s: expected ErrInvalidInput, got %v", c.name, s, err)
			}
			if got != 0 {
				t.Errorf("%s/%s: expected no partial result, got %d", c.name, s, got)
			}
		}
	}
}

func TestCountIdentityAndReverse(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 7, 8, 9, 64, 100, 1000} {
		id := identity(n)
		if got, err := Count(id); err != nil || got != 0 {
			t.Errorf("identity(%d): got %d, %v", n, got, err)
		}
		if got, err := Count(reversed(id)); err != nil || got != MaxInversions(n) {
			t.Errorf("reverse(%d): got %d, %v; want %d", n, got, err, MaxInversions(n))
		}
	}
}

func TestCountMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	lengths := []int{0, 1, 2, 5, 50, 500}
	for i := 0; i < 1000; i++ {
		n := lengths[rng.Intn(len(lengths))]
		seq := make([]int, n)
		for j, p := range rng.Perm(n) {
			seq[j] = p + 1
		}

		want := bruteForce(seq)
		got, err := Count(seq)
		if err != nil {
			t.Fatalf("Count(%v): %v", seq, err)
		}
		if got != want {
			t.Fatalf("Count mismatch for n=%d: got %d, want %d", n, got, want)
		}
		if fw, err := CountFenwick(seq); err != nil || fw != want {
			t.Fatalf("CountFenwick mismatch for n=%d: got %d, %v; want %d", n, fw, err, want)
		}
		if got > MaxInversions(n) {
			t.Fatalf("count %d exceeds bound %d", got, MaxInversions(n))
		}
		rev, _ := Count(reversed(seq))
		if got+rev != MaxInversions(n) {
			t.Fatalf("count + reverse count = %d, want %d", got+rev, MaxInversions(n))
		}
	}
}

func TestCountSwapProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 200; iter++ {
		n := 2 + rng.Intn(60)
		seq := make([]int, n)
		for j, p := range rng.Perm(n) {
			seq[j] = p + 1
		}
		base, err := Count(seq)
		if err != nil {
			t.Fatal(err)
		}

		// 相邻交换恰好改变 1。
		k := rng.Intn(n - 1)
		adj := append([]int(nil), seq...)
		adj[k], adj[k+1] = adj[k+1], adj[k]
		got, _ := Count(adj)
		if diff := int64(got) - int64(base); diff != 1 && diff != -1 {
			t.Fatalf("adjacent swap at %d changed count by %d", k, diff)
		}

		// 任意交换的变化量与 j-i 同奇偶。
		i, j := rng.Intn(n), rng.Intn(n)
		if i == j {
			continue
		}
		if i > j {
			i, j = j, i
		}
		tr := append([]int(nil), seq...)
		tr[i], tr[j] = tr[j], tr[i]
		got, _ = Count(tr)
		diff := int64(got) - int64(base)
		if (diff-int64(j-i))%2 != 0 {
			t.Fatalf("transposition (%d,%d) changed count by %d", i, j, diff)
		}
	}
}

func TestCountFailureIndependentOfPosition(t *testing.T) {
	const n = 16
	for pos := 0; pos < n; pos++ {
		for _, bad := range []int{0, n + 1} {
			seq := identity(n)
			seq[pos] = bad
			if _, err := Count(seq); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("bad value %d at %d: got %v", bad, pos, err)
			}
		}
		if pos > 0 {
			seq := identity(n)
			seq[pos] = seq[pos-1]
			if _, err := Count(seq); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("duplicate at %d: got %v", pos, err)
			}
		}
	}
}

func TestCountOf(t *testing.T) {
	if got, err := CountOf([]uint8{3, 1, 2}); err != nil || got != 2 {
		t.Errorf("CountOf(uint8) = %d, %v", got, err)
	}
	if got, err := CountOf([]int64{2, 1}); err != nil || got != 1 {
		t.Errorf("CountOf(int64) = %d, %v", got, err)
	}
	if _, err := CountOf([]int32{-5, 1}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("CountOf(negative) = %v", err)
	}
	if _, err := CountOf([]uint64{1 << 63, 1}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("CountOf(huge) = %v", err)
	}
}

func TestCountLarge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large input in short mode")
	}
	const n = 1_000_000
	rng := rand.New(rand.NewSource(1))
	seq := make([]int, n)
	for j, p := range rng.Perm(n) {
		seq[j] = p + 1
	}

	start := time.Now()
	got, err := Count(seq)
	elapsed := time.Since(start)
	if err != nil {
		t.Fatal(err)
	}
	if got > MaxInversions(n) {
		t.Fatalf("count %d exceeds bound", got)
	}
	if fw, _ := CountFenwick(seq); fw != got {
		t.Fatalf("tree %d != fenwick %d", got, fw)
	}
	if rev, _ := Count(reversed(identity(n))); rev != MaxInversions(n) {
		t.Fatalf("reverse(%d) = %d, want %d", n, rev, MaxInversions(n))
	}
	t.Logf("n=%d inversions=%d elapsed=%s", n, got, elapsed)
	if !raceEnabled && elapsed > 5*time.Second {
		t.Fatalf("Count(%d) took %s", n, elapsed)
	}
}

func TestMaxInversions(t *testing.T) {
	cases := map[int]uint64{-1: 0, 0: 0, 1: 0, 2: 1, 4: 6, 1_000_000: 499_999_500_000}
	for n, want := range cases {
		if got := MaxInversions(n); got != want {
			t.Errorf("MaxInversions(%d) = %d, want %d", n, got, want)
		}
	}
}

func BenchmarkCount(b *testing.B) {
	for _, n := range []int{1_000, 100_000, 1_000_000} {
		rng := rand.New(rand.NewSource(int64(n)))
		seq := make([]int, n)
		for j, p := range rng.Perm(n) {
			seq[j] = p + 1
		}
		b.Run(strconv.Itoa(n)+"/tree", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = Count(seq)
			}
		})
		b.Run(strconv.Itoa(n)+"/fenwick", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = CountFenwick(seq)
			}
		})
	}
}
