package util

import (
	"math/bits"
	"testing"
)

func TestNextPow2(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want uint64 }{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{5, 8},
		{1024, 1024},
		{1025, 2048},
		{1<<63 - 1, 1 << 63},
		{1 << 63, 1 << 63},
		{1<<63 + 1, 1 << 63},
	}
	for _, tc := range cases {
		got := NextPow2(tc.in)
		if got != tc.want {
			t.Fatalf("NextPow2(%d) = %d, want %d", tc.in, got, tc.want)
		}
		if bits.OnesCount64(got) != 1 {
			t.Fatalf("NextPow2(%d) = %d is not a power of two", tc.in, got)
		}
	}
}
