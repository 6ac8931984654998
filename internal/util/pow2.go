// Package util contains internal sizing helpers.
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

import "math/bits"

// NextPow2 returns the smallest power of two >= x, with NextPow2(0) == 1.
// Values above 1<<63 have no 64-bit answer and are clamped to 1<<63.
func NextPow2(x uint64) uint64 {
	switch {
	case x <= 1:
		return 1
	case x > 1<<63:
		return 1 << 63
	}
	return 1 << bits.Len64(x-1)
}
