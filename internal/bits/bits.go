// Package bits provides low-level slot arithmetic primitives.
package bits

import (
	"math"
	"math/bits"
)

// Home maps a raw 64-bit hash to its home slot in [0, n) by modulo.
// Modulo (rather than multiply-shift ranging) keeps the home slot a pure
// function of hash and n, which growth and relocation depend on.
func Home(hash uint64, n int) int {
	if n <= 0 {
		return 0
	}
	return int(hash % uint64(n))
}

// Next returns the slot after i in a table of n slots, wrapping to 0.
func Next(i, n int) int {
	i++
	if i == n {
		return 0
	}
	return i
}

// GrowCapacity returns max(initial, capacity*rate). ok is false when the
// product does not fit in an int.
func GrowCapacity(capacity, initial, rate int) (int, bool) {
	if capacity < 0 || initial < 0 || rate < 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(uint64(capacity), uint64(rate))
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return max(initial, int(lo)), true
}
