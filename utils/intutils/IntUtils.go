// Package intutils provides utilities for working with ints
package intutils

// Pow returns base**exp for a non-negative exp
func Pow(base, exp int) int {
	if exp < 0 {
		panic("pow: negative exponent")
	}
	result := 1
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}
