package shuffle

import "math/big"

// Factorial returns n! as a big integer, the number of unrestricted
// permutations of n elements. For n <= 1, Factorial returns 1.
//
// Factorials grow extremely fast: 21! already exceeds 64-bit int, which is
// why every counter in this package works on *big.Int.
func Factorial(n int) *big.Int {
	result := big.NewInt(1)
	mul := new(big.Int)
	for i := int64(2); i <= int64(n); i++ {
		result.Mul(result, mul.SetInt64(i))
	}
	return result
}

// CyclicCount returns (n-1)!, the number of permutations of n elements whose
// cycle decomposition is a single n-cycle. For n <= 1, CyclicCount returns 1;
// note that n < 2 is degenerate for the cyclic family and is rejected by the
// generators and by [Required].
func CyclicCount(n int) *big.Int {
	return Factorial(n - 1)
}

// SubFactorial returns D_n, the number of derangements (fixed-point-free
// permutations) of n elements, computed with the recurrence
//
//	D_n = (n-1) * (D_{n-1} + D_{n-2}),  D_0 = 1, D_1 = 0
//
// For n <= 0, SubFactorial returns 1 (the empty permutation vacuously has no
// fixed points).
func SubFactorial(n int) *big.Int {
	if n <= 0 {
		return big.NewInt(1)
	}
	prev, cur := big.NewInt(1), big.NewInt(0) // D_0, D_1
	mul := new(big.Int)
	for k := 2; k <= n; k++ {
		next := new(big.Int).Add(prev, cur)
		next.Mul(next, mul.SetInt64(int64(k-1)))
		prev, cur = cur, next
	}
	return cur
}

// subFactorialTable returns [D_0, D_1, ..., D_n].
// The derangement decoder consumes every prefix value, so it is cheaper to
// materialize the whole run of the recurrence once than to recompute it per
// recursion level.
func subFactorialTable(n int) []*big.Int {
	table := make([]*big.Int, n+1)
	table[0] = big.NewInt(1)
	if n == 0 {
		return table
	}
	table[1] = big.NewInt(0)
	mul := new(big.Int)
	for k := 2; k <= n; k++ {
		next := new(big.Int).Add(table[k-1], table[k-2])
		table[k] = next.Mul(next, mul.SetInt64(int64(k-1)))
	}
	return table
}
