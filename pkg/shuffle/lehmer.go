package shuffle

import "math/big"

// decodeLehmer maps a seed in [0, n!) onto its factorial-number-system
// representation: n digits where digits[i] lies in {0, ..., n-i-1}.
//
// Digits are extracted least-significant-first by successive division with
// remainder against the radices 1, 2, ..., n and stored in reverse, which is
// equivalent to dividing by descending factorials but needs no factorial
// precomputation. Distinct seeds in range yield distinct digit sequences and
// every digit sequence is reachable, so the mapping is a bijection; this
// exactness is what rules out the bias of per-step `seed % remaining` draws.
//
// The caller must have reduced seed below n! already; decodeLehmer consumes
// the value as-is.
func decodeLehmer(seed *big.Int, n int) []int {
	digits := make([]int, n)
	rem := new(big.Int).Set(seed)
	radix := new(big.Int)
	digit := new(big.Int)
	for k := 1; k <= n; k++ {
		rem.QuoRem(rem, radix.SetInt64(int64(k)), digit)
		digits[n-k] = int(digit.Int64())
	}
	return digits
}

// reduceSeed returns seed mod count. This is the single allowed point of
// reduction (applied once, before digit extraction, never per digit): a
// seed drawn uniformly from an exact multiple of count stays uniform over
// [0, count), and oversized seeds degrade gracefully instead of failing.
func reduceSeed(seed, count *big.Int) *big.Int {
	return new(big.Int).Mod(seed, count)
}

// selectByDigits consumes Lehmer digits against a shrinking pool of values:
// digit i picks the digits[i]-th remaining pool entry. The pool is mutated.
// Under a uniform seed every ordering of the pool is produced with equal
// probability.
func selectByDigits(pool []int, digits []int) []int {
	out := make([]int, 0, len(digits))
	for _, d := range digits {
		out = append(out, pool[d])
		pool = append(pool[:d], pool[d+1:]...)
	}
	return out
}
