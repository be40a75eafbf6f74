package shuffle

import (
	"math/big"

	"github.com/seedshuffle/seedshuffle/pkg/errors"
)

// Mode selects how [Required] reports the entropy requirement.
type Mode string

// The supported accounting modes.
const (
	ModeBits  Mode = "bits"  // minimum seed width: ceil(log2(outcome count))
	ModeCount Mode = "count" // the raw outcome count
)

// ParseMode converts a mode name to a [Mode].
// Returns an INVALID_INPUT error for unknown names.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeBits, ModeCount:
		return Mode(s), nil
	default:
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown mode %q (want bits or count)", s)
	}
}

// Count returns the number of distinct outcomes of the family for a sequence
// of length n: n! for permutations, (n-1)! for cyclic permutations, D_n for
// derangements.
//
// Returns a DOMAIN_ERROR for n < 0, and for n < 2 with the cyclic and
// derangement families. That includes n = 1 for cyclic, where the "count"
// would degenerate to 1 and is flagged instead of silently returned.
func Count(n int, family Family) (*big.Int, error) {
	if n < 0 {
		return nil, errors.New(errors.ErrCodeDomain, "sequence length must be non-negative, got %d", n)
	}
	switch family {
	case FamilyPermutation:
		return Factorial(n), nil
	case FamilyCyclic:
		if n < 2 {
			return nil, errors.New(errors.ErrCodeDomain, "no cyclic permutation exists for n=%d (need n >= 2)", n)
		}
		return CyclicCount(n), nil
	case FamilyDerangement:
		if n < 2 {
			return nil, errors.New(errors.ErrCodeDomain, "no derangement exists for n=%d (need n >= 2)", n)
		}
		return SubFactorial(n), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFamily, "unknown family %q", family)
	}
}

// RequiredBits returns the minimum seed width in bits needed to address every
// outcome of the family for a sequence of length n: ceil(log2(count)),
// computed exactly as the bit length of count-1. A seed narrower than this
// cannot reach every outcome; a seed at exactly this width reaches every
// outcome but is only bias-free when the count is a power of two.
func RequiredBits(n int, family Family) (int, error) {
	count, err := Count(n, family)
	if err != nil {
		return 0, err
	}
	return ceilLog2(count), nil
}

// Required reports the entropy requirement of a family for length n in the
// requested mode: the minimum seed width in bits, or the raw outcome count.
// Error conditions are those of [Count].
func Required(n int, family Family, mode Mode) (*big.Int, error) {
	count, err := Count(n, family)
	if err != nil {
		return nil, err
	}
	switch mode {
	case ModeBits:
		return big.NewInt(int64(ceilLog2(count))), nil
	case ModeCount:
		return count, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown mode %q (want bits or count)", mode)
	}
}

// PassesRequired returns how many full shuffle passes a generator with the
// given period must drive before the compound selection can cover the whole
// permutation space of n elements: ceil(bitlen(n!) / (bitlen(period) - 1)).
// A single pass suffices whenever the generator's period meets or exceeds n!.
//
// Bit lengths are exact; no Stirling approximation is involved. For n < 1
// there is nothing to shuffle and PassesRequired returns 0. Returns an
// INVALID_INPUT error for a period below 2.
func PassesRequired(n int, period *big.Int) (int, error) {
	if period == nil || period.Cmp(big.NewInt(2)) < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "generator period must be >= 2")
	}
	if n < 1 {
		return 0, nil
	}
	spaceBits := Factorial(n).BitLen()
	drawBits := period.BitLen() - 1
	return (spaceBits + drawBits - 1) / drawBits, nil
}

// ceilLog2 returns ceil(log2(count)) for count >= 1, which is the bit length
// of count-1. A count of 1 needs zero bits.
func ceilLog2(count *big.Int) int {
	return new(big.Int).Sub(count, big.NewInt(1)).BitLen()
}
