package shuffle

import (
	"math/big"

	"github.com/seedshuffle/seedshuffle/pkg/errors"
)

// Family identifies a rearrangement family.
type Family string

// The supported rearrangement families.
const (
	FamilyPermutation Family = "permutation" // unrestricted permutations, n! outcomes
	FamilyCyclic      Family = "cyclic"      // single n-cycles, (n-1)! outcomes
	FamilyDerangement Family = "derangement" // fixed-point-free permutations, D_n outcomes
)

// ParseFamily converts a family name to a [Family].
// Returns an INVALID_FAMILY error for unknown names.
func ParseFamily(s string) (Family, error) {
	switch Family(s) {
	case FamilyPermutation, FamilyCyclic, FamilyDerangement:
		return Family(s), nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFamily,
			"unknown family %q (want permutation, cyclic or derangement)", s)
	}
}

// seq returns [0, 1, ..., n-1].
func seq(n int) []int {
	result := make([]int, n)
	for i := range result {
		result[i] = i
	}
	return result
}

// validateSeed rejects nil and negative seeds with a DOMAIN_ERROR,
// per the error taxonomy shared by all generators.
func validateSeed(seed *big.Int) error {
	if seed == nil {
		return errors.New(errors.ErrCodeDomain, "seed is required")
	}
	if seed.Sign() < 0 {
		return errors.New(errors.ErrCodeDomain, "seed must be non-negative, got %s", seed)
	}
	return nil
}

// applyIndex rewrites xs so that position i receives the element previously
// at position idx[i]. The digits behind idx are fully decoded before this
// runs, so xs is never left partially permuted.
func applyIndex[T any](xs []T, idx []int) {
	tmp := make([]T, len(xs))
	copy(tmp, xs)
	for i, j := range idx {
		xs[i] = tmp[j]
	}
}

// IndexShuffle returns the position mapping the seed selects over n
// positions: in the returned slice r, the element at source position r[i]
// moves to position i.
//
// The seed is reduced once against n! (see the package documentation on
// bias), then decoded into Lehmer digits. Seeds in [0, n!) map bijectively
// onto the n! mappings. n in {0, 1} trivially succeeds with the identity.
func IndexShuffle(n int, seed *big.Int) ([]int, error) {
	if n < 0 {
		return nil, errors.New(errors.ErrCodeDomain, "sequence length must be non-negative, got %d", n)
	}
	if err := validateSeed(seed); err != nil {
		return nil, err
	}
	reduced := reduceSeed(seed, Factorial(n))
	return selectByDigits(seq(n), decodeLehmer(reduced, n)), nil
}

// Shuffle rearranges xs in place into the permutation the seed selects.
// Under a seed uniform over [0, n!) every permutation has probability 1/n!.
//
// Shuffle takes exclusive ownership of xs for the duration of the call;
// callers sharing a slice across goroutines must serialize access.
func Shuffle[T any](xs []T, seed *big.Int) error {
	idx, err := IndexShuffle(len(xs), seed)
	if err != nil {
		return err
	}
	applyIndex(xs, idx)
	return nil
}

// IndexCyclic returns the position mapping of the single n-cycle the seed
// selects, in the same convention as [IndexShuffle].
//
// Position 0 anchors the cycle: the seed is reduced against (n-1)! and
// decoded into an ordering of the remaining n-1 positions, and the cycle
// (0, e_1, ..., e_{n-1}) is closed back to the anchor. Every result is a
// permutation with exactly one cycle covering all n positions, and seeds in
// [0, (n-1)!) map bijectively onto them.
//
// Returns a DOMAIN_ERROR for n < 2: no single cycle spans fewer than two
// positions.
func IndexCyclic(n int, seed *big.Int) ([]int, error) {
	if n < 2 {
		return nil, errors.New(errors.ErrCodeDomain, "no cyclic permutation exists for n=%d (need n >= 2)", n)
	}
	if err := validateSeed(seed); err != nil {
		return nil, err
	}

	reduced := reduceSeed(seed, CyclicCount(n))
	digits := decodeLehmer(reduced, n-1)

	pool := make([]int, n-1)
	for i := range pool {
		pool[i] = i + 1
	}
	order := selectByDigits(pool, digits)

	// Close the cycle: each position in (0, e_1, ..., e_{n-1}) receives the
	// element of its predecessor, the anchor receiving the last.
	cycle := append([]int{0}, order...)
	result := make([]int, n)
	for k := range cycle {
		result[cycle[(k+1)%n]] = cycle[k]
	}
	return result, nil
}

// CyclicPermutation rearranges xs in place into the single n-cycle the seed
// selects. Under a seed uniform over [0, (n-1)!) every single n-cycle has
// probability 1/(n-1)!. Returns a DOMAIN_ERROR for len(xs) < 2.
func CyclicPermutation[T any](xs []T, seed *big.Int) error {
	idx, err := IndexCyclic(len(xs), seed)
	if err != nil {
		return err
	}
	applyIndex(xs, idx)
	return nil
}

// Derangement rearranges xs in place into the fixed-point-free permutation
// the seed selects: no element remains at its original position. Seeds in
// [0, D_n) map bijectively onto the D_n derangements, so under a uniform
// seed every derangement has probability 1/D_n exactly.
// Returns a DOMAIN_ERROR for len(xs) < 2.
func Derangement[T any](xs []T, seed *big.Int) error {
	idx, err := IndexDerangement(len(xs), seed)
	if err != nil {
		return err
	}
	applyIndex(xs, idx)
	return nil
}
