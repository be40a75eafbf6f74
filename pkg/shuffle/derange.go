package shuffle

import (
	"math/big"

	"github.com/seedshuffle/seedshuffle/pkg/errors"
)

// IndexDerangement returns the position mapping of the derangement the seed
// selects, in the same convention as [IndexShuffle]. The mapping has no fixed
// point: idx[i] != i for every position.
//
// Derangements have no factorial-number-system encoding, so the seed is
// unranked directly against the subfactorial decomposition
//
//	D_k = (k-1) * (D_{k-1} + D_{k-2})
//
// Reading the recurrence constructively for the highest remaining position p:
// p maps to one of the other k-1 positions j, and either j maps straight back
// to p (a 2-cycle, leaving a derangement of the remaining k-2 positions) or
// it does not (in which case splicing p out of its cycle leaves a derangement
// of k-1 positions). Each seed walks this decomposition to a unique
// derangement and every derangement is reached, so seeds in [0, D_n) map
// bijectively onto the D_n outcomes without any repair pass.
//
// Returns a DOMAIN_ERROR for n < 2: a single element cannot leave its place.
func IndexDerangement(n int, seed *big.Int) ([]int, error) {
	if n < 2 {
		return nil, errors.New(errors.ErrCodeDomain, "no derangement exists for n=%d (need n >= 2)", n)
	}
	if err := validateSeed(seed); err != nil {
		return nil, err
	}

	table := subFactorialTable(n)
	rank := reduceSeed(seed, table[n])

	mapping := make([]int, n)
	unrankDerangement(seq(n), rank, table, mapping)
	return mapping, nil
}

// unrankDerangement fills mapping[l] for every label l in labels with the
// image of l under the derangement of rank r, where r < D_len(labels).
//
// labels is read in its given order; the decomposition always resolves the
// highest-index label first. A call with a single label never happens: the
// D_{k-1} branch that would produce it has zero weight (D_1 = 0).
func unrankDerangement(labels []int, r *big.Int, d []*big.Int, mapping []int) {
	k := len(labels)
	if k == 0 {
		return
	}

	// r = jIdx * (D_{k-1} + D_{k-2}) + r2 picks the image labels[jIdx] of the
	// last label; r2 then splits between the splice and 2-cycle cases.
	block := new(big.Int).Add(d[k-1], d[k-2])
	r2 := new(big.Int)
	jBig, _ := new(big.Int).QuoRem(r, block, r2)
	jIdx := int(jBig.Int64())

	last := labels[k-1]
	j := labels[jIdx]

	if r2.Cmp(d[k-1]) < 0 {
		// Splice case: derange the first k-1 labels, then insert last into
		// the cycle ahead of j by rerouting j's preimage through last.
		unrankDerangement(labels[:k-1], r2, d, mapping)
		for _, l := range labels[:k-1] {
			if mapping[l] == j {
				mapping[l] = last
				break
			}
		}
		mapping[last] = j
		return
	}

	// 2-cycle case: last and j swap; the other k-2 labels form their own
	// derangement of rank r2 - D_{k-1}.
	r2.Sub(r2, d[k-1])
	rest := make([]int, 0, k-2)
	rest = append(rest, labels[:jIdx]...)
	rest = append(rest, labels[jIdx+1:k-1]...)
	unrankDerangement(rest, r2, d, mapping)
	mapping[last] = j
	mapping[j] = last
}
