// Package pkg provides the core libraries for seedshuffle.
//
// # Overview
//
// seedshuffle maps arbitrary-precision integer seeds onto rearrangements
// without statistical bias. Each rearrangement family is a bijection between
// a seed range and a set of outcomes, built on the factorial number system
// rather than repeated modulo draws. The pkg directory is organized into
// five areas:
//
//  1. [shuffle] - Domain logic (seed decoding, permutation families, entropy sizing)
//  2. [entropy] - Seed sources (system CSPRNG, deterministic expansion, remote providers)
//  3. [permgraph] - Permutation cycle-structure rendering via Graphviz
//  4. [errors] - Structured error codes and input validation
//  5. [httputil] - Retry helpers for network-facing code
//
// # Quick Start
//
// Shuffle a slice with an explicit seed:
//
//	import (
//	    "math/big"
//	    "github.com/seedshuffle/seedshuffle/pkg/shuffle"
//	)
//
//	items := []string{"alice", "bob", "carol", "dave"}
//	seed := big.NewInt(17)
//	if err := shuffle.Shuffle(items, seed); err != nil {
//	    // seed was nil or negative
//	}
//
// Draw a fresh full-width seed first when no reproducible seed is needed:
//
//	bits, _ := shuffle.RequiredBits(len(items), shuffle.FamilyPermutation)
//	seed, _ := entropy.Crypto{}.Bits(ctx, bits+64)
//	_ = shuffle.Shuffle(items, seed)
//
// The same pattern applies to [shuffle.CyclicPermutation] (single n-cycle)
// and [shuffle.Derangement] (no fixed points); both reject fewer than two
// items with a DOMAIN_ERROR.
package pkg
