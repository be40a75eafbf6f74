// Package shuffle maps arbitrary-precision seeds onto rearrangements of a
// sequence, exactly and without statistical bias.
//
// Three rearrangement families are supported:
//
//   - [Shuffle]: unrestricted permutations, n! outcomes
//   - [CyclicPermutation]: permutations forming a single n-cycle, (n-1)! outcomes
//   - [Derangement]: permutations with no fixed points, D_n (subfactorial) outcomes
//
// Each seed in the family's range selects exactly one outcome, and every
// outcome is selected by exactly one seed. The mapping is built on the
// factorial number system (Lehmer code) rather than repeated narrow-range
// draws, so no modulo bias is introduced at any step: the only reduction ever
// applied is a single exact modulus of the seed against the family's outcome
// count, before digit extraction.
//
// The package generates no randomness of its own. Callers obtain a seed
// elsewhere (a PRNG, crypto/rand, an external true-randomness provider) and
// should check it carries enough entropy via [RequiredBits] before relying on
// uniformity. All operations are pure per call: no state persists between
// calls, and concurrent calls on independent slices are safe.
package shuffle
