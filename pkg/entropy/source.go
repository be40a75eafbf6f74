// Package entropy acquires seeds for the shuffle generators.
//
// The core library consumes seeds without caring where they come from; this
// package provides the three acquisition paths the CLI composes with it:
//
//   - [Crypto]: the operating system's CSPRNG (crypto/rand)
//   - [Deterministic]: reproducible expansion of a caller-supplied seed
//   - [Remote]: an external true-randomness provider over HTTP
//
// Every source implements [Source] and yields a non-negative integer of a
// requested bit width, ready to drive [shuffle.Shuffle] and friends. Callers
// should size requests with [shuffle.RequiredBits] so the seed can address
// every outcome of the chosen family.
package entropy

import (
	"context"
	"math/big"

	"github.com/seedshuffle/seedshuffle/pkg/errors"
)

// Source yields non-negative seeds of a requested bit width.
type Source interface {
	// Bits returns an integer drawn from [0, 2^bits). Implementations block
	// until the seed is available or ctx is cancelled.
	Bits(ctx context.Context, bits int) (*big.Int, error)
}

// validateBits rejects non-positive bit widths.
func validateBits(bits int) error {
	if bits <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "bit width must be positive, got %d", bits)
	}
	return nil
}

// maskToBits truncates a big-endian byte buffer to the requested bit width by
// clearing the excess high bits of the leading byte.
func maskToBits(buf []byte, bits int) {
	if excess := len(buf)*8 - bits; excess > 0 {
		buf[0] &= 0xFF >> excess
	}
}

// bytesFor returns the byte count needed to hold the requested bit width.
func bytesFor(bits int) int {
	return (bits + 7) / 8
}
