package entropy

import (
	"context"
	"crypto/sha256"
	"math/big"
	"math/rand/v2"

	"github.com/seedshuffle/seedshuffle/pkg/errors"
)

// Deterministic expands a caller-supplied seed into seeds of arbitrary bit
// width using a ChaCha8 stream keyed by the SHA-256 of the seed's bytes.
// The same seed always yields the same sequence of outputs, making shuffles
// reproducible across runs and machines.
//
// A Deterministic source carries stream state and is not safe for concurrent
// use; create one per goroutine.
type Deterministic struct {
	rng *rand.ChaCha8
}

// NewDeterministic creates a source keyed by the given non-negative seed.
func NewDeterministic(seed *big.Int) (*Deterministic, error) {
	if seed == nil {
		return nil, errors.New(errors.ErrCodeInvalidSeed, "seed is required")
	}
	if seed.Sign() < 0 {
		return nil, errors.New(errors.ErrCodeInvalidSeed, "seed must be non-negative, got %s", seed)
	}
	key := sha256.Sum256(seed.Bytes())
	return &Deterministic{rng: rand.NewChaCha8(key)}, nil
}

// Bits returns the next integer in [0, 2^bits) from the stream.
func (d *Deterministic) Bits(ctx context.Context, bits int) (*big.Int, error) {
	if err := validateBits(bits); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf := make([]byte, bytesFor(bits))
	// ChaCha8.Read always fills the buffer and never fails.
	_, _ = d.rng.Read(buf)
	maskToBits(buf, bits)
	return new(big.Int).SetBytes(buf), nil
}
