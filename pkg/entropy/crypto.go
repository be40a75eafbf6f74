package entropy

import (
	"context"
	"crypto/rand"
	"io"
	"math/big"

	"github.com/seedshuffle/seedshuffle/pkg/errors"
)

// Crypto draws seeds from the operating system's CSPRNG via crypto/rand.
// The zero value is ready to use and safe for concurrent callers.
type Crypto struct{}

// Bits returns an integer uniform over [0, 2^bits).
func (Crypto) Bits(ctx context.Context, bits int) (*big.Int, error) {
	if err := validateBits(bits); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf := make([]byte, bytesFor(bits))
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "reading from system entropy pool")
	}
	maskToBits(buf, bits)
	return new(big.Int).SetBytes(buf), nil
}
