package errors

import (
	"math/big"
	"strings"
	"unicode"
)

// maxSeedDigits bounds accepted seed strings. A 1e6-digit decimal seed is a
// multi-megabit integer; anything larger is almost certainly hostile input
// rather than entropy.
const maxSeedDigits = 1_000_000

// ParseSeed parses a seed string into a non-negative big integer.
// Decimal is the default; a "0x"/"0X" prefix selects hexadecimal and a
// "0b"/"0B" prefix binary. Underscore separators are accepted, matching Go
// literal syntax.
//
// Returns an INVALID_SEED error for empty input, malformed digits, or
// negative values.
func ParseSeed(s string) (*big.Int, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, New(ErrCodeInvalidSeed, "seed cannot be empty")
	}

	if len(trimmed) > maxSeedDigits {
		return nil, New(ErrCodeInvalidSeed, "seed too long (max %d digits)", maxSeedDigits)
	}

	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return nil, New(ErrCodeInvalidSeed, "seed contains invalid control characters")
		}
	}

	seed, ok := new(big.Int).SetString(trimmed, 0)
	if !ok {
		return nil, New(ErrCodeInvalidSeed, "seed is not a valid integer: %q", trimmed)
	}

	if seed.Sign() < 0 {
		return nil, New(ErrCodeInvalidSeed, "seed must be non-negative, got %s", seed)
	}

	return seed, nil
}

// ValidateSeed validates that an already-parsed seed is usable.
// A nil seed is treated as absent rather than invalid; negative seeds are
// rejected with an INVALID_SEED error.
func ValidateSeed(seed *big.Int) error {
	if seed == nil {
		return nil
	}
	if seed.Sign() < 0 {
		return New(ErrCodeInvalidSeed, "seed must be non-negative, got %s", seed)
	}
	return nil
}

// ValidateFamily validates a rearrangement family name.
// Valid families are "permutation", "cyclic" and "derangement".
func ValidateFamily(family string) error {
	switch family {
	case "permutation", "cyclic", "derangement":
		return nil
	default:
		return New(ErrCodeInvalidFamily, "unknown family %q (want permutation, cyclic or derangement)", family)
	}
}
