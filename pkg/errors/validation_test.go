package errors

import (
	"math/big"
	"testing"
)

func TestParseSeed(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "0"},
		{"42", "42"},
		{" 42\n", "42"},
		{"170141183460469231731687303715884105727", "170141183460469231731687303715884105727"},
		{"0xff", "255"},
		{"0b1010", "10"},
		{"479_001_600", "479001600"},
	}

	for _, tt := range tests {
		got, err := ParseSeed(tt.input)
		if err != nil {
			t.Errorf("ParseSeed(%q): %v", tt.input, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseSeed(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseSeed_Invalid(t *testing.T) {
	for _, input := range []string{"", "  ", "-1", "12a", "0x", "1.5", "seed\x00"} {
		if _, err := ParseSeed(input); !Is(err, ErrCodeInvalidSeed) {
			t.Errorf("ParseSeed(%q): got %v, want INVALID_SEED", input, err)
		}
	}
}

func TestValidateSeed(t *testing.T) {
	if err := ValidateSeed(nil); err != nil {
		t.Errorf("ValidateSeed(nil) = %v, want nil", err)
	}
	if err := ValidateSeed(big.NewInt(0)); err != nil {
		t.Errorf("ValidateSeed(0) = %v, want nil", err)
	}
	if err := ValidateSeed(big.NewInt(-1)); !Is(err, ErrCodeInvalidSeed) {
		t.Errorf("ValidateSeed(-1) = %v, want INVALID_SEED", err)
	}
}

func TestValidateFamily(t *testing.T) {
	for _, family := range []string{"permutation", "cyclic", "derangement"} {
		if err := ValidateFamily(family); err != nil {
			t.Errorf("ValidateFamily(%q) = %v", family, err)
		}
	}
	if err := ValidateFamily("random"); !Is(err, ErrCodeInvalidFamily) {
		t.Errorf("ValidateFamily(random) = %v, want INVALID_FAMILY", err)
	}
}
