package shuffle

import (
	"fmt"
	"math/big"
	"slices"
	"testing"

	"github.com/seedshuffle/seedshuffle/pkg/errors"
)

func TestIndexDerangement_Golden(t *testing.T) {
	idx, err := IndexDerangement(12, mustSeed(t, goldenSeed))
	if err != nil {
		t.Fatalf("IndexDerangement: %v", err)
	}
	want := []int{3, 9, 11, 8, 2, 7, 0, 1, 10, 6, 5, 4}
	if !slices.Equal(idx, want) {
		t.Errorf("IndexDerangement(12, golden) = %v, want %v", idx, want)
	}
}

// TestDerangement_Bijective walks the full seed range [0, D_n) for small n
// and checks that every result is a fixed-point-free permutation, that no two
// seeds collide, and that all D_n derangements are reached.
func TestDerangement_Bijective(t *testing.T) {
	for n := 2; n <= 7; n++ {
		count := SubFactorial(n)
		seen := make(map[string]bool, count.Int64())

		seed := new(big.Int)
		one := big.NewInt(1)
		for ; seed.Cmp(count) < 0; seed.Add(seed, one) {
			idx, err := IndexDerangement(n, seed)
			if err != nil {
				t.Fatalf("n=%d seed=%s: %v", n, seed, err)
			}
			if !isPermutation(idx) {
				t.Fatalf("n=%d seed=%s: %v is not a permutation", n, seed, idx)
			}
			for i, v := range idx {
				if i == v {
					t.Fatalf("n=%d seed=%s: fixed point at %d in %v", n, seed, i, idx)
				}
			}
			key := fmt.Sprint(idx)
			if seen[key] {
				t.Fatalf("n=%d seed=%s: derangement %v produced twice", n, seed, idx)
			}
			seen[key] = true
		}

		if int64(len(seen)) != count.Int64() {
			t.Errorf("n=%d: got %d distinct derangements, want %s", n, len(seen), count)
		}
	}
}

// TestDerangement_NoFixedPoints spot-checks larger sequences where exhaustive
// enumeration is out of reach.
func TestDerangement_NoFixedPoints(t *testing.T) {
	for _, n := range []int{13, 20, 50} {
		for s := int64(0); s < 250; s++ {
			seed := new(big.Int).Mul(big.NewInt(s), big.NewInt(40503986152053)) // spread seeds across the range
			idx, err := IndexDerangement(n, seed)
			if err != nil {
				t.Fatalf("n=%d seed=%s: %v", n, seed, err)
			}
			if !isPermutation(idx) {
				t.Fatalf("n=%d seed=%s: not a permutation", n, seed)
			}
			for i, v := range idx {
				if i == v {
					t.Fatalf("n=%d seed=%s: fixed point at %d", n, seed, i)
				}
			}
		}
	}
}

func TestDerangement_InPlace(t *testing.T) {
	xs := []string{"a", "b", "c", "d", "e"}
	orig := slices.Clone(xs)
	if err := Derangement(xs, big.NewInt(17)); err != nil {
		t.Fatal(err)
	}
	for i := range xs {
		if xs[i] == orig[i] {
			t.Errorf("element %q stayed at position %d", xs[i], i)
		}
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	if !slices.Equal(sorted, orig) {
		t.Errorf("derangement changed the element multiset: %v", xs)
	}
}

func TestDerangement_DomainErrors(t *testing.T) {
	for _, n := range []int{0, 1} {
		if _, err := IndexDerangement(n, big.NewInt(0)); !errors.Is(err, errors.ErrCodeDomain) {
			t.Errorf("IndexDerangement(%d): got %v, want DOMAIN_ERROR", n, err)
		}
	}
	if err := Derangement([]int{}, big.NewInt(0)); !errors.Is(err, errors.ErrCodeDomain) {
		t.Error("Derangement on an empty slice should be a DOMAIN_ERROR")
	}
	if err := Derangement([]int{1, 2}, big.NewInt(-3)); !errors.Is(err, errors.ErrCodeDomain) {
		t.Error("negative seed should be a DOMAIN_ERROR")
	}
}
