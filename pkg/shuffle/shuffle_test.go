package shuffle

import (
	"fmt"
	"math/big"
	"slices"
	"testing"

	"github.com/seedshuffle/seedshuffle/pkg/errors"
)

// goldenSeed is the 2^127-1 seed used by the regression fixtures.
const goldenSeed = "170141183460469231731687303715884105727"

func mustSeed(t *testing.T, s string) *big.Int {
	t.Helper()
	seed, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("bad seed literal %q", s)
	}
	return seed
}

func TestIndexShuffle_Golden(t *testing.T) {
	idx, err := IndexShuffle(12, mustSeed(t, goldenSeed))
	if err != nil {
		t.Fatalf("IndexShuffle: %v", err)
	}
	want := []int{11, 7, 10, 4, 0, 1, 3, 2, 6, 5, 9, 8}
	if !slices.Equal(idx, want) {
		t.Errorf("IndexShuffle(12, golden) = %v, want %v", idx, want)
	}
}

func TestShuffle_Golden(t *testing.T) {
	xs := seq(12)
	if err := Shuffle(xs, mustSeed(t, goldenSeed)); err != nil {
		t.Fatalf("Shuffle: %v", err)
	}
	want := []int{11, 7, 10, 4, 0, 1, 3, 2, 6, 5, 9, 8}
	if !slices.Equal(xs, want) {
		t.Errorf("Shuffle([0..11], golden) = %v, want %v", xs, want)
	}
}

// TestShuffle_Complete checks the defining property: iterating the seed over
// the full range [0, n!) produces every permutation exactly once.
func TestShuffle_Complete(t *testing.T) {
	for n := 1; n <= 5; n++ {
		count := Factorial(n)
		seen := make(map[string]bool, count.Int64())

		seed := new(big.Int)
		one := big.NewInt(1)
		for ; seed.Cmp(count) < 0; seed.Add(seed, one) {
			idx, err := IndexShuffle(n, seed)
			if err != nil {
				t.Fatalf("n=%d seed=%s: %v", n, seed, err)
			}
			if !isPermutation(idx) {
				t.Fatalf("n=%d seed=%s: %v is not a permutation", n, seed, idx)
			}
			key := fmt.Sprint(idx)
			if seen[key] {
				t.Fatalf("n=%d seed=%s: permutation %v produced twice", n, seed, idx)
			}
			seen[key] = true
		}

		if int64(len(seen)) != count.Int64() {
			t.Errorf("n=%d: got %d distinct permutations, want %s", n, len(seen), count)
		}
	}
}

func TestShuffle_Trivial(t *testing.T) {
	empty := []int{}
	if err := Shuffle(empty, big.NewInt(7)); err != nil {
		t.Errorf("Shuffle(empty) = %v, want nil", err)
	}

	single := []string{"only"}
	if err := Shuffle(single, big.NewInt(7)); err != nil {
		t.Errorf("Shuffle(single) = %v, want nil", err)
	}
	if single[0] != "only" {
		t.Errorf("single-element shuffle moved the element: %v", single)
	}
}

func TestShuffle_OversizedSeedReducesOnce(t *testing.T) {
	// seed and seed + n! select the same permutation: reduction happens once,
	// against the full outcome count.
	seed := mustSeed(t, goldenSeed)
	shifted := new(big.Int).Add(seed, Factorial(12))

	a, err := IndexShuffle(12, seed)
	if err != nil {
		t.Fatal(err)
	}
	b, err := IndexShuffle(12, shifted)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(a, b) {
		t.Errorf("seed and seed+12! disagree: %v vs %v", a, b)
	}
}

func TestShuffle_SeedErrors(t *testing.T) {
	if err := Shuffle(seq(3), big.NewInt(-1)); !errors.Is(err, errors.ErrCodeDomain) {
		t.Errorf("negative seed: got %v, want DOMAIN_ERROR", err)
	}
	if err := Shuffle(seq(3), nil); !errors.Is(err, errors.ErrCodeDomain) {
		t.Errorf("nil seed: got %v, want DOMAIN_ERROR", err)
	}
}

func TestShuffle_PreservesElements(t *testing.T) {
	xs := []string{"a", "b", "c", "d", "e", "f", "g"}
	orig := slices.Clone(xs)
	if err := Shuffle(xs, big.NewInt(4021)); err != nil {
		t.Fatal(err)
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	if !slices.Equal(sorted, orig) {
		t.Errorf("shuffle changed the element multiset: %v", xs)
	}
}

func TestIndexCyclic_Golden(t *testing.T) {
	idx, err := IndexCyclic(12, mustSeed(t, goldenSeed))
	if err != nil {
		t.Fatalf("IndexCyclic: %v", err)
	}
	want := []int{9, 5, 1, 4, 2, 11, 7, 3, 0, 10, 6, 8}
	if !slices.Equal(idx, want) {
		t.Errorf("IndexCyclic(12, golden) = %v, want %v", idx, want)
	}
}

// TestCyclic_SingleCycle verifies that for every seed in range the result is
// one cycle spanning all n positions, and that the full seed range covers all
// (n-1)! such permutations exactly once.
func TestCyclic_SingleCycle(t *testing.T) {
	for n := 2; n <= 6; n++ {
		count := CyclicCount(n)
		seen := make(map[string]bool, count.Int64())

		seed := new(big.Int)
		one := big.NewInt(1)
		for ; seed.Cmp(count) < 0; seed.Add(seed, one) {
			idx, err := IndexCyclic(n, seed)
			if err != nil {
				t.Fatalf("n=%d seed=%s: %v", n, seed, err)
			}
			if !isPermutation(idx) {
				t.Fatalf("n=%d seed=%s: %v is not a permutation", n, seed, idx)
			}
			if got := cycleLength(idx); got != n {
				t.Fatalf("n=%d seed=%s: cycle through 0 has length %d, want %d (%v)", n, seed, got, n, idx)
			}
			seen[fmt.Sprint(idx)] = true
		}

		if int64(len(seen)) != count.Int64() {
			t.Errorf("n=%d: got %d distinct cyclic permutations, want %s", n, len(seen), count)
		}
	}
}

func TestCyclic_DomainErrors(t *testing.T) {
	for _, n := range []int{0, 1} {
		if _, err := IndexCyclic(n, big.NewInt(0)); !errors.Is(err, errors.ErrCodeDomain) {
			t.Errorf("IndexCyclic(%d): got %v, want DOMAIN_ERROR", n, err)
		}
	}
	if err := CyclicPermutation([]int{42}, big.NewInt(0)); !errors.Is(err, errors.ErrCodeDomain) {
		t.Error("CyclicPermutation on one element should be a DOMAIN_ERROR")
	}
}

// isPermutation reports whether idx contains each of 0..len(idx)-1 once.
func isPermutation(idx []int) bool {
	seen := make([]bool, len(idx))
	for _, v := range idx {
		if v < 0 || v >= len(idx) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// cycleLength traces the cycle of position 0 through the mapping.
func cycleLength(idx []int) int {
	length := 1
	for pos := idx[0]; pos != 0; pos = idx[pos] {
		length++
		if length > len(idx) {
			return -1
		}
	}
	return length
}
