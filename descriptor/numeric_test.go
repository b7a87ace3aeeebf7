package descriptor

import (
	"github.com/stretchr/testify/assert"
	"math"
	"math/big"
	"testing"
)

func pow2Minus1(k uint) *big.Int {
	return new(big.Int).Sub(new(big.Int).Lsh(one, k), one)
}

// bigPathPow2Minus1 is the arbitrary-precision check on its own, used to
// cross-check the native fast path at the word boundary.
func bigPathPow2Minus1(n *big.Int) bool {
	next := new(big.Int).Add(n, one)
	return new(big.Int).And(n, next).Sign() == 0
}

func TestIsPow2Minus1SmallValues(t *testing.T) {
	allOnes := map[int64]bool{0: true, 1: true, 3: true, 7: true, 15: true, 31: true, 63: true}
	for v := int64(0); v <= 64; v++ {
		assert.Equal(t, allOnes[v], IsPow2Minus1(big.NewInt(v)), "value %d", v)
	}
}

func TestIsPow2Minus1LargeValues(t *testing.T) {
	testCases := []struct {
		name     string
		input    *big.Int
		expected bool
	}{
		{"2^100-1 is all ones", pow2Minus1(100), true},
		{"2^100 is not", new(big.Int).Lsh(one, 100), false},
		{"2^100-2 is not", new(big.Int).Sub(pow2Minus1(100), one), false},
		{"2^64-1 is all ones", pow2Minus1(64), true},
		{"2^63 is not", new(big.Int).Lsh(one, 63), false},
		{"max int64 minus one is not", big.NewInt(math.MaxInt64 - 1), false},
		{"negative value is not", big.NewInt(-1), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsPow2Minus1(tc.input))
		})
	}
}

// The fast path must agree with the arbitrary-precision path at and around
// the native word boundary, where the fast path is answered by the
// precomputed Mersenne fact instead of arithmetic that could overflow.
func TestIsPow2Minus1NativeBoundaryAgreement(t *testing.T) {
	boundary := big.NewInt(math.MaxInt)
	for _, delta := range []int64{-2, -1, 0} {
		n := new(big.Int).Add(boundary, big.NewInt(delta))
		assert.Equal(t, bigPathPow2Minus1(n), IsPow2Minus1(n), "at max int %+d", delta)
	}
	above := new(big.Int).Add(boundary, one)
	assert.Equal(t, bigPathPow2Minus1(above), IsPow2Minus1(above), "at max int +1")
}
