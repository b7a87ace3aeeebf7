package descriptor

import (
	"math"
	"math/big"
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
)

// IsPow2Minus1 reports whether n equals 2^k - 1 for some k >= 0, i.e. its
// binary representation is all ones (n = 0 counts, with k = 0).
//
// Values below the native maximum take the native n AND n+1 fast path. The
// native maximum itself is answered by the precomputed Mersenne fact, so
// n+1 is never computed at the overflow boundary. Larger values fall back
// to arbitrary-precision arithmetic.
func IsPow2Minus1(n *big.Int) bool {
	if n.Sign() < 0 {
		return false
	}
	if n.IsInt64() {
		switch v := n.Int64(); {
		case v < math.MaxInt:
			return v&(v+1) == 0
		case v == math.MaxInt:
			return Facts().Mersenne
		}
	}
	next := new(big.Int).Add(n, one)
	return new(big.Int).And(n, next).Sign() == 0
}
