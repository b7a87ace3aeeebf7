package descriptor

import (
	"math"
	"math/bits"
	"sync"
)

// WordFacts are the two platform-derived facts the simplifier needs to
// decide whether a bounded integer range coincides exactly with the native
// machine word range. They are computed once and never change for the
// lifetime of the process.
type WordFacts struct {
	// Mersenne reports whether the largest native non-negative signed value
	// M satisfies M AND M+1 == 0, i.e. M = 2^k - 1 for some k.
	Mersenne bool
	// TwosComplement reports whether NOT of the most negative native value
	// equals the most positive one.
	TwosComplement bool
}

var wordFacts = sync.OnceValue(func() WordFacts {
	most := uint(math.MaxInt)
	return WordFacts{
		Mersenne:       most&(most+1) == 0,
		TwosComplement: ^math.MinInt == math.MaxInt,
	}
})

// Facts returns the process-wide platform word facts.
func Facts() WordFacts { return wordFacts() }

// NativeWidth is the signed width of the native machine word:
// 1 + the bit length of the native positive maximum.
func NativeWidth() int { return 1 + bits.Len(uint(math.MaxInt)) }
