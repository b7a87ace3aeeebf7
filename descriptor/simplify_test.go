package descriptor

import (
	"github.com/stretchr/testify/assert"
	"math/big"
	"testing"
)

func bi(v int64) *big.Int { return big.NewInt(v) }

// nativeRange is the exact two's-complement range of the native machine
// word, [-2^(w-1), 2^(w-1)-1].
func nativeRange() Range {
	w := uint(NativeWidth())
	upper := new(big.Int).Sub(new(big.Int).Lsh(one, w-1), one)
	lower := new(big.Int).Neg(new(big.Int).Lsh(one, w-1))
	return Range{Tag: TagInteger, Lower: lower, Upper: upper}
}

func TestSimplify(t *testing.T) {
	testCases := []struct {
		name     string
		input    Descriptor
		expected string
	}{
		{
			name:     "bare unsigned-byte atom becomes non-negative integer range",
			input:    Atom{Name: TagUnsignedByte},
			expected: "(integer 0)",
		},
		{
			name:     "unsigned width unspecified becomes non-negative integer range",
			input:    Unsigned{},
			expected: "(integer 0)",
		},
		{
			name:     "unsigned width 1 becomes bit",
			input:    Unsigned{Width: bi(1)},
			expected: "bit",
		},
		{
			name:     "unsigned width 8 unchanged",
			input:    Unsigned{Width: bi(8)},
			expected: "(unsigned-byte 8)",
		},
		{
			name:     "unsigned width 0 unchanged",
			input:    Unsigned{Width: bi(0)},
			expected: "(unsigned-byte 0)",
		},
		{
			name:     "bare signed-byte atom becomes integer",
			input:    Atom{Name: TagSignedByte},
			expected: "integer",
		},
		{
			name:     "signed width unspecified becomes integer",
			input:    Signed{},
			expected: "integer",
		},
		{
			name:     "signed width 8 unchanged",
			input:    Signed{Width: bi(8)},
			expected: "(signed-byte 8)",
		},
		{
			name:     "signed native width becomes fixnum",
			input:    Signed{Width: bi(int64(NativeWidth()))},
			expected: "fixnum",
		},
		{
			name:     "range 0..7 becomes unsigned-byte 3",
			input:    Range{Tag: TagInteger, Lower: bi(0), Upper: bi(7)},
			expected: "(unsigned-byte 3)",
		},
		{
			name:     "range -8..7 becomes signed-byte 4",
			input:    Range{Tag: TagInteger, Lower: bi(-8), Upper: bi(7)},
			expected: "(signed-byte 4)",
		},
		{
			name:     "range 0..1 becomes bit",
			input:    Range{Tag: TagInteger, Lower: bi(0), Upper: bi(1)},
			expected: "bit",
		},
		{
			name:     "range 0..0 becomes unsigned-byte 0",
			input:    Range{Tag: TagInteger, Lower: bi(0), Upper: bi(0)},
			expected: "(unsigned-byte 0)",
		},
		{
			name:     "range -1..0 becomes signed-byte 1",
			input:    Range{Tag: TagInteger, Lower: bi(-1), Upper: bi(0)},
			expected: "(signed-byte 1)",
		},
		{
			name:     "native word range becomes fixnum",
			input:    nativeRange(),
			expected: "fixnum",
		},
		{
			name:     "range with unspecified upper keeps lower",
			input:    Range{Tag: TagInteger, Lower: bi(0)},
			expected: "(integer 0)",
		},
		{
			name:     "range fully unspecified collapses to atom",
			input:    Range{Tag: TagInteger},
			expected: "integer",
		},
		{
			name:     "range with unspecified lower unchanged",
			input:    Range{Tag: TagInteger, Upper: bi(7)},
			expected: "(integer * 7)",
		},
		{
			name:     "non-boundary range unchanged",
			input:    Range{Tag: TagInteger, Lower: bi(-8), Upper: bi(6)},
			expected: "(integer -8 6)",
		},
		{
			name:     "asymmetric mersenne range unchanged",
			input:    Range{Tag: TagInteger, Lower: bi(-4), Upper: bi(7)},
			expected: "(integer -4 7)",
		},
		{
			name:     "huge mersenne range becomes unsigned-byte 100",
			input:    Range{Tag: TagInteger, Lower: bi(0), Upper: pow2Minus1(100)},
			expected: "(unsigned-byte 100)",
		},
		{
			name:     "float range keeps integer bounds",
			input:    Range{Tag: TagDoubleFloat, Lower: bi(0), Upper: bi(7)},
			expected: "(double-float 0 7)",
		},
		{
			name:     "float range fully unspecified collapses to atom",
			input:    Range{Tag: TagSingleFloat},
			expected: "single-float",
		},
		{
			name:     "float range with unspecified upper keeps lower",
			input:    Range{Tag: TagSingleFloat, Lower: bi(0)},
			expected: "(single-float 0)",
		},
		{
			name:     "member of t and nil becomes boolean",
			input:    Member{Items: []Descriptor{AtomT, AtomNil}},
			expected: "boolean",
		},
		{
			name:     "member of nil and t becomes boolean",
			input:    Member{Items: []Descriptor{AtomNil, AtomT}},
			expected: "boolean",
		},
		{
			name:     "member of t and a literal unchanged",
			input:    Member{Items: []Descriptor{AtomT, LitOf(1)}},
			expected: "(member t 1)",
		},
		{
			name:     "member of three literals unchanged",
			input:    Member{Items: []Descriptor{LitOf(1), LitOf(2), LitOf(3)}},
			expected: "(member 1 2 3)",
		},
		{
			name:     "member of t twice unchanged",
			input:    Member{Items: []Descriptor{AtomT, AtomT}},
			expected: "(member t t)",
		},
		{
			name:     "array fully unspecified collapses to atom",
			input:    Array{Tag: TagArray},
			expected: "array",
		},
		{
			name:     "array with element simplifies element",
			input:    Array{Tag: TagArray, Elem: Unsigned{}},
			expected: "(array (integer 0))",
		},
		{
			name:     "array with wildcard element collapses to atom",
			input:    Array{Tag: TagArray, Elem: Wildcard{}},
			expected: "array",
		},
		{
			name:     "vector keeps rank without element",
			input:    Array{Tag: TagVector, Rank: bi(3)},
			expected: "(vector * 3)",
		},
		{
			name:     "simple-array keeps element and rank",
			input:    Array{Tag: TagSimpleArray, Elem: Range{Tag: TagInteger, Lower: bi(0), Upper: bi(7)}, Rank: bi(2)},
			expected: "(simple-array (unsigned-byte 3) 2)",
		},
		{
			name:     "string without length collapses to atom",
			input:    Sized{Tag: TagString},
			expected: "string",
		},
		{
			name:     "string with length unchanged",
			input:    Sized{Tag: TagString, Length: bi(10)},
			expected: "(string 10)",
		},
		{
			name:     "simple-bit-vector without length collapses to atom",
			input:    Sized{Tag: TagSimpleBitVector},
			expected: "simple-bit-vector",
		},
		{
			name:     "opaque atom passes through",
			input:    Atom{Name: "widget"},
			expected: "widget",
		},
		{
			name:     "opaque compound recurses into arguments",
			input:    Compound{Tag: "cons", Args: []Descriptor{Atom{Name: TagUnsignedByte}, Atom{Name: TagSignedByte}}},
			expected: "(cons (integer 0) integer)",
		},
		{
			name:     "opaque compound keeps wildcard arguments",
			input:    Compound{Tag: "cons", Args: []Descriptor{Wildcard{}, Range{Tag: TagInteger, Lower: bi(0), Upper: bi(1)}}},
			expected: "(cons * bit)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := Simplify(tc.input)
			assert.Equal(t, tc.expected, result.String())
		})
	}
}

func TestSimplifyIsIdempotent(t *testing.T) {
	inputs := []Descriptor{
		Atom{Name: TagUnsignedByte},
		Atom{Name: TagSignedByte},
		Atom{Name: "widget"},
		Unsigned{},
		Unsigned{Width: bi(1)},
		Unsigned{Width: bi(8)},
		Signed{},
		Signed{Width: bi(int64(NativeWidth()))},
		Range{Tag: TagInteger, Lower: bi(0), Upper: bi(7)},
		Range{Tag: TagInteger, Lower: bi(-8), Upper: bi(7)},
		Range{Tag: TagInteger, Lower: bi(-8), Upper: bi(6)},
		Range{Tag: TagInteger, Upper: bi(7)},
		Range{Tag: TagInteger},
		Range{Tag: TagDoubleFloat, Lower: bi(0), Upper: bi(7)},
		nativeRange(),
		Member{Items: []Descriptor{AtomT, AtomNil}},
		Member{Items: []Descriptor{LitOf(1), LitOf(2)}},
		Array{Tag: TagArray, Elem: Atom{Name: TagUnsignedByte}, Rank: bi(2)},
		Array{Tag: TagVector},
		Sized{Tag: TagBitVector, Length: bi(16)},
		Sized{Tag: TagBaseString},
		Compound{Tag: "cons", Args: []Descriptor{Atom{Name: TagUnsignedByte}, Wildcard{}}},
	}

	for _, input := range inputs {
		once := Simplify(input)
		twice := Simplify(once)
		assert.True(t, Equal(once, twice), "simplify not idempotent for %s: %s != %s", input, once, twice)
		assert.Equal(t, once.String(), twice.String())
	}
}

func TestSimplifyDoesNotMutateInput(t *testing.T) {
	input := Array{Tag: TagArray, Elem: Unsigned{}, Rank: bi(2)}
	before := input.String()
	_ = Simplify(input)
	assert.Equal(t, before, input.String())
}
