package descriptor

import (
	"github.com/hashicorp/go-set/v3"
	"math/big"
)

// Simplify returns an equivalent, canonical form of a descriptor: shorter
// or more specific, but denoting exactly the same set of values. It is
// pure, total and idempotent, and safe to apply to unknown extension
// families, which are recursed into structurally.
func Simplify(d Descriptor) Descriptor {
	switch t := d.(type) {
	case Atom:
		// The bare family atoms rewrite like their fully-unspecified
		// compound forms.
		switch t.Name {
		case TagUnsignedByte:
			return Range{Tag: TagInteger, Lower: zero}
		case TagSignedByte:
			return AtomInteger
		}
		return t
	case Unsigned:
		return simplifyUnsigned(t)
	case Signed:
		return simplifySigned(t)
	case Range:
		return simplifyRange(t)
	case Member:
		return simplifyMember(t)
	case Array:
		return simplifyArray(t)
	case Sized:
		return simplifySized(t)
	case Compound:
		args := make([]Descriptor, len(t.Args))
		for i, arg := range t.Args {
			args[i] = Simplify(arg)
		}
		return Compound{Tag: t.Tag, Args: args}
	default:
		// Literals and wildcards are already canonical.
		return d
	}
}

// simplifyUnsigned rewrites an unconstrained width to the equivalent
// non-negative integer range, and width 1 to the single-bit atom.
func simplifyUnsigned(t Unsigned) Descriptor {
	switch {
	case t.Width == nil:
		return Range{Tag: TagInteger, Lower: zero}
	case t.Width.Cmp(one) == 0:
		return AtomBit
	}
	return t
}

// simplifySigned rewrites an unconstrained width to the integer atom, and a
// width matching the native machine word exactly to the fixnum atom.
func simplifySigned(t Signed) Descriptor {
	if t.Width == nil {
		return AtomInteger
	}
	facts := Facts()
	native := facts.Mersenne && facts.TwosComplement &&
		t.Width.IsInt64() && t.Width.Int64() == int64(NativeWidth())
	if native {
		return AtomFixnum
	}
	return t
}

// simplifyRange elides unspecified bounds and detects integer ranges that
// are exactly an unsigned or two's-complement signed width. The lower=0
// branch takes precedence over the lower=NOT(upper) branch; they can only
// coincide at upper=0.
func simplifyRange(t Range) Descriptor {
	if t.Upper == nil {
		if t.Lower == nil {
			return Atom{Name: t.Tag}
		}
		return t
	}
	if t.Tag == TagInteger && t.Lower != nil && IsPow2Minus1(t.Upper) {
		if t.Lower.Sign() == 0 {
			return simplifyUnsigned(Unsigned{Width: big.NewInt(int64(t.Upper.BitLen()))})
		}
		if new(big.Int).Not(t.Upper).Cmp(t.Lower) == 0 {
			return simplifySigned(Signed{Width: big.NewInt(int64(t.Upper.BitLen() + 1))})
		}
	}
	return t
}

// simplifyMember recognizes the two-literal true/nil enumeration as the
// boolean atom, in either order. Any other literal set is left unchanged.
func simplifyMember(t Member) Descriptor {
	if len(t.Items) != 2 {
		return t
	}
	items := set.NewHashSet[Descriptor](2)
	items.Insert(t.Items[0])
	items.Insert(t.Items[1])
	if items.Size() == 2 && items.Contains(AtomT) && items.Contains(AtomNil) {
		return AtomBoolean
	}
	return t
}

// simplifyArray simplifies the element type bottom-up, then collapses to
// the bare tag when both element type and rank are unspecified.
func simplifyArray(t Array) Descriptor {
	elem := t.Elem
	if _, wild := elem.(Wildcard); wild {
		elem = nil
	}
	if elem != nil {
		elem = Simplify(elem)
	}
	if elem == nil && t.Rank == nil {
		return Atom{Name: t.Tag}
	}
	return Array{Tag: t.Tag, Elem: elem, Rank: t.Rank}
}

func simplifySized(t Sized) Descriptor {
	if t.Length == nil {
		return Atom{Name: t.Tag}
	}
	return t
}
