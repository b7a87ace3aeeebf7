// Package descriptor canonicalizes numeric, array and sequence type
// descriptors for a parametric-type instantiation system.
//
// A descriptor is either an atom (a bare tag such as "integer" or "bit") or
// a compound form: a tag plus arguments, where each optional argument slot
// is either filled or unspecified. Two descriptors that denote the same set
// of values simplify to structurally identical output, so downstream
// specialization caches and dispatch tables can use structural equality as a
// proxy for semantic equality.
package descriptor

import (
	"fmt"
	"hash/fnv"
	"math/big"
)

// Tags of the type families the simplifier has dedicated rules for.
// Any other tag is treated as an opaque extension family.
const (
	TagUnsignedByte    = "unsigned-byte"
	TagSignedByte      = "signed-byte"
	TagInteger         = "integer"
	TagSingleFloat     = "single-float"
	TagDoubleFloat     = "double-float"
	TagMember          = "member"
	TagArray           = "array"
	TagSimpleArray     = "simple-array"
	TagVector          = "vector"
	TagString          = "string"
	TagSimpleString    = "simple-string"
	TagBaseString      = "base-string"
	TagBitVector       = "bit-vector"
	TagSimpleBitVector = "simple-bit-vector"
)

var (
	AtomInteger = Atom{Name: TagInteger}
	AtomBit     = Atom{Name: "bit"}
	AtomBoolean = Atom{Name: "boolean"}
	// AtomFixnum is the native machine integer: a fixed small
	// representation, cheaper than arbitrary precision.
	AtomFixnum = Atom{Name: "fixnum"}
	AtomT      = Atom{Name: "t"}
	AtomNil    = Atom{Name: "nil"}
)

// Descriptor is an immutable structured type expression. Simplification
// never mutates a descriptor; it produces a new one, sharing unchanged
// subparts where convenient.
type Descriptor interface {
	fmt.Stringer
	Hash() uint64
	isDescriptor()
}

var (
	_ Descriptor = (*Atom)(nil)
	_ Descriptor = (*Wildcard)(nil)
	_ Descriptor = (*Lit)(nil)
	_ Descriptor = (*Unsigned)(nil)
	_ Descriptor = (*Signed)(nil)
	_ Descriptor = (*Range)(nil)
	_ Descriptor = (*Member)(nil)
	_ Descriptor = (*Array)(nil)
	_ Descriptor = (*Sized)(nil)
	_ Descriptor = (*Compound)(nil)
)

// Equal compares two descriptors structurally.
// Like the rest of the package, it identifies a missing optional argument
// with an explicitly unspecified one.
func Equal(a, b Descriptor) bool {
	return a.Hash() == b.Hash()
}

// Atom is a bare tag with no arguments, e.g. "integer", "bit" or any opaque
// symbol.
type Atom struct {
	Name string
}

// Wildcard is the unspecified marker, written * in the source notation.
// It only occurs as an argument of an opaque compound form; the dedicated
// families encode unspecified slots as absent option fields instead.
type Wildcard struct{}

// Lit is an integer literal argument.
type Lit struct {
	Value *big.Int
}

// LitOf builds an integer literal from a native value.
func LitOf(v int64) Lit {
	return Lit{Value: big.NewInt(v)}
}

// Unsigned is the bounded unsigned-width family, (unsigned-byte N).
// A nil Width means the width is unspecified.
type Unsigned struct {
	Width *big.Int
}

// Signed is the bounded signed-width family, (signed-byte N).
// A nil Width means the width is unspecified.
type Signed struct {
	Width *big.Int
}

// Range is the generic bounded range family: (integer L U),
// (single-float L U) or (double-float L U). Nil bounds are unspecified.
type Range struct {
	Tag          string
	Lower, Upper *big.Int
}

// Member is an enumeration of exactly the given literal values.
type Member struct {
	Items []Descriptor
}

// Array is the array/vector family: (array ELEM RANK), (simple-array ...)
// or (vector ...). A nil Elem or Rank is unspecified.
type Array struct {
	Tag  string
	Elem Descriptor
	Rank *big.Int
}

// Sized is the string-like and bit-vector family, a single optional length
// argument: (string N), (bit-vector N) and their simple variants.
type Sized struct {
	Tag    string
	Length *big.Int
}

// Compound is a form whose tag has no dedicated simplification rule.
// Its arguments may be descriptors, literals or wildcards.
type Compound struct {
	Tag  string
	Args []Descriptor
}

func (Atom) isDescriptor()     {}
func (Wildcard) isDescriptor() {}
func (Lit) isDescriptor()      {}
func (Unsigned) isDescriptor() {}
func (Signed) isDescriptor()   {}
func (Range) isDescriptor()    {}
func (Member) isDescriptor()   {}
func (Array) isDescriptor()    {}
func (Sized) isDescriptor()    {}
func (Compound) isDescriptor() {}

func (t Atom) String() string   { return t.Name }
func (Wildcard) String() string { return "*" }
func (t Lit) String() string    { return t.Value.String() }

func (t Unsigned) String() string {
	if t.Width == nil {
		return TagUnsignedByte
	}
	return "(" + TagUnsignedByte + " " + t.Width.String() + ")"
}

func (t Signed) String() string {
	if t.Width == nil {
		return TagSignedByte
	}
	return "(" + TagSignedByte + " " + t.Width.String() + ")"
}

func (t Range) String() string {
	switch {
	case t.Upper != nil:
		return "(" + t.Tag + " " + optString(t.Lower) + " " + t.Upper.String() + ")"
	case t.Lower != nil:
		return "(" + t.Tag + " " + t.Lower.String() + ")"
	}
	return t.Tag
}

func (t Member) String() string {
	s := "(" + TagMember
	for _, item := range t.Items {
		s += " " + item.String()
	}
	return s + ")"
}

func (t Array) String() string {
	switch {
	case t.Rank != nil:
		elem := "*"
		if t.Elem != nil {
			elem = t.Elem.String()
		}
		return "(" + t.Tag + " " + elem + " " + t.Rank.String() + ")"
	case t.Elem != nil:
		return "(" + t.Tag + " " + t.Elem.String() + ")"
	}
	return t.Tag
}

func (t Sized) String() string {
	if t.Length == nil {
		return t.Tag
	}
	return "(" + t.Tag + " " + t.Length.String() + ")"
}

func (t Compound) String() string {
	s := "(" + t.Tag
	for _, arg := range t.Args {
		s += " " + arg.String()
	}
	return s + ")"
}

func optString(n *big.Int) string {
	if n == nil {
		return "*"
	}
	return n.String()
}

const (
	hashWildcard = 16777619 // FNV-1a prime, as for singleton variants
	hashAbsent   = 1099511628211
)

func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

func hashBig(n *big.Int) uint64 {
	if n == nil {
		return hashAbsent
	}
	h := fnv.New64a()
	if n.Sign() < 0 {
		_, _ = h.Write([]byte{'-'})
	}
	_, _ = h.Write(n.Bytes())
	return h.Sum64()
}

func hashOptDesc(d Descriptor) uint64 {
	if d == nil {
		return hashAbsent
	}
	return d.Hash()
}

func (t Atom) Hash() uint64   { return hashString(t.Name) }
func (Wildcard) Hash() uint64 { return hashWildcard }
func (t Lit) Hash() uint64    { return hashBig(t.Value) * 29 }

func (t Unsigned) Hash() uint64 {
	return hashString(TagUnsignedByte)*31 + hashBig(t.Width)*37
}

func (t Signed) Hash() uint64 {
	return hashString(TagSignedByte)*31 + hashBig(t.Width)*37
}

func (t Range) Hash() uint64 {
	return hashString(t.Tag)*31 + hashBig(t.Lower)*37 + hashBig(t.Upper)*41
}

func (t Member) Hash() uint64 {
	h := hashString(TagMember)
	for _, item := range t.Items {
		h = h*31 + item.Hash()
	}
	return h
}

func (t Array) Hash() uint64 {
	return hashString(t.Tag)*31 + hashOptDesc(t.Elem)*37 + hashBig(t.Rank)*41
}

func (t Sized) Hash() uint64 {
	return hashString(t.Tag)*31 + hashBig(t.Length)*43
}

func (t Compound) Hash() uint64 {
	h := hashString(t.Tag) * 31
	for _, arg := range t.Args {
		h = h*31 + arg.Hash()
	}
	return h
}
