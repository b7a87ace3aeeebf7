package descriptor

import (
	"bytes"
	"encoding/json"
	"github.com/pkg/errors"
	"math/big"
)

// The JSON encoding of descriptors is the wire form used by tooling:
// atoms are strings, integer literals are numbers (arbitrary precision),
// the wildcard is "*", and compound forms are arrays of [tag, args...]
// with trailing unspecified arguments elided. It is a data encoding, not
// the surface type syntax.

// UnmarshalDescriptor decodes a single descriptor from its JSON encoding.
func UnmarshalDescriptor(data []byte) (Descriptor, error) {
	raw, err := decodeRaw(data)
	if err != nil {
		return nil, err
	}
	return fromJSON(raw)
}

// UnmarshalList decodes a JSON array of descriptors.
func UnmarshalList(data []byte) ([]Descriptor, error) {
	raw, err := decodeRaw(data)
	if err != nil {
		return nil, err
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, errors.Errorf("expected a JSON array of descriptors, got %T", raw)
	}
	out := make([]Descriptor, len(items))
	for i, item := range items {
		d, err := fromJSON(item)
		if err != nil {
			return nil, errors.Wrapf(err, "descriptor %d", i)
		}
		out[i] = d
	}
	return out, nil
}

// MarshalDescriptor encodes a descriptor in its canonical elided JSON form.
func MarshalDescriptor(d Descriptor) ([]byte, error) {
	return json.Marshal(toJSON(d))
}

// MarshalList encodes a list of descriptors as a JSON array.
func MarshalList(ds []Descriptor) ([]byte, error) {
	out := make([]any, len(ds))
	for i, d := range ds {
		out[i] = toJSON(d)
	}
	return json.Marshal(out)
}

func decodeRaw(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decoding descriptor JSON")
	}
	return raw, nil
}

func fromJSON(v any) (Descriptor, error) {
	switch t := v.(type) {
	case string:
		if t == "*" {
			return Wildcard{}, nil
		}
		return Atom{Name: t}, nil
	case json.Number:
		n, ok := new(big.Int).SetString(t.String(), 10)
		if !ok {
			return nil, errors.Errorf("literal %q is not an integer", t.String())
		}
		return Lit{Value: n}, nil
	case []any:
		return compoundFromJSON(t)
	}
	return nil, errors.Errorf("cannot decode %T as a descriptor", v)
}

func compoundFromJSON(items []any) (Descriptor, error) {
	if len(items) == 0 {
		return nil, errors.New("empty compound descriptor")
	}
	tag, ok := items[0].(string)
	if !ok {
		return nil, errors.Errorf("compound descriptor tag must be a string, got %v", items[0])
	}
	args := items[1:]
	switch tag {
	case TagUnsignedByte, TagSignedByte:
		if len(args) > 1 {
			return nil, errors.Errorf("%s takes at most one argument, got %d", tag, len(args))
		}
		width, err := optIntArg(tag, args, 0)
		if err != nil {
			return nil, err
		}
		if tag == TagUnsignedByte {
			return Unsigned{Width: width}, nil
		}
		return Signed{Width: width}, nil
	case TagInteger, TagSingleFloat, TagDoubleFloat:
		if len(args) > 2 {
			return nil, errors.Errorf("%s takes at most two arguments, got %d", tag, len(args))
		}
		lower, err := optIntArg(tag, args, 0)
		if err != nil {
			return nil, err
		}
		upper, err := optIntArg(tag, args, 1)
		if err != nil {
			return nil, err
		}
		return Range{Tag: tag, Lower: lower, Upper: upper}, nil
	case TagMember:
		literals := make([]Descriptor, len(args))
		for i, arg := range args {
			d, err := fromJSON(arg)
			if err != nil {
				return nil, errors.Wrapf(err, "%s argument %d", tag, i+1)
			}
			literals[i] = d
		}
		return Member{Items: literals}, nil
	case TagArray, TagSimpleArray, TagVector:
		if len(args) > 2 {
			return nil, errors.Errorf("%s takes at most two arguments, got %d", tag, len(args))
		}
		var elem Descriptor
		if len(args) > 0 {
			d, err := fromJSON(args[0])
			if err != nil {
				return nil, errors.Wrapf(err, "%s element type", tag)
			}
			if _, wild := d.(Wildcard); !wild {
				elem = d
			}
		}
		rank, err := optIntArg(tag, args, 1)
		if err != nil {
			return nil, err
		}
		return Array{Tag: tag, Elem: elem, Rank: rank}, nil
	case TagString, TagSimpleString, TagBaseString, TagBitVector, TagSimpleBitVector:
		if len(args) > 1 {
			return nil, errors.Errorf("%s takes at most one argument, got %d", tag, len(args))
		}
		length, err := optIntArg(tag, args, 0)
		if err != nil {
			return nil, err
		}
		return Sized{Tag: tag, Length: length}, nil
	}
	decoded := make([]Descriptor, len(args))
	for i, arg := range args {
		d, err := fromJSON(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "%s argument %d", tag, i+1)
		}
		decoded[i] = d
	}
	return Compound{Tag: tag, Args: decoded}, nil
}

// optIntArg reads an optional integer argument: absent and "*" both decode
// to nil.
func optIntArg(tag string, args []any, i int) (*big.Int, error) {
	if i >= len(args) {
		return nil, nil
	}
	switch v := args[i].(type) {
	case string:
		if v == "*" {
			return nil, nil
		}
	case json.Number:
		n, ok := new(big.Int).SetString(v.String(), 10)
		if !ok {
			return nil, errors.Errorf("%s: argument %d is not an integer: %s", tag, i+1, v)
		}
		return n, nil
	}
	return nil, errors.Errorf(`%s: argument %d must be an integer or "*", got %v`, tag, i+1, args[i])
}

func toJSON(d Descriptor) any {
	switch t := d.(type) {
	case Atom:
		return t.Name
	case Wildcard:
		return "*"
	case Lit:
		return jsonNum(t.Value)
	case Unsigned:
		if t.Width == nil {
			return TagUnsignedByte
		}
		return []any{TagUnsignedByte, jsonNum(t.Width)}
	case Signed:
		if t.Width == nil {
			return TagSignedByte
		}
		return []any{TagSignedByte, jsonNum(t.Width)}
	case Range:
		switch {
		case t.Upper != nil:
			return []any{t.Tag, jsonOpt(t.Lower), jsonNum(t.Upper)}
		case t.Lower != nil:
			return []any{t.Tag, jsonNum(t.Lower)}
		}
		return t.Tag
	case Member:
		out := make([]any, 0, len(t.Items)+1)
		out = append(out, TagMember)
		for _, item := range t.Items {
			out = append(out, toJSON(item))
		}
		return out
	case Array:
		switch {
		case t.Rank != nil:
			elem := any("*")
			if t.Elem != nil {
				elem = toJSON(t.Elem)
			}
			return []any{t.Tag, elem, jsonNum(t.Rank)}
		case t.Elem != nil:
			return []any{t.Tag, toJSON(t.Elem)}
		}
		return t.Tag
	case Sized:
		if t.Length == nil {
			return t.Tag
		}
		return []any{t.Tag, jsonNum(t.Length)}
	case Compound:
		out := make([]any, 0, len(t.Args)+1)
		out = append(out, t.Tag)
		for _, arg := range t.Args {
			out = append(out, toJSON(arg))
		}
		return out
	default:
		return d.String()
	}
}

// jsonNum keeps arbitrary-precision literals intact on the wire.
func jsonNum(n *big.Int) any {
	return json.RawMessage(n.String())
}

func jsonOpt(n *big.Int) any {
	if n == nil {
		return "*"
	}
	return jsonNum(n)
}
