package descriptor

import (
	"github.com/hashicorp/go-set/v3"
	"github.com/paratype/paratype/internal/log"
	"github.com/pkg/errors"
	xset "github.com/xtgo/set"
	"math/big"
	"sort"
)

var logger = log.DefaultLogger.With("section", "descriptor")

// Expander resolves user- or library-defined type aliases in a descriptor
// to the primitive structural form the simplifier understands. It must be
// deterministic and total for well-formed input.
type Expander interface {
	Expand(Descriptor) (Descriptor, error)
}

// AliasFunc materializes a parameterized alias from its argument
// descriptors. The result may itself mention further aliases.
type AliasFunc func(args []Descriptor) (Descriptor, error)

// Registry is a table of named aliases implementing Expander.
// It is not safe for concurrent definition; define everything up front and
// share it read-only afterwards.
type Registry struct {
	aliases map[string]AliasFunc
	names   sort.StringSlice // definition order, may repeat on redefinition
}

var _ Expander = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{aliases: make(map[string]AliasFunc)}
}

// Define registers a parameterized alias. Redefining a name replaces it.
func (r *Registry) Define(name string, fn AliasFunc) {
	r.aliases[name] = fn
	r.names = append(r.names, name)
}

// DefineAlias registers a simple rename of an existing descriptor.
func (r *Registry) DefineAlias(name string, d Descriptor) {
	r.Define(name, func(args []Descriptor) (Descriptor, error) {
		if len(args) != 0 {
			return nil, errors.Errorf("alias %q takes no arguments, got %d", name, len(args))
		}
		return d, nil
	})
}

// Names returns the registered alias names, sorted and deduplicated.
func (r *Registry) Names() []string {
	names := make(sort.StringSlice, len(r.names))
	copy(names, r.names)
	sort.Sort(names)
	return names[:xset.Uniq(names)]
}

// Expand resolves aliases until the descriptor reaches primitive or opaque
// tags only, recursing structurally into array element types and opaque
// compound arguments. Unregistered tags pass through untouched.
func (r *Registry) Expand(d Descriptor) (Descriptor, error) {
	expanded, err := r.expand(d, set.New[string](0))
	if err != nil {
		return nil, err
	}
	logger.Debug("expanded descriptor", "input", d, "result", expanded)
	return expanded, nil
}

// expand resolves aliases recursively; seen holds the alias names on the
// current resolution path so cycles fail instead of looping.
func (r *Registry) expand(d Descriptor, seen *set.Set[string]) (Descriptor, error) {
	switch t := d.(type) {
	case Atom:
		return r.expandAlias(t.Name, nil, t, seen)
	case Compound:
		if _, ok := r.aliases[t.Tag]; ok {
			return r.expandAlias(t.Tag, t.Args, t, seen)
		}
		args := make([]Descriptor, len(t.Args))
		for i, arg := range t.Args {
			expanded, err := r.expand(arg, seen)
			if err != nil {
				return nil, err
			}
			args[i] = expanded
		}
		return Compound{Tag: t.Tag, Args: args}, nil
	case Array:
		if t.Elem == nil {
			return t, nil
		}
		elem, err := r.expand(t.Elem, seen)
		if err != nil {
			return nil, err
		}
		return Array{Tag: t.Tag, Elem: elem, Rank: t.Rank}, nil
	default:
		return d, nil
	}
}

// expandAlias materializes one alias and keeps expanding its result. The
// name stays marked as seen only while its own chain is being resolved, so
// sibling uses of the same alias are fine but self-reference is not.
func (r *Registry) expandAlias(name string, args []Descriptor, orig Descriptor, seen *set.Set[string]) (Descriptor, error) {
	fn, ok := r.aliases[name]
	if !ok {
		return orig, nil
	}
	if !seen.Insert(name) {
		return nil, errors.Errorf("alias cycle through %q", name)
	}
	defer seen.Remove(name)
	expanded, err := fn(args)
	if err != nil {
		return nil, errors.Wrapf(err, "expanding alias %q", name)
	}
	return r.expand(expanded, seen)
}

// Builtins returns a registry preloaded with the standard derived aliases.
func Builtins() *Registry {
	r := NewRegistry()
	r.DefineAlias("octet", Unsigned{Width: big.NewInt(8)})
	r.DefineAlias("natural", Range{Tag: TagInteger, Lower: zero})
	r.Define("mod", func(args []Descriptor) (Descriptor, error) {
		if len(args) != 1 {
			return nil, errors.Errorf("mod expects one argument, got %d", len(args))
		}
		lit, ok := args[0].(Lit)
		if !ok {
			return nil, errors.Errorf("mod expects an integer literal, got %s", args[0])
		}
		if lit.Value.Sign() <= 0 {
			return nil, errors.Errorf("mod expects a positive modulus, got %s", lit.Value)
		}
		return Range{Tag: TagInteger, Lower: zero, Upper: new(big.Int).Sub(lit.Value, one)}, nil
	})
	return r
}

// SimplifyExpandList expands then simplifies each descriptor, preserving
// order. The first expansion failure aborts the whole batch; no partial
// results are returned.
func SimplifyExpandList(exp Expander, ds []Descriptor) ([]Descriptor, error) {
	out := make([]Descriptor, len(ds))
	for i, d := range ds {
		expanded, err := exp.Expand(d)
		if err != nil {
			return nil, errors.Wrapf(err, "descriptor %d", i)
		}
		out[i] = Simplify(expanded)
	}
	logger.Debug("simplified descriptor list", "count", len(out))
	return out, nil
}
