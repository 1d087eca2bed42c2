package schema

import (
	"sort"

	"github.com/aretw0/sapling/pkg/domain"
)

// Compile resolves a definition tree into an immutable descriptor graph.
//
// Validation is eager: a transition named after the reserved state accessor
// fails here, not at call time. Self-referential and mutually recursive
// definitions compile without unrolling because the descriptor for each
// definition is registered in the compiler's arena before its fields are
// resolved.
func Compile(def *Definition) (*Descriptor, error) {
	c := &compiler{arena: make(map[*Definition]*Descriptor)}
	return c.compile(def)
}

// compiler holds the per-Compile arena mapping definition identity to its
// (possibly still in-flight) descriptor. The arena is what breaks cycles.
type compiler struct {
	arena map[*Definition]*Descriptor
}

func (c *compiler) compile(def *Definition) (*Descriptor, error) {
	if d, ok := c.arena[def]; ok {
		return d, nil
	}

	d := &Descriptor{
		name:        def.Name,
		kind:        KindComposite,
		fields:      make(map[string]Field),
		transitions: make(map[string]Transition),
		computed:    make(map[string]Computed),
	}
	if d.name == "" {
		d.name = "AnonymousType"
	}
	c.arena[def] = d

	if def.Parent != nil {
		parent, err := c.compile(def.Parent)
		if err != nil {
			return nil, err
		}
		d.parent = parent
		for _, name := range parent.order {
			d.fields[name] = parent.fields[name]
			d.order = append(d.order, name)
		}
		for name, tr := range parent.transitions {
			d.transitions[name] = tr
		}
		for name, cp := range parent.computed {
			d.computed[name] = cp
		}
	}

	for _, name := range sortedKeys(def.Fields) {
		f, err := c.compileField(d, def.Fields[name])
		if err != nil {
			return nil, err
		}
		if _, overrides := d.fields[name]; !overrides {
			d.order = append(d.order, name)
		}
		d.fields[name] = f
	}

	for name, tr := range def.Transitions {
		if name == ReservedStateMember {
			return nil, &SchemaError{
				Type:   d.name,
				Member: name,
				Reason: "cannot define a transition named 'state': it is the reserved read accessor present on every node",
			}
		}
		d.transitions[name] = tr
	}
	for name, cp := range def.Computed {
		d.computed[name] = cp
	}

	return d, nil
}

// compileField classifies a declared field by the shape of its default:
// descriptor marker, nested definition, self-reference, or constant.
func (c *compiler) compileField(owner *Descriptor, decl any) (Field, error) {
	switch v := decl.(type) {
	case *Descriptor:
		return Field{Desc: v}, nil
	case *Definition:
		sub, err := c.compile(v)
		if err != nil {
			return Field{}, err
		}
		return Field{Desc: sub}, nil
	case selfRef:
		return Field{Desc: owner}, nil
	default:
		// A bare literal becomes a Constant, detached from the caller's copy.
		return Field{Constant: domain.Clone(v), IsConst: true}, nil
	}
}

func sortedKeys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
