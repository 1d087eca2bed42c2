package schema

import "sort"

// Kind classifies a descriptor as one of the primitive built-ins or a
// user-defined composite.
type Kind int

const (
	KindComposite Kind = iota
	KindNumber
	KindString
	KindBoolean
	KindArray
	KindObject
)

// Primitive reports whether the kind carries a fixed default and fixed
// built-in transitions.
func (k Kind) Primitive() bool { return k != KindComposite }

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "composite"
	}
}

// Field is a compiled schema field: a reference to another descriptor, or a
// constant literal copied verbatim into state views.
type Field struct {
	Desc     *Descriptor
	Constant any
	IsConst  bool
}

// Descriptor is a node in the compiled type graph. Descriptors are built
// once by Compile and immutable thereafter; transitions and computed
// properties inherited from the parent are already merged in (child wins).
type Descriptor struct {
	name        string
	kind        Kind
	fields      map[string]Field
	order       []string
	transitions map[string]Transition
	computed    map[string]Computed
	parent      *Descriptor
}

// Name returns the type name ("Number", "Robot", ...).
func (d *Descriptor) Name() string { return d.name }

// Kind returns the descriptor's kind.
func (d *Descriptor) Kind() Kind { return d.kind }

// Parent returns the inherited descriptor, or nil.
func (d *Descriptor) Parent() *Descriptor { return d.parent }

// Field looks up a compiled field by name.
func (d *Descriptor) Field(name string) (Field, bool) {
	f, ok := d.fields[name]
	return f, ok
}

// FieldNames returns the field names in stable declaration order
// (inherited fields first).
func (d *Descriptor) FieldNames() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Transition resolves a callable by name: own and inherited transitions
// (already merged) shadow the built-ins of the descriptor's kind.
func (d *Descriptor) Transition(name string) (Transition, bool) {
	if tr, ok := d.transitions[name]; ok {
		return tr, true
	}
	tr, ok := builtins(d.kind)[name]
	return tr, ok
}

// TransitionNames lists every callable valid on this type, sorted:
// built-ins for the kind plus merged own/inherited transitions.
func (d *Descriptor) TransitionNames() []string {
	seen := make(map[string]struct{})
	for name := range builtins(d.kind) {
		seen[name] = struct{}{}
	}
	for name := range d.transitions {
		seen[name] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Computed looks up a computed property by name.
func (d *Descriptor) Computed(name string) (Computed, bool) {
	cp, ok := d.computed[name]
	return cp, ok
}

// ComputedNames lists the computed property names, sorted.
func (d *Descriptor) ComputedNames() []string {
	out := make([]string, 0, len(d.computed))
	for name := range d.computed {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Default returns the fixed default raw value for primitive kinds.
// Composites have no single default: their fields default individually
// during materialization, so the raw default is absence (nil).
func (d *Descriptor) Default() any {
	switch d.kind {
	case KindNumber:
		return float64(0)
	case KindString:
		return ""
	case KindBoolean:
		return false
	case KindArray:
		return []any{}
	case KindObject:
		return map[string]any{}
	default:
		return nil
	}
}

var (
	numberDesc  = &Descriptor{name: "Number", kind: KindNumber}
	stringDesc  = &Descriptor{name: "String", kind: KindString}
	booleanDesc = &Descriptor{name: "Boolean", kind: KindBoolean}
	arrayDesc   = &Descriptor{name: "Array", kind: KindArray}
	objectDesc  = &Descriptor{name: "Object", kind: KindObject}
)

// Number returns the primitive numeric type descriptor.
func Number() *Descriptor { return numberDesc }

// String returns the primitive string type descriptor.
func String() *Descriptor { return stringDesc }

// Boolean returns the primitive boolean type descriptor.
func Boolean() *Descriptor { return booleanDesc }

// Array returns the primitive sequence type descriptor.
func Array() *Descriptor { return arrayDesc }

// Object returns the primitive mapping type descriptor.
func Object() *Descriptor { return objectDesc }

// Infer maps a raw value to the primitive descriptor governing it. It is
// used for elements of Array-typed nodes, which carry no declared type.
func Infer(v any) *Descriptor {
	switch v.(type) {
	case string:
		return stringDesc
	case bool:
		return booleanDesc
	case []any:
		return arrayDesc
	case map[string]any, nil:
		return objectDesc
	default:
		return numberDesc
	}
}
