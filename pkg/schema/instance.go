package schema

import (
	"sync"

	"github.com/aretw0/sapling/pkg/domain"
)

// Instance is the materialized, type-tagged state view of a raw value.
//
// Field realization is lazy (required for self-referential schemas) and
// idempotent: two concurrent readers racing on the same field compute
// value-equal results and either may land in the cache. Instances are
// never mutated after a field is realized; superseded trees produce new
// instances rather than patching old ones.
type Instance struct {
	desc *Descriptor
	raw  any

	mu     sync.Mutex
	fields map[string]any
}

// Materialize binds a descriptor to a raw value (possibly nil) and returns
// the state view. Missing fields default individually on access.
func Materialize(d *Descriptor, raw any) *Instance {
	return &Instance{desc: d, raw: raw}
}

// Type returns the descriptor tagging this instance.
func (in *Instance) Type() *Descriptor { return in.desc }

// Is reports whether the instance is tagged with d, directly or through
// its inheritance chain.
func (in *Instance) Is(d *Descriptor) bool {
	for t := in.desc; t != nil; t = t.parent {
		if t == d {
			return true
		}
	}
	return false
}

// Value returns the scalar/sequence/mapping of a primitive instance,
// falling back to the kind's fixed default when no raw data backs it.
// Composite instances expose their fields through Get instead.
func (in *Instance) Value() any {
	if !in.desc.Kind().Primitive() {
		return nil
	}
	if !conforms(in.desc.Kind(), in.raw) {
		return in.desc.Default()
	}
	return in.raw
}

// Get resolves one member of the state view by name: a declared field
// (composites materialize recursively as nested Instances, primitives as
// scalars), a constant copied verbatim from the schema, or a computed
// property evaluated on this read.
func (in *Instance) Get(name string) (any, bool) {
	in.mu.Lock()
	if v, ok := in.fields[name]; ok {
		in.mu.Unlock()
		return v, true
	}
	in.mu.Unlock()

	f, ok := in.desc.Field(name)
	if ok {
		v := in.realize(name, f)
		in.mu.Lock()
		if in.fields == nil {
			in.fields = make(map[string]any)
		}
		if prior, ok := in.fields[name]; ok {
			v = prior
		} else {
			in.fields[name] = v
		}
		in.mu.Unlock()
		return v, true
	}

	if cp, ok := in.desc.Computed(name); ok {
		// Evaluated on read, never stored. Computed bodies may call Get on
		// this same instance, so no lock is held here.
		return cp(in), true
	}
	return nil, false
}

// Number reads a field of the state view coerced to float64. Convenience
// for computed property bodies.
func (in *Instance) Number(name string) float64 {
	v, _ := in.Get(name)
	return domain.ToNumber(v)
}

func (in *Instance) realize(name string, f Field) any {
	if f.IsConst {
		return domain.Clone(f.Constant)
	}
	var sub any
	if m, ok := in.raw.(map[string]any); ok {
		sub = m[name]
	}
	if f.Desc.Kind().Primitive() {
		if !conforms(f.Desc.Kind(), sub) {
			return f.Desc.Default()
		}
		return sub
	}
	return Materialize(f.Desc, sub)
}

// conforms reports whether a raw value matches the shape a primitive kind
// declares. Mismatches never fail materialization; they default per field.
func conforms(k Kind, v any) bool {
	if v == nil {
		return false
	}
	switch k {
	case KindNumber:
		return domain.IsNumber(v)
	case KindString:
		_, ok := v.(string)
		return ok
	case KindBoolean:
		_, ok := v.(bool)
		return ok
	case KindArray:
		_, ok := v.([]any)
		return ok
	case KindObject:
		_, ok := v.(map[string]any)
		return ok
	}
	return true
}

// FieldNames lists the declared fields in stable order.
func (in *Instance) FieldNames() []string { return in.desc.FieldNames() }

// ComputedNames lists the computed property names.
func (in *Instance) ComputedNames() []string { return in.desc.ComputedNames() }

// Export renders the state view as plain data: fields recursively, constants
// verbatim, computed properties evaluated once for the rendering.
// Self-referential composite branches without backing raw data are omitted
// to keep the rendering finite.
func (in *Instance) Export() any {
	if in.desc.Kind().Primitive() {
		return domain.Clone(in.Value())
	}
	out := make(map[string]any)
	for _, name := range in.desc.FieldNames() {
		f, _ := in.desc.Field(name)
		v, _ := in.Get(name)
		if nested, ok := v.(*Instance); ok {
			if !f.IsConst && nested.raw == nil && hasDescendant(nested.desc, in.desc) {
				continue
			}
			out[name] = nested.Export()
			continue
		}
		out[name] = v
	}
	for _, name := range in.desc.ComputedNames() {
		v, _ := in.Get(name)
		out[name] = v
	}
	return out
}

// hasDescendant reports whether walking d's composite fields can reach back
// to target, i.e. whether unrolling d could recurse forever.
func hasDescendant(d, target *Descriptor) bool {
	seen := make(map[*Descriptor]bool)
	var walk func(*Descriptor) bool
	walk = func(cur *Descriptor) bool {
		if cur == target {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
		for _, name := range cur.order {
			f := cur.fields[name]
			if f.Desc != nil && !f.Desc.Kind().Primitive() && walk(f.Desc) {
				return true
			}
		}
		return false
	}
	return walk(d)
}

// RawView prunes a raw subtree to what the raw value view exposes: constants
// and computed properties never appear, everything contributed stays.
// Mismatched shapes pass through untouched; they default at materialization
// rather than failing here.
func RawView(d *Descriptor, raw any) any {
	if raw == nil {
		return nil
	}
	if d == nil || d.Kind().Primitive() {
		return raw
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return raw
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		f, declared := d.Field(k)
		if declared && f.IsConst {
			continue
		}
		if _, computed := d.Computed(k); computed {
			continue
		}
		var sub *Descriptor
		if declared {
			sub = f.Desc
		}
		out[k] = RawView(sub, v)
	}
	return out
}
