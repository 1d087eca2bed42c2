// Package runtime implements the transition dispatcher: it resolves a named
// operation at a path, evaluates it with an explicit rebinding context, and
// normalizes the result into a new root raw value plus descriptor overrides.
package runtime

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/sapling/pkg/domain"
	"github.com/aretw0/sapling/pkg/schema"
)

// Overrides maps dotted paths to the descriptor a type shift recorded for
// that path. Once recorded, an override governs every subsequent
// materialization of the path until another shift replaces it.
type Overrides map[string]*schema.Descriptor

// DescriptorAt resolves the descriptor governing a path, honoring recorded
// overrides (a deeper override wins over an ancestor's field declaration).
// Elements of Array-typed nodes carry no declared type; their descriptor is
// inferred from the raw element. A nil result means the path addresses a
// constant or an undeclared field.
func DescriptorAt(root *schema.Descriptor, overrides Overrides, rootRaw any, path domain.Path) *schema.Descriptor {
	d := root
	if ov, ok := overrides[""]; ok {
		d = ov
	}
	prefix := domain.Path(nil)
	for _, component := range path {
		prefix = prefix.Child(component)
		if d == nil {
			return nil
		}
		switch {
		case d.Kind() == schema.KindArray:
			d = schema.Infer(domain.Lookup(rootRaw, prefix))
		default:
			f, ok := d.Field(component)
			if !ok || f.Desc == nil {
				d = nil
			} else {
				d = f.Desc
			}
		}
		if ov, ok := overrides[prefix.String()]; ok {
			d = ov
		}
	}
	return d
}

// Apply runs the invocation protocol for transition name at path:
//
//  1. materialize the current raw value at the path,
//  2. evaluate the transition with an explicit rebinding context,
//  3. normalize the result (bare value or accumulated handle),
//  4. deep-substitute it into a new root raw value and record the
//     descriptor override if the transition shifted the node's type.
//
// The previous root raw value is never touched.
func Apply(root *schema.Descriptor, rootRaw any, overrides Overrides, path domain.Path, name string, args []any, logger *slog.Logger) (any, Overrides, error) {
	desc := DescriptorAt(root, overrides, rootRaw, path)
	if desc == nil {
		return nil, nil, fmt.Errorf("no type governs path %q", path)
	}
	tr, ok := desc.Transition(name)
	if !ok {
		return nil, nil, fmt.Errorf("type %s has no transition %q (path %q)", desc.Name(), name, path)
	}

	current := domain.Lookup(rootRaw, path)
	raw, shift, err := schema.Normalize(tr(schema.NewRebind(desc, current), current, args...))
	if err != nil {
		return nil, nil, fmt.Errorf("transition %q at %q: %w", name, path, err)
	}

	newRaw := domain.Substitute(rootRaw, path, raw)

	next := make(Overrides, len(overrides)+1)
	for k, v := range overrides {
		next[k] = v
	}
	if shift != nil && shift != desc {
		key := path.String()
		// The shifted type governs the whole subtree; overrides recorded
		// beneath the path under the old type no longer apply.
		for k := range next {
			if domain.ParsePath(k).HasPrefix(path) {
				delete(next, k)
			}
		}
		next[key] = shift
		logger.Debug("type shift", "path", key, "from", desc.Name(), "to", shift.Name())
	}

	logger.Debug("transition applied", "path", path.String(), "op", name, "type", desc.Name())
	return newRaw, next, nil
}
