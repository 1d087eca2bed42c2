package schema

import (
	"fmt"

	"github.com/aretw0/sapling/pkg/domain"
)

// Rebind is the explicit rebinding context passed to every transition.
// It positions the transition at its target node and hands out chainable
// handles: Here keeps the node's current type, As shifts it to another one.
type Rebind struct {
	desc    *Descriptor
	current any
}

// NewRebind builds the context for a transition invoked on a node of type d
// whose raw value is current. It is called by the dispatcher; transition
// bodies only consume the context.
func NewRebind(d *Descriptor, current any) *Rebind {
	return &Rebind{desc: d, current: current}
}

// Type returns the descriptor currently governing the target node.
func (rc *Rebind) Type() *Descriptor { return rc.desc }

// Here returns a chainable handle positioned at the target node under its
// current type. Returning it untouched is the canonical no-op.
func (rc *Rebind) Here() *Handle {
	return &Handle{desc: rc.desc, pending: rc.current}
}

// As returns a chainable handle positioned at the target node under another
// type (a type shift). Raw values for field names common to both types are
// carried over; fields unique to the new type default at materialization.
func (rc *Rebind) As(d *Descriptor) *Handle {
	if d == nil || d == rc.desc {
		return rc.Here()
	}
	var pending any
	if d.Kind().Primitive() {
		// No named fields to carry into a primitive; start from absence.
		pending = nil
	} else {
		cur, _ := rc.current.(map[string]any)
		carried := make(map[string]any)
		for _, name := range d.FieldNames() {
			f, _ := d.Field(name)
			if f.IsConst {
				continue
			}
			if v, ok := cur[name]; ok {
				carried[name] = v
			}
		}
		pending = carried
	}
	return &Handle{desc: d, pending: pending, shifted: true}
}

// Handle is a chainable edit accumulator positioned at the transition's
// target node. Every Apply and Set returns a new handle; the pending raw
// value of the handle a transition returns becomes the node's new value.
type Handle struct {
	desc    *Descriptor
	pending any
	shifted bool
	err     error
}

// Pending returns the raw value accumulated so far.
func (h *Handle) Pending() any { return h.pending }

// Shift returns the descriptor the handle rebinds its node to, if the
// handle was produced by a type shift.
func (h *Handle) Shift() (*Descriptor, bool) {
	if h.shifted {
		return h.desc, true
	}
	return nil, false
}

// Err returns the first addressing failure recorded while chaining.
func (h *Handle) Err() error { return h.err }

// Set replaces the handle's whole pending value.
func (h *Handle) Set(v any) *Handle {
	if h.err != nil {
		return h
	}
	return &Handle{desc: h.desc, pending: domain.Clone(v), shifted: h.shifted}
}

// Apply invokes a named transition at a dotted sub-path relative to the
// handle and folds the result into the pending value. Multiple Apply calls
// compose into a single combined edit.
func (h *Handle) Apply(fieldPath, name string, args ...any) *Handle {
	if h.err != nil {
		return h
	}
	p := domain.ParsePath(fieldPath)
	sub := h.desc
	for _, component := range p {
		f, ok := sub.Field(component)
		if !ok || f.Desc == nil {
			return h.fail(fmt.Errorf("type %s has no field %q (in %q)", sub.Name(), component, fieldPath))
		}
		sub = f.Desc
	}
	tr, ok := sub.Transition(name)
	if !ok {
		return h.fail(fmt.Errorf("type %s has no transition %q", sub.Name(), name))
	}

	current := domain.Lookup(h.pending, p)
	raw, _, err := Normalize(tr(NewRebind(sub, current), current, args...))
	if err != nil {
		return h.fail(err)
	}
	return &Handle{desc: h.desc, pending: domain.Substitute(h.pending, p, raw), shifted: h.shifted}
}

func (h *Handle) fail(err error) *Handle {
	return &Handle{desc: h.desc, pending: h.pending, shifted: h.shifted, err: err}
}

// Normalize folds a transition's return value into the raw value it
// contributes and the descriptor override of a type shift, if any. Bare
// return values are cloned so the tree never aliases caller-owned data.
func Normalize(out any) (raw any, shift *Descriptor, err error) {
	if h, ok := out.(*Handle); ok {
		if h.err != nil {
			return nil, nil, h.err
		}
		shift, _ := h.Shift()
		return h.pending, shift, nil
	}
	return domain.Clone(out), nil, nil
}
