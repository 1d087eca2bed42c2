package sapling

import (
	"fmt"
	"strconv"

	"github.com/aretw0/sapling/internal/runtime"
	"github.com/aretw0/sapling/pkg/domain"
	"github.com/aretw0/sapling/pkg/schema"
)

// Cursor is a node bound to the tree a traversal started from. Navigation
// (Get, Children) resolves children through that tree's reconciliation
// cache, and Call dispatches transitions against that tree's raw value, so
// the outcome of a Call is fixed by the navigation route alone — reads
// through other trees that happen to share the node never change it.
//
// Cursors are cheap values; the identity object they wrap is the shared
// *Node.
type Cursor struct {
	node *Node
	root *Root
}

// Node returns the underlying shared node. Pointer-compare nodes from two
// trees to test whether the location changed between them.
func (c Cursor) Node() *Node { return c.node }

// Path returns the node's address from the root.
func (c Cursor) Path() domain.Path { return c.node.Path() }

// Type returns the descriptor governing the node.
func (c Cursor) Type() *schema.Descriptor { return c.node.Type() }

// State returns the materialized state view of the node.
func (c Cursor) State() *schema.Instance { return c.node.State() }

// ValueOf returns the raw data view of the subtree, or domain.NoData when
// no field in it is backed by contributed data.
func (c Cursor) ValueOf() any { return c.node.ValueOf() }

// Fields lists the names of addressable child fields (constants excluded).
func (c Cursor) Fields() []string { return c.node.Fields() }

// Transitions lists every callable valid at the node.
func (c Cursor) Transitions() []string { return c.node.Transitions() }

// Get returns a cursor for a declared child field, or for an element of an
// Array-typed node addressed by index. Constants are not addressable as
// nodes; they appear in the state view only.
func (c Cursor) Get(name string) (Cursor, error) {
	n := c.node
	if n.desc == nil {
		return Cursor{}, fmt.Errorf("node %q has no type", n.path)
	}
	if n.desc.Kind() == schema.KindArray {
		seq, _ := n.raw.([]any)
		idx, err := strconv.Atoi(name)
		if err != nil || idx < 0 || idx >= len(seq) {
			return Cursor{}, fmt.Errorf("array %q has no element %q", n.path, name)
		}
		return c.root.cursorAt(n.path.Child(name)), nil
	}
	f, ok := n.desc.Field(name)
	if !ok {
		return Cursor{}, fmt.Errorf("type %s has no field %q", n.desc.Name(), name)
	}
	if f.IsConst {
		return Cursor{}, fmt.Errorf("field %q of %s is a constant", name, n.desc.Name())
	}
	return c.root.cursorAt(n.path.Child(name)), nil
}

// MustGet is Get for statically known fields; it panics on unknown names.
func (c Cursor) MustGet(name string) Cursor {
	child, err := c.Get(name)
	if err != nil {
		panic(err)
	}
	return child
}

// Call invokes the named transition at this cursor's path against the tree
// the cursor was navigated from, and returns the tree that results. The
// receiving tree is left untouched.
func (c Cursor) Call(name string, args ...any) (*Root, error) {
	r := c.root
	newRaw, newOverrides, err := runtime.Apply(r.desc, r.raw, r.overrides, c.node.path, name, args, r.logger)
	if err != nil {
		return nil, err
	}
	return r.derive(newRaw, newOverrides), nil
}

// Put assigns a raw value to a named child field (sugar for the child's
// "set" transition). Writing to the reserved state accessor fails with
// domain.ErrInvalidAssignment.
func (c Cursor) Put(name string, value any) (*Root, error) {
	if name == schema.ReservedStateMember {
		return nil, fmt.Errorf("node %q: cannot assign %q: %w", c.node.path, name, domain.ErrInvalidAssignment)
	}
	child, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	return child.Call("set", value)
}

// Children returns cursors for the child nodes: elements for Array-typed
// nodes, declared non-constant fields for composites. All children resolve
// through the tree's reconciliation cache.
func (c Cursor) Children() []Cursor {
	n := c.node
	if n.desc == nil {
		return nil
	}
	if n.desc.Kind() == schema.KindArray {
		seq, _ := n.raw.([]any)
		out := make([]Cursor, len(seq))
		for i := range seq {
			out[i] = c.root.cursorAt(n.path.Child(strconv.Itoa(i)))
		}
		return out
	}
	fields := n.Fields()
	out := make([]Cursor, 0, len(fields))
	for _, name := range fields {
		out = append(out, c.root.cursorAt(n.path.Child(name)))
	}
	return out
}

// Filter returns the children whose cursor satisfies pred. It is a
// read-only projection: the nodes it yields are the same objects canonical
// traversal produces for those paths.
func (c Cursor) Filter(pred func(Cursor) bool) []Cursor {
	var out []Cursor
	for _, child := range c.Children() {
		if pred(child) {
			out = append(out, child)
		}
	}
	return out
}
