package sapling

import (
	"sync"

	"github.com/aretw0/sapling/pkg/domain"
	"github.com/aretw0/sapling/pkg/schema"
)

// Node is one materialized location in a state tree: its path, its governing
// descriptor and the raw subtree at that path. Nodes are immutable identity
// objects — reconciliation hands the same *Node out from every tree in which
// the location's type and deep raw value are unchanged, so pointer equality
// answers "did this subtree change". Anything that depends on which tree a
// traversal started from (navigation, transitions) lives on Cursor instead.
type Node struct {
	path domain.Path
	desc *schema.Descriptor
	raw  any

	mu    sync.Mutex
	state *schema.Instance
}

// Path returns the node's address from the root.
func (n *Node) Path() domain.Path {
	out := make(domain.Path, len(n.path))
	copy(out, n.path)
	return out
}

// Type returns the descriptor governing this node.
func (n *Node) Type() *schema.Descriptor { return n.desc }

// State returns the materialized, type-tagged state view: field values
// recursively materialized, constants copied, computed properties evaluated
// on read.
func (n *Node) State() *schema.Instance {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state == nil {
		n.state = schema.Materialize(n.desc, n.raw)
	}
	return n.state
}

// ValueOf returns the raw data view of the subtree: contributed data only,
// with constants and computed properties excluded. When nothing in the
// subtree is backed by contributed data it returns domain.NoData.
func (n *Node) ValueOf() any {
	view := schema.RawView(n.desc, n.raw)
	if !domain.HasData(view) {
		return domain.NoData
	}
	return view
}

// Fields lists the names of addressable child fields (constants excluded).
func (n *Node) Fields() []string {
	if n.desc == nil {
		return nil
	}
	var out []string
	for _, name := range n.desc.FieldNames() {
		if f, _ := n.desc.Field(name); !f.IsConst {
			out = append(out, name)
		}
	}
	return out
}

// Transitions lists every callable valid at this node: built-ins for the
// node's kind, inherited transitions and own transitions (own wins).
func (n *Node) Transitions() []string {
	if n.desc == nil {
		return nil
	}
	return n.desc.TransitionNames()
}
