package sapling

import (
	"github.com/aretw0/sapling/pkg/domain"
	"github.com/aretw0/sapling/pkg/schema"
)

// Projection is an externally composable read-only view over a tree. It
// carries no state of its own: every path it touches resolves through the
// owning tree's reconciliation cache, so a projection and canonical field
// traversal always agree on node identity. Independent projections over the
// same tree share nodes; projections over different trees share exactly the
// nodes whose type and value are unchanged between them.
type Projection struct {
	root *Root
	base domain.Path
}

// Project starts a projection at the root of a tree.
func Project(r *Root) *Projection {
	return &Projection{root: r}
}

// At narrows the projection to a dotted path beneath its current base.
func (p *Projection) At(path string) *Projection {
	base := p.base
	for _, name := range domain.ParsePath(path) {
		base = base.Child(name)
	}
	return &Projection{root: p.root, base: base}
}

// Node resolves the shared node at the projection's base.
func (p *Projection) Node() (*Node, error) {
	c, err := p.Cursor()
	if err != nil {
		return nil, err
	}
	return c.Node(), nil
}

// Cursor resolves the node at the projection's base, bound to the
// projected tree.
func (p *Projection) Cursor() (Cursor, error) {
	return p.root.At(p.base.String())
}

// Where returns the children of the base node whose materialized state
// satisfies pred.
func (p *Projection) Where(pred func(*schema.Instance) bool) ([]*Node, error) {
	c, err := p.Cursor()
	if err != nil {
		return nil, err
	}
	var out []*Node
	for _, child := range c.Children() {
		if pred(child.State()) {
			out = append(out, child.Node())
		}
	}
	return out, nil
}
