package sapling

import (
	"log/slog"
	"sync"

	"github.com/aretw0/sapling/internal/logging"
	"github.com/aretw0/sapling/internal/runtime"
	"github.com/aretw0/sapling/pkg/domain"
	"github.com/aretw0/sapling/pkg/schema"
)

// Version of the library.
const Version = "0.1.0"

// Option defines a functional option for configuring a composed tree.
type Option func(*Root)

// WithLogger sets a custom structured logger for the tree and every tree
// derived from it by transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Root) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Root is the façade over one immutable state tree. It owns the root raw
// value, the descriptor overrides recorded by type shifts, and the
// path-keyed node cache used for identity reconciliation against the tree
// it was derived from.
type Root struct {
	desc      *schema.Descriptor
	raw       any
	overrides runtime.Overrides
	prev      *Root
	logger    *slog.Logger

	mu    sync.Mutex
	nodes map[string]*Node
}

// Compose materializes a state tree for a compiled type and an optional raw
// value. The value is cloned: the tree never aliases caller-owned data.
func Compose(d *schema.Descriptor, value any, opts ...Option) *Root {
	r := &Root{
		desc:   d,
		raw:    domain.Clone(value),
		logger: logging.NewNop(),
		nodes:  make(map[string]*Node),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ComposeDefinition compiles a definition and composes a tree over it in
// one step.
func ComposeDefinition(def *schema.Definition, value any, opts ...Option) (*Root, error) {
	d, err := schema.Compile(def)
	if err != nil {
		return nil, err
	}
	return Compose(d, value, opts...), nil
}

// Node returns the root node of the tree, the identity object shared with
// any other tree whose whole raw value is unchanged.
func (r *Root) Node() *Node { return r.nodeAt(nil) }

// Cursor returns a cursor positioned at the root node and bound to this
// tree: transitions invoked through it derive from this tree's raw value.
func (r *Root) Cursor() Cursor { return r.cursorAt(nil) }

// State returns the materialized state view of the root node.
func (r *Root) State() *schema.Instance { return r.Node().State() }

// ValueOf returns the raw data view of the whole tree (constants and
// computed properties excluded), or domain.NoData when no field is backed
// by contributed data.
func (r *Root) ValueOf() any { return r.Node().ValueOf() }

// Get returns a cursor for a declared field of the root.
func (r *Root) Get(name string) (Cursor, error) { return r.Cursor().Get(name) }

// Call invokes a named transition on the root node and returns the new
// tree.
func (r *Root) Call(name string, args ...any) (*Root, error) {
	return r.Cursor().Call(name, args...)
}

// At walks a dotted path from the root ("contains.contains.y") and returns
// a cursor there, bound to this tree.
func (r *Root) At(path string) (Cursor, error) {
	c := r.Cursor()
	for _, name := range domain.ParsePath(path) {
		child, err := c.Get(name)
		if err != nil {
			return Cursor{}, err
		}
		c = child
	}
	return c, nil
}

// nodeAt resolves the node for a path through the reconciliation cache.
//
// The cache is the identity engine: every access route to a path (field
// traversal, projections, queries) funnels through here, so a path maps to
// exactly one node object per tree. If the previous tree holds a node whose
// governing descriptor and deep raw value match, that object is shared
// verbatim; ancestors of an edit never match because their raw subtree
// embeds the change.
func (r *Root) nodeAt(p domain.Path) *Node {
	key := p.String()
	r.mu.Lock()
	if n, ok := r.nodes[key]; ok {
		r.mu.Unlock()
		return n
	}
	prev := r.prev
	r.mu.Unlock()

	desc := runtime.DescriptorAt(r.desc, r.overrides, r.raw, p)
	raw := domain.Lookup(r.raw, p)

	if prev != nil {
		prior := prev.nodeAt(p)
		if prior != nil && prior.desc == desc && domain.Equal(prior.raw, raw) {
			// Unchanged at this path: share the prior object. Nodes carry no
			// tree backref, so sharing never redirects any tree's dispatch.
			return r.store(key, prior)
		}
	}

	n := &Node{path: p, desc: desc, raw: raw}
	return r.store(key, n)
}

func (r *Root) cursorAt(p domain.Path) Cursor {
	return Cursor{node: r.nodeAt(p), root: r}
}

// store publishes a node in the cache, returning the canonical object if a
// concurrent reader won the race.
func (r *Root) store(key string, n *Node) *Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.nodes[key]; ok {
		return existing
	}
	r.nodes[key] = n
	return n
}

// maxLineage bounds how many predecessor trees a root keeps reachable for
// reconciliation. Identity reuse only ever needs the recent past; without a
// bound a long-running edit loop would retain every tree it ever produced.
const maxLineage = 32

// derive builds the successor tree a transition produced and trims the
// lineage so reconciliation depth and retained history stay bounded. Trees
// past the bound materialize fresh, value-equal nodes instead of shared
// ones.
func (r *Root) derive(raw any, overrides runtime.Overrides) *Root {
	next := &Root{
		desc:      r.desc,
		raw:       raw,
		overrides: overrides,
		prev:      r,
		logger:    r.logger,
		nodes:     make(map[string]*Node),
	}
	oldest := next
	for i := 0; i < maxLineage && oldest != nil; i++ {
		oldest.mu.Lock()
		p := oldest.prev
		oldest.mu.Unlock()
		oldest = p
	}
	if oldest != nil {
		oldest.mu.Lock()
		oldest.prev = nil
		oldest.mu.Unlock()
	}
	return next
}
