/*
Package sapling materializes immutable, recursively composed state trees
from declarative schemas and evolves them through named transitions.

A schema compiles once into a type descriptor graph (see pkg/schema). A
descriptor plus an optional raw value composes into a Root: a façade over a
tree of immutable nodes. Invoking a transition never mutates the tree; it
computes an entirely new root raw value and returns a new Root, reusing the
prior node object at every path whose type and deep raw value did not
change (structural sharing).

# Usage

	counter := &schema.Definition{
	    Name:   "Counter",
	    Fields: map[string]any{"speed": schema.Number()},
	}

	root, err := sapling.ComposeDefinition(counter, nil)
	if err != nil {
	    log.Fatal(err)
	}

	speed, _ := root.Get("speed")
	next, _ := speed.Call("sum", 10)
	next, _ = next.Cursor().MustGet("speed").Call("sum", 20)

	fmt.Println(next.ValueOf()) // map[speed:30]

# Key Guarantees

  - Trees are fully immutable after construction: unlimited concurrent
    reads are safe, and "changing state" always yields a new Root.
  - Reconciliation is keyed by Path and shared by every access route:
    projections and queries resolve to the exact node objects canonical
    field traversal yields.
  - Nodes are pure identity objects; cursors bind them to the tree a
    traversal started from, so what a transition derives from is fixed by
    the navigation route alone.
  - A no-op transition returns a new Root whose raw value deep-equals the
    previous one.

The engine is single-threaded and synchronous: transitions are pure
functions evaluated to completion before Call returns.
*/
package sapling
