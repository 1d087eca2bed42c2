/*
Package schema compiles declarative type definitions into an immutable
descriptor graph and materializes type-tagged state views over raw values.

A Definition describes a type as data: a map of named fields (primitive
markers, nested definitions, the Self sentinel, or constant literals),
a map of named transitions (pure functions from a current value to a new
one), a map of computed properties, and an optional parent definition
contributing inherited members.

Compile resolves a Definition tree into Descriptors once, eagerly
validating reserved names and merging inherited members (child wins).
Recursive and mutually recursive definitions are supported: the compiler
keeps an arena keyed by definition identity and hands out a descriptor
pointer before its fields are populated, so cycles never unroll.

Basic usage:

	robot := &schema.Definition{
	    Name: "Robot",
	    Fields: map[string]any{
	        "speed": schema.Number(),
	        "label": "prototype", // constant
	    },
	    Transitions: map[string]schema.Transition{
	        "boost": func(rc *schema.Rebind, current any, args ...any) any {
	            return rc.Here().Apply("speed", "increment", 10)
	        },
	    },
	}
	desc, err := schema.Compile(robot)

Materialize binds a Descriptor to a raw value and yields an Instance: the
state view. Fields missing from the raw value default per-field (0, "",
false, empty sequence, empty mapping, or a recursively defaulted
composite); constants are copied verbatim; computed properties evaluate on
read and are never stored.
*/
package schema
