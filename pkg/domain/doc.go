/*
Package domain contains the pure data model shared by every layer of Sapling.

It defines the raw value plumbing (lookup, immutable substitution, deep
equality) and the Path type that addresses nodes inside a tree. This package
is kept free of external dependencies and of any schema or engine knowledge,
following Hexagonal Architecture principles.

# Key Entities

  - Path: the root-to-node sequence of field names. Two nodes are "the same
    location" iff their Paths are equal; Paths are the identity-cache key.
  - RawValue operations: Lookup, Substitute, Clone and Equal treat plain
    hierarchical data (scalars, []any sequences, map[string]any mappings)
    as immutable. Substitute never writes in place: it copies the spine
    from the root down to the edited path and shares everything else.
  - NoData: the sentinel reported by raw value views when no field in a
    subtree is backed by contributed data.
*/
package domain
