package domain

import "strings"

// Path is the ordered sequence of field names from the root to a node.
// It is the canonical address of a node and the key used by the identity
// reconciliation cache.
type Path []string

// ParsePath converts a dotted string ("a.b.c") into a Path.
// An empty string is the root path.
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}
	return Path(strings.Split(s, "."))
}

// Child returns a new Path extended by one component.
// The receiver is never aliased: the result owns its backing array.
func (p Path) Child(name string) Path {
	next := make(Path, len(p)+1)
	copy(next, p)
	next[len(p)] = name
	return next
}

// String renders the path in dotted form. The root path renders as "".
func (p Path) String() string {
	return strings.Join(p, ".")
}

// IsRoot reports whether the path addresses the tree root.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// HasPrefix reports whether prefix is an ancestor of (or equal to) p.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i, name := range prefix {
		if p[i] != name {
			return false
		}
	}
	return true
}
