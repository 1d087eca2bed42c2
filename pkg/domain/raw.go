package domain

import "strconv"

// NoData is the sentinel returned by raw value views when no field in the
// subtree is backed by contributed data.
var NoData = noData{}

type noData struct{}

func (noData) String() string { return "<no data>" }

// Lookup resolves the raw sub-value at path. Missing branches resolve to
// nil; callers are expected to fall back to per-field defaulting.
func Lookup(root any, p Path) any {
	current := root
	for _, name := range p {
		switch v := current.(type) {
		case map[string]any:
			current = v[name]
		case []any:
			idx, err := strconv.Atoi(name)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil
			}
			current = v[idx]
		default:
			return nil
		}
	}
	return current
}

// Substitute returns a new root raw value with sub placed at path.
// The original is never mutated: only the spine from the root to the edit
// site is copied, untouched siblings keep their (immutable) references.
// Mappings missing along the way are created on demand, so an edit deep
// inside an absent subtree grows exactly the branch it needs.
func Substitute(root any, p Path, sub any) any {
	if len(p) == 0 {
		return Clone(sub)
	}
	head, rest := p[0], p[1:]

	if seq, ok := root.([]any); ok {
		if idx, err := strconv.Atoi(head); err == nil && idx >= 0 && idx < len(seq) {
			next := make([]any, len(seq))
			copy(next, seq)
			next[idx] = Substitute(seq[idx], rest, sub)
			return next
		}
	}

	m, _ := root.(map[string]any)
	next := make(map[string]any, len(m)+1)
	for k, v := range m {
		next[k] = v
	}
	var child any
	if m != nil {
		child = m[head]
	}
	next[head] = Substitute(child, rest, sub)
	return next
}

// Clone deep-copies a raw value. Scalars are returned as-is.
func Clone(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Clone(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Clone(item)
		}
		return out
	default:
		return v
	}
}

// Equal reports deep equality of two raw values. Numeric values compare by
// quantity regardless of their Go kind, so an int decoded from YAML equals
// the float64 a transition computed.
func Equal(a, b any) bool {
	if na, ok := toNumber(a); ok {
		nb, ok := toNumber(b)
		return ok && na == nb
	}
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, item := range av {
			other, ok := bv[k]
			if !ok || !Equal(item, other) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i, item := range av {
			if !Equal(item, bv[i]) {
				return false
			}
		}
		return true
	default:
		switch b.(type) {
		case map[string]any, []any:
			return false
		}
		if _, ok := toNumber(b); ok {
			return false
		}
		return a == b
	}
}

// HasData reports whether any leaf of v carries contributed data.
// Empty mappings (and mappings of empty mappings) count as no data.
func HasData(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case noData:
		return false
	case map[string]any:
		for _, item := range val {
			if HasData(item) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// ToNumber coerces a raw scalar to float64, the canonical numeric shape.
// Non-numeric values (including nil) coerce to 0.
func ToNumber(v any) float64 {
	n, _ := toNumber(v)
	return n
}

// IsNumber reports whether a raw scalar is of a numeric kind.
func IsNumber(v any) bool {
	_, ok := toNumber(v)
	return ok
}
