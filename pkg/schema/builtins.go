package schema

import (
	"fmt"
	"strings"

	"github.com/aretw0/sapling/pkg/domain"
)

// builtins returns the fixed transition table for a kind. The universal
// "set" replaces the whole subtree's raw value, bypassing per-field
// defaulting; the rest operate on the kind's canonical scalar shape,
// treating an absent current value as the kind's default.
func builtins(k Kind) map[string]Transition {
	switch k {
	case KindNumber:
		return numberBuiltins
	case KindString:
		return stringBuiltins
	case KindBoolean:
		return booleanBuiltins
	case KindArray:
		return arrayBuiltins
	case KindObject:
		return objectBuiltins
	default:
		return anyBuiltins
	}
}

var anyBuiltins = map[string]Transition{
	"set": builtinSet,
}

var numberBuiltins = map[string]Transition{
	"set":       builtinSet,
	"increment": func(rc *Rebind, current any, args ...any) any { return domain.ToNumber(current) + stepOf(args) },
	"decrement": func(rc *Rebind, current any, args ...any) any { return domain.ToNumber(current) - stepOf(args) },
	"sum": func(rc *Rebind, current any, args ...any) any {
		total := domain.ToNumber(current)
		for _, amount := range args {
			total += domain.ToNumber(amount)
		}
		return total
	},
}

var stringBuiltins = map[string]Transition{
	"set": builtinSet,
	"concat": func(rc *Rebind, current any, args ...any) any {
		var b strings.Builder
		b.WriteString(asString(current))
		for _, s := range args {
			b.WriteString(asString(s))
		}
		return b.String()
	},
}

var booleanBuiltins = map[string]Transition{
	"set": builtinSet,
	"toggle": func(rc *Rebind, current any, args ...any) any {
		v, _ := current.(bool)
		return !v
	},
}

var arrayBuiltins = map[string]Transition{
	"set": builtinSet,
	"push": func(rc *Rebind, current any, args ...any) any {
		seq, _ := current.([]any)
		out := make([]any, len(seq), len(seq)+len(args))
		copy(out, seq)
		for _, item := range args {
			out = append(out, domain.Clone(item))
		}
		return out
	},
}

var objectBuiltins = map[string]Transition{
	"set": builtinSet,
	// assign shallow-merges each partial into the current mapping; existing
	// keys are retained unless overwritten.
	"assign": func(rc *Rebind, current any, args ...any) any {
		m, _ := current.(map[string]any)
		out := make(map[string]any, len(m)+len(args))
		for k, v := range m {
			out[k] = v
		}
		for _, arg := range args {
			partial, ok := arg.(map[string]any)
			if !ok {
				continue
			}
			for k, v := range partial {
				out[k] = domain.Clone(v)
			}
		}
		return out
	},
}

func builtinSet(rc *Rebind, current any, args ...any) any {
	if len(args) == 0 {
		return current
	}
	return domain.Clone(args[0])
}

// stepOf resolves the optional step argument of increment/decrement
// (default 1).
func stepOf(args []any) float64 {
	if len(args) == 0 {
		return 1
	}
	return domain.ToNumber(args[0])
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", s)
	}
}
