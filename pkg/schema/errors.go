package schema

import "fmt"

// ReservedStateMember is the read accessor name present on every node.
// It can never be used as a transition name.
const ReservedStateMember = "state"

// SchemaError reports an invalid definition detected during compilation.
type SchemaError struct {
	Type   string // name of the offending definition
	Member string // name of the offending member
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %q: member %q: %s", e.Type, e.Member, e.Reason)
}
