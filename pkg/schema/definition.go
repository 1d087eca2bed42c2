package schema

// Transition is a named pure operation on a node. It receives the explicit
// rebinding context for the node it was invoked on, the current raw value
// at that node, and the caller's arguments. It returns either a bare new
// raw value for the node or a *Handle accumulated through the context.
type Transition func(rc *Rebind, current any, args ...any) any

// Computed derives a read-time value from a node's materialized state.
// The result is never stored and never appears in the raw value view.
type Computed func(self *Instance) any

// Self marks a field whose type is the enclosing definition, enabling
// recursive schemas in a single literal:
//
//	container := &schema.Definition{
//	    Name: "Container",
//	    Fields: map[string]any{
//	        "contains": schema.Self,
//	        "x":        schema.Number(),
//	    },
//	}
var Self = selfRef{}

type selfRef struct{}

// Definition is the declarative schema surface consumed by Compile.
//
// Each Fields entry declares its kind by the value's shape: a *Descriptor
// is a primitive marker, a *Definition is a nested composite (definitions
// may reference themselves or each other freely), Self refers to the
// enclosing definition, and any other literal is a Constant.
//
// Parent declares single inheritance: the compiled type carries the
// parent's fields, transitions and computed properties, with same-named
// entries of the child overriding them.
type Definition struct {
	Name        string
	Parent      *Definition
	Fields      map[string]any
	Transitions map[string]Transition
	Computed    map[string]Computed
}
