package domain

import "errors"

// ErrInvalidAssignment is returned when a caller attempts to write to the
// reserved, read-only state accessor of a node.
var ErrInvalidAssignment = errors.New("'state' is a read-only accessor and cannot be assigned")
