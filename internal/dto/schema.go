// Package dto defines the transport shapes used when loading schema
// documents from YAML files.
package dto

// SchemaDoc is the wire representation of a schema definition.
// It uses "mapstructure" tags so a decoded YAML mapping can be bound
// directly, matching standard document keys (name, fields, parent).
type SchemaDoc struct {
	Name   string         `json:"name" mapstructure:"name"`
	Fields map[string]any `json:"fields" mapstructure:"fields"`

	// Parent is a nested schema document contributing inherited fields.
	Parent map[string]any `json:"parent,omitempty" mapstructure:"parent"`
}

// Field value shapes understood by the loader:
//
//   - a string marker: "number", "string", "boolean", "array", "object",
//     or "self" for a recursive reference to the enclosing document;
//   - a mapping with a "fields" key: a nested composite definition;
//   - a mapping with a "const" key, or any bare literal: a constant.
const (
	MarkerNumber  = "number"
	MarkerString  = "string"
	MarkerBoolean = "boolean"
	MarkerArray   = "array"
	MarkerObject  = "object"
	MarkerSelf    = "self"

	KeyConst  = "const"
	KeyFields = "fields"
)
