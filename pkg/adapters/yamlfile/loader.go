// Package yamlfile loads schema definitions and raw values from YAML
// documents. Schemas loaded this way expose the built-in transitions only:
// transitions and computed properties are code, not data.
package yamlfile

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/sapling/internal/dto"
	"github.com/aretw0/sapling/pkg/schema"
)

// LoadDefinition reads a schema document from path and converts it into a
// Definition ready for schema.Compile.
func LoadDefinition(path string) (*schema.Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	return ParseDefinition(raw)
}

// ParseDefinition converts YAML bytes into a Definition.
func ParseDefinition(raw []byte) (*schema.Definition, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema document: %w", err)
	}
	return definitionFromDoc(doc)
}

// LoadValue reads a raw value document from path.
func LoadValue(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read value file: %w", err)
	}
	var value any
	if err := yaml.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("failed to parse value document: %w", err)
	}
	return value, nil
}

func definitionFromDoc(doc map[string]any) (*schema.Definition, error) {
	var sd dto.SchemaDoc
	if err := mapstructure.Decode(doc, &sd); err != nil {
		return nil, fmt.Errorf("invalid schema document: %w", err)
	}

	def := &schema.Definition{
		Name:   sd.Name,
		Fields: make(map[string]any, len(sd.Fields)),
	}
	if sd.Parent != nil {
		parent, err := definitionFromDoc(sd.Parent)
		if err != nil {
			return nil, fmt.Errorf("parent of %q: %w", sd.Name, err)
		}
		def.Parent = parent
	}
	for name, decl := range sd.Fields {
		field, err := fieldFromDecl(decl)
		if err != nil {
			return nil, fmt.Errorf("field %q of %q: %w", name, sd.Name, err)
		}
		def.Fields[name] = field
	}
	return def, nil
}

func fieldFromDecl(decl any) (any, error) {
	switch v := decl.(type) {
	case string:
		switch v {
		case dto.MarkerNumber:
			return schema.Number(), nil
		case dto.MarkerString:
			return schema.String(), nil
		case dto.MarkerBoolean:
			return schema.Boolean(), nil
		case dto.MarkerArray:
			return schema.Array(), nil
		case dto.MarkerObject:
			return schema.Object(), nil
		case dto.MarkerSelf:
			return schema.Self, nil
		default:
			// Any other string literal is a constant.
			return v, nil
		}
	case map[string]any:
		if c, ok := v[dto.KeyConst]; ok {
			return c, nil
		}
		if _, ok := v[dto.KeyFields]; ok {
			return definitionFromDoc(v)
		}
		return nil, fmt.Errorf("mapping must declare %q or %q", dto.KeyFields, dto.KeyConst)
	default:
		// Bare literals (numbers, booleans, sequences) are constants.
		return v, nil
	}
}
