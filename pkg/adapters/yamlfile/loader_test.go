package yamlfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sapling"
	"github.com/aretw0/sapling/pkg/domain"
	"github.com/aretw0/sapling/pkg/schema"
)

const robotSchema = `
name: Robot
fields:
  speed: number
  label: string
  active: boolean
  tags: array
  config: object
  next: self
  model:
    const: mk1
  engine:
    name: Engine
    fields:
      rpm: number
`

func TestParseDefinition(t *testing.T) {
	def, err := ParseDefinition([]byte(robotSchema))
	require.NoError(t, err)
	assert.Equal(t, "Robot", def.Name)

	desc, err := schema.Compile(def)
	require.NoError(t, err)

	kinds := map[string]schema.Kind{
		"speed":  schema.KindNumber,
		"label":  schema.KindString,
		"active": schema.KindBoolean,
		"tags":   schema.KindArray,
		"config": schema.KindObject,
	}
	for name, kind := range kinds {
		f, ok := desc.Field(name)
		require.True(t, ok, "missing field %q", name)
		assert.Equal(t, kind, f.Desc.Kind(), "field %q", name)
	}

	next, ok := desc.Field("next")
	require.True(t, ok)
	assert.Same(t, desc, next.Desc, "self marker must resolve to the enclosing type")

	model, ok := desc.Field("model")
	require.True(t, ok)
	assert.True(t, model.IsConst)
	assert.Equal(t, "mk1", model.Constant)

	engine, ok := desc.Field("engine")
	require.True(t, ok)
	assert.Equal(t, "Engine", engine.Desc.Name())
	assert.Equal(t, schema.KindComposite, engine.Desc.Kind())
}

func TestParseDefinitionWithParent(t *testing.T) {
	doc := `
name: Child
parent:
  name: Base
  fields:
    x: number
fields:
  y: number
`
	def, err := ParseDefinition([]byte(doc))
	require.NoError(t, err)
	desc, err := schema.Compile(def)
	require.NoError(t, err)

	require.NotNil(t, desc.Parent())
	assert.Equal(t, "Base", desc.Parent().Name())
	_, hasX := desc.Field("x")
	_, hasY := desc.Field("y")
	assert.True(t, hasX && hasY)
}

func TestParseDefinitionRejectsBadMapping(t *testing.T) {
	_, err := ParseDefinition([]byte("name: T\nfields:\n  bad: {weird: 1}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "bad"`)
}

func TestLoadAndEvaluate(t *testing.T) {
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.yaml")
	valuePath := filepath.Join(dir, "value.yaml")
	require.NoError(t, os.WriteFile(schemaPath, []byte(robotSchema), 0o644))
	require.NoError(t, os.WriteFile(valuePath, []byte("speed: 5\nconfig:\n  color: red\n"), 0o644))

	def, err := LoadDefinition(schemaPath)
	require.NoError(t, err)
	value, err := LoadValue(valuePath)
	require.NoError(t, err)

	root, err := sapling.ComposeDefinition(def, value)
	require.NoError(t, err)

	speed, err := root.Get("speed")
	require.NoError(t, err)
	next, err := speed.Call("sum", 10)
	require.NoError(t, err)

	config, err := next.Get("config")
	require.NoError(t, err)
	next, err = config.Call("assign", map[string]any{"x": 1})
	require.NoError(t, err)

	want := map[string]any{
		"speed":  15,
		"config": map[string]any{"color": "red", "x": 1},
	}
	assert.True(t, domain.Equal(next.ValueOf(), want), "valueOf = %v", next.ValueOf())
}
