package schema

import (
	"testing"

	"github.com/aretw0/sapling/pkg/domain"
)

func robotDef() *Definition {
	return &Definition{
		Name: "Robot",
		Fields: map[string]any{
			"w":     Number(),
			"h":     Number(),
			"name":  String(),
			"tags":  Array(),
			"model": "mk1", // constant
		},
		Computed: map[string]Computed{
			"area": func(self *Instance) any {
				return self.Number("w") * self.Number("h")
			},
		},
	}
}

func TestMaterializePerFieldDefaulting(t *testing.T) {
	d, err := Compile(robotDef())
	if err != nil {
		t.Fatal(err)
	}

	// Partial raw value: only w contributed, the rest defaults.
	in := Materialize(d, map[string]any{"w": 3})

	if v, _ := in.Get("w"); !domain.Equal(v, 3) {
		t.Errorf("w = %v, want 3", v)
	}
	if v, _ := in.Get("h"); !domain.Equal(v, 0) {
		t.Errorf("h = %v, want default 0", v)
	}
	if v, _ := in.Get("name"); v != "" {
		t.Errorf("name = %v, want default \"\"", v)
	}
	if v, _ := in.Get("tags"); !domain.Equal(v, []any{}) {
		t.Errorf("tags = %v, want empty sequence", v)
	}
}

func TestMaterializeAbsentValueDefaultsWholeSubtree(t *testing.T) {
	d, err := Compile(robotDef())
	if err != nil {
		t.Fatal(err)
	}
	in := Materialize(d, nil)
	if v, _ := in.Get("w"); !domain.Equal(v, 0) {
		t.Errorf("w = %v, want 0", v)
	}
	if v, _ := in.Get("model"); v != "mk1" {
		t.Errorf("constant = %v, want mk1", v)
	}
}

func TestComputedEvaluatedOnRead(t *testing.T) {
	d, err := Compile(robotDef())
	if err != nil {
		t.Fatal(err)
	}
	in := Materialize(d, map[string]any{"w": 3, "h": 4})
	v, ok := in.Get("area")
	if !ok || !domain.Equal(v, 12) {
		t.Errorf("area = %v, want 12", v)
	}
}

func TestInstanceIsWalksInheritance(t *testing.T) {
	base := &Definition{Name: "Base", Fields: map[string]any{"x": Number()}}
	child := &Definition{Name: "Child", Parent: base}

	db, err := Compile(base)
	if err != nil {
		t.Fatal(err)
	}
	dc, err := Compile(child)
	if err != nil {
		t.Fatal(err)
	}
	// Separate Compile calls build separate graphs; inherit within one graph.
	_ = db

	in := Materialize(dc, nil)
	if !in.Is(dc) {
		t.Error("instance is not tagged with its own type")
	}
	if !in.Is(dc.Parent()) {
		t.Error("instance is not an instance of its parent type")
	}
}

func TestNestedCompositeMaterializesAsInstance(t *testing.T) {
	inner := &Definition{Name: "Inner", Fields: map[string]any{"n": Number()}}
	outer := &Definition{Name: "Outer", Fields: map[string]any{"inner": inner}}

	d, err := Compile(outer)
	if err != nil {
		t.Fatal(err)
	}
	in := Materialize(d, map[string]any{"inner": map[string]any{"n": 7}})

	v, _ := in.Get("inner")
	nested, ok := v.(*Instance)
	if !ok {
		t.Fatalf("inner = %T, want *Instance", v)
	}
	if got, _ := nested.Get("n"); !domain.Equal(got, 7) {
		t.Errorf("inner.n = %v, want 7", got)
	}
}

func TestGetIsIdempotent(t *testing.T) {
	inner := &Definition{Name: "Inner", Fields: map[string]any{"n": Number()}}
	outer := &Definition{Name: "Outer", Fields: map[string]any{"inner": inner}}
	d, err := Compile(outer)
	if err != nil {
		t.Fatal(err)
	}
	in := Materialize(d, nil)

	a, _ := in.Get("inner")
	b, _ := in.Get("inner")
	if a != b {
		t.Error("repeated Get returned distinct realizations")
	}
}

func TestExportBoundsRecursiveSchemas(t *testing.T) {
	container := &Definition{
		Name:   "Container",
		Fields: map[string]any{"contains": Self, "x": Number()},
	}
	d, err := Compile(container)
	if err != nil {
		t.Fatal(err)
	}

	in := Materialize(d, map[string]any{"contains": map[string]any{"x": 5}})
	out := in.Export().(map[string]any)

	if !domain.Equal(out["x"], 0) {
		t.Errorf("x = %v, want 0", out["x"])
	}
	level1, ok := out["contains"].(map[string]any)
	if !ok {
		t.Fatal("contributed recursive branch missing from export")
	}
	if !domain.Equal(level1["x"], 5) {
		t.Errorf("contains.x = %v, want 5", level1["x"])
	}
	// The unbacked recursive tail is omitted rather than unrolled forever.
	if _, present := level1["contains"]; present {
		t.Error("export unrolled an unbacked recursive branch")
	}
}

func TestMismatchedShapesDefaultPerField(t *testing.T) {
	d, err := Compile(robotDef())
	if err != nil {
		t.Fatal(err)
	}

	// Every field contributed with the wrong shape: defaulting is silent
	// and per field, never an error.
	in := Materialize(d, map[string]any{
		"w":    "fast",
		"name": 12,
		"tags": map[string]any{"oops": true},
	})

	if v, _ := in.Get("w"); !domain.Equal(v, 0) {
		t.Errorf("w = %v, want default 0", v)
	}
	if v, _ := in.Get("name"); v != "" {
		t.Errorf("name = %v, want default \"\"", v)
	}
	if v, _ := in.Get("tags"); !domain.Equal(v, []any{}) {
		t.Errorf("tags = %v, want empty sequence", v)
	}
}

func TestMismatchedPrimitiveRootDefaults(t *testing.T) {
	in := Materialize(Number(), "not a number")
	if v := in.Value(); !domain.Equal(v, 0) {
		t.Errorf("value = %v, want default 0", v)
	}
}

func TestRawViewExcludesConstants(t *testing.T) {
	d, err := Compile(robotDef())
	if err != nil {
		t.Fatal(err)
	}
	raw := map[string]any{"w": 3, "model": "smuggled"}
	view := RawView(d, raw).(map[string]any)

	if _, present := view["model"]; present {
		t.Error("raw view leaked a constant-named field")
	}
	if !domain.Equal(view["w"], 3) {
		t.Errorf("w = %v, want 3", view["w"])
	}
}

func TestRawViewExcludesComputedNames(t *testing.T) {
	d, err := Compile(robotDef())
	if err != nil {
		t.Fatal(err)
	}
	raw := map[string]any{"w": 3, "area": 99}
	view := RawView(d, raw).(map[string]any)

	if _, present := view["area"]; present {
		t.Error("raw view leaked a computed-named field")
	}
	if !domain.Equal(view["w"], 3) {
		t.Errorf("w = %v, want 3", view["w"])
	}
}
