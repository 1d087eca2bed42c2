package schema

import (
	"testing"

	"github.com/aretw0/sapling/pkg/domain"
)

func pointDef() *Definition {
	return &Definition{
		Name:   "Point",
		Fields: map[string]any{"x": Number(), "y": Number()},
	}
}

func TestHereIsANoop(t *testing.T) {
	d, err := Compile(pointDef())
	if err != nil {
		t.Fatal(err)
	}
	current := map[string]any{"x": 1}
	rc := NewRebind(d, current)

	raw, shift, err := Normalize(rc.Here())
	if err != nil {
		t.Fatal(err)
	}
	if shift != nil {
		t.Error("Here() reported a type shift")
	}
	if !domain.Equal(raw, current) {
		t.Errorf("noop pending = %v, want %v", raw, current)
	}
}

func TestApplyComposesEdits(t *testing.T) {
	d, err := Compile(pointDef())
	if err != nil {
		t.Fatal(err)
	}
	rc := NewRebind(d, map[string]any{"x": 1})

	h := rc.Here().
		Apply("x", "increment").
		Apply("y", "set", 5)
	if h.Err() != nil {
		t.Fatal(h.Err())
	}
	if !domain.Equal(h.Pending(), map[string]any{"x": 2, "y": 5}) {
		t.Errorf("pending = %v", h.Pending())
	}
}

func TestApplyUnknownFieldSurfacesError(t *testing.T) {
	d, err := Compile(pointDef())
	if err != nil {
		t.Fatal(err)
	}
	h := NewRebind(d, nil).Here().Apply("z", "set", 1)
	if h.Err() == nil {
		t.Fatal("Apply on unknown field did not record an error")
	}
	if _, _, err := Normalize(h); err == nil {
		t.Fatal("Normalize swallowed the handle error")
	}
}

func TestAsCarriesOverlappingFields(t *testing.T) {
	point, err := Compile(pointDef())
	if err != nil {
		t.Fatal(err)
	}
	labeled, err := Compile(&Definition{
		Name: "LabeledPoint",
		Fields: map[string]any{
			"x":     Number(),
			"label": String(),
			"kind":  "labeled", // constant: never carried into raw
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	rc := NewRebind(point, map[string]any{"x": 3, "y": 4})
	h := rc.As(labeled)

	shift, ok := h.Shift()
	if !ok || shift != labeled {
		t.Fatal("As() did not record the type shift")
	}
	// x overlaps and carries over; y does not exist on the new type.
	if !domain.Equal(h.Pending(), map[string]any{"x": 3}) {
		t.Errorf("pending after shift = %v, want {x: 3}", h.Pending())
	}
}

func TestAsSameTypeIsNotAShift(t *testing.T) {
	d, err := Compile(pointDef())
	if err != nil {
		t.Fatal(err)
	}
	rc := NewRebind(d, nil)
	if _, shifted := rc.As(d).Shift(); shifted {
		t.Error("rebinding to the current type reported a shift")
	}
	if _, shifted := rc.As(nil).Shift(); shifted {
		t.Error("rebinding to nil reported a shift")
	}
}
