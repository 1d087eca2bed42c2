package domain

import "testing"

func TestParsePath(t *testing.T) {
	if p := ParsePath(""); !p.IsRoot() {
		t.Errorf("ParsePath(\"\") = %v, want root", p)
	}
	p := ParsePath("a.b.c")
	if len(p) != 3 || p.String() != "a.b.c" {
		t.Errorf("ParsePath round-trip = %q", p.String())
	}
}

func TestChildDoesNotAlias(t *testing.T) {
	base := ParsePath("a.b")
	c1 := base.Child("x")
	c2 := base.Child("y")
	if c1.String() != "a.b.x" || c2.String() != "a.b.y" {
		t.Fatalf("Child aliased its parent: %q, %q", c1, c2)
	}
}

func TestHasPrefix(t *testing.T) {
	tests := []struct {
		p, prefix string
		want      bool
	}{
		{"a.b.c", "a.b", true},
		{"a.b", "a.b", true},
		{"a.b", "a.b.c", false},
		{"a.b", "x", false},
		{"a.b", "", true},
		{"", "a", false},
	}
	for _, tt := range tests {
		if got := ParsePath(tt.p).HasPrefix(ParsePath(tt.prefix)); got != tt.want {
			t.Errorf("HasPrefix(%q, %q) = %v, want %v", tt.p, tt.prefix, got, tt.want)
		}
	}
}
