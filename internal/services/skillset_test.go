package services

import (
	"reflect"
	"testing"
)

func TestSkillSetNormalization(t *testing.T) {
	s := NewSkillSet("  Python ", "PYTHON", "python", "Django", "", "   ")

	if s.Len() != 2 {
		t.Fatalf("expected 2 skills, got %d: %v", s.Len(), s.Sorted())
	}

	if !s.Has("python") || !s.Has(" PyThOn ") {
		t.Fatalf("case-insensitive lookup failed: %v", s.Sorted())
	}

	want := []string{"django", "python"}
	if got := s.Sorted(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Sorted() = %v, want %v", got, want)
	}
}

func TestSkillSetSortedNeverNil(t *testing.T) {
	if got := NewSkillSet().Sorted(); got == nil {
		t.Fatal("Sorted() returned nil for empty set")
	}
}

func TestSkillSetIntersectUnion(t *testing.T) {
	a := NewSkillSet("python", "django", "aws")
	b := NewSkillSet("python", "flask")

	inter := a.Intersect(b)
	if want := []string{"python"}; !reflect.DeepEqual(inter.Sorted(), want) {
		t.Fatalf("Intersect() = %v, want %v", inter.Sorted(), want)
	}

	union := a.Union(b)
	if union.Len() != 4 {
		t.Fatalf("Union() has %d terms, want 4: %v", union.Len(), union.Sorted())
	}

	// Inputs must not be mutated.
	if a.Len() != 3 || b.Len() != 2 {
		t.Fatalf("inputs mutated: a=%v b=%v", a.Sorted(), b.Sorted())
	}
}
