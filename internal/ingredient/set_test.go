package ingredient

import (
	"reflect"
	"testing"
)

func TestSet(t *testing.T) {
	t.Run("canonicalizes on insert", func(t *testing.T) {
		s := NewSet("Huevos", "Tomate", "tomato")
		if s.Len() != 2 {
			t.Fatalf("Expected 2 entries, got %d: %v", s.Len(), s.Sorted())
		}
		if !s.Has("egg") {
			t.Error("Expected set to contain 'egg'")
		}
		if !s.Has("Tomatoes") {
			t.Error("Expected lookup to canonicalize 'Tomatoes'")
		}
	})

	t.Run("drops empty names", func(t *testing.T) {
		s := NewSet("", "  ", "!!!")
		if s.Len() != 0 {
			t.Errorf("Expected empty set, got %v", s.Sorted())
		}
	})

	t.Run("sorted output", func(t *testing.T) {
		s := NewSet("tomato", "bread", "garlic")
		want := []string{"bread", "garlic", "tomato"}
		if got := s.Sorted(); !reflect.DeepEqual(got, want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})
}

func TestExtractKnown(t *testing.T) {
	vocabulary := []string{"tomato", "olive oil", "egg", "cheese"}

	t.Run("single words", func(t *testing.T) {
		found := ExtractKnown("2x TOMATE\nqueso fresco", vocabulary)
		want := []string{"cheese", "tomato"}
		if got := found.Sorted(); !reflect.DeepEqual(got, want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})

	t.Run("multi-word entries need adjacent words", func(t *testing.T) {
		found := ExtractKnown("extra virgin olive oil 500ml", vocabulary)
		if !found.Has("olive oil") {
			t.Error("Expected 'olive oil' to be found")
		}

		found = ExtractKnown("olive tapenade with sunflower oil", vocabulary)
		if found.Has("olive oil") {
			t.Error("Did not expect 'olive oil' from non-adjacent words")
		}
	})

	t.Run("garbage text finds nothing", func(t *testing.T) {
		found := ExtractKnown("@@## 123 zzzz", vocabulary)
		if found.Len() != 0 {
			t.Errorf("Expected nothing, got %v", found.Sorted())
		}
	})

	t.Run("empty text finds nothing", func(t *testing.T) {
		if found := ExtractKnown("", vocabulary); found.Len() != 0 {
			t.Errorf("Expected nothing, got %v", found.Sorted())
		}
	})
}
