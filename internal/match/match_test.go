package match

import (
	"reflect"
	"testing"

	"pantrychef/internal/catalog"
	"pantrychef/internal/ingredient"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return catalog.New([]catalog.Recipe{
		{Name: "Pasta", Ingredients: []string{"pasta", "tomato", "garlic"}},
		{Name: "Salad", Ingredients: []string{"lettuce", "tomato"}},
	})
}

func TestMatchScenario(t *testing.T) {
	cat := testCatalog(t)
	available := ingredient.NewSet("tomato", "garlic")

	results := Match(cat, available)
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	// Pasta: 2/3 (0.67) ranks above Salad: 1/2 (0.5).
	pasta := results[0]
	if pasta.Recipe.Name != "Pasta" {
		t.Fatalf("Expected Pasta first, got %s", pasta.Recipe.Name)
	}
	if pasta.Matched != 2 || pasta.Required != 3 {
		t.Errorf("Expected Pasta 2/3, got %d/%d", pasta.Matched, pasta.Required)
	}
	if !reflect.DeepEqual(pasta.Missing, []string{"pasta"}) {
		t.Errorf("Expected Pasta missing [pasta], got %v", pasta.Missing)
	}

	salad := results[1]
	if salad.Matched != 1 || salad.Required != 2 {
		t.Errorf("Expected Salad 1/2, got %d/%d", salad.Matched, salad.Required)
	}
	if !reflect.DeepEqual(salad.Missing, []string{"lettuce"}) {
		t.Errorf("Expected Salad missing [lettuce], got %v", salad.Missing)
	}
}

func TestMatchInvariant(t *testing.T) {
	cat := testCatalog(t)
	sets := []ingredient.Set{
		ingredient.NewSet(),
		ingredient.NewSet("tomato"),
		ingredient.NewSet("tomato", "garlic", "pasta", "lettuce"),
		ingredient.NewSet("unrelated", "things"),
	}

	for _, available := range sets {
		for _, res := range Match(cat, available) {
			if res.Matched+len(res.Missing) != res.Required {
				t.Errorf("%s: matched %d + missing %d != required %d",
					res.Recipe.Name, res.Matched, len(res.Missing), res.Required)
			}
		}
	}
}

func TestMatchEmptyAvailable(t *testing.T) {
	cat := testCatalog(t)

	for _, res := range Match(cat, ingredient.NewSet()) {
		if res.Matched != 0 {
			t.Errorf("%s: expected 0 matched, got %d", res.Recipe.Name, res.Matched)
		}
		if len(res.Missing) != res.Required {
			t.Errorf("%s: expected full missing set, got %v", res.Recipe.Name, res.Missing)
		}
		if res.Makeable() {
			t.Errorf("%s: nothing should be makeable with no ingredients", res.Recipe.Name)
		}
	}
}

func TestMatchSupersetIsMakeable(t *testing.T) {
	cat := testCatalog(t)
	available := ingredient.NewSet("lettuce", "tomato", "cucumber", "salt")

	results := Match(cat, available)
	if results[0].Recipe.Name != "Salad" {
		t.Fatalf("Expected Salad first, got %s", results[0].Recipe.Name)
	}
	if !results[0].Makeable() {
		t.Error("Expected Salad to be makeable")
	}
	if len(results[0].Missing) != 0 {
		t.Errorf("Expected empty missing set, got %v", results[0].Missing)
	}
}

func TestMatchTieBreaksByName(t *testing.T) {
	cat := catalog.New([]catalog.Recipe{
		{Name: "Zucchini Bake", Ingredients: []string{"zucchini", "cheese"}},
		{Name: "Apple Pie", Ingredients: []string{"apple", "flour"}},
	})

	results := Match(cat, ingredient.NewSet())
	if results[0].Recipe.Name != "Apple Pie" {
		t.Errorf("Expected alphabetical tie-break, got %s first", results[0].Recipe.Name)
	}
}

func TestPartition(t *testing.T) {
	cat := catalog.New([]catalog.Recipe{
		{Name: "Ready", Ingredients: []string{"a", "b"}},
		{Name: "Almost", Ingredients: []string{"a", "b", "c", "x"}},
		{Name: "Far", Ingredients: []string{"x", "y", "z"}},
	})
	available := ingredient.NewSet("a", "b", "c")

	ready, almost, rest := Partition(Match(cat, available), 0.5)

	if len(ready) != 1 || ready[0].Recipe.Name != "Ready" {
		t.Errorf("Expected [Ready], got %v", names(ready))
	}
	if len(almost) != 1 || almost[0].Recipe.Name != "Almost" {
		t.Errorf("Expected [Almost], got %v", names(almost))
	}
	if len(rest) != 1 || rest[0].Recipe.Name != "Far" {
		t.Errorf("Expected [Far], got %v", names(rest))
	}
}

func names(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Recipe.Name
	}
	return out
}
