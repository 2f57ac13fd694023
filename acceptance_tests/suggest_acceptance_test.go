package acceptance_tests

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"pantrychef/internal/app"
	"pantrychef/internal/catalog"
	"pantrychef/internal/ocr"
)

// --- Mock OCR engine ---
type mockEngine struct {
	extractCalls int
	text         string
}

func (m *mockEngine) ExtractText(ctx context.Context, imagePath string) (string, error) {
	m.extractCalls++
	return m.text, nil
}

// --- Acceptance Test ---
func TestFullWorkflow(t *testing.T) {
	ctx := context.Background()

	// 1. Set up a catalog file in a temporary directory
	tempDir, err := os.MkdirTemp("", "acceptance_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	catalogPath := filepath.Join(tempDir, "recipes.json")
	err = catalog.Save(catalogPath, []catalog.Recipe{
		{Name: "Pasta with Tomato Sauce", Ingredients: []string{"pasta", "tomato", "garlic"}, Instructions: "1. Boil the pasta. 2. Simmer the sauce. 3. Serve."},
		{Name: "Omelette", Ingredients: []string{"eggs", "butter"}, Instructions: "1. Beat the eggs. 2. Fry in butter."},
		{Name: "Fresh Salad", Ingredients: []string{"lettuce", "tomato", "olive oil"}, Instructions: "1. Toss everything together."},
	})
	if err != nil {
		t.Fatalf("Failed to save catalog: %v", err)
	}

	cat, err := catalog.Load(catalogPath)
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	// 2. Wire the app with a stub OCR engine that reads a Spanish receipt
	engine := &mockEngine{text: "2x TOMATE\nhuevos frescos"}
	application := app.New(cat, ocr.NewService(engine, 0, 0), 0.5)

	// --- Step 1: Suggest from text plus image ---
	t.Log("--- Step 1: Suggesting Recipes ---")
	resp, err := application.Suggest(ctx, app.SuggestRequest{
		Text:      "Garlic, PASTA!",
		Image:     []byte{0xFF, 0xD8},
		ImageName: "pantry.jpg",
	})
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	if engine.extractCalls != 1 {
		t.Errorf("Expected 1 OCR extraction, got %d", engine.extractCalls)
	}
	if len(resp.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", resp.Warnings)
	}

	wantAvailable := []string{"egg", "garlic", "pasta", "tomato"}
	if !reflect.DeepEqual(resp.Available, wantAvailable) {
		t.Errorf("Expected available %v, got %v", wantAvailable, resp.Available)
	}

	if len(resp.Ready) != 1 || resp.Ready[0].Recipe.Name != "Pasta with Tomato Sauce" {
		t.Fatalf("Expected Pasta with Tomato Sauce to be ready, got %+v", resp.Ready)
	}
	if len(resp.Almost) != 1 || resp.Almost[0].Recipe.Name != "Omelette" {
		t.Fatalf("Expected Omelette to be almost ready, got %+v", resp.Almost)
	}

	for _, r := range resp.Results {
		if r.Matched+len(r.Missing) != r.Required {
			t.Errorf("Invariant broken for %s: matched %d, missing %d, required %d",
				r.Recipe.Name, r.Matched, len(r.Missing), r.Required)
		}
	}

	// --- Step 2: Shopping list for a named selection ---
	t.Log("--- Step 2: Building the Shopping List ---")
	list, err := application.ShoppingList(resp, []string{"omelette", "FRESH Salad"})
	if err != nil {
		t.Fatalf("ShoppingList failed: %v", err)
	}
	wantList := []string{"butter", "lettuce", "olive oil"}
	if !reflect.DeepEqual(list, wantList) {
		t.Errorf("Expected shopping list %v, got %v", wantList, list)
	}

	if _, err := application.ShoppingList(resp, []string{"Ratatouille"}); err == nil {
		t.Error("Expected an error for an unknown recipe name")
	}

	// --- Step 3: Weekly plan of the makeable recipes ---
	t.Log("--- Step 3: Planning the Week ---")
	week, err := application.PlanWeek(resp, nil)
	if err != nil {
		t.Fatalf("PlanWeek failed: %v", err)
	}
	if week.Assigned() != 1 {
		t.Errorf("Expected exactly one assigned day, got %d", week.Assigned())
	}
	if week.Plan[0].Day != "Monday" || week.Plan[0].Recipe == nil || week.Plan[0].Recipe.Name != "Pasta with Tomato Sauce" {
		t.Errorf("Expected Pasta with Tomato Sauce on Monday, got %+v", week.Plan[0])
	}

	named, err := application.PlanWeek(resp, []string{"Pasta with Tomato Sauce", "Omelette"})
	if err != nil {
		t.Fatalf("PlanWeek with names failed: %v", err)
	}
	if named.Assigned() != 2 {
		t.Errorf("Expected two assigned days, got %d", named.Assigned())
	}
	if named.Plan[1].Recipe == nil || named.Plan[1].Recipe.Name != "Omelette" {
		t.Errorf("Expected Omelette on Tuesday, got %+v", named.Plan[1])
	}
}
