// Package catalog loads and holds the static recipe collection. The catalog
// is read once at startup and never mutated afterwards, so it is safe to
// share across concurrent requests.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"pantrychef/internal/ingredient"
	"pantrychef/internal/logger"
)

//go:embed default_catalog.json
var defaultCatalog []byte

// Recipe is a single catalog entry. Ingredients are stored in canonical
// form, deduplicated, in their original order.
type Recipe struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions,omitempty"`
}

// Catalog is an immutable collection of recipes with name lookup.
type Catalog struct {
	recipes []Recipe
	byName  map[string]int
}

// Load reads a catalog from the JSON file at path, or the embedded default
// catalog when path is empty. A missing or undecodable file is an error;
// individual malformed entries are skipped with a warning.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	origin := "embedded catalog"

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
		}
		data = b
		origin = path
	}

	var entries []Recipe
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", origin, err)
	}

	cat := New(entries)
	if cat.Len() == 0 {
		return nil, fmt.Errorf("no usable recipes in %s", origin)
	}
	return cat, nil
}

// New builds a catalog from raw entries, canonicalizing ingredients and
// skipping entries that cannot be used.
func New(entries []Recipe) *Catalog {
	cat := &Catalog{byName: make(map[string]int, len(entries))}

	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			logger.Warn("Skipping catalog entry without a name")
			continue
		}

		key := ingredient.Canonical(name)
		if _, exists := cat.byName[key]; exists {
			logger.Warn("Skipping duplicate catalog entry", zap.String("name", name))
			continue
		}

		ingredients := canonicalizeAll(entry.Ingredients)
		if len(ingredients) == 0 {
			logger.Warn("Skipping catalog entry without ingredients", zap.String("name", name))
			continue
		}

		cat.byName[key] = len(cat.recipes)
		cat.recipes = append(cat.recipes, Recipe{
			Name:         name,
			Ingredients:  ingredients,
			Instructions: strings.TrimSpace(entry.Instructions),
		})
	}

	return cat
}

func canonicalizeAll(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		canonical := ingredient.Canonical(item)
		if canonical == "" {
			continue
		}
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
	}
	return out
}

// Recipes returns the recipes in load order. The slice is shared; treat it
// as read-only.
func (c *Catalog) Recipes() []Recipe {
	return c.recipes
}

// Get looks a recipe up by name. The lookup canonicalizes, so "Omelette",
// "omelette" and "OMELETTE " all find the same entry.
func (c *Catalog) Get(name string) (Recipe, bool) {
	idx, ok := c.byName[ingredient.Canonical(name)]
	if !ok {
		return Recipe{}, false
	}
	return c.recipes[idx], true
}

func (c *Catalog) Len() int {
	return len(c.recipes)
}

// Vocabulary returns the sorted union of every ingredient required by any
// recipe. The OCR flow uses it to pick known ingredients out of raw text.
func (c *Catalog) Vocabulary() []string {
	seen := make(map[string]struct{})
	for _, rec := range c.recipes {
		for _, ing := range rec.Ingredients {
			seen[ing] = struct{}{}
		}
	}

	vocab := make([]string, 0, len(seen))
	for ing := range seen {
		vocab = append(vocab, ing)
	}
	sort.Strings(vocab)
	return vocab
}

// Save writes recipes to the JSON file at path, creating the directory if
// needed. Used by the clip importer to extend a side catalog.
func Save(path string, recipes []Recipe) error {
	data, err := json.MarshalIndent(recipes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create catalog directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file %s: %w", path, err)
	}
	return nil
}
