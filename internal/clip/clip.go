// Package clip imports recipes from web pages into the catalog file.
package clip

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"pantrychef/internal/catalog"
	"pantrychef/internal/ingredient"
)

// Clipper handles fetching recipe pages and extracting catalog entries
// from their markup.
type Clipper struct {
	client *resty.Client
}

// New creates a Clipper with a 15s fetch timeout.
func New() *Clipper {
	return &Clipper{
		client: resty.New().
			SetTimeout(15 * time.Second).
			SetHeader("User-Agent", "pantrychef/1.0"),
	}
}

// ingredientSelectors cover schema.org microdata and the class names most
// recipe sites use, most specific first.
var ingredientSelectors = []string{
	"[itemprop=recipeIngredient]",
	"[itemprop=ingredients]",
	".recipe-ingredients li",
	".ingredients li",
	".ingredient",
}

// Clip fetches the page at url and extracts its title and ingredient
// list. Pages without a recognizable recipe are an error.
func (c *Clipper) Clip(ctx context.Context, url string) (catalog.Recipe, error) {
	doc, err := c.fetchDocument(ctx, url)
	if err != nil {
		return catalog.Recipe{}, fmt.Errorf("failed to fetch content: %w", err)
	}

	// Remove noise before walking the tree.
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	title := extractTitle(doc)
	if title == "" {
		return catalog.Recipe{}, fmt.Errorf("no recipe title found at %s", url)
	}

	ingredients := extractIngredients(doc)
	if len(ingredients) == 0 {
		return catalog.Recipe{}, fmt.Errorf("no ingredients found at %s", url)
	}

	return catalog.Recipe{Name: title, Ingredients: ingredients}, nil
}

func (c *Clipper) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := c.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode())
	}
	return goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
}

func extractTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if title := strings.TrimSpace(og); title != "" {
			return title
		}
	}
	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func extractIngredients(doc *goquery.Document) []string {
	for _, sel := range ingredientSelectors {
		if items := collectItems(doc.Find(sel)); len(items) > 0 {
			return items
		}
	}

	// Fallback: the first list following an "Ingredients" heading.
	var items []string
	doc.Find("h1, h2, h3, h4").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(s.Text()), "ingredient") {
			return true
		}
		items = collectItems(s.NextAllFiltered("ul, ol").First().Find("li"))
		return len(items) == 0
	})
	return items
}

func collectItems(sel *goquery.Selection) []string {
	seen := make(map[string]struct{})
	var items []string
	sel.Each(func(i int, s *goquery.Selection) {
		canonical := ingredient.Canonical(trimQuantity(s.Text()))
		if canonical == "" {
			return
		}
		if _, ok := seen[canonical]; ok {
			return
		}
		seen[canonical] = struct{}{}
		items = append(items, canonical)
	})
	return items
}

var leadingQuantity = regexp.MustCompile(`^[\d\s./¼½¾-]+`)

var measureWords = map[string]struct{}{
	"cup": {}, "cups": {},
	"tablespoon": {}, "tablespoons": {}, "tbsp": {},
	"teaspoon": {}, "teaspoons": {}, "tsp": {},
	"g": {}, "kg": {}, "gram": {}, "grams": {},
	"ml": {}, "l": {}, "liter": {}, "liters": {},
	"oz": {}, "ounce": {}, "ounces": {},
	"lb": {}, "lbs": {}, "pound": {}, "pounds": {},
	"pinch": {}, "clove": {}, "cloves": {},
	"slice": {}, "slices": {}, "piece": {}, "pieces": {},
	"of": {},
}

// trimQuantity drops a leading amount ("2 1/2 cups of") from an
// ingredient phrase, keeping just the name.
func trimQuantity(s string) string {
	s = leadingQuantity.ReplaceAllString(strings.TrimSpace(s), "")
	words := strings.Fields(s)
	for len(words) > 0 {
		if _, ok := measureWords[strings.ToLower(words[0])]; !ok {
			break
		}
		words = words[1:]
	}
	return strings.Join(words, " ")
}
