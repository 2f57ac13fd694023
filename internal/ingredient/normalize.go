// Package ingredient normalizes free-text ingredient names so user input,
// OCR output and catalog entries can be compared as plain string sets.
package ingredient

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// synonyms maps common variants (Spanish pantry words, plural forms) onto
// the canonical names used by the recipe catalog.
var synonyms = map[string]string{
	"harina":       "flour",
	"huevo":        "egg",
	"huevos":       "egg",
	"eggs":         "egg",
	"leche":        "milk",
	"azucar":       "sugar",
	"aceite":       "oil",
	"sal":          "salt",
	"queso":        "cheese",
	"tomate":       "tomato",
	"tomates":      "tomato",
	"tomatoes":     "tomato",
	"cebolla":      "onion",
	"onions":       "onion",
	"ajo":          "garlic",
	"pimienta":     "pepper",
	"mantequilla":  "butter",
	"manteca":      "butter",
	"pollo":        "chicken",
	"carne":        "beef",
	"res":          "beef",
	"yogur":        "yogurt",
	"fresa":        "strawberry",
	"fresas":       "strawberry",
	"strawberries": "strawberry",
	"platano":      "banana",
	"platanos":     "banana",
	"bananas":      "banana",
	"lemons":       "lemon",
	"limon":        "lemon",
	"limones":      "lemon",
	"pan":          "bread",
	"lechuga":      "lettuce",
	"pepino":       "cucumber",
	"pepinos":      "cucumber",
	"cucumbers":    "cucumber",
}

// Normalize lowercases a raw ingredient name, folds accents, replaces
// punctuation with spaces and collapses runs of whitespace. Tokens with no
// letters or digits normalize to the empty string. Normalize is idempotent.
func Normalize(raw string) string {
	s := stripDiacritics(strings.ToLower(raw))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(' ')
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Canonical normalizes a name and maps known synonyms onto the catalog
// vocabulary. Unknown names pass through normalized but otherwise unchanged.
func Canonical(raw string) string {
	name := Normalize(raw)
	if canonical, ok := synonyms[name]; ok {
		return canonical
	}
	return name
}

// stripDiacritics decomposes the string and drops combining marks, so
// "limón" compares equal to "limon".
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}
