package ingredient

import (
	"sort"
	"strings"
)

// Set is a deduplicated collection of canonical ingredient names.
type Set map[string]struct{}

// NewSet canonicalizes the given names and collects the non-empty ones.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add canonicalizes a name and inserts it. Names that normalize to the
// empty string are dropped.
func (s Set) Add(name string) {
	canonical := Canonical(name)
	if canonical == "" {
		return
	}
	s[canonical] = struct{}{}
}

// Has reports whether the canonical form of name is in the set.
func (s Set) Has(name string) bool {
	_, ok := s[Canonical(name)]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Sorted returns the names in alphabetical order for stable display.
func (s Set) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SplitList parses a typed ingredient list separated by commas or
// newlines. Each item is canonicalized; empties are dropped and
// duplicates keep their first occurrence.
func SplitList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})

	seen := make(map[string]struct{}, len(fields))
	items := make([]string, 0, len(fields))
	for _, field := range fields {
		canonical := Canonical(field)
		if canonical == "" {
			continue
		}
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		items = append(items, canonical)
	}
	return items
}

// Tokens splits free text (typically OCR output) into canonicalized
// single words, in reading order.
func Tokens(text string) []string {
	words := strings.Fields(Normalize(text))
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if canonical, ok := synonyms[word]; ok {
			word = canonical
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// ExtractKnown scans free text for vocabulary entries and returns the ones
// found. Multi-word entries such as "olive oil" match when their words
// appear as a contiguous sequence in the text.
func ExtractKnown(text string, vocabulary []string) Set {
	tokens := Tokens(text)
	found := make(Set)
	for _, entry := range vocabulary {
		want := strings.Fields(Canonical(entry))
		if len(want) == 0 {
			continue
		}
		if containsSequence(tokens, want) {
			found[strings.Join(want, " ")] = struct{}{}
		}
	}
	return found
}

func containsSequence(tokens, want []string) bool {
	if len(want) > len(tokens) {
		return false
	}
	for i := 0; i+len(want) <= len(tokens); i++ {
		match := true
		for j, w := range want {
			if tokens[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
