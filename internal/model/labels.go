package model

import (
	"strings"
	"unicode"
)

// DefaultLabeler derives a display label from a field name. Words split on
// underscores, dashes, spaces and camelCase boundaries; each word is
// capitalised. All-caps runs such as "ID" or "HTTPTimeout" keep their
// acronym: "user_id" is "User Id" but "userID" is "User ID".
func DefaultLabeler(name string) string {
	words := splitWords(name)
	for i, w := range words {
		words[i] = capitalise(w)
	}
	return strings.Join(words, " ")
}

func splitWords(name string) []string {
	var (
		words   []string
		current []rune
	)
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if i > 0 && len(current) > 0 && wordBoundary(runes, i) {
			flush()
		}
		current = append(current, r)
	}
	flush()
	return words
}

// wordBoundary reports whether a new word starts at runes[i].
func wordBoundary(runes []rune, i int) bool {
	prev, r := runes[i-1], runes[i]
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(r), unicode.IsDigit(prev) && unicode.IsLetter(r):
		return true
	case unicode.IsUpper(prev) && unicode.IsUpper(r) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
		// "HTTPTimeout": the last capital opens the next word.
		return true
	}
	return false
}

func capitalise(word string) string {
	runes := []rune(word)
	if len(runes) > 1 && isAllUpper(runes) {
		return word
	}
	lower := []rune(strings.ToLower(word))
	lower[0] = unicode.ToUpper(lower[0])
	return string(lower)
}

func isAllUpper(runes []rune) bool {
	for _, r := range runes {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
