package services

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TitleCase trims the name and capitalizes the first letter of every word,
// lower-casing the rest. Applied to product and category names before
// persistence so the unique index compares normalized values.
func TitleCase(name string) string {
	words := strings.Fields(name)
	for i, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
	}
	return strings.Join(words, " ")
}

// UpperName trims and upper-cases a brand name.
func UpperName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
