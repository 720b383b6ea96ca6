package domain

import "strings"

// NormalizeText lowercases text, trims it and collapses every run of
// whitespace into a single space. Used for keys, enums and intents.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// NormalizeTag is NormalizeText for hashtags and topic tags: a single
// leading '#' is dropped so "#Go" and "go" compare equal.
func NormalizeTag(tag string) string {
	return NormalizeText(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
}
