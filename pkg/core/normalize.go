package core

import "strings"

// NormalizeScalar trims leading and trailing whitespace.
func NormalizeScalar(text string) string {
	return strings.TrimSpace(text)
}

// NormalizeToList trims the input, collapses whitespace runs to a single
// space and splits on it. An empty input yields a single empty token.
func NormalizeToList(text string) []string {
	return strings.Split(collapse(text), " ")
}

// ListToDisplay joins tokens with a single space and normalizes the result
// again, so denormalized input still produces a clean string.
func ListToDisplay(tokens []string) string {
	return collapse(strings.Join(tokens, " "))
}

func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
