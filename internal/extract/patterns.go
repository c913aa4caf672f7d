package extract

import (
	"regexp"
	"sort"
)

// The two fixed text patterns applied to readable page text. No validation is
// performed beyond the regex shape: no MX lookup, no carrier checks.
var (
	// emailPattern matches conventional ASCII addresses with a final domain
	// label of at least two letters.
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// phonePattern matches North-American 10-digit numbers in 3-3-4 grouping
	// with optional parentheses around the area code and optional space,
	// hyphen or dot separators.
	phonePattern = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
)

// Emails returns the distinct email addresses matched in text, sorted
// lexicographically so "first email" is deterministic downstream.
func Emails(text string) []string {
	matches := emailPattern.FindAllString(text, -1)
	out := distinct(matches)
	sort.Strings(out)

	return out
}

// Phones returns the distinct phone numbers matched in text, in order of
// first appearance.
func Phones(text string) []string {
	return distinct(phonePattern.FindAllString(text, -1))
}

func distinct(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}
