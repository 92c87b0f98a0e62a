package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, "")
	return name
}

func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// SplitFields splits the rendered text of a row-like element into its
// visible fragments. Nested markup leaves blank segments between line
// breaks, those are dropped entirely rather than kept as empty cells.
func SplitFields(text string) []string {
	var fields []string
	for _, f := range strings.Split(text, "\n") {
		if f == "" {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// StripLineBreaks removes embedded newline characters without touching
// any other whitespace.
func StripLineBreaks(text string) string {
	return strings.ReplaceAll(text, "\n", "")
}
