package parser

import "regexp"

type typoFix struct {
	pattern     *regexp.Regexp
	replacement string
}

// commonTypos are whole-word fixes applied before extraction.
var commonTypos = []typoFix{
	{regexp.MustCompile(`(?i)\btemp(?:rature|erture)\b`), "temperature"},
	{regexp.MustCompile(`(?i)\bwh?ether\b`), "weather"},
	{regexp.MustCompile(`(?i)\bplacez\b`), "places"},
}

// FixCommonTypos corrects frequent misspellings of domain words.
func FixCommonTypos(text string) string {
	for _, fix := range commonTypos {
		text = fix.pattern.ReplaceAllString(text, fix.replacement)
	}
	return text
}
