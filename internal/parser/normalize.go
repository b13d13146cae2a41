package parser

import (
	"regexp"
	"strings"
)

var (
	quoteReplacer = strings.NewReplacer(
		"‘", "'", "’", "'", "‛", "'", "`", "'", "´", "'",
		"“", `"`, "”", `"`, "‟", `"`,
	)

	iAmPattern    = regexp.MustCompile(`\bi'?m\b`)
	whatIsPattern = regexp.MustCompile(`\bwhat'?s\b`)
)

// Normalize case-folds text, unifies quotes, expands the "i'm" and "what's"
// contractions and collapses whitespace. It is total and idempotent.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = quoteReplacer.Replace(text)
	text = iAmPattern.ReplaceAllString(text, "i am")
	text = whatIsPattern.ReplaceAllString(text, "what is")
	return strings.Join(strings.Fields(text), " ")
}
