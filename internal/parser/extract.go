package parser

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"tourist-guide/internal/common/logger"
	"tourist-guide/internal/gazetteer"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Strategy tags the extraction strategy that proposed a candidate.
type Strategy string

const (
	StrategyIndicatorPhrase Strategy = "indicator_phrase"
	StrategyCapitalization  Strategy = "capitalization"
	StrategyGazetteerScan   Strategy = "gazetteer_scan"
	StrategyContentToken    Strategy = "content_token"
)

// minLocationRunes is the length a resolved name must exceed to be accepted.
const minLocationRunes = 2

// maxSpanWords bounds capitalized runs and gazetteer scan windows.
const maxSpanWords = 3

// LocationCandidate is a span of the query proposed as a place name.
type LocationCandidate struct {
	Text   string   `json:"text"`
	Source Strategy `json:"source"`
}

// Resolver applies the gazetteer resolution policy to a candidate.
type Resolver interface {
	Resolve(text string) gazetteer.Resolution
}

// spanEnd closes an indicator span at punctuation, end of text or a
// following clause.
const spanEnd = `(?:\s*[,?.!]|$|\s+(?:what|where|how|and|or)\b)`

var indicatorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:going|heading|traveling|travelling|fly|flying)\s+to\s+([\p{L}\s]+?)(?:\s*[,?.!]|$|\s+(?:what|where|how|and|or|for)\b)`),
	regexp.MustCompile(`\b(?:visit|visiting|explore|exploring|tour|touring)\s+([\p{L}\s]+?)` + spanEnd),
	regexp.MustCompile(`\b(?:in|at|near|around)\s+([\p{L}\s]+?)(?:\s*[,?.!]|$|\s+(?:what|where|how|and|or|the|is|are)\b)`),
	regexp.MustCompile(`\b(?:to|about)\s+([\p{L}\s]+?)` + spanEnd),
	regexp.MustCompile(`\b(?:trip|vacation|holiday|tour)\s+(?:to|in)\s+([\p{L}\s]+?)` + spanEnd),
	regexp.MustCompile(`\b(?:weather|temperature|climate)\s+(?:in|at|of)\s+([\p{L}\s]+?)(?:\s*[,?.!]|$)`),
	regexp.MustCompile(`([\p{L}\s]+?)\s+(?:weather|temperature|climate)(?:\s*[,?.!]|$)`),
	regexp.MustCompile(`\b(?:places|attractions|sights)\s+(?:in|at|around|near)\s+([\p{L}\s]+?)(?:\s*[,?.!]|$)`),
}

type strategy struct {
	name    Strategy
	propose func(normalized, original string) []LocationCandidate
}

// Extractor runs the extraction cascade. The first candidate whose resolved
// name is long enough wins and later strategies are not consulted.
type Extractor struct {
	resolver   Resolver
	strategies []strategy
	logger     logger.Logger
}

func NewExtractor(resolver Resolver, log logger.Logger) *Extractor {
	e := &Extractor{resolver: resolver, logger: log}
	e.strategies = []strategy{
		{StrategyIndicatorPhrase, e.byIndicatorPhrase},
		{StrategyCapitalization, e.byCapitalization},
		{StrategyGazetteerScan, e.byGazetteerScan},
		{StrategyContentToken, e.byContentToken},
	}
	return e
}

// Extract returns the winning candidate and its resolution, or ok=false
// when the text names no location.
func (e *Extractor) Extract(normalized, original string) (LocationCandidate, gazetteer.Resolution, bool) {
	for _, s := range e.strategies {
		for _, c := range s.propose(normalized, original) {
			res := e.resolver.Resolve(c.Text)
			if utf8.RuneCountInString(res.Name) <= minLocationRunes {
				continue
			}
			e.logger.Debug("Location candidate accepted", map[string]interface{}{
				"strategy":  string(s.name),
				"candidate": c.Text,
				"resolved":  res.Name,
				"corrected": res.WasCorrected,
			})
			return c, res, true
		}
		e.logger.Debug("Strategy produced no location", map[string]interface{}{"strategy": string(s.name)})
	}
	return LocationCandidate{}, gazetteer.Resolution{}, false
}

// byIndicatorPhrase matches phrase templates such as "going to X" or
// "X weather" against the normalized text.
func (e *Extractor) byIndicatorPhrase(normalized, _ string) []LocationCandidate {
	var out []LocationCandidate
	for _, p := range indicatorPatterns {
		for _, m := range p.FindAllStringSubmatch(normalized, -1) {
			words := withoutStopWords(strings.Fields(m[1]))
			if len(words) == 0 {
				continue
			}
			out = append(out, LocationCandidate{Text: e.narrow(words), Source: StrategyIndicatorPhrase})
		}
	}
	return out
}

// narrow returns the longest sub-span the gazetteer confidently recognises,
// preferring earlier spans on ties, or the whole span when none is.
func (e *Extractor) narrow(words []string) string {
	for size := len(words); size >= 1; size-- {
		for start := 0; start+size <= len(words); start++ {
			span := titleCase(strings.Join(words[start:start+size], " "))
			if confident(e.resolver.Resolve(span)) {
				return span
			}
		}
	}
	return titleCase(strings.Join(words, " "))
}

// confident holds for exact, alias and auto-corrected resolutions, and not
// for suggestion-only ones.
func confident(res gazetteer.Resolution) bool {
	return res.Matched && (res.WasCorrected || len(res.Suggestions) == 0)
}

type capitalRun struct {
	text  string
	words int
	known bool
}

// nameConnectors may sit inside a capitalized run, as in "Rio de Janeiro".
var nameConnectors = toSet("de", "da", "do", "dos", "das", "del", "di", "du", "la", "le", "el", "van", "von")

// byCapitalization treats runs of capitalized words in the original text
// as proper nouns. Each run is narrowed like an indicator span. Runs the
// gazetteer confidently recognises rank first, then longer runs.
func (e *Extractor) byCapitalization(_, original string) []LocationCandidate {
	type word struct {
		text      string
		breaksRun bool
	}
	var words []word
	for _, f := range strings.Fields(original) {
		t := strings.Trim(f, tokenPunctuation)
		if t == "" {
			continue
		}
		words = append(words, word{text: t, breaksRun: strings.TrimRight(f, ",.;:!?") != f})
	}

	var runs []capitalRun
	for i := range words {
		if !isProperNounToken(words[i].text) {
			continue
		}
		parts := []string{words[i].text}
		for j := i + 1; j < len(words) && len(parts) < maxSpanWords && !words[j-1].breaksRun; j++ {
			if isProperNounToken(words[j].text) {
				parts = append(parts, words[j].text)
				continue
			}
			if isNameConnector(words[j].text) && j+1 < len(words) && len(parts)+2 <= maxSpanWords &&
				!words[j].breaksRun && isProperNounToken(words[j+1].text) {
				parts = append(parts, words[j].text, words[j+1].text)
				j++
				continue
			}
			break
		}
		text := e.narrow(parts)
		runs = append(runs, capitalRun{
			text:  text,
			words: len(strings.Fields(text)),
			known: confident(e.resolver.Resolve(text)),
		})
	}

	sort.SliceStable(runs, func(a, b int) bool {
		if runs[a].known != runs[b].known {
			return runs[a].known
		}
		if runs[a].words != runs[b].words {
			return runs[a].words > runs[b].words
		}
		return len(runs[a].text) > len(runs[b].text)
	})

	out := make([]LocationCandidate, len(runs))
	for i, r := range runs {
		out[i] = LocationCandidate{Text: r.text, Source: StrategyCapitalization}
	}
	return out
}

func isNameConnector(word string) bool {
	_, ok := nameConnectors[word]
	return ok
}

func isProperNounToken(word string) bool {
	first, _ := utf8.DecodeRuneInString(word)
	plain := quoteReplacer.Replace(word)
	return unicode.IsUpper(first) && !isStopWord(plain) && !isDomainTerm(plain)
}

// byGazetteerScan tries single tokens, then windows of two and three
// tokens, against the gazetteer. Confident hits (exact, alias or
// auto-corrected) outrank suggestion-only hits.
func (e *Extractor) byGazetteerScan(normalized, _ string) []LocationCandidate {
	words := tokens(normalized)

	var sure, tentative []LocationCandidate
	for size := 1; size <= maxSpanWords; size++ {
		for start := 0; start+size <= len(words); start++ {
			window := words[start : start+size]
			if isStopWord(window[0]) || isStopWord(window[len(window)-1]) || isDomainTerm(window[0]) {
				continue
			}
			if size == 1 && utf8.RuneCountInString(window[0]) <= minLocationRunes {
				continue
			}

			text := titleCase(strings.Join(window, " "))
			res := e.resolver.Resolve(text)
			if !res.Matched {
				continue
			}
			c := LocationCandidate{Text: text, Source: StrategyGazetteerScan}
			if confident(res) {
				sure = append(sure, c)
			} else {
				tentative = append(tentative, c)
			}
		}
	}
	return append(sure, tentative...)
}

// byContentToken proposes the first content word so that unknown places
// still reach geocoding.
func (e *Extractor) byContentToken(normalized, _ string) []LocationCandidate {
	for _, w := range tokens(normalized) {
		if isStopWord(w) || isDomainTerm(w) || utf8.RuneCountInString(w) <= minLocationRunes {
			continue
		}
		return []LocationCandidate{{Text: titleCase(w), Source: StrategyContentToken}}
	}
	return nil
}

func withoutStopWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !isStopWord(w) {
			out = append(out, w)
		}
	}
	return out
}

// titleCase builds a fresh Caser per call; casers are not goroutine safe.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
