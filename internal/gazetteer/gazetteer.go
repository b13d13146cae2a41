// Package gazetteer resolves free-text place names against a fixed catalog
// of canonical names and aliases.
package gazetteer

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

const (
	DefaultAutoCorrectThreshold = 0.80
	DefaultSuggestionCutoff     = 0.6
	DefaultMaxSuggestions       = 3
)

// SimilarityFunc scores two strings in [0,1]; 1 means identical.
type SimilarityFunc func(a, b string) float64

// LevenshteinRatio is 1 - editDistance/maxLen over the lowercased inputs.
func LevenshteinRatio(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
}

// Match is a fuzzy catalog hit.
type Match struct {
	Name       string
	Similarity float64
}

// Resolution is the outcome of the resolution policy for one candidate.
type Resolution struct {
	Name         string
	WasCorrected bool
	Suggestions  []string
	// Matched is false when neither the catalog, the aliases nor the fuzzy
	// matcher recognised the text.
	Matched bool
}

// Gazetteer is immutable after construction and safe for concurrent use.
type Gazetteer struct {
	names          []string
	byLower        map[string]string
	aliases        map[string]string
	similarity     SimilarityFunc
	autoCorrectAt  float64
	cutoff         float64
	maxSuggestions int
}

type Option func(*Gazetteer)

// WithSimilarity swaps the fuzzy scoring function.
func WithSimilarity(fn SimilarityFunc) Option {
	return func(g *Gazetteer) {
		if fn != nil {
			g.similarity = fn
		}
	}
}

// WithThresholds sets the auto-correct threshold and the suggestion cutoff.
func WithThresholds(autoCorrectAt, cutoff float64) Option {
	return func(g *Gazetteer) {
		if autoCorrectAt > 0 {
			g.autoCorrectAt = autoCorrectAt
		}
		if cutoff > 0 {
			g.cutoff = cutoff
		}
	}
}

func WithMaxSuggestions(n int) Option {
	return func(g *Gazetteer) {
		if n > 0 {
			g.maxSuggestions = n
		}
	}
}

// New builds a gazetteer. Catalog order is kept as the tie-break for equal
// similarity; duplicate names (case-insensitive) keep their first position.
func New(names []string, aliases map[string]string, opts ...Option) *Gazetteer {
	g := &Gazetteer{
		byLower:        make(map[string]string, len(names)),
		aliases:        make(map[string]string, len(aliases)),
		similarity:     LevenshteinRatio,
		autoCorrectAt:  DefaultAutoCorrectThreshold,
		cutoff:         DefaultSuggestionCutoff,
		maxSuggestions: DefaultMaxSuggestions,
	}
	for _, name := range names {
		key := strings.ToLower(name)
		if _, dup := g.byLower[key]; dup {
			continue
		}
		g.byLower[key] = name
		g.names = append(g.names, name)
	}
	for alias, canonical := range aliases {
		g.aliases[strings.ToLower(alias)] = canonical
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Default returns a gazetteer over the built-in catalog.
func Default(opts ...Option) *Gazetteer {
	return New(DefaultPlaces, DefaultAliases, opts...)
}

// Len reports the number of catalog entries.
func (g *Gazetteer) Len() int { return len(g.names) }

func (g *Gazetteer) ExactMatch(text string) (string, bool) {
	name, ok := g.byLower[strings.ToLower(strings.TrimSpace(text))]
	return name, ok
}

func (g *Gazetteer) AliasMatch(text string) (string, bool) {
	name, ok := g.aliases[strings.ToLower(strings.TrimSpace(text))]
	return name, ok
}

// FuzzyMatch returns catalog names scoring at least the suggestion cutoff,
// best first, at most maxSuggestions of them.
func (g *Gazetteer) FuzzyMatch(text string, maxSuggestions int) []Match {
	text = strings.TrimSpace(text)
	if text == "" || maxSuggestions <= 0 {
		return nil
	}

	var matches []Match
	for _, name := range g.names {
		if s := g.similarity(text, name); s >= g.cutoff {
			matches = append(matches, Match{Name: name, Similarity: s})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	return matches
}

// Resolve applies the resolution policy: exact, then alias, then fuzzy with
// auto-correction at or above the threshold, then suggestions only.
func (g *Gazetteer) Resolve(text string) Resolution {
	text = strings.TrimSpace(text)
	if text == "" {
		return Resolution{}
	}

	if name, ok := g.ExactMatch(text); ok {
		return Resolution{Name: name, Matched: true}
	}
	if name, ok := g.AliasMatch(text); ok {
		return Resolution{Name: name, WasCorrected: true, Matched: true}
	}

	matches := g.FuzzyMatch(text, g.maxSuggestions)
	if len(matches) == 0 {
		return Resolution{Name: text}
	}

	suggestions := make([]string, len(matches))
	for i, m := range matches {
		suggestions[i] = m.Name
	}
	if matches[0].Similarity >= g.autoCorrectAt {
		return Resolution{Name: matches[0].Name, WasCorrected: true, Suggestions: suggestions, Matched: true}
	}
	return Resolution{Name: text, Suggestions: suggestions, Matched: true}
}
