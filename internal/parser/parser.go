// Package parser turns free-text travel questions into a ParsedQuery: a
// resolved location plus the kinds of information the user asked for.
//
// Parsing is pure and total. The only failure mode is an absent location,
// which the orchestrator reports as NO_LOCATION without calling out.
package parser

import (
	"strings"

	"tourist-guide/internal/common/logger"
)

// ResolvedLocation is the final location decision for a query.
type ResolvedLocation struct {
	Name         string   `json:"name"`
	WasCorrected bool     `json:"was_corrected"`
	Suggestions  []string `json:"suggestions,omitempty"`
	Source       Strategy `json:"source"`
	// Candidate is the span proposed by the extractor before resolution.
	Candidate string `json:"candidate"`
}

type ParsedQuery struct {
	OriginalText   string            `json:"original_text"`
	ProcessedText  string            `json:"processed_text"`
	NormalizedText string            `json:"normalized_text"`
	Location       *ResolvedLocation `json:"location,omitempty"`
	Intent         IntentFlags       `json:"intent"`
}

// HasLocation reports whether extraction produced a location.
func (q ParsedQuery) HasLocation() bool {
	return q.Location != nil && q.Location.Name != ""
}

// Parser is stateless apart from the read-only resolver and is safe for
// concurrent use.
type Parser struct {
	extractor *Extractor
	logger    logger.Logger
}

func New(resolver Resolver, log logger.Logger) *Parser {
	log = log.Named("parser")
	return &Parser{
		extractor: NewExtractor(resolver, log),
		logger:    log,
	}
}

// Parse runs typo fixing, normalization, extraction and intent
// classification in that order.
func (p *Parser) Parse(text string) ParsedQuery {
	original := strings.TrimSpace(text)
	processed := FixCommonTypos(original)
	normalized := Normalize(processed)

	pq := ParsedQuery{
		OriginalText:   original,
		ProcessedText:  processed,
		NormalizedText: normalized,
		Intent:         ClassifyIntent(normalized),
	}

	if candidate, res, ok := p.extractor.Extract(normalized, processed); ok {
		pq.Location = &ResolvedLocation{
			Name:         res.Name,
			WasCorrected: res.WasCorrected,
			Suggestions:  res.Suggestions,
			Source:       candidate.Source,
			Candidate:    candidate.Text,
		}
	}

	fields := map[string]interface{}{
		"query":   original,
		"weather": pq.Intent.WantsWeather,
		"places":  pq.Intent.WantsPlaces,
	}
	if pq.Location != nil {
		fields["location"] = pq.Location.Name
		fields["corrected"] = pq.Location.WasCorrected
		fields["strategy"] = string(pq.Location.Source)
	}
	p.logger.Info("Query parsed", fields)

	return pq
}
