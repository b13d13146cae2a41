package parser

import "strings"

// Weather terms, split for readability; matching is a flat substring test.
var (
	weatherDirect     = []string{"weather", "temperature", "temp", "forecast", "climate", "celsius", "fahrenheit", "degrees"}
	weatherConditions = []string{"rain", "raining", "rainy", "sunny", "cloudy", "cloud", "snow", "snowing", "hot", "cold", "warm", "cool", "humid", "dry", "windy", "wind"}
	weatherQuestions  = []string{"how hot", "how cold", "how warm"}
)

// Places terms, same layout as the weather terms.
var (
	placesDirect    = []string{"places", "attractions", "tourist", "sightseeing", "landmarks", "destinations", "sights", "monuments", "museums", "parks", "restaurants", "hotels", "shopping"}
	placesActions   = []string{"visit", "see", "explore", "tour", "check out", "things to do"}
	placesQuestions = []string{"what to", "where to", "where can", "what can"}
)

var (
	mapPhrases    = []string{"map", "show me", "visualize", "display"}
	travelPhrases = []string{"going to", "heading to", "trip to", "travel to", "fly to", "visiting"}
	modalWords    = []string{"can", "should", "do", "see", "visit"}
)

var (
	weatherTerms = concat(weatherDirect, weatherConditions, weatherQuestions)
	placesTerms  = concat(placesDirect, placesActions, placesQuestions)
)

// stopWords are dropped from location spans and from the content-word count.
var stopWords = toSet(
	// pronouns and determiners
	"i", "im", "i'm", "i'd", "me", "my", "what's", "whats", "it's", "let's", "we", "us", "our", "you", "your", "it", "its",
	"these", "those", "there", "here", "this", "that", "the", "a", "an", "some", "any",
	// interrogatives
	"what", "where", "how", "when", "why", "who",
	// auxiliaries and modals
	"am", "is", "are", "was", "were", "be", "been", "being",
	"can", "could", "should", "would", "will", "shall", "may", "might",
	"do", "does", "did", "have", "has", "had",
	// connectives and prepositions
	"and", "or", "but", "if", "then", "so", "for", "to", "of", "in", "on", "at", "about", "like", "with",
	// verbs of intent
	"go", "going", "want", "need", "tell", "show", "check", "see", "visit", "visiting", "explore", "please",
	// fillers
	"hi", "hello", "hey", "thanks", "give", "find", "list", "suggest", "recommend",
	"best", "top", "good", "nice", "things", "thing", "plan", "planning",
	// temporal words
	"today", "tomorrow", "tomorow", "yesterday", "tonight", "now", "later", "soon",
	"next", "week", "month", "year", "day", "morning", "evening", "afternoon",
	// domain terms
	"weather", "temperature", "climate", "temp", "forecast",
	"place", "places", "attractions",
)

// domainTerms stop a capitalized run from absorbing words like "Weather".
var domainTerms = toSet(append(concat(weatherDirect, weatherConditions), placesDirect...)...)

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func isStopWord(word string) bool {
	_, ok := stopWords[strings.ToLower(word)]
	return ok
}

func isDomainTerm(word string) bool {
	_, ok := domainTerms[strings.ToLower(word)]
	return ok
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// tokenPunctuation is trimmed from token edges before any word test.
const tokenPunctuation = ".,;:!?\"'()[]{}"

// tokens splits on whitespace and strips surrounding punctuation, dropping
// tokens that were punctuation only.
func tokens(text string) []string {
	fields := strings.Fields(text)
	out := fields[:0]
	for _, f := range fields {
		if t := strings.Trim(f, tokenPunctuation); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// contentWordCount counts tokens that are not stop words.
func contentWordCount(text string) int {
	n := 0
	for _, t := range tokens(text) {
		if !isStopWord(t) {
			n++
		}
	}
	return n
}
