package parser

// IntentFlags says which kinds of information a query asks for.
type IntentFlags struct {
	WantsWeather bool `json:"weather"`
	WantsPlaces  bool `json:"places"`
}

// shortQueryWords is the content-word count at or below which a query is
// treated as a bare place name.
const shortQueryWords = 2

// ClassifyIntent derives IntentFlags from normalized text. Rules only ever
// switch a flag on, and the result always has at least one flag set.
func ClassifyIntent(normalized string) IntentFlags {
	var intent IntentFlags

	intent.WantsWeather = containsAny(normalized, weatherTerms)
	intent.WantsPlaces = containsAny(normalized, placesTerms) || containsAny(normalized, mapPhrases)

	if !intent.WantsWeather {
		words := toSet(tokens(normalized)...)
		if _, hasWhat := words["what"]; hasWhat {
			for _, m := range modalWords {
				if _, ok := words[m]; ok {
					intent.WantsPlaces = true
					break
				}
			}
		}

		if containsAny(normalized, travelPhrases) {
			intent.WantsPlaces = true
		}

		if contentWordCount(normalized) <= shortQueryWords {
			intent.WantsPlaces = true
		}
	}

	if !intent.WantsWeather && !intent.WantsPlaces {
		intent.WantsPlaces = true
	}
	return intent
}
