package orchestrator

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"tourist-guide/internal/models"
	"tourist-guide/internal/parser"
)

// composition collects the sub-texts that made it into the answer.
// Empty texts mean the sub-lookup was not requested or failed.
type composition struct {
	location       string
	correctionNote string
	weatherText    string
	placesText     string
	placesFound    int
}

// message applies the composition rules. The weather clause always comes
// before the places clause.
func (c composition) message() string {
	switch {
	case c.weatherText != "" && c.placesText != "":
		return c.correctionNote + strings.TrimRight(c.weatherText, ".") + ". And " + lowerFirst(c.placesText)

	case c.placesText != "":
		var b strings.Builder
		if c.correctionNote != "" {
			b.WriteString(c.correctionNote)
			b.WriteString("Great choice! ")
		} else {
			fmt.Fprintf(&b, "Welcome to %s! ", c.location)
		}
		b.WriteString(c.placesText)
		if c.placesFound > 0 {
			fmt.Fprintf(&b, "\n\n💡 Would you like to know the weather in %s? Or see these places on an interactive map? Just ask!", c.location)
		}
		return b.String()

	case c.weatherText != "":
		return c.correctionNote + c.weatherText

	default:
		return fmt.Sprintf("I can help you explore %s! Ask me about:\n"+
			"• Weather and temperature\n"+
			"• Top tourist attractions\n"+
			"• Interactive map view\n\n"+
			"What would you like to know?", c.location)
	}
}

// correctionNote tells the user which span was reinterpreted, or is empty
// when the location was taken as written.
func correctionNote(pq parser.ParsedQuery) string {
	if pq.Location == nil || !pq.Location.WasCorrected {
		return ""
	}
	said := pq.Location.Candidate
	if said == "" {
		if fields := strings.Fields(pq.OriginalText); len(fields) > 0 {
			said = strings.Trim(fields[len(fields)-1], ".,;:!?")
		}
	}
	return fmt.Sprintf("(I understood '%s' as '%s') ", said, pq.Location.Name)
}

func weatherText(place string, w models.WeatherSnapshot) string {
	if w.TemperatureC == nil {
		return fmt.Sprintf("Weather information for %s is currently unavailable.", place)
	}
	temp := *w.TemperatureC

	var b strings.Builder
	fmt.Fprintf(&b, "The weather in %s is %s - currently %.1f°C", place, temperatureCondition(temp), temp)

	switch p := w.PrecipitationProbabilityPct; {
	case p == nil || *p <= 0:
		b.WriteString(". ✨ Perfect weather for sightseeing!")
	case *p > 70:
		fmt.Fprintf(&b, " with a high chance (%d%%) of rain. 🌧️ Don't forget your umbrella!", *p)
	case *p > 40:
		fmt.Fprintf(&b, " with a moderate chance (%d%%) of rain. ☔ Consider bringing an umbrella.", *p)
	default:
		fmt.Fprintf(&b, " with a slight chance (%d%%) of rain.", *p)
	}

	b.WriteString("\n💡 ")
	b.WriteString(clothingTip(temp))
	return b.String()
}

func temperatureCondition(temp float64) string {
	switch {
	case temp > 30:
		return "hot"
	case temp > 20:
		return "pleasant"
	case temp > 10:
		return "mild"
	default:
		return "cool"
	}
}

func clothingTip(temp float64) string {
	switch {
	case temp > 25:
		return "Pack light, breathable clothing."
	case temp > 15:
		return "A light jacket should be perfect."
	case temp > 5:
		return "Bring a warm jacket."
	default:
		return "Bundle up! It's quite cold."
	}
}

func placesText(place string, places []models.Place) string {
	if len(places) == 0 {
		return fmt.Sprintf("Hmm, I couldn't find popular tourist attractions listed for %s in the database.\n\n"+
			"This might be a smaller location or the data isn't available yet.\n"+
			"💡 Try searching for:\n"+
			"• Nearby major cities\n"+
			"• Popular tourist destinations\n"+
			"• Specific landmarks you're interested in", place)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Exciting places to visit in %s:\n\n", place)
	for i, p := range places {
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, placeMarker(p.Kind), p.Name)
	}
	fmt.Fprintf(&b, "\n💡 Tip: Ask me 'Show me %s on a map' for an interactive view!", place)
	return b.String()
}

func placeMarker(kind string) string {
	switch kind {
	case "museum":
		return "🏛️"
	case "park":
		return "🌳"
	case "monument", "castle":
		return "🏰"
	case "viewpoint":
		return "👁️"
	default:
		return "⭐"
	}
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
