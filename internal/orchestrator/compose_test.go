package orchestrator

import (
	"strings"
	"testing"

	"tourist-guide/internal/models"
	"tourist-guide/internal/parser"

	"github.com/stretchr/testify/assert"
)

func TestComposition_Message(t *testing.T) {
	const (
		weather = "The weather in Rome is mild - currently 15.0°C. ✨ Perfect weather for sightseeing!\n💡 Bring a warm jacket."
		places  = "Exciting places to visit in Rome:\n\n1. ⭐ Colosseum\n"
	)

	tests := []struct {
		name string
		c    composition
		want string
	}{
		{
			name: "weather and places",
			c:    composition{location: "Rome", weatherText: weather, placesText: places, placesFound: 1},
			want: strings.TrimSuffix(weather, ".") + ". And exciting places to visit in Rome:\n\n1. ⭐ Colosseum\n",
		},
		{
			name: "places with footer",
			c:    composition{location: "Rome", placesText: places, placesFound: 1},
			want: "Welcome to Rome! " + places +
				"\n\n💡 Would you like to know the weather in Rome? Or see these places on an interactive map? Just ask!",
		},
		{
			name: "places without results has no footer",
			c:    composition{location: "Rome", placesText: "Hmm, nothing.", placesFound: 0},
			want: "Welcome to Rome! Hmm, nothing.",
		},
		{
			name: "corrected places",
			c:    composition{location: "Rome", correctionNote: "(I understood 'Roma' as 'Rome') ", placesText: "Hmm, nothing."},
			want: "(I understood 'Roma' as 'Rome') Great choice! Hmm, nothing.",
		},
		{
			name: "weather only",
			c:    composition{location: "Rome", correctionNote: "(I understood 'Roma' as 'Rome') ", weatherText: weather},
			want: "(I understood 'Roma' as 'Rome') " + weather,
		},
		{
			name: "nothing to say",
			c:    composition{location: "Rome"},
			want: "I can help you explore Rome! Ask me about:\n• Weather and temperature\n• Top tourist attractions\n• Interactive map view\n\nWhat would you like to know?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.message())
		})
	}
}

func TestWeatherText(t *testing.T) {
	tests := []struct {
		name     string
		snapshot models.WeatherSnapshot
		contains []string
	}{
		{
			name:     "hot and dry",
			snapshot: models.WeatherSnapshot{TemperatureC: floatPtr(32.4), PrecipitationProbabilityPct: intPtr(0)},
			contains: []string{"is hot - currently 32.4°C", "Perfect weather for sightseeing!", "Pack light, breathable clothing."},
		},
		{
			name:     "pleasant with high rain chance",
			snapshot: models.WeatherSnapshot{TemperatureC: floatPtr(22), PrecipitationProbabilityPct: intPtr(80)},
			contains: []string{"is pleasant - currently 22.0°C", "high chance (80%) of rain", "A light jacket should be perfect."},
		},
		{
			name:     "mild with moderate rain chance",
			snapshot: models.WeatherSnapshot{TemperatureC: floatPtr(12), PrecipitationProbabilityPct: intPtr(50)},
			contains: []string{"is mild", "moderate chance (50%) of rain", "Bring a warm jacket."},
		},
		{
			name:     "cool with slight rain chance",
			snapshot: models.WeatherSnapshot{TemperatureC: floatPtr(3), PrecipitationProbabilityPct: intPtr(20)},
			contains: []string{"is cool", "slight chance (20%) of rain.", "Bundle up!"},
		},
		{
			name:     "unknown precipitation",
			snapshot: models.WeatherSnapshot{TemperatureC: floatPtr(10)},
			contains: []string{"is cool - currently 10.0°C", "Perfect weather for sightseeing!"},
		},
		{
			name:     "unknown temperature",
			snapshot: models.WeatherSnapshot{PrecipitationProbabilityPct: intPtr(20)},
			contains: []string{"Weather information for Oslo is currently unavailable."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := weatherText("Oslo", tt.snapshot)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestPlacesText(t *testing.T) {
	got := placesText("Rome", []models.Place{
		{Name: "Musei Capitolini", Kind: "museum"},
		{Name: "Villa Borghese", Kind: "park"},
		{Name: "Castel Sant'Angelo", Kind: "castle"},
		{Name: "Colosseum", Kind: "attraction"},
	})

	assert.True(t, strings.HasPrefix(got, "Exciting places to visit in Rome:\n\n"))
	assert.Contains(t, got, "1. 🏛️ Musei Capitolini\n")
	assert.Contains(t, got, "2. 🌳 Villa Borghese\n")
	assert.Contains(t, got, "3. 🏰 Castel Sant'Angelo\n")
	assert.Contains(t, got, "4. ⭐ Colosseum\n")
	assert.Contains(t, got, "Show me Rome on a map")

	empty := placesText("Smallville", nil)
	assert.Contains(t, empty, "couldn't find popular tourist attractions listed for Smallville")
}

func TestCorrectionNote(t *testing.T) {
	assert.Empty(t, correctionNote(parser.ParsedQuery{}))
	assert.Empty(t, correctionNote(parsedQuery("Paris", both)))

	pq := parser.ParsedQuery{
		OriginalText: "weather in nyc?",
		Location:     &parser.ResolvedLocation{Name: "New York", WasCorrected: true},
	}
	assert.Equal(t, "(I understood 'nyc' as 'New York') ", correctionNote(pq))

	pq.Location.Candidate = "Nyc"
	assert.Equal(t, "(I understood 'Nyc' as 'New York') ", correctionNote(pq))
}

func TestLowerFirst(t *testing.T) {
	assert.Equal(t, "exciting", lowerFirst("Exciting"))
	assert.Equal(t, "éclair", lowerFirst("Éclair"))
	assert.Equal(t, "", lowerFirst(""))
}
