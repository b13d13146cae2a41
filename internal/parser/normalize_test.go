package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"case fold and whitespace", "  Weather   in\tPARIS ", "weather in paris"},
		{"curly apostrophe contraction", "What’s the weather?", "what is the weather?"},
		{"apostrophe-less contraction", "whats up in rome", "what is up in rome"},
		{"i am straight quote", "I'm going to Tokyo", "i am going to tokyo"},
		{"i am without apostrophe", "im going to tokyo", "i am going to tokyo"},
		{"backtick apostrophe", "I`m here", "i am here"},
		{"curly double quotes", "“Paris” please", `"paris" please`},
		{"does not touch word interiors", "swimming whatsoever", "swimming whatsoever"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"What's the weather in Banglore?",
		"I’M   visiting   São Paulo",
		"whats   whats im im",
		"“quoted” ‘single’ `tick´",
		"\n\t  ",
		"Tokyo",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestFixCommonTypos(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"temprature in Paris", "temperature in Paris"},
		{"Temperture in Paris", "temperature in Paris"},
		{"wether in Rome", "weather in Rome"},
		{"Whether in Rome", "weather in Rome"},
		{"placez to see", "places to see"},
		{"weather in Rome", "weather in Rome"},
		{"placezz", "placezz"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FixCommonTypos(tt.input), "input %q", tt.input)
	}
}
