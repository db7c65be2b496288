package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		max        int
		colors     []Color
		comment    string
		hasComment bool
	}{
		{
			name:       "colors and commentary",
			text:       "#FF0000,#00FF00,#0000FF,#FFFF00,#FF00FF;Vibrant and bold",
			max:        5,
			colors:     []Color{"#FF0000", "#00FF00", "#0000FF", "#FFFF00", "#FF00FF"},
			comment:    "Vibrant and bold",
			hasComment: true,
		},
		{
			name:   "literal fallback",
			text:   "red,green,blue",
			max:    5,
			colors: []Color{"red", "green", "blue"},
		},
		{
			name:   "fallback trims whitespace and drops empty tokens",
			text:   "  red , green,, blue ",
			max:    5,
			colors: []Color{"red", "green", "blue"},
		},
		{
			name:   "missing hash and stray text",
			text:   "Here you go: 1a2b3c, 4d5e6f and #abc.",
			max:    5,
			colors: []Color{"#1a2b3c", "#4d5e6f", "#abc"},
		},
		{
			name:       "splits on first semicolon only",
			text:       "#111111, #222222; calm; cool",
			max:        5,
			colors:     []Color{"#111111", "#222222"},
			comment:    " calm; cool",
			hasComment: true,
		},
		{
			name:       "commentary hex is not parsed as a color",
			text:       "#123456;pairs well with #FEDCBA",
			max:        5,
			colors:     []Color{"#123456"},
			comment:    "pairs well with #FEDCBA",
			hasComment: true,
		},
		{
			name:   "zero max falls back to default",
			text:   "#000001 #000002 #000003 #000004 #000005 #000006",
			max:    0,
			colors: []Color{"#000001", "#000002", "#000003", "#000004", "#000005"},
		},
		{
			name:       "empty color segment",
			text:       ";nothing here",
			max:        5,
			comment:    "nothing here",
			hasComment: true,
		},
		{
			name: "empty text",
			text: "",
			max:  5,
		},
		{
			name:   "eight hex digits are not a color",
			text:   "#FF00FF00",
			max:    5,
			colors: []Color{"#FF00FF00"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseResponse(tc.text, tc.max)
			if len(tc.colors) == 0 {
				assert.Empty(t, got.Colors)
				assert.True(t, got.Empty())
			} else {
				assert.Equal(t, tc.colors, got.Colors)
			}
			assert.Equal(t, tc.comment, got.Comment)
			assert.Equal(t, tc.hasComment, got.HasComment)
		})
	}
}

func TestParseResponse_Truncates(t *testing.T) {
	text := "#000001,#000002,#000003,#000004,#000005,#000006,#000007,#000008"
	got := ParseResponse(text, 5)

	require.Len(t, got.Colors, 5)
	assert.Equal(t, []Color{"#000001", "#000002", "#000003", "#000004", "#000005"}, got.Colors)
	assert.False(t, got.HasComment)
}

func TestParseResponse_FallbackTruncates(t *testing.T) {
	got := ParseResponse("a1,b2,c3,d4", 2)
	assert.Equal(t, []Color{"a1", "b2"}, got.Colors)
}

func TestHighlightSegments(t *testing.T) {
	segments := HighlightSegments("Start with #FF0000 then #00ff00.")
	assert.Equal(t, []Segment{
		{Text: "Start with "},
		{Text: "#FF0000", Hex: true},
		{Text: " then "},
		{Text: "#00ff00", Hex: true},
		{Text: "."},
	}, segments)

	assert.Equal(t, []Segment{{Text: "no colors"}}, HighlightSegments("no colors"))
	assert.Nil(t, HighlightSegments(""))
}
