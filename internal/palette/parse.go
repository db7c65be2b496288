package palette

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// DefaultMaxColors is used when the caller does not bound the color count.
const DefaultMaxColors = 5

// hexToken matches a 6- or 3-digit hex color, with or without '#', between word boundaries.
var hexToken = regexp.MustCompile(`#?\b([0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)

// Parsed is the structured form of a generated response.
type Parsed struct {
	Colors     []Color
	Comment    string
	HasComment bool
}

// Empty reports whether nothing usable was found.
func (p Parsed) Empty() bool {
	return len(p.Colors) == 0
}

// ParseResponse extracts up to maxColors colors and the optional commentary from text.
//
// The text is split on the first ';' only; everything after it is commentary and is kept
// verbatim. Hex tokens are scanned from the color segment regardless of surrounding
// punctuation. When no hex token is found the segment is read as a plain comma-separated
// list and its tokens are accepted as-is. ParseResponse never fails: an empty Colors slice
// means the response held nothing usable.
func ParseResponse(text string, maxColors int) Parsed {
	if maxColors <= 0 {
		maxColors = DefaultMaxColors
	}

	var out Parsed
	segment := text
	if before, after, found := strings.Cut(text, ";"); found {
		segment = before
		out.Comment = after
		out.HasComment = true
	}

	matches := hexToken.FindAllStringSubmatch(segment, -1)
	if len(matches) > 0 {
		out.Colors = lo.Map(matches, func(m []string, _ int) Color {
			return "#" + m[1]
		})
	} else {
		tokens := lo.Map(strings.Split(segment, ","), func(s string, _ int) string {
			return strings.TrimSpace(s)
		})
		out.Colors = lo.Compact(tokens)
	}

	if len(out.Colors) > maxColors {
		out.Colors = out.Colors[:maxColors]
	}
	return out
}

// Segment is a piece of commentary; Hex is set when the piece is a color mention.
type Segment struct {
	Text string
	Hex  bool
}

var commentHex = regexp.MustCompile(`#[a-fA-F0-9]{6}`)

// HighlightSegments splits commentary into plain text and "#RRGGBB" mentions so that a
// renderer can paint each mention in the color it names.
func HighlightSegments(comment string) []Segment {
	if comment == "" {
		return nil
	}

	var segments []Segment
	prev := 0
	for _, loc := range commentHex.FindAllStringIndex(comment, -1) {
		if loc[0] > prev {
			segments = append(segments, Segment{Text: comment[prev:loc[0]]})
		}
		segments = append(segments, Segment{Text: comment[loc[0]:loc[1]], Hex: true})
		prev = loc[1]
	}
	if prev < len(comment) {
		segments = append(segments, Segment{Text: comment[prev:]})
	}
	return segments
}
