package theme

import (
	"math"
	"regexp"
	"strings"

	"github.com/leonardotrapani/hueprompt/internal/palette"
	"github.com/lucasb-eyer/go-colorful"
)

// InvalidBrightness is reported for colors that cannot be decoded.
const InvalidBrightness = -1.0

var validHex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func decode(c palette.Color) (colorful.Color, bool) {
	if !validHex.MatchString(c) {
		return colorful.Color{}, false
	}
	col, err := colorful.Hex(c)
	if err != nil {
		return colorful.Color{}, false
	}
	return col, true
}

// colorKey identifies c by the color it decodes to, so #fff and #FFFFFF
// compare equal. Undecodable entries are keyed by their upper-cased text.
func colorKey(c palette.Color) string {
	if col, ok := decode(c); ok {
		return col.Hex()
	}
	return strings.ToUpper(c)
}

// Brightness returns the perceived brightness of c on a 0-255 scale:
// sqrt(0.299*R^2 + 0.587*G^2 + 0.114*B^2). Undecodable colors yield InvalidBrightness.
func Brightness(c palette.Color) float64 {
	col, ok := decode(c)
	if !ok {
		return InvalidBrightness
	}
	r, g, b := col.RGB255()
	rf, gf, bf := float64(r), float64(g), float64(b)
	return math.Sqrt(0.299*rf*rf + 0.587*gf*gf + 0.114*bf*bf)
}

// relativeLuminance is the WCAG relative luminance; undecodable colors count as black.
func relativeLuminance(c palette.Color) float64 {
	col, ok := decode(c)
	if !ok {
		return 0
	}
	r, g, b := col.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio returns the WCAG contrast ratio between a and b, in [1, 21].
func ContrastRatio(a, b palette.Color) float64 {
	la := relativeLuminance(a)
	lb := relativeLuminance(b)
	lighter := math.Max(la, lb)
	darker := math.Min(la, lb)
	return (lighter + 0.05) / (darker + 0.05)
}
