package palette

import (
	"slices"
	"strings"
)

// Color is a hex color string such as "#RGB" or "#RRGGBB".
type Color = string

// Palette is a named, ordered set of colors with optional commentary.
// Values are treated as immutable; use Clone before handing one out.
type Palette struct {
	Name    string  `json:"name" yaml:"name"`
	Colors  []Color `json:"colors" yaml:"colors"`
	Comment string  `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// Clone returns a deep copy of p.
func (p Palette) Clone() Palette {
	return Palette{
		Name:    p.Name,
		Colors:  slices.Clone(p.Colors),
		Comment: p.Comment,
	}
}

// Empty reports whether the palette has no colors to display.
func (p Palette) Empty() bool {
	return len(p.Colors) == 0
}

// Normalize adds the leading '#' when missing and trims surrounding space.
// Case is preserved; hex digits are compared case-insensitively elsewhere.
func Normalize(c Color) Color {
	c = strings.TrimSpace(c)
	if c == "" || strings.HasPrefix(c, "#") {
		return c
	}
	return "#" + c
}
