package palette

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names an export representation of a palette.
type Format string

const (
	FormatHex  Format = "hex"
	FormatCSS  Format = "css"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists every supported export format.
var Formats = []Format{FormatHex, FormatCSS, FormatJSON, FormatYAML}

// HexList joins the colors with commas, e.g. "#FF0000,#00FF00".
func HexList(p Palette) string {
	return strings.Join(p.Colors, ",")
}

// CSSVariables renders the colors as custom properties on :root.
func CSSVariables(p Palette) string {
	var b strings.Builder
	b.WriteString(":root {\n")
	for i, c := range p.Colors {
		fmt.Fprintf(&b, "  --color-%d: %s;\n", i, c)
	}
	b.WriteString("}")
	return b.String()
}

// Export renders p in the requested format.
func Export(p Palette, format Format) (string, error) {
	switch format {
	case FormatHex:
		return HexList(p), nil
	case FormatCSS:
		return CSSVariables(p), nil
	case FormatJSON:
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		return string(data), nil
	case FormatYAML:
		data, err := yaml.Marshal(p)
		if err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	default:
		return "", fmt.Errorf("unsupported export format: %s (must be hex, css, json, or yaml)", format)
	}
}
