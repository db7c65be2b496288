package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/leonardotrapani/hueprompt/internal/palette"
	"github.com/leonardotrapani/hueprompt/internal/theme"
)

const swatchWidth = 13

// PaletteView is everything needed to draw one palette
type PaletteView struct {
	Palette palette.Palette
	Theme   theme.State
	Names   []string // optional color names, parallel to Palette.Colors
	Saved   bool
}

// RenderPalette draws the palette inside a frame styled by its theme state
func RenderPalette(v PaletteView) string {
	styles := stylesFor(v.Theme)

	title := v.Palette.Name
	if title == "" {
		title = "untitled palette"
	}
	if v.Saved {
		title += " ★"
	}

	parts := []string{
		styles.title.Render(title),
		"",
		RenderSwatches(v.Palette.Colors, v.Theme.Labels, v.Names),
	}
	if v.Palette.Comment != "" {
		parts = append(parts, "", styles.comment.Render(RenderComment(v.Palette.Comment, v.Theme)))
	}
	parts = append(parts, "", styles.footer.Render(themeSummary(v.Theme)))

	return styles.frame.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// RenderSwatches draws one block per color with its hex (and name) written in
// the label color chosen by the theme engine
func RenderSwatches(colors []palette.Color, labels []palette.Color, names []string) string {
	if len(colors) == 0 {
		return StyleMuted.Render("(no colors)")
	}

	blocks := make([]string, len(colors))
	for i, c := range colors {
		label := theme.NeutralLabel
		if i < len(labels) {
			label = labels[i]
		}

		text := strings.ToUpper(c)
		if i < len(names) && names[i] != "" {
			text += "\n" + truncate(names[i], swatchWidth-2)
		}

		blocks[i] = lipgloss.NewStyle().
			Background(lipgloss.Color(c)).
			Foreground(lipgloss.Color(label)).
			Width(swatchWidth).
			Height(3).
			Align(lipgloss.Center, lipgloss.Center).
			Render(text)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// RenderComment paints each #RRGGBB mention in the color it names
func RenderComment(comment string, st theme.State) string {
	var b strings.Builder
	for _, seg := range palette.HighlightSegments(comment) {
		if !seg.Hex {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(seg.Text)).
			Background(lipgloss.Color(st.Secondary)).
			Bold(true).
			Render(seg.Text))
	}
	return b.String()
}

// RenderPaletteList draws saved palettes as numbered rows of small chips
func RenderPaletteList(palettes []palette.Palette) string {
	if len(palettes) == 0 {
		return StyleMuted.Render("No saved palettes yet. Generate one with --save.")
	}

	rows := make([]string, len(palettes))
	for i, p := range palettes {
		var chips strings.Builder
		for _, c := range p.Colors {
			chips.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(c)).Render("    "))
		}
		rows[i] = fmt.Sprintf("%s %s %s",
			StyleMuted.Render(fmt.Sprintf("%3d", i)),
			chips.String(),
			StyleLabel.Render(p.Name))
	}
	return strings.Join(rows, "\n")
}

func themeSummary(st theme.State) string {
	if st.Mode == st.Auto {
		return fmt.Sprintf("%s theme (auto) • contrast %.2f:1", st.Mode, st.Contrast)
	}
	return fmt.Sprintf("%s theme (auto: %s) • contrast %.2f:1", st.Mode, st.Auto, st.Contrast)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
