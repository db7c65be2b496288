package llm

import (
	"fmt"
	"strings"
)

// Discussion selects the tone of the commentary requested after the colors
type Discussion string

const (
	DiscussionPlain    Discussion = "plain"
	DiscussionCritique Discussion = "critique"
	DiscussionHumorous Discussion = "humorous"
)

// Composition qualifies how the palette should be composed
type Composition string

const (
	CompositionNone         Composition = "none"
	CompositionProfessional Composition = "professional"
	CompositionArtistic     Composition = "artistic"
)

// Color count and sentence count bounds
const (
	MinColors = 1
	MaxColors = 6
)

// GenerationConfig controls the palette prompt
type GenerationConfig struct {
	NumColors   int
	Discussion  Discussion
	Composition Composition
	// Sentences asks for roughly this many sentences of commentary; 0 leaves it open
	Sentences int
}

// DefaultGenerationConfig returns the settings used when nothing is configured
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		NumColors:   5,
		Discussion:  DiscussionPlain,
		Composition: CompositionArtistic,
	}
}

// Winsorize clamps n into [lo, hi]
func Winsorize(n, lo, hi int) int {
	if n > hi {
		n = hi
	}
	if n < lo {
		n = lo
	}
	return n
}

// ParseDiscussion maps a config value to a Discussion. The short keys
// "temp" and "jerry" are accepted as aliases.
func ParseDiscussion(s string) (Discussion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain", "temp":
		return DiscussionPlain, nil
	case "critique":
		return DiscussionCritique, nil
	case "humorous", "jerry":
		return DiscussionHumorous, nil
	}
	return "", fmt.Errorf("invalid discussion style: %s (must be plain, critique, or humorous)", s)
}

// ParseComposition maps a config value to a Composition. "prof" is accepted
// as an alias for professional.
func ParseComposition(s string) (Composition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return CompositionNone, nil
	case "professional", "prof":
		return CompositionProfessional, nil
	case "", "artistic":
		return CompositionArtistic, nil
	}
	return "", fmt.Errorf("invalid composition style: %s (must be none, professional, or artistic)", s)
}

func compositionPhrase(c Composition) string {
	switch c {
	case CompositionProfessional:
		return "professionally composed"
	case CompositionArtistic:
		return "artistically composed"
	}
	return ""
}

func discussionPhrase(d Discussion) string {
	switch d {
	case DiscussionCritique:
		return "write a brief artistic critique of this color palette and its composition"
	case DiscussionHumorous:
		return "do a funny yet insightful stand-up comedy bit about the palette"
	}
	return "briefly discuss aspects of the palette with respect to the prompt"
}

// BuildPalettePrompt generates the single instruction sent to the generation service:
// a comma-delimited hex list sized to cfg.NumColors, a semicolon, then commentary
func BuildPalettePrompt(query string, cfg GenerationConfig) string {
	numColors := Winsorize(cfg.NumColors, MinColors, MaxColors)

	var b strings.Builder
	b.WriteString("a ")
	if phrase := compositionPhrase(cfg.Composition); phrase != "" {
		b.WriteString(phrase)
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "%d-color color palette for %s", numColors, query)
	b.WriteString(". First, output a comma-delimited list of hex codes. Then output a semicolon.")
	b.WriteString(" Next, ")
	b.WriteString(discussionPhrase(cfg.Discussion))
	if cfg.Sentences != 0 {
		fmt.Fprintf(&b, " in roughly %d sentences", Winsorize(cfg.Sentences, 1, 6))
	}
	b.WriteString(":")
	return b.String()
}
