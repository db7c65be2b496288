// Package theme derives a legible UI theme from an arbitrary, untrusted palette.
package theme

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/leonardotrapani/hueprompt/internal/palette"
	"github.com/samber/lo"
)

// Mode is the discrete styling policy for the UI.
type Mode string

const (
	Standard Mode = "standard"
	Dark     Mode = "dark"
	Styled   Mode = "styled"
)

// ParseMode maps a user supplied name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Standard:
		return Standard, nil
	case Dark:
		return Dark, nil
	case Styled:
		return Styled, nil
	}
	return "", fmt.Errorf("invalid theme mode: %s (must be standard, dark, or styled)", s)
}

// Thresholds used by the engine.
const (
	ContrastThreshold = 4.5
	darkClamp         = 200.0
	brightClamp       = 180.0
	labelDarkAbove    = 215.0
	labelBrightBelow  = 120.0
)

// Fixed colors.
const (
	Black         palette.Color = "#000000"
	White         palette.Color = "#FFFFFF"
	NeutralAccent palette.Color = "#808080"
	NeutralLabel  palette.Color = "#F0F0F0"
)

// Colors are the four theme roles.
type Colors struct {
	Text       palette.Color
	Background palette.Color
	Secondary  palette.Color
	Accent     palette.Color
}

var (
	standardColors = Colors{Text: "#1A1A1A", Background: "#FAFAFA", Secondary: "#EFEFEF", Accent: "#E2E2E2"}
	darkColors     = Colors{Text: "#F2F2F2", Background: "#121212", Secondary: "#1F1F1F", Accent: "#2C2C2C"}
)

// State is a complete theme computed from one palette.
type State struct {
	Mode Mode
	// Auto is the mode selected from contrast alone, before any override.
	Auto Mode
	Colors

	// Labels holds one legible label color per palette entry.
	Labels []palette.Color

	Darkest   palette.Color
	Brightest palette.Color
	Contrast  float64

	drawnAccent palette.Color
}

// WithMode returns a copy of s re-derived for mode m. The drawn accent is kept.
func (s State) WithMode(m Mode) State {
	out := s
	out.Labels = slices.Clone(s.Labels)
	out.Mode = m
	if m == Styled && !s.styleable() {
		out.Mode = Standard
	}
	out.Colors = s.derive(out.Mode)
	return out
}

// styleable reports whether both anchors are usable as theme colors.
func (s State) styleable() bool {
	return s.Darkest != "" && s.Brightest != ""
}

func (s State) derive(m Mode) Colors {
	switch m {
	case Dark:
		return darkColors
	case Styled:
		if !s.styleable() {
			return standardColors
		}
		return Colors{
			Text:       s.Darkest,
			Background: s.Brightest,
			Secondary:  s.Brightest,
			Accent:     s.drawnAccent,
		}
	default:
		return standardColors
	}
}

// Source is the random source used to draw the styled accent.
type Source interface {
	IntN(n int) int
}

// NewSeeded returns a deterministic Source.
func NewSeeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Engine computes theme states. It is not safe for concurrent use because
// the underlying Source is not.
type Engine struct {
	rng Source
}

// NewEngine creates an engine. A nil source is replaced by a time-seeded one.
func NewEngine(rng Source) *Engine {
	if rng == nil {
		rng = NewSeeded(uint64(time.Now().UnixNano()))
	}
	return &Engine{rng: rng}
}

// Compute derives the theme for colors. Mode is selected automatically and
// the styled accent is drawn afresh.
func (e *Engine) Compute(colors []palette.Color) State {
	brightness := lo.Map(colors, func(c palette.Color, _ int) float64 {
		return Brightness(c)
	})

	var s State
	distinct := lo.UniqBy(colors, colorKey)
	if len(distinct) < 2 {
		if len(colors) > 0 {
			s.Darkest = colors[0]
			s.Brightest = colors[0]
		}
		s.Contrast = 1
	} else {
		di, bi := 0, 0
		for i, b := range brightness {
			if b < brightness[di] {
				di = i
			}
			if b > brightness[bi] {
				bi = i
			}
		}
		s.Darkest = colors[di]
		s.Brightest = colors[bi]
		if brightness[di] > darkClamp {
			s.Darkest = Black
		}
		if brightness[bi] < brightClamp {
			s.Brightest = White
		}
		s.Contrast = ContrastRatio(s.Darkest, s.Brightest)
	}

	s.Labels = make([]palette.Color, len(colors))
	for i, b := range brightness {
		switch {
		case b > labelDarkAbove:
			s.Labels[i] = s.Darkest
		case b < labelBrightBelow:
			s.Labels[i] = s.Brightest
		default:
			s.Labels[i] = NeutralLabel
		}
	}

	s.drawnAccent = e.drawAccent(colors, s.Darkest, s.Brightest)

	s.Auto = Standard
	if s.Contrast > ContrastThreshold && s.styleable() {
		s.Auto = Styled
	}
	s.Mode = s.Auto
	s.Colors = s.derive(s.Mode)
	return s
}

func (e *Engine) drawAccent(colors []palette.Color, darkest, brightest palette.Color) palette.Color {
	dk, bk := colorKey(darkest), colorKey(brightest)
	candidates := lo.Filter(colors, func(c palette.Color, _ int) bool {
		k := colorKey(c)
		return k != dk && k != bk
	})
	if len(candidates) == 0 {
		return NeutralAccent
	}
	return candidates[e.rng.IntN(len(candidates))]
}

// Tracker holds the theme for the active palette and the user's manual
// mode override. A palette change always discards the override.
type Tracker struct {
	engine *Engine
	state  State
}

// NewTracker creates a tracker with an empty palette.
func NewTracker(engine *Engine) *Tracker {
	t := &Tracker{engine: engine}
	t.state = engine.Compute(nil)
	return t
}

// SetPalette recomputes the theme for colors, resetting any manual override.
func (t *Tracker) SetPalette(colors []palette.Color) State {
	t.state = t.engine.Compute(colors)
	return t.state
}

// Override forces mode m until the next SetPalette.
func (t *Tracker) Override(m Mode) State {
	t.state = t.state.WithMode(m)
	return t.state
}

// State returns the current theme.
func (t *Tracker) State() State {
	return t.state
}
