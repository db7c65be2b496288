package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/charmbracelet/huh"
	"github.com/leonardotrapani/hueprompt/internal/clipboard"
	"github.com/leonardotrapani/hueprompt/internal/colorname"
	"github.com/leonardotrapani/hueprompt/internal/notify"
	"github.com/leonardotrapani/hueprompt/internal/palette"
	"github.com/leonardotrapani/hueprompt/internal/session"
	"github.com/leonardotrapani/hueprompt/internal/store"
	"github.com/leonardotrapani/hueprompt/internal/theme"
)

// ErrEmptyPalette is returned when saving or copying with no active palette
var ErrEmptyPalette = errors.New("no palette to work with yet")

// Action is one entry of the interactive menu
type Action string

const (
	ActionGenerate Action = "generate"
	ActionSave     Action = "save"
	ActionCopyHex  Action = "copy_hex"
	ActionCopyCSS  Action = "copy_css"
	ActionTheme    Action = "theme"
	ActionLoad     Action = "load"
	ActionQuit     Action = "quit"
)

// App is the interactive palette explorer: a query prompt, the active palette
// preview and the saved palette list
type App struct {
	Session   *session.Session
	Store     *store.Store
	Tracker   *theme.Tracker
	Clipboard *clipboard.Clipboard
	Names     *colorname.Client // nil disables color names

	mu        sync.Mutex
	messenger *notify.Messenger
	names     []string
	status    string
}

// NewApp wires the interactive explorer
func NewApp(sess *session.Session, st *store.Store, tracker *theme.Tracker, cb *clipboard.Clipboard, messenger *notify.Messenger) *App {
	if messenger == nil {
		messenger = notify.NewMessenger(notify.Nop{}, nil)
	}
	return &App{
		Session:   sess,
		Store:     st,
		Tracker:   tracker,
		Clipboard: cb,
		messenger: messenger,
	}
}

// SetMessenger replaces the notification messenger, e.g. after a config reload
func (a *App) SetMessenger(m *notify.Messenger) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messenger = m
}

func (a *App) notify(t notify.MessageType, detail string) {
	a.mu.Lock()
	m := a.messenger
	a.mu.Unlock()
	m.Send(t, detail)
}

// Run shows the menu until the user quits or cancels
func (a *App) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		clearScreen()
		fmt.Println(Logo())
		fmt.Println()
		fmt.Println(a.Render())
		if a.status != "" {
			fmt.Println()
			fmt.Println(a.status)
			a.status = ""
		}
		fmt.Println()

		action, err := a.selectAction()
		if err != nil {
			return nil
		}

		switch action {
		case ActionQuit:
			return nil
		case ActionGenerate:
			query, err := promptQuery(a.Session.State().Palette.Name)
			if err != nil || strings.TrimSpace(query) == "" {
				continue
			}
			a.setStatus(a.Generate(ctx, query))
		case ActionSave:
			a.setStatus(a.Save(ctx))
		case ActionCopyHex:
			a.setStatus(a.Copy(ctx, palette.FormatHex))
		case ActionCopyCSS:
			a.setStatus(a.Copy(ctx, palette.FormatCSS))
		case ActionTheme:
			mode, err := selectMode(a.Tracker.State())
			if err != nil {
				continue
			}
			a.Tracker.Override(mode)
		case ActionLoad:
			idx, err := selectSaved(a.Store.List())
			if err != nil || idx < 0 {
				continue
			}
			a.setStatus(a.Load(ctx, idx))
		}
	}
}

func (a *App) setStatus(msg string, err error) {
	if err != nil {
		a.status = StyleError.Render("✗ " + err.Error())
		return
	}
	a.status = StyleSuccess.Render("✓ " + msg)
}

// Render draws the active palette, or a hint when there is none yet
func (a *App) Render() string {
	p := a.Session.State().Palette
	if p.Empty() {
		return StyleSubtle.Render("Describe a mood, a place or an object to generate a palette.")
	}
	return RenderPalette(PaletteView{
		Palette: p,
		Theme:   a.Tracker.State(),
		Names:   a.names,
		Saved:   a.Store.Contains(p.Colors),
	})
}

// Generate runs one query behind the spinner and makes the result active
func (a *App) Generate(ctx context.Context, query string) (string, error) {
	var result session.Result
	err := WithSpinner(ctx, func(ctx context.Context) error {
		var err error
		result, err = a.Session.Generate(ctx, query)
		return err
	})
	if errors.Is(err, session.ErrStale) {
		return "", err
	}
	if err != nil {
		log.Printf("Interactive: generation failed: %v", err)
		a.notify(notify.MsgGenerationFailed, err.Error())
		return "", err
	}

	a.activate(ctx, result.Palette)
	a.notify(notify.MsgPaletteGenerated, result.Palette.Name)
	return fmt.Sprintf("Generated %d colors for %q", len(result.Palette.Colors), query), nil
}

// Save stores the active palette unless an equivalent one is already saved
func (a *App) Save(ctx context.Context) (string, error) {
	p := a.Session.State().Palette
	if p.Empty() {
		return "", ErrEmptyPalette
	}

	dup, err := a.Store.Add(ctx, p)
	if dup {
		a.notify(notify.MsgPaletteDuplicate, p.Name)
		return "Palette already saved", nil
	}
	if err != nil {
		return "", fmt.Errorf("save palette: %w", err)
	}
	a.notify(notify.MsgPaletteSaved, p.Name)
	return fmt.Sprintf("Saved %q", p.Name), nil
}

// Copy puts the active palette on the clipboard in the given format
func (a *App) Copy(ctx context.Context, format palette.Format) (string, error) {
	p := a.Session.State().Palette
	if p.Empty() {
		return "", ErrEmptyPalette
	}
	text, err := palette.Export(p, format)
	if err != nil {
		return "", err
	}
	method, err := a.Clipboard.Copy(ctx, text)
	if err != nil {
		return "", fmt.Errorf("copy to clipboard: %w", err)
	}
	a.notify(notify.MsgCopied, string(format))
	return fmt.Sprintf("Copied %s (%s)", format, method), nil
}

// Load makes the saved palette at idx the active one
func (a *App) Load(ctx context.Context, idx int) (string, error) {
	p, err := a.Store.Get(idx)
	if err != nil {
		return "", err
	}
	a.Session.Load(p)
	a.activate(ctx, p)
	return fmt.Sprintf("Loaded %q", p.Name), nil
}

// activate recomputes the theme (dropping any override) and looks up names
func (a *App) activate(ctx context.Context, p palette.Palette) {
	a.Tracker.SetPalette(p.Colors)
	a.names = nil
	if a.Names != nil {
		a.names = a.Names.Names(ctx, p.Colors)
	}
}

func (a *App) selectAction() (Action, error) {
	p := a.Session.State().Palette
	options := []huh.Option[Action]{
		huh.NewOption("New palette", ActionGenerate),
	}
	if !p.Empty() {
		saveLabel := "Save palette"
		if a.Store.Contains(p.Colors) {
			saveLabel = "Save palette (already saved)"
		}
		options = append(options,
			huh.NewOption(saveLabel, ActionSave),
			huh.NewOption("Copy hex codes", ActionCopyHex),
			huh.NewOption("Copy CSS variables", ActionCopyCSS),
			huh.NewOption(fmt.Sprintf("Theme (%s)", a.Tracker.State().Mode), ActionTheme),
		)
	}
	if a.Store.Len() > 0 {
		options = append(options, huh.NewOption(fmt.Sprintf("Saved palettes (%d)", a.Store.Len()), ActionLoad))
	}
	options = append(options, huh.NewOption("Quit", ActionQuit))

	var selected Action
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Action]().
				Title("What next?").
				Description("↑/↓ navigate • enter select • esc quit").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return selected, nil
}

func promptQuery(previous string) (string, error) {
	var query string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Palette for...").
				Placeholder(previous).
				Value(&query),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return query, nil
}

func selectMode(st theme.State) (theme.Mode, error) {
	mode := st.Mode
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[theme.Mode]().
				Title("Preview Theme").
				Description(fmt.Sprintf("Auto picked %s (contrast %.2f:1)", st.Auto, st.Contrast)).
				Options(
					huh.NewOption("Standard", theme.Standard),
					huh.NewOption("Dark", theme.Dark),
					huh.NewOption("Styled", theme.Styled),
				).
				Value(&mode),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return mode, nil
}

func selectSaved(palettes []palette.Palette) (int, error) {
	options := make([]huh.Option[int], 0, len(palettes)+1)
	for i, p := range palettes {
		options = append(options, huh.NewOption(fmt.Sprintf("%s  %s", p.Name, strings.Join(p.Colors, " ")), i))
	}
	options = append(options, huh.NewOption("Back", -1))

	idx := -1
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Saved Palettes").
				Options(options...).
				Value(&idx),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return -1, err
	}
	return idx, nil
}
