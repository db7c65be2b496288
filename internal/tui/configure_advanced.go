package tui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/leonardotrapani/hueprompt/internal/config"
)

// AdvancedSection represents a section in the advanced settings menu
type AdvancedSection string

const (
	AdvancedStorage    AdvancedSection = "storage"
	AdvancedCompletion AdvancedSection = "completion"
	AdvancedBack       AdvancedSection = "back"
)

// editAppearance edits the preview theme mode and color name lookups
func editAppearance(cfg *config.Config) error {
	mode := cfg.Theme.Mode
	if mode == "" {
		mode = "auto"
	}
	namesEnabled := cfg.ColorNames.Enabled
	endpoint := cfg.ColorNames.Endpoint
	cacheTTL := cfg.ColorNames.CacheTTL.String()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Preview Theme").
				Description("Auto picks a theme from each palette's contrast").
				Options(
					huh.NewOption("Auto", "auto"),
					huh.NewOption("Standard (light)", "standard"),
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Styled (palette colors)", "styled"),
				).
				Value(&mode),
			huh.NewConfirm().
				Title("Look up color names?").
				Description("Names are fetched once per color and cached").
				Value(&namesEnabled),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Color Name Service").
				Placeholder(config.DefaultColorNamesEndpoint).
				Value(&endpoint),
			huh.NewInput().
				Title("Cache Lifetime").
				Description("How long looked up names are kept (e.g., '720h')").
				Placeholder("720h").
				Value(&cacheTTL).
				Validate(validateDuration),
		).WithHideFunc(func() bool { return !namesEnabled }),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Theme.Mode = mode
	cfg.ColorNames.Enabled = namesEnabled
	if endpoint == "" {
		endpoint = config.DefaultColorNamesEndpoint
	}
	cfg.ColorNames.Endpoint = endpoint
	cfg.ColorNames.CacheTTL, _ = time.ParseDuration(cacheTTL)

	return nil
}

// editAdvanced handles the advanced settings submenu
func editAdvanced(cfg *config.Config) error {
	for {
		options := []huh.Option[AdvancedSection]{
			huh.NewOption(formatAdvancedStorageLabel(cfg), AdvancedStorage),
			huh.NewOption(formatAdvancedCompletionLabel(cfg), AdvancedCompletion),
			huh.NewOption("Back to Main Menu", AdvancedBack),
		}

		var selected AdvancedSection
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[AdvancedSection]().
					Title("Advanced Settings").
					Description("Configure low-level options").
					Options(options...).
					Value(&selected),
			),
		).WithTheme(getTheme())

		if err := form.Run(); err != nil {
			return err
		}

		switch selected {
		case AdvancedBack:
			return nil
		case AdvancedStorage:
			if err := editStorage(cfg); err != nil {
				continue
			}
		case AdvancedCompletion:
			if err := editCompletion(cfg); err != nil {
				continue
			}
		}
	}
}

func formatAdvancedStorageLabel(cfg *config.Config) string {
	path := cfg.Storage.Path
	if path == "" {
		path = "config dir"
	}
	return fmt.Sprintf("Storage (%s, %s)", cfg.Storage.Backend, path)
}

func formatAdvancedCompletionLabel(cfg *config.Config) string {
	return fmt.Sprintf("Completion (temperature=%.1f, max_tokens=%d, timeout=%s)",
		cfg.Generation.Temperature, cfg.Generation.MaxTokens, cfg.Generation.Timeout)
}

// editStorage handles where saved palettes live
func editStorage(cfg *config.Config) error {
	backend := cfg.Storage.Backend
	if backend == "" {
		backend = "file"
	}
	path := cfg.Storage.Path

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Storage Backend").
				Options(
					huh.NewOption("JSON file - Recommended", "file"),
					huh.NewOption("SQLite database", "sqlite"),
				).
				Value(&backend),
			huh.NewInput().
				Title("Directory").
				Description("Where saved palettes are kept. Empty = config directory.").
				Placeholder("(default)").
				Value(&path),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Storage.Backend = backend
	cfg.Storage.Path = path
	return nil
}

// editCompletion handles the completion request tuning
func editCompletion(cfg *config.Config) error {
	temperature := strconv.FormatFloat(cfg.Generation.Temperature, 'f', -1, 64)
	maxTokens := strconv.Itoa(cfg.Generation.MaxTokens)
	timeout := cfg.Generation.Timeout.String()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Temperature").
				Description("Sampling temperature between 0 and 2. Higher = more adventurous palettes.").
				Placeholder("0.8").
				Value(&temperature).
				Validate(func(s string) error {
					f, err := strconv.ParseFloat(s, 64)
					if err != nil {
						return fmt.Errorf("must be a number")
					}
					if f < 0 || f > 2 {
						return fmt.Errorf("must be between 0 and 2")
					}
					return nil
				}),
			huh.NewInput().
				Title("Max Tokens").
				Description("Upper bound on the response length.").
				Placeholder("120").
				Value(&maxTokens).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil {
						return fmt.Errorf("must be a number")
					}
					if n <= 0 {
						return fmt.Errorf("must be positive")
					}
					return nil
				}),
			huh.NewInput().
				Title("Request Timeout").
				Description("Give up on a generation after this long (e.g., '30s', '1m').").
				Placeholder("30s").
				Value(&timeout).
				Validate(validateDuration),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Generation.Temperature, _ = strconv.ParseFloat(temperature, 64)
	cfg.Generation.MaxTokens, _ = strconv.Atoi(maxTokens)
	cfg.Generation.Timeout, _ = time.ParseDuration(timeout)

	return nil
}

func validateDuration(s string) error {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration format (use '30s', '2m', etc.)")
	}
	if d <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}
