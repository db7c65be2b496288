package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/leonardotrapani/hueprompt/internal/config"
)

// formatProvidersLabel formats the providers menu option
func formatProvidersLabel(cfg *config.Config) string {
	var configured int
	names := keyedProviders()
	for _, name := range names {
		if cfg.ResolveAPIKey(name) != "" {
			configured++
		}
	}
	return fmt.Sprintf("Providers (%d/%d keys)", configured, len(names))
}

// formatGenerationLabel formats the generation menu option
func formatGenerationLabel(cfg *config.Config) string {
	if cfg.Generation.Model == "" {
		return fmt.Sprintf("Generation (%s)", cfg.Generation.Provider)
	}
	return fmt.Sprintf("Generation (%s/%s)", cfg.Generation.Provider, cfg.Generation.Model)
}

// formatPromptLabel formats the prompt menu option
func formatPromptLabel(cfg *config.Config) string {
	return fmt.Sprintf("Prompt (%d colors, %s, %s)", cfg.Generation.NumColors, cfg.Generation.Discussion, cfg.Generation.Composition)
}

// formatAppearanceLabel formats the appearance menu option
func formatAppearanceLabel(cfg *config.Config) string {
	names := "off"
	if cfg.ColorNames.Enabled {
		names = "on"
	}
	return fmt.Sprintf("Appearance (theme=%s, names=%s)", cfg.Theme.Mode, names)
}

// formatNotificationsLabel formats the notifications menu option
func formatNotificationsLabel(cfg *config.Config) string {
	if !cfg.Notifications.Enabled {
		return "Notifications (disabled)"
	}
	return fmt.Sprintf("Notifications (%s)", cfg.Notifications.Type)
}

func showSummary(cfg *config.Config, keyringKeys map[string]string) (bool, error) {
	fmt.Println()
	fmt.Println(StyleHeader.Render("Configuration Summary"))
	fmt.Println()

	var keys []string
	for _, name := range keyedProviders() {
		if source := keySource(cfg, keyringKeys, name); source != "" {
			keys = append(keys, fmt.Sprintf("%s (%s)", name, source))
		}
	}
	if len(keys) == 0 {
		keys = append(keys, "none")
	}
	fmt.Printf("  %s %s\n", StyleLabel.Render("API keys:"), strings.Join(keys, ", "))

	fmt.Printf("  %s %s (%s)\n", StyleLabel.Render("Generation:"), cfg.Generation.Provider, cfg.Generation.Model)
	if cfg.Generation.Endpoint != "" {
		fmt.Printf("  %s %s\n", StyleLabel.Render("Endpoint:"), cfg.Generation.Endpoint)
	}
	fmt.Printf("  %s %d colors, %s commentary, %s composition\n", StyleLabel.Render("Prompt:"),
		cfg.Generation.NumColors, cfg.Generation.Discussion, cfg.Generation.Composition)
	fmt.Printf("  %s %s\n", StyleLabel.Render("Theme:"), cfg.Theme.Mode)

	if cfg.ColorNames.Enabled {
		fmt.Printf("  %s %s\n", StyleLabel.Render("Color names:"), cfg.ColorNames.Endpoint)
	} else {
		fmt.Printf("  %s disabled\n", StyleLabel.Render("Color names:"))
	}

	fmt.Printf("  %s %s\n", StyleLabel.Render("Storage:"), cfg.Storage.Backend)

	if cfg.Notifications.Enabled {
		fmt.Printf("  %s enabled\n", StyleLabel.Render("Notifications:"))
	} else {
		fmt.Printf("  %s disabled\n", StyleLabel.Render("Notifications:"))
	}

	_, pending := keyringKeys[cfg.Generation.Provider]
	if err := cfg.Validate(); err != nil && !pending {
		fmt.Println()
		fmt.Println(StyleWarning.Render("  Warning: " + err.Error()))
	}

	fmt.Println()

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save this configuration?").
				Affirmative("Save").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirmed, nil
}
