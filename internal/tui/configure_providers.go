package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/leonardotrapani/hueprompt/internal/config"
	"github.com/leonardotrapani/hueprompt/internal/provider"
)

// key storage choices
const (
	storeKeyring = "keyring"
	storeFile    = "file"
)

// editProviders handles the providers section edit with submenu
func editProviders(cfg *config.Config, keyringKeys map[string]string) error {
	for {
		var options []huh.Option[string]
		for _, name := range keyedProviders() {
			options = append(options, huh.NewOption(formatProviderOption(cfg, keyringKeys, name), name))
		}
		options = append(options, huh.NewOption("Done", "back"))

		var selected string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Provider Settings").
					Description("Select a provider to configure API key").
					Options(options...).
					Value(&selected),
			),
		).WithTheme(getTheme())

		if err := form.Run(); err != nil {
			return err
		}

		if selected == "back" {
			return nil
		}

		if err := configureSingleProvider(cfg, keyringKeys, selected); err != nil {
			continue
		}
	}
}

// formatProviderOption formats a provider menu option with status
func formatProviderOption(cfg *config.Config, keyringKeys map[string]string, name string) string {
	status := "(not configured)"
	if source := keySource(cfg, keyringKeys, name); source != "" {
		status = fmt.Sprintf("(%s)", source)
	}

	switch name {
	case provider.ProviderOpenAI:
		return fmt.Sprintf("OpenAI - GPT %s", status)
	case provider.ProviderGroq:
		return fmt.Sprintf("Groq - Llama %s", status)
	default:
		return fmt.Sprintf("%s %s", getProviderDisplayName(name), status)
	}
}

// configureSingleProvider asks whether to replace an existing key, reads the
// new one and records it in the chosen store
func configureSingleProvider(cfg *config.Config, keyringKeys map[string]string, providerName string) error {
	displayName := getProviderDisplayName(providerName)

	if existing := cfg.ResolveAPIKey(providerName); existing != "" {
		var update bool
		confirmForm := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("%s API Key", displayName)).
					Description(fmt.Sprintf("Current: %s (%s)", maskAPIKey(existing), keySource(cfg, keyringKeys, providerName))).
					Affirmative("Update key").
					Negative("Keep current").
					Value(&update),
			),
		).WithTheme(getTheme())

		if err := confirmForm.Run(); err != nil {
			return err
		}
		if !update {
			return nil
		}
	}

	apiKey, err := inputAPIKey(providerName)
	if err != nil {
		return err
	}

	store := storeKeyring
	storeForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should the key be kept?").
				Options(
					huh.NewOption("System keyring (recommended)", storeKeyring),
					huh.NewOption("Config file (plain text)", storeFile),
				).
				Value(&store),
		),
	).WithTheme(getTheme())

	if err := storeForm.Run(); err != nil {
		return err
	}

	applyAPIKey(cfg, keyringKeys, providerName, apiKey, store)
	return nil
}

// applyAPIKey records key for providerName in the keyring set or the config file, never both
func applyAPIKey(cfg *config.Config, keyringKeys map[string]string, providerName, key, store string) {
	if store == storeKeyring {
		keyringKeys[providerName] = key
		delete(cfg.Providers, providerName)
		return
	}
	delete(keyringKeys, providerName)
	cfg.Providers[providerName] = config.ProviderConfig{APIKey: key}
}

func inputAPIKey(providerName string) (string, error) {
	p := provider.GetProvider(providerName)
	displayName := getProviderDisplayName(providerName)

	desc := fmt.Sprintf("Enter your %s API key", displayName)
	if url := getProviderKeyURL(providerName); url != "" {
		desc += fmt.Sprintf(" (get one at %s)", url)
	}

	var apiKey string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("%s API Key", displayName)).
				Description(desc).
				EchoMode(huh.EchoModePassword).
				Value(&apiKey).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("API key is required")
					}
					if p != nil && !p.ValidateAPIKey(s) {
						return fmt.Errorf("invalid API key format for %s", displayName)
					}
					return nil
				}),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return "", err
	}

	return apiKey, nil
}
