package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/leonardotrapani/hueprompt/internal/config"
	"github.com/leonardotrapani/hueprompt/internal/llm"
	"github.com/leonardotrapani/hueprompt/internal/provider"
)

// editGeneration picks the provider, its model and, for self-hosted services, the endpoint
func editGeneration(cfg *config.Config, keyringKeys map[string]string) error {
	selectedProvider := cfg.Generation.Provider

	var providerOptions []huh.Option[string]
	for _, name := range provider.ListProviders() {
		providerOptions = append(providerOptions, huh.NewOption(getProviderDisplayName(name), name))
	}

	providerDesc := "Choose which service generates palettes"
	if cfg.Generation.Provider != "" {
		providerDesc = fmt.Sprintf("Currently: %s/%s", cfg.Generation.Provider, cfg.Generation.Model)
	}

	providerForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Generation Provider").
				Description(providerDesc).
				Options(providerOptions...).
				Value(&selectedProvider),
		),
	).WithTheme(getTheme())

	if err := providerForm.Run(); err != nil {
		return err
	}

	p := provider.GetProvider(selectedProvider)
	if p == nil {
		return fmt.Errorf("unknown provider %s", selectedProvider)
	}

	if p.RequiresAPIKey() && keySource(cfg, keyringKeys, selectedProvider) == "" {
		if err := configureSingleProvider(cfg, keyringKeys, selectedProvider); err != nil {
			return err
		}
	}

	if selectedProvider != cfg.Generation.Provider {
		cfg.Generation.Model = p.DefaultModel()
	}
	cfg.Generation.Provider = selectedProvider

	if modelOptions := getModelOptions(selectedProvider); len(modelOptions) > 0 {
		selectedModel := cfg.Generation.Model
		if selectedModel == "" {
			selectedModel = modelOptions[0].Value
		}

		modelForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Model").
					Options(modelOptions...).
					Value(&selectedModel),
			),
		).WithTheme(getTheme())

		if err := modelForm.Run(); err != nil {
			return err
		}
		cfg.Generation.Model = selectedModel
	}

	endpointDesc := "Optional base URL override"
	if p.RequiresEndpoint() {
		endpointDesc = `URL accepting POST {"prompt": "..."}`
	}

	endpoint := cfg.Generation.Endpoint
	endpointForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Endpoint").
				Description(endpointDesc).
				Value(&endpoint).
				Validate(func(s string) error {
					if p.RequiresEndpoint() && s == "" {
						return fmt.Errorf("endpoint is required for %s", p.DisplayName())
					}
					return nil
				}),
		),
	).WithTheme(getTheme())

	if err := endpointForm.Run(); err != nil {
		return err
	}
	cfg.Generation.Endpoint = endpoint

	return nil
}

// editPrompt edits how palettes are requested: size, commentary style and composition
func editPrompt(cfg *config.Config) error {
	numColors := cfg.Generation.NumColors
	discussion := cfg.Generation.Discussion
	if d, err := llm.ParseDiscussion(discussion); err == nil {
		discussion = string(d)
	}
	composition := cfg.Generation.Composition
	if c, err := llm.ParseComposition(composition); err == nil {
		composition = string(c)
	}
	sentences := strconv.Itoa(cfg.Generation.Sentences)

	colorOptions := make([]huh.Option[int], 0, llm.MaxColors)
	for n := llm.MinColors; n <= llm.MaxColors; n++ {
		colorOptions = append(colorOptions, huh.NewOption(fmt.Sprintf("%d colors", n), n))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Palette Size").
				Options(colorOptions...).
				Value(&numColors),
			huh.NewSelect[string]().
				Title("Commentary").
				Description("What the model writes after the colors").
				Options(
					huh.NewOption("Plain - discuss the palette", string(llm.DiscussionPlain)),
					huh.NewOption("Critique - an artistic critique", string(llm.DiscussionCritique)),
					huh.NewOption("Humorous - a stand-up bit", string(llm.DiscussionHumorous)),
				).
				Value(&discussion),
			huh.NewSelect[string]().
				Title("Composition").
				Options(
					huh.NewOption("Artistically composed", string(llm.CompositionArtistic)),
					huh.NewOption("Professionally composed", string(llm.CompositionProfessional)),
					huh.NewOption("No preference", string(llm.CompositionNone)),
				).
				Value(&composition),
			huh.NewInput().
				Title("Commentary Length").
				Description("Roughly how many sentences (0 = let the model decide, max 6)").
				Value(&sentences).
				Validate(validateSentences),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	n, _ := strconv.Atoi(sentences)
	cfg.Generation.NumColors = numColors
	cfg.Generation.Discussion = discussion
	cfg.Generation.Composition = composition
	cfg.Generation.Sentences = n
	return nil
}

func validateSentences(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if n < 0 || n > 6 {
		return fmt.Errorf("must be between 0 and 6")
	}
	return nil
}
