package tui

import (
	"context"
	"math/rand/v2"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"github.com/mattn/go-isatty"
)

var loadingMessages = []string{
	"Finding the right hue...",
	"Adding a splash of excitement...",
	"Mixing perfect shades...",
	"Coordinating the universe...",
	"Building your color scheme...",
	"Crafting the ideal palette...",
	"Discovering vibrant colors...",
	"Perfecting hues and tones...",
	"Synchronizing colors...",
	"Brightening your day...",
	"Finding the perfect mix...",
	"Bringing color to life...",
	"Teaching machines to love color...",
	"Organizing crayons...",
	"Fighting off color-stealing robots...",
	"Racing unicorns for color supremacy...",
	"Installing rainbow lasers...",
	"Finding lucky color socks...",
	"Fine-tuning color sensors...",
	"Reinventing the color wheel...",
	"Teleporting rainbows...",
	"Battling color dragons...",
	"Inventing new colors...",
	"Sculpting with light...",
	"Dancing with the color spectrum...",
	"Decoding the color universe...",
	"Getting inspired by Van Gogh...",
	"Painting like Picasso in pixels...",
	"Bringing Monet's hues to life...",
	"Emulating Warhol's pop...",
	"Translating Mondrian's blocks...",
	"Channelling Klimt's golden tones...",
	"Resurrecting Rothko's color fields...",
	"Recreating Hockney's swimming pools...",
}

// LoadingMessage picks a message for the spinner title
func LoadingMessage(rng *rand.Rand) string {
	if rng == nil {
		return loadingMessages[rand.IntN(len(loadingMessages))]
	}
	return loadingMessages[rng.IntN(len(loadingMessages))]
}

// WithSpinner runs action while showing a spinner with a random loading message.
// The action's error is returned; ctrl+c cancels ctx for the action.
// Without a terminal the action simply runs.
func WithSpinner(ctx context.Context, action func(ctx context.Context) error) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return action(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var actionErr error
	err := spinner.New().
		Title(LoadingMessage(nil)).
		Context(ctx).
		Action(func() {
			actionErr = action(ctx)
		}).
		Run()
	if err != nil {
		cancel()
		return err
	}
	return actionErr
}
