package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/leonardotrapani/hueprompt/internal/clipboard"
	"github.com/leonardotrapani/hueprompt/internal/config"
	"github.com/leonardotrapani/hueprompt/internal/deps"
	"github.com/leonardotrapani/hueprompt/internal/llm"
	"github.com/leonardotrapani/hueprompt/internal/notify"
	"github.com/leonardotrapani/hueprompt/internal/palette"
	"github.com/leonardotrapani/hueprompt/internal/provider"
	"github.com/leonardotrapani/hueprompt/internal/session"
	"github.com/leonardotrapani/hueprompt/internal/tui"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "hueprompt",
	Short: "Generate color palettes from a text prompt",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !verbose {
			log.SetOutput(io.Discard)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log what hueprompt is doing to stderr")
	rootCmd.AddCommand(
		generateCmd(),
		listCmd(),
		showCmd(),
		previewCmd(),
		exportCmd(),
		interactiveCmd(),
		configureCmd(),
		authCmd(),
		modelsCmd(),
		doctorCmd(),
		testModelsCmd(),
	)
}

func generateCmd() *cobra.Command {
	var (
		numColors   int
		discussion  string
		composition string
		save        bool
		mode        string
		names       bool
	)

	cmd := &cobra.Command{
		Use:   "generate <query...>",
		Short: "Generate a palette for a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			genCfg := cfg.ToGenerationConfig()
			if cmd.Flags().Changed("colors") {
				genCfg.NumColors = numColors
			}
			if discussion != "" {
				if genCfg.Discussion, err = llm.ParseDiscussion(discussion); err != nil {
					return err
				}
			}
			if composition != "" {
				if genCfg.Composition, err = llm.ParseComposition(composition); err != nil {
					return err
				}
			}

			sess := newSession(cfg)
			sess.SetConfig(genCfg)

			query := strings.Join(args, " ")
			var result session.Result
			err = tui.WithSpinner(cmd.Context(), func(ctx context.Context) error {
				var err error
				result, err = sess.Generate(ctx, query)
				return err
			})
			messenger := newMessenger(cfg)
			if err != nil {
				messenger.Send(notify.MsgGenerationFailed, err.Error())
				return fmt.Errorf("failed to generate palette: %w", err)
			}
			messenger.Send(notify.MsgPaletteGenerated, result.Palette.Name)

			st, closeStore, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			saved := st.Contains(result.Palette.Colors)
			if save && !saved {
				if _, err := st.Add(cmd.Context(), result.Palette); err != nil {
					return fmt.Errorf("failed to save palette: %w", err)
				}
				messenger.Send(notify.MsgPaletteSaved, result.Palette.Name)
				saved = true
			} else if save {
				fmt.Println(tui.StyleWarning.Render("Palette already saved."))
			}

			return printPalette(cmd.Context(), cfg, result.Palette, saved, mode, names, 0)
		},
	}

	cmd.Flags().IntVarP(&numColors, "colors", "n", 5, "number of colors (1-6)")
	cmd.Flags().StringVar(&discussion, "discussion", "", "commentary style: plain, critique, humorous")
	cmd.Flags().StringVar(&composition, "composition", "", "composition: none, professional, artistic")
	cmd.Flags().BoolVarP(&save, "save", "s", false, "save the palette")
	cmd.Flags().StringVar(&mode, "mode", "", "theme mode: auto, standard, dark, styled")
	cmd.Flags().BoolVar(&names, "names", false, "look up color names")

	return cmd
}

func printPalette(ctx context.Context, cfg *config.Config, p palette.Palette, saved bool, mode string, names bool, seed uint64) error {
	tracker := newTracker(seed)
	tracker.SetPalette(p.Colors)
	if err := applyMode(tracker, cfg, mode); err != nil {
		return err
	}

	fmt.Println(tui.RenderPalette(tui.PaletteView{
		Palette: p,
		Theme:   tracker.State(),
		Names:   namesFor(ctx, newNamer(cfg, names), p.Colors),
		Saved:   saved,
	}))
	return nil
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved palettes, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			st, closeStore, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			fmt.Println(tui.RenderPaletteList(st.List()))
			return nil
		},
	}
}

func parseIndex(arg string) (int, error) {
	idx, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: must be a number from 'hueprompt list'", arg)
	}
	return idx, nil
}

func showCmd() *cobra.Command {
	var (
		mode  string
		names bool
	)

	cmd := &cobra.Command{
		Use:   "show <index>",
		Short: "Show a saved palette",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			st, closeStore, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			p, err := st.Get(idx)
			if err != nil {
				return err
			}
			return printPalette(cmd.Context(), cfg, p, true, mode, names, 0)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "theme mode: auto, standard, dark, styled")
	cmd.Flags().BoolVar(&names, "names", false, "look up color names")

	return cmd
}

func previewCmd() *cobra.Command {
	var (
		mode string
		seed uint64
	)

	cmd := &cobra.Command{
		Use:   "preview <color...>",
		Short: "Preview the theme derived from any list of colors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			colors := make([]palette.Color, len(args))
			for i, a := range args {
				colors[i] = palette.Normalize(a)
			}
			p := palette.Palette{Name: "preview", Colors: colors}
			return printPalette(cmd.Context(), cfg, p, false, mode, false, seed)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "theme mode: auto, standard, dark, styled")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for the styled accent choice (0 = random)")

	return cmd
}

func exportCmd() *cobra.Command {
	var (
		format string
		copyIt bool
	)

	cmd := &cobra.Command{
		Use:   "export <index>",
		Short: "Print a saved palette as hex, CSS, JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			st, closeStore, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			p, err := st.Get(idx)
			if err != nil {
				return err
			}
			text, err := palette.Export(p, palette.Format(strings.ToLower(format)))
			if err != nil {
				return err
			}
			fmt.Println(text)

			if copyIt {
				method, err := clipboard.New(0, nil).Copy(cmd.Context(), text)
				if err != nil {
					return fmt.Errorf("failed to copy: %w", err)
				}
				newMessenger(cfg).Send(notify.MsgCopied, format)
				fmt.Fprintln(os.Stderr, tui.StyleSuccess.Render(fmt.Sprintf("Copied to clipboard (%s)", method)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "hex", "hex, css, json or yaml")
	cmd.Flags().BoolVarP(&copyIt, "copy", "c", false, "also copy to the clipboard")

	return cmd
}

func interactiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Explore palettes interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			mgr, err := config.NewManager()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg := mgr.Snapshot()

			st, closeStore, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			sess := newSession(cfg)
			app := tui.NewApp(sess, st, newTracker(0), clipboard.New(0, nil), newMessenger(cfg))
			app.Names = newNamer(cfg, false)

			mgr.OnReload(func(c *config.Config) {
				adapter, err := llm.NewAdapter(c.ToLLMConfig())
				if err != nil {
					log.Printf("Interactive: keeping previous generation service: %v", err)
				} else {
					sess.SetAdapter(adapter, c.Generation.Timeout)
				}
				sess.SetConfig(c.ToGenerationConfig())
				messenger := newMessenger(c)
				app.SetMessenger(messenger)
				messenger.Send(notify.MsgConfigReloaded, "")
			})
			if err := mgr.Watch(ctx); err != nil {
				log.Printf("Interactive: config hot reload disabled: %v", err)
			}
			defer mgr.Close()

			return app.Run(ctx)
		},
	}
}

func configureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Interactive configuration setup",
		Long: `Interactive configuration editor for hueprompt.
This will guide you through setting up:
- Provider API keys (OpenAI, Groq), kept in the system keyring or the config file
- The generation service, model and prompt style
- Preview theme and color names
- Notifications, storage and request limits`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure()
		},
	}
}

func runConfigure() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	result, err := tui.Run(cfg)
	if err != nil {
		return fmt.Errorf("configuration editor error: %w", err)
	}

	if result.Cancelled {
		fmt.Println("Configuration cancelled.")
		return nil
	}

	if err := result.Config.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	for name, key := range result.KeyringKeys {
		if err := config.SetAPIKey(name, key); err != nil {
			return fmt.Errorf("failed to store %s key in keyring: %w", name, err)
		}
	}

	if err := result.Config.Validate(); err != nil {
		fmt.Println(tui.StyleWarning.Render(fmt.Sprintf("Configuration saved with a problem: %v", err)))
	}

	fmt.Println()
	fmt.Println("Configuration saved successfully!")
	fmt.Println()

	configPath, _ := config.GetConfigPath()
	fmt.Printf("Config file location: %s\n", configPath)
	fmt.Println("Try it: hueprompt generate a rainy day in Tokyo")
	return nil
}

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage provider API keys in the system keyring",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <provider>",
		Short: "Store an API key (read from stdin or a prompt)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := provider.GetProvider(args[0])
			if p == nil {
				return fmt.Errorf("unknown provider: %s", args[0])
			}
			if !p.RequiresAPIKey() {
				return fmt.Errorf("%s does not use an API key", p.DisplayName())
			}

			key, err := readSecret(cmd.InOrStdin(), fmt.Sprintf("%s API key: ", p.DisplayName()))
			if err != nil {
				return err
			}
			if !p.ValidateAPIKey(key) {
				return fmt.Errorf("invalid API key format for %s", p.DisplayName())
			}
			if err := config.SetAPIKey(p.Name(), key); err != nil {
				return fmt.Errorf("failed to store key: %w", err)
			}
			fmt.Printf("%s key stored in the system keyring\n", p.DisplayName())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <provider>",
		Short: "Remove a stored API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if provider.GetProvider(args[0]) == nil {
				return fmt.Errorf("unknown provider: %s", args[0])
			}
			if err := config.DeleteAPIKey(args[0]); err != nil {
				return fmt.Errorf("failed to delete key: %w", err)
			}
			fmt.Printf("%s key removed from the system keyring\n", args[0])
			return nil
		},
	})

	return cmd
}

// readSecret reads one line from r, prompting on stderr first
func readSecret(r io.Reader, prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	var line string
	if _, err := fmt.Fscanln(r, &line); err != nil {
		return "", fmt.Errorf("failed to read key: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errors.New("empty key")
	}
	return line, nil
}

func modelsCmd() *cobra.Command {
	var providerFilter string

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List generation providers and their models",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModelList(cmd.OutOrStdout(), providerFilter)
		},
	}

	cmd.Flags().StringVar(&providerFilter, "provider", "", "filter by provider name")

	return cmd
}

func runModelList(w io.Writer, providerFilter string) error {
	providerNames := provider.ListProviders()

	if providerFilter != "" {
		if provider.GetProvider(providerFilter) == nil {
			return fmt.Errorf("unknown provider: %s", providerFilter)
		}
		providerNames = []string{providerFilter}
	}

	for _, providerName := range providerNames {
		p := provider.GetProvider(providerName)

		fmt.Fprintf(w, "\n%s:\n", providerName)
		if p.RequiresEndpoint() {
			fmt.Fprintln(w, "   (any model served by generation.endpoint)")
			continue
		}
		for _, m := range p.Models() {
			line := fmt.Sprintf("   %s", m.ID)
			if m.Description != "" {
				line += fmt.Sprintf(" - %s", m.Description)
			}
			if m.ID == p.DefaultModel() {
				line += " [default]"
			}
			fmt.Fprintln(w, line)
		}
	}

	fmt.Fprintln(w)
	return nil
}

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and optional tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := config.GetConfigPath()
			fmt.Printf("%s %s\n", tui.StyleLabel.Render("Config:"), configPath)

			cfg, err := config.Load()
			if err != nil {
				fmt.Println(tui.StyleError.Render("  ✗ " + err.Error()))
				return err
			}
			if err := cfg.Validate(); err != nil {
				fmt.Println(tui.StyleError.Render("  ✗ " + err.Error()))
			} else {
				fmt.Println(tui.StyleSuccess.Render("  ✓ valid"))
			}

			if dir, err := cfg.DataDir(); err == nil {
				fmt.Printf("%s %s (%s)\n", tui.StyleLabel.Render("Palettes:"), dir, cfg.Storage.Backend)
			}

			fmt.Println(tui.StyleLabel.Render("Optional tools:"))
			for _, s := range deps.CheckAll() {
				if s.Installed {
					fmt.Println(tui.StyleSuccess.Render(fmt.Sprintf("  ✓ %s", s.Name)) + tui.StyleMuted.Render(fmt.Sprintf("  %s", s.Version)))
				} else {
					fmt.Println(tui.StyleWarning.Render(fmt.Sprintf("  - %s not found", s.Name)) + tui.StyleMuted.Render(fmt.Sprintf("  (%s)", s.Purpose)))
				}
			}
			return nil
		},
	}
}
