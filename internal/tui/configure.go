package tui

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/qwenvoice/qwenvoice/internal/config"
	"github.com/qwenvoice/qwenvoice/internal/provider"
)

// ConfigureResult holds the configuration result from the TUI
type ConfigureResult struct {
	Config    *config.Config
	Cancelled bool
}

// Run starts the TUI configuration wizard
func Run(existingConfig *config.Config) (*ConfigureResult, error) {
	cfg := existingConfig
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	clearScreen()
	fmt.Println(Logo())
	fmt.Println()

	if err := selectProvider(cfg); err != nil {
		return &ConfigureResult{Cancelled: true}, nil
	}

	switch cfg.Transcription.Provider {
	case provider.ProviderLocal:
		if err := configureLocal(cfg); err != nil {
			return &ConfigureResult{Cancelled: true}, nil
		}
	case provider.ProviderOpenAI:
		if err := configureOpenAI(cfg); err != nil {
			return &ConfigureResult{Cancelled: true}, nil
		}
	}

	confirmed, err := showSummary(cfg)
	if err != nil || !confirmed {
		return &ConfigureResult{Cancelled: true}, nil
	}

	return &ConfigureResult{Config: cfg, Cancelled: false}, nil
}

func selectProvider(cfg *config.Config) error {
	options := make([]huh.Option[string], 0, 2)
	for _, name := range []string{provider.ProviderLocal, provider.ProviderOpenAI} {
		label := getProviderDisplayName(name)
		p := provider.GetProvider(name)
		if p != nil && p.RequiresAPIKey() && cfg.ResolveAPIKey(name) == "" {
			label += " (API key needed)"
		}
		options = append(options, huh.NewOption(label, name))
	}

	selected := cfg.Transcription.Provider
	if selected == "" {
		selected = provider.ProviderLocal
	}

	desc := "Choose which backend to use for speech-to-text"
	if cfg.Transcription.Provider != "" {
		desc = fmt.Sprintf("Currently: %s", cfg.Transcription.Provider)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Transcription Provider").
				Description(desc).
				Options(options...).
				Value(&selected),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Transcription.Provider = selected
	return nil
}

func configureLocal(cfg *config.Config) error {
	p := provider.GetProvider(provider.ProviderLocal)

	modelOptions := []huh.Option[string]{}
	for _, m := range p.Models() {
		modelOptions = append(modelOptions, huh.NewOption(m.ID+" - "+buildModelDesc(m), m.ID))
	}

	selectedModel := cfg.Model.ID
	if selectedModel == "" {
		selectedModel = p.DefaultModel()
	}

	streaming := cfg.Transcription.Streaming
	threads := strconv.Itoa(cfg.Transcription.Threads)
	useGPU := cfg.Transcription.UseGPU

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Local Model").
				Description("Models are downloaded with: qwenvoice model download <id>").
				Options(modelOptions...).
				Value(&selectedModel),
			huh.NewConfirm().
				Title("Streaming").
				Description("Emit tokens as they are decoded").
				Value(&streaming),
			huh.NewConfirm().
				Title("Use GPU").
				Description("Offload decoding to GPU when available").
				Value(&useGPU),
			huh.NewInput().
				Title("Threads").
				Description("CPU threads for decoding (0 = engine default)").
				Value(&threads).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 0 {
						return fmt.Errorf("enter a number >= 0")
					}
					return nil
				}),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Model.ID = selectedModel
	cfg.Transcription.Streaming = streaming
	cfg.Transcription.UseGPU = useGPU
	cfg.Transcription.Threads, _ = strconv.Atoi(threads)
	return nil
}

func configureOpenAI(cfg *config.Config) error {
	p := provider.GetProvider(provider.ProviderOpenAI)

	modelOptions := []huh.Option[string]{}
	for _, m := range p.Models() {
		modelOptions = append(modelOptions, huh.NewOption(m.ID+" - "+buildModelDesc(m), m.ID))
	}

	selectedModel := cfg.Transcription.Model
	if selectedModel == "" {
		selectedModel = p.DefaultModel()
	}

	apiKey := ""
	keyDesc := "Stored in config.toml (or leave empty to use OPENAI_API_KEY)"
	if existing := cfg.Providers["openai"].APIKey; existing != "" {
		keyDesc = fmt.Sprintf("Currently: %s. Leave empty to keep it", maskAPIKey(existing))
	}

	language := cfg.Transcription.Language

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Transcription Model").
				Options(modelOptions...).
				Value(&selectedModel),
			huh.NewInput().
				Title("API Key").
				Description(keyDesc).
				EchoMode(huh.EchoModePassword).
				Value(&apiKey),
			huh.NewInput().
				Title("Language").
				Description("ISO-639-1 code (e.g., 'en', 'es', 'fr') or empty for auto-detect").
				Placeholder("auto-detect").
				Value(&language),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Transcription.Model = selectedModel
	cfg.Transcription.Language = language
	if apiKey != "" {
		if cfg.Providers == nil {
			cfg.Providers = make(map[string]config.ProviderConfig)
		}
		cfg.Providers["openai"] = config.ProviderConfig{APIKey: apiKey}
	}
	return nil
}

func showSummary(cfg *config.Config) (bool, error) {
	summary := fmt.Sprintf("Provider: %s", getProviderDisplayName(cfg.Transcription.Provider))
	switch cfg.Transcription.Provider {
	case provider.ProviderLocal:
		summary += fmt.Sprintf("\nModel: %s\nStreaming: %v\nThreads: %d\nGPU: %v",
			cfg.Model.ID, cfg.Transcription.Streaming, cfg.Transcription.Threads, cfg.Transcription.UseGPU)
	case provider.ProviderOpenAI:
		summary += fmt.Sprintf("\nModel: %s\nLanguage: %s",
			cfg.Transcription.Model, orAuto(cfg.Transcription.Language))
	}

	confirmed := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save configuration?").
				Description(summary).
				Value(&confirmed),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

func orAuto(lang string) string {
	if lang == "" {
		return "auto-detect"
	}
	return lang
}

// clearScreen clears the terminal screen
func clearScreen() {
	output := termenv.NewOutput(os.Stdout)
	output.ClearScreen()
}

func getTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(ColorMuted)
	t.Focused.Base = lipgloss.NewStyle().BorderForeground(ColorPrimary)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(ColorSecondary)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(ColorText)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(ColorMuted)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(ColorSubtle)

	return t
}
