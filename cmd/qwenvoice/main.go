package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/qwenvoice/qwenvoice/internal/asr"
	"github.com/qwenvoice/qwenvoice/internal/audio"
	"github.com/qwenvoice/qwenvoice/internal/config"
	"github.com/qwenvoice/qwenvoice/internal/models/qwen"
	"github.com/qwenvoice/qwenvoice/internal/pipeline"
	"github.com/qwenvoice/qwenvoice/internal/provider"
	"github.com/qwenvoice/qwenvoice/internal/transcriber"
	"github.com/qwenvoice/qwenvoice/internal/tui"
)

// set via -ldflags at build time
var version = "dev"

func main() {
	_ = rootCmd.Execute()
}

var rootCmd = &cobra.Command{
	Use:   "qwenvoice",
	Short: "Local speech-to-text with Qwen3-ASR",
}

func init() {
	rootCmd.AddCommand(
		transcribeCmd(),
		watchCmd(),
		modelCmd(),
		configureCmd(),
		versionCmd(),
	)
}

func transcribeCmd() *cobra.Command {
	var stream bool
	var modelID string
	var modelPath string
	var threads int

	cmd := &cobra.Command{
		Use:   "transcribe <audio.wav>",
		Short: "Transcribe a WAV file (16 kHz mono)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runTranscribe(ctx, args[0], stream, modelID, modelPath, threads)
		},
	}

	cmd.Flags().BoolVar(&stream, "stream", false, "print tokens as they are decoded")
	cmd.Flags().StringVar(&modelID, "model", "", "override the configured model id")
	cmd.Flags().StringVar(&modelPath, "model-path", "", "override with an explicit .gguf path")
	cmd.Flags().IntVar(&threads, "threads", -1, "override CPU thread count (0 = engine default)")

	return cmd
}

func runTranscribe(ctx context.Context, wavPath string, stream bool, modelID, modelPath string, threads int) error {
	appCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if modelID != "" {
		appCfg.Model.ID = modelID
		appCfg.Model.Path = ""
	}
	if modelPath != "" {
		appCfg.Model.Path = modelPath
	}
	if threads >= 0 {
		appCfg.Transcription.Threads = threads
	}

	cfg, err := transcriber.ConfigFrom(appCfg)
	if err != nil {
		return err
	}

	adapter, err := transcriber.New(cfg)
	if err != nil {
		return err
	}
	defer adapter.Close()

	samples, err := audio.LoadWAV(wavPath)
	if err != nil {
		return fmt.Errorf("failed to load audio: %w", err)
	}

	if stream {
		sa, ok := adapter.(transcriber.StreamingAdapter)
		if !ok {
			return fmt.Errorf("provider %s does not support streaming", cfg.Provider)
		}
		_, err := sa.TranscribeStreaming(ctx, samples, func(token string) {
			fmt.Print(token)
		})
		fmt.Println()
		if err != nil {
			return fmt.Errorf("transcription failed: %w", err)
		}
		return nil
	}

	text, err := adapter.Transcribe(ctx, samples)
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}
	fmt.Println(text)
	return nil
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <directory>",
		Short: "Watch a directory and transcribe incoming WAV files",
		Long: `Watch a directory for WAV files and write a .txt transcript next to
each one. Files already present are transcribed first. Edits to the
config file are picked up without restarting the watch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, args[0])
		},
	}
}

func runWatch(ctx context.Context, dir string) error {
	mgr, err := config.NewManager()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := mgr.StartWatching(ctx); err != nil {
		return fmt.Errorf("failed to watch config: %w", err)
	}
	defer mgr.Stop()

	cfg, err := transcriber.ConfigFrom(mgr.GetConfig())
	if err != nil {
		return err
	}
	adapter, err := transcriber.New(cfg)
	if err != nil {
		return err
	}
	defer adapter.Close()

	p := pipeline.New(dir, adapter)
	if err := p.Run(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	p.Stop()
	return nil
}

func configureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Interactive configuration setup",
		Long: `Interactive configuration wizard for qwenvoice.
This will guide you through setting up:
- Transcription provider (local Qwen3-ASR or OpenAI)
- Model selection and decoding settings
- Provider API keys`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure()
		},
	}
}

func runConfigure() error {
	// Load existing config or create default
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Run TUI wizard
	result, err := tui.Run(cfg)
	if err != nil {
		return fmt.Errorf("configuration wizard error: %w", err)
	}

	if result.Cancelled {
		fmt.Println(tui.StyleWarning.Render("Configuration cancelled."))
		return nil
	}

	// Validate configuration
	if err := result.Config.Validate(); err != nil {
		fmt.Println(tui.StyleError.Render(fmt.Sprintf("Configuration validation failed: %v", err)))
		return err
	}

	// Save configuration
	if err := config.Save(result.Config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println(tui.StyleSuccess.Render("Configuration saved successfully!"))
	fmt.Println()

	showNextSteps(result.Config)
	return nil
}

func showNextSteps(cfg *config.Config) {
	fmt.Println(tui.StyleMuted.Render("Next Steps:"))
	step := 1
	if cfg.Transcription.Provider == provider.ProviderLocal {
		id := cfg.Model.ID
		if id == "" {
			id = qwen.DefaultModelID
		}
		if cfg.Model.Path == "" && !qwen.IsInstalled(id) {
			fmt.Printf("%d. Download the model: qwenvoice model download %s\n", step, id)
			step++
		}
	}
	fmt.Printf("%d. Transcribe a file: qwenvoice transcribe recording.wav\n", step)
	fmt.Println()

	configPath, _ := config.GetConfigPath()
	fmt.Println(tui.StyleSubtle.Render(fmt.Sprintf("Config file location: %s", configPath)))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and backend information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("qwenvoice %s\n", version)
			if asr.NativeAvailable() {
				fmt.Println("backend: native (qwen3-asr.cpp)")
			} else {
				fmt.Println("backend: stub (built without qwenasr)")
			}
			return nil
		},
	}
}

func modelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage transcription models",
	}

	cmd.AddCommand(modelListCmd())
	cmd.AddCommand(modelDownloadCmd())
	cmd.AddCommand(modelRemoveCmd())

	return cmd
}

func modelListCmd() *cobra.Command {
	var providerFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available transcription models",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModelList(providerFilter)
		},
	}

	cmd.Flags().StringVar(&providerFilter, "provider", "", "filter by provider name")

	return cmd
}

func runModelList(providerFilter string) error {
	providerNames := provider.ListProviders()
	sort.Strings(providerNames)

	if providerFilter != "" {
		found := false
		for _, name := range providerNames {
			if name == providerFilter {
				providerNames = []string{name}
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown provider: %s", providerFilter)
		}
	}

	for _, providerName := range providerNames {
		p := provider.GetProvider(providerName)
		if p == nil {
			continue
		}

		models := p.Models()
		if len(models) == 0 {
			continue
		}

		fmt.Printf("\n%s:\n", providerName)
		for _, m := range models {
			printModelLine(m)
		}
	}

	fmt.Println()
	return nil
}

func printModelLine(m provider.Model) {
	// checkmark for installed local models
	prefix := "  "
	if m.Local {
		if qwen.IsInstalled(m.ID) {
			prefix = "  [x]"
		} else {
			prefix = "  [ ]"
		}
	}

	var parts []string
	if m.SupportsBothModes() {
		parts = append(parts, "batch+streaming")
	} else if m.SupportsStreaming {
		parts = append(parts, "streaming")
	}
	if m.LocalInfo != nil && m.LocalInfo.Size != "" {
		parts = append(parts, m.LocalInfo.Size)
	}

	line := fmt.Sprintf("%s %s", prefix, m.ID)
	if m.Description != "" {
		line += fmt.Sprintf(" - %s", m.Description)
	}
	if len(parts) > 0 {
		line += fmt.Sprintf(" [%s]", strings.Join(parts, ", "))
	}

	fmt.Println(line)
}

func modelDownloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download <model-id>",
		Short: "Download a local model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runModelDownload(ctx, args[0])
		},
	}
}

func runModelDownload(ctx context.Context, modelID string) error {
	model, _ := provider.FindModelByID(modelID)
	if model == nil {
		return fmt.Errorf("unknown model: %s", modelID)
	}

	if !model.NeedsDownload() {
		fmt.Printf("model '%s' is a cloud model and does not require download\n", modelID)
		return nil
	}

	if qwen.IsInstalled(modelID) {
		fmt.Printf("model '%s' is already installed at %s\n", modelID, qwen.GetModelPath(modelID))
		return nil
	}

	fmt.Printf("downloading %s", modelID)
	if model.LocalInfo != nil && model.LocalInfo.Size != "" {
		fmt.Printf(" (%s)", model.LocalInfo.Size)
	}
	fmt.Println("...")

	var lastPercent int
	err := qwen.Download(ctx, modelID, func(downloaded, total int64) {
		if total > 0 {
			percent := int(downloaded * 100 / total)
			if percent >= lastPercent+10 {
				fmt.Printf("%d%% ", percent)
				lastPercent = percent
			}
		}
	})
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	fmt.Printf("\ndownload complete: %s\n", qwen.GetModelPath(modelID))
	return nil
}

func modelRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <model-id>",
		Short: "Remove a downloaded local model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModelRemove(args[0])
		},
	}
}

func runModelRemove(modelID string) error {
	model, _ := provider.FindModelByID(modelID)
	if model == nil {
		return fmt.Errorf("unknown model: %s", modelID)
	}

	if !model.NeedsDownload() {
		fmt.Printf("model '%s' is a cloud model, nothing to remove\n", modelID)
		return nil
	}

	if !qwen.IsInstalled(modelID) {
		return fmt.Errorf("model '%s' is not installed", modelID)
	}

	if err := qwen.Remove(modelID); err != nil {
		return fmt.Errorf("failed to remove model: %w", err)
	}

	fmt.Printf("model '%s' removed successfully\n", modelID)
	return nil
}
