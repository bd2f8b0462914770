// chatwithcat is the terminal client for the companion core: a conversational
// cat with voice capture, transcription, mood and spoken replies.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	orchestration "github.com/chatwithcat/companion-core/core"
	"github.com/chatwithcat/companion-core/core/audio/miniaudio"
	"github.com/chatwithcat/companion-core/core/dialogue"
	"github.com/chatwithcat/companion-core/core/dialogue/nebius"
	"github.com/chatwithcat/companion-core/core/speechtotext/deepgram"
	"github.com/chatwithcat/companion-core/core/speechtotext/whisper"
	"github.com/chatwithcat/companion-core/core/texttospeech/cartesia"
	"github.com/chatwithcat/companion-core/internal/config"
	"github.com/chatwithcat/companion-core/internal/prefs"
	"github.com/chatwithcat/companion-core/internal/tui"
)

var personaFlag string

var rootCmd = &cobra.Command{
	Use:   "chatwithcat [language]",
	Short: "Chat with Kat, a talking cat with moods",
	Long: `chatwithcat starts a conversation with Kat, a cat that listens,
talks back and changes mood as you chat. The optional language argument is
one of: french, english, spanish. Without it (or with an unknown value) a
selection screen is shown first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		language := ""
		if len(args) > 0 {
			language = args[0]
		}
		return run(language)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&personaFlag, "persona", "p", "", "persona: simple, funny or educational")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(languageArg string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	store, err := prefs.Load()
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	persona, err := resolvePersona(store)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var program *tea.Program
	var orchestrator *orchestration.Orchestrator

	start := func(language dialogue.Language) (*orchestration.Orchestrator, error) {
		orchestrator = buildOrchestrator(cfg, store, dialogue.PromptConfig{
			Language: language,
			Persona:  persona,
		})
		orchestrator.Orchestrate(ctx,
			orchestration.WithResponseCallback(func(string) {
				program.Send(tui.ConversationUpdated{})
			}),
			orchestration.WithResponseEndCallback(func(string) {
				program.Send(tui.ConversationUpdated{})
			}),
			orchestration.WithFailureCallback(func(string) {
				program.Send(tui.ConversationUpdated{})
			}),
			orchestration.WithCancellationCallback(func() {
				program.Send(tui.ConversationUpdated{})
			}),
			orchestration.WithTranscriptionCallback(func(string) {
				program.Send(tui.ConversationUpdated{})
			}),
			orchestration.WithMoodCallback(func(_, current string) {
				program.Send(tui.MoodUpdated{Mood: current})
			}),
			orchestration.WithSpeakingStateCallback(func(isSpeaking bool) {
				program.Send(tui.SpeakingUpdated{IsSpeaking: isSpeaking})
			}),
			orchestration.WithRecordingStateCallback(func(isRecording bool) {
				program.Send(tui.RecordingUpdated{IsRecording: isRecording})
			}),
		)
		return orchestrator, nil
	}

	model := tui.New(tuiConfig(store, start, languageArg))
	program = tea.NewProgram(model, tea.WithAltScreen())

	_, runErr := program.Run()
	cancel()
	if orchestrator != nil {
		orchestrator.Close()
	}
	return runErr
}

func tuiConfig(store *prefs.Store, start func(dialogue.Language) (*orchestration.Orchestrator, error), languageArg string) tui.Config {
	cfg := tui.Config{Start: start, Prefs: store}
	if language, err := dialogue.ParseLanguage(languageArg); err == nil {
		cfg.Language = language
		cfg.HasLanguage = true
	}
	return cfg
}

func resolvePersona(store *prefs.Store) (dialogue.Persona, error) {
	candidate := personaFlag
	if candidate == "" {
		candidate = store.Get().Personality
	}

	persona, err := dialogue.ParsePersona(candidate)
	if err != nil {
		return "", fmt.Errorf("failed to resolve persona: %w", err)
	}
	return persona, nil
}

// buildOrchestrator wires every capability that is configured; missing keys
// or audio devices degrade the session rather than failing it.
func buildOrchestrator(cfg *config.Config, store *prefs.Store, promptConfig dialogue.PromptConfig) *orchestration.Orchestrator {
	opts := []orchestration.OrchestratorOption{
		orchestration.WithPromptConfig(promptConfig),
		orchestration.WithSpeechSpeedSource(func() float64 {
			return store.Get().SpeechSpeed
		}),
		orchestration.WithSoundCues(store.Get().SoundEffectsEnabled),
	}

	if cfg.Dialogue.APIKey != "" {
		opts = append(opts, orchestration.WithDialogueClient(nebius.NewClient(
			cfg.Dialogue.APIKey,
			nebius.WithBaseURL(cfg.Dialogue.BaseURL),
			nebius.WithModel(cfg.Dialogue.Model),
		)))
	}

	if cfg.Transcription.APIKey != "" {
		switch cfg.Transcription.Provider {
		case "deepgram":
			opts = append(opts, orchestration.WithTranscriber(deepgram.NewClient(
				cfg.Transcription.APIKey,
				deepgram.WithModel(cfg.Transcription.Model),
			)))
		default:
			opts = append(opts, orchestration.WithTranscriber(whisper.NewClient(
				cfg.Transcription.APIKey,
				whisper.WithModel(cfg.Transcription.Model),
			)))
		}
	}

	if cfg.Speech.APIKey != "" {
		speechOpts := []cartesia.ClientOption{cartesia.WithModel(cfg.Speech.Model)}
		if cfg.Speech.VoiceID != "" {
			speechOpts = append(speechOpts, cartesia.WithVoice(cfg.Speech.VoiceID))
		}
		opts = append(opts, orchestration.WithSynthesizer(cartesia.NewClient(cfg.Speech.APIKey, speechOpts...)))
	}

	if audioClient, err := miniaudio.NewClient(); err == nil {
		opts = append(opts,
			orchestration.WithCaptureDevice(audioClient),
			orchestration.WithAudioSink(audioClient),
		)
	} else {
		fmt.Fprintf(os.Stderr, "audio devices unavailable, running text-only: %v\n", err)
	}

	return orchestration.NewOrchestrator(opts...)
}
