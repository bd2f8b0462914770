package orchestration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/chatwithcat/companion-core/core/audio"
	"github.com/chatwithcat/companion-core/core/dialogue"
	events "github.com/chatwithcat/companion-core/core/events"
	"github.com/chatwithcat/companion-core/core/speechtotext"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Orchestrator sequences capture, transcription, dialogue, mood and speech
// into coherent conversational turns. It owns cancellation and guarantees
// user-visible state never desynchronizes from the underlying asynchronous
// operations.
type Orchestrator struct {
	conversation *conversation
	mood         *moodController
	capture      captureController
	transcriber  transcriber
	dialogue     dialogueEngine
	synthesizer  synthesizer
	speechPlayer *speechPlayer

	promptConfig dialogue.PromptConfig
	speechSpeed  func() float64
	soundCues    bool

	emitEvent          eventEmitter
	orchestrateOptions OrchestrateOptions

	activeTurnMu sync.Mutex
	activeTurn   *activeTurn

	baseContext context.Context
	closing     chan struct{}
	closeOnce   sync.Once
	closed      atomic.Bool
}

func NewOrchestrator(opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		mood:         newMoodController(),
		speechPlayer: newSpeechPlayer(),
		promptConfig: dialogue.PromptConfig{
			Language: dialogue.LanguageFrench,
			Persona:  dialogue.PersonaSimple,
		},
		speechSpeed: func() float64 { return 1 },
		soundCues:   true,
		emitEvent:   noopEventEmitter,
		baseContext: context.Background(),
		closing:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(o)
	}

	o.conversation = newConversation(o.promptConfig.WelcomeMessage())
	return o
}

// Orchestrate binds the session to ctx and registers the UI callbacks.
//
// ctx is the base context for every capture, transcription, dialogue and
// synthesis call; cancelling it tears the whole session down.
//
// Contract: call Orchestrate at most once per orchestrator instance, before
// submitting any input.
func (o *Orchestrator) Orchestrate(ctx context.Context, opts ...OrchestrateOption) {
	o.orchestrateOptions = OrchestrateOptions{}
	for _, opt := range opts {
		opt(&o.orchestrateOptions)
	}

	o.baseContext = ctx
	o.emitEvent = newCallbackEventEmitter(o.orchestrateOptions)

	go func() {
		select {
		case <-ctx.Done():
			o.Close()
		case <-o.closing:
		}
	}()
}

// Close tears the session down: cancels any active turn, stops playback,
// releases the microphone and waits for the turn pipeline to drain. Safe to
// call more than once.
func (o *Orchestrator) Close() {
	o.closeOnce.Do(func() {
		o.closed.Store(true)
		close(o.closing)

		o.CancelTurn()
		o.speechPlayer.Stop()

		if _, err := o.capture.Stop(); err != nil && !errors.Is(err, ErrNotRecording) {
			recordedErr := fmt.Errorf("failed to release capture device: %w", err)
			span := trace.SpanFromContext(o.baseContext)
			span.RecordError(recordedErr)
			span.SetStatus(codes.Error, recordedErr.Error())
		}

		o.activeTurnMu.Lock()
		turn := o.activeTurn
		o.activeTurnMu.Unlock()
		if turn != nil {
			<-turn.done
		}
	})
}

// SendPrompt submits user text and starts a new turn. Blank input is
// ignored. An active turn is cancelled first, per the single-active-turn
// rule.
func (o *Orchestrator) SendPrompt(prompt string) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" || o.closed.Load() {
		return
	}

	turn := newActiveTurn(o.baseContext, prompt, o.emitEvent)

	o.activeTurnMu.Lock()
	prior := o.activeTurn
	o.activeTurn = turn
	o.activeTurnMu.Unlock()

	go func() {
		defer o.endTurn(turn)

		if prior != nil {
			if prior.Cancel() {
				o.speechPlayer.Stop()
			}
			<-prior.done
		}
		if turn.IsCancelled() {
			return
		}
		o.processTurn(turn)
	}()
}

func (o *Orchestrator) endTurn(turn *activeTurn) {
	o.activeTurnMu.Lock()
	if o.activeTurn == turn {
		o.activeTurn = nil
	}
	o.activeTurnMu.Unlock()
	close(turn.done)
}

// CancelTurn aborts the active turn, if any: in-flight requests become
// discarded no-ops, playback stops immediately and the reveal is discarded.
func (o *Orchestrator) CancelTurn() {
	o.activeTurnMu.Lock()
	turn := o.activeTurn
	o.activeTurnMu.Unlock()

	if turn != nil && turn.Cancel() {
		o.speechPlayer.Stop()
	}
}

// StartRecording opens the recording session, replacing any prior one.
func (o *Orchestrator) StartRecording() error {
	if err := o.capture.Start(o.baseContext); err != nil {
		return err
	}

	o.emitEvent(events.NewRecordingStarted())
	return nil
}

// StopRecording finalizes the recording, transcribes it and submits the
// transcript as a prompt. An empty transcript aborts silently, the recording
// indicator simply resets. Stopping while idle returns ErrNotRecording.
func (o *Orchestrator) StopRecording() error {
	recording, err := o.capture.Stop()
	if err != nil {
		if errors.Is(err, ErrNotRecording) {
			return err
		}
		o.emitEvent(events.NewRecordingStopped(len(recording)))
		return err
	}
	o.emitEvent(events.NewRecordingStopped(len(recording)))
	if len(recording) == 0 {
		return nil
	}

	ctx, span := tracer.Start(o.baseContext, "transcribe recording")
	defer span.End()

	transcript, err := o.transcriber.transcribe(ctx, recording,
		speechtotext.WithLanguage(o.promptConfig.Language.Code()),
		speechtotext.WithEncodingInfo(o.capture.encodingInfo()),
	)
	if err != nil {
		err = fmt.Errorf("failed to transcribe recording: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return nil
	}

	o.emitEvent(events.NewTranscriptFinal(transcript))
	o.SendPrompt(transcript)
	return nil
}

// Conversation returns a point-in-time snapshot of the message log.
func (o *Orchestrator) Conversation() []dialogue.Message {
	return o.conversation.Snapshot()
}

// VisibleConversation returns the snapshot without the tool-exchange records,
// the shape presentation layers render.
func (o *Orchestrator) VisibleConversation() []dialogue.Message {
	return o.conversation.visible()
}

// CurrentMood returns the companion's current emotional-display state.
func (o *Orchestrator) CurrentMood() dialogue.Mood {
	return o.mood.Current()
}

func (o *Orchestrator) IsRecording() bool {
	return o.capture.isRecording()
}

// SinkEncoding reports the playback sink's encoding, zero when no sink is
// configured. Useful for rendering cues that target the sink.
func (o *Orchestrator) SinkEncoding() audio.EncodingInfo {
	return o.speechPlayer.encodingInfo()
}

// PlayCue queues a short interface sound cue. Cues are lower priority than
// speech and are dropped while a reply is being spoken.
func (o *Orchestrator) PlayCue(cue []byte) {
	if o.soundCues {
		o.speechPlayer.PlayCue(cue)
	}
}

// IsSpeaking reports audible speech playback.
func (o *Orchestrator) IsSpeaking() bool {
	return o.speechPlayer.IsSpeaking()
}

// TurnState reports the active turn's lifecycle state, or idle.
func (o *Orchestrator) TurnState() string {
	o.activeTurnMu.Lock()
	turn := o.activeTurn
	o.activeTurnMu.Unlock()

	if turn == nil {
		return string(turnStateIdle)
	}
	return string(turn.State())
}
