package orchestration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chatwithcat/companion-core/core/dialogue"
	events "github.com/chatwithcat/companion-core/core/events"
	"github.com/chatwithcat/companion-core/core/sounds"
	"github.com/chatwithcat/companion-core/core/texttospeech"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	placeholderText           = "…"
	moodChangePlaceholderText = "Miaou! Je change mon humeur..."

	connectionFallbackText    = "Meow? There was a problem connecting to my brain. Please check your API key or try again later."
	genericFallbackText       = "Meow... something went wrong. Please try again later."
	understandingFallbackText = "Meow? I found some information but had trouble understanding it. Can you ask me differently?"
)

// processTurn drives one turn through the full lifecycle: request the reply,
// run the mood-tool sub-machine if the provider asked for it, then reveal the
// final text alongside speech playback. Every provider fault is converted
// into a fallback reply so the turn always closes.
func (o *Orchestrator) processTurn(turn *activeTurn) {
	ctx, span := tracer.Start(turn.ctx, "process turn",
		trace.WithAttributes(attribute.String("turn.id", turn.id)))
	defer span.End()

	turn.emit(events.NewTurnStarted(turn.id, turn.prompt))
	o.conversation.appendUser(turn.prompt)
	o.conversation.setPlaceholder(placeholderText)
	turn.setState(turnStateRequestingReply)

	reply, err := o.dialogue.converse(ctx, dialogue.Request{
		Messages: o.withSystemPrompt(o.promptConfig.SystemPrompt()),
		Tools:    []dialogue.Tool{dialogue.SetMoodTool()},
	})
	if turn.IsCancelled() {
		o.conversation.clearPlaceholder()
		return
	}
	if err != nil {
		o.failTurn(ctx, turn, connectionFallbackText, fmt.Errorf("failed to request reply: %w", err))
		return
	}

	if invocation, ok := setMoodInvocation(reply); ok {
		reply, err = o.processMoodInvocation(ctx, turn, invocation)
		if turn.IsCancelled() {
			o.conversation.clearPlaceholder()
			return
		}
		if err != nil {
			o.failTurn(ctx, turn, understandingFallbackText, fmt.Errorf("failed to request follow-up reply: %w", err))
			return
		}
	}

	if reply == nil || reply.Content == "" {
		o.failTurn(ctx, turn, genericFallbackText, fmt.Errorf("provider returned no prose reply"))
		return
	}

	o.deliverReply(ctx, turn, reply.Content)
	if !turn.IsCancelled() {
		turn.emit(events.NewTurnCompleted(turn.id, reply.Content))
	}
}

func setMoodInvocation(reply *dialogue.Reply) (dialogue.ToolInvocation, bool) {
	if reply == nil || !reply.IsToolInvocation() {
		return dialogue.ToolInvocation{}, false
	}
	for _, invocation := range reply.ToolCalls {
		if invocation.Name == dialogue.SetMoodToolName {
			return invocation, true
		}
	}
	return dialogue.ToolInvocation{}, false
}

// processMoodInvocation applies the mood transition and issues the follow-up
// dialogue call carrying the synthetic tool-result message. The mood is
// durably applied before the follow-up request is sent.
func (o *Orchestrator) processMoodInvocation(ctx context.Context, turn *activeTurn, invocation dialogue.ToolInvocation) (*dialogue.Reply, error) {
	ctx, span := tracer.Start(ctx, "process mood invocation")
	defer span.End()

	turn.setState(turnStateAwaitingToolResult)

	mood, err := dialogue.ParseSetMoodArgs(invocation.Arguments)
	if err != nil {
		// Recoverable, the turn proceeds with a default mood.
		err = fmt.Errorf("falling back to default mood: %w", err)
		span.RecordError(err)
		logger.Warn("failed to parse set_mood arguments", "error", err)
		mood = dialogue.MoodConfused
	}

	previous := o.mood.Current()
	changed := o.mood.Apply(mood)
	turn.emit(events.NewMoodChanged(string(previous), string(mood)))
	o.playMoodCue(mood, changed)
	o.conversation.setPlaceholder(moodChangePlaceholderText)

	result := dialogue.NewMoodChangeResult(mood)
	o.conversation.record(dialogue.Message{
		Role:      dialogue.RoleAssistant,
		ToolCalls: []dialogue.ToolInvocation{invocation},
	})
	o.conversation.record(dialogue.Message{
		Role:       dialogue.RoleTool,
		Content:    result.Encode(),
		ToolCallID: invocation.ID,
		Name:       invocation.Name,
	})

	turn.setState(turnStateRequestingFollowup)
	return o.dialogue.converse(ctx, dialogue.Request{
		Messages: o.withSystemPrompt(o.promptConfig.FollowupSystemPrompt()),
	})
}

func (o *Orchestrator) withSystemPrompt(prompt string) []dialogue.Message {
	history := o.conversation.history()
	messages := make([]dialogue.Message, 0, len(history)+1)
	messages = append(messages, dialogue.Message{Role: dialogue.RoleSystem, Content: prompt})
	return append(messages, history...)
}

// failTurn closes the turn with a fixed apologetic reply so the user never
// sees a stuck placeholder.
func (o *Orchestrator) failTurn(ctx context.Context, turn *activeTurn, fallback string, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	logger.Error("turn failed", "turn_id", turn.id, "error", err)

	if turn.IsCancelled() {
		o.conversation.clearPlaceholder()
		return
	}

	turn.emit(events.NewTurnFailed(turn.id, fallback, err.Error()))
	o.deliverReply(ctx, turn, fallback)
}

// deliverReply runs the revealing stage: the reveal timer and speech playback
// side by side, the turn completing only when both have finished.
func (o *Orchestrator) deliverReply(ctx context.Context, turn *activeTurn, text string) {
	ctx, span := tracer.Start(ctx, "deliver reply")
	defer span.End()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	turn.setState(turnStateRevealing)
	o.conversation.startReveal()

	var workerErr error
	workerErrMu := sync.Mutex{}
	addWorkerErr := func(err error) {
		if err == nil {
			return
		}
		workerErrMu.Lock()
		workerErr = errors.Join(workerErr, err)
		workerErrMu.Unlock()
	}

	run := func(name string, f func(context.Context) error) {
		defer func() {
			if recovered := recover(); recovered != nil {
				addWorkerErr(fmt.Errorf("%s worker panicked: %v", name, recovered))
				cancel()
			}
		}()

		if err := f(ctx); err != nil {
			addWorkerErr(fmt.Errorf("%s worker failed: %w", name, err))
			cancel()
		}
	}

	wg := &sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		run("reveal", func(ctx context.Context) error {
			return o.revealText(ctx, turn, text)
		})
	}()
	go func() {
		defer wg.Done()
		run("speech", func(ctx context.Context) error {
			return o.speakText(ctx, turn, text)
		})
	}()
	wg.Wait()

	if workerErr != nil {
		workerErr = fmt.Errorf("one or more turn workers failed: %w", workerErr)
		span.RecordError(workerErr)
		span.SetStatus(codes.Error, workerErr.Error())
	}

	if turn.IsCancelled() {
		o.conversation.discardReveal()
		return
	}
	o.conversation.finishReveal(text)
	turn.emit(events.NewResponseFinal(turn.id, text))
	turn.setState(turnStateIdle)
}

func (o *Orchestrator) revealText(ctx context.Context, turn *activeTurn, text string) error {
	reveal := newRevealState(text)
	delay := revealStepDelay(o.speechSpeed())

	for !reveal.done() {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
		if turn.IsCancelled() {
			return nil
		}

		chunk := reveal.step()
		o.conversation.appendReveal(chunk)
		turn.emit(events.NewResponseSegment(turn.id, chunk))
	}
	return nil
}

// speakText synthesizes the reply and plays it through the shared sink. A
// synthesis failure leaves the turn text-only rather than failing it.
func (o *Orchestrator) speakText(ctx context.Context, turn *activeTurn, text string) error {
	if !o.synthesizer.isConfigured() || !o.speechPlayer.isConfigured() {
		return nil
	}

	ctx, span := tracer.Start(ctx, "speak reply")
	defer span.End()

	turn.emit(events.NewSpeechRequested(turn.id, text))
	opts := []texttospeech.SynthesisOption{
		texttospeech.WithLanguage(o.promptConfig.Language.Code()),
		texttospeech.WithEncodingInfo(o.speechPlayer.encodingInfo()),
	}
	asset, err := o.synthesizer.synthesize(ctx, text, opts...)
	if err != nil {
		err = fmt.Errorf("failed to synthesize reply: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		turn.emit(events.NewSpeechFailed(turn.id, err.Error()))
		return nil
	}
	if len(asset) == 0 || turn.IsCancelled() {
		return nil
	}

	turn.emit(events.NewSpeechReady(turn.id, len(asset)))
	if err := o.speechPlayer.Play(ctx, turn.id, asset, turn.emit); err != nil {
		err = fmt.Errorf("failed to play reply audio: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		turn.emit(events.NewSpeechFailed(turn.id, err.Error()))
	}
	return nil
}

// playMoodCue applies the cue policy: cues never play over active speech,
// and an unchanged mood does not replay its cue.
func (o *Orchestrator) playMoodCue(mood dialogue.Mood, changed bool) {
	if !o.soundCues || !changed || o.speechPlayer.IsBusy() {
		return
	}

	o.speechPlayer.PlayCue(sounds.MoodCue(mood, o.speechPlayer.encodingInfo()))
}
