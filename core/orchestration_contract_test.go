package orchestration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chatwithcat/companion-core/core/audio"
	"github.com/chatwithcat/companion-core/core/dialogue"
	"github.com/chatwithcat/companion-core/core/speechtotext"
	"github.com/chatwithcat/companion-core/core/texttospeech"
)

type scriptStep func(ctx context.Context, request dialogue.Request) (*dialogue.Reply, error)

type scriptedDialogue struct {
	mu       sync.Mutex
	script   []scriptStep
	requests []dialogue.Request
}

func (c *scriptedDialogue) Converse(ctx context.Context, request dialogue.Request) (*dialogue.Reply, error) {
	c.mu.Lock()
	c.requests = append(c.requests, request)
	if len(c.script) == 0 {
		c.mu.Unlock()
		return nil, fmt.Errorf("unscripted dialogue call")
	}
	step := c.script[0]
	c.script = c.script[1:]
	c.mu.Unlock()

	return step(ctx, request)
}

func (c *scriptedDialogue) Requests() []dialogue.Request {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]dialogue.Request(nil), c.requests...)
}

func proseReply(text string) scriptStep {
	return func(context.Context, dialogue.Request) (*dialogue.Reply, error) {
		return &dialogue.Reply{Content: text}, nil
	}
}

func moodToolReply(arguments string) scriptStep {
	return func(context.Context, dialogue.Request) (*dialogue.Reply, error) {
		return &dialogue.Reply{ToolCalls: []dialogue.ToolInvocation{{
			ID:        "call-1",
			Name:      dialogue.SetMoodToolName,
			Arguments: arguments,
		}}}, nil
	}
}

func failingReply(err error) scriptStep {
	return func(context.Context, dialogue.Request) (*dialogue.Reply, error) {
		return nil, err
	}
}

type fakeCapture struct {
	mu      sync.Mutex
	onAudio func([]byte)
	live    int
	maxLive int
	starts  int
}

func (c *fakeCapture) StartCapture(_ context.Context, onAudio func(audio []byte)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onAudio = onAudio
	c.live++
	c.starts++
	if c.live > c.maxLive {
		c.maxLive = c.live
	}
	return nil
}

func (c *fakeCapture) StopCapture() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.live > 0 {
		c.live--
	}
	return nil
}

func (c *fakeCapture) EncodingInfo() audio.EncodingInfo {
	return audio.GetDefaultEncodingInfo()
}

func (c *fakeCapture) feed(chunk []byte) {
	c.mu.Lock()
	onAudio := c.onAudio
	c.mu.Unlock()

	if onAudio != nil {
		onAudio(chunk)
	}
}

type fakeTranscriber struct {
	mu         sync.Mutex
	transcript string
	err        error
	received   [][]byte
}

func (f *fakeTranscriber) Transcribe(_ context.Context, recording []byte, _ ...speechtotext.TranscriptionOption) (string, error) {
	f.mu.Lock()
	f.received = append(f.received, recording)
	f.mu.Unlock()

	return f.transcript, f.err
}

type fakeSynthesizer struct {
	mu    sync.Mutex
	asset []byte
	err   error
	texts []string
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, text string, _ ...texttospeech.SynthesisOption) ([]byte, error) {
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.mu.Unlock()

	return f.asset, f.err
}

type fakeSink struct {
	mu        sync.Mutex
	sent      [][]byte
	cleared   int
	markDelay time.Duration
}

func (s *fakeSink) EncodingInfo() audio.EncodingInfo {
	return audio.GetDefaultEncodingInfo()
}

func (s *fakeSink) SendAudio(audio []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sent = append(s.sent, audio)
	return nil
}

func (s *fakeSink) Mark(mark string, callback func(mark string)) error {
	delay := s.markDelay
	go func() {
		time.Sleep(delay)
		callback(mark)
	}()
	return nil
}

func (s *fakeSink) ClearBuffer() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleared++
}

func (s *fakeSink) sentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sent)
}

func awaitSignal[T any](t *testing.T, ch <-chan T, what string) T {
	t.Helper()

	select {
	case value := <-ch:
		return value
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
		panic("unreachable")
	}
}

func TestTurnRoundTripWithMoodTool(t *testing.T) {
	client := &scriptedDialogue{script: []scriptStep{
		moodToolReply(`{"mood":"happy"}`),
		proseReply("Miaou!"),
	}}
	orchestrator := NewOrchestrator(WithDialogueClient(client), WithSoundCues(false))
	defer orchestrator.Close()

	responseEnd := make(chan string, 1)
	moods := make(chan string, 1)
	orchestrator.Orchestrate(context.Background(),
		WithResponseEndCallback(func(response string) { responseEnd <- response }),
		WithMoodCallback(func(_, current string) { moods <- current }),
	)

	orchestrator.SendPrompt("Bonjour")

	if response := awaitSignal(t, responseEnd, "response end"); response != "Miaou!" {
		t.Errorf("expected final response %q, got %q", "Miaou!", response)
	}
	if mood := awaitSignal(t, moods, "mood change"); mood != "happy" {
		t.Errorf("expected mood callback with %q, got %q", "happy", mood)
	}
	if mood := orchestrator.CurrentMood(); mood != dialogue.MoodHappy {
		t.Errorf("expected current mood %q, got %q", dialogue.MoodHappy, mood)
	}

	visible := orchestrator.VisibleConversation()
	if len(visible) < 2 {
		t.Fatalf("expected at least user and assistant messages, got %d", len(visible))
	}
	if last := visible[len(visible)-1]; last.Role != dialogue.RoleAssistant || last.Content != "Miaou!" {
		t.Errorf("expected the visible conversation to end with the reply, got %+v", last)
	}
	if penultimate := visible[len(visible)-2]; penultimate.Role != dialogue.RoleUser || penultimate.Content != "Bonjour" {
		t.Errorf("expected the user message before the reply, got %+v", penultimate)
	}
	for _, message := range orchestrator.Conversation() {
		if message.Content == placeholderText || message.Content == moodChangePlaceholderText {
			t.Errorf("expected no residual placeholder, found %q", message.Content)
		}
	}

	requests := client.Requests()
	if len(requests) != 2 {
		t.Fatalf("expected an initial and a follow-up dialogue request, got %d", len(requests))
	}
	if len(requests[0].Tools) != 1 || requests[0].Tools[0].Name != dialogue.SetMoodToolName {
		t.Errorf("expected the initial request to declare the mood tool, got %+v", requests[0].Tools)
	}
	if !strings.Contains(requests[0].Messages[0].Content, "set_mood") {
		t.Error("expected the initial system prompt to mention the mood tool")
	}
	if !strings.Contains(requests[1].Messages[0].Content, "new mood") {
		t.Error("expected the follow-up system prompt to ask about the new mood")
	}

	var sawToolResult bool
	for _, message := range requests[1].Messages {
		if message.Role == dialogue.RoleTool && message.Name == dialogue.SetMoodToolName {
			sawToolResult = true
			if !strings.Contains(message.Content, `"happy"`) {
				t.Errorf("expected the tool result to carry the applied mood, got %q", message.Content)
			}
		}
	}
	if !sawToolResult {
		t.Error("expected the follow-up request to embed the synthetic tool-result message")
	}
}

func TestDialogueFaultAppendsSingleFallback(t *testing.T) {
	client := &scriptedDialogue{script: []scriptStep{
		failingReply(errors.New("connection reset")),
	}}
	orchestrator := NewOrchestrator(WithDialogueClient(client), WithSoundCues(false))
	defer orchestrator.Close()

	responseEnd := make(chan string, 1)
	fallbacks := make(chan string, 1)
	orchestrator.Orchestrate(context.Background(),
		WithResponseEndCallback(func(response string) { responseEnd <- response }),
		WithFailureCallback(func(fallback string) { fallbacks <- fallback }),
	)

	moodBefore := orchestrator.CurrentMood()
	orchestrator.SendPrompt("Bonjour")

	if response := awaitSignal(t, responseEnd, "fallback reveal"); response != connectionFallbackText {
		t.Errorf("expected the connection fallback, got %q", response)
	}
	if fallback := awaitSignal(t, fallbacks, "failure callback"); fallback != connectionFallbackText {
		t.Errorf("expected the failure callback to carry the fallback text, got %q", fallback)
	}

	visible := orchestrator.VisibleConversation()
	var assistantAfterUser int
	for i, message := range visible {
		if message.Role == dialogue.RoleUser && message.Content == "Bonjour" {
			assistantAfterUser = len(visible) - i - 1
		}
	}
	if assistantAfterUser != 1 {
		t.Errorf("expected exactly one assistant message after the user's, got %d", assistantAfterUser)
	}
	if last := visible[len(visible)-1]; last.Content != connectionFallbackText {
		t.Errorf("expected the fallback message to close the conversation, got %q", last.Content)
	}
	if mood := orchestrator.CurrentMood(); mood != moodBefore {
		t.Errorf("expected the mood to stay %q across a failed turn, got %q", moodBefore, mood)
	}
}

func TestMalformedToolArgumentsRecoverToConfused(t *testing.T) {
	client := &scriptedDialogue{script: []scriptStep{
		moodToolReply(`{"mood": nonsense`),
		proseReply("Pardon?"),
	}}
	orchestrator := NewOrchestrator(WithDialogueClient(client), WithSoundCues(false))
	defer orchestrator.Close()

	responseEnd := make(chan string, 1)
	orchestrator.Orchestrate(context.Background(),
		WithResponseEndCallback(func(response string) { responseEnd <- response }),
	)

	orchestrator.SendPrompt("Quoi?")
	awaitSignal(t, responseEnd, "response end")

	if mood := orchestrator.CurrentMood(); mood != dialogue.MoodConfused {
		t.Errorf("expected malformed tool arguments to fall back to %q, got %q", dialogue.MoodConfused, mood)
	}

	requests := client.Requests()
	if len(requests) != 2 {
		t.Fatalf("expected the turn to proceed to the follow-up call, got %d requests", len(requests))
	}
	for _, message := range requests[1].Messages {
		if message.Role == dialogue.RoleTool && !strings.Contains(message.Content, `"confused"`) {
			t.Errorf("expected the tool result to carry the fallback mood, got %q", message.Content)
		}
	}
}

func TestNewTurnCancelsActiveTurn(t *testing.T) {
	firstCallStarted := make(chan struct{})
	client := &scriptedDialogue{script: []scriptStep{
		func(ctx context.Context, _ dialogue.Request) (*dialogue.Reply, error) {
			close(firstCallStarted)
			<-ctx.Done()
			return nil, ctx.Err()
		},
		proseReply("Bonjour!"),
	}}
	orchestrator := NewOrchestrator(WithDialogueClient(client), WithSoundCues(false))
	defer orchestrator.Close()

	responseEnd := make(chan string, 1)
	cancelled := make(chan struct{}, 1)
	orchestrator.Orchestrate(context.Background(),
		WithResponseEndCallback(func(response string) { responseEnd <- response }),
		WithCancellationCallback(func() { cancelled <- struct{}{} }),
	)

	orchestrator.SendPrompt("première question")
	awaitSignal(t, firstCallStarted, "first dialogue call")
	orchestrator.SendPrompt("seconde question")

	awaitSignal(t, cancelled, "cancellation of the first turn")
	if response := awaitSignal(t, responseEnd, "second turn's reply"); response != "Bonjour!" {
		t.Errorf("expected the second turn's reply, got %q", response)
	}

	visible := orchestrator.VisibleConversation()
	if last := visible[len(visible)-1]; last.Content != "Bonjour!" {
		t.Errorf("expected the conversation to end with the second reply, got %q", last.Content)
	}
	for i, message := range visible {
		if message.Content == placeholderText {
			t.Error("expected no residual placeholder from the cancelled turn")
		}
		if message.Content == "première question" && i+1 < len(visible) {
			if next := visible[i+1]; next.Role == dialogue.RoleAssistant {
				t.Errorf("expected no assistant reply to the cancelled turn, got %q", next.Content)
			}
		}
	}
}

func TestEmptyTranscriptAbortsTurnSilently(t *testing.T) {
	capture := &fakeCapture{}
	client := &scriptedDialogue{}
	orchestrator := NewOrchestrator(
		WithCaptureDevice(capture),
		WithTranscriber(&fakeTranscriber{transcript: "   "}),
		WithDialogueClient(client),
		WithSoundCues(false),
	)
	defer orchestrator.Close()
	orchestrator.Orchestrate(context.Background())

	messagesBefore := len(orchestrator.Conversation())

	if err := orchestrator.StartRecording(); err != nil {
		t.Fatalf("expected recording to start, got %v", err)
	}
	capture.feed([]byte{1, 2, 3, 4})
	if err := orchestrator.StopRecording(); err != nil {
		t.Fatalf("expected an empty transcript to be a silent no-op, got %v", err)
	}

	if got := len(orchestrator.Conversation()); got != messagesBefore {
		t.Errorf("expected no message to be appended, conversation grew from %d to %d", messagesBefore, got)
	}
	if got := len(client.Requests()); got != 0 {
		t.Errorf("expected no dialogue call for an empty transcript, got %d", got)
	}
}

func TestRecordingSessionIsExclusive(t *testing.T) {
	capture := &fakeCapture{}
	transcriber := &fakeTranscriber{}
	orchestrator := NewOrchestrator(
		WithCaptureDevice(capture),
		WithTranscriber(transcriber),
		WithSoundCues(false),
	)
	defer orchestrator.Close()
	orchestrator.Orchestrate(context.Background())

	if err := orchestrator.StartRecording(); err != nil {
		t.Fatalf("expected the first recording to start, got %v", err)
	}
	capture.feed([]byte{1, 2})
	if err := orchestrator.StartRecording(); err != nil {
		t.Fatalf("expected a second start to replace the session, got %v", err)
	}
	capture.feed([]byte{3, 4})

	capture.mu.Lock()
	maxLive, starts := capture.maxLive, capture.starts
	capture.mu.Unlock()
	if maxLive != 1 {
		t.Errorf("expected at most one live device handle, got %d", maxLive)
	}
	if starts != 2 {
		t.Errorf("expected two capture starts, got %d", starts)
	}

	if err := orchestrator.StopRecording(); err != nil {
		t.Fatalf("expected stop to succeed, got %v", err)
	}

	transcriber.mu.Lock()
	received := transcriber.received
	transcriber.mu.Unlock()
	if len(received) != 1 || !bytes.Equal(received[0], []byte{3, 4}) {
		t.Errorf("expected only the replacing session's audio to be transcribed, got %v", received)
	}

	if err := orchestrator.StopRecording(); !errors.Is(err, ErrNotRecording) {
		t.Errorf("expected ErrNotRecording on an idle stop, got %v", err)
	}
}

func TestSpeechPlaybackLifecycle(t *testing.T) {
	asset := bytes.Repeat([]byte{0x01, 0x02}, 1600)
	synthesizer := &fakeSynthesizer{asset: asset}
	sink := &fakeSink{markDelay: 300 * time.Millisecond}
	client := &scriptedDialogue{script: []scriptStep{proseReply("Miaou!")}}
	orchestrator := NewOrchestrator(
		WithDialogueClient(client),
		WithSynthesizer(synthesizer),
		WithAudioSink(sink),
		WithSoundCues(false),
	)
	defer orchestrator.Close()

	responseEnd := make(chan string, 1)
	speaking := make(chan bool, 4)
	orchestrator.Orchestrate(context.Background(),
		WithResponseEndCallback(func(response string) { responseEnd <- response }),
		WithSpeakingStateCallback(func(isSpeaking bool) { speaking <- isSpeaking }),
	)

	orchestrator.SendPrompt("Bonjour")
	awaitSignal(t, responseEnd, "response end")

	if isSpeaking := awaitSignal(t, speaking, "speaking start"); !isSpeaking {
		t.Error("expected the speaking state to turn on first")
	}
	if isSpeaking := awaitSignal(t, speaking, "speaking end"); isSpeaking {
		t.Error("expected the speaking state to turn off after playback")
	}

	sink.mu.Lock()
	sent := sink.sent
	sink.mu.Unlock()
	if len(sent) != 1 || !bytes.Equal(sent[0], asset) {
		t.Errorf("expected the synthesized asset to reach the sink exactly once, got %d sends", len(sent))
	}

	synthesizer.mu.Lock()
	texts := synthesizer.texts
	synthesizer.mu.Unlock()
	if len(texts) != 1 || texts[0] != "Miaou!" {
		t.Errorf("expected the final reply text to be synthesized, got %v", texts)
	}
}

func TestCancelTurnStopsPlaybackAndDiscardsReveal(t *testing.T) {
	synthesizer := &fakeSynthesizer{asset: bytes.Repeat([]byte{0x01}, 3200)}
	sink := &fakeSink{markDelay: 5 * time.Second}
	client := &scriptedDialogue{script: []scriptStep{
		proseReply(strings.Repeat("Miaou! ", 40)),
	}}
	orchestrator := NewOrchestrator(
		WithDialogueClient(client),
		WithSynthesizer(synthesizer),
		WithAudioSink(sink),
		WithSoundCues(false),
	)
	defer orchestrator.Close()

	speaking := make(chan bool, 4)
	cancelled := make(chan struct{}, 1)
	orchestrator.Orchestrate(context.Background(),
		WithSpeakingStateCallback(func(isSpeaking bool) { speaking <- isSpeaking }),
		WithCancellationCallback(func() { cancelled <- struct{}{} }),
	)

	orchestrator.SendPrompt("Bonjour")
	if isSpeaking := awaitSignal(t, speaking, "speaking start"); !isSpeaking {
		t.Fatal("expected playback to start before cancelling")
	}

	orchestrator.CancelTurn()
	awaitSignal(t, cancelled, "cancellation")
	if isSpeaking := awaitSignal(t, speaking, "speaking end"); isSpeaking {
		t.Error("expected playback to stop on cancellation")
	}

	sink.mu.Lock()
	cleared := sink.cleared
	sink.mu.Unlock()
	if cleared == 0 {
		t.Error("expected the sink buffer to be cleared on cancellation")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		visible := orchestrator.VisibleConversation()
		last := visible[len(visible)-1]
		if last.Role == dialogue.RoleUser && last.Content == "Bonjour" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected the partial reveal to be discarded, conversation ends with %+v", last)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestMoodCuePolicy(t *testing.T) {
	sink := &fakeSink{}
	client := &scriptedDialogue{script: []scriptStep{
		moodToolReply(`{"mood":"sad"}`),
		proseReply("Oh."),
		moodToolReply(`{"mood":"sad"}`),
		proseReply("Encore."),
	}}
	orchestrator := NewOrchestrator(
		WithDialogueClient(client),
		WithAudioSink(sink),
	)
	defer orchestrator.Close()

	responseEnd := make(chan string, 2)
	orchestrator.Orchestrate(context.Background(),
		WithResponseEndCallback(func(response string) { responseEnd <- response }),
	)

	orchestrator.SendPrompt("Mauvaise nouvelle")
	awaitSignal(t, responseEnd, "first turn")
	if got := sink.sentCount(); got != 1 {
		t.Errorf("expected exactly one mood cue after a mood change, got %d sends", got)
	}

	orchestrator.SendPrompt("Toujours triste?")
	awaitSignal(t, responseEnd, "second turn")
	if got := sink.sentCount(); got != 1 {
		t.Errorf("expected no cue replay for an unchanged mood, got %d sends", got)
	}
}

func TestMoodControllerValidation(t *testing.T) {
	controller := newMoodController()

	mood, changed, err := controller.Set("HAPPY")
	if err != nil || mood != dialogue.MoodHappy {
		t.Errorf("expected case-insensitive validation, got mood %q, err %v", mood, err)
	}
	if changed {
		t.Error("expected setting the current mood again to report unchanged")
	}

	var invalidMood dialogue.InvalidMoodError
	if _, _, err := controller.Set("grumpy"); !errors.As(err, &invalidMood) {
		t.Errorf("expected an InvalidMoodError, got %v", err)
	}
	if current := controller.Current(); current != dialogue.MoodHappy {
		t.Errorf("expected the mood to stay %q after a rejected candidate, got %q", dialogue.MoodHappy, current)
	}

	if _, changed, err := controller.Set("Sad"); err != nil || !changed {
		t.Errorf("expected a valid transition to report a change, got changed=%t, err %v", changed, err)
	}
}
