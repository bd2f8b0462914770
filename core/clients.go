package orchestration

import (
	"context"
	"fmt"

	"github.com/chatwithcat/companion-core/core/dialogue"
	"github.com/chatwithcat/companion-core/core/speechtotext"
	"github.com/chatwithcat/companion-core/core/texttospeech"
)

// transcriber is the facade used to handle optional client wiring. An
// unconfigured transcriber yields an empty transcript, which the orchestrator
// already treats as "no input".
type transcriber struct {
	client Transcriber
}

func (t *transcriber) set(client Transcriber) {
	if t != nil {
		t.client = client
	}
}

func (t *transcriber) isConfigured() bool {
	return t != nil && t.client != nil
}

func (t *transcriber) transcribe(ctx context.Context, recording []byte, opts ...speechtotext.TranscriptionOption) (string, error) {
	if !t.isConfigured() {
		return "", nil
	}

	return t.client.Transcribe(ctx, recording, opts...)
}

// dialogueEngine is the facade over the chat-completion client.
type dialogueEngine struct {
	client DialogueClient
}

func (d *dialogueEngine) set(client DialogueClient) {
	if d != nil {
		d.client = client
	}
}

func (d *dialogueEngine) isConfigured() bool {
	return d != nil && d.client != nil
}

func (d *dialogueEngine) converse(ctx context.Context, request dialogue.Request) (*dialogue.Reply, error) {
	if !d.isConfigured() {
		return nil, fmt.Errorf("no dialogue client configured")
	}

	return d.client.Converse(ctx, request)
}

// synthesizer is the facade over the speech-synthesis client. Without one the
// turn simply produces no audio.
type synthesizer struct {
	client Synthesizer
}

func (s *synthesizer) set(client Synthesizer) {
	if s != nil {
		s.client = client
	}
}

func (s *synthesizer) isConfigured() bool {
	return s != nil && s.client != nil
}

func (s *synthesizer) synthesize(ctx context.Context, text string, opts ...texttospeech.SynthesisOption) ([]byte, error) {
	if !s.isConfigured() {
		return nil, nil
	}

	return s.client.Synthesize(ctx, text, opts...)
}
